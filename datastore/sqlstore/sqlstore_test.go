/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlstore_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entityfactory/datastore"
	"github.com/suparena/entityfactory/datastore/sqlstore"
	"github.com/suparena/entityfactory/errors"
)

type address struct {
	street string
	City   string
}

type customer struct {
	ID        string
	name      string
	Age       int
	Balance   float64
	Active    bool
	Avatar    []byte
	Tags      []string
	Home      *address
	CreatedAt *strfmt.DateTime
	Joined    time.Time
}

type note struct {
	Text string
}

var _ datastore.DataStore[customer] = (*sqlstore.Store[customer])(nil)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlstore.Open(context.Background(), filepath.Join(t.TempDir(), "fixtures.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := sqlstore.New[customer](openDB(t))

	created := strfmt.DateTime(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	joined := time.Date(2024, 6, 7, 8, 9, 10, 0, time.UTC)
	in := customer{
		ID:        "c-1",
		name:      "Ada",
		Age:       36,
		Balance:   12.5,
		Active:    true,
		Avatar:    []byte{0x1, 0x2},
		Tags:      []string{"vip", "early"},
		Home:      &address{street: "1 Main St", City: "Oakville"},
		CreatedAt: &created,
		Joined:    joined,
	}
	require.NoError(t, store.Put(ctx, in))

	out, err := store.GetOne(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", out.name)
	assert.Equal(t, 36, out.Age)
	assert.Equal(t, 12.5, out.Balance)
	assert.True(t, out.Active)
	assert.Equal(t, []byte{0x1, 0x2}, out.Avatar)
	assert.Equal(t, []string{"vip", "early"}, out.Tags)
	require.NotNil(t, out.Home)
	assert.Equal(t, "1 Main St", out.Home.street)
	assert.Equal(t, "Oakville", out.Home.City)
	require.NotNil(t, out.CreatedAt)
	assert.True(t, time.Time(created).Equal(time.Time(*out.CreatedAt)))
	assert.True(t, joined.Equal(out.Joined))
}

func TestStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	store := sqlstore.New[customer](openDB(t))

	require.NoError(t, store.Put(ctx, customer{ID: "a", name: "first"}))
	require.NoError(t, store.Put(ctx, customer{ID: "b", name: "second"}))
	require.NoError(t, store.Put(ctx, customer{ID: "a", name: "replaced"}))

	out, err := store.GetOne(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "replaced", out.name)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := sqlstore.New[customer](openDB(t))

	require.NoError(t, store.Put(ctx, customer{ID: "a"}))
	require.NoError(t, store.Delete(ctx, "a"))

	_, err := store.GetOne(ctx, "a")
	assert.True(t, errors.IsNotFound(err))

	err = store.Delete(ctx, "a")
	assert.True(t, errors.IsNotFound(err))
}

func TestStore_TypesShareTable(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	customers := sqlstore.New[customer](db)
	notes := sqlstore.New[note](db, sqlstore.WithKeyFunc[note](func(n note) string { return n.Text }))

	require.NoError(t, customers.Put(ctx, customer{ID: "same"}))
	require.NoError(t, notes.Put(ctx, note{Text: "same"}))

	n, err := customers.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := notes.GetOne(ctx, "same")
	require.NoError(t, err)
	assert.Equal(t, "same", got.Text)
}

func TestStore_GeneratedKeys(t *testing.T) {
	ctx := context.Background()
	store := sqlstore.New[note](openDB(t))

	require.NoError(t, store.Put(ctx, note{Text: "one"}))
	require.NoError(t, store.Put(ctx, note{Text: "two"}))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
}

func TestStore_EmptyKey(t *testing.T) {
	store := sqlstore.New[note](openDB(t),
		sqlstore.WithKeyFunc[note](func(note) string { return "" }),
		sqlstore.WithTypeName[note]("notes"),
	)

	err := store.Put(context.Background(), note{Text: "x"})
	assert.True(t, errors.IsValidationError(err))
}

func TestOpen_InMemory(t *testing.T) {
	ctx := context.Background()
	db, err := sqlstore.Open(ctx, "file::memory:")
	require.NoError(t, err)
	defer db.Close()

	store := sqlstore.New[note](db, sqlstore.WithKeyFunc[note](func(n note) string { return n.Text }))
	require.NoError(t, store.Put(ctx, note{Text: "kept"}))

	_, err = store.GetOne(ctx, "kept")
	assert.NoError(t, err)
}
