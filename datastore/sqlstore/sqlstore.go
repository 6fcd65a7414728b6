/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlstore

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"github.com/suparena/entityfactory/datastore"
	factoryerrors "github.com/suparena/entityfactory/errors"
	"github.com/suparena/entityfactory/hydrator"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

const schema = `CREATE TABLE IF NOT EXISTS entities (
	entity_type TEXT NOT NULL,
	entity_key  TEXT NOT NULL,
	payload     BLOB NOT NULL,
	PRIMARY KEY (entity_type, entity_key)
)`

// Open opens the database at dsn and creates the entities table. The pool is
// limited to one connection so an in-memory database is shared by every
// store built on it.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create entities table: %w", err)
	}
	return db, nil
}

// Store implements datastore.DataStore[T] on a SQLite table shared by all
// entity types. Each row holds the msgpack encoding of the entity's
// flattened field document.
type Store[T any] struct {
	db       *sql.DB
	typeName string
	keyFunc  datastore.KeyFunc[T]
	log      logrus.FieldLogger
}

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithKeyFunc sets how entity keys are derived. The default reads the ID field.
func WithKeyFunc[T any](f datastore.KeyFunc[T]) Option[T] {
	return func(s *Store[T]) {
		s.keyFunc = f
	}
}

// WithTypeName overrides the value stored in the entity_type column.
func WithTypeName[T any](name string) Option[T] {
	return func(s *Store[T]) {
		s.typeName = name
	}
}

// WithLogger sets the logger.
func WithLogger[T any](log logrus.FieldLogger) Option[T] {
	return func(s *Store[T]) {
		s.log = log
	}
}

// New creates a Store for T on db. db must have been prepared by Open.
func New[T any](db *sql.DB, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		db:       db,
		typeName: reflect.TypeFor[T]().String(),
		keyFunc:  datastore.DefaultKey[T],
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOne loads the entity stored under key.
func (s *Store[T]) GetOne(ctx context.Context, key string) (*T, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM entities WHERE entity_type = ? AND entity_key = ?`,
		s.typeName, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, factoryerrors.NewNotFoundError(s.typeName, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entity: %w", err)
	}

	doc, err := decode(payload)
	if err != nil {
		return nil, err
	}
	return hydrator.New[T](doc)
}

// Put inserts entity or replaces the row stored under the same key.
func (s *Store[T]) Put(ctx context.Context, entity T) error {
	key := s.keyFunc(entity)
	if key == "" {
		return factoryerrors.NewValidationError("key", "unable to extract key from entity")
	}

	doc, err := hydrator.Flatten(entity)
	if err != nil {
		return fmt.Errorf("failed to flatten entity: %w", err)
	}
	payload, err := msgpack.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode entity: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO entities (entity_type, entity_key, payload) VALUES (?, ?, ?)
		ON CONFLICT (entity_type, entity_key) DO UPDATE SET payload = excluded.payload`,
		s.typeName, key, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to store entity: %w", err)
	}

	s.log.WithFields(logrus.Fields{"type": s.typeName, "key": key}).Debug("sqlstore: entity stored")
	return nil
}

// Delete removes the entity stored under key.
func (s *Store[T]) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM entities WHERE entity_type = ? AND entity_key = ?`,
		s.typeName, key,
	)
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}
	if n == 0 {
		return factoryerrors.NewNotFoundError(s.typeName, key)
	}
	return nil
}

// Keys returns the keys of every stored T in insertion order.
func (s *Store[T]) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT entity_key FROM entities WHERE entity_type = ? ORDER BY rowid`,
		s.typeName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Count returns the number of stored T.
func (s *Store[T]) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entities WHERE entity_type = ?`,
		s.typeName,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count entities: %w", err)
	}
	return n, nil
}

func decode(payload []byte) (map[string]any, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(payload))
	dec.UseLooseInterfaceDecoding(true)

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode entity: %w", err)
	}
	return doc, nil
}
