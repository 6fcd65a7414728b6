/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package loader_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entityfactory"
	"github.com/suparena/entityfactory/config"
	"github.com/suparena/entityfactory/errors"
	"github.com/suparena/entityfactory/internal/testmodels"
	"github.com/suparena/entityfactory/loader"
)

func newFactory(t *testing.T) *entityfactory.Factory {
	t.Helper()
	f := entityfactory.New(entityfactory.WithSeed(42))
	require.NoError(t, f.Load(testmodels.RegisterTypes))
	return f
}

func TestFile(t *testing.T) {
	f := newFactory(t)
	require.NoError(t, f.Load(loader.File(filepath.Join("testdata", "fixtures.yaml"))))

	assert.Equal(t, []string{"colors", "default"}, f.Variants(testmodels.FooType))
	assert.Equal(t, []string{"default"}, f.Variants(testmodels.BarType))

	t.Run("ref builds nested entity", func(t *testing.T) {
		b, err := f.Of(testmodels.FooType)
		require.NoError(t, err)

		foo, err := entityfactory.MakeOne[testmodels.Foo](b, nil)
		require.NoError(t, err)

		bar, ok := foo.Bar().(*testmodels.Bar)
		require.True(t, ok, "bar holds %T", foo.Bar())
		assert.NotEmpty(t, bar.Bar())
		assert.Contains(t, []string{"red", "green", "blue"}, foo.Baz())
		assert.Contains(t, foo.Qux(), " ")
	})

	t.Run("variant literals", func(t *testing.T) {
		b, err := f.Of(testmodels.FooType, "colors")
		require.NoError(t, err)

		foo, err := entityfactory.MakeOne[testmodels.Foo](b, nil)
		require.NoError(t, err)
		assert.Equal(t, "red", foo.Bar())
		assert.Equal(t, "green", foo.Baz())
		assert.Equal(t, "blue", foo.Qux())
	})

	t.Run("coerced literals and expressions", func(t *testing.T) {
		b, err := f.OfName(testmodels.AccountName)
		require.NoError(t, err)

		accounts, err := entityfactory.MakeMany[testmodels.Account](b.Times(5), nil)
		require.NoError(t, err)
		require.Len(t, accounts, 5)

		for _, a := range accounts {
			assert.Contains(t, string(a.Email()), "@")
			assert.Equal(t, "=admin", a.Name())
			assert.GreaterOrEqual(t, a.Balance(), int64(10))
			assert.LessOrEqual(t, a.Balance(), int64(20))
			assert.Equal(t, []string{"staff", "beta"}, a.Tags())
			require.NotNil(t, a.CreatedAt())
			assert.True(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).Equal(time.Time(*a.CreatedAt())))
		}

		// Literal collections are copied per instance.
		accounts[0].Tags()[0] = "changed"
		assert.Equal(t, "staff", accounts[1].Tags()[0])
	})
}

func TestFile_UnknownTypeLeavesFactoryUntouched(t *testing.T) {
	f := newFactory(t)

	err := f.Load(loader.File(filepath.Join("testdata", "unknown_type.yaml")))
	require.Error(t, err)
	assert.True(t, errors.IsTypeResolution(err))
	assert.Empty(t, f.Variants(testmodels.BarType))
}

func TestFile_Missing(t *testing.T) {
	f := newFactory(t)
	assert.Error(t, f.Load(loader.File(filepath.Join("testdata", "missing.yaml"))))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown function", yaml: "blueprints:\n  - type: bar\n    attributes:\n      bar: '=shout(\"x\")'\n"},
		{name: "syntax", yaml: "blueprints:\n  - type: bar\n    attributes:\n      bar: '=fake(\"x\"'\n"},
		{name: "fake arity", yaml: "blueprints:\n  - type: bar\n    attributes:\n      bar: '=fake()'\n"},
		{name: "fake template type", yaml: "blueprints:\n  - type: bar\n    attributes:\n      bar: '=fake(3)'\n"},
		{name: "ref unknown type", yaml: "blueprints:\n  - type: foo\n    attributes:\n      bar: '=ref(widget)'\n"},
		{name: "ref arity", yaml: "blueprints:\n  - type: foo\n    attributes:\n      bar: '=ref(bar, a, b)'\n"},
		{name: "pick empty", yaml: "blueprints:\n  - type: bar\n    attributes:\n      bar: '=pick()'\n"},
		{name: "number range", yaml: "blueprints:\n  - type: bar\n    attributes:\n      bar: '=number(5, 1)'\n"},
		{name: "number bounds", yaml: "blueprints:\n  - type: bar\n    attributes:\n      bar: '=number(a, 1)'\n"},
		{name: "missing type", yaml: "blueprints:\n  - attributes:\n      bar: x\n"},
		{name: "unknown key", yaml: "blueprints:\n  - type: bar\n    colour: red\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFactory(t)
			assert.Error(t, f.Load(loader.Parse([]byte(tt.yaml))))
			assert.Empty(t, f.Variants(testmodels.BarType))
		})
	}
}

func TestParse_Numbers(t *testing.T) {
	f := newFactory(t)
	require.NoError(t, f.Load(loader.Parse([]byte(`
blueprints:
  - type: bar
    variant: negative
    attributes:
      bar: '=pick(-3)'
  - type: foo
    variant: float
    attributes:
      bar: '=number(-1.5, 1.5)'
  - type: account
    variant: fraction
    attributes:
      balance: 2.5
`))))

	b, err := f.Of(testmodels.BarType, "negative")
	require.NoError(t, err)
	_, err = b.Make(nil)
	// an int64 never hydrates into a string field
	assert.True(t, errors.IsHydration(err))

	b, err = f.Of(testmodels.FooType, "float")
	require.NoError(t, err)
	foo, err := entityfactory.MakeOne[testmodels.Foo](b, nil)
	require.NoError(t, err)
	x, ok := foo.Bar().(float64)
	require.True(t, ok, "bar holds %T", foo.Bar())
	assert.GreaterOrEqual(t, x, -1.5)
	assert.LessOrEqual(t, x, 1.5)

	// a fractional float never truncates into an integer field
	b, err = f.Of(testmodels.AccountType, "fraction")
	require.NoError(t, err)
	_, err = b.Make(nil)
	assert.True(t, errors.IsHydration(err))
}

func TestParse_MultipleDocuments(t *testing.T) {
	f := newFactory(t)
	require.NoError(t, f.Load(loader.Parse([]byte(`
blueprints:
  - type: bar
    attributes:
      bar: first
---
blueprints:
  - type: bar
    variant: second
    attributes:
      bar: second
`))))

	assert.Equal(t, []string{"default", "second"}, f.Variants(testmodels.BarType))

	b, err := f.Of(testmodels.BarType, "second")
	require.NoError(t, err)
	bar, err := entityfactory.MakeOne[testmodels.Bar](b, nil)
	require.NoError(t, err)
	assert.Equal(t, "second", bar.Bar())
}

func TestParse_BadLaterDocumentLeavesFactoryUntouched(t *testing.T) {
	f := newFactory(t)
	err := f.Load(loader.Parse([]byte(`
blueprints:
  - type: bar
    attributes:
      bar: first
---
blueprints:
  - type: widget
`)))
	require.Error(t, err)
	assert.Empty(t, f.Variants(testmodels.BarType))
}

func TestParse_Empty(t *testing.T) {
	f := newFactory(t)
	assert.NoError(t, f.Load(loader.Parse(nil)))
}

func TestFiles_FromConfig(t *testing.T) {
	f := newFactory(t)
	cfg := &config.Config{DefinitionFiles: []string{filepath.Join("testdata", "fixtures.yaml")}}

	require.NoError(t, f.Load(loader.FromConfig(cfg)))
	assert.Equal(t, []string{"default"}, f.Variants(testmodels.AccountType))
}
