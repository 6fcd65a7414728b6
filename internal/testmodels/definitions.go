/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package testmodels

import (
	"reflect"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/entityfactory"
	"github.com/suparena/entityfactory/registry"
)

// Type names used by definition files.
const (
	FooName     = "foo"
	BarName     = "bar"
	AccountName = "account"
)

var (
	FooType     = reflect.TypeFor[Foo]()
	BarType     = reflect.TypeFor[Bar]()
	AccountType = reflect.TypeFor[Account]()
)

// RegisterTypes names the test models in the factory's type registry.
func RegisterTypes(f *entityfactory.Factory) error {
	registry.Register[Foo](f.Types(), FooName)
	registry.Register[Bar](f.Types(), BarName)
	registry.Register[Account](f.Types(), AccountName)
	return nil
}

// Definitions registers the test models and their blueprints.
func Definitions(f *entityfactory.Factory) error {
	if err := RegisterTypes(f); err != nil {
		return err
	}

	f.Define(BarType, func(fake *gofakeit.Faker, f *entityfactory.Factory) entityfactory.Attributes {
		return entityfactory.Attrs(map[string]any{
			"bar": fake.Word(),
		})
	})

	f.Define(FooType, func(fake *gofakeit.Faker, f *entityfactory.Factory) entityfactory.Attributes {
		return entityfactory.Attributes{
			"bar": f.Ref(BarType),
			"baz": entityfactory.Concrete(fake.Word()),
			"qux": entityfactory.Concrete(fake.Word()),
		}
	})

	f.DefineAs(FooType, "colors", func(*gofakeit.Faker, *entityfactory.Factory) entityfactory.Attributes {
		return entityfactory.Attrs(map[string]any{
			"bar": "red",
			"baz": "green",
			"qux": "blue",
		})
	})

	f.Define(AccountType, func(fake *gofakeit.Faker, f *entityfactory.Factory) entityfactory.Attributes {
		created := strfmt.DateTime(fake.DateRange(
			time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		).UTC().Truncate(time.Millisecond))

		return entityfactory.Attrs(map[string]any{
			"ID":         uuid.New(),
			"email":      fake.Email(),
			"name":       fake.Name(),
			"balance":    fake.Number(0, 10000),
			"tags":       []string{fake.Word()},
			"created_at": &created,
		})
	})

	return nil
}
