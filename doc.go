/*
Package entityfactory builds fully-formed test instances of domain entities
from registered blueprints, optionally persisting them through a pluggable
gateway.

Entities are hydrated field by field, unexported fields included, so fixtures
never have to go through production constructors or validation.

Key Features:
  - Blueprints per entity type and named variant ("default" when omitted)
  - Overrides that replace blueprint attributes without evaluating them
  - Deferred values, e.g. nested entities built only when not overridden
  - Seedable value source (gofakeit) for reproducible fixtures
  - Persistence through typed datastores: DynamoDB, SQLite or in-memory
  - YAML definition files (see package loader)

Basic Usage:

	f := entityfactory.New(entityfactory.WithSeed(42))

	f.Define(reflect.TypeFor[Bar](), func(fake *gofakeit.Faker, f *entityfactory.Factory) entityfactory.Attributes {
	    return entityfactory.Attrs(map[string]any{"bar": fake.Word()})
	})
	f.Define(reflect.TypeFor[Foo](), func(fake *gofakeit.Faker, f *entityfactory.Factory) entityfactory.Attributes {
	    return entityfactory.Attributes{
	        "bar": f.Ref(reflect.TypeFor[Bar]()),
	        "baz": entityfactory.Concrete(fake.Word()),
	    }
	})

	b, _ := f.Of(reflect.TypeFor[Foo]())
	foos, err := entityfactory.MakeMany[Foo](b.Times(3), entityfactory.Attrs(map[string]any{"baz": "fixed"}))

Persisting:

	storage := entityfactory.NewStorage()
	entityfactory.RegisterDataStore[Foo](storage, mock.New[Foo]())
	f := entityfactory.New(entityfactory.WithGateway(storage))
	foo, err := entityfactory.CreateOne[Foo](ctx, b, nil)
*/
package entityfactory
