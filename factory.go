/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityfactory

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sirupsen/logrus"

	"github.com/suparena/entityfactory/config"
	"github.com/suparena/entityfactory/errors"
	"github.com/suparena/entityfactory/registry"
)

// DefaultVariant is the variant name used when none is given.
const DefaultVariant = "default"

// Blueprint returns the default attributes of one entity. It is invoked once
// per built instance, so values drawn from fake differ between instances.
// The factory is passed in so attributes can reference other blueprints.
type Blueprint func(fake *gofakeit.Faker, f *Factory) Attributes

// Definition registers blueprints on a factory. Packages that hold fixture
// definitions export one and the test setup passes it to Load.
type Definition func(f *Factory) error

// Factory stores blueprints per entity type and variant and hands out
// builders for them. Populate it before sharing it between goroutines;
// Define is not synchronised.
type Factory struct {
	faker       *gofakeit.Faker
	gateway     Gateway
	types       *registry.TypeRegistry
	log         logrus.FieldLogger
	definitions map[reflect.Type]map[string]Blueprint
}

// Option configures a Factory.
type Option func(*Factory)

// WithFaker sets the value source handed to blueprints.
func WithFaker(faker *gofakeit.Faker) Option {
	return func(f *Factory) {
		f.faker = faker
	}
}

// WithSeed seeds a new value source. Zero picks a random seed.
func WithSeed(seed int64) Option {
	return func(f *Factory) {
		f.faker = gofakeit.New(seed)
	}
}

// WithGateway sets the Persistence Gateway used by Create.
func WithGateway(gw Gateway) Option {
	return func(f *Factory) {
		f.gateway = gw
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(f *Factory) {
		f.log = log
	}
}

// WithTypes shares a type registry between factories.
func WithTypes(types *registry.TypeRegistry) Option {
	return func(f *Factory) {
		f.types = types
	}
}

// New creates a Factory. Without options it uses a randomly seeded value
// source, no gateway and the standard logrus logger.
func New(opts ...Option) *Factory {
	f := &Factory{
		definitions: make(map[reflect.Type]map[string]Blueprint),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.faker == nil {
		f.faker = gofakeit.New(0)
	}
	if f.types == nil {
		f.types = registry.NewTypeRegistry()
	}
	if f.log == nil {
		f.log = logrus.StandardLogger()
	}
	return f
}

// NewFromConfig creates a Factory seeded and logging as cfg says. Options are
// applied after the config and win over it.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := []Option{
		WithSeed(cfg.Seed),
		WithLogger(cfg.Logger()),
	}
	f := New(append(base, opts...)...)
	f.log.WithFields(logrus.Fields{
		"version": GetVersionInfo().String(),
		"seed":    cfg.Seed,
	}).Debug("entityfactory: factory configured")
	return f, nil
}

// Define registers bp for t under the given variant, "default" when omitted.
// A later definition for the same pair replaces the earlier one. A nil bp is
// ignored and the pair stays as it was.
func (f *Factory) Define(t reflect.Type, bp Blueprint, variant ...string) *Factory {
	t = normalize(t)
	name := variantName(variant)

	if bp == nil {
		f.log.WithFields(logrus.Fields{
			"type":    typeName(t),
			"variant": name,
		}).Warn("entityfactory: nil blueprint ignored")
		return f
	}

	byVariant, ok := f.definitions[t]
	if !ok {
		byVariant = make(map[string]Blueprint)
		f.definitions[t] = byVariant
	}
	byVariant[name] = bp

	f.log.WithFields(logrus.Fields{
		"type":    typeName(t),
		"variant": name,
	}).Debug("entityfactory: blueprint defined")
	return f
}

// DefineAs is Define with the variant named before the blueprint.
func (f *Factory) DefineAs(t reflect.Type, variant string, bp Blueprint) *Factory {
	return f.Define(t, bp, variant)
}

// Load runs each definition against the factory and stops at the first error.
func (f *Factory) Load(defs ...Definition) error {
	for i, def := range defs {
		if def == nil {
			continue
		}
		if err := def(f); err != nil {
			return fmt.Errorf("loading definition %d: %w", i, err)
		}
	}
	return nil
}

// Of returns a builder for the blueprint registered for exactly (t, variant).
// There is no fallback to the default variant.
func (f *Factory) Of(t reflect.Type, variant ...string) (*Builder, error) {
	t = normalize(t)
	name := variantName(variant)

	bp, ok := f.definitions[t][name]
	if !ok {
		return nil, errors.NewUndefinedBlueprintError(typeName(t), name)
	}

	return &Builder{
		factory:   f,
		typ:       t,
		variant:   name,
		blueprint: bp,
		count:     1,
	}, nil
}

// OfName is Of for a type registered by name in the factory's type registry.
func (f *Factory) OfName(name string, variant ...string) (*Builder, error) {
	t, err := f.types.LookupType(name)
	if err != nil {
		return nil, err
	}
	return f.Of(t, variant...)
}

// Ref returns a deferred value that builds one t from its blueprint when
// forced. Lookup happens at force time, so t may be defined after the
// blueprint that references it.
func (f *Factory) Ref(t reflect.Type, variant ...string) Value {
	return Deferred(func() (any, error) {
		b, err := f.Of(t, variant...)
		if err != nil {
			return nil, err
		}
		return b.Make(nil)
	})
}

// Variants returns the variants defined for t in sorted order.
func (f *Factory) Variants(t reflect.Type) []string {
	byVariant := f.definitions[normalize(t)]
	names := make([]string, 0, len(byVariant))
	for name := range byVariant {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Faker returns the value source handed to blueprints.
func (f *Factory) Faker() *gofakeit.Faker {
	return f.faker
}

// Types returns the factory's type registry.
func (f *Factory) Types() *registry.TypeRegistry {
	return f.types
}

// Gateway returns the Persistence Gateway, or nil.
func (f *Factory) Gateway() Gateway {
	return f.gateway
}

func variantName(variant []string) string {
	if len(variant) == 0 || variant[0] == "" {
		return DefaultVariant
	}
	return variant[0]
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
