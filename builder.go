/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityfactory

import (
	"context"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/suparena/entityfactory/errors"
	"github.com/suparena/entityfactory/hydrator"
)

// Builder builds instances of one entity type from a bound blueprint.
type Builder struct {
	factory   *Factory
	typ       reflect.Type
	variant   string
	blueprint Blueprint
	count     int
}

// Times sets how many instances Make and Create produce. Values below one
// are treated as one.
func (b *Builder) Times(n int) *Builder {
	if n < 1 {
		n = 1
	}
	b.count = n
	return b
}

// Type returns the entity type the builder produces.
func (b *Builder) Type() reflect.Type {
	return b.typ
}

// Variant returns the blueprint variant the builder is bound to.
func (b *Builder) Variant() string {
	return b.variant
}

// Make builds the configured number of instances. Overrides replace blueprint
// attributes of the same name and may add attributes the blueprint lacks; an
// overridden deferred value is never run. With a count of one the result is a
// single *T, otherwise a []any of *T in build order.
func (b *Builder) Make(overrides Attributes) (any, error) {
	instances, err := b.makeAll(overrides)
	if err != nil {
		return nil, err
	}
	return b.shape(instances), nil
}

// Create builds like Make and then saves every instance through the handle
// the factory's gateway resolves for the entity type. Instances saved before
// a failing save stay saved.
func (b *Builder) Create(ctx context.Context, overrides Attributes) (any, error) {
	instances, err := b.makeAll(overrides)
	if err != nil {
		return nil, err
	}
	if err := b.persist(ctx, instances); err != nil {
		return nil, err
	}
	return b.shape(instances), nil
}

func (b *Builder) makeAll(overrides Attributes) ([]any, error) {
	instances := make([]any, 0, b.count)
	for i := 0; i < b.count; i++ {
		instance, err := b.build(overrides)
		if err != nil {
			return nil, err
		}
		b.logger(i).Debug("entityfactory: instance built")
		instances = append(instances, instance)
	}
	return instances, nil
}

func (b *Builder) build(overrides Attributes) (any, error) {
	defaults := b.blueprint(b.factory.faker, b.factory)

	data, err := resolve(merge(defaults, overrides))
	if err != nil {
		return nil, err
	}
	return hydrator.NewInstance(b.typ, data)
}

func (b *Builder) persist(ctx context.Context, instances []any) error {
	for i, instance := range instances {
		handle, ok := b.handle()
		if !ok {
			return errors.NewNoPersistenceHandleError(typeName(b.typ))
		}
		if err := handle.Save(ctx, instance); err != nil {
			return err
		}
		b.logger(i).Debug("entityfactory: instance persisted")
	}
	return nil
}

func (b *Builder) handle() (Handle, bool) {
	if b.factory.gateway == nil {
		return nil, false
	}
	h, ok := b.factory.gateway.HandleFor(b.typ)
	if !ok || h == nil {
		return nil, false
	}
	return h, true
}

func (b *Builder) shape(instances []any) any {
	if b.count == 1 {
		return instances[0]
	}
	return instances
}

func (b *Builder) logger(index int) logrus.FieldLogger {
	return b.factory.log.WithFields(logrus.Fields{
		"type":    typeName(b.typ),
		"variant": b.variant,
		"index":   index,
	})
}

// MakeOne builds a single T regardless of the builder's count.
func MakeOne[T any](b *Builder, overrides Attributes) (*T, error) {
	if err := checkType[T](b); err != nil {
		return nil, err
	}
	instances, err := b.withCount(1).makeAll(overrides)
	if err != nil {
		return nil, err
	}
	return as[T](instances[0])
}

// MakeMany builds the builder's count of T.
func MakeMany[T any](b *Builder, overrides Attributes) ([]*T, error) {
	if err := checkType[T](b); err != nil {
		return nil, err
	}
	instances, err := b.makeAll(overrides)
	if err != nil {
		return nil, err
	}
	return asSlice[T](instances)
}

// CreateOne builds and persists a single T regardless of the builder's count.
func CreateOne[T any](ctx context.Context, b *Builder, overrides Attributes) (*T, error) {
	if err := checkType[T](b); err != nil {
		return nil, err
	}
	one := b.withCount(1)
	instances, err := one.makeAll(overrides)
	if err != nil {
		return nil, err
	}
	if err := one.persist(ctx, instances); err != nil {
		return nil, err
	}
	return as[T](instances[0])
}

// CreateMany builds and persists the builder's count of T.
func CreateMany[T any](ctx context.Context, b *Builder, overrides Attributes) ([]*T, error) {
	if err := checkType[T](b); err != nil {
		return nil, err
	}
	instances, err := b.makeAll(overrides)
	if err != nil {
		return nil, err
	}
	if err := b.persist(ctx, instances); err != nil {
		return nil, err
	}
	return asSlice[T](instances)
}

func (b *Builder) withCount(n int) *Builder {
	c := *b
	c.count = n
	return &c
}

// checkType fails before anything is built or saved when T is not the
// builder's entity type.
func checkType[T any](b *Builder) error {
	if want := reflect.TypeFor[T](); want != b.typ {
		return errors.NewTypeResolutionError(want.String(), "builder produces "+typeName(b.typ))
	}
	return nil
}

func as[T any](instance any) (*T, error) {
	typed, ok := instance.(*T)
	if !ok {
		return nil, errors.NewTypeResolutionError(reflect.TypeFor[T]().String(), fmt.Sprintf("builder produces %T", instance))
	}
	return typed, nil
}

func asSlice[T any](instances []any) ([]*T, error) {
	typed := make([]*T, len(instances))
	for i, instance := range instances {
		t, err := as[T](instance)
		if err != nil {
			return nil, err
		}
		typed[i] = t
	}
	return typed, nil
}
