/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hydrator

import (
	"reflect"
	"sort"

	"github.com/suparena/entityfactory/errors"
)

// NewInstance allocates a zero value of t without calling any constructor,
// applies data with Mutate and returns a pointer to the new struct.
// t may be a struct type or a pointer to one.
func NewInstance(t reflect.Type, data map[string]any) (any, error) {
	st, err := structType(t)
	if err != nil {
		return nil, err
	}

	ptr := reflect.New(st)
	if err := mutate(ptr.Elem(), data); err != nil {
		return nil, err
	}
	return ptr.Interface(), nil
}

// New is the generic form of NewInstance. T must be a struct type.
func New[T any](data map[string]any) (*T, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, errors.NewTypeResolutionError(t.String(), "not a struct")
	}

	instance, err := NewInstance(t, data)
	if err != nil {
		return nil, err
	}
	return instance.(*T), nil
}

// Mutate sets the named fields of instance, which must be a non-nil pointer to
// a struct. Unexported fields are written directly. The instance is returned
// for chaining.
func Mutate(instance any, data map[string]any) (any, error) {
	v, err := structValue(instance, false)
	if err != nil {
		return nil, err
	}
	if err := mutate(v, data); err != nil {
		return nil, err
	}
	return instance, nil
}

// Extract reads the named fields of instance. With no names it reads every
// declared field. instance may be a struct or a pointer to one.
func Extract(instance any, fields ...string) (map[string]any, error) {
	v, err := structValue(instance, true)
	if err != nil {
		return nil, err
	}

	l := layoutOf(v.Type())
	if len(fields) == 0 {
		fields = l.names()
	}

	data := make(map[string]any, len(fields))
	for _, name := range fields {
		fi, ok := l.field(name)
		if !ok {
			return nil, errors.NewFieldNotFoundError(v.Type().String(), name)
		}
		data[name] = access(v.Field(fi.index)).Interface()
	}
	return data, nil
}

// Fields lists the hydratable fields of t in declaration order.
func Fields(t reflect.Type) ([]string, error) {
	st, err := structType(t)
	if err != nil {
		return nil, err
	}
	return layoutOf(st).names(), nil
}

func mutate(v reflect.Value, data map[string]any) error {
	l := layoutOf(v.Type())

	// Sorted so a failing key is reported deterministically.
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fi, ok := l.field(key)
		if !ok {
			return errors.NewFieldNotFoundError(v.Type().String(), key)
		}
		if err := assign(access(v.Field(fi.index)), data[key]); err != nil {
			return errors.NewHydrationError(v.Type().String(), key, err)
		}
	}
	return nil
}
