/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hydrator

import (
	"encoding"
	"fmt"
	"reflect"
)

// MaxFlattenDepth bounds nesting in Flatten so reference cycles fail instead
// of recursing forever.
const MaxFlattenDepth = 16

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// Flatten extracts every field of instance into a document of plain values:
// nested structs become maps, text marshalers (time.Time, strfmt.DateTime)
// become strings, slices become []any. The result hydrates back into the same
// type through NewInstance, which makes it suitable for storage encoders that
// only see exported fields.
func Flatten(instance any) (map[string]any, error) {
	v, err := structValue(instance, true)
	if err != nil {
		return nil, err
	}
	return flattenStruct(v, 0)
}

func flattenStruct(v reflect.Value, depth int) (map[string]any, error) {
	if depth > MaxFlattenDepth {
		return nil, fmt.Errorf("flatten depth exceeded maximum of %d (possible reference cycle)", MaxFlattenDepth)
	}

	l := layoutOf(v.Type())
	doc := make(map[string]any, len(l.fields))
	for _, fi := range l.fields {
		val, err := flattenValue(access(v.Field(fi.index)), depth)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", v.Type().Name(), fi.name, err)
		}
		doc[fi.name] = val
	}
	return doc, nil
}

func flattenValue(v reflect.Value, depth int) (any, error) {
	switch v.Kind() {
	case reflect.Interface, reflect.Ptr:
		if v.IsNil() {
			return nil, nil
		}
		return flattenValue(v.Elem(), depth)
	}

	if v.Type().Implements(textMarshalerType) {
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, err
		}
		return string(text), nil
	}

	switch v.Kind() {
	case reflect.Struct:
		if !v.CanAddr() {
			c := reflect.New(v.Type()).Elem()
			c.Set(v)
			v = c
		}
		return flattenStruct(v, depth+1)

	case reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return append([]byte(nil), v.Bytes()...), nil
		}
		fallthrough
	case reflect.Array:
		items := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			item, err := flattenValue(v.Index(i), depth+1)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = item
		}
		return items, nil

	case reflect.Map:
		if v.IsNil() {
			return nil, nil
		}
		m := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			item, err := flattenValue(iter.Value(), depth+1)
			if err != nil {
				return nil, fmt.Errorf("key %v: %w", iter.Key().Interface(), err)
			}
			m[fmt.Sprint(iter.Key().Interface())] = item
		}
		return m, nil

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, fmt.Errorf("cannot flatten %s", v.Type())
	}

	return v.Interface(), nil
}
