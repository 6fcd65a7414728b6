/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hydrator

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// assign stores val in dst, which must be settable.
func assign(dst reflect.Value, val any) error {
	if val == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	return assignValue(dst, reflect.ValueOf(val))
}

func assignValue(dst, src reflect.Value) error {
	if src.Kind() == reflect.Interface {
		if src.IsNil() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		src = src.Elem()
	}

	dt, st := dst.Type(), src.Type()

	switch {
	case st.AssignableTo(dt) && !sharesStorage(dt):
		dst.Set(src)
		return nil

	case dt.Kind() == reflect.Ptr && st.AssignableTo(dt.Elem()) && !sharesStorage(dt.Elem()):
		ptr := reflect.New(dt.Elem())
		ptr.Elem().Set(src)
		dst.Set(ptr)
		return nil

	case st.Kind() == reflect.Ptr:
		if src.IsNil() {
			dst.Set(reflect.Zero(dt))
			return nil
		}
		return assignValue(dst, src.Elem())

	case dt.Kind() == reflect.Ptr:
		ptr := reflect.New(dt.Elem())
		if err := assignValue(ptr.Elem(), src); err != nil {
			return err
		}
		dst.Set(ptr)
		return nil
	}

	if src.Kind() == reflect.String && dt.Kind() != reflect.String && reflect.PointerTo(dt).Implements(textUnmarshalerType) {
		return dst.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(src.String()))
	}

	switch {
	case src.Kind() == reflect.Map && st.Key().Kind() == reflect.String && dt.Kind() == reflect.Struct:
		data := make(map[string]any, src.Len())
		iter := src.MapRange()
		for iter.Next() {
			data[iter.Key().String()] = iter.Value().Interface()
		}
		return mutate(dst, data)

	case src.Kind() == reflect.Map && dt.Kind() == reflect.Map:
		return assignMap(dst, src)

	case (src.Kind() == reflect.Slice || src.Kind() == reflect.Array) && dt.Kind() == reflect.Slice:
		if src.Kind() == reflect.Slice && src.IsNil() {
			dst.Set(reflect.Zero(dt))
			return nil
		}
		slice := reflect.MakeSlice(dt, src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			if err := assignValue(slice.Index(i), src.Index(i)); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		dst.Set(slice)
		return nil
	}

	if convertible(st, dt) {
		if err := fitsNumber(src, dt); err != nil {
			return err
		}
		dst.Set(src.Convert(dt))
		return nil
	}
	return fmt.Errorf("cannot assign %s to %s", st, dt)
}

func assignMap(dst, src reflect.Value) error {
	dt := dst.Type()
	if src.IsNil() {
		dst.Set(reflect.Zero(dt))
		return nil
	}

	m := reflect.MakeMapWithSize(dt, src.Len())
	iter := src.MapRange()
	for iter.Next() {
		key := reflect.New(dt.Key()).Elem()
		if err := assignValue(key, iter.Key()); err != nil {
			return fmt.Errorf("key %v: %w", iter.Key().Interface(), err)
		}
		elem := reflect.New(dt.Elem()).Elem()
		if err := assignValue(elem, iter.Value()); err != nil {
			return fmt.Errorf("key %v: %w", iter.Key().Interface(), err)
		}
		m.SetMapIndex(key, elem)
	}
	dst.Set(m)
	return nil
}

type kindClass int

const (
	classOther kindClass = iota
	classNumber
	classString
	classBool
)

func classify(k reflect.Kind) kindClass {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return classNumber
	case reflect.String:
		return classString
	case reflect.Bool:
		return classBool
	default:
		return classOther
	}
}

// convertible limits reflect conversions to values of the same family, so an
// int is never turned into a one-rune string.
func convertible(from, to reflect.Type) bool {
	c := classify(from.Kind())
	return c != classOther && c == classify(to.Kind()) && from.ConvertibleTo(to)
}

// sharesStorage reports whether values of t alias their backing store, so
// assigning one would tie the hydrated instance to the caller's data.
func sharesStorage(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Map
}

// fitsNumber rejects numeric conversions that would wrap, truncate a
// fraction or overflow the destination type.
func fitsNumber(src reflect.Value, dt reflect.Type) error {
	dst := reflect.New(dt).Elem()

	switch {
	case src.CanInt():
		n := src.Int()
		switch {
		case dst.CanInt() && dst.OverflowInt(n),
			dst.CanUint() && (n < 0 || dst.OverflowUint(uint64(n))):
			return fmt.Errorf("%d overflows %s", n, dt)
		}

	case src.CanUint():
		u := src.Uint()
		switch {
		case dst.CanInt() && (u > math.MaxInt64 || dst.OverflowInt(int64(u))),
			dst.CanUint() && dst.OverflowUint(u):
			return fmt.Errorf("%d overflows %s", u, dt)
		}

	case src.CanFloat():
		x := src.Float()
		switch {
		case dst.CanFloat():
			if dst.OverflowFloat(x) {
				return fmt.Errorf("%g overflows %s", x, dt)
			}
		case dst.CanInt(), dst.CanUint():
			if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
				return fmt.Errorf("%g is not a whole number for %s", x, dt)
			}
			// MaxInt64 and MaxUint64 round up to 2^63 and 2^64 as float64.
			if dst.CanInt() && (x < math.MinInt64 || x >= math.MaxInt64 || dst.OverflowInt(int64(x))) ||
				dst.CanUint() && (x < 0 || x >= math.MaxUint64 || dst.OverflowUint(uint64(x))) {
				return fmt.Errorf("%g overflows %s", x, dt)
			}
		}
	}
	return nil
}
