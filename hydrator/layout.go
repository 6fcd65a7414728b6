/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hydrator

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/suparena/entityfactory/errors"
)

// TagName is the struct tag that gives a field an alternate hydration name.
// A value of "-" hides the field from hydration and extraction.
const TagName = "fixture"

type fieldInfo struct {
	name  string
	alias string
	index int
}

// layout is the cached field map of a struct type.
type layout struct {
	fields []fieldInfo
	lookup map[string]int
}

var layouts sync.Map // reflect.Type -> *layout

func layoutOf(t reflect.Type) *layout {
	if cached, ok := layouts.Load(t); ok {
		return cached.(*layout)
	}

	l := &layout{lookup: make(map[string]int, t.NumField())}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}
		tag := sf.Tag.Get(TagName)
		if tag == "-" {
			continue
		}
		l.fields = append(l.fields, fieldInfo{name: sf.Name, alias: tag, index: i})
	}

	// Go names win over aliases when both spell the same key.
	for pos, fi := range l.fields {
		l.lookup[fi.name] = pos
	}
	for pos, fi := range l.fields {
		if fi.alias == "" {
			continue
		}
		if _, taken := l.lookup[fi.alias]; !taken {
			l.lookup[fi.alias] = pos
		}
	}

	actual, _ := layouts.LoadOrStore(t, l)
	return actual.(*layout)
}

func (l *layout) field(name string) (fieldInfo, bool) {
	pos, ok := l.lookup[name]
	if !ok {
		return fieldInfo{}, false
	}
	return l.fields[pos], true
}

func (l *layout) names() []string {
	names := make([]string, len(l.fields))
	for i, fi := range l.fields {
		names[i] = fi.name
	}
	return names
}

// structType normalises t to a struct type, following one level of pointer.
func structType(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, errors.NewTypeResolutionError("<nil>", "type is nil")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.NewTypeResolutionError(t.String(), "not a struct")
	}
	return t, nil
}

// structValue returns an addressable struct value for instance. Pointers are
// dereferenced in place; plain struct values are copied only when
// copyValues is set, since mutating a copy would be lost.
func structValue(instance any, copyValues bool) (reflect.Value, error) {
	if instance == nil {
		return reflect.Value{}, errors.NewTypeResolutionError("<nil>", "instance is nil")
	}

	v := reflect.ValueOf(instance)
	switch {
	case v.Kind() == reflect.Ptr:
		if v.IsNil() {
			return reflect.Value{}, errors.NewTypeResolutionError(v.Type().String(), "nil pointer")
		}
		v = v.Elem()
	case copyValues:
		c := reflect.New(v.Type()).Elem()
		c.Set(v)
		v = c
	default:
		return reflect.Value{}, errors.NewTypeResolutionError(v.Type().String(), "instance must be a pointer to struct")
	}

	if v.Kind() != reflect.Struct {
		return reflect.Value{}, errors.NewTypeResolutionError(v.Type().String(), "not a struct")
	}
	return v, nil
}

// access returns a view of an addressable field that can be read and set
// even when the field is unexported.
func access(f reflect.Value) reflect.Value {
	if f.CanSet() {
		return f
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}
