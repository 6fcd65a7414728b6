/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityfactory

import "sort"

// Value is an attribute value produced by a blueprint or passed as an
// override. It is either concrete or deferred; a deferred value runs its
// thunk only when the builder forces it.
type Value struct {
	value any
	thunk func() (any, error)
}

// Concrete wraps a ready value.
func Concrete(v any) Value {
	return Value{value: v}
}

// Deferred wraps a computation that runs only if the attribute is not
// overridden. Errors returned by fn reach the caller of Make unchanged.
func Deferred(fn func() (any, error)) Value {
	return Value{thunk: fn}
}

// IsDeferred reports whether v still needs forcing.
func (v Value) IsDeferred() bool {
	return v.thunk != nil
}

// Resolve returns the concrete value, invoking the thunk of a deferred value.
func (v Value) Resolve() (any, error) {
	if v.thunk == nil {
		return v.value, nil
	}
	return v.thunk()
}

// Attributes maps attribute (field) names to values.
type Attributes map[string]Value

// Attrs converts plain values to Attributes. Entries that already are a Value
// are kept as they are, so Deferred values can be mixed in.
func Attrs(values map[string]any) Attributes {
	attrs := make(Attributes, len(values))
	for k, v := range values {
		if val, ok := v.(Value); ok {
			attrs[k] = val
			continue
		}
		attrs[k] = Concrete(v)
	}
	return attrs
}

// merge overlays overrides on defaults. Keys only present in overrides are
// kept; an overridden default is dropped without being forced.
func merge(defaults, overrides Attributes) Attributes {
	merged := make(Attributes, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// resolve forces every deferred value of attrs. Keys are visited in sorted
// order so a seeded value source yields the same fixtures on every run.
func resolve(attrs Attributes) (map[string]any, error) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := make(map[string]any, len(attrs))
	for _, k := range keys {
		resolved, err := attrs[k].Resolve()
		if err != nil {
			return nil, err
		}
		data[k] = resolved
	}
	return data, nil
}
