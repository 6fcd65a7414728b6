/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/entityfactory/errors"
)

// TypeRegistry maps entity type names to Go struct types. Definition files
// refer to entities by these names.
type TypeRegistry struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
}

// NewTypeRegistry creates an empty TypeRegistry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{byName: make(map[string]reflect.Type)}
}

// RegisterType associates name with t. Pointer types are registered as their
// struct element. Registering a different type under a taken name panics to
// prevent accidental overrides; re-registering the same pair is a no-op.
func (r *TypeRegistry) RegisterType(name string, t reflect.Type) {
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("type registry: %q must name a struct type, got %v", name, t))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.byName[name]; exists && existing != t {
		panic(fmt.Sprintf("type registry: name %q already registered to %s", name, existing))
	}
	r.byName[name] = t
}

// LookupType returns the type registered under name.
func (r *TypeRegistry) LookupType(name string) (reflect.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byName[name]
	if !ok {
		return nil, errors.NewTypeResolutionError(name, "no type registered under this name")
	}
	return t, nil
}

// Names returns the registered names in sorted order.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register is a convenience wrapper that registers T under name.
func Register[T any](r *TypeRegistry, name string) {
	r.RegisterType(name, reflect.TypeFor[T]())
}
