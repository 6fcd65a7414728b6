/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityfactory

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks github.com/suparena/entityfactory Gateway,Handle

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/entityfactory/datastore"
	"github.com/suparena/entityfactory/errors"
)

// Handle saves instances of one entity type.
type Handle interface {
	Save(ctx context.Context, entity any) error
}

// HandleFunc adapts a function to Handle.
type HandleFunc func(ctx context.Context, entity any) error

// Save calls f(ctx, entity).
func (f HandleFunc) Save(ctx context.Context, entity any) error {
	return f(ctx, entity)
}

// Gateway resolves the persistence handle for an entity type. The second
// return value is false when the type has no handle.
type Gateway interface {
	HandleFor(t reflect.Type) (Handle, bool)
}

// Storage is a thread-safe Gateway keyed by entity type.
type Storage struct {
	mu      sync.RWMutex
	handles map[reflect.Type]Handle
}

// NewStorage creates an empty Storage.
func NewStorage() *Storage {
	return &Storage{
		handles: make(map[reflect.Type]Handle),
	}
}

// Register adds the handle for t. Pointer types register their struct element.
func (s *Storage) Register(t reflect.Type, h Handle) error {
	t = normalize(t)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.handles[t]; exists {
		return errors.NewAlreadyExistsError("persistence handle", t.String())
	}
	s.handles[t] = h
	return nil
}

// HandleFor implements Gateway.
func (s *Storage) HandleFor(t reflect.Type) (Handle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.handles[normalize(t)]
	return h, ok
}

// Remove deletes the handle for t.
func (s *Storage) Remove(t reflect.Type) error {
	t = normalize(t)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.handles[t]; !exists {
		return errors.NewNotFoundError("persistence handle", t.String())
	}
	delete(s.handles, t)
	return nil
}

// Types returns the registered entity types ordered by name.
func (s *Storage) Types() []reflect.Type {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]reflect.Type, 0, len(s.handles))
	for t := range s.handles {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })
	return types
}

// DataStoreHandle adapts a typed datastore to Handle. The handle accepts
// *T or T and rejects anything else.
func DataStoreHandle[T any](ds datastore.DataStore[T]) Handle {
	return HandleFunc(func(ctx context.Context, entity any) error {
		switch e := entity.(type) {
		case *T:
			if e == nil {
				return errors.NewValidationError("entity", "nil pointer")
			}
			return ds.Put(ctx, *e)
		case T:
			return ds.Put(ctx, e)
		default:
			return errors.NewValidationError("entity", fmt.Sprintf("expected %s, got %T", reflect.TypeFor[T](), entity))
		}
	})
}

// RegisterDataStore is a convenience function to register a datastore for type T
func RegisterDataStore[T any](s *Storage, ds datastore.DataStore[T]) error {
	return s.Register(reflect.TypeFor[T](), DataStoreHandle(ds))
}

func normalize(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}
