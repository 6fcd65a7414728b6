/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/suparena/entityfactory/hydrator"
)

// DataStore persists entities of type T. Factories reach it through
// entityfactory.RegisterDataStore.
type DataStore[T any] interface {
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, entity T) error

	Delete(ctx context.Context, key string) error
}

// KeyFunc derives the storage key of an entity.
type KeyFunc[T any] func(entity T) string

// DefaultKey reads the entity's ID field and returns it as a string. Entities
// without a non-zero ID get a random key.
func DefaultKey[T any](entity T) string {
	if fields, err := hydrator.Extract(entity, "ID"); err == nil {
		if id := fields["ID"]; id != nil && !reflect.ValueOf(id).IsZero() {
			return fmt.Sprint(id)
		}
	}
	return uuid.NewString()
}
