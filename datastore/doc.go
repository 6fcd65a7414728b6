/*
Package datastore defines the persistence contract behind a factory's
Persistence Gateway.

The main interface is DataStore[T], which provides generic CRUD operations for any entity type T:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    Delete(ctx context.Context, key string) error
	}

Implementations:
  - ddb: DynamoDB implementation with index-map key macros
  - sqlstore: SQLite implementation storing msgpack documents
  - mock: In-memory mock implementation for testing

The ddb and sqlstore implementations serialise entities through
hydrator.Flatten, so entities whose state lives in unexported fields
round-trip intact.
*/
package datastore
