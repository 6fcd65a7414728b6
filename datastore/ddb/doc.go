/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Single-table design patterns
  - Macro-based key expansion (e.g., "USER#{ID}")
  - Entities with unexported fields, stored as their flattened field document

Macro Expansion:
Keys are declared per entity type in the index map registry. Macros are
replaced with the entity's field values on Put and with the lookup key on
GetOne and Delete:

	registry.RegisterIndexMap[Account](map[string]string{
	    "PK": "ACCOUNT#{ID}",     // Becomes "ACCOUNT#123"
	    "SK": "PROFILE",          // Static value
	    "GSI1PK": "{Email}",      // Direct field value
	})

Wiring into a factory:

	store, err := ddb.NewDynamodbDataStoreFromConfig[Account](ctx, cfg.DynamoDB)
	if err != nil {
	    return err
	}
	storage := entityfactory.NewStorage()
	entityfactory.RegisterDataStore[Account](storage, store)

Integration tests are tagged "integration" and read the AWS_* variables from
the environment or a .env file.
*/
package ddb
