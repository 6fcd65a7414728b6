/*
Package registry manages type names and index maps for entityfactory.

Type Registry:
Maps the entity names used in definition files to Go struct types. A
registry instance belongs to a Factory; there is no package-level type table:

	types := registry.NewTypeRegistry()
	registry.Register[User](types, "user")

	t, err := types.LookupType("user") // errors.TypeResolutionError when missing

Index Map Registry:
Associates Go types with DynamoDB key patterns used by the ddb datastore:

	registry.RegisterIndexMap[User](map[string]string{
	    "PK": "USER#{ID}",
	    "SK": "USER#{ID}",
	})

Both registries are safe for concurrent reads and should be populated during
initialization.
*/
package registry
