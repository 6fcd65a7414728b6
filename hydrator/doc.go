/*
Package hydrator builds and inspects entity structs without going through
their constructors.

Entities usually guard their state behind unexported fields and validating
constructors. Fixtures still need arbitrary state, so the hydrator allocates
the zero value of the type and writes fields directly, exported or not:

	type Account struct {
	    id     string
	    owner  *User
	    opened time.Time `fixture:"openedAt"`
	}

	v, err := hydrator.NewInstance(reflect.TypeFor[Account](), map[string]any{
	    "id":       "acc-1",
	    "openedAt": "2024-05-01T10:00:00Z", // parsed through time.Time.UnmarshalText
	})
	acct := v.(*Account)

	hydrator.Mutate(acct, map[string]any{"id": "acc-2"})
	data, _ := hydrator.Extract(acct)           // every field, declaration order
	data, _ = hydrator.Extract(acct, "id")      // selected fields

Keys match the Go field name or the `fixture` tag alias. Unknown keys fail
with errors.FieldNotFoundError; values that cannot be stored fail with
errors.HydrationError.

Flatten turns an entity into a document of plain values (maps, slices,
strings, numbers) that round-trips through NewInstance. The datastore
backends use it to persist entities whose state is unexported.
*/
package hydrator
