/*
Package errors provides semantic error types for the entityfactory library.

Each failure the factory can surface has a sentinel and a typed error. Typed
errors match their sentinel through errors.Is, so callers can branch on the
kind and still read the details:

	var (
	    ErrUndefinedBlueprint  = errors.New("undefined blueprint")
	    ErrFieldNotFound       = errors.New("field not found")
	    ErrTypeResolution      = errors.New("type cannot be resolved")
	    ErrNoPersistenceHandle = errors.New("no persistence handle for type")
	    ErrHydration           = errors.New("hydration failed")
	)

The datastore backends reuse ErrNotFound, ErrAlreadyExists, ErrInvalidInput
and ErrNoIndexMap.

Usage:

	builder, err := f.Of(reflect.TypeFor[User](), "admin")
	if err != nil {
	    if errors.IsUndefinedBlueprint(err) {
	        // register the variant first
	    }
	    return err
	}

Errors returned by blueprint bodies and deferred values are never wrapped in
these types; they reach the caller unchanged.
*/
package errors
