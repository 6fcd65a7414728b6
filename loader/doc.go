/*
Package loader reads blueprint definitions from YAML files.

A definition file lists blueprints by the type name registered in the
factory's type registry:

	blueprints:
	  - type: foo
	    attributes:
	      baz: '=fake("{firstname}")'
	      qux: '=pick("red", "green", "blue")'
	      bar: '=ref(bar)'
	  - type: foo
	    variant: colors
	    attributes:
	      baz: red
	      qux: '==literal starting with one ='

A file may hold several YAML documents separated by "---"; their blueprints
are loaded in order as if they were one list.

Top-level attribute strings starting with "=" are expressions:

	fake(template)           gofakeit template, e.g. "{email}"
	ref(type[, variant])     deferred build of another blueprint
	pick(a, b, ...)          one of the arguments
	number(min, max)         integer when both bounds are, float otherwise

Usage:

	f := entityfactory.New()
	registry.Register[Foo](f.Types(), "foo")
	if err := f.Load(loader.File("testdata/foo.yaml")); err != nil {
	    return err
	}
*/
package loader
