/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/brianvoe/gofakeit/v6"

	"github.com/suparena/entityfactory"
)

// Call parses: name(arg, ...)
type Call struct {
	Func string `parser:"@Ident '('"`
	Args []*Arg `parser:"( @@ ( ',' @@ )* )? ')'"`
}

// Arg is one of: "string", number or bare identifier.
type Arg struct {
	String *string `parser:"  @String"`
	Number *Number `parser:"| @@"`
	Ident  *string `parser:"| @Ident"`
}

// Number parses: [-] int | float
type Number struct {
	Negative bool   `parser:"@'-'?"`
	Literal  string `parser:"@(Float | Int)"`
}

var exprParser = participle.MustBuild[Call](
	participle.Unquote("String"),
)

// generator produces one attribute value per built instance.
type generator func(fake *gofakeit.Faker, f *entityfactory.Factory) entityfactory.Value

// compile parses expr and binds it against f. Type names used by ref are
// resolved here so a bad reference fails the load rather than a build.
func compile(expr string, f *entityfactory.Factory) (generator, error) {
	call, err := exprParser.ParseString("", expr)
	if err != nil {
		return nil, fmt.Errorf("parse expression %q: %w", expr, err)
	}

	args := make([]any, len(call.Args))
	for i, a := range call.Args {
		if args[i], err = a.value(); err != nil {
			return nil, fmt.Errorf("expression %q: %w", expr, err)
		}
	}

	gen, err := bind(call.Func, args, f)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", expr, err)
	}
	return gen, nil
}

func bind(name string, args []any, f *entityfactory.Factory) (generator, error) {
	switch name {
	case "fake":
		if len(args) != 1 {
			return nil, fmt.Errorf("fake takes 1 argument, got %d", len(args))
		}
		tpl, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("fake template must be a string")
		}
		return func(fake *gofakeit.Faker, _ *entityfactory.Factory) entityfactory.Value {
			return entityfactory.Concrete(fake.Generate(tpl))
		}, nil

	case "ref":
		if len(args) < 1 || len(args) > 2 {
			return nil, fmt.Errorf("ref takes 1 or 2 arguments, got %d", len(args))
		}
		names := make([]string, len(args))
		for i, a := range args {
			s, ok := a.(string)
			if !ok {
				return nil, fmt.Errorf("ref argument %d must be a name", i+1)
			}
			names[i] = s
		}
		t, err := f.Types().LookupType(names[0])
		if err != nil {
			return nil, err
		}
		variant := names[1:]
		return func(_ *gofakeit.Faker, f *entityfactory.Factory) entityfactory.Value {
			return f.Ref(t, variant...)
		}, nil

	case "pick":
		if len(args) == 0 {
			return nil, fmt.Errorf("pick needs at least 1 argument")
		}
		return func(fake *gofakeit.Faker, _ *entityfactory.Factory) entityfactory.Value {
			return entityfactory.Concrete(args[fake.Number(0, len(args)-1)])
		}, nil

	case "number":
		if len(args) != 2 {
			return nil, fmt.Errorf("number takes 2 arguments, got %d", len(args))
		}
		lo, hi := args[0], args[1]
		if loInt, ok := lo.(int64); ok {
			if hiInt, ok := hi.(int64); ok {
				if loInt > hiInt {
					return nil, fmt.Errorf("number range %d..%d is empty", loInt, hiInt)
				}
				return func(fake *gofakeit.Faker, _ *entityfactory.Factory) entityfactory.Value {
					return entityfactory.Concrete(int64(fake.Number(int(loInt), int(hiInt))))
				}, nil
			}
		}
		loF, okLo := toFloat(lo)
		hiF, okHi := toFloat(hi)
		if !okLo || !okHi {
			return nil, fmt.Errorf("number bounds must be numeric")
		}
		if loF > hiF {
			return nil, fmt.Errorf("number range %g..%g is empty", loF, hiF)
		}
		return func(fake *gofakeit.Faker, _ *entityfactory.Factory) entityfactory.Value {
			return entityfactory.Concrete(fake.Float64Range(loF, hiF))
		}, nil
	}

	return nil, fmt.Errorf("unknown function %q", name)
}

func (a *Arg) value() (any, error) {
	switch {
	case a.String != nil:
		return *a.String, nil
	case a.Ident != nil:
		return *a.Ident, nil
	case a.Number != nil:
		lit := a.Number.Literal
		if a.Number.Negative {
			lit = "-" + lit
		}
		if !strings.ContainsAny(lit, ".eE") {
			if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
				return n, nil
			}
		}
		return strconv.ParseFloat(lit, 64)
	}
	return nil, fmt.Errorf("empty argument")
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
