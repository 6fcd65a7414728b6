/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/suparena/entityfactory"
	"github.com/suparena/entityfactory/config"
)

// ExprPrefix marks a string attribute as an expression. Doubling it escapes a
// literal leading "=".
const ExprPrefix = "="

type document struct {
	Blueprints []blueprintSpec `yaml:"blueprints"`
}

type blueprintSpec struct {
	Type       string         `yaml:"type"`
	Variant    string         `yaml:"variant"`
	Attributes map[string]any `yaml:"attributes"`
}

// File returns a Definition that reads the YAML definitions at path when the
// factory loads it.
func File(path string) entityfactory.Definition {
	return func(f *entityfactory.Factory) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read definitions: %w", err)
		}
		if err := apply(f, data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	}
}

// Files combines File for each path, applied in order.
func Files(paths ...string) entityfactory.Definition {
	return func(f *entityfactory.Factory) error {
		for _, path := range paths {
			if err := File(path)(f); err != nil {
				return err
			}
		}
		return nil
	}
}

// FromConfig loads the definition files named by cfg.
func FromConfig(cfg *config.Config) entityfactory.Definition {
	return Files(cfg.DefinitionFiles...)
}

// Parse returns a Definition for YAML definitions held in memory.
func Parse(data []byte) entityfactory.Definition {
	return func(f *entityfactory.Factory) error {
		return apply(f, data)
	}
}

func apply(f *entityfactory.Factory, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var specs []blueprintSpec
	for n := 0; ; n++ {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("decode definitions (document %d): %w", n, err)
		}
		specs = append(specs, doc.Blueprints...)
	}

	// Compile everything before defining anything so a bad file leaves the
	// factory untouched.
	type compiled struct {
		spec blueprintSpec
		bp   entityfactory.Blueprint
	}
	blueprints := make([]compiled, 0, len(specs))
	for i, spec := range specs {
		bp, err := compileBlueprint(spec, f)
		if err != nil {
			return fmt.Errorf("blueprint %d (%s): %w", i, spec.Type, err)
		}
		blueprints = append(blueprints, compiled{spec: spec, bp: bp})
	}

	for _, c := range blueprints {
		t, _ := f.Types().LookupType(c.spec.Type)
		f.Define(t, c.bp, c.spec.Variant)
	}

	logrus.WithField("blueprints", len(blueprints)).Debug("loader: definitions applied")
	return nil
}

func compileBlueprint(spec blueprintSpec, f *entityfactory.Factory) (entityfactory.Blueprint, error) {
	if spec.Type == "" {
		return nil, fmt.Errorf("missing type")
	}
	if _, err := f.Types().LookupType(spec.Type); err != nil {
		return nil, err
	}

	literals := make(map[string]any)
	generators := make(map[string]generator)
	for name, raw := range spec.Attributes {
		s, isString := raw.(string)
		switch {
		case isString && strings.HasPrefix(s, ExprPrefix+ExprPrefix):
			literals[name] = s[len(ExprPrefix):]
		case isString && strings.HasPrefix(s, ExprPrefix):
			gen, err := compile(s[len(ExprPrefix):], f)
			if err != nil {
				return nil, fmt.Errorf("attribute %s: %w", name, err)
			}
			generators[name] = gen
		default:
			literals[name] = raw
		}
	}

	return func(fake *gofakeit.Faker, f *entityfactory.Factory) entityfactory.Attributes {
		attrs := make(entityfactory.Attributes, len(literals)+len(generators))
		for name, v := range literals {
			attrs[name] = entityfactory.Concrete(clone(v))
		}
		for name, gen := range generators {
			attrs[name] = gen(fake, f)
		}
		return attrs
	}, nil
}

// clone copies decoded YAML collections so instances never share them.
func clone(v any) any {
	switch c := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(c))
		for k, item := range c {
			m[k] = clone(item)
		}
		return m
	case []any:
		s := make([]any, len(c))
		for i, item := range c {
			s[i] = clone(item)
		}
		return s
	}
	return v
}
