/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestUndefinedBlueprintError(t *testing.T) {
	err := NewUndefinedBlueprintError("Foo", "colors")

	expected := `no blueprint defined for Foo (variant "colors")`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrUndefinedBlueprint) {
		t.Error("UndefinedBlueprintError should match ErrUndefinedBlueprint")
	}

	if !IsUndefinedBlueprint(err) {
		t.Error("IsUndefinedBlueprint should return true for UndefinedBlueprintError")
	}
}

func TestFieldNotFoundError(t *testing.T) {
	err := NewFieldNotFoundError("Foo", "nope")

	expected := `Foo has no field "nope"`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsFieldNotFound(err) {
		t.Error("IsFieldNotFound should return true for FieldNotFoundError")
	}
}

func TestTypeResolutionError(t *testing.T) {
	tests := []struct {
		name     string
		reason   string
		expected string
	}{
		{
			name:     "with reason",
			reason:   "not a struct",
			expected: "cannot resolve type int: not a struct",
		},
		{
			name:     "without reason",
			reason:   "",
			expected: "cannot resolve type int",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTypeResolutionError("int", tt.reason)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsTypeResolution(err) {
				t.Error("IsTypeResolution should return true for TypeResolutionError")
			}
		})
	}
}

func TestNoPersistenceHandleError(t *testing.T) {
	err := NewNoPersistenceHandleError("Foo")

	expected := "unable to find persistence handle for Foo"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsNoPersistenceHandle(err) {
		t.Error("IsNoPersistenceHandle should return true for NoPersistenceHandleError")
	}
}

func TestHydrationError(t *testing.T) {
	cause := errors.New("cannot assign int to string")
	err := NewHydrationError("Foo", "baz", cause)

	expected := "hydrating Foo.baz: cannot assign int to string"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsHydration(err) {
		t.Error("IsHydration should return true for HydrationError")
	}

	if !errors.Is(err, cause) {
		t.Error("HydrationError should unwrap to its cause")
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("User", "123")

	expected := `User with key "123" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("Product", "ABC")

	expected := `Product with key "ABC" already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsAlreadyExists(err) {
		t.Error("IsAlreadyExists should return true for AlreadyExistsError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "email",
			message:  "invalid format",
			expected: `validation failed for field "email": invalid format`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "missing required fields",
			expected: "validation failed: missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	original := NewUndefinedBlueprintError("Foo", "default")
	wrapped := fmt.Errorf("loading fixtures: %w", original)

	if !IsUndefinedBlueprint(wrapped) {
		t.Error("IsUndefinedBlueprint should work with wrapped errors")
	}

	var target *UndefinedBlueprintError
	if !errors.As(wrapped, &target) || target.Variant != "default" {
		t.Errorf("errors.As should recover the typed error, got %v", target)
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrUndefinedBlueprint,
		ErrFieldNotFound,
		ErrTypeResolution,
		ErrNoPersistenceHandle,
		ErrHydration,
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrNoIndexMap,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
