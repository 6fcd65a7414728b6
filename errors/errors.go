/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrUndefinedBlueprint is returned when no blueprint is registered for a (type, variant) pair
	ErrUndefinedBlueprint = errors.New("undefined blueprint")

	// ErrFieldNotFound is returned when hydration or extraction names a field the type does not declare
	ErrFieldNotFound = errors.New("field not found")

	// ErrTypeResolution is returned when a type cannot be resolved or allocated
	ErrTypeResolution = errors.New("type cannot be resolved")

	// ErrNoPersistenceHandle is returned when create finds no persistence handle for a type
	ErrNoPersistenceHandle = errors.New("no persistence handle for type")

	// ErrHydration is returned when a value cannot be assigned to a field
	ErrHydration = errors.New("hydration failed")

	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned when attempting to register something that already exists
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoIndexMap is returned when no index map is found for a type
	ErrNoIndexMap = errors.New("no index map found for type")
)

// UndefinedBlueprintError represents a lookup of an unregistered (type, variant) pair
type UndefinedBlueprintError struct {
	Type    string
	Variant string
}

func (e *UndefinedBlueprintError) Error() string {
	return fmt.Sprintf("no blueprint defined for %s (variant %q)", e.Type, e.Variant)
}

func (e *UndefinedBlueprintError) Is(target error) bool {
	return target == ErrUndefinedBlueprint
}

// FieldNotFoundError represents a reference to a field the type does not declare
type FieldNotFoundError struct {
	Type  string
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("%s has no field %q", e.Type, e.Field)
}

func (e *FieldNotFoundError) Is(target error) bool {
	return target == ErrFieldNotFound
}

// TypeResolutionError represents a type that cannot be instantiated
type TypeResolutionError struct {
	Type   string
	Reason string
}

func (e *TypeResolutionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot resolve type %s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("cannot resolve type %s", e.Type)
}

func (e *TypeResolutionError) Is(target error) bool {
	return target == ErrTypeResolution
}

// NoPersistenceHandleError represents a create call for a type with no persistence handle
type NoPersistenceHandleError struct {
	Type string
}

func (e *NoPersistenceHandleError) Error() string {
	return fmt.Sprintf("unable to find persistence handle for %s", e.Type)
}

func (e *NoPersistenceHandleError) Is(target error) bool {
	return target == ErrNoPersistenceHandle
}

// HydrationError is returned when a value cannot be stored in an entity field.
type HydrationError struct {
	Type  string
	Field string
	Cause error
}

func (e *HydrationError) Error() string {
	return fmt.Sprintf("hydrating %s.%s: %v", e.Type, e.Field, e.Cause)
}

func (e *HydrationError) Is(target error) bool {
	return target == ErrHydration
}

// Unwrap returns the underlying cause of the HydrationError.
func (e *HydrationError) Unwrap() error {
	return e.Cause
}

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewUndefinedBlueprintError creates a new UndefinedBlueprintError
func NewUndefinedBlueprintError(entityType, variant string) error {
	return &UndefinedBlueprintError{Type: entityType, Variant: variant}
}

// NewFieldNotFoundError creates a new FieldNotFoundError
func NewFieldNotFoundError(entityType, field string) error {
	return &FieldNotFoundError{Type: entityType, Field: field}
}

// NewTypeResolutionError creates a new TypeResolutionError
func NewTypeResolutionError(entityType, reason string) error {
	return &TypeResolutionError{Type: entityType, Reason: reason}
}

// NewNoPersistenceHandleError creates a new NoPersistenceHandleError
func NewNoPersistenceHandleError(entityType string) error {
	return &NoPersistenceHandleError{Type: entityType}
}

// NewHydrationError creates a new HydrationError
func NewHydrationError(entityType, field string, cause error) error {
	return &HydrationError{Type: entityType, Field: field, Cause: cause}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsUndefinedBlueprint checks if an error is an undefined blueprint error
func IsUndefinedBlueprint(err error) bool {
	return errors.Is(err, ErrUndefinedBlueprint)
}

// IsFieldNotFound checks if an error is a field not found error
func IsFieldNotFound(err error) bool {
	return errors.Is(err, ErrFieldNotFound)
}

// IsTypeResolution checks if an error is a type resolution error
func IsTypeResolution(err error) bool {
	return errors.Is(err, ErrTypeResolution)
}

// IsNoPersistenceHandle checks if an error is a missing persistence handle error
func IsNoPersistenceHandle(err error) bool {
	return errors.Is(err, ErrNoPersistenceHandle)
}

// IsHydration checks if an error is a hydration error
func IsHydration(err error) bool {
	return errors.Is(err, ErrHydration)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
