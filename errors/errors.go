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
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")
	
	// ErrAlreadyExists is returned when attempting to create an entity that already exists
	ErrAlreadyExists = errors.New("entity already exists")
	
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	
	// ErrConditionFailed is returned when a conditional update fails
	ErrConditionFailed = errors.New("condition check failed")
	
	// ErrUnsupportedType is returned when a field's type and markers resolve to no strategy
	ErrUnsupportedType = errors.New("unsupported field type")

	// ErrReflectionAccess is returned when reading or setting a field fails
	ErrReflectionAccess = errors.New("reflection access failed")

	// ErrNarrowingOverflow is reported when an Int64 does not fit the target integer field
	ErrNarrowingOverflow = errors.New("integer narrowing overflow")

	// ErrInstantiation is returned when a target type cannot be default-constructed
	ErrInstantiation = errors.New("cannot instantiate type")

	// ErrMissingID is returned when an update is attempted without an id
	ErrMissingID = errors.New("missing entity id")
)

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

// ConditionFailedError represents a failed conditional operation. Cause, when
// set, says what the failed condition means for the entity.
type ConditionFailedError struct {
	Operation string
	Condition string
	Cause     error
}

func (e *ConditionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("condition check failed for %s operation: %s: %v", e.Operation, e.Condition, e.Cause)
	}
	return fmt.Sprintf("condition check failed for %s operation: %s", e.Operation, e.Condition)
}

func (e *ConditionFailedError) Is(target error) bool {
	return target == ErrConditionFailed
}

func (e *ConditionFailedError) Unwrap() error {
	return e.Cause
}

// UnsupportedTypeError represents a field whose type/marker combination has no encoding strategy
type UnsupportedTypeError struct {
	Field  string
	Type   string
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("field %q of type %s is not supported: %s", e.Field, e.Type, e.Reason)
	}
	return fmt.Sprintf("field %q of type %s is not supported", e.Field, e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// ReflectionAccessError represents a failed field read, field write or instantiation
type ReflectionAccessError struct {
	Field string
	Op    string
	Cause error
}

func (e *ReflectionAccessError) Error() string {
	return fmt.Sprintf("%s of field %q failed: %v", e.Op, e.Field, e.Cause)
}

func (e *ReflectionAccessError) Is(target error) bool {
	return target == ErrReflectionAccess
}

func (e *ReflectionAccessError) Unwrap() error {
	return e.Cause
}

// NarrowingOverflowError represents an Int64 that was truncated to fit a smaller integer field
type NarrowingOverflowError struct {
	Field string
	Value int64
	Bits  int
}

func (e *NarrowingOverflowError) Error() string {
	return fmt.Sprintf("value %d of field %q overflows int%d", e.Value, e.Field, e.Bits)
}

func (e *NarrowingOverflowError) Is(target error) bool {
	return target == ErrNarrowingOverflow
}

// InstantiationError represents a target type that cannot be default-constructed
type InstantiationError struct {
	Type   string
	Reason string
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("cannot instantiate %s: %s", e.Type, e.Reason)
}

func (e *InstantiationError) Is(target error) bool {
	return target == ErrInstantiation
}

// MissingIDError represents an update of an entity that carries no id
type MissingIDError struct {
	Kind string
}

func (e *MissingIDError) Error() string {
	return fmt.Sprintf("update of %s requires an id", e.Kind)
}

func (e *MissingIDError) Is(target error) bool {
	return target == ErrMissingID || target == ErrInvalidInput
}

// Helper functions for creating errors

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

// NewConditionFailedError creates a new ConditionFailedError
func NewConditionFailedError(operation, condition string) error {
	return &ConditionFailedError{Operation: operation, Condition: condition}
}

// NewConditionFailedCause creates a ConditionFailedError caused by cause,
// typically a NotFoundError or AlreadyExistsError
func NewConditionFailedCause(operation, condition string, cause error) error {
	return &ConditionFailedError{Operation: operation, Condition: condition, Cause: cause}
}

// NewUnsupportedTypeError creates a new UnsupportedTypeError
func NewUnsupportedTypeError(field, typ, reason string) error {
	return &UnsupportedTypeError{Field: field, Type: typ, Reason: reason}
}

// NewReflectionAccessError creates a new ReflectionAccessError
func NewReflectionAccessError(field, op string, cause error) error {
	return &ReflectionAccessError{Field: field, Op: op, Cause: cause}
}

// NewNarrowingOverflowError creates a new NarrowingOverflowError
func NewNarrowingOverflowError(field string, value int64, bits int) error {
	return &NarrowingOverflowError{Field: field, Value: value, Bits: bits}
}

// NewInstantiationError creates a new InstantiationError
func NewInstantiationError(typ, reason string) error {
	return &InstantiationError{Type: typ, Reason: reason}
}

// NewMissingIDError creates a new MissingIDError
func NewMissingIDError(kind string) error {
	return &MissingIDError{Kind: kind}
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

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsUnsupportedType checks if an error is an unsupported type error
func IsUnsupportedType(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}

// IsReflectionAccess checks if an error is a reflection access error
func IsReflectionAccess(err error) bool {
	return errors.Is(err, ErrReflectionAccess)
}

// IsNarrowingOverflow checks if an error is a narrowing overflow
func IsNarrowingOverflow(err error) bool {
	return errors.Is(err, ErrNarrowingOverflow)
}

// IsMissingID checks if an error is a missing id error
func IsMissingID(err error) bool {
	return errors.Is(err, ErrMissingID)
}
