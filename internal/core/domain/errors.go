package domain

import (
	"errors"
	"fmt"
)

// Code is the stable, machine-readable identifier carried by every API error.
type Code string

const (
	CodeValidation             Code = "VALIDATION_ERROR"
	CodeUnauthorized           Code = "UNAUTHORIZED"
	CodeForbidden              Code = "FORBIDDEN"
	CodeNotFound               Code = "NOT_FOUND"
	CodeCannotDeleteDependency Code = "CANNOT_DELETE_DEPENDENCY"
	CodeDuplicateField         Code = "DUPLICATE_FIELD"
	CodeInvalidRelationship    Code = "INVALID_RELATIONSHIP"
	CodeInternal               Code = "INTERNAL_ERROR"
)

// Repository-level sentinels. Services translate them into typed errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Token validation failures. They stay distinguishable for callers and logs;
// the HTTP boundary presents all of them as one UNAUTHORIZED response.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenRevoked          = errors.New("token revoked")
)

// Error is the closed set of application errors. Only the types declared in
// this file implement it, and each Code belongs to exactly one type.
type Error interface {
	error
	Code() Code
	// Fields returns the code-specific payload merged into the error envelope.
	Fields() map[string]any
	sealed()
}

// AsError reports whether err wraps an application error and returns it.
func AsError(err error) (Error, bool) {
	var de Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// ValidationError signals missing or malformed input.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string          { return e.Message }
func (e *ValidationError) Code() Code             { return CodeValidation }
func (e *ValidationError) Fields() map[string]any { return nil }
func (e *ValidationError) sealed()                {}

// UnauthorizedError signals bad credentials or a missing/invalid token.
// Cause is kept for logging and never rendered.
type UnauthorizedError struct {
	Message string
	Cause   error
}

func NewUnauthorizedError(message string, cause error) *UnauthorizedError {
	return &UnauthorizedError{Message: message, Cause: cause}
}

// Error returns only the client-facing message; the cause stays reachable
// through Unwrap.
func (e *UnauthorizedError) Error() string          { return e.Message }
func (e *UnauthorizedError) Unwrap() error          { return e.Cause }
func (e *UnauthorizedError) Code() Code             { return CodeUnauthorized }
func (e *UnauthorizedError) Fields() map[string]any { return nil }
func (e *UnauthorizedError) sealed()                {}

// ForbiddenError signals an authenticated caller without the required role.
type ForbiddenError struct {
	Message string
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func (e *ForbiddenError) Error() string          { return e.Message }
func (e *ForbiddenError) Code() Code             { return CodeForbidden }
func (e *ForbiddenError) Fields() map[string]any { return nil }
func (e *ForbiddenError) sealed()                {}

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func (e *NotFoundError) Error() string          { return e.Message }
func (e *NotFoundError) Code() Code             { return CodeNotFound }
func (e *NotFoundError) Fields() map[string]any { return nil }
func (e *NotFoundError) sealed()                {}

// CannotDeleteDependencyError is raised when a delete would orphan dependents.
type CannotDeleteDependencyError struct {
	Entity          string
	DependentCount  int64
	DependentEntity string
}

func NewCannotDeleteDependencyError(entity string, dependentCount int64, dependentEntity string) *CannotDeleteDependencyError {
	return &CannotDeleteDependencyError{
		Entity:          entity,
		DependentCount:  dependentCount,
		DependentEntity: dependentEntity,
	}
}

func (e *CannotDeleteDependencyError) Error() string {
	return fmt.Sprintf("Não é possível excluir %s pois existem %d %s vinculados", e.Entity, e.DependentCount, e.DependentEntity)
}
func (e *CannotDeleteDependencyError) Code() Code { return CodeCannotDeleteDependency }
func (e *CannotDeleteDependencyError) Fields() map[string]any {
	return map[string]any{
		"entity":          e.Entity,
		"dependentCount":  e.DependentCount,
		"dependentEntity": e.DependentEntity,
	}
}
func (e *CannotDeleteDependencyError) sealed() {}

// DuplicateFieldError is raised when a uniqueness constraint would be violated.
type DuplicateFieldError struct {
	Field string
	Value string
}

func NewDuplicateFieldError(field, value string) *DuplicateFieldError {
	return &DuplicateFieldError{Field: field, Value: value}
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("Já existe um registro com %s = \"%s\"", e.Field, e.Value)
}
func (e *DuplicateFieldError) Code() Code { return CodeDuplicateField }
func (e *DuplicateFieldError) Fields() map[string]any {
	return map[string]any{"field": e.Field, "value": e.Value}
}
func (e *DuplicateFieldError) sealed() {}

// InvalidRelationshipError is raised when related entities do not fit together.
type InvalidRelationshipError struct {
	Message string
}

func NewInvalidRelationshipError(message string) *InvalidRelationshipError {
	return &InvalidRelationshipError{Message: message}
}

func (e *InvalidRelationshipError) Error() string          { return e.Message }
func (e *InvalidRelationshipError) Code() Code             { return CodeInvalidRelationship }
func (e *InvalidRelationshipError) Fields() map[string]any { return nil }
func (e *InvalidRelationshipError) sealed()                {}
