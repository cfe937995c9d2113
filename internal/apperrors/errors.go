// Package apperrors defines the error kinds surfaced by the service layer.
// Authorization and resolution errors are raised at the point of detection and
// propagate unmodified to the transport boundary.
package apperrors

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a resource id has no match in the actor's
// authorized scope. For non-privileged actors this is deliberately
// indistinguishable from "exists but not yours".
type NotFoundError struct {
	Resource string
	Field    string
	Value    interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Resource, e.Field, e.Value)
}

// NotFound builds a NotFoundError for the given resource lookup
func NotFound(resource, field string, value interface{}) error {
	return &NotFoundError{Resource: resource, Field: field, Value: value}
}

// AccessDeniedError signals that an authenticated actor lacks the capability
// for this specific resource instance.
type AccessDeniedError struct {
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

// AccessDenied builds an AccessDeniedError with an explanatory message
func AccessDenied(message string) error {
	return &AccessDeniedError{Message: message}
}

// ConflictError signals a uniqueness violation, e.g. a duplicate email at
// registration.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Conflict builds a ConflictError
func Conflict(message string) error {
	return &ConflictError{Message: message}
}

// UnauthenticatedError signals a credential mismatch at login. The message is
// generic and never reveals which of email/password was wrong.
type UnauthenticatedError struct {
	Message string
}

func (e *UnauthenticatedError) Error() string { return e.Message }

// Unauthenticated builds an UnauthenticatedError
func Unauthenticated(message string) error {
	return &UnauthenticatedError{Message: message}
}

// ValidationError signals structural or field-constraint violations on input
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation error: " + e.Errors[0]
	}
	return fmt.Sprintf("validation error (%d violations)", len(e.Errors))
}

// Validation builds a ValidationError from per-field messages
func Validation(errs ...string) error {
	return &ValidationError{Errors: errs}
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsAccessDenied reports whether err is an AccessDeniedError
func IsAccessDenied(err error) bool {
	var e *AccessDeniedError
	return errors.As(err, &e)
}

// IsConflict reports whether err is a ConflictError
func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

// IsUnauthenticated reports whether err is an UnauthenticatedError
func IsUnauthenticated(err error) bool {
	var e *UnauthenticatedError
	return errors.As(err, &e)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
