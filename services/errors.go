package services

import (
	"errors"
	"fmt"
)

// Error classes handlers map to HTTP statuses. Match with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
)

// NotFoundError names the missing record, e.g. "Daily menu not found with ID: 7".
type NotFoundError struct {
	Resource string
	Field    string
	Value    any
}

func notFound(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, Field: "ID", Value: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Resource, e.Field, e.Value)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError is a client mistake; its message is safe to return as-is.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

var (
	ErrInvalidQuantity     = invalid("quantity must be greater than zero")
	ErrInvalidRating       = invalid("rating must be between 1 and 5")
	ErrInvalidMealType     = invalid("meal type must be one of BREAKFAST, LUNCH, SNACKS, DINNER")
	ErrInvalidFeedbackType = invalid("feedback type must be one of FOOD_QUALITY, SERVICE, CLEANLINESS, GENERAL, COMPLAINT, SUGGESTION")
	ErrEmptyOrder          = invalid("order must contain at least one menu item")
	ErrMenuItemsMissing    = invalid("one or more menu items not found")
	ErrEmptyReply          = invalid("reply must not be empty")
)

// ErrNotOwner is returned when a student acts on another student's record.
var ErrNotOwner = fmt.Errorf("%w: record belongs to another user", ErrForbidden)
