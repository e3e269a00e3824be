package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrPropertyNotFound   = fmt.Errorf("property %w", ErrNotFound)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// ValidationError reports caller-fixable input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError wraps a media upload failure.
type StorageError struct {
	Key string
	Err error
}

func (e *StorageError) Error() string { return "store " + e.Key + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }
