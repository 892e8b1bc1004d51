// Package service provides business logic for the application.
package service

import (
	"errors"
	"strings"
)

// Service errors.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUserExists         = errors.New("username or email already exists")
	ErrCacheNotConfigured = errors.New("cache not configured")
)

// ValidationError describes rejected input. It matches ErrValidation with
// errors.Is.
type ValidationError struct {
	// Fields lists missing required fields, in request order.
	Fields []string
	// Reason replaces the default message when set.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "missing required field(s): " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// requireFields returns a *ValidationError naming every blank field, or nil.
// Pairs are name, value.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}
