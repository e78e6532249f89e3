// Package store owns the content and social-graph persistence logic and the
// domain error taxonomy shared by every engine operation.
package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when an authenticated caller is not
	// permitted to perform the mutation. It is never downgraded to
	// ErrNotFound so existence information leaks consistently (403 policy).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDuplicateEmail is returned on signup with an already registered email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password, indistinguishably.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSelfFollow rejects a user following themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrAlreadyFollowing rejects a duplicate follow edge.
	ErrAlreadyFollowing = errors.New("already following this user")
	// ErrNotFollowing rejects an unfollow without an existing edge.
	ErrNotFollowing = errors.New("not following this user")
	// ErrUnavailable marks a best-effort external collaborator failure.
	ErrUnavailable = errors.New("external service unavailable")
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violated field of a request, not just the
// first one.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Violations collects field errors and becomes a *ValidationError once any
// rule failed.
type Violations struct {
	fields []FieldError
}

func (v *Violations) Add(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

// Err returns nil when no rule failed.
func (v *Violations) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
