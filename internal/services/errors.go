package services

import (
	"errors"
	"sort"
	"strings"

	"fittrack/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = store.ErrNotFound
)

// User-facing messages shown on the auth pages.
const (
	MsgInvalidCredentials = "Incorrect email or password"
	MsgInvalidResetToken  = "Invalid or expired reset link. Please request a new one."
	MsgPasswordMismatch   = "Passwords do not match"
	MsgEmailRegistered    = "Email already registered"
	MsgUsernameTaken      = "Username already taken"
	MsgResetRequested     = "If an account exists for this email, a password reset link has been generated."
)

// ValidationError carries a summary message plus per-field messages for form re-rendering.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func invalid(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// fieldErrors accumulates per-field problems, keeping the first message for each field.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f fieldErrors) err(msg string) error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Message: msg, Fields: f}
}
