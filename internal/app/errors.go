package app

import (
	"errors"
	"strings"
)

var (
	ErrSignatureMismatch  = errors.New("payment signature mismatch")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrGateway            = errors.New("payment gateway unavailable")
)

// ValidationError lists every field-level problem of a request.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Errors, " ") }

func invalid(msgs ...string) error { return &ValidationError{Errors: msgs} }

// fields accumulates "Please fill <key> field." messages in declaration order.
type fields struct{ errs []string }

func (f *fields) str(key string, v *string) {
	if v == nil || strings.TrimSpace(*v) == "" {
		f.missing(key)
	}
}

func (f *fields) num(key string, v *float64) {
	if v == nil || *v == 0 {
		f.missing(key)
	}
}

func (f *fields) missing(key string) {
	f.errs = append(f.errs, "Please fill "+key+" field.")
}

func (f *fields) add(msg string) { f.errs = append(f.errs, msg) }

func (f *fields) err() error {
	if len(f.errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: f.errs}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func lower(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(*p))
	return &s
}
