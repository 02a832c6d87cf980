package service

import (
	"errors"

	"github.com/aussiebroadwan/registrar/pkg/registrarsdk"
)

// Sentinels the HTTP layer maps to status codes.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrFeatureDisabled    = errors.New("feature not enabled")
	ErrNoRegistrations    = errors.New("no registrations match")
)

// ValidationError carries field-level failures back to the caller.
type ValidationError struct {
	Fields registrarsdk.FieldErrors
}

func (e *ValidationError) Error() string { return e.Fields.Error() }

func newValidationError(fields registrarsdk.FieldErrors) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func invalidField(field, issue string) error {
	return &ValidationError{Fields: registrarsdk.FieldErrors{{Field: field, Issue: issue}}}
}
