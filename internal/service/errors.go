package service

import "errors"

// Domain error taxonomy. Handlers map these onto HTTP statuses:
// ErrValidation -> 400, ErrForbidden -> 403, ErrNotFound -> 404,
// ErrConflict -> 409. Everything else is a 500.
var (
	ErrValidation = errors.New("validation")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)
