package usecase

import "errors"

// Service-level sentinel errors. Repository sentinels (ErrNotFound,
// ErrDuplicate, ErrRestricted) pass through untouched; handlers map all of
// them with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
