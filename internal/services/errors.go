package services

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrSessionExpired  = errors.New("session expired")
	ErrGateway         = errors.New("payment gateway error")
	ErrStorageDisabled = errors.New("blob storage not configured")
)
