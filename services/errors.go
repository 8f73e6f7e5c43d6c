package services

import "errors"

// Failure taxonomy for all service operations. Every operation validates its
// preconditions before the first write and returns one of these wrapped
// sentinels on failure, so a failing call leaves no partial state.
var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrAlreadyCompleted    = errors.New("already in terminal state")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrArityMismatch       = errors.New("submission arity mismatch")
	ErrIntegrity           = errors.New("integrity violation")
	ErrConflict            = errors.New("conflict")
	ErrValidation          = errors.New("validation failed")
)
