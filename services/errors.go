package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a request with a missing or malformed required field.
	ErrValidation = errors.New("validation failed")
	// ErrPlayerNotFound is returned when no players row exists for the id.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrAdminAuth is returned when the admin secret is missing or wrong.
	ErrAdminAuth = errors.New("invalid admin password")
	// ErrStoreNotConfigured backs the unavailable store used when DATABASE_URL is empty.
	ErrStoreNotConfigured = errors.New("database configuration missing")
)

// BlockedError is returned by the player service for a player with a block record.
type BlockedError struct {
	PlayerID string
	Reason   string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("player %s is blocked: %s", e.PlayerID, e.Reason)
}

// StoreError wraps any data-access failure. Its message is shown to the caller as-is.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// ValidationError carries the caller-facing message; errors.Is(err, ErrValidation) matches it.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validationErr(msg string) error {
	return &ValidationError{Msg: msg}
}
