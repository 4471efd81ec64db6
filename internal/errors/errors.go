package errors

import (
	"errors"
	"fmt"
)

// Common error types for the SSO client
var (
	// Session errors
	ErrSessionNotInitialized = errors.New("session not initialized, construct a controller with an APPID first")
	ErrInvalidSession        = errors.New("invalid session")

	// Token errors
	ErrTokenDecode     = errors.New("token decode failed")
	ErrTokenNotFound   = errors.New("token not found")
	ErrExchangeFailure = errors.New("sso token exchange failed")

	// Transport errors
	ErrUnauthorized = errors.New("unauthorized")

	// General errors
	ErrNotFound = errors.New("not found")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is errors.New, re-exported so callers need only one errors import
func New(text string) error {
	return errors.New(text)
}
