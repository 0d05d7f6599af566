package auth

import "errors"

var (
	// ErrUnauthorized means no usable credential: missing, invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is known but lacks the privilege.
	ErrForbidden = errors.New("forbidden")

	ErrMissingToken = wrapUnauthorized("missing token")
	ErrInvalidToken = wrapUnauthorized("invalid token")
	ErrExpiredToken = wrapUnauthorized("token expired")

	ErrInvalidCredentials = wrapUnauthorized("invalid credentials")
)

type unauthorizedError struct{ msg string }

func wrapUnauthorized(msg string) error { return &unauthorizedError{msg: msg} }

func (e *unauthorizedError) Error() string { return e.msg }
func (e *unauthorizedError) Unwrap() error { return ErrUnauthorized }
