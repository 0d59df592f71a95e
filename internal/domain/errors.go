package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrInvalidInput      = errors.New("invalid input")

	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is returned for any token that fails validation.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUnauthorized means the actor is known but the action is not allowed.
	ErrUnauthorized = errors.New("unauthorized")
)
