package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown name and wrong password,
	// so a caller cannot enumerate account names.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized means no valid session. Recoverable by logging in.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means a valid session without admin level.
	ErrForbidden = errors.New("forbidden")
)
