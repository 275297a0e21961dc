package services

import "errors"

var (
	// ErrMissingCredentials is returned before any network call when the
	// email or password field is empty.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrInvalidCredentials is returned when the identity provider rejects
	// a sign-in. Deliberately generic: it never reveals which field was
	// wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
