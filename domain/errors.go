package domain

import "errors"

var (
	// ErrNotSignedIn indicates an action that requires a session.
	ErrNotSignedIn = errors.New("must be signed in")

	// ErrQueryTooShort indicates a search query below the minimum length.
	ErrQueryTooShort = errors.New("search query too short")

	// ErrInvalidCredentials indicates a rejected username/password pair.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
