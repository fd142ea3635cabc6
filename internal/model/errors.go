package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches.
	ErrNotFound = errors.New("not found")

	// ErrTokenExpired is returned when a session token's expiry has passed.
	ErrTokenExpired = errors.New("session token expired")

	// ErrTokenInvalid is returned when a session token is malformed or its
	// signature does not verify.
	ErrTokenInvalid = errors.New("session token invalid")
)
