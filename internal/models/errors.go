package models

import "github.com/pkg/errors"

var (
	// ErrAuthRequired is returned when an operation needs an identity and none was resolved.
	ErrAuthRequired = errors.New("login required")
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("already exists")
	// ErrInvalidSession is returned for malformed, expired or revoked session tokens.
	ErrInvalidSession = errors.New("invalid session")
)
