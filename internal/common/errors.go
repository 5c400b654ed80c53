// Package common defines shared constants and sentinel errors used across
// client and server layers of authsvc. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorInvalidInput = errors.New("invalid input")

	// Session lifecycle errors. Unknown, revoked, and expired tokens all
	// collapse into ErrorInvalidSession so the failure reason never leaks.
	ErrorInvalidSession = errors.New("invalid session")

	// ErrorTokenCollision signals that a freshly generated session token
	// already exists in the store. It never crosses the service boundary;
	// the store retries generation instead.
	ErrorTokenCollision = errors.New("token collision")
)
