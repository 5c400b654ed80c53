package client

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAlreadyExists = errors.New("username already taken")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotSignedIn   = errors.New("not signed in")
)
