// Package users implements the credential store: user identity records
// keyed by a unique username, with an in-memory and a Postgres backend
// behind one Repository interface.
package users

import "context"

// Repository is the credential store contract.
//
// Create must be atomic with respect to the username-existence check: of
// two concurrent Create calls with the same username exactly one succeeds,
// the other observes common.ErrorAlreadyExists. Lookups return
// common.ErrorNotFound for missing records.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash, salt []byte) error
}
