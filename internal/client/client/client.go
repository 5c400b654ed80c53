package client

import (
	"context"
	"time"
)

// Client is the CLI-facing contract of the authentication backend. The
// implementation keeps the active session token internally; SignOut and
// ChangePassword operate on the current session.
type Client interface {
	Close() error
	SignUp(ctx context.Context, username, password string) (string, error)
	SignIn(ctx context.Context, username, password string) (time.Time, error)
	SignOut(ctx context.Context) error
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	CheckHealth(ctx context.Context) error
	SignedIn() bool
}
