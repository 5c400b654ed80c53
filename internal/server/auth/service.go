// Package auth orchestrates sign-up, sign-in, sign-out, and credential
// updates on top of the credential store, the password hasher, and the
// session store.
//
// Errors returned here are the sentinel values from internal/common; the
// gRPC layer translates them into status codes. A failed sign-in reports
// common.ErrorUnauthorized whether the username is unknown or the password
// wrong, so callers cannot probe which usernames exist.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dsmelov/authsvc/internal/common"
	"github.com/dsmelov/authsvc/internal/server/hashing"
	"github.com/dsmelov/authsvc/internal/server/sessions"
	"github.com/dsmelov/authsvc/internal/server/users"
)

type Service struct {
	repo       users.Repository
	hasher     *hashing.Hasher
	sessions   *sessions.Store
	sessionTTL time.Duration

	// decoySalt and decoyDigest feed a full verification pass when the
	// username is unknown, keeping the unknown-user and wrong-password
	// paths close in cost.
	decoySalt   []byte
	decoyDigest []byte
}

// NewService wires the authentication flows. sessionTTL bounds every issued
// session; 0 disables expiry.
func NewService(repo users.Repository, hasher *hashing.Hasher, store *sessions.Store, sessionTTL time.Duration) (*Service, error) {
	decoySalt, err := hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generating decoy salt: %w", err)
	}
	return &Service{
		repo:        repo,
		hasher:      hasher,
		sessions:    store,
		sessionTTL:  sessionTTL,
		decoySalt:   decoySalt,
		decoyDigest: hasher.Hash([]byte("decoy"), decoySalt),
	}, nil
}

// SignUp creates a credential record and returns the new user ID. No
// session is issued; sign-in is a separate step.
func (s *Service) SignUp(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password must not be empty", common.ErrorInvalidInput)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return "", fmt.Errorf("%w: salt generation: %v", common.ErrorInternal, err)
	}
	digest := s.hasher.Hash([]byte(password), salt)

	user, err := s.repo.Create(ctx, &users.User{
		UserName:     username,
		PasswordHash: digest,
		Salt:         salt,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", err
		}
		return "", fmt.Errorf("%w: creating user: %v", common.ErrorInternal, err)
	}

	return user.ID, nil
}

// SignIn verifies the credentials and mints a session. The unknown-username
// and wrong-password failures are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, username, password string) (*sessions.Session, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password must not be empty", common.ErrorInvalidInput)
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Burn a verification anyway so this path costs roughly the
			// same as a wrong password.
			s.hasher.Verify([]byte(password), s.decoySalt, s.decoyDigest)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: looking up user: %v", common.ErrorInternal, err)
	}

	if !s.hasher.Verify([]byte(password), user.Salt, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	sess, err := s.sessions.Create(user.ID, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: creating session: %v", common.ErrorInternal, err)
	}
	return sess, nil
}

// SignOut revokes the session token. A token that is unknown, expired, or
// already revoked yields common.ErrorInvalidSession.
func (s *Service) SignOut(ctx context.Context, token string) error {
	return s.sessions.Revoke(token)
}

// Authenticate resolves a presented session token to its user ID. This is
// the gate for every RPC requiring a logged-in user.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	return s.sessions.Validate(token)
}

// ChangePassword verifies the caller's current password and installs a new
// hash under a fresh salt. The caller is identified by userID, already
// authenticated by the session gate.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: passwords must not be empty", common.ErrorInvalidInput)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return fmt.Errorf("%w: looking up user: %v", common.ErrorInternal, err)
	}

	if !s.hasher.Verify([]byte(oldPassword), user.Salt, user.PasswordHash) {
		return common.ErrorUnauthorized
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return fmt.Errorf("%w: salt generation: %v", common.ErrorInternal, err)
	}
	digest := s.hasher.Hash([]byte(newPassword), salt)

	if err := s.repo.UpdatePassword(ctx, user.ID, digest, salt); err != nil {
		return fmt.Errorf("%w: updating password: %v", common.ErrorInternal, err)
	}
	return nil
}
