// Package sessions implements the in-memory session store: opaque
// unguessable tokens mapped to an authenticated user, with optional expiry.
//
// The store is sharded by token so operations on unrelated sessions never
// contend on the same lock; operations on the same token are serialized by
// the shard mutex.
package sessions

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"sync"
	"time"

	"github.com/dsmelov/authsvc/internal/common"
	"github.com/dsmelov/authsvc/internal/randx"
)

const shardCount = 32

// createAttempts bounds token regeneration on the astronomically unlikely
// collision before giving up with an internal error.
const createAttempts = 3

// Session is an issued session token and its lifecycle state.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	// ExpiresAt is the zero time for sessions without expiry.
	ExpiresAt time.Time
	Revoked   bool
}

type shard struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// Store issues, validates, and revokes session tokens. Safe for concurrent
// use. Construct with NewStore; the zero value is not usable.
type Store struct {
	tokenSize int
	rand      io.Reader
	now       func() time.Time
	shards    [shardCount]*shard
}

// NewStore builds a Store issuing tokens of tokenSize random bytes
// (hex-encoded on the wire). rand may be nil for crypto/rand; now may be
// nil for time.Now (tests inject a fake clock).
func NewStore(tokenSize int, rand io.Reader, now func() time.Time) *Store {
	if tokenSize < 16 {
		panic(fmt.Sprintf("sessions: token size %d below 128-bit floor", tokenSize))
	}
	if now == nil {
		now = time.Now
	}
	s := &Store{tokenSize: tokenSize, rand: rand, now: now}
	for i := range s.shards {
		s.shards[i] = &shard{sessions: make(map[string]*Session)}
	}
	return s
}

func (s *Store) shard(token string) *shard {
	h := fnv.New32a()
	h.Write([]byte(token))
	return s.shards[h.Sum32()%shardCount]
}

// Create issues a new session for userID. A ttl of 0 means no expiry.
//
// A generated token colliding with any live, revoked, or not-yet-swept
// session is never overwritten; generation is retried instead, and after
// createAttempts failures an internal error is returned.
func (s *Store) Create(userID string, ttl time.Duration) (*Session, error) {
	for i := 0; i < createAttempts; i++ {
		token, err := randx.HexString(s.rand, s.tokenSize)
		if err != nil {
			return nil, fmt.Errorf("%w: token generation: %v", common.ErrorInternal, err)
		}

		sess, err := s.insert(token, userID, ttl)
		if err == nil {
			return sess, nil
		}
		// collision, regenerate
	}
	return nil, fmt.Errorf("%w: token collision retries exhausted", common.ErrorInternal)
}

func (s *Store) insert(token, userID string, ttl time.Duration) (*Session, error) {
	sh := s.shard(token)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, exists := sh.sessions[token]; exists {
		return nil, common.ErrorTokenCollision
	}

	now := s.now()
	sess := &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
	}
	if ttl > 0 {
		sess.ExpiresAt = now.Add(ttl)
	}
	sh.sessions[token] = sess

	out := *sess
	return &out, nil
}

// Validate returns the user ID owning token. Expiry is a logical property
// checked at read time, so an expired session fails validation even if no
// sweep has removed it yet. Unknown, revoked, and expired tokens all return
// common.ErrorInvalidSession.
func (s *Store) Validate(token string) (string, error) {
	sh := s.shard(token)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	sess, ok := sh.sessions[token]
	if !ok || sess.Revoked || s.expired(sess) {
		return "", common.ErrorInvalidSession
	}
	return sess.UserID, nil
}

// Revoke marks token revoked. Unknown, already-revoked, and expired tokens
// return common.ErrorInvalidSession; an expired session is never
// resurrected. Once Revoke returns nil, no Validate observes the pre-revoke
// state.
func (s *Store) Revoke(token string) error {
	sh := s.shard(token)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess, ok := sh.sessions[token]
	if !ok || sess.Revoked || s.expired(sess) {
		return common.ErrorInvalidSession
	}
	sess.Revoked = true
	return nil
}

// Sweep removes expired and revoked sessions and returns how many were
// dropped. Removal is housekeeping only: Validate already rejects them.
func (s *Store) Sweep() int {
	removed := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for token, sess := range sh.sessions {
			if sess.Revoked || s.expired(sess) {
				delete(sh.sessions, token)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

// RunSweeper periodically sweeps until ctx is cancelled.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

// Len reports the number of stored sessions, including expired ones not yet
// swept.
func (s *Store) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.sessions)
		sh.mu.RUnlock()
	}
	return n
}

func (s *Store) expired(sess *Session) bool {
	return !sess.ExpiresAt.IsZero() && s.now().After(sess.ExpiresAt)
}
