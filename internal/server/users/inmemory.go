package users

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/dsmelov/authsvc/internal/common"
	"github.com/google/uuid"
)

const shardCount = 32

type shard struct {
	mu     sync.RWMutex
	byName map[string]*User
}

type idShard struct {
	mu       sync.RWMutex
	username map[string]string
}

// InMemoryRepository is the default credential store. Records are sharded
// by username so concurrent requests for unrelated users never contend on
// one lock; the existence check and insert for a given username happen
// under a single shard lock, which makes Create atomic per username.
//
// A second index maps user IDs to usernames for GetByID/UpdatePassword.
// IDs are generated fresh on Create and never reused, so the two indexes
// need no cross-shard coordination.
type InMemoryRepository struct {
	shards [shardCount]*shard
	ids    [shardCount]*idShard
	now    func() time.Time
}

// NewInMemoryRepository builds an empty store. now may be nil for time.Now.
func NewInMemoryRepository(now func() time.Time) *InMemoryRepository {
	if now == nil {
		now = time.Now
	}
	r := &InMemoryRepository{now: now}
	for i := range r.shards {
		r.shards[i] = &shard{byName: make(map[string]*User)}
		r.ids[i] = &idShard{username: make(map[string]string)}
	}
	return r
}

func shardIndex(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32() % shardCount
}

func (r *InMemoryRepository) nameShard(username string) *shard {
	return r.shards[shardIndex(username)]
}

func (r *InMemoryRepository) idShard(id string) *idShard {
	return r.ids[shardIndex(id)]
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	stored := &User{
		ID:           uuid.NewString(),
		UserName:     user.UserName,
		PasswordHash: cloneBytes(user.PasswordHash),
		Salt:         cloneBytes(user.Salt),
		CreatedAt:    r.now(),
	}

	sh := r.nameShard(user.UserName)
	sh.mu.Lock()
	if _, exists := sh.byName[user.UserName]; exists {
		sh.mu.Unlock()
		return nil, common.ErrorAlreadyExists
	}
	sh.byName[user.UserName] = stored
	sh.mu.Unlock()

	ish := r.idShard(stored.ID)
	ish.mu.Lock()
	ish.username[stored.ID] = stored.UserName
	ish.mu.Unlock()

	return cloneUser(stored), nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	sh := r.nameShard(username)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	user, ok := sh.byName[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(user), nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*User, error) {
	ish := r.idShard(id)
	ish.mu.RLock()
	username, ok := ish.username[id]
	ish.mu.RUnlock()
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.GetByUsername(ctx, username)
}

func (r *InMemoryRepository) UpdatePassword(ctx context.Context, id string, passwordHash, salt []byte) error {
	ish := r.idShard(id)
	ish.mu.RLock()
	username, ok := ish.username[id]
	ish.mu.RUnlock()
	if !ok {
		return common.ErrorNotFound
	}

	sh := r.nameShard(username)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	user, ok := sh.byName[username]
	if !ok {
		return common.ErrorNotFound
	}
	user.PasswordHash = cloneBytes(passwordHash)
	user.Salt = cloneBytes(salt)
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func cloneUser(u *User) *User {
	return &User{
		ID:           u.ID,
		UserName:     u.UserName,
		PasswordHash: cloneBytes(u.PasswordHash),
		Salt:         cloneBytes(u.Salt),
		CreatedAt:    u.CreatedAt,
	}
}
