package users

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dsmelov/authsvc/internal/common"
)

func newTestUser(username string) *User {
	return &User{
		UserName:     username,
		PasswordHash: []byte("digest-digest-digest-digest-1234"),
		Salt:         []byte("salt-salt-salt-1"),
	}
}

func TestInMemory_CreateAndGet(t *testing.T) {
	r := NewInMemoryRepository(nil)
	ctx := context.Background()

	created, err := r.Create(ctx, newTestUser("alice"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created user has no ID")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("created user has no creation timestamp")
	}

	byName, err := r.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if byName.ID != created.ID {
		t.Fatalf("lookup returned ID %q, want %q", byName.ID, created.ID)
	}

	byID, err := r.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if byID.UserName != "alice" {
		t.Fatalf("lookup returned username %q, want alice", byID.UserName)
	}
}

func TestInMemory_CreateDuplicate(t *testing.T) {
	r := NewInMemoryRepository(nil)
	ctx := context.Background()

	if _, err := r.Create(ctx, newTestUser("alice")); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	_, err := r.Create(ctx, newTestUser("alice"))
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrorAlreadyExists, got %v", err)
	}
}

func TestInMemory_GetMissing(t *testing.T) {
	r := NewInMemoryRepository(nil)
	ctx := context.Background()

	if _, err := r.GetByUsername(ctx, "nobody"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("GetByUsername: want ErrorNotFound, got %v", err)
	}
	if _, err := r.GetByID(ctx, "no-such-id"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("GetByID: want ErrorNotFound, got %v", err)
	}
}

func TestInMemory_UpdatePassword(t *testing.T) {
	r := NewInMemoryRepository(nil)
	ctx := context.Background()

	created, err := r.Create(ctx, newTestUser("alice"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	newHash := []byte("new-digest-new-digest-new-dig-32")
	newSalt := []byte("new-salt-new-sal")
	if err := r.UpdatePassword(ctx, created.ID, newHash, newSalt); err != nil {
		t.Fatalf("UpdatePassword error: %v", err)
	}

	got, err := r.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if string(got.PasswordHash) != string(newHash) || string(got.Salt) != string(newSalt) {
		t.Fatal("password update not visible on lookup")
	}
	if got.UserName != "alice" {
		t.Fatal("username changed by password update")
	}

	if err := r.UpdatePassword(ctx, "no-such-id", newHash, newSalt); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestInMemory_ReturnsCopies(t *testing.T) {
	r := NewInMemoryRepository(nil)
	ctx := context.Background()

	created, _ := r.Create(ctx, newTestUser("alice"))
	created.PasswordHash[0] ^= 0xff

	stored, _ := r.GetByUsername(ctx, "alice")
	if stored.PasswordHash[0] == created.PasswordHash[0] {
		t.Fatal("mutating a returned record must not affect the store")
	}
}

func TestInMemory_ConcurrentCreateSameUsername(t *testing.T) {
	r := NewInMemoryRepository(nil)
	ctx := context.Background()

	const callers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, conflicted := 0, 0

	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			_, err := r.Create(ctx, newTestUser("alice"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, common.ErrorAlreadyExists):
				conflicted++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || conflicted != callers-1 {
		t.Fatalf("got %d successes and %d conflicts, want 1 and %d", succeeded, conflicted, callers-1)
	}
}
