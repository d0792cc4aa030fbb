//go:build unit

package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"go-blog-app/internal/cache"
	"go-blog-app/internal/config"
	"go-blog-app/internal/data"
	"go-blog-app/internal/logger"
)

// newTestLogger returns a logger that discards all output.
func newTestLogger() logger.Logger {
	return logger.New(config.LogConfig{Level: "error", Format: "json"}, io.Discard)
}

// newTestCache creates a new in-memory cache for testing.
func newTestCache(t *testing.T) (*cache.Cache, func()) {
	t.Helper()
	cfg := config.CacheConfig{
		FilePath: "file::memory:",
	}
	c, err := cache.New(cfg)
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}
	teardown := func() {
		c.Close()
	}
	return c, teardown
}

// mockUserStore is a mock implementation of the UserStore interface.
type mockUserStore struct {
	errToReturn  error
	userToReturn *data.User

	upsertCalled     int
	lastUpsertPassed data.UserUpsert
}

var _ UserStore = (*mockUserStore)(nil)

func (m *mockUserStore) Upsert(ctx context.Context, in data.UserUpsert) error {
	m.upsertCalled++
	m.lastUpsertPassed = in
	return m.errToReturn
}

func (m *mockUserStore) GetByOpenID(ctx context.Context, openID string) (*data.User, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	if m.userToReturn != nil && m.userToReturn.OpenID == openID {
		return m.userToReturn, nil
	}
	return nil, nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*data.User, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.userToReturn, nil
}

func TestUserService_RecordSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("requires openId", func(t *testing.T) {
		store := &mockUserStore{}
		svc := NewUserService(store, "", newTestLogger())

		if err := svc.RecordSignIn(ctx, SignIn{}); err == nil {
			t.Fatal("expected error for empty openId")
		}
		if store.upsertCalled != 0 {
			t.Errorf("expected no upsert, got %d", store.upsertCalled)
		}
	})

	t.Run("owner gets admin role", func(t *testing.T) {
		store := &mockUserStore{}
		svc := NewUserService(store, "owner-123", newTestLogger())

		if err := svc.RecordSignIn(ctx, SignIn{OpenID: "owner-123"}); err != nil {
			t.Fatalf("RecordSignIn failed: %v", err)
		}
		if store.lastUpsertPassed.Role == nil || *store.lastUpsertPassed.Role != "admin" {
			t.Errorf("expected admin role for owner, got %v", store.lastUpsertPassed.Role)
		}
	})

	t.Run("explicit role wins over owner promotion", func(t *testing.T) {
		store := &mockUserStore{}
		svc := NewUserService(store, "owner-123", newTestLogger())

		role := "user"
		if err := svc.RecordSignIn(ctx, SignIn{OpenID: "owner-123", Role: &role}); err != nil {
			t.Fatalf("RecordSignIn failed: %v", err)
		}
		if store.lastUpsertPassed.Role == nil || *store.lastUpsertPassed.Role != "user" {
			t.Errorf("expected supplied role to win, got %v", store.lastUpsertPassed.Role)
		}
	})

	t.Run("non-owner keeps nil role", func(t *testing.T) {
		store := &mockUserStore{}
		svc := NewUserService(store, "owner-123", newTestLogger())

		if err := svc.RecordSignIn(ctx, SignIn{OpenID: "visitor-1"}); err != nil {
			t.Fatalf("RecordSignIn failed: %v", err)
		}
		if store.lastUpsertPassed.Role != nil {
			t.Errorf("expected nil role, got %v", *store.lastUpsertPassed.Role)
		}
	})

	t.Run("storage failure does not block sign-in", func(t *testing.T) {
		store := &mockUserStore{errToReturn: errors.New("db down")}
		svc := NewUserService(store, "", newTestLogger())

		if err := svc.RecordSignIn(ctx, SignIn{OpenID: "visitor-1"}); err != nil {
			t.Fatalf("expected sign-in to proceed despite storage failure, got %v", err)
		}
	})
}

func TestUserService_GetByOpenID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored user", func(t *testing.T) {
		store := &mockUserStore{userToReturn: &data.User{ID: 7, OpenID: "abc", Role: "user"}}
		svc := NewUserService(store, "", newTestLogger())

		user, err := svc.GetByOpenID(ctx, "abc")
		if err != nil {
			t.Fatalf("GetByOpenID failed: %v", err)
		}
		if user == nil || user.ID != 7 {
			t.Errorf("expected user 7, got %v", user)
		}
	})

	t.Run("degrades to nil on storage failure", func(t *testing.T) {
		store := &mockUserStore{errToReturn: errors.New("db down")}
		svc := NewUserService(store, "", newTestLogger())

		user, err := svc.GetByOpenID(ctx, "abc")
		if err != nil {
			t.Fatalf("expected degraded nil, got error %v", err)
		}
		if user != nil {
			t.Errorf("expected nil user, got %v", user)
		}
	})
}
