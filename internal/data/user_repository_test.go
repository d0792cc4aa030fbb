//go:build integration

package data

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// setupUserTest creates a new in-memory SQLite database and a
// UserRepository for testing. It returns the repository and a teardown
// function to be deferred.
func setupUserTest(t *testing.T) (*UserRepository, func()) {
	t.Helper()

	// Use a non-shared in-memory database for complete test isolation.
	db, err := sqlx.Connect("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}
	// A second pool connection would see a fresh, empty database.
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE users (
		id INTEGER PRIMARY KEY,
		open_id TEXT NOT NULL UNIQUE,
		name TEXT,
		email TEXT,
		login_method TEXT,
		role TEXT NOT NULL DEFAULT 'user',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_signed_in DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	db.MustExec(schema)

	repo := NewUserRepository(db)

	teardown := func() {
		db.Close()
	}

	return repo, teardown
}

func TestUserRepository_UpsertCreates(t *testing.T) {
	repo, teardown := setupUserTest(t)
	defer teardown()
	ctx := context.Background()

	name := "Amina"
	err := repo.Upsert(ctx, UserUpsert{OpenID: "open-1", Name: &name})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	user, err := repo.GetByOpenID(ctx, "open-1")
	if err != nil {
		t.Fatalf("GetByOpenID failed: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.Name == nil || *user.Name != "Amina" {
		t.Errorf("expected name 'Amina', got %v", user.Name)
	}
	if user.Role != "user" {
		t.Errorf("expected default role 'user', got %q", user.Role)
	}
}

func TestUserRepository_UpsertUpdatesOnlySuppliedFields(t *testing.T) {
	repo, teardown := setupUserTest(t)
	defer teardown()
	ctx := context.Background()

	name := "Amina"
	email := "amina@example.com"
	if err := repo.Upsert(ctx, UserUpsert{OpenID: "open-1", Name: &name, Email: &email}); err != nil {
		t.Fatalf("initial Upsert failed: %v", err)
	}

	newEmail := "new@example.com"
	if err := repo.Upsert(ctx, UserUpsert{OpenID: "open-1", Email: &newEmail}); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	user, err := repo.GetByOpenID(ctx, "open-1")
	if err != nil {
		t.Fatalf("GetByOpenID failed: %v", err)
	}
	if user.Name == nil || *user.Name != "Amina" {
		t.Errorf("expected name to survive partial update, got %v", user.Name)
	}
	if user.Email == nil || *user.Email != "new@example.com" {
		t.Errorf("expected updated email, got %v", user.Email)
	}
}

func TestUserRepository_UpsertBumpsLastSignedIn(t *testing.T) {
	repo, teardown := setupUserTest(t)
	defer teardown()
	ctx := context.Background()

	past := time.Now().Add(-48 * time.Hour)
	if err := repo.Upsert(ctx, UserUpsert{OpenID: "open-1", LastSignedIn: &past}); err != nil {
		t.Fatalf("initial Upsert failed: %v", err)
	}

	before, err := repo.GetByOpenID(ctx, "open-1")
	if err != nil {
		t.Fatalf("GetByOpenID failed: %v", err)
	}

	// A field-less upsert is a plain sign-in: the timestamp must move.
	if err := repo.Upsert(ctx, UserUpsert{OpenID: "open-1"}); err != nil {
		t.Fatalf("sign-in Upsert failed: %v", err)
	}

	after, err := repo.GetByOpenID(ctx, "open-1")
	if err != nil {
		t.Fatalf("GetByOpenID failed: %v", err)
	}
	if !after.LastSignedIn.After(before.LastSignedIn) {
		t.Errorf("expected last_signed_in to advance, got %v -> %v", before.LastSignedIn, after.LastSignedIn)
	}
}

func TestUserRepository_UpsertExplicitRole(t *testing.T) {
	repo, teardown := setupUserTest(t)
	defer teardown()
	ctx := context.Background()

	admin := "admin"
	if err := repo.Upsert(ctx, UserUpsert{OpenID: "open-1", Role: &admin}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	user, err := repo.GetByOpenID(ctx, "open-1")
	if err != nil {
		t.Fatalf("GetByOpenID failed: %v", err)
	}
	if user.Role != "admin" {
		t.Errorf("expected role 'admin', got %q", user.Role)
	}
}

func TestUserRepository_UpsertConcurrentFirstSignIn(t *testing.T) {
	repo, teardown := setupUserTest(t)
	defer teardown()
	ctx := context.Background()

	// Simultaneous first sign-ins for the same identity must all succeed
	// and leave exactly one row.
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Upsert(ctx, UserUpsert{OpenID: "open-1"})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent Upsert failed: %v", err)
		}
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE open_id = ?`, "open-1"); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single user row, got %d", count)
	}
}

func TestUserRepository_GetByOpenIDMissing(t *testing.T) {
	repo, teardown := setupUserTest(t)
	defer teardown()

	user, err := repo.GetByOpenID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("expected no error for missing user, got %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %v", user)
	}
}
