//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/model"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/testutil"
)

// ============================================================================
// Repository Integration Tests
// ============================================================================

func TestIntegrationRepository_CreateUser(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	username := testutil.UniqueName("create")
	user, err := repo.CreateUser(ctx, username, username+"@example.com")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if user.ID == 0 {
		t.Error("ID should be generated")
	}
	if user.Username != username {
		t.Errorf("Username mismatch: got %q, want %q", user.Username, username)
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	users, err := repo.ListUsers(ctx, 100)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 1 || users[0].ID != user.ID {
		t.Errorf("expected listing to contain only the created user, got %+v", users)
	}
}

func TestIntegrationRepository_CreateUser_Duplicate(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	username := testutil.UniqueName("dup")
	if _, err := repo.CreateUser(ctx, username, username+"@example.com"); err != nil {
		t.Fatalf("CreateUser (first) failed: %v", err)
	}

	_, err := repo.CreateUser(ctx, username, username+"@example.com")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Expected ErrUserExists, got: %v", err)
	}

	// Same email under a different username is also a conflict.
	_, err = repo.CreateUser(ctx, testutil.UniqueName("other"), username+"@example.com")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Expected ErrUserExists for duplicate email, got: %v", err)
	}

	count, err := repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one row after duplicate inserts, got %d", count)
	}
}

func TestIntegrationRepository_ListUsers_NewestFirst(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	if _, err := repo.CreateUser(ctx, "first", "first@example.com"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	second, err := repo.CreateUser(ctx, "second", "second@example.com")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	users, err := repo.ListUsers(ctx, 1)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected limit to apply, got %d users", len(users))
	}
	if users[0].ID != second.ID {
		t.Errorf("expected newest user %d first, got %+v", second.ID, users[0])
	}
}

func TestIntegrationRepository_ListLogs_LevelFilter(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	seed := []struct{ level, message string }{
		{"info", "started"},
		{"warn", "slow query"},
		{"info", "user created"},
		{"error", "timeout"},
		{"debug", "cache miss"},
	}
	for _, s := range seed {
		if _, err := repo.CreateLog(ctx, s.level, s.message); err != nil {
			t.Fatalf("CreateLog failed: %v", err)
		}
	}

	entries, err := repo.ListLogs(ctx, model.LogFilter{Level: "info", Limit: 50})
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 info entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Level != "info" {
			t.Errorf("unexpected level %q", e.Level)
		}
	}

	all, err := repo.ListLogs(ctx, model.LogFilter{Limit: 3})
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected limit 3, got %d", len(all))
	}
}

func TestIntegrationRepository_Status(t *testing.T) {
	ctx, repo := newRepositoryTestEnv(t)

	if _, err := repo.CreateUser(ctx, "status", "status@example.com"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if _, err := repo.CreateLog(ctx, "info", "status check"); err != nil {
		t.Fatalf("CreateLog failed: %v", err)
	}

	status, err := repo.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Database == "" || status.Version == "" {
		t.Errorf("expected database identity, got %+v", status)
	}
	if status.UserCount != 1 || status.LogCount != 1 {
		t.Errorf("unexpected counts: users=%d logs=%d", status.UserCount, status.LogCount)
	}
}

func newRepositoryTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL, DefaultOptions())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo
}
