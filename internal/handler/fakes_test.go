package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/cache"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/model"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/repository"
)

// memStore is an in-memory stand-in for the Postgres repository.
type memStore struct {
	mu     sync.Mutex
	users  []model.User
	logs   []model.LogEntry
	err    error
	status *model.DBStatus
}

func (s *memStore) ListUsers(ctx context.Context, limit int) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []model.User
	for i := len(s.users) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.users[i])
	}
	return out, nil
}

func (s *memStore) CreateUser(ctx context.Context, username, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return nil, repository.ErrUserExists
		}
	}
	u := model.User{ID: int64(len(s.users) + 1), Username: username, Email: email, CreatedAt: time.Now().UTC()}
	s.users = append(s.users, u)
	return &u, nil
}

func (s *memStore) ListLogs(ctx context.Context, filter model.LogFilter) ([]model.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []model.LogEntry
	for i := len(s.logs) - 1; i >= 0 && len(out) < filter.Limit; i-- {
		if filter.Level == "" || s.logs[i].Level == filter.Level {
			out = append(out, s.logs[i])
		}
	}
	return out, nil
}

func (s *memStore) CreateLog(ctx context.Context, level, message string) (*model.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	e := model.LogEntry{ID: int64(len(s.logs) + 1), Level: level, Message: message, Timestamp: time.Now().UTC()}
	s.logs = append(s.logs, e)
	return &e, nil
}

func (s *memStore) Status(ctx context.Context) (*model.DBStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if s.status != nil {
		return s.status, nil
	}
	return &model.DBStatus{
		Database:  "myapp",
		User:      "myapp_user",
		Version:   "PostgreSQL 15.4",
		UserCount: int64(len(s.users)),
		LogCount:  int64(len(s.logs)),
	}, nil
}

func (s *memStore) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *memStore) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

var errDBDown = errors.New("connection refused")

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := cache.New(context.Background(), cache.Options{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect miniredis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}
