package service

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/cache"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/model"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/repository"
)

// fakeStore is an in-memory UserStore and LogStore.
type fakeStore struct {
	mu        sync.Mutex
	users     []model.User
	logs      []model.LogEntry
	listCalls int
	listErr   error
	createErr error
	lastLimit int
	lastLogs  model.LogFilter
	// afterCreate runs once a user row has been stored.
	afterCreate func()
}

func (f *fakeStore) ListUsers(ctx context.Context, limit int) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.lastLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.User, 0, len(f.users))
	for i := len(f.users) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.users[i])
	}
	return out, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, username, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return nil, repository.ErrUserExists
		}
	}
	u := model.User{
		ID:        int64(len(f.users) + 1),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now(),
	}
	f.users = append(f.users, u)
	if f.afterCreate != nil {
		f.afterCreate()
	}
	return &u, nil
}

func (f *fakeStore) ListLogs(ctx context.Context, filter model.LogFilter) ([]model.LogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLogs = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.LogEntry
	for i := len(f.logs) - 1; i >= 0 && len(out) < filter.Limit; i-- {
		if filter.Level == "" || f.logs[i].Level == filter.Level {
			out = append(out, f.logs[i])
		}
	}
	return out, nil
}

func (f *fakeStore) CreateLog(ctx context.Context, level, message string) (*model.LogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	e := model.LogEntry{ID: int64(len(f.logs) + 1), Level: level, Message: message, Timestamp: time.Now()}
	f.logs = append(f.logs, e)
	return &e, nil
}

// fakeCache is an in-memory UserCache.
type fakeCache struct {
	mu            sync.Mutex
	users         []model.User
	present       bool
	getErr        error
	setErr        error
	delErr        error
	invalidations int
}

func (c *fakeCache) GetUserList(ctx context.Context) ([]model.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	if !c.present {
		return nil, cache.ErrCacheMiss
	}
	return c.users, nil
}

func (c *fakeCache) SetUserList(ctx context.Context, users []model.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.users = users
	c.present = true
	return nil
}

func (c *fakeCache) InvalidateUserList(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.delErr != nil {
		return c.delErr
	}
	c.users = nil
	c.present = false
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}
