package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/cache"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/metrics"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/model"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/repository"
)

// MaxUserListing caps the number of users returned by a listing.
const MaxUserListing = 100

// invalidateTimeout bounds the cache delete that follows a committed create.
const invalidateTimeout = 2 * time.Second

// UserStore is the persistence the user service needs.
type UserStore interface {
	ListUsers(ctx context.Context, limit int) ([]model.User, error)
	CreateUser(ctx context.Context, username, email string) (*model.User, error)
}

// UserCache holds the cached user listing.
type UserCache interface {
	GetUserList(ctx context.Context) ([]model.User, error)
	SetUserList(ctx context.Context, users []model.User) error
	InvalidateUserList(ctx context.Context) error
}

// UserListing is a listing plus whether it came from the cache.
type UserListing struct {
	Users  []model.User
	Cached bool
}

// UserService lists and creates users, keeping the cached listing coherent.
type UserService struct {
	store   UserStore
	cache   UserCache
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewUserService creates a UserService. userCache may be nil when no cache is
// configured; pass an untyped nil, not a nil *cache.Cache.
func NewUserService(store UserStore, userCache UserCache, recorder metrics.Recorder, logger *slog.Logger) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		store:   store,
		cache:   userCache,
		metrics: recorder,
		logger:  logger,
	}
}

// CacheConfigured reports whether a cache backs the cached listing.
func (s *UserService) CacheConfigured() bool {
	return s.cache != nil
}

// List returns the newest users from the store and writes the listing
// through to the cache. A cache write failure is logged, never returned.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.store.ListUsers(ctx, MaxUserListing)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	s.writeThrough(ctx, users)
	return users, nil
}

// ListCached serves the listing from the cache when present, otherwise from
// the store, repopulating the cache. Read errors count as misses.
func (s *UserService) ListCached(ctx context.Context) (*UserListing, error) {
	if s.cache == nil {
		return nil, ErrCacheNotConfigured
	}

	users, err := s.cache.GetUserList(ctx)
	switch {
	case err == nil:
		s.metrics.IncCacheHit()
		return &UserListing{Users: users, Cached: true}, nil
	case !errors.Is(err, cache.ErrCacheMiss):
		s.logger.Warn("cache read failed, falling back to database",
			slog.String("key", cache.UserListKey),
			slog.String("error", err.Error()),
		)
	}
	s.metrics.IncCacheMiss()

	users, err = s.store.ListUsers(ctx, MaxUserListing)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	s.writeThrough(ctx, users)
	return &UserListing{Users: users}, nil
}

// Create validates and inserts a user, then drops the cached listing.
// Invalidation runs only after the insert has returned successfully.
func (s *UserService) Create(ctx context.Context, username, email string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := requireFields("username", username, "email", email); err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, username, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.cache != nil {
		// The row is committed; the delete must not die with the request.
		delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
		defer cancel()

		if err := s.cache.InvalidateUserList(delCtx); err != nil {
			s.logger.Warn("cache invalidation failed",
				slog.String("key", cache.UserListKey),
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return user, nil
}

func (s *UserService) writeThrough(ctx context.Context, users []model.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetUserList(ctx, users); err != nil {
		s.logger.Warn("cache write failed",
			slog.String("key", cache.UserListKey),
			slog.String("error", err.Error()),
		)
	}
}
