package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/model"
)

const (
	// UserListKey holds the most recent user listing.
	UserListKey = "users:list"

	// UserListTTL is how long a cached listing stays valid.
	UserListTTL = 300 * time.Second
)

// GetUserList returns the cached user listing.
// Returns ErrCacheMiss if the key is absent.
func (c *Cache) GetUserList(ctx context.Context) ([]model.User, error) {
	raw, err := c.Get(ctx, UserListKey)
	if err != nil {
		return nil, err
	}

	var users []model.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to decode cached user list: %w", err)
	}

	return users, nil
}

// SetUserList stores a listing snapshot under UserListKey.
func (c *Cache) SetUserList(ctx context.Context, users []model.User) error {
	if users == nil {
		users = []model.User{}
	}

	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode user list: %w", err)
	}

	return c.SetEx(ctx, UserListKey, raw, UserListTTL)
}

// InvalidateUserList drops the cached listing.
func (c *Cache) InvalidateUserList(ctx context.Context) error {
	return c.Delete(ctx, UserListKey)
}
