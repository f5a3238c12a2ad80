package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PermissionPrefix namespaces cached effective permissions
const PermissionPrefix = "permissions:user:"

// PermissionCache stores the effective permission codes of each user
type PermissionCache struct {
	store Store
	ttl   time.Duration
}

func NewPermissionCache(store Store, ttl time.Duration) *PermissionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PermissionCache{store: store, ttl: ttl}
}

func permissionKey(userID uuid.UUID) string {
	return PermissionPrefix + userID.String()
}

// Get returns the cached codes of a user
func (c *PermissionCache) Get(ctx context.Context, userID uuid.UUID) ([]string, bool, error) {
	raw, err := c.store.Get(ctx, permissionKey(userID))
	if errors.Is(err, ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var codes []string
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, false, nil
	}
	return codes, true, nil
}

func (c *PermissionCache) Set(ctx context.Context, userID uuid.UUID, codes []string) error {
	if codes == nil {
		codes = []string{}
	}
	raw, err := json.Marshal(codes)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}
	return c.store.Set(ctx, permissionKey(userID), raw, c.ttl)
}

func (c *PermissionCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	return c.store.Delete(ctx, permissionKey(userID))
}

// InvalidateAll drops the permissions of every user, e.g. after reseeding roles
func (c *PermissionCache) InvalidateAll(ctx context.Context) error {
	_, err := c.store.DeletePrefix(ctx, PermissionPrefix)
	return err
}
