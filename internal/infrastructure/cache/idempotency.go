package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const idempotencyPrefix = "idempotency:"

// IdempotentResponse is a stored response replayed for a repeated request
type IdempotentResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore remembers responses of requests carrying an Idempotency-Key
type IdempotencyStore struct {
	store Store
	ttl   time.Duration
}

func NewIdempotencyStore(store Store, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{store: store, ttl: ttl}
}

// Reserve claims key for an in-flight request. It returns false when the key was already used.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	return s.store.SetNX(ctx, idempotencyPrefix+key, []byte("{}"), s.ttl)
}

// Lookup returns the stored response for key. A reserved key without a response yields nil.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (*IdempotentResponse, error) {
	raw, err := s.store.Get(ctx, idempotencyPrefix+key)
	if errors.Is(err, ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var resp IdempotentResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Status == 0 {
		return nil, nil
	}
	return &resp, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key string, resp IdempotentResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode idempotent response: %w", err)
	}
	return s.store.Set(ctx, idempotencyPrefix+key, raw, s.ttl)
}

// Release frees a reservation whose request failed so it can be retried
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.store.Delete(ctx, idempotencyPrefix+key)
}
