package cache

import (
	"context"
	"testing"
	"time"

	"github.com/garments-erp/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Close()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "short", []byte("1"), time.Second))
	require.NoError(t, s.Set(ctx, "forever", []byte("2"), 0))

	now = now.Add(2 * time.Second)
	_, err := s.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = s.Get(ctx, "forever")
	assert.NoError(t, err)

	s.sweep()
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_SetNX(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	ok, err := s.SetNX(ctx, "lock", []byte("a"), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.SetNX(ctx, "lock", []byte("b"), time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	got, _ := s.Get(ctx, "lock")
	assert.Equal(t, []byte("a"), got)
}

func TestMemoryStore_DeletePrefix(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	for _, k := range []string{"trial_balance:a", "trial_balance:b", "permissions:user:x"} {
		require.NoError(t, s.Set(ctx, k, []byte("1"), time.Minute))
	}

	n, err := s.DeletePrefix(ctx, TrialBalancePrefix)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	s := NewMemoryStore(time.Millisecond)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestFactory_Open(t *testing.T) {
	t.Run("disabled redis uses memory", func(t *testing.T) {
		store, client, err := NewFactory(config.RedisConfig{Enabled: false}).Open(context.Background())
		require.NoError(t, err)
		defer store.Close()
		assert.Nil(t, client)
		assert.IsType(t, &MemoryStore{}, store)
	})

	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	t.Run("unreachable redis falls back", func(t *testing.T) {
		f := NewFactory(unreachable)
		f.pingTimeout = 200 * time.Millisecond

		store, client, err := f.Open(context.Background())
		require.NoError(t, err)
		defer store.Close()
		assert.Nil(t, client)
		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("fallback can be disabled", func(t *testing.T) {
		f := NewFactory(unreachable, WithMemoryFallback(false))
		f.pingTimeout = 200 * time.Millisecond

		_, _, err := f.Open(context.Background())
		assert.Error(t, err)
	})
}
