package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	root := newRootCommand()

	for _, path := range [][]string{
		{"seed", "permissions"},
		{"seed", "categories"},
		{"create-admin"},
		{"cache", "warm"},
		{"cache", "clear"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, "%v", path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
		assert.NotNil(t, cmd.RunE, "%v", path)
	}
}

func TestCreateAdminRequiresFlags(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"create-admin", "--username", "admin"})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestAdminOptionsInput(t *testing.T) {
	t.Run("password from environment", func(t *testing.T) {
		t.Setenv(adminPasswordEnv, "Sup3r$ecret")
		opts := &adminOptions{username: "admin", email: "admin@garments.test"}

		in, err := opts.input()

		require.NoError(t, err)
		assert.Equal(t, "Sup3r$ecret", in.Password)
		assert.Equal(t, "admin", in.Username)
	})

	t.Run("flag wins over environment", func(t *testing.T) {
		t.Setenv(adminPasswordEnv, "from-env")
		opts := &adminOptions{password: "from-flag"}

		in, err := opts.input()

		require.NoError(t, err)
		assert.Equal(t, "from-flag", in.Password)
	})

	t.Run("missing password", func(t *testing.T) {
		t.Setenv(adminPasswordEnv, "")
		_, err := (&adminOptions{}).input()

		assert.Error(t, err)
	})
}

func TestPeriodOptions(t *testing.T) {
	now := time.Date(2026, 3, 17, 15, 4, 0, 0, time.UTC)

	t.Run("defaults to current month", func(t *testing.T) {
		p, err := (&periodOptions{}).period(now)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), p.StartDate)
		assert.Equal(t, time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), p.EndDate)
	})

	t.Run("explicit range", func(t *testing.T) {
		p, err := (&periodOptions{start: "2026-01-01", end: "2026-01-31"}).period(now)

		require.NoError(t, err)
		assert.Equal(t, 31, p.EndDate.Day())
	})

	t.Run("half a range", func(t *testing.T) {
		_, err := (&periodOptions{start: "2026-01-01"}).period(now)

		assert.Error(t, err)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := (&periodOptions{start: "01/01/2026", end: "2026-01-31"}).period(now)

		assert.Error(t, err)
	})

	t.Run("reversed range", func(t *testing.T) {
		_, err := (&periodOptions{start: "2026-02-01", end: "2026-01-01"}).period(now)

		assert.Error(t, err)
	})
}
