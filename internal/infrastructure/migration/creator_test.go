package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/garments-erp/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add users table", "add_users_table"},
		{"Add-Journal-Index", "add_journal_index"},
		{"add__cash__book", "add_cash_book"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	t.Run("first migration is 000001", func(t *testing.T) {
		mf, err := CreateMigration(dir, "create ledger views", "Reporting views")
		require.NoError(t, err)

		assert.Equal(t, "000001", mf.Version)
		assert.Equal(t, filepath.Join(dir, "000001_create_ledger_views.up.sql"), mf.UpPath)

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "Reporting views")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "rollback")
	})

	t.Run("follows the highest version", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "000007_manual.up.sql"), nil, 0o644))

		mf, err := CreateMigration(dir, "next", "")
		require.NoError(t, err)
		assert.Equal(t, "000008", mf.Version)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := CreateMigration(dir, "!!!", "")
		assert.Error(t, err)
	})
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000010_late.up.sql":     {},
		"000002_second.up.sql":   {},
		"000002_second.down.sql": {},
		"README.md":              {},
		"nover_x.up.sql":         {},
	}

	list, err := ListMigrations(fsys)

	require.NoError(t, err)
	assert.Equal(t, []Migration{{2, "000002_second"}, {10, "000010_late"}}, list)
}

func TestEmbeddedMigrations(t *testing.T) {
	list, err := ListMigrations(migrations.FS)

	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "000001_create_identity_tables", list[0].Name)
	assert.Equal(t, "000002_create_finance_tables", list[1].Name)
	assert.Equal(t, "000003_create_contact_tables", list[2].Name)

	for _, m := range list {
		_, err := migrations.FS.Open(m.Name + ".down.sql")
		assert.NoError(t, err, "missing rollback for %s", m.Name)
	}
}
