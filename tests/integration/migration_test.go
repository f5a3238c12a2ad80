//go:build integration

package integration

import (
	"testing"

	"github.com/garments-erp/backend/internal/infrastructure/migration"
	"github.com/garments-erp/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrations_RoundTrip(t *testing.T) {
	db := NewTestDB(t)

	m, err := migration.New(db.SqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)

	status, err := m.Status()
	require.NoError(t, err)
	assert.False(t, status.Dirty)
	assert.Empty(t, status.Pending)
	latest := status.Version

	require.NoError(t, m.Down())
	assert.False(t, db.DB.Migrator().HasTable("journal_entries"))

	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, latest, version)

	for _, table := range []string{"users", "roles", "permissions", "categories", "chart_of_accounts", "journal_entries", "journal_entry_lines", "contacts", "category_contacts"} {
		assert.True(t, db.DB.Migrator().HasTable(table), table)
	}
}
