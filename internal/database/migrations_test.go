package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMigrationManager_EmbeddedMigrations(t *testing.T) {
	db, err := Open(Config{Path: filepath.Join(t.TempDir(), "migrations.db")})
	require.NoError(t, err)
	defer db.Close()

	var m *MigrationManager
	require.NotPanics(t, func() { m = NewMigrationManager(db, zaptest.NewLogger(t)) })

	migrations, err := m.LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "001_create_records", migrations[0].Name)
	assert.Equal(t, 2, migrations[1].Version)

	require.NoError(t, m.RunMigrations())
	applied, err := m.GetAppliedMigrations()
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: true, 2: true}, applied)
}
