package database

import (
	"path/filepath"
	"testing"

	"github.com/OCAP2/planner/internal/config"
	"github.com/OCAP2/planner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.DBConfig{
		Host:     "db.local",
		Port:     "5433",
		Username: "planner",
		Password: "secret",
		Database: "campaign",
	})
	assert.Equal(t, "host=db.local port=5433 user=planner password=secret dbname=campaign sslmode=disable", dsn)
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	for _, m := range model.DatabaseModels {
		assert.True(t, db.Migrator().HasTable(m))
	}

	// Migrating twice is a no-op.
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	assert.FileExists(t, path)
}

func TestOpenSQLiteInMemory(t *testing.T) {
	db, err := OpenSQLite("")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&model.Snapshot{}))
}
