package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ledger.db")
	store, err := Open(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &sqlite.SQLiteStore{}, store)

	_, err = Open(context.Background(), config.DatabaseConfig{Driver: "mysql"})
	assert.ErrorContains(t, err, `unknown database driver "mysql"`)
}
