package testdb

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/6529-Collections/airdrop-retention/internal/db"
	"github.com/stretchr/testify/require"
)

// SetupTestDB opens a migrated SQLite database in a per-test temp directory.
func SetupTestDB(t *testing.T) (*sql.DB, func()) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlite")

	sqlite, err := db.OpenSqlite(path)
	require.NoError(t, err)

	cleanup := func() {
		sqlite.Close()
		os.RemoveAll(dir)
	}
	return sqlite, cleanup
}
