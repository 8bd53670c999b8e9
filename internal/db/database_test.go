package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSqlite_AppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlite")

	sqlite, err := OpenSqlite(path)
	require.NoError(t, err)
	defer sqlite.Close()

	for _, table := range []string{"airdrop_wallets", "airdrop_transfers", "swaps"} {
		var name string
		err := sqlite.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestOpenSqlite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlite")

	first, err := OpenSqlite(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenSqlite(path)
	require.NoError(t, err, "migrations already applied must not fail")
	require.NoError(t, second.Close())
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
