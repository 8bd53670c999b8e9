package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenBadger(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "badger-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "logcache")

	db, err := OpenBadger(dbPath)
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestOpenBadger_ConcurrentAccess(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "badger-concurrent-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "concurrent")

	db1, err := OpenBadger(dbPath)
	require.NoError(t, err)
	defer db1.Close()

	db2, err := OpenBadger(dbPath)
	assert.Error(t, err)
	assert.Nil(t, db2)
	assert.Contains(t, err.Error(), "failed to open BadgerDB")
}

func TestOpenInMemoryBadger(t *testing.T) {
	db, err := OpenInMemoryBadger()
	require.NoError(t, err)
	defer db.Close()

	err = db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("k"), []byte("v"))
	})
	require.NoError(t, err)

	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("k"))
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		assert.Equal(t, "v", string(val))
		return err
	})
	require.NoError(t, err)
}

func TestZapAdapter(t *testing.T) {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	adapter := zapAdapter{logger}

	t.Run("test Errorf", func(t *testing.T) {
		adapter.Errorf("test error: %s", "message")
	})

	t.Run("test Warningf", func(t *testing.T) {
		adapter.Warningf("test warning: %s", "message")
	})

	t.Run("test Infof", func(t *testing.T) {
		adapter.Infof("test info: %s", "message")
	})

	t.Run("test Debugf", func(t *testing.T) {
		adapter.Debugf("test debug: %s", "message")
	})
}
