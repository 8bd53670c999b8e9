package ethdb

import (
	"errors"
	"testing"

	"github.com/6529-Collections/airdrop-retention/internal/db"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "is_airdrop_distributor", snakeCase("IsAirdropDistributor"))
	assert.Equal(t, "from_wallet", snakeCase("FromWallet"))
	assert.Equal(t, "hash", snakeCase("Hash"))
}

func TestChunkStrings(t *testing.T) {
	assert.Nil(t, chunkStrings(nil, 2))
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, chunkStrings([]string{"a", "b", "c"}, 2))
	assert.Equal(t, [][]string{{"a", "b"}}, chunkStrings([]string{"a", "b"}, 2))
}

func TestInsertRows_Empty(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	n, err := insertRows(sqlDB, db.DialectSqlite, "swaps", []Swap{}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertRows_PostgresSkipDuplicates(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer sqlDB.Close()

	rows := []Swap{swap(1, 0, 0, "0xa"), swap(2, 0, 0, "0xb")}
	mock.ExpectExec("INSERT INTO swaps (hash, block_number, transaction_hash, transaction_index, log_index) " +
		"VALUES ($1, $2, $3, $4, $5), ($6, $7, $8, $9, $10) ON CONFLICT DO NOTHING").
		WithArgs("1-0-0", uint64(1), "0xa", uint64(0), uint64(0), "2-0-0", uint64(2), "0xb", uint64(0), uint64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := insertRows(sqlDB, db.DialectPostgres, "swaps", rows, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertRows_SplitsBatches(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	rows := make([]Swap, defaultBatchSize+1)
	for i := range rows {
		rows[i] = swap(uint64(i), 0, 0, "0xa")
	}
	mock.ExpectExec("INSERT INTO swaps").WillReturnResult(sqlmock.NewResult(0, defaultBatchSize))
	mock.ExpectExec("INSERT INTO swaps").WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := insertRows(sqlDB, db.DialectSqlite, "swaps", rows, false)
	require.NoError(t, err)
	assert.Equal(t, int64(defaultBatchSize+1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertRows_ExecError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectExec("INSERT INTO swaps").WillReturnError(errors.New("disk full"))

	_, err = insertRows(sqlDB, db.DialectSqlite, "swaps", []Swap{swap(1, 0, 0, "0xa")}, false)
	assert.ErrorContains(t, err, "disk full")
}
