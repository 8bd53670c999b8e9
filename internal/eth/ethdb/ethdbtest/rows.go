// Package ethdbtest reads stored rows back for assertions. The stores only
// expose what the pipeline needs, so these queries live here.
package ethdbtest

import (
	"database/sql"
	"testing"

	"github.com/6529-Collections/airdrop-retention/internal/eth/ethdb"
	"github.com/stretchr/testify/require"
)

// TransfersFrom returns the transfers sent by fromWallet in ledger order.
func TransfersFrom(t *testing.T, sqlDB *sql.DB, fromWallet string) []ethdb.AirdropTransfer {
	t.Helper()
	rows, err := sqlDB.Query(`
		SELECT hash, from_wallet, to_wallet, amount, block_number,
			transaction_hash, transaction_index, log_index
		FROM airdrop_transfers
		WHERE from_wallet = ?
		ORDER BY block_number, transaction_index, log_index`, fromWallet)
	require.NoError(t, err)
	defer rows.Close()

	var transfers []ethdb.AirdropTransfer
	for rows.Next() {
		var tr ethdb.AirdropTransfer
		require.NoError(t, rows.Scan(&tr.Hash, &tr.FromWallet, &tr.ToWallet, &tr.Amount, &tr.BlockNumber,
			&tr.TransactionHash, &tr.TransactionIndex, &tr.LogIndex))
		transfers = append(transfers, tr)
	}
	require.NoError(t, rows.Err())
	return transfers
}

// SwapsInBlockRange returns swaps with fromBlock <= block_number <= toBlock in ledger order.
func SwapsInBlockRange(t *testing.T, sqlDB *sql.DB, fromBlock, toBlock uint64) []ethdb.Swap {
	t.Helper()
	rows, err := sqlDB.Query(`
		SELECT hash, block_number, transaction_hash, transaction_index, log_index
		FROM swaps
		WHERE block_number >= ? AND block_number <= ?
		ORDER BY block_number, transaction_index, log_index`, fromBlock, toBlock)
	require.NoError(t, err)
	defer rows.Close()

	var swaps []ethdb.Swap
	for rows.Next() {
		var sw ethdb.Swap
		require.NoError(t, rows.Scan(&sw.Hash, &sw.BlockNumber, &sw.TransactionHash, &sw.TransactionIndex, &sw.LogIndex))
		swaps = append(swaps, sw)
	}
	require.NoError(t, rows.Err())
	return swaps
}
