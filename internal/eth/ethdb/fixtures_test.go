package ethdb

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func wallet(address string, block uint64, distributor bool) AirdropWallet {
	return AirdropWallet{
		Address:              address,
		Sender:               "0xdistributor",
		Amount:               decimal.RequireFromString("1000000000000000000"),
		BlockNumber:          block,
		TransactionHash:      fmt.Sprintf("0xtx%d", block),
		TransactionIndex:     0,
		LogIndex:             0,
		IsAirdropDistributor: distributor,
	}
}

func transfer(from, to string, block, txIndex, logIndex uint64, txHash string) AirdropTransfer {
	return AirdropTransfer{
		Hash:             fmt.Sprintf("%d-%d-%d", block, txIndex, logIndex),
		FromWallet:       from,
		ToWallet:         to,
		Amount:           decimal.NewFromInt(5),
		BlockNumber:      block,
		TransactionHash:  txHash,
		TransactionIndex: txIndex,
		LogIndex:         logIndex,
	}
}

func swap(block, txIndex, logIndex uint64, txHash string) Swap {
	return Swap{
		Hash:             fmt.Sprintf("%d-%d-%d", block, txIndex, logIndex),
		BlockNumber:      block,
		TransactionHash:  txHash,
		TransactionIndex: txIndex,
		LogIndex:         logIndex,
	}
}

func transfersFrom(t *testing.T, sqlDB *sql.DB, fromWallet string) []AirdropTransfer {
	t.Helper()
	rows, err := sqlDB.Query(`
		SELECT hash, from_wallet, to_wallet, amount, block_number,
			transaction_hash, transaction_index, log_index
		FROM airdrop_transfers
		WHERE from_wallet = ?
		ORDER BY block_number, transaction_index, log_index`, fromWallet)
	require.NoError(t, err)
	defer rows.Close()

	var transfers []AirdropTransfer
	for rows.Next() {
		var tr AirdropTransfer
		require.NoError(t, rows.Scan(&tr.Hash, &tr.FromWallet, &tr.ToWallet, &tr.Amount, &tr.BlockNumber,
			&tr.TransactionHash, &tr.TransactionIndex, &tr.LogIndex))
		transfers = append(transfers, tr)
	}
	require.NoError(t, rows.Err())
	return transfers
}

func swapsInBlockRange(t *testing.T, sqlDB *sql.DB, fromBlock, toBlock uint64) []Swap {
	t.Helper()
	rows, err := sqlDB.Query(`
		SELECT hash, block_number, transaction_hash, transaction_index, log_index
		FROM swaps
		WHERE block_number >= ? AND block_number <= ?
		ORDER BY block_number, transaction_index, log_index`, fromBlock, toBlock)
	require.NoError(t, err)
	defer rows.Close()

	var swaps []Swap
	for rows.Next() {
		var sw Swap
		require.NoError(t, rows.Scan(&sw.Hash, &sw.BlockNumber, &sw.TransactionHash, &sw.TransactionIndex, &sw.LogIndex))
		swaps = append(swaps, sw)
	}
	require.NoError(t, rows.Err())
	return swaps
}
