package ethdb

import (
	"database/sql"
	"fmt"

	"github.com/6529-Collections/airdrop-retention/internal/db"
)

// AirdropTransferDb stores transfer edges. Rows are replaced per transaction
// hash, never merged.
type AirdropTransferDb interface {
	Insert(ex db.Execer, transfers []AirdropTransfer) (int64, error)
	DeleteByTransactionHashes(ex db.Execer, txHashes []string) (int64, error)
	FindFirstBlockTo(rq db.QueryRunner, toWallet string) (blockNumber uint64, found bool, err error)
	MinBlockByRecipient(rq db.QueryRunner) ([]RecipientMinBlock, error)
}

func NewAirdropTransferDb(dialect db.Dialect) AirdropTransferDb {
	return &AirdropTransferDbImpl{dialect: dialect}
}

type AirdropTransferDbImpl struct {
	dialect db.Dialect
}

func (t *AirdropTransferDbImpl) Insert(ex db.Execer, transfers []AirdropTransfer) (int64, error) {
	return insertRows(ex, t.dialect, "airdrop_transfers", transfers, false)
}

func (t *AirdropTransferDbImpl) DeleteByTransactionHashes(ex db.Execer, txHashes []string) (int64, error) {
	var deleted int64
	for _, chunk := range chunkStrings(txHashes, defaultBatchSize) {
		args := make([]interface{}, len(chunk))
		for i, h := range chunk {
			args[i] = h
		}
		query := fmt.Sprintf("DELETE FROM airdrop_transfers WHERE transaction_hash IN (%s)", db.Placeholders(len(chunk)))
		res, err := ex.Exec(db.Rebind(t.dialect, query), args...)
		if err != nil {
			return deleted, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	return deleted, nil
}

// FindFirstBlockTo returns the lowest block in which toWallet received a transfer.
func (t *AirdropTransferDbImpl) FindFirstBlockTo(rq db.QueryRunner, toWallet string) (uint64, bool, error) {
	var blockNumber uint64
	err := rq.QueryRow(db.Rebind(t.dialect, `
		SELECT block_number FROM airdrop_transfers
		WHERE to_wallet = ?
		ORDER BY block_number ASC
		LIMIT 1`), toWallet).Scan(&blockNumber)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return blockNumber, true, nil
}

func (t *AirdropTransferDbImpl) MinBlockByRecipient(rq db.QueryRunner) ([]RecipientMinBlock, error) {
	rows, err := rq.Query(`
		SELECT to_wallet, MIN(block_number)
		FROM airdrop_transfers
		GROUP BY to_wallet
		ORDER BY to_wallet`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipients []RecipientMinBlock
	for rows.Next() {
		var r RecipientMinBlock
		if err := rows.Scan(&r.ToWallet, &r.MinBlockNumber); err != nil {
			return nil, err
		}
		recipients = append(recipients, r)
	}
	return recipients, rows.Err()
}
