package indexer

import (
	"context"
	"database/sql"

	"github.com/6529-Collections/airdrop-retention/internal/db"
	"github.com/6529-Collections/airdrop-retention/internal/eth"
	"github.com/6529-Collections/airdrop-retention/internal/eth/ethdb"
	"github.com/6529-Collections/airdrop-retention/pkg/orderedset"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// TransferIndexer records a wallet's outbound transfers.
type TransferIndexer struct {
	db        *sql.DB
	ledger    eth.LedgerClient
	token     common.Address
	transfers ethdb.AirdropTransferDb
}

func NewTransferIndexer(sqlDB *sql.DB, dialect db.Dialect, ledger eth.LedgerClient, token common.Address) *TransferIndexer {
	return &TransferIndexer{
		db:        sqlDB,
		ledger:    ledger,
		token:     token,
		transfers: ethdb.NewAirdropTransferDb(dialect),
	}
}

// Index replaces, per touched transaction hash, every stored transfer with the
// freshly fetched ones. Rows of other wallets in the same transaction are
// replaced too.
func (t *TransferIndexer) Index(ctx context.Context, wallet common.Address, fromBlock, toBlock uint64) (Result, error) {
	logger := zap.L().With(zap.String("wallet", wallet.Hex()))
	logger.Info("Indexing airdrop transfers",
		zap.Uint64("fromBlock", fromBlock),
		zap.Uint64("toBlock", toBlock),
	)

	logs, err := t.ledger.FetchLogs(ctx, eth.LogQuery{
		Contract:  t.token,
		Event:     eth.TransferEventABI(),
		Args:      map[string]common.Address{"from": wallet},
		FromBlock: fromBlock,
		ToBlock:   toBlock,
	})
	if err != nil {
		return Result{}, err
	}
	result := Result{Fetched: len(logs)}
	logger.Info("Fetched transfer logs", zap.Int("logs", len(logs)))

	txHashes := orderedset.New[string]()
	rows := make([]ethdb.AirdropTransfer, 0, len(logs))
	for _, lg := range logs {
		ev, err := decodeTransfer(lg)
		if err != nil {
			return result, err
		}
		rows = append(rows, transferRow(ev))
		txHashes.Add(ev.TransactionHash)
	}

	result, err = db.TxRunner(ctx, t.db, func(tx *sql.Tx) (Result, error) {
		deleted, err := t.transfers.DeleteByTransactionHashes(tx, txHashes.Values())
		if err != nil {
			return result, err
		}
		result.Deleted = deleted
		created, err := t.transfers.Insert(tx, rows)
		if err != nil {
			return result, err
		}
		result.Created = created
		return result, nil
	})
	if err != nil {
		return result, err
	}
	result.record(entityTransfers, eth.TransferEventKind)

	logger.Info("Replaced airdrop transfers",
		zap.Int64("deleted", result.Deleted),
		zap.Int64("created", result.Created),
	)
	return result, nil
}
