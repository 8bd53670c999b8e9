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

// WalletIndexer discovers the recipients of a wallet's outbound token transfers.
type WalletIndexer struct {
	db      *sql.DB
	ledger  eth.LedgerClient
	token   common.Address
	wallets ethdb.AirdropWalletDb
}

func NewWalletIndexer(sqlDB *sql.DB, dialect db.Dialect, ledger eth.LedgerClient, token common.Address) *WalletIndexer {
	return &WalletIndexer{
		db:      sqlDB,
		ledger:  ledger,
		token:   token,
		wallets: ethdb.NewAirdropWalletDb(dialect),
	}
}

// Index stores one wallet row per transfer sent by wallet in [fromBlock, toBlock].
// With limit > 0, iteration stops once limit distinct recipients were seen.
// Existing wallets are left untouched; Result.Created counts new ones only.
func (w *WalletIndexer) Index(ctx context.Context, wallet common.Address, fromBlock, toBlock uint64, isDistributor bool, limit int) (Result, error) {
	logger := zap.L().With(zap.String("wallet", wallet.Hex()))
	logger.Info("Indexing airdrop wallets",
		zap.Bool("isDistributor", isDistributor),
		zap.Uint64("fromBlock", fromBlock),
		zap.Uint64("toBlock", toBlock),
		zap.Int("limit", limit),
	)

	logs, err := w.ledger.FetchLogs(ctx, eth.LogQuery{
		Contract:  w.token,
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

	recipients := orderedset.New[string]()
	rows := make([]ethdb.AirdropWallet, 0, len(logs))
	for _, lg := range logs {
		if limit > 0 && recipients.Len() >= limit {
			break
		}
		ev, err := decodeTransfer(lg)
		if err != nil {
			return result, err
		}
		recipients.Add(ev.To)
		rows = append(rows, ethdb.AirdropWallet{
			Address:              ev.To,
			Sender:               ev.From,
			Amount:               ev.Amount,
			BlockNumber:          ev.BlockNumber,
			TransactionHash:      ev.TransactionHash,
			TransactionIndex:     ev.TransactionIndex,
			LogIndex:             ev.LogIndex,
			IsAirdropDistributor: isDistributor,
		})
	}

	created, err := db.TxRunner(ctx, w.db, func(tx *sql.Tx) (int64, error) {
		return w.wallets.InsertSkipDuplicates(tx, rows)
	})
	if err != nil {
		return result, err
	}
	result.Created = created
	result.record(entityWallets, eth.TransferEventKind)

	logger.Info("Created airdrop wallets",
		zap.Int("recipients", recipients.Len()),
		zap.Int64("created", created),
	)
	return result, nil
}
