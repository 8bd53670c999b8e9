package indexer

import (
	"context"
	"database/sql"

	"github.com/6529-Collections/airdrop-retention/internal/db"
	"github.com/6529-Collections/airdrop-retention/internal/eth"
	"github.com/6529-Collections/airdrop-retention/internal/eth/ethdb"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

type SwapIndexerOptions struct {
	Pool   common.Address
	Router common.Address
	// Window is the number of blocks scanned after the pool's first receipt.
	Window uint64
}

// SwapIndexer records router swaps on the liquidity pool.
type SwapIndexer struct {
	db        *sql.DB
	ledger    eth.LedgerClient
	opts      SwapIndexerOptions
	transfers ethdb.AirdropTransferDb
	swaps     ethdb.SwapDb
}

func NewSwapIndexer(sqlDB *sql.DB, dialect db.Dialect, ledger eth.LedgerClient, opts SwapIndexerOptions) *SwapIndexer {
	return &SwapIndexer{
		db:        sqlDB,
		ledger:    ledger,
		opts:      opts,
		transfers: ethdb.NewAirdropTransferDb(dialect),
		swaps:     ethdb.NewSwapDb(dialect),
	}
}

type SwapResult struct {
	Result
	FromBlock uint64
	ToBlock   uint64
}

// Index scans [first pool receipt, first pool receipt + Window] for swaps whose
// sender and recipient are both the router, replacing every swap stored in
// that range.
func (s *SwapIndexer) Index(ctx context.Context) (SwapResult, error) {
	pool := eth.NormalizeAddress(s.opts.Pool.Hex())
	fromBlock, found, err := s.transfers.FindFirstBlockTo(s.db, pool)
	if err != nil {
		return SwapResult{}, err
	}
	if !found {
		return SwapResult{}, ErrNoAnchorFound
	}
	toBlock := fromBlock + s.opts.Window

	logger := zap.L().With(zap.String("pool", pool))
	logger.Info("Indexing swaps",
		zap.Uint64("fromBlock", fromBlock),
		zap.Uint64("toBlock", toBlock),
	)

	logs, err := s.ledger.FetchLogs(ctx, eth.LogQuery{
		Contract: s.opts.Pool,
		Event:    eth.SwapEventABI(),
		Args: map[string]common.Address{
			"_sender": s.opts.Router,
			"_to":     s.opts.Router,
		},
		FromBlock: fromBlock,
		ToBlock:   toBlock,
	})
	if err != nil {
		return SwapResult{}, err
	}
	result := SwapResult{Result: Result{Fetched: len(logs)}, FromBlock: fromBlock, ToBlock: toBlock}
	logger.Info("Fetched swap logs", zap.Int("logs", len(logs)))

	rows := make([]ethdb.Swap, 0, len(logs))
	for _, lg := range logs {
		ev, err := decodeSwap(lg)
		if err != nil {
			return result, err
		}
		rows = append(rows, swapRow(ev))
	}

	result, err = db.TxRunner(ctx, s.db, func(tx *sql.Tx) (SwapResult, error) {
		deleted, err := s.swaps.DeleteInBlockRange(tx, fromBlock, toBlock)
		if err != nil {
			return result, err
		}
		result.Deleted = deleted
		created, err := s.swaps.Insert(tx, rows)
		if err != nil {
			return result, err
		}
		result.Created = created
		return result, nil
	})
	if err != nil {
		return result, err
	}
	result.record(entitySwaps, eth.SwapEventKind)

	logger.Info("Replaced swaps",
		zap.Int64("deleted", result.Deleted),
		zap.Int64("created", result.Created),
	)
	return result, nil
}
