package airdrop

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/6529-Collections/airdrop-retention/internal/db"
	"github.com/6529-Collections/airdrop-retention/internal/eth"
	"github.com/6529-Collections/airdrop-retention/internal/eth/ethdb"
	"github.com/6529-Collections/airdrop-retention/internal/indexer"
	"github.com/6529-Collections/airdrop-retention/internal/metrics"
	"github.com/6529-Collections/airdrop-retention/internal/retention"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Orchestrator runs the indexing stages in order and then the retention
// analysis. Each stage reads what the previous one committed.
type Orchestrator struct {
	db   *sql.DB
	opts Options

	walletIndexer   *indexer.WalletIndexer
	transferIndexer *indexer.TransferIndexer
	swapIndexer     *indexer.SwapIndexer
	analyzer        *retention.Analyzer

	walletDb   ethdb.AirdropWalletDb
	transferDb ethdb.AirdropTransferDb

	runID  string
	logger *zap.Logger
}

func NewOrchestrator(sqlDB *sql.DB, dialect db.Dialect, ledger eth.LedgerClient, opts Options) *Orchestrator {
	runID := uuid.NewString()
	return &Orchestrator{
		db:              sqlDB,
		opts:            opts,
		walletIndexer:   indexer.NewWalletIndexer(sqlDB, dialect, ledger, opts.Token),
		transferIndexer: indexer.NewTransferIndexer(sqlDB, dialect, ledger, opts.Token),
		swapIndexer: indexer.NewSwapIndexer(sqlDB, dialect, ledger, indexer.SwapIndexerOptions{
			Pool:   opts.Pool,
			Router: opts.Router,
			Window: opts.SwapWindow,
		}),
		analyzer:   retention.NewAnalyzer(sqlDB, dialect, opts.OffRamp),
		walletDb:   ethdb.NewAirdropWalletDb(dialect),
		transferDb: ethdb.NewAirdropTransferDb(dialect),
		runID:      runID,
		logger:     zap.L().With(zap.String("runId", runID)),
	}
}

func (o *Orchestrator) RunID() string {
	return o.runID
}

// Run stops at the first failing stage.
func (o *Orchestrator) Run(ctx context.Context) (retention.Report, error) {
	o.logger.Info("Starting airdrop retention run")

	stages := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"seed_distributors", o.seedDistributors},
		{"distributor_recipients", o.indexDistributorRecipients},
		{"wallet_transfers", o.indexWalletTransfers},
		{"recipient_transfers", o.indexRecipientTransfers},
		{"swaps", o.indexSwaps},
	}
	for _, s := range stages {
		if err := o.stage(ctx, s.name, s.fn); err != nil {
			return retention.Report{}, err
		}
	}

	var report retention.Report
	err := o.stage(ctx, "retention", func(ctx context.Context) error {
		var err error
		report, err = o.analyzer.Analyze(ctx)
		return err
	})
	if err != nil {
		return report, err
	}

	metrics.LastSuccessTimestamp.SetToCurrentTime()
	o.logger.Info("Airdrop retention run completed",
		zap.Int64("total", report.Total),
		zap.Int64("sold", report.Sold),
		zap.String("retentionRate", report.FormattedRate()),
	)
	return report, nil
}

func (o *Orchestrator) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	o.logger.Info("Stage started", zap.String("stage", name))
	if err := fn(ctx); err != nil {
		o.logger.Error("Stage failed", zap.String("stage", name), zap.Error(err))
		return fmt.Errorf("stage %s: %w", name, err)
	}
	elapsed := time.Since(start)
	metrics.StageDurationSeconds.WithLabelValues(name).Set(elapsed.Seconds())
	o.logger.Info("Stage completed", zap.String("stage", name), zap.Duration("elapsed", elapsed))
	return nil
}

func (o *Orchestrator) seedDistributors(ctx context.Context) error {
	_, err := o.walletIndexer.Index(ctx, o.opts.OriginDistributor, o.opts.SeedFromBlock, o.opts.SeedToBlock, true, 0)
	return err
}

func (o *Orchestrator) indexDistributorRecipients(ctx context.Context) error {
	distributors, err := o.walletDb.FindWallets(o.db, true)
	if err != nil {
		return err
	}
	if len(distributors) == 0 {
		o.logger.Warn("No distributors indexed")
		return nil
	}
	limit := recipientLimit(o.opts.FanOutCap, len(distributors))
	o.logger.Info("Indexing wallets by distributors",
		zap.Int("distributors", len(distributors)),
		zap.Int("limit", limit),
	)
	for _, d := range distributors {
		_, err := o.walletIndexer.Index(ctx, common.HexToAddress(d.Address),
			d.BlockNumber, d.BlockNumber+o.opts.DistributorBlockRange, false, limit)
		if err != nil {
			return err
		}
	}
	return nil
}

// recipientLimit splits the fan-out cap evenly across distributors; the
// remainder is not handed out. A cap smaller than the distributor count still
// leaves one recipient per distributor, since WalletIndexer reads 0 as no limit.
func recipientLimit(fanOutCap, distributors int) int {
	limit := fanOutCap / distributors
	if limit < 1 {
		return 1
	}
	return limit
}

func (o *Orchestrator) indexWalletTransfers(ctx context.Context) error {
	wallets, err := o.walletDb.FindWallets(o.db, false)
	if err != nil {
		return err
	}
	o.logger.Info("Indexing transfers by wallets", zap.Int("wallets", len(wallets)))
	for _, w := range wallets {
		_, err := o.transferIndexer.Index(ctx, common.HexToAddress(w.Address),
			w.BlockNumber, w.BlockNumber+o.opts.TransferBlockRange)
		if err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) indexRecipientTransfers(ctx context.Context) error {
	recipients, err := o.transferDb.MinBlockByRecipient(o.db)
	if err != nil {
		return err
	}
	o.logger.Info("Indexing transfers by recipients", zap.Int("recipients", len(recipients)))
	for _, r := range recipients {
		if !r.MinBlockNumber.Valid {
			return fmt.Errorf("%w: no block number for recipient %s", indexer.ErrPreconditionNotFound, r.ToWallet)
		}
		fromBlock := uint64(r.MinBlockNumber.Int64)
		_, err := o.transferIndexer.Index(ctx, common.HexToAddress(r.ToWallet),
			fromBlock, fromBlock+o.opts.TransferBlockRange)
		if err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) indexSwaps(ctx context.Context) error {
	_, err := o.swapIndexer.Index(ctx)
	return err
}
