package main

import (
	"context"
	"os"

	"github.com/6529-Collections/airdrop-retention/internal/config"
	"github.com/6529-Collections/airdrop-retention/internal/db"
	"github.com/6529-Collections/airdrop-retention/internal/eth"
	"github.com/6529-Collections/airdrop-retention/internal/metrics"
	"github.com/6529-Collections/airdrop-retention/internal/retention"
	"github.com/6529-Collections/airdrop-retention/pkg/airdrop"
	"go.uber.org/zap"
)

var Version = "dev" // Overridden by release build script

func init() {
	logger := zap.Must(zap.NewProduction())
	if config.Get().LogZapMode == "development" {
		logger = zap.Must(zap.NewDevelopment())
	}
	zap.ReplaceGlobals(logger)
}

var newLedgerClient = func() (eth.LedgerClient, func()) {
	client := eth.NewLedgerClient()
	return client, client.Close
}

func main() {
	zap.L().Info("Starting 6529-Collections/airdrop-retention...",
		zap.String("Version", Version))

	report, err := run(context.Background(), config.Get())
	if err != nil {
		zap.L().Error("Airdrop retention run failed", zap.Error(err))
		_ = zap.L().Sync()
		os.Exit(1)
	}

	zap.L().Info("Done",
		zap.Int64("total", report.Total),
		zap.Int64("sold", report.Sold),
		zap.String("retentionRate", report.FormattedRate()),
	)
	_ = zap.L().Sync()
}

func run(ctx context.Context, cfg config.Config) (retention.Report, error) {
	opts, err := airdrop.OptionsFromConfig(cfg)
	if err != nil {
		return retention.Report{}, err
	}

	sqlDB, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseUrl)
	if err != nil {
		return retention.Report{}, err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			zap.L().Warn("Error closing DB", zap.Error(err))
		}
	}()

	ledger, closeLedger, err := openLedger(cfg)
	if err != nil {
		return retention.Report{}, err
	}
	defer closeLedger()

	orchestrator := airdrop.NewOrchestrator(sqlDB, db.Dialect(cfg.DatabaseDriver), ledger, opts)
	report, runErr := orchestrator.Run(ctx)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			zap.L().Warn("Failed to write metrics", zap.Error(err))
		}
	}
	return report, runErr
}

// openLedger wraps the ledger client in the badger log cache when LOG_CACHE_PATH is set.
func openLedger(cfg config.Config) (eth.LedgerClient, func(), error) {
	client, closeClient := newLedgerClient()
	if cfg.LogCachePath == "" {
		return client, closeClient, nil
	}

	cache, err := db.OpenBadger(cfg.LogCachePath)
	if err != nil {
		closeClient()
		return nil, nil, err
	}
	zap.L().Info("Using ledger log cache", zap.String("path", cfg.LogCachePath))
	return eth.NewCachingLedgerClient(client, cache), func() {
		closeClient()
		if err := cache.Close(); err != nil {
			zap.L().Warn("Error closing log cache", zap.Error(err))
		}
	}, nil
}
