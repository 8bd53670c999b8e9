// Package retention classifies tracked airdrop wallets as sold or retained.
package retention

import (
	"context"
	"database/sql"
	"errors"

	"github.com/6529-Collections/airdrop-retention/internal/db"
	"github.com/6529-Collections/airdrop-retention/internal/eth/ethdb"
	"github.com/6529-Collections/airdrop-retention/internal/metrics"
	"go.uber.org/zap"
)

// ErrNoWallets means there are no non-distributor wallets, so no rate exists.
var ErrNoWallets = errors.New("no non-distributor wallets to analyze")

type Report struct {
	Total         int64
	Sold          int64
	RetentionRate float64
	SoldWallets   []string
}

type Analyzer struct {
	db          *sql.DB
	offRamp     string
	wallets     ethdb.AirdropWalletDb
	retentionDb ethdb.RetentionDb
}

func NewAnalyzer(sqlDB *sql.DB, dialect db.Dialect, offRamp string) *Analyzer {
	return &Analyzer{
		db:          sqlDB,
		offRamp:     offRamp,
		wallets:     ethdb.NewAirdropWalletDb(dialect),
		retentionDb: ethdb.NewRetentionDb(dialect),
	}
}

// Analyze reads the sold set and the wallet total in one transaction.
func (a *Analyzer) Analyze(ctx context.Context) (Report, error) {
	report, err := db.TxRunner(ctx, a.db, func(tx *sql.Tx) (Report, error) {
		sold, err := a.retentionDb.SoldWallets(tx, a.offRamp)
		if err != nil {
			return Report{}, err
		}
		total, err := a.wallets.CountWallets(tx, false)
		if err != nil {
			return Report{}, err
		}
		return Report{Total: total, Sold: int64(len(sold)), SoldWallets: sold}, nil
	})
	if err != nil {
		return Report{}, err
	}

	rate, err := Rate(report.Sold, report.Total)
	if err != nil {
		return report, err
	}
	report.RetentionRate = rate

	metrics.TrackedWallets.Set(float64(report.Total))
	metrics.SoldWallets.Set(float64(report.Sold))
	metrics.RetentionRate.Set(rate)

	zap.L().Info("Retention analyzed",
		zap.Int64("total", report.Total),
		zap.Int64("sold", report.Sold),
		zap.Int64("retained", report.Retained()),
		zap.String("retentionRate", report.FormattedRate()),
	)
	return report, nil
}

// Rate returns 100 - sold/total*100.
func Rate(sold, total int64) (float64, error) {
	if total == 0 {
		return 0, ErrNoWallets
	}
	return 100 - (float64(sold)/float64(total))*100, nil
}
