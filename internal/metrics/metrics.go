package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every collector of a run. It is kept apart from the default
// registry so the textfile only carries airdrop metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	LogsFetched = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airdrop",
		Subsystem: "ledger",
		Name:      "logs_fetched_total",
		Help:      "Total event logs fetched from the ledger",
	}, []string{"event"})

	RowsCreated = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airdrop",
		Subsystem: "indexer",
		Name:      "rows_created_total",
		Help:      "Total rows written per entity",
	}, []string{"entity"})

	RowsDeleted = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airdrop",
		Subsystem: "indexer",
		Name:      "rows_deleted_total",
		Help:      "Total rows removed by replace cycles per entity",
	}, []string{"entity"})

	StageDurationSeconds = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "airdrop",
		Subsystem: "pipeline",
		Name:      "stage_duration_seconds",
		Help:      "Wall time of each pipeline stage in the last run",
	}, []string{"stage"})

	LastSuccessTimestamp = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "airdrop",
		Subsystem: "pipeline",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time at which the last run completed",
	})

	TrackedWallets = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "airdrop",
		Subsystem: "retention",
		Name:      "tracked_wallets",
		Help:      "Non-distributor wallets considered by the retention analysis",
	})

	SoldWallets = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "airdrop",
		Subsystem: "retention",
		Name:      "sold_wallets",
		Help:      "Tracked wallets classified as sold",
	})

	RetentionRate = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "airdrop",
		Subsystem: "retention",
		Name:      "rate_percent",
		Help:      "Share of tracked wallets that retained their tokens",
	})
)

// WriteTextfile dumps Registry in the node-exporter textfile format.
func WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
