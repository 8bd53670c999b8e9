package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_AllVariablesNonNil(t *testing.T) {
	vars := []struct {
		name string
		val  any
	}{
		{"LogsFetched", LogsFetched},
		{"RowsCreated", RowsCreated},
		{"RowsDeleted", RowsDeleted},
		{"StageDurationSeconds", StageDurationSeconds},
		{"LastSuccessTimestamp", LastSuccessTimestamp},
		{"TrackedWallets", TrackedWallets},
		{"SoldWallets", SoldWallets},
		{"RetentionRate", RetentionRate},
	}

	for _, v := range vars {
		assert.NotNilf(t, v.val, "%s should not be nil", v.name)
	}
}

func TestMetrics_CounterIncrement(t *testing.T) {
	before := testutil.ToFloat64(RowsCreated.WithLabelValues("test_entity"))
	RowsCreated.WithLabelValues("test_entity").Add(3)
	assert.Equal(t, before+3, testutil.ToFloat64(RowsCreated.WithLabelValues("test_entity")))
}

func TestWriteTextfile(t *testing.T) {
	RetentionRate.Set(87.5)
	LogsFetched.WithLabelValues("Transfer").Inc()

	path := filepath.Join(t.TempDir(), "nested", "airdrop.prom")
	require.NoError(t, WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "airdrop_retention_rate_percent 87.5")
	assert.Contains(t, string(content), `airdrop_ledger_logs_fetched_total{event="Transfer"}`)
	assert.NotContains(t, string(content), "go_goroutines")
}
