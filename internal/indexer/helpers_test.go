package indexer

import (
	"context"
	"database/sql"
	"math/big"
	"testing"

	"github.com/6529-Collections/airdrop-retention/internal/db"
	"github.com/6529-Collections/airdrop-retention/internal/db/testdb"
	"github.com/6529-Collections/airdrop-retention/internal/eth"
	"github.com/6529-Collections/airdrop-retention/internal/eth/ethtest"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

const (
	tokenHex       = "0x7eae20d11ef8c779433eb24503def900b9d28ad7"
	poolHex        = "0xb30b54b9a36188d33eeb34b29eaa38d12511e997"
	routerHex      = "0x7d0556d55ca1a92708681e2e231733ebd922597d"
	distributorHex = "0x00000000000000000000000000000000000000d1"
	aliceHex       = "0x000000000000000000000000000000000000000a"
	bobHex         = "0x000000000000000000000000000000000000000b"
	carolHex       = "0x000000000000000000000000000000000000000c"
	daveHex        = "0x000000000000000000000000000000000000000d"
	erinHex        = "0x000000000000000000000000000000000000000e"
)

var (
	token       = common.HexToAddress(tokenHex)
	distributor = common.HexToAddress(distributorHex)
	alice       = common.HexToAddress(aliceHex)
)

func setupDB(t *testing.T) *sql.DB {
	sqlDB, cleanup := testdb.SetupTestDB(t)
	t.Cleanup(cleanup)
	return sqlDB
}

func transferLog(from, to string, amount int64, block uint64, txIndex, logIndex uint, txHash string) types.Log {
	return ethtest.TransferLog(tokenHex, from, to, big.NewInt(amount), ethtest.Pos{
		Block: block, TxIndex: txIndex, LogIndex: logIndex, TxHash: txHash,
	})
}

func swapLog(sender, to string, block uint64, txIndex, logIndex uint, txHash string) types.Log {
	return ethtest.SwapLog(poolHex, sender, to, ethtest.Pos{
		Block: block, TxIndex: txIndex, LogIndex: logIndex, TxHash: txHash,
	})
}

// stubLedger returns its logs for every query, unfiltered.
type stubLedger struct {
	logs []types.Log
}

func (s *stubLedger) FetchLogs(_ context.Context, _ eth.LogQuery) ([]types.Log, error) {
	return s.logs, nil
}

func countRows(t *testing.T, sqlDB *sql.DB, table string) int {
	var n int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

var dialect = db.DialectSqlite
