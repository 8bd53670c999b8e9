package ethdb

import (
	"github.com/6529-Collections/airdrop-retention/internal/db"
)

// SwapDb stores router swaps. A scan replaces every row in its block range.
type SwapDb interface {
	Insert(ex db.Execer, swaps []Swap) (int64, error)
	DeleteInBlockRange(ex db.Execer, fromBlock, toBlock uint64) (int64, error)
}

func NewSwapDb(dialect db.Dialect) SwapDb {
	return &SwapDbImpl{dialect: dialect}
}

type SwapDbImpl struct {
	dialect db.Dialect
}

func (s *SwapDbImpl) Insert(ex db.Execer, swaps []Swap) (int64, error) {
	return insertRows(ex, s.dialect, "swaps", swaps, false)
}

// DeleteInBlockRange removes swaps with fromBlock <= block_number <= toBlock.
func (s *SwapDbImpl) DeleteInBlockRange(ex db.Execer, fromBlock, toBlock uint64) (int64, error) {
	res, err := ex.Exec(db.Rebind(s.dialect,
		`DELETE FROM swaps WHERE block_number >= ? AND block_number <= ?`), fromBlock, toBlock)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
