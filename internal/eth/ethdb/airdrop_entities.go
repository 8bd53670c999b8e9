package ethdb

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Field order and names map onto table columns (snake_case) for insertRows.

type AirdropWallet struct {
	Address              string
	Sender               string
	Amount               decimal.Decimal
	BlockNumber          uint64
	TransactionHash      string
	TransactionIndex     uint64
	LogIndex             uint64
	IsAirdropDistributor bool
}

type AirdropTransfer struct {
	Hash             string
	FromWallet       string
	ToWallet         string
	Amount           decimal.Decimal
	BlockNumber      uint64
	TransactionHash  string
	TransactionIndex uint64
	LogIndex         uint64
}

type Swap struct {
	Hash             string
	BlockNumber      uint64
	TransactionHash  string
	TransactionIndex uint64
	LogIndex         uint64
}

// RecipientMinBlock is the earliest block at which ToWallet received a tracked transfer.
type RecipientMinBlock struct {
	ToWallet       string
	MinBlockNumber sql.NullInt64
}
