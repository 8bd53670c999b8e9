package ethdb

import (
	"github.com/6529-Collections/airdrop-retention/internal/db"
)

type RetentionDb interface {
	SoldWallets(rq db.QueryRunner, offRamp string) ([]string, error)
}

func NewRetentionDb(dialect db.Dialect) RetentionDb {
	return &RetentionDbImpl{dialect: dialect}
}

type RetentionDbImpl struct {
	dialect db.Dialect
}

// A non-distributor wallet has sold when any of its outbound transfers
//   - went straight to the off-ramp,
//   - reached a recipient that later sent to the off-ramp,
//   - shares its transaction with a router swap,
//   - reached a recipient whose own transfer shares a transaction with a router swap.
//
// Lookahead is a single hop.
const soldWalletsQuery = `
	SELECT t.from_wallet
	FROM airdrop_transfers t
		JOIN airdrop_wallets w ON t.from_wallet = w.address
	WHERE w.is_airdrop_distributor = ?
		AND (
			t.to_wallet = ?
			OR EXISTS (
				SELECT 1 FROM airdrop_transfers t2
				WHERE t2.from_wallet = t.to_wallet AND t2.to_wallet = ?)
			OR EXISTS (
				SELECT 1 FROM swaps s
				WHERE s.transaction_hash = t.transaction_hash)
			OR EXISTS (
				SELECT 1 FROM airdrop_transfers t2
					JOIN swaps s ON s.transaction_hash = t2.transaction_hash
				WHERE t2.from_wallet = t.to_wallet)
		)
	GROUP BY t.from_wallet
	ORDER BY t.from_wallet
`

func (r *RetentionDbImpl) SoldWallets(rq db.QueryRunner, offRamp string) ([]string, error) {
	rows, err := rq.Query(db.Rebind(r.dialect, soldWalletsQuery), false, offRamp, offRamp)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []string
	for rows.Next() {
		var wallet string
		if err := rows.Scan(&wallet); err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)
	}
	return wallets, rows.Err()
}
