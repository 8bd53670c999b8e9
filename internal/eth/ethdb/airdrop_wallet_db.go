package ethdb

import (
	"github.com/6529-Collections/airdrop-retention/internal/db"
)

// AirdropWalletDb stores discovered wallets. Rows are never updated or deleted.
type AirdropWalletDb interface {
	InsertSkipDuplicates(ex db.Execer, wallets []AirdropWallet) (int64, error)
	FindWallets(rq db.QueryRunner, isDistributor bool) ([]AirdropWallet, error)
	CountWallets(rq db.QueryRunner, isDistributor bool) (int64, error)
}

func NewAirdropWalletDb(dialect db.Dialect) AirdropWalletDb {
	return &AirdropWalletDbImpl{dialect: dialect}
}

type AirdropWalletDbImpl struct {
	dialect db.Dialect
}

const allWalletsQuery = `
	SELECT address, sender, amount, block_number, transaction_hash,
		transaction_index, log_index, is_airdrop_distributor
	FROM airdrop_wallets
`

// InsertSkipDuplicates returns the number of wallets that did not exist yet.
func (w *AirdropWalletDbImpl) InsertSkipDuplicates(ex db.Execer, wallets []AirdropWallet) (int64, error) {
	return insertRows(ex, w.dialect, "airdrop_wallets", wallets, true)
}

func (w *AirdropWalletDbImpl) FindWallets(rq db.QueryRunner, isDistributor bool) ([]AirdropWallet, error) {
	rows, err := rq.Query(db.Rebind(w.dialect, allWalletsQuery+`
		WHERE is_airdrop_distributor = ?
		ORDER BY block_number, transaction_index, log_index, address`), isDistributor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []AirdropWallet
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)
	}
	return wallets, rows.Err()
}

func (w *AirdropWalletDbImpl) CountWallets(rq db.QueryRunner, isDistributor bool) (int64, error) {
	var count int64
	err := rq.QueryRow(db.Rebind(w.dialect,
		`SELECT COUNT(*) FROM airdrop_wallets WHERE is_airdrop_distributor = ?`), isDistributor).Scan(&count)
	return count, err
}

func scanWallet(scanner db.RowScanner) (AirdropWallet, error) {
	var wallet AirdropWallet
	err := scanner.Scan(
		&wallet.Address, &wallet.Sender, &wallet.Amount, &wallet.BlockNumber,
		&wallet.TransactionHash, &wallet.TransactionIndex, &wallet.LogIndex, &wallet.IsAirdropDistributor,
	)
	return wallet, err
}
