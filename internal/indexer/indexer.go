// Package indexer turns ledger event logs into airdrop rows. Each Index call
// performs one ledger fetch and one database transaction.
package indexer

import (
	"errors"
	"fmt"

	"github.com/6529-Collections/airdrop-retention/internal/eth"
	"github.com/6529-Collections/airdrop-retention/internal/eth/ethdb"
	"github.com/6529-Collections/airdrop-retention/internal/metrics"
	"github.com/ethereum/go-ethereum/core/types"
)

var ErrPreconditionNotFound = errors.New("precondition not found")

// ErrNoAnchorFound is returned when no transfer into the liquidity pool has been indexed.
var ErrNoAnchorFound = fmt.Errorf("%w: no transfer into the liquidity pool", ErrPreconditionNotFound)

const (
	entityWallets   = "airdrop_wallets"
	entityTransfers = "airdrop_transfers"
	entitySwaps     = "swaps"
)

type Result struct {
	Fetched int
	Created int64
	Deleted int64
}

func (r Result) record(entity string, kind eth.EventKind) {
	metrics.LogsFetched.WithLabelValues(kind.String()).Add(float64(r.Fetched))
	metrics.RowsCreated.WithLabelValues(entity).Add(float64(r.Created))
	metrics.RowsDeleted.WithLabelValues(entity).Add(float64(r.Deleted))
}

func decodeTransfer(lg types.Log) (eth.TransferEvent, error) {
	ev, err := eth.Decode(eth.TransferEventKind, lg)
	if err != nil {
		return eth.TransferEvent{}, err
	}
	switch e := ev.(type) {
	case eth.TransferEvent:
		return e, nil
	case eth.SwapEvent:
		return eth.TransferEvent{}, fmt.Errorf("%w: got %s event", eth.ErrInvalidSignature, e.Kind())
	}
	return eth.TransferEvent{}, fmt.Errorf("unexpected event %T", ev)
}

func decodeSwap(lg types.Log) (eth.SwapEvent, error) {
	ev, err := eth.Decode(eth.SwapEventKind, lg)
	if err != nil {
		return eth.SwapEvent{}, err
	}
	switch e := ev.(type) {
	case eth.SwapEvent:
		return e, nil
	case eth.TransferEvent:
		return eth.SwapEvent{}, fmt.Errorf("%w: got %s event", eth.ErrInvalidSignature, e.Kind())
	}
	return eth.SwapEvent{}, fmt.Errorf("unexpected event %T", ev)
}

func transferRow(ev eth.TransferEvent) ethdb.AirdropTransfer {
	return ethdb.AirdropTransfer{
		Hash:             ev.Identity(),
		FromWallet:       ev.From,
		ToWallet:         ev.To,
		Amount:           ev.Amount,
		BlockNumber:      ev.BlockNumber,
		TransactionHash:  ev.TransactionHash,
		TransactionIndex: ev.TransactionIndex,
		LogIndex:         ev.LogIndex,
	}
}

func swapRow(ev eth.SwapEvent) ethdb.Swap {
	return ethdb.Swap{
		Hash:             ev.Identity(),
		BlockNumber:      ev.BlockNumber,
		TransactionHash:  ev.TransactionHash,
		TransactionIndex: ev.TransactionIndex,
		LogIndex:         ev.LogIndex,
	}
}
