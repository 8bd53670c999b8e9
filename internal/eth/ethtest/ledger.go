// Package ethtest provides an in-memory ledger and log builders for tests.
package ethtest

import (
	"context"
	"math/big"
	"sync"

	"github.com/6529-Collections/airdrop-retention/internal/eth"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Ledger answers FetchLogs from a fixed set of logs, applying the same
// address, topic and block filters a node would.
type Ledger struct {
	mu      sync.Mutex
	logs    []types.Log
	Calls   []eth.LogQuery
	FailErr error
}

func NewLedger(logs ...types.Log) *Ledger {
	return &Ledger{logs: logs}
}

func (l *Ledger) Add(logs ...types.Log) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, logs...)
}

func (l *Ledger) FetchLogs(_ context.Context, q eth.LogQuery) ([]types.Log, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Calls = append(l.Calls, q)
	if l.FailErr != nil {
		return nil, l.FailErr
	}
	topics, err := q.Topics()
	if err != nil {
		return nil, err
	}
	var out []types.Log
	for _, lg := range l.logs {
		if lg.Address != q.Contract || lg.BlockNumber < q.FromBlock || lg.BlockNumber > q.ToBlock {
			continue
		}
		if matchTopics(lg.Topics, topics) {
			out = append(out, lg)
		}
	}
	return out, nil
}

func matchTopics(have []common.Hash, want [][]common.Hash) bool {
	if len(want) > len(have) {
		return false
	}
	for i, slot := range want {
		if len(slot) == 0 {
			continue
		}
		ok := false
		for _, h := range slot {
			if have[i] == h {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Pos is a log position on the ledger.
type Pos struct {
	Block    uint64
	TxIndex  uint
	LogIndex uint
	TxHash   string
}

func addressTopic(addr string) common.Hash {
	return common.BytesToHash(common.HexToAddress(addr).Bytes())
}

func TransferLog(token string, from string, to string, amount *big.Int, pos Pos) types.Log {
	return types.Log{
		Address: common.HexToAddress(token),
		Topics: []common.Hash{
			eth.TransferEventABI().ID,
			addressTopic(from),
			addressTopic(to),
		},
		Data:        common.LeftPadBytes(amount.Bytes(), 32),
		BlockNumber: pos.Block,
		TxHash:      common.HexToHash(pos.TxHash),
		TxIndex:     pos.TxIndex,
		Index:       pos.LogIndex,
	}
}

func SwapLog(pool string, sender string, to string, pos Pos) types.Log {
	return types.Log{
		Address: common.HexToAddress(pool),
		Topics: []common.Hash{
			eth.SwapEventABI().ID,
			addressTopic(sender),
			addressTopic(to),
		},
		Data:        make([]byte, 4*32),
		BlockNumber: pos.Block,
		TxHash:      common.HexToHash(pos.TxHash),
		TxIndex:     pos.TxIndex,
		Index:       pos.LogIndex,
	}
}
