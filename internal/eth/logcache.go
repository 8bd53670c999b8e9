package eth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

const logCachePrefix = "ledger:logs:"

// CachingLedgerClient memoizes fetched log batches. Only use it for ranges
// that are already final; a cached batch is never refreshed.
type CachingLedgerClient struct {
	inner LedgerClient
	db    *badger.DB
}

func NewCachingLedgerClient(inner LedgerClient, db *badger.DB) *CachingLedgerClient {
	return &CachingLedgerClient{inner: inner, db: db}
}

func (c *CachingLedgerClient) FetchLogs(ctx context.Context, q LogQuery) ([]types.Log, error) {
	key, err := cacheKey(q)
	if err != nil {
		return nil, err
	}

	logs, found, err := c.get(key)
	if err != nil {
		zap.L().Warn("Log cache read failed, fetching from ledger", zap.Error(err))
	} else if found {
		zap.L().Debug("Log cache hit",
			zap.String("event", q.Event.Name),
			zap.Uint64("fromBlock", q.FromBlock),
			zap.Uint64("toBlock", q.ToBlock),
			zap.Int("logs", len(logs)),
		)
		return logs, nil
	}

	logs, err = c.inner.FetchLogs(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := c.put(key, logs); err != nil {
		return nil, fmt.Errorf("failed to cache logs: %w", err)
	}
	return logs, nil
}

func (c *CachingLedgerClient) get(key []byte) ([]types.Log, bool, error) {
	var logs []types.Log
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &logs)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return logs, true, nil
}

func (c *CachingLedgerClient) put(key []byte, logs []types.Log) error {
	if logs == nil {
		logs = []types.Log{}
	}
	val, err := json.Marshal(logs)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
}

func cacheKey(q LogQuery) ([]byte, error) {
	topics, err := q.Topics()
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(q.Contract.Hex()))
	for _, slot := range topics {
		b.WriteByte('|')
		for i, h := range slot {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(h.Hex())
		}
	}
	fmt.Fprintf(&b, "|%d|%d", q.FromBlock, q.ToBlock)
	return append([]byte(logCachePrefix), crypto.Keccak256Hash([]byte(b.String())).Bytes()...), nil
}
