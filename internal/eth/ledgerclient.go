package eth

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// LogQuery selects the logs of one event on one contract in an inclusive block range.
// Args filters indexed event arguments by their ABI name.
type LogQuery struct {
	Contract  common.Address
	Event     abi.Event
	Args      map[string]common.Address
	FromBlock uint64
	ToBlock   uint64
}

// Topics builds the positional topic filter: the event ID first, then one
// slot per indexed input, nil where the input is unconstrained.
func (q LogQuery) Topics() ([][]common.Hash, error) {
	topics := [][]common.Hash{{q.Event.ID}}
	matched := 0
	for _, input := range q.Event.Inputs {
		if !input.Indexed {
			continue
		}
		addr, ok := q.Args[input.Name]
		if !ok {
			topics = append(topics, nil)
			continue
		}
		matched++
		topics = append(topics, []common.Hash{common.BytesToHash(addr.Bytes())})
	}
	if matched != len(q.Args) {
		return nil, fmt.Errorf("event %s has no indexed argument for every filter in %v", q.Event.Name, q.Args)
	}
	for len(topics) > 1 && topics[len(topics)-1] == nil {
		topics = topics[:len(topics)-1]
	}
	return topics, nil
}

func (q LogQuery) FilterQuery() (ethereum.FilterQuery, error) {
	topics, err := q.Topics()
	if err != nil {
		return ethereum.FilterQuery{}, err
	}
	return ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(q.FromBlock),
		ToBlock:   new(big.Int).SetUint64(q.ToBlock),
		Addresses: []common.Address{q.Contract},
		Topics:    topics,
	}, nil
}

type LedgerClient interface {
	FetchLogs(ctx context.Context, q LogQuery) ([]types.Log, error)
}

// DefaultLedgerClient connects lazily on first fetch. Every caller, including
// concurrent ones, observes the outcome of that single connection attempt.
type DefaultLedgerClient struct {
	connect func() (EthClient, error)

	once   sync.Once
	client EthClient
	err    error
}

func NewLedgerClient() *DefaultLedgerClient {
	return &DefaultLedgerClient{connect: CreateEthClient}
}

func (c *DefaultLedgerClient) ethClient() (EthClient, error) {
	c.once.Do(func() {
		c.client, c.err = c.connect()
		if c.err == nil {
			zap.L().Info("Ledger client connected")
		}
	})
	return c.client, c.err
}

func (c *DefaultLedgerClient) FetchLogs(ctx context.Context, q LogQuery) ([]types.Log, error) {
	client, err := c.ethClient()
	if err != nil {
		return nil, err
	}
	query, err := q.FilterQuery()
	if err != nil {
		return nil, err
	}
	logs, err := client.FilterLogs(ctx, query)
	if err != nil {
		zap.L().Error("Failed fetching logs",
			zap.String("contract", q.Contract.Hex()),
			zap.String("event", q.Event.Name),
			zap.Uint64("fromBlock", q.FromBlock),
			zap.Uint64("toBlock", q.ToBlock),
			zap.Error(err),
		)
		return nil, err
	}
	sortCanonical(logs)
	return logs, nil
}

func (c *DefaultLedgerClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

func sortCanonical(logs []types.Log) {
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		if logs[i].TxIndex != logs[j].TxIndex {
			return logs[i].TxIndex < logs[j].TxIndex
		}
		return logs[i].Index < logs[j].Index
	})
}
