package eth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/6529-Collections/airdrop-retention/internal/config"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

var ErrConfigurationMissing = errors.New("configuration missing")

var CreateEthClient = createEthClient

type EthClient interface {
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	Close()
}

func createEthClient() (EthClient, error) {
	cfg := config.Get()
	if cfg.RpcUrl == "" {
		return nil, fmt.Errorf("%w: RPC_URL is not set", ErrConfigurationMissing)
	}
	if cfg.RpcApiKey == "" {
		return nil, fmt.Errorf("%w: RPC_API_KEY is not set", ErrConfigurationMissing)
	}
	timeout := time.Duration(cfg.RpcTimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Minute
	}

	rpcClient, err := rpc.DialOptions(
		context.Background(),
		cfg.RpcUrl,
		rpc.WithHeader("x-api-key", cfg.RpcApiKey),
		rpc.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure ledger client - %w", err)
	}
	return ethclient.NewClient(rpcClient), nil
}
