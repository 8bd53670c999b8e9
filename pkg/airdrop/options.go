package airdrop

import (
	"fmt"

	"github.com/6529-Collections/airdrop-retention/internal/config"
	"github.com/6529-Collections/airdrop-retention/internal/eth"
	"github.com/ethereum/go-ethereum/common"
)

type Options struct {
	Token             common.Address
	OriginDistributor common.Address
	Router            common.Address
	Pool              common.Address
	// OffRamp is kept in the lower-case form used by stored rows.
	OffRamp string

	SeedFromBlock uint64
	SeedToBlock   uint64

	FanOutCap             int
	DistributorBlockRange uint64
	TransferBlockRange    uint64
	SwapWindow            uint64
}

func DefaultOptions() Options {
	return Options{
		Token:                 common.HexToAddress(PixelTokenContract),
		OriginDistributor:     common.HexToAddress(PixelOriginDistributor),
		Router:                common.HexToAddress(KatanaRouterDex),
		Pool:                  common.HexToAddress(PixelWronPairAddress),
		OffRamp:               eth.NormalizeAddress(BinanceRoninWallet),
		SeedFromBlock:         SeedFromBlock,
		SeedToBlock:           SeedToBlock,
		FanOutCap:             DistributorFanOutCap,
		DistributorBlockRange: DistributorBlockRange,
		TransferBlockRange:    TransferBlockRange,
		SwapWindow:            SwapWindow,
	}
}

// OptionsFromConfig overrides the defaults with every address and seed block set in cfg.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	opts := DefaultOptions()

	addresses := []struct {
		key   string
		value string
		dst   *common.Address
	}{
		{"TOKEN_CONTRACT", cfg.TokenContract, &opts.Token},
		{"ORIGIN_DISTRIBUTOR", cfg.OriginDistributor, &opts.OriginDistributor},
		{"DEX_ROUTER", cfg.DexRouter, &opts.Router},
		{"LIQUIDITY_POOL", cfg.LiquidityPool, &opts.Pool},
	}
	for _, a := range addresses {
		if a.value == "" {
			continue
		}
		if !common.IsHexAddress(a.value) {
			return Options{}, fmt.Errorf("%s is not a valid address: %q", a.key, a.value)
		}
		*a.dst = common.HexToAddress(a.value)
	}
	if cfg.OffRampWallet != "" {
		if !common.IsHexAddress(cfg.OffRampWallet) {
			return Options{}, fmt.Errorf("OFF_RAMP_WALLET is not a valid address: %q", cfg.OffRampWallet)
		}
		opts.OffRamp = eth.NormalizeAddress(cfg.OffRampWallet)
	}

	if cfg.SeedFromBlock != 0 {
		opts.SeedFromBlock = cfg.SeedFromBlock
	}
	if cfg.SeedToBlock != 0 {
		opts.SeedToBlock = cfg.SeedToBlock
	}
	if opts.SeedFromBlock > opts.SeedToBlock {
		return Options{}, fmt.Errorf("seed range is empty: %d > %d", opts.SeedFromBlock, opts.SeedToBlock)
	}
	return opts, nil
}
