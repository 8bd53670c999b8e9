package airdrop

// PIXEL airdrop on Ronin.
const (
	PixelTokenContract     = "0x7eae20d11ef8c779433eb24503def900b9d28ad7"
	PixelOriginDistributor = "0x17dD916c3a3Cc2Fe92DaC0152C9Aa46D066e9fAa"
	BinanceRoninWallet     = "0xb32e9a84ae0b55b8ab715e4ac793a61b277bafa3"
	PixelWronPairAddress   = "0xb30b54b9a36188d33eeb34b29eaa38d12511e997"
	KatanaRouterDex        = "0x7D0556D55ca1a92708681e2e231733EBd922597D"

	SeedFromBlock uint64 = 32158385
	SeedToBlock   uint64 = 36818059
)

const (
	// DistributorFanOutCap is split evenly across distributors with integer
	// division, never below one recipient each.
	DistributorFanOutCap         = 1000
	DistributorBlockRange uint64 = 11000
	TransferBlockRange    uint64 = 15000
	SwapWindow            uint64 = 30000
)
