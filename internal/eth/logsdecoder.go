package eth

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrMalformedLog     = errors.New("malformed log")
)

var erc20ABI abi.ABI
var katanaPairABI abi.ABI

func init() {
	erc20, err := abi.JSON(strings.NewReader(`[
    {
        "anonymous": false,
        "inputs": [
            {"indexed": true,  "name": "from",  "type": "address"},
            {"indexed": true,  "name": "to",    "type": "address"},
            {"indexed": false, "name": "value", "type": "uint256"}
        ],
        "name": "Transfer",
        "type": "event"
    }
	]`))
	if err != nil {
		panic("failed to parse ERC20 ABI")
	}
	erc20ABI = erc20

	pair, err := abi.JSON(strings.NewReader(`[
    {
        "anonymous": false,
        "inputs": [
            {"indexed": true,  "name": "_sender",     "type": "address"},
            {"indexed": false, "name": "_amount0In",  "type": "uint256"},
            {"indexed": false, "name": "_amount1In",  "type": "uint256"},
            {"indexed": false, "name": "_amount0Out", "type": "uint256"},
            {"indexed": false, "name": "_amount1Out", "type": "uint256"},
            {"indexed": true,  "name": "_to",         "type": "address"}
        ],
        "name": "Swap",
        "type": "event"
    }
	]`))
	if err != nil {
		panic("failed to parse Katana pair ABI")
	}
	katanaPairABI = pair
}

func TransferEventABI() abi.Event {
	return erc20ABI.Events["Transfer"]
}

func SwapEventABI() abi.Event {
	return katanaPairABI.Events["Swap"]
}

type EventKind int

const (
	TransferEventKind EventKind = iota
	SwapEventKind
)

func (k EventKind) String() string {
	switch k {
	case TransferEventKind:
		return "Transfer"
	case SwapEventKind:
		return "Swap"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// LogMeta is the on-ledger position of a log.
type LogMeta struct {
	BlockNumber      uint64
	TransactionHash  string
	TransactionIndex uint64
	LogIndex         uint64
}

// Identity is the composite key "block-txIndex-logIndex".
func (m LogMeta) Identity() string {
	return fmt.Sprintf("%d-%d-%d", m.BlockNumber, m.TransactionIndex, m.LogIndex)
}

func (m LogMeta) Meta() LogMeta {
	return m
}

type Event interface {
	Meta() LogMeta
	Kind() EventKind
}

type TransferEvent struct {
	LogMeta
	From   string
	To     string
	Amount decimal.Decimal
}

func (TransferEvent) Kind() EventKind { return TransferEventKind }

type SwapEvent struct {
	LogMeta
}

func (SwapEvent) Kind() EventKind { return SwapEventKind }

// Decode checks that the log carries the expected event signature and
// decodes it into the matching event type.
func Decode(kind EventKind, lg types.Log) (Event, error) {
	switch kind {
	case TransferEventKind:
		return DecodeTransfer(lg)
	case SwapEventKind:
		return DecodeSwap(lg)
	}
	return nil, fmt.Errorf("unknown event kind %v", kind)
}

func DecodeTransfer(lg types.Log) (TransferEvent, error) {
	event := TransferEventABI()
	if err := checkSignature(event, lg); err != nil {
		return TransferEvent{}, err
	}
	if len(lg.Topics) != 3 {
		return TransferEvent{}, fmt.Errorf("%w: Transfer expects 3 topics, got %d (tx %s)", ErrMalformedLog, len(lg.Topics), lg.TxHash.Hex())
	}

	var data struct {
		Value *big.Int `abi:"value"`
	}
	if err := erc20ABI.UnpackIntoInterface(&data, "Transfer", lg.Data); err != nil {
		return TransferEvent{}, fmt.Errorf("%w: %v", ErrMalformedLog, err)
	}

	return TransferEvent{
		LogMeta: metaOf(lg),
		From:    NormalizeAddress(lg.Topics[1].Hex()),
		To:      NormalizeAddress(lg.Topics[2].Hex()),
		Amount:  decimal.NewFromBigInt(data.Value, 0),
	}, nil
}

// Swaps carry no decoded fields; only their occurrence is tracked.
func DecodeSwap(lg types.Log) (SwapEvent, error) {
	if err := checkSignature(SwapEventABI(), lg); err != nil {
		return SwapEvent{}, err
	}
	return SwapEvent{LogMeta: metaOf(lg)}, nil
}

func checkSignature(event abi.Event, lg types.Log) error {
	if len(lg.Topics) == 0 {
		return fmt.Errorf("%w: log without topics in tx %s", ErrInvalidSignature, lg.TxHash.Hex())
	}
	if lg.Topics[0] != event.ID {
		return fmt.Errorf("%w: expected %s %s, got %s", ErrInvalidSignature, event.Name, event.ID.Hex(), lg.Topics[0].Hex())
	}
	return nil
}

func metaOf(lg types.Log) LogMeta {
	return LogMeta{
		BlockNumber:      lg.BlockNumber,
		TransactionHash:  strings.ToLower(lg.TxHash.Hex()),
		TransactionIndex: uint64(lg.TxIndex),
		LogIndex:         uint64(lg.Index),
	}
}

// NormalizeAddress returns the canonical lower-case 0x form. A 32-byte topic
// is reduced to its trailing 20 bytes.
func NormalizeAddress(s string) string {
	return strings.ToLower(common.HexToAddress(s).Hex())
}
