package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/somniflow/somniflow/internal/provider"
)

// Streaming core selectors and event topic.
//
//nolint:gochecknoglobals // contract constants
var (
	createStreamSelector = selector("createStream(address,uint256,address,uint256,uint256)")
	getStreamSelector    = selector("getStream(uint256)")
	nextStreamIDSelector = selector("nextStreamId()")

	// CreateStream(uint256 indexed streamId, address indexed sender,
	// address indexed recipient, uint256 deposit, address tokenAddress,
	// uint256 startTime, uint256 stopTime)
	createStreamTopic = eventTopic("CreateStream(uint256,address,address,uint256,address,uint256,uint256)")
)

// StreamDescriptor is a read-model snapshot of an on-chain stream. It is
// never cached; callers re-fetch for freshness.
type StreamDescriptor struct {
	StreamID         *big.Int
	Payer            string
	Recipient        string
	Deposit          *big.Int
	Token            string
	StartTime        *big.Int
	StopTime         *big.Int
	RemainingBalance *big.Int
	WithdrawnAmount  *big.Int
}

// CreateStreamCallData builds the call data for
// createStream(recipient, deposit, tokenAddress, startTime, stopTime).
func CreateStreamCallData(recipient string, deposit *big.Int, tokenAddress string, start, stop *big.Int) []byte {
	return encodeCall(createStreamSelector,
		addressWord(recipient),
		uintWord(deposit),
		addressWord(tokenAddress),
		uintWord(start),
		uintWord(stop),
	)
}

// GetStreamCallData builds the call data for getStream(streamId).
func GetStreamCallData(streamID *big.Int) []byte {
	return encodeCall(getStreamSelector, uintWord(streamID))
}

// NextStreamIDCallData builds the call data for nextStreamId().
func NextStreamIDCallData() []byte {
	return encodeCall(nextStreamIDSelector)
}

// DecodeStream decodes a getStream return into a descriptor. The contract
// returns (sender, recipient, deposit, tokenAddress, startTime, stopTime,
// remainingBalance, ratePerSecond); the withdrawn amount is derived as
// deposit minus remaining balance.
func DecodeStream(streamID *big.Int, result []byte) (*StreamDescriptor, error) {
	words, err := splitWords(result, 8)
	if err != nil {
		return nil, err
	}

	deposit := new(big.Int).SetBytes(words[2])
	remaining := new(big.Int).SetBytes(words[6])

	return &StreamDescriptor{
		StreamID:         new(big.Int).Set(streamID),
		Payer:            DecodeAddress(words[0]),
		Recipient:        DecodeAddress(words[1]),
		Deposit:          deposit,
		Token:            DecodeAddress(words[3]),
		StartTime:        new(big.Int).SetBytes(words[4]),
		StopTime:         new(big.Int).SetBytes(words[5]),
		RemainingBalance: remaining,
		WithdrawnAmount:  new(big.Int).Sub(deposit, remaining),
	}, nil
}

// StreamIDFromLogs extracts the created stream id from a receipt's
// CreateStream event, emitted by the given streaming contract. Returns nil
// when the receipt carries no matching log, in which case callers fall back
// to the next-id counter read.
func StreamIDFromLogs(streamingContract string, logs []provider.Log) *big.Int {
	contract := common.HexToAddress(streamingContract)

	for _, log := range logs {
		if common.HexToAddress(log.Address) != contract {
			continue
		}
		if len(log.Topics) < 2 {
			continue
		}
		if common.HexToHash(log.Topics[0]) != createStreamTopic {
			continue
		}
		return new(big.Int).SetBytes(common.HexToHash(log.Topics[1]).Bytes())
	}
	return nil
}
