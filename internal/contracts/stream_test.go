package contracts

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/somniflow/somniflow/internal/provider"
)

const streamingAddr = "0x5A2b02f8C1D7E6a9c33F8d41B7a90E2D64C80F11"

// encodeStreamReturn builds a getStream return payload.
func encodeStreamReturn(payer, recipient string, deposit int64, token string, start, stop, remaining, rate int64) []byte {
	words := [][]byte{
		common.LeftPadBytes(common.HexToAddress(payer).Bytes(), 32),
		common.LeftPadBytes(common.HexToAddress(recipient).Bytes(), 32),
		common.LeftPadBytes(big.NewInt(deposit).Bytes(), 32),
		common.LeftPadBytes(common.HexToAddress(token).Bytes(), 32),
		common.LeftPadBytes(big.NewInt(start).Bytes(), 32),
		common.LeftPadBytes(big.NewInt(stop).Bytes(), 32),
		common.LeftPadBytes(big.NewInt(remaining).Bytes(), 32),
		common.LeftPadBytes(big.NewInt(rate).Bytes(), 32),
	}

	out := make([]byte, 0, 8*32)
	for _, w := range words {
		out = append(out, w...)
	}
	return out
}

func TestDecodeStream(t *testing.T) {
	payer := "0x1111111111111111111111111111111111111111"
	recipient := "0x2222222222222222222222222222222222222222"
	token := "0x7F10bC52a9E640D3cE84b12A06f94E27D5B31A09"

	result := encodeStreamReturn(payer, recipient, 1000, token, 100, 200, 400, 10)

	desc, err := DecodeStream(big.NewInt(7), result)
	if err != nil {
		t.Fatalf("DecodeStream() unexpected error = %v", err)
	}

	if desc.StreamID.Int64() != 7 {
		t.Errorf("StreamID = %s, want 7", desc.StreamID)
	}
	if desc.Payer != common.HexToAddress(payer).Hex() {
		t.Errorf("Payer = %s", desc.Payer)
	}
	if desc.Recipient != common.HexToAddress(recipient).Hex() {
		t.Errorf("Recipient = %s", desc.Recipient)
	}
	if desc.Deposit.Int64() != 1000 {
		t.Errorf("Deposit = %s, want 1000", desc.Deposit)
	}
	if desc.RemainingBalance.Int64() != 400 {
		t.Errorf("RemainingBalance = %s, want 400", desc.RemainingBalance)
	}
	// Withdrawn is derived: deposit minus remaining.
	if desc.WithdrawnAmount.Int64() != 600 {
		t.Errorf("WithdrawnAmount = %s, want 600", desc.WithdrawnAmount)
	}
	if desc.StartTime.Int64() != 100 || desc.StopTime.Int64() != 200 {
		t.Errorf("times = %s..%s, want 100..200", desc.StartTime, desc.StopTime)
	}
}

func TestDecodeStream_ShortReturn(t *testing.T) {
	if _, err := DecodeStream(big.NewInt(1), make([]byte, 7*32)); err == nil {
		t.Error("DecodeStream() expected error for short return")
	}
}

func TestStreamIDFromLogs(t *testing.T) {
	idTopic := common.BigToHash(big.NewInt(42)).Hex()

	logs := []provider.Log{
		// Unrelated contract, matching topic: skipped.
		{
			Address: "0x9C41e6F02a7d85B3c0A7E9b64D12F5a8E3B60D27",
			Topics:  []string{createStreamTopic.Hex(), idTopic},
		},
		// Matching contract, wrong event: skipped.
		{
			Address: streamingAddr,
			Topics:  []string{eventTopic("Transfer(address,address,uint256)").Hex(), idTopic},
		},
		// The CreateStream event.
		{
			Address: streamingAddr,
			Topics:  []string{createStreamTopic.Hex(), idTopic},
		},
	}

	id := StreamIDFromLogs(streamingAddr, logs)
	if id == nil {
		t.Fatal("StreamIDFromLogs() = nil, want 42")
	}
	if id.Int64() != 42 {
		t.Errorf("StreamIDFromLogs() = %s, want 42", id)
	}
}

func TestStreamIDFromLogs_NoMatch(t *testing.T) {
	logs := []provider.Log{
		{
			Address: streamingAddr,
			Topics:  []string{eventTopic("Transfer(address,address,uint256)").Hex()},
		},
	}

	if id := StreamIDFromLogs(streamingAddr, logs); id != nil {
		t.Errorf("StreamIDFromLogs() = %s, want nil", id)
	}
}

func TestCreateStreamCallData_Layout(t *testing.T) {
	data := CreateStreamCallData(
		"0x2222222222222222222222222222222222222222",
		big.NewInt(1000),
		"0x7F10bC52a9E640D3cE84b12A06f94E27D5B31A09",
		big.NewInt(100),
		big.NewInt(200),
	)

	if len(data) != 4+5*32 {
		t.Fatalf("call data length = %d, want %d", len(data), 4+5*32)
	}
}
