package provider

import (
	"encoding/json"
	"math/big"
	"testing"
)

func TestTxRequest_MarshalJSON(t *testing.T) {
	tx := TxRequest{
		From:  "0x1111111111111111111111111111111111111111",
		To:    "0x2222222222222222222222222222222222222222",
		Value: big.NewInt(255),
		Data:  []byte{0xde, 0xad},
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got["value"] != "0xff" {
		t.Errorf("value = %q, want 0xff", got["value"])
	}
	if got["data"] != "0xdead" {
		t.Errorf("data = %q, want 0xdead", got["data"])
	}
}

func TestTxRequest_MarshalJSON_OmitsEmpty(t *testing.T) {
	tx := TxRequest{
		From: "0x1111111111111111111111111111111111111111",
		To:   "0x2222222222222222222222222222222222222222",
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if _, ok := got["value"]; ok {
		t.Error("zero value should be omitted")
	}
	if _, ok := got["data"]; ok {
		t.Error("empty data should be omitted")
	}
}

func TestCallMsg_MarshalJSON(t *testing.T) {
	msg := CallMsg{
		To:   "0x2222222222222222222222222222222222222222",
		Data: []byte{0x01, 0x02},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got["data"] != "0x0102" {
		t.Errorf("data = %q, want 0x0102", got["data"])
	}
	if _, ok := got["from"]; ok {
		t.Error("empty from should be omitted")
	}
}

func TestReceipt_Mined(t *testing.T) {
	tests := []struct {
		name    string
		receipt *Receipt
		want    bool
	}{
		{"success status", &Receipt{Status: "0x1"}, true},
		{"reverted status", &Receipt{Status: "0x0"}, false},
		{"nil receipt", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.receipt.Mined(); got != tt.want {
				t.Errorf("Mined() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHexChainID(t *testing.T) {
	if got := HexChainID(big.NewInt(50312)); got != "0xc488" {
		t.Errorf("HexChainID() = %s, want 0xc488", got)
	}
}

func TestParseHexBigInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"with prefix", "0xc488", 50312, false},
		{"without prefix", "ff", 255, false},
		{"empty after prefix", "0x", 0, false},
		{"garbage", "0xzz", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexBigInt(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseHexBigInt() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexBigInt() error = %v", err)
			}
			if got.Int64() != tt.want {
				t.Errorf("ParseHexBigInt() = %s, want %d", got, tt.want)
			}
		})
	}
}

func TestParseHexBytes(t *testing.T) {
	b, err := ParseHexBytes("0xdead")
	if err != nil {
		t.Fatalf("ParseHexBytes() error = %v", err)
	}
	if len(b) != 2 || b[0] != 0xde || b[1] != 0xad {
		t.Errorf("ParseHexBytes() = %x", b)
	}

	b, err = ParseHexBytes("0x")
	if err != nil {
		t.Fatalf("ParseHexBytes() error = %v", err)
	}
	if len(b) != 0 {
		t.Errorf("ParseHexBytes(0x) = %x, want empty", b)
	}

	if _, err := ParseHexBytes("0xzz"); err == nil {
		t.Error("ParseHexBytes() expected error for invalid hex")
	}
}
