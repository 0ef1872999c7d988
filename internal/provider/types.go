package provider

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	coreerr "github.com/somniflow/somniflow/pkg/errors"
)

// TxRequest is the wire shape for eth_sendTransaction. The wallet provider
// supplies nonce, gas, and signing; this layer never manages either.
type TxRequest struct {
	From  string
	To    string
	Value *big.Int
	Data  []byte
}

// MarshalJSON encodes the request with hex-quantity formatting.
func (r TxRequest) MarshalJSON() ([]byte, error) {
	type txJSON struct {
		From  string `json:"from"`
		To    string `json:"to"`
		Value string `json:"value,omitempty"`
		Data  string `json:"data,omitempty"`
	}

	tx := txJSON{
		From: r.From,
		To:   r.To,
	}

	if r.Value != nil && r.Value.Sign() > 0 {
		tx.Value = "0x" + r.Value.Text(16)
	}
	if len(r.Data) > 0 {
		tx.Data = "0x" + hex.EncodeToString(r.Data)
	}

	return json.Marshal(tx)
}

// CallMsg is the wire shape for eth_call.
type CallMsg struct {
	From string
	To   string
	Data []byte
}

// MarshalJSON encodes the call with hex-encoded data.
func (m CallMsg) MarshalJSON() ([]byte, error) {
	type callJSON struct {
		From string `json:"from,omitempty"`
		To   string `json:"to"`
		Data string `json:"data,omitempty"`
	}

	msg := callJSON{
		From: m.From,
		To:   m.To,
	}
	if len(m.Data) > 0 {
		msg.Data = "0x" + hex.EncodeToString(m.Data)
	}

	return json.Marshal(msg)
}

// Log is a single receipt log entry.
type Log struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}

// Receipt is the subset of eth_getTransactionReceipt the core consumes.
type Receipt struct {
	TxHash      string `json:"transactionHash"`
	Status      string `json:"status"`
	BlockNumber string `json:"blockNumber"`
	Logs        []Log  `json:"logs"`
}

// Mined reports whether the receipt indicates successful execution.
func (r *Receipt) Mined() bool {
	return r != nil && r.Status == "0x1"
}

// NativeCurrency describes a chain's native currency for wallet_addEthereumChain.
type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// AddChainParams is the wallet_addEthereumChain parameter object.
type AddChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls,omitempty"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
}

// HexChainID formats a chain id as the 0x-prefixed hex quantity wallets expect.
func HexChainID(id *big.Int) string {
	return "0x" + id.Text(16)
}

// ParseHexBigInt parses a hex quantity (with or without 0x prefix) to big.Int.
func ParseHexBigInt(s string) (*big.Int, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return big.NewInt(0), nil
	}

	n := new(big.Int)
	if _, ok := n.SetString(s, 16); !ok {
		return nil, coreerr.WithDetails(coreerr.ErrInvalidInput, map[string]string{
			"reason": "invalid hex number",
			"value":  s,
		})
	}

	return n, nil
}

// ParseHexBytes parses a 0x-prefixed hex string to bytes.
func ParseHexBytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return []byte{}, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding hex data: %w", err)
	}
	return b, nil
}
