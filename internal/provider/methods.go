package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"
)

// DefaultPollInterval is how often WaitMined polls for a receipt.
const DefaultPollInterval = 2 * time.Second

// RequestAccounts asks the wallet for account access and returns the granted
// addresses (eth_requestAccounts).
func RequestAccounts(ctx context.Context, p Provider) ([]string, error) {
	result, err := p.Request(ctx, "eth_requestAccounts")
	if err != nil {
		return nil, err
	}

	var accounts []string
	if err := json.Unmarshal(result, &accounts); err != nil {
		return nil, fmt.Errorf("parsing accounts: %w", err)
	}

	return accounts, nil
}

// ChainID returns the provider's active chain id (eth_chainId).
func ChainID(ctx context.Context, p Provider) (*big.Int, error) {
	result, err := p.Request(ctx, "eth_chainId")
	if err != nil {
		return nil, err
	}

	var hexVal string
	if err := json.Unmarshal(result, &hexVal); err != nil {
		return nil, fmt.Errorf("parsing chain ID: %w", err)
	}

	return ParseHexBigInt(hexVal)
}

// Call performs a read-only contract call (eth_call against latest).
func Call(ctx context.Context, p Provider, msg CallMsg) ([]byte, error) {
	result, err := p.Request(ctx, "eth_call", msg, "latest")
	if err != nil {
		return nil, err
	}

	var hexVal string
	if err := json.Unmarshal(result, &hexVal); err != nil {
		return nil, fmt.Errorf("parsing call result: %w", err)
	}

	return ParseHexBytes(hexVal)
}

// SendTransaction submits a transaction request for signing and broadcast
// (eth_sendTransaction). Returns the transaction hash once the wallet accepts.
func SendTransaction(ctx context.Context, p Provider, tx TxRequest) (string, error) {
	result, err := p.Request(ctx, "eth_sendTransaction", tx)
	if err != nil {
		return "", err
	}

	var txHash string
	if err := json.Unmarshal(result, &txHash); err != nil {
		return "", fmt.Errorf("parsing tx hash: %w", err)
	}

	return txHash, nil
}

// TransactionReceipt fetches the receipt for a hash, or nil while the
// transaction is still pending (eth_getTransactionReceipt).
func TransactionReceipt(ctx context.Context, p Provider, hash string) (*Receipt, error) {
	result, err := p.Request(ctx, "eth_getTransactionReceipt", hash)
	if err != nil {
		return nil, err
	}

	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return nil, nil
	}

	var receipt Receipt
	if err := json.Unmarshal(result, &receipt); err != nil {
		return nil, fmt.Errorf("parsing receipt: %w", err)
	}

	return &receipt, nil
}

// WaitMined polls for the transaction receipt until it appears or the context
// is canceled. There is deliberately no timeout beyond the caller's context:
// a pending transaction may stay pending as long as the network keeps it.
func WaitMined(ctx context.Context, p Provider, hash string, interval time.Duration) (*Receipt, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		receipt, err := TransactionReceipt(ctx, p, hash)
		if err != nil {
			return nil, err
		}
		if receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// SwitchChain asks the wallet to switch its active chain
// (wallet_switchEthereumChain).
func SwitchChain(ctx context.Context, p Provider, chainID *big.Int) error {
	params := struct {
		ChainID string `json:"chainId"`
	}{ChainID: HexChainID(chainID)}

	_, err := p.Request(ctx, "wallet_switchEthereumChain", params)
	return err
}

// AddChain asks the wallet to register a chain's parameters
// (wallet_addEthereumChain).
func AddChain(ctx context.Context, p Provider, params AddChainParams) error {
	_, err := p.Request(ctx, "wallet_addEthereumChain", params)
	return err
}
