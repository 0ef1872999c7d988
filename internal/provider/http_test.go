package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// rpcHandler serves scripted JSON-RPC responses keyed by method.
func rpcHandler(t *testing.T, results map[string]any, errs map[string]*RPCError) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JSONRPC string `json:"jsonrpc"`
			Method  string `json:"method"`
			ID      uint64 `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
			return
		}
		if req.JSONRPC != "2.0" {
			t.Errorf("jsonrpc = %q, want 2.0", req.JSONRPC)
		}

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr, ok := errs[req.Method]; ok {
			resp["error"] = rpcErr
		} else {
			resp["result"] = results[req.Method]
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func TestHTTPClient_Request(t *testing.T) {
	srv := httptest.NewServer(rpcHandler(t, map[string]any{
		"eth_chainId": "0xc488",
	}, nil))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, nil)

	chainID, err := ChainID(context.Background(), client)
	if err != nil {
		t.Fatalf("ChainID() error = %v", err)
	}
	if chainID.Int64() != 50312 {
		t.Errorf("ChainID() = %s, want 50312", chainID)
	}
}

func TestHTTPClient_RPCErrorSurfacesCode(t *testing.T) {
	srv := httptest.NewServer(rpcHandler(t, nil, map[string]*RPCError{
		"eth_call": {Code: -32000, Message: "execution reverted"},
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, nil)

	_, err := Call(context.Background(), client, CallMsg{To: "0x2222222222222222222222222222222222222222"})
	if err == nil {
		t.Fatal("Call() expected error")
	}

	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("error type = %T, want *RPCError", err)
	}
	if rpcErr.RPCCode() != -32000 {
		t.Errorf("RPCCode() = %d, want -32000", rpcErr.RPCCode())
	}
}

func TestHTTPClient_Call(t *testing.T) {
	srv := httptest.NewServer(rpcHandler(t, map[string]any{
		"eth_call": "0x00000000000000000000000000000000000000000000000000000000000000ff",
	}, nil))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, nil)

	result, err := Call(context.Background(), client, CallMsg{To: "0x2222222222222222222222222222222222222222"})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if len(result) != 32 || result[31] != 0xff {
		t.Errorf("Call() = %x", result)
	}
}

func TestHTTPClient_TransactionReceiptPending(t *testing.T) {
	srv := httptest.NewServer(rpcHandler(t, map[string]any{
		"eth_getTransactionReceipt": nil,
	}, nil))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, nil)

	receipt, err := TransactionReceipt(context.Background(), client, "0xabc")
	if err != nil {
		t.Fatalf("TransactionReceipt() error = %v", err)
	}
	if receipt != nil {
		t.Errorf("TransactionReceipt() = %+v, want nil while pending", receipt)
	}
}

func TestHTTPClient_TransactionReceiptMined(t *testing.T) {
	srv := httptest.NewServer(rpcHandler(t, map[string]any{
		"eth_getTransactionReceipt": map[string]any{
			"transactionHash": "0xabc",
			"status":          "0x1",
			"blockNumber":     "0x10",
		},
	}, nil))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, nil)

	receipt, err := TransactionReceipt(context.Background(), client, "0xabc")
	if err != nil {
		t.Fatalf("TransactionReceipt() error = %v", err)
	}
	if !receipt.Mined() {
		t.Error("Mined() = false, want true")
	}
}

func TestHTTPClient_Ready(t *testing.T) {
	if !NewHTTPClient("http://localhost:8545", nil).Ready() {
		t.Error("Ready() = false for configured client")
	}
	if NewHTTPClient("", nil).Ready() {
		t.Error("Ready() = true for empty URL")
	}
}

func TestHTTPClient_OnEventIsNoOp(t *testing.T) {
	client := NewHTTPClient("http://localhost:8545", nil)
	unsubscribe := client.OnEvent(func(Event) {})
	if unsubscribe == nil {
		t.Fatal("OnEvent() returned nil unsubscribe")
	}
	unsubscribe()
}
