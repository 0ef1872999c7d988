package somniflow

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somniflow/somniflow/internal/config"
	"github.com/somniflow/somniflow/internal/provider"
	"github.com/somniflow/somniflow/internal/txqueue"
	"github.com/somniflow/somniflow/internal/wallet"
)

const testAddress = "0x1111111111111111111111111111111111111111"

// fakeProvider serves scripted responses keyed by method, in order; the last
// scripted response repeats.
type fakeProvider struct {
	mu    sync.Mutex
	steps map[string][]string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{steps: make(map[string][]string)}
}

func (f *fakeProvider) on(method, rawResult string) *fakeProvider {
	f.steps[method] = append(f.steps[method], rawResult)
	return f
}

func (f *fakeProvider) Ready() bool { return true }

func (f *fakeProvider) Request(_ context.Context, method string, _ ...any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	queue := f.steps[method]
	if len(queue) == 0 {
		return nil, &provider.RPCError{Code: -32601, Message: "method not scripted: " + method}
	}
	r := queue[0]
	if len(queue) > 1 {
		f.steps[method] = queue[1:]
	}
	return json.RawMessage(r), nil
}

func (f *fakeProvider) OnEvent(provider.Handler) func() { return func() {} }

func word(b []byte) string {
	return hex.EncodeToString(common.LeftPadBytes(b, 32))
}

func newTestCore(connector, reader provider.Provider) *Core {
	return New(Options{
		Config:           config.Defaults(),
		Connectors:       map[string]provider.Provider{"injected": connector},
		DefaultConnector: "injected",
		Store:            wallet.NewMemoryConnectorStore(),
		Reader:           reader,
	})
}

func TestCore_ConnectAndDisconnect(t *testing.T) {
	connector := newFakeProvider().
		on("eth_requestAccounts", `["`+testAddress+`"]`).
		on("eth_chainId", `"0xc488"`)

	core := newTestCore(connector, newFakeProvider())

	session, err := core.Connect(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, wallet.StatusConnected, session.Status)
	assert.Equal(t, testAddress, session.Address)

	core.Disconnect()
	assert.Equal(t, wallet.StatusDisconnected, core.Wallet().Status)
}

func TestCore_DisconnectResetsMirrorAndAllowanceCache(t *testing.T) {
	connector := newFakeProvider().
		on("eth_requestAccounts", `["`+testAddress+`"]`).
		on("eth_chainId", `"0xc488"`).
		on("eth_sendTransaction", `"0xabc"`).
		on("eth_getTransactionReceipt", `{"transactionHash":"0xabc","status":"0x1","blockNumber":"0x10","logs":[]}`)

	core := newTestCore(connector, newFakeProvider())

	_, err := core.Connect(context.Background(), "")
	require.NoError(t, err)

	_, err = core.EnqueueTx(context.Background(), txRequest())
	require.NoError(t, err)
	assert.Equal(t, "0xabc", core.Tx().Hash)

	core.allowance.Cache().Set(testAddress, "0x7F10bC52a9E640D3cE84b12A06f94E27D5B31A09", "0x5A2b", big.NewInt(1))

	core.Disconnect()

	// The legacy mirror and allowance cache are session-scoped; records survive.
	assert.Empty(t, core.Tx().Hash)
	assert.Zero(t, core.allowance.Cache().Size())
	assert.Len(t, core.TxQueue(), 1)
}

func TestCore_FetchListingThroughReader(t *testing.T) {
	seller := "0x3333333333333333333333333333333333333333"
	reader := newFakeProvider().
		on("eth_call", `"0x`+word(common.HexToAddress(seller).Bytes())+word(big.NewInt(4200).Bytes())+`"`)

	core := newTestCore(newFakeProvider(), reader)

	listing, err := core.FetchListing(context.Background(), big.NewInt(7))
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, int64(4200), listing.PriceWei.Int64())
}

func TestCore_TxExplorerURL(t *testing.T) {
	core := newTestCore(newFakeProvider(), newFakeProvider())

	got := core.TxExplorerURL("0xabc")
	assert.Equal(t, config.DefaultExplorerURL+"/tx/0xabc", got)
}

func TestCore_Tokens(t *testing.T) {
	core := newTestCore(newFakeProvider(), newFakeProvider())

	symbols := core.Tokens()
	require.NotEmpty(t, symbols)
	assert.Equal(t, "STT", symbols[0])
}

func txRequest() txqueue.Request {
	return txqueue.Request{
		To:     "0x9C41e6F02a7d85B3c0A7E9b64D12F5a8E3B60D27",
		Action: "approve",
	}
}
