// Package somniflow is the wallet/transaction orchestration core for the
// SomniFlow streaming + NFT marketplace product. It owns the wallet session
// state machine, the client-side transaction queue, ERC20 allowance
// management, and the domain operations built on top of them. Rendering,
// routing, and presentation live elsewhere and talk to this package through
// the Core facade.
package somniflow

import (
	"context"
	"math/big"

	"github.com/somniflow/somniflow/internal/allowance"
	"github.com/somniflow/somniflow/internal/config"
	"github.com/somniflow/somniflow/internal/contracts"
	"github.com/somniflow/somniflow/internal/provider"
	"github.com/somniflow/somniflow/internal/service/market"
	"github.com/somniflow/somniflow/internal/service/stream"
	"github.com/somniflow/somniflow/internal/token"
	"github.com/somniflow/somniflow/internal/txqueue"
	"github.com/somniflow/somniflow/internal/wallet"
)

// Options configures a Core.
type Options struct {
	// Config supplies chain, contract, and token settings. Nil uses
	// Defaults with environment overrides applied.
	Config *config.Config

	// Connectors maps connector ids to wallet providers.
	Connectors map[string]provider.Provider

	// DefaultConnector is used when Connect gets no id and nothing is
	// persisted.
	DefaultConnector string

	// Store persists the last-used connector id. Nil keeps it in memory.
	Store wallet.ConnectorStore

	// Logger receives diagnostics. Nil disables logging.
	Logger *config.Logger

	// Reader overrides the read client, mainly for tests. Nil builds an
	// HTTP JSON-RPC client from the configured RPC URL.
	Reader provider.Provider
}

// Core is the single entry point the UI layer consumes. Exactly one Core
// exists per running application: construct it at start, Close it at end.
type Core struct {
	cfg       *config.Config
	logger    *config.Logger
	registry  *token.Registry
	reader    provider.Provider
	wallet    *wallet.Manager
	queue     *txqueue.Queue
	allowance *allowance.Manager
	streams   *stream.Service
	market    *market.Service
}

// New wires a Core from the given options.
func New(opts Options) *Core {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
		config.ApplyEnvironment(cfg)
	}

	logger := opts.Logger
	if logger == nil {
		logger = config.NullLogger()
	}

	reader := opts.Reader
	if reader == nil {
		reader = provider.NewHTTPClient(cfg.GetRPC(), nil)
	}

	c := &Core{
		cfg:      cfg,
		logger:   logger,
		registry: token.NewRegistry(cfg.TokenInfos()),
		reader:   reader,
	}

	c.wallet = wallet.NewManager(wallet.Config{
		Connectors:       opts.Connectors,
		DefaultConnector: opts.DefaultConnector,
		RequiredChainID:  cfg.RequiredChainID(),
		AddChain:         cfg.AddChainParams(),
		Store:            opts.Store,
		Logger:           logger,
		OnDisconnect: func() {
			// The queue's history survives; only the simple mirror and
			// the per-session allowance cache are tied to the session.
			c.queue.ResetMirror()
			c.allowance.Cache().Clear()
		},
	})

	c.queue = txqueue.New(txqueue.Config{
		Wallet: c.wallet,
		Logger: logger,
	})

	c.allowance = allowance.NewManager(allowance.Config{
		Registry: c.registry,
		Wallet:   c.wallet,
		Queue:    c.queue,
		Logger:   logger,
	})

	c.streams = stream.NewService(&stream.Config{
		Registry:  c.registry,
		Wallet:    c.wallet,
		Queue:     c.queue,
		Allowance: c.allowance,
		Reader:    reader,
		Contract:  cfg.Contracts.Streaming,
		Logger:    logger,
	})

	c.market = market.NewService(&market.Config{
		Wallet:      c.wallet,
		Queue:       c.queue,
		Reader:      reader,
		Marketplace: cfg.Contracts.Marketplace,
		Collection:  cfg.Contracts.Collection,
		Logger:      logger,
	})

	return c
}

// Close tears the core down: the session is disconnected and the log file
// released.
func (c *Core) Close() error {
	c.wallet.Disconnect()
	return c.logger.Close()
}

// Connect establishes the wallet session through the given connector id; ""
// falls back to the persisted choice, then the default connector.
func (c *Core) Connect(ctx context.Context, connectorID string) (wallet.Session, error) {
	return c.wallet.Connect(ctx, connectorID)
}

// Disconnect resets the session. Idempotent, never fails.
func (c *Core) Disconnect() {
	c.wallet.Disconnect()
}

// SwitchToSomnia asks the wallet to switch to the Somnia chain, registering
// it first when unknown. Best-effort: failures surface only through the
// session's ChainMismatch flag.
func (c *Core) SwitchToSomnia(ctx context.Context) {
	c.wallet.SwitchToRequiredChain(ctx)
}

// Wallet returns the current session snapshot.
func (c *Core) Wallet() wallet.Session {
	return c.wallet.Session()
}

// SubscribeWallet registers a session listener.
func (c *Core) SubscribeWallet(fn func(wallet.Session)) func() {
	return c.wallet.Subscribe(fn)
}

// EnqueueTx submits a raw transaction request through the queue and awaits
// confirmation.
func (c *Core) EnqueueTx(ctx context.Context, req txqueue.Request) (string, error) {
	return c.queue.Enqueue(ctx, req)
}

// TxQueue returns all transaction records, most recent first.
func (c *Core) TxQueue() []txqueue.Record {
	return c.queue.Records()
}

// Tx returns the legacy single-slot transaction status mirror.
func (c *Core) Tx() txqueue.Mirror {
	return c.queue.Mirror()
}

// SubscribeTx registers a transaction record listener.
func (c *Core) SubscribeTx(fn func(txqueue.Record)) func() {
	return c.queue.Subscribe(fn)
}

// EnsureAllowance reports whether the spender can move the required
// base-unit amount, approving 2× first when short.
func (c *Core) EnsureAllowance(ctx context.Context, symbol, spender string, required *big.Int) (bool, error) {
	return c.allowance.Ensure(ctx, symbol, spender, required)
}

// CreateStream creates a payment stream and returns its id.
func (c *Core) CreateStream(ctx context.Context, p stream.CreateParams) (*stream.CreateResult, error) {
	return c.streams.Create(ctx, p)
}

// FetchStreamData returns a fresh snapshot of a stream.
func (c *Core) FetchStreamData(ctx context.Context, streamID *big.Int) (*contracts.StreamDescriptor, error) {
	return c.streams.Get(ctx, streamID)
}

// GetNextStreamID returns the streaming contract's next-id counter.
func (c *Core) GetNextStreamID(ctx context.Context) (*big.Int, error) {
	return c.streams.NextStreamID(ctx)
}

// ListNFT lists a token for sale, submitting a blanket transfer approval
// first when the marketplace lacks one.
func (c *Core) ListNFT(ctx context.Context, tokenID, priceWei *big.Int) (string, error) {
	return c.market.List(ctx, tokenID, priceWei)
}

// BuyNFT purchases a listed token, carrying valueWei as the call's value.
func (c *Core) BuyNFT(ctx context.Context, tokenID, valueWei *big.Int) (string, error) {
	return c.market.Buy(ctx, tokenID, valueWei)
}

// FetchListing returns the seller/price pair for a token, or nil when it is
// not listed.
func (c *Core) FetchListing(ctx context.Context, tokenID *big.Int) (*contracts.Listing, error) {
	return c.market.Listing(ctx, tokenID)
}

// TxExplorerURL returns the block explorer URL for a transaction hash.
func (c *Core) TxExplorerURL(hash string) string {
	return c.cfg.ExplorerTxURL(hash)
}

// Tokens returns the registered token symbols.
func (c *Core) Tokens() []string {
	return c.registry.Symbols()
}
