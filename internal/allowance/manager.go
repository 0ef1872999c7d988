package allowance

import (
	"context"
	"math/big"

	"github.com/somniflow/somniflow/internal/contracts"
	"github.com/somniflow/somniflow/internal/provider"
	"github.com/somniflow/somniflow/internal/token"
	"github.com/somniflow/somniflow/internal/txqueue"
	coreerr "github.com/somniflow/somniflow/pkg/errors"
)

// Wallet is the session context the manager needs.
type Wallet interface {
	Address() string
	Provider() provider.Provider
}

// Enqueuer submits approval transactions and awaits their confirmation.
type Enqueuer interface {
	Enqueue(ctx context.Context, req txqueue.Request) (string, error)
}

// LogWriter provides logging operations.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds dependencies for the allowance manager.
type Config struct {
	Registry *token.Registry
	Wallet   Wallet
	Queue    Enqueuer
	Logger   LogWriter
}

// Manager checks and tops up ERC20 allowances.
type Manager struct {
	registry *token.Registry
	wallet   Wallet
	queue    Enqueuer
	logger   LogWriter
	cache    *Cache
}

// NewManager creates an allowance manager with an empty session cache.
func NewManager(cfg Config) *Manager {
	return &Manager{
		registry: cfg.Registry,
		wallet:   cfg.Wallet,
		queue:    cfg.Queue,
		logger:   cfg.Logger,
		cache:    NewCache(),
	}
}

// Cache exposes the session cache, primarily for tests and for clearing on
// disconnect.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Ensure reports whether the spender can move the required base-unit amount
// of the token on the owner's behalf, approving 2× the requirement first if
// the current allowance falls short. The headroom amortizes future
// operations against the same spender without granting an unbounded
// approval. Either the returned bool is trustworthy or the error is non-nil;
// there is no partial success.
func (m *Manager) Ensure(ctx context.Context, symbol, spender string, required *big.Int) (bool, error) {
	info, err := m.registry.Lookup(symbol)
	if err != nil {
		return false, err
	}

	// Native currency has no allowance concept.
	if info.Native {
		return true, nil
	}

	if required == nil || required.Sign() <= 0 {
		return false, coreerr.WithDetails(coreerr.ErrInvalidInput, map[string]string{
			"reason": "required amount must be positive",
		})
	}

	owner := m.wallet.Address()
	p := m.wallet.Provider()
	if owner == "" || p == nil {
		return false, coreerr.ErrNotConnected
	}

	// Cache hit that already covers the requirement: no network call.
	if cached, ok := m.cache.Get(owner, info.Address, spender); ok && cached.Cmp(required) >= 0 {
		return true, nil
	}

	current, err := m.read(ctx, p, owner, info.Address, spender)
	if err != nil {
		return false, err
	}

	if current.Cmp(required) >= 0 {
		return true, nil
	}

	// Approve exactly 2× the requirement.
	approveAmount := new(big.Int).Mul(required, big.NewInt(2))

	if m.logger != nil {
		m.logger.Debug("approving %s for spender %s: %s base units", symbol, spender, approveAmount.String())
	}

	_, err = m.queue.Enqueue(ctx, txqueue.Request{
		To:     info.Address,
		Data:   contracts.ApproveCallData(spender, approveAmount),
		Action: "approve",
		Meta: map[string]string{
			"token":   info.Symbol,
			"spender": spender,
			"amount":  approveAmount.String(),
		},
	})
	if err != nil {
		return false, err
	}

	// The approval is mined; trust a fresh read over arithmetic.
	refreshed, err := m.read(ctx, p, owner, info.Address, spender)
	if err != nil {
		return false, err
	}

	return refreshed.Cmp(required) >= 0, nil
}

// read performs the on-chain allowance read and updates the cache.
func (m *Manager) read(ctx context.Context, p provider.Provider, owner, tokenAddress, spender string) (*big.Int, error) {
	result, err := provider.Call(ctx, p, provider.CallMsg{
		To:   tokenAddress,
		Data: contracts.AllowanceCallData(owner, spender),
	})
	if err != nil {
		return nil, coreerr.Normalize(err)
	}

	current := contracts.DecodeUint256(result)
	m.cache.Set(owner, tokenAddress, spender, current)
	return current, nil
}
