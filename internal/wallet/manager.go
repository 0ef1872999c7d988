package wallet

import (
	"context"
	"math/big"
	"sync"

	"github.com/somniflow/somniflow/internal/provider"
	coreerr "github.com/somniflow/somniflow/pkg/errors"
)

// LogWriter provides logging operations.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds dependencies for the wallet manager.
type Config struct {
	// Connectors maps connector ids to their providers. A connector whose
	// provider reports !Ready models a missing browser extension.
	Connectors map[string]provider.Provider

	// DefaultConnector is used when Connect is called without an id and no
	// persisted choice exists.
	DefaultConnector string

	// RequiredChainID is the product's required chain.
	RequiredChainID *big.Int

	// AddChain is the registration payload sent when the wallet does not
	// know the required chain.
	AddChain provider.AddChainParams

	// Store persists the last-used connector id.
	Store ConnectorStore

	// Logger receives diagnostics. Nil disables logging.
	Logger LogWriter

	// OnDisconnect runs after every full reset (explicit disconnect or
	// provider disconnect event); the transaction queue hooks its legacy
	// mirror reset here.
	OnDisconnect func()
}

// Manager owns the wallet session state machine. All session mutation goes
// through Connect, Disconnect, SwitchToRequiredChain, and HandleEvent;
// provider events and explicit calls share the same transition paths so the
// two cannot drift.
type Manager struct {
	cfg Config

	mu          sync.Mutex
	session     Session
	active      provider.Provider
	unsubscribe func()

	subMu   sync.Mutex
	subs    map[int]func(Session)
	nextSub int
}

// NewManager creates a wallet manager in the disconnected state.
func NewManager(cfg Config) *Manager {
	if cfg.Store == nil {
		cfg.Store = NewMemoryConnectorStore()
	}
	return &Manager{
		cfg:     cfg,
		session: Session{Status: StatusDisconnected},
		subs:    make(map[int]func(Session)),
	}
}

// Session returns a snapshot of the current session.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.clone()
}

// Provider returns the active provider, or nil when disconnected.
func (m *Manager) Provider() provider.Provider {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Address returns the session address, or "" when unknown.
func (m *Manager) Address() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Address
}

// Subscribe registers a session snapshot listener and returns an unsubscribe
// function. Listeners are invoked after every state change.
func (m *Manager) Subscribe(fn func(Session)) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

// Connect establishes the wallet session through the given connector. An
// empty connector id falls back to the persisted choice, then the default.
// A declined or failed chain switch settles into the error state with
// ChainMismatch set and the address retained, distinguishable from a hard
// connection failure.
func (m *Manager) Connect(ctx context.Context, connectorID string) (Session, error) {
	connectorID = m.resolveConnector(connectorID)

	p, ok := m.cfg.Connectors[connectorID]
	if !ok || p == nil || !p.Ready() {
		err := coreerr.WithDetails(coreerr.ErrNoProvider, map[string]string{
			"connector": connectorID,
		})
		m.settleFailure(connectorID, err)
		return m.Session(), err
	}

	// Enter connecting: prior error fields are cleared on any new attempt.
	m.transition(func(s *Session) {
		s.Status = StatusConnecting
		s.Connector = connectorID
		s.ErrorCode = ""
		s.ErrorMessage = ""
		s.ChainMismatch = false
	})

	accounts, err := provider.RequestAccounts(ctx, p)
	if err != nil {
		norm := coreerr.Normalize(err)
		m.settleFailure(connectorID, norm)
		return m.Session(), norm
	}
	if len(accounts) == 0 {
		norm := coreerr.WithDetails(coreerr.ErrNoProvider, map[string]string{
			"reason": "no accounts granted",
		})
		m.settleFailure(connectorID, norm)
		return m.Session(), norm
	}
	address := accounts[0]

	chainID, err := provider.ChainID(ctx, p)
	if err != nil {
		norm := coreerr.Normalize(err)
		m.settleFailure(connectorID, norm)
		return m.Session(), norm
	}

	// Wrong chain: try an automatic switch before finalizing. The switch is
	// advisory; a decline leaves the mismatch state to settle below.
	if chainID.Cmp(m.cfg.RequiredChainID) != 0 {
		if switched := m.switchChain(ctx, p); switched != nil {
			chainID = switched
		}
	}

	m.mu.Lock()
	m.active = p
	m.mu.Unlock()

	m.transition(func(s *Session) {
		s.Address = address
		s.ChainID = new(big.Int).Set(chainID)
		s.Connector = connectorID
		if chainID.Cmp(m.cfg.RequiredChainID) != 0 {
			s.Status = StatusError
			s.ChainMismatch = true
			s.ErrorCode = coreerr.CodeChainMismatch
			s.ErrorMessage = coreerr.ErrChainMismatch.Message
		} else {
			s.Status = StatusConnected
			s.ChainMismatch = false
		}
	})

	if err := m.cfg.Store.Save(connectorID); err != nil {
		m.logError("persisting connector choice: %v", err)
	}

	m.mu.Lock()
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.unsubscribe = p.OnEvent(m.HandleEvent)
	m.mu.Unlock()

	return m.Session(), nil
}

// Disconnect unconditionally resets to the disconnected state. It always
// succeeds and is idempotent: any number of calls from any state leave no
// address, no chain, and no persisted connector.
func (m *Manager) Disconnect() {
	m.reset(true)
}

// SwitchToRequiredChain asks the wallet to switch to the product's required
// chain, registering the chain's parameters first if the wallet does not
// know it. Failures are swallowed: the mismatch state persists and is
// surfaced through the session rather than a returned error.
func (m *Manager) SwitchToRequiredChain(ctx context.Context) {
	m.mu.Lock()
	p := m.active
	m.mu.Unlock()

	if p == nil {
		return
	}

	chainID := m.switchChain(ctx, p)
	if chainID == nil {
		return
	}

	m.transition(func(s *Session) {
		applyChain(s, chainID, m.cfg.RequiredChainID)
	})
}

// HandleEvent is the single reducer for out-of-band provider events. Events
// arriving mid-flight of a pending transaction only update session display
// state; in-flight transactions are never canceled here.
func (m *Manager) HandleEvent(ev provider.Event) {
	switch ev.Type {
	case provider.EventAccountsChanged:
		if len(ev.Accounts) == 0 {
			// The wallet revoked access entirely.
			m.reset(true)
			return
		}
		m.transition(func(s *Session) {
			s.Address = ev.Accounts[0]
		})

	case provider.EventChainChanged:
		chainID, err := provider.ParseHexBigInt(ev.ChainID)
		if err != nil {
			m.logError("ignoring chainChanged with bad id %q: %v", ev.ChainID, err)
			return
		}
		m.transition(func(s *Session) {
			applyChain(s, chainID, m.cfg.RequiredChainID)
		})

	case provider.EventDisconnect:
		m.reset(true)
	}
}

// switchChain performs the advisory chain switch: wallet_switchEthereumChain,
// falling back to wallet_addEthereumChain when the wallet reports the chain
// as unknown (EIP-1193 code 4902). Returns the chain id now active, or nil
// when the switch did not happen.
func (m *Manager) switchChain(ctx context.Context, p provider.Provider) *big.Int {
	err := provider.SwitchChain(ctx, p, m.cfg.RequiredChainID)
	if err != nil {
		norm := coreerr.Normalize(err)
		if norm.Code != coreerr.CodeChainMismatch {
			m.logError("chain switch declined: %v", err)
			return nil
		}

		// Unknown chain: register it, then retry the switch once.
		if addErr := provider.AddChain(ctx, p, m.cfg.AddChain); addErr != nil {
			m.logError("chain registration declined: %v", addErr)
			return nil
		}
		if retryErr := provider.SwitchChain(ctx, p, m.cfg.RequiredChainID); retryErr != nil {
			m.logError("chain switch declined after registration: %v", retryErr)
			return nil
		}
	}

	// Confirm what the provider actually landed on.
	chainID, err := provider.ChainID(ctx, p)
	if err != nil {
		m.logError("reading chain id after switch: %v", err)
		return nil
	}
	return chainID
}

// applyChain recomputes mismatch state for a new chain id without touching
// the address.
func applyChain(s *Session, chainID, required *big.Int) {
	s.ChainID = new(big.Int).Set(chainID)

	if s.Address == "" {
		return
	}

	if chainID.Cmp(required) != 0 {
		s.Status = StatusError
		s.ChainMismatch = true
		s.ErrorCode = coreerr.CodeChainMismatch
		s.ErrorMessage = coreerr.ErrChainMismatch.Message
	} else {
		s.Status = StatusConnected
		s.ChainMismatch = false
		s.ErrorCode = ""
		s.ErrorMessage = ""
	}
}

// resolveConnector picks the connector id for a connect attempt.
func (m *Manager) resolveConnector(connectorID string) string {
	if connectorID != "" {
		return connectorID
	}
	if stored, err := m.cfg.Store.Load(); err == nil && stored != "" {
		return stored
	} else if err != nil {
		m.logError("loading persisted connector: %v", err)
	}
	return m.cfg.DefaultConnector
}

// settleFailure records a hard connect failure: no usable address remains.
func (m *Manager) settleFailure(connectorID string, err error) {
	m.transition(func(s *Session) {
		s.Status = StatusError
		s.Connector = connectorID
		s.Address = ""
		s.ChainID = nil
		s.ChainMismatch = false
		s.ErrorCode = coreerr.Code(err)
		s.ErrorMessage = coreerr.Message(err)
	})
}

// reset returns the machine to disconnected. clearStore also removes the
// persisted connector choice (explicit disconnects and provider disconnect
// events; not used for transient failures).
func (m *Manager) reset(clearStore bool) {
	m.mu.Lock()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.active = nil
	m.mu.Unlock()

	m.transition(func(s *Session) {
		*s = Session{Status: StatusDisconnected}
	})

	if clearStore {
		if err := m.cfg.Store.Clear(); err != nil {
			m.logError("clearing persisted connector: %v", err)
		}
	}

	if m.cfg.OnDisconnect != nil {
		m.cfg.OnDisconnect()
	}
}

// transition applies a mutation under lock and notifies subscribers with a
// snapshot afterwards.
func (m *Manager) transition(mutate func(*Session)) {
	m.mu.Lock()
	mutate(&m.session)
	snapshot := m.session.clone()
	m.mu.Unlock()

	m.notify(snapshot)
}

func (m *Manager) notify(snapshot Session) {
	m.subMu.Lock()
	subs := make([]func(Session), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.subMu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func (m *Manager) logError(format string, args ...any) {
	if m.cfg.Logger != nil {
		m.cfg.Logger.Error(format, args...)
	}
}
