// Package wallet owns the single wallet session: connection lifecycle, chain
// verification and switching, and reactions to out-of-band provider events.
package wallet

import "math/big"

// Status is the wallet session state. States are mutually exclusive.
type Status string

// Session states.
const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusError        Status = "error"
)

// Session is a snapshot of the wallet connection state. Exactly one session
// exists per Manager; all mutation funnels through the Manager's operations
// and its provider-event reducer, never ad hoc field assignment.
type Session struct {
	Status        Status
	Address       string
	ChainID       *big.Int
	ChainMismatch bool
	ErrorCode     string
	ErrorMessage  string
	Connector     string
}

// Connected reports whether an address is known and usable. A session in the
// error state after a declined chain switch still has a usable address for
// read operations.
func (s Session) Connected() bool {
	return s.Address != "" && (s.Status == StatusConnected || s.Status == StatusError)
}

// clone returns a deep copy safe to hand to subscribers.
func (s Session) clone() Session {
	out := s
	if s.ChainID != nil {
		out.ChainID = new(big.Int).Set(s.ChainID)
	}
	return out
}
