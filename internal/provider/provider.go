// Package provider defines the wallet provider boundary: an Ethereum-style
// JSON-RPC request interface plus subscription-style wallet events. Both the
// injected wallet connector and the plain HTTP read client satisfy it.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
)

// EventType identifies an out-of-band wallet provider event.
type EventType string

// Provider event types.
const (
	EventAccountsChanged EventType = "accountsChanged"
	EventChainChanged    EventType = "chainChanged"
	EventDisconnect      EventType = "disconnect"
)

// Event is a discrete message from the provider. Exactly one payload field is
// meaningful per type: Accounts for accountsChanged, ChainID (hex) for
// chainChanged, neither for disconnect.
type Event struct {
	Type     EventType
	Accounts []string
	ChainID  string
}

// Handler receives provider events.
type Handler func(Event)

// Provider is the outbound contract the core consumes. Request performs a
// JSON-RPC method call; OnEvent registers a handler for wallet events and
// returns an unsubscribe function. Ready reports whether the provider can
// accept requests at all (a missing browser extension maps to !Ready).
type Provider interface {
	Ready() bool
	Request(ctx context.Context, method string, params ...any) (json.RawMessage, error)
	OnEvent(h Handler) (unsubscribe func())
}

// RPCError is a JSON-RPC 2.0 error object. It carries the numeric code so the
// error normalizer can classify EIP-1193 signatures (4001 user rejection,
// 4902 unknown chain) without string matching.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// RPCCode returns the numeric JSON-RPC error code.
func (e *RPCError) RPCCode() int {
	return e.Code
}
