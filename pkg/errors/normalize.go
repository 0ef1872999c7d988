package errors

import (
	"context"
	"errors"
	"net"
	"strings"
)

// EIP-1193 / JSON-RPC provider error codes.
const (
	rpcCodeUserRejected      = 4001
	rpcCodeUnauthorized      = 4100
	rpcCodeUnsupported       = 4200
	rpcCodeDisconnected      = 4900
	rpcCodeChainDisconnected = 4901
	rpcCodeUnknownChain      = 4902
)

// RPCCoder is implemented by provider errors that carry a JSON-RPC or
// EIP-1193 numeric error code.
type RPCCoder interface {
	error
	RPCCode() int
}

// revert reason fragments emitted by the product contracts.
var revertPatterns = []struct {
	fragment string
	sentinel *CoreError
}{
	{"insufficient allowance", ErrInsufficientAllowance},
	{"allowance", ErrInsufficientAllowance},
	{"not owner", ErrNotOwner},
	{"not the owner", ErrNotOwner},
	{"already listed", ErrAlreadyListed},
	{"not listed", ErrListingNotFound},
	{"listing", ErrListingNotFound},
}

// user-rejection signatures vary across wallet implementations.
var rejectionFragments = []string{
	"user rejected",
	"user denied",
	"rejected by user",
	"request rejected",
}

var chainFragments = []string{
	"unrecognized chain",
	"unsupported chain",
	"wrong network",
	"chain mismatch",
}

// Normalize maps an arbitrary provider or contract error into the closed
// taxonomy. It is a best-effort classifier: unrecognized shapes default to
// TX_FAILED rather than crashing or leaking raw provider text as a code.
func Normalize(err error) *CoreError {
	return normalize(err, ErrTxFailed)
}

// NormalizeInternal is Normalize with an INTERNAL fallback, for failures
// outside any transaction flow (programmer or wiring errors).
func NormalizeInternal(err error) *CoreError {
	return normalize(err, ErrInternal)
}

func normalize(err error, fallback *CoreError) *CoreError {
	if err == nil {
		return nil
	}

	// Already classified.
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce
	}

	// Numeric provider codes are the most reliable signal.
	var rc RPCCoder
	if errors.As(err, &rc) {
		switch rc.RPCCode() {
		case rpcCodeUserRejected:
			return withCause(ErrUserRejected, err)
		case rpcCodeUnknownChain:
			return withCause(ErrChainMismatch, err)
		case rpcCodeUnauthorized, rpcCodeUnsupported:
			return withCause(ErrNoProvider, err)
		case rpcCodeDisconnected, rpcCodeChainDisconnected:
			return withCause(ErrNetworkFailure, err)
		default:
			if revert := classifyRevert(rc.Error()); revert != nil {
				return withCause(revert, err)
			}
			return withCause(ErrRPC, err)
		}
	}

	// Transport-level failures.
	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) {
		return withCause(ErrNetworkFailure, err)
	}

	msg := strings.ToLower(err.Error())

	for _, frag := range rejectionFragments {
		if strings.Contains(msg, frag) {
			return withCause(ErrUserRejected, err)
		}
	}

	for _, frag := range chainFragments {
		if strings.Contains(msg, frag) {
			return withCause(ErrChainMismatch, err)
		}
	}

	if strings.Contains(msg, "execution reverted") || strings.Contains(msg, "revert") {
		if revert := classifyRevert(msg); revert != nil {
			return withCause(revert, err)
		}
		return withCause(ErrTxFailed, err)
	}

	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "timeout") {
		return withCause(ErrNetworkFailure, err)
	}

	return withCause(fallback, err)
}

// classifyRevert maps a revert reason to a domain sentinel, or nil when the
// reason is not one the product contracts emit.
func classifyRevert(msg string) *CoreError {
	msg = strings.ToLower(msg)
	for _, p := range revertPatterns {
		if strings.Contains(msg, p.fragment) {
			return p.sentinel
		}
	}
	return nil
}

func withCause(sentinel *CoreError, cause error) *CoreError {
	return &CoreError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Suggestion: sentinel.Suggestion,
		Cause:      cause,
	}
}
