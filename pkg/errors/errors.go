// Package errors provides structured error handling for SomniFlow.
// It defines the closed taxonomy of error codes surfaced to callers and
// helpers for adding context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Error codes form a closed set. Anything the normalizer cannot classify
// maps to CodeTxFailed at the operation boundary or CodeInternal for
// programmer errors.
const (
	CodeNoProvider            = "NO_PROVIDER"
	CodeUserRejected          = "USER_REJECTED"
	CodeChainMismatch         = "CHAIN_MISMATCH"
	CodeRPCError              = "RPC_ERROR"
	CodeInvalidInput          = "INVALID_INPUT"
	CodeInsufficientAllowance = "INSUFFICIENT_ALLOWANCE"
	CodeNotOwner              = "NOT_OWNER"
	CodeAlreadyListed         = "ALREADY_LISTED"
	CodeListingNotFound       = "LISTING_NOT_FOUND"
	CodeNetworkFailure        = "NETWORK_FAILURE"
	CodeTxFailed              = "TX_FAILED"
	CodeInternal              = "INTERNAL"
	CodeUnknownToken          = "UNKNOWN_TOKEN"
	CodeNotConnected          = "NOT_CONNECTED"
)

// CoreError is the structured error type for SomniFlow.
type CoreError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message, suitable for direct display
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
}

func (e *CoreError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *CoreError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for CoreError.
func (e *CoreError) Is(target error) bool {
	var t *CoreError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrNoProvider = &CoreError{
		Code:    CodeNoProvider,
		Message: "no wallet provider available",
	}

	ErrUserRejected = &CoreError{
		Code:    CodeUserRejected,
		Message: "request rejected in wallet",
	}

	ErrChainMismatch = &CoreError{
		Code:    CodeChainMismatch,
		Message: "wallet is connected to the wrong network",
	}

	ErrRPC = &CoreError{
		Code:    CodeRPCError,
		Message: "RPC request failed",
	}

	ErrInvalidInput = &CoreError{
		Code:    CodeInvalidInput,
		Message: "invalid input",
	}

	ErrInsufficientAllowance = &CoreError{
		Code:    CodeInsufficientAllowance,
		Message: "token allowance is insufficient",
	}

	ErrNotOwner = &CoreError{
		Code:    CodeNotOwner,
		Message: "caller does not own this token",
	}

	ErrAlreadyListed = &CoreError{
		Code:    CodeAlreadyListed,
		Message: "token is already listed",
	}

	ErrListingNotFound = &CoreError{
		Code:    CodeListingNotFound,
		Message: "listing not found",
	}

	ErrNetworkFailure = &CoreError{
		Code:    CodeNetworkFailure,
		Message: "network communication failed",
	}

	ErrTxFailed = &CoreError{
		Code:    CodeTxFailed,
		Message: "transaction failed",
	}

	ErrInternal = &CoreError{
		Code:    CodeInternal,
		Message: "internal error",
	}

	ErrUnknownToken = &CoreError{
		Code:    CodeUnknownToken,
		Message: "unknown token symbol",
	}

	ErrNotConnected = &CoreError{
		Code:    CodeNotConnected,
		Message: "wallet is not connected",
	}
)

// New creates a new CoreError with the given code and message.
func New(code, message string) *CoreError {
	return &CoreError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context. If the wrapped error is a
// CoreError its code is preserved so classification survives wrapping.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ce *CoreError
	if errors.As(err, &ce) {
		return &CoreError{
			Code:       ce.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ce.Message),
			Details:    ce.Details,
			Suggestion: ce.Suggestion,
			Cause:      err,
		}
	}

	return &CoreError{
		Code:    CodeInternal,
		Message: msg,
		Cause:   err,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ce *CoreError
	if errors.As(err, &ce) {
		return &CoreError{
			Code:       ce.Code,
			Message:    ce.Message,
			Details:    details,
			Suggestion: ce.Suggestion,
			Cause:      ce.Cause,
		}
	}

	return &CoreError{
		Code:    CodeInternal,
		Message: err.Error(),
		Details: details,
		Cause:   err,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ce *CoreError
	if errors.As(err, &ce) {
		return &CoreError{
			Code:       ce.Code,
			Message:    ce.Message,
			Details:    ce.Details,
			Suggestion: suggestion,
			Cause:      ce.Cause,
		}
	}

	return &CoreError{
		Code:       CodeInternal,
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Code returns the error code for an error.
func Code(err error) string {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return CodeInternal
}

// Message returns the human-readable message for an error.
func Message(err error) string {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// Exit codes for CLI error reporting.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitWallet   = 3 // Wallet unavailable, rejected, or wrong chain
	ExitNotFound = 4 // Resource not found
	ExitNetwork  = 5 // RPC or network failure
)

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch Code(err) {
	case CodeInvalidInput, CodeUnknownToken:
		return ExitInput
	case CodeNoProvider, CodeUserRejected, CodeChainMismatch, CodeNotConnected, CodeInsufficientAllowance:
		return ExitWallet
	case CodeListingNotFound, CodeNotOwner, CodeAlreadyListed:
		return ExitNotFound
	case CodeRPCError, CodeNetworkFailure:
		return ExitNetwork
	default:
		return ExitGeneral
	}
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
