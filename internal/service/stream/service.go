// Package stream implements the payment-stream domain operations: creating
// streams against the streaming core contract and reading stream state.
package stream

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/somniflow/somniflow/internal/contracts"
	"github.com/somniflow/somniflow/internal/provider"
	"github.com/somniflow/somniflow/internal/token"
	"github.com/somniflow/somniflow/internal/txqueue"
	coreerr "github.com/somniflow/somniflow/pkg/errors"
)

// Wallet is the session context the service needs.
type Wallet interface {
	Address() string
	Provider() provider.Provider
}

// Enqueuer submits transactions and awaits their confirmation.
type Enqueuer interface {
	Enqueue(ctx context.Context, req txqueue.Request) (string, error)
}

// Ensurer guarantees spender allowance before the deposit-moving transaction.
type Ensurer interface {
	Ensure(ctx context.Context, symbol, spender string, required *big.Int) (bool, error)
}

// LogWriter provides logging operations.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds dependencies for the stream service.
type Config struct {
	Registry  *token.Registry
	Wallet    Wallet
	Queue     Enqueuer
	Allowance Ensurer
	// Reader performs read-only contract calls; it works without a wallet.
	Reader provider.Provider
	// Contract is the streaming core contract address.
	Contract string
	Logger   LogWriter
}

// Service provides stream operations.
type Service struct {
	registry  *token.Registry
	wallet    Wallet
	queue     Enqueuer
	allowance Ensurer
	reader    provider.Provider
	contract  string
	logger    LogWriter
}

// NewService creates a new stream service.
func NewService(cfg *Config) *Service {
	return &Service{
		registry:  cfg.Registry,
		wallet:    cfg.Wallet,
		queue:     cfg.Queue,
		allowance: cfg.Allowance,
		reader:    cfg.Reader,
		contract:  cfg.Contract,
		logger:    cfg.Logger,
	}
}

// CreateParams describes a stream to create. Amount is a human decimal
// string; Start and Stop are unix seconds.
type CreateParams struct {
	Recipient   string
	Amount      string
	TokenSymbol string
	Start       int64
	Stop        int64
}

// CreateResult is the outcome of a stream creation.
type CreateResult struct {
	StreamID *big.Int
	TxHash   string
	Deposit  *big.Int
}

// Create validates the request, tops up allowance for the deposit against
// the streaming contract, and submits the creation transaction. The new
// stream id is sourced from the CreateStream event in the receipt; when the
// receipt carries no matching log the next-id counter read (minus one) is
// used as a fallback, which is race-prone under concurrent creators.
func (s *Service) Create(ctx context.Context, p CreateParams) (*CreateResult, error) {
	info, err := s.registry.Lookup(p.TokenSymbol)
	if err != nil {
		return nil, err
	}
	if info.Native {
		return nil, coreerr.WithDetails(coreerr.ErrInvalidInput, map[string]string{
			"reason": "native currency streaming is not supported",
			"symbol": p.TokenSymbol,
		})
	}

	if !common.IsHexAddress(p.Recipient) {
		return nil, coreerr.WithDetails(coreerr.ErrInvalidInput, map[string]string{
			"reason":    "invalid recipient address",
			"recipient": p.Recipient,
		})
	}

	if p.Stop <= p.Start {
		return nil, coreerr.WithDetails(coreerr.ErrInvalidInput, map[string]string{
			"reason": "stop time must be after start time",
		})
	}

	deposit, err := token.ParseAmount(p.Amount, info.Decimals)
	if err != nil {
		return nil, err
	}
	if deposit.Sign() <= 0 {
		return nil, coreerr.WithDetails(coreerr.ErrInvalidInput, map[string]string{
			"reason": "amount must be positive",
		})
	}

	ok, err := s.allowance.Ensure(ctx, p.TokenSymbol, s.contract, deposit)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, coreerr.WithDetails(coreerr.ErrInsufficientAllowance, map[string]string{
			"token":   p.TokenSymbol,
			"spender": s.contract,
		})
	}

	hash, err := s.queue.Enqueue(ctx, txqueue.Request{
		To: s.contract,
		Data: contracts.CreateStreamCallData(
			p.Recipient,
			deposit,
			info.Address,
			big.NewInt(p.Start),
			big.NewInt(p.Stop),
		),
		Action: "createStream",
		Meta: map[string]string{
			"token":     info.Symbol,
			"amount":    p.Amount,
			"recipient": p.Recipient,
		},
	})
	if err != nil {
		return nil, err
	}

	streamID, err := s.minedStreamID(ctx, hash)
	if err != nil {
		return nil, err
	}

	return &CreateResult{
		StreamID: streamID,
		TxHash:   hash,
		Deposit:  deposit,
	}, nil
}

// Get returns a fresh snapshot of an on-chain stream. Nothing is cached.
func (s *Service) Get(ctx context.Context, streamID *big.Int) (*contracts.StreamDescriptor, error) {
	result, err := provider.Call(ctx, s.reader, provider.CallMsg{
		To:   s.contract,
		Data: contracts.GetStreamCallData(streamID),
	})
	if err != nil {
		return nil, coreerr.Normalize(err)
	}

	return contracts.DecodeStream(streamID, result)
}

// NextStreamID returns the streaming contract's monotonically increasing
// next-id counter.
func (s *Service) NextStreamID(ctx context.Context) (*big.Int, error) {
	result, err := provider.Call(ctx, s.reader, provider.CallMsg{
		To:   s.contract,
		Data: contracts.NextStreamIDCallData(),
	})
	if err != nil {
		return nil, coreerr.Normalize(err)
	}

	return contracts.DecodeUint256(result), nil
}

// minedStreamID resolves the created stream's id from the mined receipt,
// falling back to the counter diff.
func (s *Service) minedStreamID(ctx context.Context, hash string) (*big.Int, error) {
	receipt, err := provider.TransactionReceipt(ctx, s.reader, hash)
	if err == nil && receipt != nil {
		if id := contracts.StreamIDFromLogs(s.contract, receipt.Logs); id != nil {
			return id, nil
		}
	}

	if s.logger != nil {
		s.logger.Debug("stream id not found in logs for %s, falling back to counter read", hash)
	}

	next, err := s.NextStreamID(ctx)
	if err != nil {
		return nil, err
	}
	if next.Sign() <= 0 {
		return nil, coreerr.WithDetails(coreerr.ErrInternal, map[string]string{
			"reason": "next stream id counter is zero after creation",
		})
	}

	return new(big.Int).Sub(next, big.NewInt(1)), nil
}
