// Package market implements the NFT marketplace domain operations: listing,
// buying, and listing lookups against the marketplace contract.
package market

import (
	"context"
	"math/big"
	"strings"

	"github.com/somniflow/somniflow/internal/contracts"
	"github.com/somniflow/somniflow/internal/provider"
	"github.com/somniflow/somniflow/internal/txqueue"
	coreerr "github.com/somniflow/somniflow/pkg/errors"
)

// Wallet is the session context the service needs.
type Wallet interface {
	Address() string
	Provider() provider.Provider
}

// Queue covers both submission modes the listing flow needs: Enqueue awaits
// confirmation, Submit returns once the provider accepts and tracks the
// transaction in the background.
type Queue interface {
	Enqueue(ctx context.Context, req txqueue.Request) (string, error)
	Submit(ctx context.Context, req txqueue.Request) (string, error)
}

// LogWriter provides logging operations.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds dependencies for the market service.
type Config struct {
	Wallet Wallet
	Queue  Queue
	// Reader performs read-only contract calls; it works without a wallet.
	Reader provider.Provider
	// Marketplace is the marketplace contract address.
	Marketplace string
	// Collection is the NFT collection contract address.
	Collection string
	Logger     LogWriter
}

// Service provides marketplace operations.
type Service struct {
	wallet      Wallet
	queue       Queue
	reader      provider.Provider
	marketplace string
	collection  string
	logger      LogWriter
}

// NewService creates a new market service.
func NewService(cfg *Config) *Service {
	return &Service{
		wallet:      cfg.Wallet,
		queue:       cfg.Queue,
		reader:      cfg.Reader,
		marketplace: cfg.Marketplace,
		collection:  cfg.Collection,
		logger:      cfg.Logger,
	}
}

// List puts a token up for sale. When the marketplace lacks blanket transfer
// approval for the caller's tokens, an approval transaction is submitted
// first; the listing transaction follows as soon as the approval's queue
// entry exists, without waiting for it to mine. The two steps are not
// atomic: an approval that mines without a subsequent listing leaves a
// valid-but-incomplete state, observable through the queue.
func (s *Service) List(ctx context.Context, tokenID, priceWei *big.Int) (string, error) {
	owner := s.wallet.Address()
	if owner == "" {
		return "", coreerr.ErrNotConnected
	}

	if priceWei == nil || priceWei.Sign() <= 0 {
		return "", coreerr.WithDetails(coreerr.ErrInvalidInput, map[string]string{
			"reason": "price must be positive",
		})
	}

	holder, err := s.ownerOf(ctx, tokenID)
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(holder, owner) {
		return "", coreerr.WithDetails(coreerr.ErrNotOwner, map[string]string{
			"tokenId": tokenID.String(),
			"owner":   holder,
		})
	}

	existing, err := s.Listing(ctx, tokenID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", coreerr.WithDetails(coreerr.ErrAlreadyListed, map[string]string{
			"tokenId": tokenID.String(),
		})
	}

	approved, err := s.isApprovedForAll(ctx, owner)
	if err != nil {
		return "", err
	}

	if !approved {
		if _, err := s.queue.Submit(ctx, txqueue.Request{
			To:     s.collection,
			Data:   contracts.SetApprovalForAllCallData(s.marketplace, true),
			Action: "setApprovalForAll",
			Meta: map[string]string{
				"operator": s.marketplace,
			},
		}); err != nil {
			return "", err
		}
	}

	return s.queue.Enqueue(ctx, txqueue.Request{
		To:     s.marketplace,
		Data:   contracts.ListItemCallData(tokenID, priceWei),
		Action: "listItem",
		Meta: map[string]string{
			"tokenId": tokenID.String(),
			"price":   priceWei.String(),
		},
	})
}

// Buy purchases a listed token, carrying the price as the call's value.
func (s *Service) Buy(ctx context.Context, tokenID, valueWei *big.Int) (string, error) {
	if valueWei == nil || valueWei.Sign() <= 0 {
		return "", coreerr.WithDetails(coreerr.ErrInvalidInput, map[string]string{
			"reason": "value must be positive",
		})
	}

	return s.queue.Enqueue(ctx, txqueue.Request{
		To:       s.marketplace,
		Data:     contracts.BuyItemCallData(tokenID),
		ValueWei: valueWei,
		Action:   "buyItem",
		Meta: map[string]string{
			"tokenId": tokenID.String(),
			"value":   valueWei.String(),
		},
	})
}

// Listing returns the seller/price pair for a token, or nil when the
// on-chain seller is the zero address (never listed or delisted).
func (s *Service) Listing(ctx context.Context, tokenID *big.Int) (*contracts.Listing, error) {
	result, err := provider.Call(ctx, s.reader, provider.CallMsg{
		To:   s.marketplace,
		Data: contracts.ListingsCallData(tokenID),
	})
	if err != nil {
		return nil, coreerr.Normalize(err)
	}

	return contracts.DecodeListing(result)
}

// ownerOf reads the token's current holder.
func (s *Service) ownerOf(ctx context.Context, tokenID *big.Int) (string, error) {
	result, err := provider.Call(ctx, s.reader, provider.CallMsg{
		To:   s.collection,
		Data: contracts.OwnerOfCallData(tokenID),
	})
	if err != nil {
		return "", coreerr.Normalize(err)
	}

	words, err := contractsWords(result)
	if err != nil {
		return "", err
	}
	return contracts.DecodeAddress(words), nil
}

// isApprovedForAll reads whether the marketplace may transfer the owner's
// tokens.
func (s *Service) isApprovedForAll(ctx context.Context, owner string) (bool, error) {
	result, err := provider.Call(ctx, s.reader, provider.CallMsg{
		To:   s.collection,
		Data: contracts.IsApprovedForAllCallData(owner, s.marketplace),
	})
	if err != nil {
		return false, coreerr.Normalize(err)
	}

	return contracts.DecodeBool(result), nil
}

// contractsWords validates a single-word return.
func contractsWords(result []byte) ([]byte, error) {
	if len(result) < 32 {
		return nil, coreerr.WithDetails(coreerr.ErrRPC, map[string]string{
			"reason": "short contract return",
		})
	}
	return result[:32], nil
}
