package txqueue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/somniflow/somniflow/internal/provider"
	coreerr "github.com/somniflow/somniflow/pkg/errors"
)

// Wallet is the session context the queue needs: a known sender address and
// an active provider.
type Wallet interface {
	Address() string
	Provider() provider.Provider
}

// LogWriter provides logging operations.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds dependencies for the queue.
type Config struct {
	Wallet       Wallet
	Logger       LogWriter
	PollInterval time.Duration // receipt poll interval; 0 means provider default
}

// Queue accepts transaction requests, submits them through the wallet
// provider, and tracks each to its terminal state.
type Queue struct {
	cfg Config

	mu          sync.Mutex
	records     []*Record // newest first
	byID        map[string]*Record
	mirror      Mirror
	mirrorOwner string // ID of the record the mirror reflects

	subMu   sync.Mutex
	subs    map[int]func(Record)
	nextSub int
}

// New creates an empty queue.
func New(cfg Config) *Queue {
	return &Queue{
		cfg:  cfg,
		byID: make(map[string]*Record),
		subs: make(map[int]func(Record)),
	}
}

// Enqueue submits a transaction and awaits its confirmation. Exactly one
// record is created per call. On any failure after the record exists, the
// record transitions to failed with a normalized message and the same error
// is returned; precondition failures create no record and touch no network.
func (q *Queue) Enqueue(ctx context.Context, req Request) (string, error) {
	rec, p, err := q.start(req)
	if err != nil {
		return "", err
	}

	hash, err := q.submit(ctx, p, rec, req)
	if err != nil {
		return "", err
	}

	if err := q.track(ctx, p, rec); err != nil {
		return hash, err
	}
	return hash, nil
}

// Submit submits a transaction and returns as soon as the provider accepts
// it. Confirmation continues in the background: the record still reaches a
// terminal state regardless of what the caller does next. Callers that need
// ordering against this transaction must use Enqueue instead.
func (q *Queue) Submit(ctx context.Context, req Request) (string, error) {
	rec, p, err := q.start(req)
	if err != nil {
		return "", err
	}

	hash, err := q.submit(ctx, p, rec, req)
	if err != nil {
		return "", err
	}

	// Detach from the caller's cancellation: a submitted transaction is
	// tracked to its terminal state no matter what.
	bg := context.WithoutCancel(ctx)
	go func() {
		if err := q.track(bg, p, rec); err != nil && q.cfg.Logger != nil {
			q.cfg.Logger.Error("background transaction %s failed: %v", rec.ID, err)
		}
	}()

	return hash, nil
}

// Records returns a snapshot of all records, most recent first.
func (q *Queue) Records() []Record {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Record, len(q.records))
	for i, rec := range q.records {
		out[i] = rec.clone()
	}
	return out
}

// Get returns a snapshot of a single record.
func (q *Queue) Get(id string) (Record, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	rec, ok := q.byID[id]
	if !ok {
		return Record{}, false
	}
	return rec.clone(), true
}

// Mirror returns the legacy single-slot status view.
func (q *Queue) Mirror() Mirror {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.mirror
}

// ResetMirror clears the legacy status view. Queue records are retained:
// history survives a wallet disconnect.
func (q *Queue) ResetMirror() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.mirror = Mirror{}
	q.mirrorOwner = ""
}

// Subscribe registers a record snapshot listener invoked on every record
// state change. Returns an unsubscribe function.
func (q *Queue) Subscribe(fn func(Record)) func() {
	q.subMu.Lock()
	defer q.subMu.Unlock()

	id := q.nextSub
	q.nextSub++
	q.subs[id] = fn

	return func() {
		q.subMu.Lock()
		defer q.subMu.Unlock()
		delete(q.subs, id)
	}
}

// start validates preconditions and creates the pending record.
func (q *Queue) start(req Request) (*Record, provider.Provider, error) {
	address := q.cfg.Wallet.Address()
	p := q.cfg.Wallet.Provider()
	if address == "" || p == nil {
		return nil, nil, coreerr.WithDetails(coreerr.ErrNotConnected, map[string]string{
			"action": req.Action,
		})
	}

	now := time.Now()
	rec := &Record{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		Action:    req.Action,
		Meta:      req.Meta,
	}

	q.mu.Lock()
	q.records = append([]*Record{rec}, q.records...)
	q.byID[rec.ID] = rec
	q.mirror = Mirror{Pending: true}
	q.mirrorOwner = rec.ID
	snapshot := rec.clone()
	q.mu.Unlock()

	q.notify(snapshot)
	return rec, p, nil
}

// submit hands the raw request to the provider and records the hash.
func (q *Queue) submit(ctx context.Context, p provider.Provider, rec *Record, req Request) (string, error) {
	hash, err := provider.SendTransaction(ctx, p, provider.TxRequest{
		From:  q.cfg.Wallet.Address(),
		To:    req.To,
		Value: req.ValueWei,
		Data:  req.Data,
	})
	if err != nil {
		norm := coreerr.Normalize(err)
		q.fail(rec, norm)
		return "", norm
	}

	q.mu.Lock()
	rec.Hash = hash
	rec.UpdatedAt = time.Now()
	if q.mirrorOwner == rec.ID {
		q.mirror = Mirror{Pending: true, Hash: hash}
	}
	snapshot := rec.clone()
	q.mu.Unlock()

	q.notify(snapshot)
	return hash, nil
}

// track awaits the transaction's inclusion and applies the terminal
// transition.
func (q *Queue) track(ctx context.Context, p provider.Provider, rec *Record) error {
	receipt, err := provider.WaitMined(ctx, p, rec.Hash, q.cfg.PollInterval)
	if err != nil {
		norm := coreerr.Normalize(err)
		q.fail(rec, norm)
		return norm
	}

	if !receipt.Mined() {
		norm := coreerr.WithDetails(coreerr.ErrTxFailed, map[string]string{
			"hash": rec.Hash,
		})
		var ce *coreerr.CoreError
		coreerr.As(norm, &ce)
		q.fail(rec, ce)
		return norm
	}

	q.mu.Lock()
	if rec.Terminal() {
		q.mu.Unlock()
		return nil
	}
	rec.Status = StatusMined
	rec.UpdatedAt = time.Now()
	if q.mirrorOwner == rec.ID {
		q.mirror.Pending = false
	}
	snapshot := rec.clone()
	q.mu.Unlock()

	q.notify(snapshot)
	return nil
}

// fail applies the failed terminal transition with a normalized error.
func (q *Queue) fail(rec *Record, norm *coreerr.CoreError) {
	q.mu.Lock()
	if rec.Terminal() {
		q.mu.Unlock()
		return
	}
	rec.Status = StatusFailed
	rec.Error = norm.Message
	rec.UpdatedAt = time.Now()
	if q.mirrorOwner == rec.ID {
		q.mirror.Pending = false
		q.mirror.Error = norm.Message
	}
	snapshot := rec.clone()
	q.mu.Unlock()

	q.notify(snapshot)

	if q.cfg.Logger != nil {
		q.cfg.Logger.Debug("transaction %s failed: %s", rec.ID, norm.Message)
	}
}

func (q *Queue) notify(snapshot Record) {
	q.subMu.Lock()
	subs := make([]func(Record), 0, len(q.subs))
	for _, fn := range q.subs {
		subs = append(subs, fn)
	}
	q.subMu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
