// Package txqueue tracks submitted transactions from pending to their
// terminal state. It is an observation/bookkeeping structure, not a
// scheduler: entries are independent, never removed, and never re-ordered
// after insertion (newest first).
package txqueue

import (
	"math/big"
	"time"
)

// Status is a transaction record's lifecycle state.
type Status string

// Record states. Transitions are pending → mined or pending → failed,
// exactly once; terminal states are final.
const (
	StatusPending Status = "pending"
	StatusMined   Status = "mined"
	StatusFailed  Status = "failed"
)

// Record is one tracked transaction submission.
type Record struct {
	// ID is locally generated, unique per submission, stable for the
	// record's lifetime.
	ID string

	// Hash is set once the provider accepts the submission; empty while
	// only locally queued.
	Hash string

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// Action and Meta are free-form observability labels; never used for
	// control flow.
	Action string
	Meta   map[string]string

	// Error holds the normalized failure message for failed records.
	Error string
}

// Terminal reports whether the record has reached a final state.
func (r *Record) Terminal() bool {
	return r.Status == StatusMined || r.Status == StatusFailed
}

// clone returns a copy safe to hand to observers.
func (r *Record) clone() Record {
	out := *r
	if r.Meta != nil {
		out.Meta = make(map[string]string, len(r.Meta))
		for k, v := range r.Meta {
			out.Meta[k] = v
		}
	}
	return out
}

// Request describes a transaction to submit. The provider supplies nonce and
// gas; this layer imposes no cross-transaction serialization.
type Request struct {
	To       string
	Data     []byte
	ValueWei *big.Int
	Action   string
	Meta     map[string]string
}

// Mirror is the derived single-slot status view for simple consumers that do
// not want the full queue. It always reflects the most recently enqueued
// transaction's state.
type Mirror struct {
	Pending bool
	Hash    string
	Error   string
}
