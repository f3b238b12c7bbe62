package notification

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	dErrors "hask/pkg/domain-errors"
	"hask/pkg/platform/sentinel"
	"hask/pkg/requestcontext"
)

// SettleFunc executes the settlement transfer for an accepted request and
// returns the settlement transaction id. The workflow layer supplies it so
// this package stays ledger-agnostic.
type SettleFunc func(ctx context.Context, n Notification) (string, error)

// Ledger owns the pending → accepted/declined state machine over the
// notification queues.
type Ledger struct {
	store  Store
	logger *slog.Logger

	// decisions serializes Decide per recipient queue, so a given
	// notification's pending → terminal transition happens at most once
	// even under concurrent replays, without holding the store lock
	// across the settlement call.
	decisions keyedMutex
}

func NewLedger(store Store, logger *slog.Logger) *Ledger {
	return &Ledger{store: store, logger: logger}
}

// FileRequest appends a pending investment request to the recipient's
// queue. Identity and opt-in preconditions are the workflow layer's job;
// by the time a request is filed they already hold.
func (l *Ledger) FileRequest(ctx context.Context, requester, recipient string, assetID, amount uint64) (Notification, error) {
	n := &Notification{
		Kind:      KindRequest,
		From:      requester,
		To:        recipient,
		AssetID:   assetID,
		Amount:    amount,
		Status:    StatusPending,
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}
	stored, err := l.store.File(ctx, n)
	if err != nil {
		return Notification{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to file investment request")
	}
	l.logger.InfoContext(ctx, "investment request filed",
		"notification_id", stored.ID,
		"from", requester,
		"to", recipient,
		"asset_id", assetID,
		"amount", amount,
	)
	return stored, nil
}

// ListFor returns the recipient's queue as a restartable sequence over a
// snapshot in insertion order. Appends after the snapshot are not visible
// through the returned sequence.
func (l *Ledger) ListFor(ctx context.Context, recipient string) (iter.Seq[Notification], error) {
	snapshot, err := l.store.ListFor(ctx, recipient)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notifications")
	}
	return func(yield func(Notification) bool) {
		for _, n := range snapshot {
			if !yield(n) {
				return
			}
		}
	}, nil
}

// Decide resolves a pending request. Accepting runs settle before the
// terminal commit; declining commits directly with no ledger call. Repeating
// a decision returns the recorded terminal state without settling again, so
// replays cannot double-spend.
func (l *Ledger) Decide(ctx context.Context, recipient string, id uint64, accept bool, settle SettleFunc) (Notification, error) {
	unlock := l.decisions.lock(recipient)
	defer unlock()

	n, err := l.store.Find(ctx, recipient, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Notification{}, dErrors.New(dErrors.CodeNotFound,
				fmt.Sprintf("notification %d not found", id))
		}
		return Notification{}, dErrors.Wrap(err, dErrors.CodeInternal, "notification lookup failed")
	}
	if !n.IsPending() {
		return n, nil
	}

	var txID string
	if accept {
		// Settlement happens outside the store lock; only the decision
		// lock for this recipient is held across the ledger round-trip.
		txID, err = settle(ctx, n)
		if err != nil {
			return Notification{}, err
		}
	}

	committed, err := l.store.Execute(ctx, recipient, id,
		func(n *Notification) error { return n.CanDecide() },
		func(n *Notification) {
			if accept {
				n.ApplyAccept(txID)
			} else {
				n.ApplyDecline()
			}
		},
	)
	if err != nil {
		return Notification{}, dErrors.Wrap(err, dErrors.CodeInternal, "decision commit failed")
	}

	l.logger.InfoContext(ctx, "investment request decided",
		"notification_id", committed.ID,
		"recipient", recipient,
		"status", committed.Status,
		"tx_id", committed.TxID,
	)
	return committed, nil
}

// keyedMutex hands out one mutex per key, created on demand. Keys are
// usernames; entries are never reclaimed, matching the append-only store.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
