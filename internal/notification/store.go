package notification

import "context"

// Store owns the per-recipient notification queues and the global id
// sequence. Queues are insertion-ordered and append-only; ids increase
// monotonically across all recipients under the same lock that guards queue
// mutation.
type Store interface {
	// File allocates the next global id, stamps it onto n, and appends n
	// to the recipient's queue. Returns the stored notification.
	File(ctx context.Context, n *Notification) (Notification, error)

	// ListFor snapshots the recipient's queue in insertion order.
	// Concurrent appends are not visible in a returned snapshot.
	ListFor(ctx context.Context, recipient string) ([]Notification, error)

	// Find returns the notification by id within the recipient's queue,
	// or sentinel.ErrNotFound.
	Find(ctx context.Context, recipient string, id uint64) (Notification, error)

	// Execute atomically validates and mutates one notification, holding
	// the lock across both callbacks. Returns the mutated notification.
	Execute(ctx context.Context, recipient string, id uint64, validate func(*Notification) error, apply func(*Notification)) (Notification, error)
}
