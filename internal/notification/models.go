package notification

import (
	"time"

	dErrors "hask/pkg/domain-errors"
)

// Kind labels what a notification currently represents to its recipient.
// It tracks Status: a request becomes accepted or declined.
type Kind string

const (
	KindRequest  Kind = "INVEST_REQUEST"
	KindAccepted Kind = "INVEST_ACCEPTED"
	KindDeclined Kind = "INVEST_DECLINED"
)

// Status is the decision state of an investment request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Notification records one investment request directed at a profile owner.
//
// Invariants:
//   - ID is unique across the whole system and never reused in-process
//   - Status transitions pending → accepted or pending → declined, never
//     reversed
//   - TxID is set if and only if Status is accepted
//   - Notifications are never deleted; queues are an append-only audit trail
type Notification struct {
	ID        uint64    `json:"id"`
	Kind      Kind      `json:"type"`
	From      string    `json:"from_username"`
	To        string    `json:"to_username"`
	AssetID   uint64    `json:"asset_id"`
	Amount    uint64    `json:"amount"`
	Status    Status    `json:"status"`
	TxID      string    `json:"txid,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsPending reports whether the request still awaits a decision.
func (n *Notification) IsPending() bool {
	return n.Status == StatusPending
}

// CanDecide checks that the notification is still pending. Use with
// ApplyAccept or ApplyDecline in Execute callbacks so the re-check and the
// terminal commit happen under one lock.
func (n *Notification) CanDecide() error {
	if !n.IsPending() {
		return dErrors.New(dErrors.CodeInvariantViolation, "notification is no longer pending")
	}
	return nil
}

// ApplyAccept commits the accepted terminal state with its settlement
// transaction. Call CanDecide first.
func (n *Notification) ApplyAccept(txID string) {
	n.Status = StatusAccepted
	n.Kind = KindAccepted
	n.TxID = txID
}

// ApplyDecline commits the declined terminal state. No settlement occurs.
func (n *Notification) ApplyDecline() {
	n.Status = StatusDeclined
	n.Kind = KindDeclined
}
