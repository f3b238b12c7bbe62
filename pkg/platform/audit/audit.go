// Package audit streams workflow lifecycle events to Kafka. Publishing is
// fail-open: a broker outage degrades to a logged warning and never fails
// the business operation.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"hask/pkg/requestcontext"
)

// Actions emitted by the workflow flows.
const (
	ActionAccountProvisioned = "account_provisioned"
	ActionProfileTokenized   = "profile_tokenized"
	ActionInvestRequested    = "invest_requested"
	ActionInvestDecided      = "invest_decided"
)

// Event is one audit record. Actor is the username driving the flow;
// Subject the counterparty, when there is one.
type Event struct {
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Subject   string    `json:"subject,omitempty"`
	AssetID   uint64    `json:"asset_id,omitempty"`
	Amount    uint64    `json:"amount,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	TxID      string    `json:"tx_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher produces events to one topic. A nil Publisher is valid and
// drops every event, so wiring stays unconditional in the services.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewPublisher connects to the brokers. Empty brokers disable publishing by
// returning a nil Publisher.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{client: client, topic: topic, logger: logger}, nil
}

// Emit publishes asynchronously, keyed by actor so one user's events stay
// ordered within a partition.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "audit event marshal failed", "action", event.Action, "error", err)
		return
	}
	record := &kgo.Record{Topic: p.topic, Key: []byte(event.Actor), Value: value}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Warn("audit event delivery failed", "action", event.Action, "error", err)
		}
	})
}

// Close flushes outstanding records and releases the client.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = p.client.Flush(ctx)
	p.client.Close()
}
