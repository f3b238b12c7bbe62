// Package invest composes the profile registry, asset issuer, notification
// ledger, and ledger gateway into the four workflow flows: provision an
// account, tokenize a profile, request an investment, and decide on one.
//
// Every flow checks local preconditions before touching the ledger, calls
// the gateway without holding any store lock, and commits results through
// the stores' atomic validate-then-mutate operations afterwards. A timed-out
// or failed ledger call therefore leaves local state exactly as it was.
package invest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"hask/internal/asset"
	"hask/internal/ledger"
	"hask/internal/notification"
	"hask/internal/platform/metrics"
	"hask/internal/profile"
	dErrors "hask/pkg/domain-errors"
	"hask/pkg/platform/audit"
)

const defaultHeadline = "Builder • AI + Automation"

// Config carries the workflow-level settings.
type Config struct {
	// ExplorerBase prefixes the human-followable transaction and asset
	// links included in responses.
	ExplorerBase string

	// DefaultFund is the funding watermark applied when a provisioning
	// request does not name an amount.
	DefaultFund uint64
}

// Service is the workflow orchestrator.
type Service struct {
	profiles      *profile.Registry
	issuer        *asset.Issuer
	notifications *notification.Ledger
	gateway       ledger.Gateway
	auditor       *audit.Publisher
	metrics       *metrics.Metrics
	logger        *slog.Logger
	tracer        trace.Tracer
	cfg           Config
}

func NewService(
	profiles *profile.Registry,
	issuer *asset.Issuer,
	notifications *notification.Ledger,
	gateway ledger.Gateway,
	auditor *audit.Publisher,
	logger *slog.Logger,
	m *metrics.Metrics,
	cfg Config,
) *Service {
	return &Service{
		profiles:      profiles,
		issuer:        issuer,
		notifications: notifications,
		gateway:       gateway,
		auditor:       auditor,
		metrics:       m,
		logger:        logger,
		tracer:        otel.Tracer("hask/invest"),
		cfg:           cfg,
	}
}

// TxURL builds the explorer link for a transaction id.
func (s *Service) TxURL(txID string) string {
	return fmt.Sprintf("%s/transaction/%s", s.cfg.ExplorerBase, txID)
}

// AssetURL builds the explorer link for an asset id.
func (s *Service) AssetURL(assetID uint64) string {
	return fmt.Sprintf("%s/asset/%d", s.cfg.ExplorerBase, assetID)
}

// ProvisionResult reports the account backing a profile. Funded is false
// when the profile was already provisioned: re-requesting is a read, not a
// second funding side effect.
type ProvisionResult struct {
	Username string
	Address  string
	Funded   bool
	Balance  uint64
}

// ProvisionAccount ensures the profile has a funded ledger account. The
// operation is idempotent: an already-bound address is returned unchanged.
func (s *Service) ProvisionAccount(ctx context.Context, username string, fund uint64) (ProvisionResult, error) {
	ctx, span := s.tracer.Start(ctx, "invest.ProvisionAccount")
	defer span.End()

	if fund == 0 {
		fund = s.cfg.DefaultFund
	}

	p, err := s.profiles.Lookup(ctx, username)
	if err != nil {
		return ProvisionResult{}, err
	}
	if p.Provisioned() {
		return ProvisionResult{Username: username, Address: p.Address, Funded: false, Balance: p.Balance}, nil
	}

	start := time.Now()
	acct, err := s.gateway.CreateAccount(ctx, username, fund)
	s.metrics.ObserveLedgerCall("create_account", time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return ProvisionResult{}, ledger.ToDomainErr(err)
	}

	updated, err := s.profiles.BindAddress(ctx, username, acct.Address, fund)
	if err != nil {
		// A concurrent provisioning bound another address first; that
		// account wins and this one is abandoned on the ledger.
		span.RecordError(err)
		return ProvisionResult{}, err
	}

	if s.metrics != nil {
		s.metrics.AccountsProvisioned.Inc()
	}
	s.auditor.Emit(ctx, audit.Event{
		Action:  audit.ActionAccountProvisioned,
		Actor:   username,
		Amount:  fund,
	})
	s.logger.InfoContext(ctx, "account provisioned",
		"username", username,
		"address", updated.Address,
		"funded", fund,
	)
	return ProvisionResult{Username: username, Address: updated.Address, Funded: true, Balance: updated.Balance}, nil
}

// DisplayPayload is the public rendering of a tokenized profile.
type DisplayPayload struct {
	Name       string `json:"name"`
	Headline   string `json:"headline"`
	Region     string `json:"region"`
	Handle     string `json:"handle"`
	Bio        string `json:"bio"`
	Avatar     string `json:"avatar"`
	Banner     string `json:"banner"`
	Valuation  int64  `json:"valuation"`
	Confidence int    `json:"confidence"`
	Balance    uint64 `json:"balance"`
	Coverage   string `json:"coverage"`
	Address    string `json:"address"`
	AssetID    uint64 `json:"assetId"`
	AssetURL   string `json:"assetUrl"`
}

// TokenizeResult is the tokenization flow's success payload.
type TokenizeResult struct {
	Address string
	AssetID uint64
	TxID    string
	Me      DisplayPayload
}

// TokenizeProfile mints the profile asset and composes the public display
// payload for the caller to render. Notification state is untouched.
func (s *Service) TokenizeProfile(ctx context.Context, username string, spec asset.Spec) (TokenizeResult, error) {
	ctx, span := s.tracer.Start(ctx, "invest.TokenizeProfile")
	defer span.End()

	res, err := s.issuer.Tokenize(ctx, username, spec)
	if err != nil {
		span.RecordError(err)
		return TokenizeResult{}, err
	}

	p := res.Profile
	s.auditor.Emit(ctx, audit.Event{
		Action:  audit.ActionProfileTokenized,
		Actor:   username,
		AssetID: res.AssetID,
		TxID:    res.TxID,
	})
	return TokenizeResult{
		Address: p.Address,
		AssetID: res.AssetID,
		TxID:    res.TxID,
		Me: DisplayPayload{
			Name:       p.Name,
			Headline:   defaultHeadline,
			Region:     p.Country,
			Handle:     p.Handle,
			Bio:        p.Bio,
			Avatar:     p.Avatar,
			Banner:     p.Banner,
			Valuation:  p.Valuation,
			Confidence: p.Confidence,
			Balance:    p.Balance,
			Coverage:   p.Coverage,
			Address:    p.Address,
			AssetID:    res.AssetID,
			AssetURL:   s.AssetURL(res.AssetID),
		},
	}, nil
}

// RequestParams describes an investment request.
type RequestParams struct {
	Requester string
	Recipient string
	AssetID   uint64
	Amount    int64
}

// RequestInvestment opts the requester into the asset and files a pending
// notification for the recipient. The requester must already be provisioned;
// a request path performing silent account creation would be a surprising
// side effect, so none happens here.
func (s *Service) RequestInvestment(ctx context.Context, params RequestParams) (notification.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "invest.RequestInvestment")
	defer span.End()

	if params.Amount <= 0 {
		return notification.Notification{}, dErrors.New(dErrors.CodeBadRequest, "amount must be a positive integer")
	}
	if params.AssetID == 0 {
		return notification.Notification{}, dErrors.New(dErrors.CodeBadRequest, "asset id is required")
	}

	requester, err := s.profiles.Lookup(ctx, params.Requester)
	if err != nil {
		return notification.Notification{}, err
	}
	recipient, err := s.profiles.Lookup(ctx, params.Recipient)
	if err != nil {
		return notification.Notification{}, err
	}
	if !requester.Provisioned() {
		return notification.Notification{}, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("user %q has no ledger account; provision one first", params.Requester))
	}

	start := time.Now()
	_, err = s.gateway.OptIn(ctx, requester.Address, params.AssetID)
	s.metrics.ObserveLedgerCall("opt_in", time.Since(start).Seconds())
	if err != nil && !ledger.HasCode(err, ledger.CodeAlreadyOptedIn) {
		// An account that already holds the asset is a satisfied
		// precondition, not a failure; everything else aborts before
		// any notification is filed.
		span.RecordError(err)
		return notification.Notification{}, ledger.ToDomainErr(err)
	}

	filed, err := s.notifications.FileRequest(ctx, requester.Username, recipient.Username, params.AssetID, uint64(params.Amount))
	if err != nil {
		span.RecordError(err)
		return notification.Notification{}, err
	}

	if s.metrics != nil {
		s.metrics.InvestRequestsFiled.Inc()
	}
	s.auditor.Emit(ctx, audit.Event{
		Action:  audit.ActionInvestRequested,
		Actor:   requester.Username,
		Subject: recipient.Username,
		AssetID: params.AssetID,
		Amount:  uint64(params.Amount),
	})
	return filed, nil
}

// DecideInvestment resolves a pending request for the recipient. Accepting
// settles by transferring the requested units from the recipient (the asset
// owner) to the requester; declining touches no ledger state. Replays return
// the recorded terminal state with its original settlement transaction.
func (s *Service) DecideInvestment(ctx context.Context, recipient string, notificationID uint64, accept bool) (notification.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "invest.DecideInvestment")
	defer span.End()

	owner, err := s.profiles.Lookup(ctx, recipient)
	if err != nil {
		return notification.Notification{}, err
	}

	settle := func(ctx context.Context, n notification.Notification) (string, error) {
		if !owner.Provisioned() {
			return "", dErrors.New(dErrors.CodeInvariantViolation,
				fmt.Sprintf("user %q has no ledger account", recipient))
		}
		requester, err := s.profiles.Lookup(ctx, n.From)
		if err != nil {
			return "", err
		}
		start := time.Now()
		txID, err := s.gateway.Transfer(ctx, ledger.TransferParams{
			Sender:   owner.Address,
			Receiver: requester.Address,
			AssetID:  n.AssetID,
			Amount:   n.Amount,
			Note:     []byte("Accepted investment"),
		})
		s.metrics.ObserveLedgerCall("transfer", time.Since(start).Seconds())
		if err != nil {
			return "", ledger.ToDomainErr(err)
		}
		return txID, nil
	}

	decided, err := s.notifications.Decide(ctx, recipient, notificationID, accept, settle)
	if err != nil {
		span.RecordError(err)
		return notification.Notification{}, err
	}

	s.metrics.IncDecision(string(decided.Status))
	s.auditor.Emit(ctx, audit.Event{
		Action:  audit.ActionInvestDecided,
		Actor:   recipient,
		Subject: decided.From,
		AssetID: decided.AssetID,
		Amount:  decided.Amount,
		Outcome: string(decided.Status),
		TxID:    decided.TxID,
	})
	return decided, nil
}

// Notifications snapshots the recipient's queue in insertion order.
func (s *Service) Notifications(ctx context.Context, recipient string) ([]notification.Notification, error) {
	if _, err := s.profiles.Lookup(ctx, recipient); err != nil {
		return nil, err
	}
	seq, err := s.notifications.ListFor(ctx, recipient)
	if err != nil {
		return nil, err
	}
	var out []notification.Notification
	for n := range seq {
		out = append(out, n)
	}
	return out, nil
}

// OptIn is the standalone opt-in flow. Unlike the request path it surfaces
// an already-opted-in account as a conflict instead of absorbing it.
func (s *Service) OptIn(ctx context.Context, username string, assetID uint64) (string, error) {
	p, err := s.profiles.Lookup(ctx, username)
	if err != nil {
		return "", err
	}
	if !p.Provisioned() {
		return "", dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("user %q has no ledger account; provision one first", username))
	}
	start := time.Now()
	txID, err := s.gateway.OptIn(ctx, p.Address, assetID)
	s.metrics.ObserveLedgerCall("opt_in", time.Since(start).Seconds())
	if err != nil {
		return "", ledger.ToDomainErr(err)
	}
	return txID, nil
}

// TransferParams describes a direct transfer between two profiles.
type TransferParams struct {
	Sender   string
	Receiver string
	AssetID  uint64
	Amount   int64
}

// Transfer is the standalone transfer flow between two provisioned users.
func (s *Service) Transfer(ctx context.Context, params TransferParams) (string, error) {
	if params.Amount <= 0 {
		return "", dErrors.New(dErrors.CodeBadRequest, "amount must be a positive integer")
	}
	sender, err := s.profiles.Lookup(ctx, params.Sender)
	if err != nil {
		return "", err
	}
	receiver, err := s.profiles.Lookup(ctx, params.Receiver)
	if err != nil {
		return "", err
	}
	if !sender.Provisioned() || !receiver.Provisioned() {
		return "", dErrors.New(dErrors.CodeInvariantViolation, "both users need a ledger account")
	}

	start := time.Now()
	txID, err := s.gateway.Transfer(ctx, ledger.TransferParams{
		Sender:   sender.Address,
		Receiver: receiver.Address,
		AssetID:  params.AssetID,
		Amount:   uint64(params.Amount),
		Note:     []byte("hask transfer"),
	})
	s.metrics.ObserveLedgerCall("transfer", time.Since(start).Seconds())
	if err != nil {
		return "", ledger.ToDomainErr(err)
	}
	return txID, nil
}

// Confirmed reports best-effort transaction finality; lookup failures read
// as unconfirmed.
func (s *Service) Confirmed(ctx context.Context, txID string) bool {
	return s.gateway.TransactionConfirmed(ctx, txID)
}
