package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"hask/internal/platform/metrics"
	"hask/internal/worth"
	dErrors "hask/pkg/domain-errors"
	"hask/pkg/platform/sentinel"
	"hask/pkg/requestcontext"
)

// Registry orchestrates the profile lifecycle: registration, lookups, and
// the one-time address and asset-id commits the workflow flows drive.
type Registry struct {
	store     Store
	estimator worth.Estimator
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewRegistry(store Store, estimator worth.Estimator, logger *slog.Logger, m *metrics.Metrics) *Registry {
	if estimator == nil {
		estimator = worth.RegistrationDefault()
	}
	return &Registry{store: store, estimator: estimator, logger: logger, metrics: m}
}

// RegisterParams carries the caller-supplied profile attributes.
type RegisterParams struct {
	Username string
	Name     string
	Handle   string
	Bio      string
	LinkedIn string
	GitHub   string
	City     string
	Country  string
	Avatar   string
	Banner   string
}

// Register creates a profile with no ledger address. Registering an existing
// username is a no-op that returns the stored profile unchanged; a handle
// held by a different username is a conflict.
func (r *Registry) Register(ctx context.Context, params RegisterParams) (*Profile, error) {
	if strings.TrimSpace(params.Username) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "username is required")
	}
	if strings.TrimSpace(params.Handle) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "handle is required")
	}

	est := r.estimator.Estimate(ctx, estimationContext(params))
	candidate := &Profile{
		Username:   params.Username,
		Name:       params.Name,
		Handle:     params.Handle,
		Bio:        params.Bio,
		LinkedIn:   params.LinkedIn,
		GitHub:     params.GitHub,
		City:       params.City,
		Country:    params.Country,
		Avatar:     params.Avatar,
		Banner:     params.Banner,
		Valuation:  est.Worth,
		Confidence: est.Confidence,
		Coverage:   "LinkedIn",
		CreatedAt:  requestcontext.Now(ctx).UTC(),
	}

	stored, created, err := r.store.CreateIfHandleAvailable(ctx, candidate)
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "handle already taken")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register profile")
	}
	if created {
		if r.metrics != nil {
			r.metrics.ProfilesRegistered.Inc()
		}
		r.logger.InfoContext(ctx, "profile registered",
			"username", stored.Username,
			"handle", stored.Handle,
		)
	}
	return stored, nil
}

// Lookup returns the profile for username.
func (r *Registry) Lookup(ctx context.Context, username string) (*Profile, error) {
	p, err := r.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("user %q not found", username))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "profile lookup failed")
	}
	return p, nil
}

// ReverseLookup resolves a ledger address back to its username.
func (r *Registry) ReverseLookup(ctx context.Context, address string) (string, error) {
	p, err := r.store.FindByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("address %q not found", address))
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "address lookup failed")
	}
	return p.Username, nil
}

// List returns every profile in registration order.
func (r *Registry) List(ctx context.Context) ([]*Profile, error) {
	profiles, err := r.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "profile listing failed")
	}
	return profiles, nil
}

// BindAddress commits a provisioned ledger address onto the profile. A
// rebind of the same address is a no-op; a different address is a conflict
// because addresses are stable for the profile's lifetime.
func (r *Registry) BindAddress(ctx context.Context, username, address string, funded uint64) (*Profile, error) {
	p, err := r.store.Execute(ctx, username,
		func(p *Profile) error { return p.CanBindAddress(address) },
		func(p *Profile) { p.ApplyAddress(address, funded) },
	)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("user %q not found", username))
		case dErrors.HasCode(err, dErrors.CodeInvariantViolation):
			return nil, dErrors.New(dErrors.CodeConflict, "profile address is already bound")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "address bind failed")
		}
	}
	return p, nil
}

// CommitAssetID records the tokenized asset id exactly once. A second commit
// is a conflict; the issuance is never silently overwritten.
func (r *Registry) CommitAssetID(ctx context.Context, username string, assetID uint64) (*Profile, error) {
	p, err := r.store.Execute(ctx, username,
		func(p *Profile) error { return p.CanSetAssetID() },
		func(p *Profile) { p.ApplyAssetID(assetID) },
	)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("user %q not found", username))
		case dErrors.HasCode(err, dErrors.CodeInvariantViolation):
			return nil, dErrors.New(dErrors.CodeConflict, "profile is already tokenized")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "asset id commit failed")
		}
	}
	return p, nil
}

// SuggestHandle derives a free handle from a display name, suffixing until
// it no longer collides with a registered one.
func (r *Registry) SuggestHandle(ctx context.Context, name string) (string, error) {
	base := normalizeHandle(name)
	if base == "@" {
		base = "@user"
	}
	handle := base
	for suffix := 1; ; suffix++ {
		taken, err := r.store.HandleExists(ctx, handle)
		if err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "handle suggestion failed")
		}
		if !taken {
			return handle, nil
		}
		handle = fmt.Sprintf("%s_%d", base, suffix)
	}
}

func normalizeHandle(name string) string {
	var b strings.Builder
	b.WriteByte('@')
	for _, c := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
			b.WriteRune(c)
		case c == ' ':
			b.WriteByte('_')
		}
	}
	return b.String()
}

func estimationContext(p RegisterParams) string {
	return fmt.Sprintf("Name:%s|Bio:%s|LinkedIn:%s|GitHub:%s|City:%s|Country:%s",
		p.Name, p.Bio, p.LinkedIn, p.GitHub, p.City, p.Country)
}
