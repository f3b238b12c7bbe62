// Package asset drives tokenization of a profile into a fungible ledger
// asset: one issuance per profile, the issuer holding every administrative
// role over their own token.
package asset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hask/internal/ledger"
	"hask/internal/platform/metrics"
	"hask/internal/profile"
	dErrors "hask/pkg/domain-errors"
)

// Spec describes the asset to mint for a profile. Zero Total defaults to a
// single indivisible unit.
type Spec struct {
	AssetName string
	UnitName  string
	Total     uint64
	Decimals  uint32
	URL       string
	Note      string // overrides the derived identity note when set
}

// Result is a completed issuance: the updated profile plus the ledger
// confirmation handles.
type Result struct {
	Profile *profile.Profile
	AssetID uint64
	TxID    string
}

// Issuer tokenizes profiles through the ledger gateway.
type Issuer struct {
	profiles   *profile.Registry
	gateway    ledger.Gateway
	defaultURL string
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewIssuer(profiles *profile.Registry, gateway ledger.Gateway, defaultURL string, logger *slog.Logger, m *metrics.Metrics) *Issuer {
	return &Issuer{profiles: profiles, gateway: gateway, defaultURL: defaultURL, logger: logger, metrics: m}
}

// Tokenize mints the profile asset and commits the asset id exactly once.
// The profile must already have a bound ledger account. Asset creation is
// not retried locally: without idempotency keys at the gateway a retry could
// mint a second asset.
func (i *Issuer) Tokenize(ctx context.Context, username string, spec Spec) (Result, error) {
	if strings.TrimSpace(spec.AssetName) == "" || strings.TrimSpace(spec.UnitName) == "" {
		return Result{}, dErrors.New(dErrors.CodeBadRequest, "asset name and unit name are required")
	}
	if spec.Total == 0 {
		spec.Total = 1
	}

	p, err := i.profiles.Lookup(ctx, username)
	if err != nil {
		return Result{}, err
	}
	if !p.Provisioned() {
		return Result{}, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("user %q has no ledger account; provision one first", username))
	}
	if p.Tokenized() {
		return Result{}, dErrors.New(dErrors.CodeConflict, "profile is already tokenized")
	}

	note := spec.Note
	if note == "" {
		note = identityNote(p)
	}
	url := spec.URL
	if url == "" {
		url = i.defaultURL
	}

	// The issuing profile keeps full control over its own token: sender
	// and every administrative role point at the same address.
	params := ledger.CreateAssetParams{
		Sender:   p.Address,
		Name:     spec.AssetName,
		UnitName: spec.UnitName,
		Total:    spec.Total,
		Decimals: spec.Decimals,
		Roles: ledger.Roles{
			Manager:  p.Address,
			Reserve:  p.Address,
			Freeze:   p.Address,
			Clawback: p.Address,
		},
		URL:  url,
		Note: []byte(note),
	}

	start := time.Now()
	res, err := i.gateway.CreateAsset(ctx, params)
	i.metrics.ObserveLedgerCall("create_asset", time.Since(start).Seconds())
	if err != nil {
		return Result{}, ledger.ToDomainErr(err)
	}

	updated, err := i.profiles.CommitAssetID(ctx, username, res.AssetID)
	if err != nil {
		// A concurrent tokenization won the commit. The asset minted
		// here is orphaned on the ledger; surface the conflict rather
		// than overwrite the stored id.
		i.logger.WarnContext(ctx, "asset id commit lost, issuance orphaned",
			"username", username,
			"asset_id", res.AssetID,
			"tx_id", res.TxID,
		)
		return Result{}, err
	}

	if i.metrics != nil {
		i.metrics.ProfilesTokenized.Inc()
	}
	i.logger.InfoContext(ctx, "profile tokenized",
		"username", username,
		"asset_id", res.AssetID,
		"tx_id", res.TxID,
	)
	return Result{Profile: updated, AssetID: res.AssetID, TxID: res.TxID}, nil
}

func identityNote(p *profile.Profile) string {
	return fmt.Sprintf("User:%s|Name:%s|Handle:%s|LinkedIn:%s|GitHub:%s|City:%s|Country:%s",
		p.Username, p.Name, p.Handle, p.LinkedIn, p.GitHub, p.City, p.Country)
}
