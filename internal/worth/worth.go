// Package worth wraps the external market-valuation helper. It is a
// stateless request/response utility with a static fallback; it carries no
// workflow state and never fails the caller.
package worth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Estimate is a market-valuation guess for a profile.
type Estimate struct {
	Worth      int64    `json:"worth"`
	Confidence int      `json:"confidence"`
	Factors    []string `json:"factors,omitempty"`
}

// Estimator produces an Estimate from free-form profile context. It never
// returns an error; implementations fall back to a default estimate.
type Estimator interface {
	Estimate(ctx context.Context, profileContext string) Estimate
}

// Static always returns the same estimate. Used both as the registration
// default and as the remote estimator's fallback.
type Static struct {
	Value Estimate
}

func (s Static) Estimate(context.Context, string) Estimate {
	return s.Value
}

// RegistrationDefault is the estimate assigned to freshly registered
// profiles when no remote estimator is configured.
func RegistrationDefault() Static {
	return Static{Value: Estimate{Worth: 250000, Confidence: 70}}
}

// Remote calls an HTTP estimation endpoint. Any failure, malformed reply, or
// timeout degrades to the fallback estimate.
type Remote struct {
	url      string
	client   *http.Client
	fallback Estimate
	logger   *slog.Logger
}

func NewRemote(url string, timeout time.Duration, logger *slog.Logger) *Remote {
	return &Remote{
		url:      url,
		client:   &http.Client{Timeout: timeout},
		fallback: Estimate{Worth: 10000, Confidence: 50, Factors: []string{"fallback estimation"}},
		logger:   logger,
	}
}

func (r *Remote) Estimate(ctx context.Context, profileContext string) Estimate {
	body, err := json.Marshal(map[string]string{"context": profileContext})
	if err != nil {
		return r.fallback
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return r.fallback
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.degrade(ctx, err)
		return r.fallback
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		r.degrade(ctx, fmt.Errorf("estimator returned status %d", resp.StatusCode))
		return r.fallback
	}

	var est Estimate
	if err := json.NewDecoder(resp.Body).Decode(&est); err != nil {
		r.degrade(ctx, err)
		return r.fallback
	}
	if est.Worth <= 0 || est.Confidence < 0 || est.Confidence > 100 {
		r.degrade(ctx, fmt.Errorf("estimator returned out-of-range values"))
		return r.fallback
	}
	return est
}

func (r *Remote) degrade(ctx context.Context, err error) {
	if r.logger != nil {
		r.logger.WarnContext(ctx, "worth estimation degraded to fallback", "error", err)
	}
}
