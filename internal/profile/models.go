package profile

import (
	"fmt"
	"time"

	dErrors "hask/pkg/domain-errors"
)

// Profile is the aggregate root for a registered identity.
//
// Invariants:
//   - Handle is globally unique across all profiles
//   - Address transitions empty → set at most once and is then stable
//   - AssetID transitions 0 → set exactly once (one issuance per profile)
type Profile struct {
	Username   string    `json:"username"`
	Address    string    `json:"address"`
	Name       string    `json:"name"`
	Handle     string    `json:"handle"`
	Bio        string    `json:"bio"`
	LinkedIn   string    `json:"linkedin"`
	GitHub     string    `json:"github"`
	City       string    `json:"city"`
	Country    string    `json:"country"`
	Avatar     string    `json:"avatar"`
	Banner     string    `json:"banner"`
	Valuation  int64     `json:"valuation"`
	Confidence int       `json:"confidence"`
	Balance    uint64    `json:"balance"`
	Coverage   string    `json:"coverage"`
	AssetID    uint64    `json:"asset_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Provisioned reports whether the profile has a bound ledger account.
func (p *Profile) Provisioned() bool {
	return p.Address != ""
}

// Tokenized reports whether the profile has been issued as a ledger asset.
func (p *Profile) Tokenized() bool {
	return p.AssetID != 0
}

// CanBindAddress checks the one-time address lifecycle. Rebinding the same
// address is a no-op; a different address is a conflict.
// Use with ApplyAddress in Execute callbacks.
func (p *Profile) CanBindAddress(address string) error {
	if p.Address != "" && p.Address != address {
		return dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("profile %q already has a bound address", p.Username))
	}
	return nil
}

// ApplyAddress binds the ledger address and records the funded watermark as
// the cached balance. Call CanBindAddress first.
func (p *Profile) ApplyAddress(address string, funded uint64) {
	p.Address = address
	p.Balance = funded
}

// CanSetAssetID checks the set-exactly-once asset id lifecycle.
func (p *Profile) CanSetAssetID() error {
	if p.AssetID != 0 {
		return dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("profile %q is already tokenized as asset %d", p.Username, p.AssetID))
	}
	return nil
}

// ApplyAssetID records the tokenized asset id. Call CanSetAssetID first.
func (p *Profile) ApplyAssetID(assetID uint64) {
	p.AssetID = assetID
}

func (p *Profile) clone() *Profile {
	c := *p
	return &c
}
