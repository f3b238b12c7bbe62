// Package ledger defines the boundary to the external ledger network. The
// core never talks to a concrete ledger; it consumes the Gateway interface
// and the adapters behind it keep the core ledger-agnostic.
package ledger

import (
	"context"
	"errors"
	"fmt"
)

// Account is a ledger account handle. Mnemonic is the opaque signing
// capability; it stays behind the gateway boundary and is never exposed in
// API responses.
type Account struct {
	Address  string
	Mnemonic string
}

// Roles names the administrative addresses of an asset.
type Roles struct {
	Manager  string
	Reserve  string
	Freeze   string
	Clawback string
}

// CreateAssetParams describes a fungible asset issuance.
type CreateAssetParams struct {
	Sender   string
	Name     string
	UnitName string
	Total    uint64
	Decimals uint32
	Roles    Roles
	URL      string
	Note     []byte
}

// AssetResult is the confirmation handle for an issuance.
type AssetResult struct {
	AssetID uint64
	TxID    string
}

// TransferParams describes an asset transfer between two accounts.
type TransferParams struct {
	Sender   string
	Receiver string
	AssetID  uint64
	Amount   uint64
	Note     []byte
}

// Gateway is the contract every ledger adapter implements. All calls block
// until the ledger confirms or fails; callers bound them with ctx deadlines.
type Gateway interface {
	// CreateAccount creates and funds an account. Idempotency across calls
	// is the caller's concern; every call mints a fresh account.
	CreateAccount(ctx context.Context, identityHint string, fund uint64) (Account, error)

	// CreateAsset issues a fungible asset and returns its id and the
	// confirmation transaction id.
	CreateAsset(ctx context.Context, p CreateAssetParams) (AssetResult, error)

	// OptIn registers sender as a holder of the asset. An account that is
	// already opted in fails with CodeAlreadyOptedIn so callers can treat
	// the condition structurally instead of matching message text.
	OptIn(ctx context.Context, sender string, assetID uint64) (string, error)

	// Transfer moves asset units and returns the transaction id.
	Transfer(ctx context.Context, p TransferParams) (string, error)

	// TransactionConfirmed reports best-effort finality. Lookup failures
	// read as unconfirmed, not as errors.
	TransactionConfirmed(ctx context.Context, txID string) bool
}

// ErrorCode normalizes ledger failure classes across adapters.
type ErrorCode string

const (
	// CodeUnavailable indicates the ledger could not be reached.
	CodeUnavailable ErrorCode = "unavailable"

	// CodeRejected indicates the ledger refused the transaction
	// (unknown account, insufficient holdings, missing opt-in).
	CodeRejected ErrorCode = "rejected"

	// CodeAlreadyOptedIn indicates the opt-in was already satisfied.
	CodeAlreadyOptedIn ErrorCode = "already_opted_in"

	// CodeNotFound indicates the referenced asset or account does not
	// exist on the ledger.
	CodeNotFound ErrorCode = "not_found"

	// CodeTimeout indicates the call exceeded its deadline before the
	// ledger confirmed. Local state must be left untouched.
	CodeTimeout ErrorCode = "timeout"
)

// Error wraps a ledger failure with the operation that produced it.
type Error struct {
	Op   string
	Code ErrorCode
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ledger %s [%s]: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("ledger %s [%s]", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a ledger error for the given operation.
func NewError(op string, code ErrorCode, err error) *Error {
	return &Error{Op: op, Code: code, Err: err}
}

// WrapContextErr maps a context cancellation or deadline into a timeout
// ledger error; other errors pass through unchanged.
func WrapContextErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewError(op, CodeTimeout, err)
	}
	return err
}

// HasCode reports whether err is a ledger error carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	var le *Error
	return errors.As(err, &le) && le.Code == code
}
