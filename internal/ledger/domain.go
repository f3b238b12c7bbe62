package ledger

import (
	"errors"

	dErrors "hask/pkg/domain-errors"
)

// ToDomainErr translates a gateway failure into the coded taxonomy the
// transport layer maps to HTTP statuses. The original *Error stays reachable
// through the unwrap chain, so callers can still branch on ErrorCode.
func ToDomainErr(err error) error {
	var le *Error
	if !errors.As(err, &le) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "ledger call failed")
	}
	switch le.Code {
	case CodeTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "ledger operation timed out: "+le.Op)
	case CodeAlreadyOptedIn:
		return dErrors.Wrap(err, dErrors.CodeConflict, "account is already opted in")
	case CodeNotFound:
		return dErrors.Wrap(err, dErrors.CodeNotFound, "ledger object not found")
	case CodeRejected:
		return dErrors.Wrap(err, dErrors.CodeInvariantViolation, "ledger rejected the transaction: "+le.Op)
	default:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "ledger unavailable: "+le.Op)
	}
}
