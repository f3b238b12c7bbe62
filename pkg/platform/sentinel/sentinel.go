// Package sentinel holds the sentinel errors stores return for factual
// states about resources. Services translate these into coded domain errors
// (pkg/domain-errors) with flow-specific messages.
//
// These represent facts, not validation failures:
//   - ErrNotFound: profile, address, or notification does not exist
//   - ErrConflict: a one-time field (address, asset id) is already set
//   - ErrAlreadyUsed: a unique value (handle) is held by someone else
//   - ErrInvalidState: entity in wrong state for the operation (e.g. a
//     notification that is no longer pending)
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
package sentinel

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
)
