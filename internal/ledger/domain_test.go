package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "hask/pkg/domain-errors"
)

func TestToDomainErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want dErrors.Code
	}{
		{"timeout", NewError("transfer", CodeTimeout, context.DeadlineExceeded), dErrors.CodeTimeout},
		{"already opted in", NewError("opt_in", CodeAlreadyOptedIn, errors.New("held")), dErrors.CodeConflict},
		{"not found", NewError("opt_in", CodeNotFound, errors.New("no asset")), dErrors.CodeNotFound},
		{"rejected", NewError("transfer", CodeRejected, errors.New("no balance")), dErrors.CodeInvariantViolation},
		{"unreachable", NewError("create_asset", CodeUnavailable, errors.New("down")), dErrors.CodeUnavailable},
		{"uncoded error", errors.New("dial tcp: refused"), dErrors.CodeUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainErr(tt.err)
			assert.Equal(t, tt.want, dErrors.CodeOf(got))
		})
	}

	t.Run("ledger error stays in the unwrap chain", func(t *testing.T) {
		le := NewError("opt_in", CodeAlreadyOptedIn, errors.New("held"))
		got := ToDomainErr(le)
		assert.True(t, HasCode(got, CodeAlreadyOptedIn))
	})
}

func TestWrapContextErr(t *testing.T) {
	assert.True(t, HasCode(WrapContextErr("op", context.Canceled), CodeTimeout))
	assert.True(t, HasCode(WrapContextErr("op", context.DeadlineExceeded), CodeTimeout))

	plain := errors.New("boom")
	assert.Equal(t, plain, WrapContextErr("op", plain))
}
