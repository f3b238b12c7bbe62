package domainerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "hask/pkg/domain-errors"
)

func TestHasCode(t *testing.T) {
	t.Run("direct code", func(t *testing.T) {
		err := dErrors.New(dErrors.CodeNotFound, "user missing")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		assert.False(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("wrapped code is found through the chain", func(t *testing.T) {
		inner := dErrors.New(dErrors.CodeInvariantViolation, "already bound")
		outer := dErrors.Wrap(inner, dErrors.CodeInternal, "bind failed")
		assert.True(t, dErrors.HasCode(outer, dErrors.CodeInternal))
		assert.True(t, dErrors.HasCode(outer, dErrors.CodeInvariantViolation))
	})

	t.Run("fmt wrapping keeps the code reachable", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", dErrors.New(dErrors.CodeConflict, "handle taken"))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("plain error has no code", func(t *testing.T) {
		assert.False(t, dErrors.HasCode(errors.New("boom"), dErrors.CodeInternal))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, dErrors.CodeBadRequest, dErrors.CodeOf(dErrors.New(dErrors.CodeBadRequest, "bad")))
	assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(errors.New("uncoded")))

	wrapped := dErrors.Wrap(dErrors.New(dErrors.CodeNotFound, "inner"), dErrors.CodeConflict, "outer")
	assert.Equal(t, dErrors.CodeConflict, dErrors.CodeOf(wrapped))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "handle taken", dErrors.MessageOf(dErrors.New(dErrors.CodeConflict, "handle taken")))
	assert.Empty(t, dErrors.MessageOf(errors.New("uncoded")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := dErrors.Wrap(cause, dErrors.CodeUnavailable, "gateway call failed")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}
