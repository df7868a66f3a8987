package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/tx_classify_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_MatchesSentinelByCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"validation", apperrors.NewValidationError("bad"), apperrors.ErrValidation},
		{"field", apperrors.NewFieldError("amount", "bad"), apperrors.ErrValidation},
		{"conflict", apperrors.NewConflictError("busy"), apperrors.ErrConflict},
		{"not found", apperrors.NewAppError(404, "missing", nil), apperrors.ErrNotFound},
		{"internal with cause", apperrors.NewAppError(500, "db", errors.New("boom")), apperrors.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.want)
			assert.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.err), tt.want)
		})
	}
}

func TestAppError_KeepsCauseInChain(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewAppError(500, "failed to query", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to query: connection reset", err.Error())

	var appErr *apperrors.AppError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &appErr))
	assert.Equal(t, 500, appErr.Code)
}
