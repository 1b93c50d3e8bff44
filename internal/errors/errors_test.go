package errors_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/brainboost/internal/errors"
)

func TestAppError_Constructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperrors.AppError
		code   string
		status int
		msg    string
	}{
		{"not found", apperrors.NewNotFoundError("report", "abc"), apperrors.ErrCodeNotFound, 404, "NOT_FOUND: report not found: abc"},
		{"validation", apperrors.NewValidationError("user_id", "required"), apperrors.ErrCodeValidation, 400, "VALIDATION_ERROR: validation failed for user_id: required"},
		{"bad request", apperrors.NewBadRequestError("invalid JSON"), apperrors.ErrCodeBadRequest, 400, "BAD_REQUEST: invalid JSON"},
		{"unavailable", apperrors.NewUnavailableError("catalog", nil), apperrors.ErrCodeUnavailable, 503, "SERVICE_UNAVAILABLE: catalog is not available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := apperrors.NewUnavailableError("catalog", context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	internal := apperrors.NewInternalError(fmt.Errorf("db down"))
	assert.Equal(t, "internal server error", internal.Message)
	assert.Contains(t, internal.Error(), "db down")
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("loading report: %w", apperrors.NewNotFoundError("report", 7))

	appErr, ok := apperrors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)

	_, ok = apperrors.As(fmt.Errorf("plain"))
	assert.False(t, ok)
}
