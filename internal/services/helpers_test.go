package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/brainboost/internal/catalog"
	apperrors "github.com/vytor/brainboost/internal/errors"
)

var fixedNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func readyHolder(t *testing.T) *catalog.Holder {
	t.Helper()
	pack, err := catalog.DefaultPack()
	require.NoError(t, err)

	h := catalog.NewHolder()
	require.NoError(t, h.Init(func() (*catalog.Catalog, error) { return pack.Catalog(), nil }))
	return h
}

func requireAppError(t *testing.T, err error, status int) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	require.Equal(t, status, appErr.Status)
	return appErr
}
