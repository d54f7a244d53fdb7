package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablegate/pkg/apperror"
)

// assertErr is a sentinel used by tests that only care that a
// collaborator error propagates, not its exact message.
var assertErr = errors.New("boom")

// mockTx stands in for a pgx.Tx in unit tests — every repo call inside
// a service method is mocked separately, so Commit/Rollback are the
// only methods ever invoked on the transaction itself.
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}
