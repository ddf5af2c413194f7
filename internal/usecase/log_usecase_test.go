package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
)

func TestLogUsecase(t *testing.T) {
	repo := &mockAPILogRepository{}
	u := NewLogUsecase(repo, zap.NewNop())
	ctx := context.Background()

	logs := []entity.APILog{{ID: 1, CorrelationID: "corr-1", StatusCode: 422}}
	repo.On("FindAll", ctx, 20).Return(logs, nil)
	repo.On("FindByCorrelationID", ctx, "corr-1").Return(logs, nil)

	got, err := u.Recent(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, logs, got)
	assert.True(t, got[0].Failed())

	got, err = u.ByCorrelationID(ctx, "corr-1")
	require.NoError(t, err)
	assert.Equal(t, logs, got)

	_, err = u.ByCorrelationID(ctx, "")
	assert.ErrorIs(t, err, apierror.ErrInvalidArgument)
	repo.AssertNumberOfCalls(t, "FindByCorrelationID", 1)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLogUsecase_AuditDisabled(t *testing.T) {
	u := NewLogUsecase(nil, zap.NewNop())

	_, err := u.Recent(context.Background(), 10)
	assert.ErrorIs(t, err, ErrAuditDisabled)

	_, err = u.ByCorrelationID(context.Background(), "corr-1")
	assert.ErrorIs(t, err, ErrAuditDisabled)
}
