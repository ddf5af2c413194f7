package usecase

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/domain/repository"
)

// ErrAuditDisabled is returned by LogUsecase when no database is configured.
var ErrAuditDisabled = errors.New("API audit log is disabled")

type LogUsecase interface {
	Recent(ctx context.Context, limit int) ([]entity.APILog, error)
	ByCorrelationID(ctx context.Context, correlationID string) ([]entity.APILog, error)
}

type logUsecase struct {
	repo   repository.APILogRepository
	logger *zap.Logger
}

// NewLogUsecase accepts a nil repository when the database is disabled.
func NewLogUsecase(repo repository.APILogRepository, logger *zap.Logger) LogUsecase {
	return &logUsecase{
		repo:   repo,
		logger: logger,
	}
}

func (u *logUsecase) Recent(ctx context.Context, limit int) ([]entity.APILog, error) {
	if u.repo == nil {
		return nil, ErrAuditDisabled
	}
	logs, err := u.repo.FindAll(ctx, limit)
	if err != nil {
		u.logger.Error("Failed to get API logs", zap.Error(err))
		return nil, err
	}
	return logs, nil
}

func (u *logUsecase) ByCorrelationID(ctx context.Context, correlationID string) ([]entity.APILog, error) {
	if err := apierror.Validate("correlation_id", correlationID, validation.Required.Error("correlation_id is required")); err != nil {
		return nil, err
	}
	if u.repo == nil {
		return nil, ErrAuditDisabled
	}
	logs, err := u.repo.FindByCorrelationID(ctx, correlationID)
	if err != nil {
		u.logger.Error("Failed to search API logs",
			zap.String("correlation_id", correlationID),
			zap.Error(err),
		)
		return nil, err
	}
	return logs, nil
}
