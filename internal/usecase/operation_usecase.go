package usecase

import (
	"context"

	"go.uber.org/zap"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/domain/repository"
)

type OperationUsecase interface {
	Create(ctx context.Context, input *entity.CreateOperationInput) (*entity.CreateOperationResult, error)
	Complete(ctx context.Context, operationID int64) (*entity.OperationStatus, error)
	Cancel(ctx context.Context, operationID int64, message string) (*entity.OperationStatus, error)
	// SetAutomaticCompletion parses endDate with dateparse before forwarding it.
	SetAutomaticCompletion(ctx context.Context, operationID int64, endDate string) (*entity.OperationStatus, error)
	SetManualCompletion(ctx context.Context, operationID int64) (*entity.OperationStatus, error)
	DownloadZip(ctx context.Context, operationID int64) (*entity.OperationZip, error)
}

type operationUsecase struct {
	repo   repository.OperationRepository
	files  repository.FileReferenceCache
	logger *zap.Logger
}

func NewOperationUsecase(repo repository.OperationRepository, files repository.FileReferenceCache, logger *zap.Logger) OperationUsecase {
	return &operationUsecase{
		repo:   repo,
		files:  files,
		logger: logger,
	}
}

func (u *operationUsecase) Create(ctx context.Context, input *entity.CreateOperationInput) (*entity.CreateOperationResult, error) {
	if input == nil {
		return nil, apierror.Argumentf("operation", "request body is required")
	}

	u.logger.Info("Creating operation",
		zap.String("name", input.Name),
		zap.Int("signers_count", len(input.Signers)),
		zap.String("correlation_id", entity.CorrelationIDFrom(ctx)),
	)

	t := &translator{
		files: u.files,
		warn: func(message string) {
			u.logger.Warn(message, zap.String("operation", input.Name))
		},
	}
	req, warnings, err := t.build(ctx, input)
	if err != nil {
		u.logger.Warn("Rejected operation input", zap.Error(err))
		return nil, err
	}

	created, err := u.repo.Create(ctx, req)
	if err != nil {
		u.logger.Error("Failed to create operation", zap.Error(err))
		return nil, err
	}

	u.logger.Info("Successfully created operation",
		zap.Int64("operation_id", created.ID),
		zap.Int("members", len(created.Members)),
		zap.Int("observers", len(created.Observers)),
	)

	return &entity.CreateOperationResult{
		Operation: created,
		Warnings:  warnings,
	}, nil
}

func (u *operationUsecase) Complete(ctx context.Context, operationID int64) (*entity.OperationStatus, error) {
	u.logger.Info("Completing operation", zap.Int64("operation_id", operationID))

	status, err := u.repo.Complete(ctx, operationID)
	if err != nil {
		u.logger.Error("Failed to complete operation", zap.Int64("operation_id", operationID), zap.Error(err))
		return nil, err
	}
	return status, nil
}

func (u *operationUsecase) Cancel(ctx context.Context, operationID int64, message string) (*entity.OperationStatus, error) {
	u.logger.Info("Cancelling operation", zap.Int64("operation_id", operationID))

	status, err := u.repo.Cancel(ctx, operationID, message)
	if err != nil {
		u.logger.Error("Failed to cancel operation", zap.Int64("operation_id", operationID), zap.Error(err))
		return nil, err
	}
	return status, nil
}

func (u *operationUsecase) SetAutomaticCompletion(ctx context.Context, operationID int64, endDate string) (*entity.OperationStatus, error) {
	if endDate == "" {
		return nil, apierror.Argumentf("end_date", "end date is required")
	}
	end, err := parseDate("end_date", endDate)
	if err != nil {
		return nil, err
	}

	u.logger.Info("Setting automatic completion",
		zap.Int64("operation_id", operationID),
		zap.Time("end_date", end),
	)

	status, err := u.repo.SetAutomaticCompletion(ctx, operationID, end)
	if err != nil {
		u.logger.Error("Failed to set automatic completion", zap.Int64("operation_id", operationID), zap.Error(err))
		return nil, err
	}
	return status, nil
}

func (u *operationUsecase) SetManualCompletion(ctx context.Context, operationID int64) (*entity.OperationStatus, error) {
	u.logger.Info("Setting manual completion", zap.Int64("operation_id", operationID))

	status, err := u.repo.SetManualCompletion(ctx, operationID)
	if err != nil {
		u.logger.Error("Failed to set manual completion", zap.Int64("operation_id", operationID), zap.Error(err))
		return nil, err
	}
	return status, nil
}

func (u *operationUsecase) DownloadZip(ctx context.Context, operationID int64) (*entity.OperationZip, error) {
	u.logger.Info("Downloading operation archive", zap.Int64("operation_id", operationID))

	zip, err := u.repo.DownloadZip(ctx, operationID)
	if err != nil {
		u.logger.Error("Failed to download operation archive", zap.Int64("operation_id", operationID), zap.Error(err))
		return nil, err
	}

	u.logger.Info("Successfully downloaded operation archive",
		zap.String("name", zip.Name),
		zap.String("size", zip.HumanReadableSize()),
	)
	return zip, nil
}
