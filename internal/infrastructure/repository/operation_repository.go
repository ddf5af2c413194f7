package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/domain/repository"
	"forsign-esign/internal/infrastructure/httpclient"
)

// operationLanguage is sent as Content-Language on operation creation.
const operationLanguage = "pt-BR"

const minCompletionLead = time.Hour

type operationRepository struct {
	client httpclient.HTTPClient
	logger *zap.Logger
	now    func() time.Time
}

func NewOperationRepository(client httpclient.HTTPClient, logger *zap.Logger) repository.OperationRepository {
	return &operationRepository{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func (r *operationRepository) Create(ctx context.Context, req *entity.OperationRequest) (*entity.OperationCreated, error) {
	if req == nil {
		return nil, apierror.Argumentf("operation", "operation request cannot be nil")
	}
	ctx, correlationID := httpclient.EnsureCorrelationID(ctx)

	var response struct {
		Data *struct {
			Data *entity.OperationCreated `json:"data"`
		} `json:"data"`
	}

	reqCtx := (&httpclient.RequestContext{}).WithHeader("Content-Language", operationLanguage)
	if err := r.client.Post(ctx, reqCtx, "/api/v1/operation", req, &response); err != nil {
		return nil, fmt.Errorf("failed to create operation: %w", err)
	}
	if response.Data == nil || response.Data.Data == nil {
		return nil, apierror.NewInvalidResponse(http.StatusOK, "data.data", correlationID)
	}

	created := response.Data.Data
	r.logger.Info("Operation created",
		zap.Int64("operation_id", created.ID),
		zap.String("name", created.Name),
		zap.Int("members", len(created.Members)),
	)
	return created, nil
}

func (r *operationRepository) Complete(ctx context.Context, operationID int64) (*entity.OperationStatus, error) {
	if err := apierror.ValidateID("operation_id", operationID); err != nil {
		return nil, err
	}

	var response entity.OperationStatus
	path := fmt.Sprintf("/api/v2/operation/%d/complete", operationID)
	if err := r.client.Post(ctx, nil, path, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to complete operation %d: %w", operationID, err)
	}
	return &response, nil
}

func (r *operationRepository) Cancel(ctx context.Context, operationID int64, message string) (*entity.OperationStatus, error) {
	if err := apierror.ValidateID("operation_id", operationID); err != nil {
		return nil, err
	}
	if err := apierror.Validate("message", message, validation.Required.Error("cancellation message cannot be empty")); err != nil {
		return nil, err
	}

	var response entity.OperationStatus
	path := fmt.Sprintf("/api/v2/operation/%d/cancel", operationID)
	body := map[string]string{"message": message}
	if err := r.client.Post(ctx, nil, path, body, &response); err != nil {
		return nil, fmt.Errorf("failed to cancel operation %d: %w", operationID, err)
	}
	return &response, nil
}

func (r *operationRepository) SetAutomaticCompletion(ctx context.Context, operationID int64, endDate time.Time) (*entity.OperationStatus, error) {
	if err := apierror.ValidateID("operation_id", operationID); err != nil {
		return nil, err
	}
	if !endDate.After(r.now().Add(minCompletionLead)) {
		return nil, apierror.Argumentf("end_date", "end date must be at least one hour in the future")
	}

	var response entity.OperationStatus
	path := fmt.Sprintf("/api/v2/operation/%d/set-automatic-completion", operationID)
	body := map[string]string{"endDate": endDate.Format(time.RFC3339)}
	if err := r.client.Patch(ctx, nil, path, body, &response); err != nil {
		return nil, fmt.Errorf("failed to set automatic completion for operation %d: %w", operationID, err)
	}
	return &response, nil
}

func (r *operationRepository) SetManualCompletion(ctx context.Context, operationID int64) (*entity.OperationStatus, error) {
	if err := apierror.ValidateID("operation_id", operationID); err != nil {
		return nil, err
	}

	var response entity.OperationStatus
	path := fmt.Sprintf("/api/v2/operation/%d/set-manual-completion", operationID)
	if err := r.client.Patch(ctx, nil, path, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to set manual completion for operation %d: %w", operationID, err)
	}
	return &response, nil
}

func (r *operationRepository) DownloadZip(ctx context.Context, operationID int64) (*entity.OperationZip, error) {
	if err := apierror.ValidateID("operation_id", operationID); err != nil {
		return nil, err
	}

	ctx, correlationID := httpclient.EnsureCorrelationID(ctx)
	var response struct {
		Data *entity.OperationZip `json:"data"`
	}
	path := fmt.Sprintf("/api/v1/operation/%d/zip", operationID)
	if err := r.client.Get(ctx, nil, path, &response); err != nil {
		return nil, fmt.Errorf("failed to download operation %d: %w", operationID, err)
	}
	if response.Data == nil {
		return nil, apierror.NewInvalidResponse(http.StatusOK, "data", correlationID)
	}
	return response.Data, nil
}
