package repository

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/domain/repository"
	"forsign-esign/internal/infrastructure/document"
	"forsign-esign/internal/infrastructure/httpclient"
)

const uploadField = "file"

type documentRepository struct {
	client    httpclient.HTTPClient
	documents document.DocumentService
	logger    *zap.Logger
}

func NewDocumentRepository(client httpclient.HTTPClient, documents document.DocumentService, logger *zap.Logger) repository.DocumentRepository {
	return &documentRepository{
		client:    client,
		documents: documents,
		logger:    logger,
	}
}

func (r *documentRepository) Upload(ctx context.Context, path string) (*entity.DocumentUpload, error) {
	filename, content, err := r.documents.LoadPDF(path)
	if err != nil {
		return nil, err
	}
	return r.upload(ctx, filename, content)
}

func (r *documentRepository) UploadContent(ctx context.Context, filename string, content []byte) (*entity.DocumentUpload, error) {
	if err := r.documents.ValidatePDF(filename, content); err != nil {
		return nil, err
	}
	return r.upload(ctx, filename, content)
}

func (r *documentRepository) upload(ctx context.Context, filename string, content []byte) (*entity.DocumentUpload, error) {
	files := map[string]httpclient.FileUpload{
		uploadField: {Filename: filename, Content: content},
	}

	ctx, correlationID := httpclient.EnsureCorrelationID(ctx)
	var response entity.DocumentUpload
	if err := r.client.PostMultipart(ctx, nil, "/api/v2/document/upload", nil, files, &response); err != nil {
		return nil, fmt.Errorf("failed to upload document %s: %w", filename, err)
	}
	if response.Data.ID == "" {
		return nil, apierror.NewInvalidResponse(http.StatusOK, "data.id", correlationID)
	}

	r.logger.Info("Document uploaded",
		zap.String("file_id", response.Data.ID),
		zap.String("filename", response.Data.FileName),
		zap.Int("total_pages", response.Data.TotalPages),
	)
	return &response, nil
}
