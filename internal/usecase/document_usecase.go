package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"forsign-esign/internal/config"
	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/domain/repository"
	"forsign-esign/internal/infrastructure/httpclient"
)

type DocumentUsecase interface {
	// Upload sends every file to ForSign, at most upload.concurrency at a
	// time, and caches the resulting references. Results keep input order.
	// The first failure cancels the uploads still pending.
	Upload(ctx context.Context, files []httpclient.FileUpload) ([]entity.UploadedDocument, error)
	ListReferences(ctx context.Context) ([]entity.FileReference, error)
	ClearReferences(ctx context.Context) error
}

type documentUsecase struct {
	repo        repository.DocumentRepository
	files       repository.FileReferenceCache
	concurrency int
	logger      *zap.Logger
}

func NewDocumentUsecase(cfg *config.Config, repo repository.DocumentRepository, files repository.FileReferenceCache, logger *zap.Logger) DocumentUsecase {
	return &documentUsecase{
		repo:        repo,
		files:       files,
		concurrency: cfg.Upload.Concurrency,
		logger:      logger,
	}
}

func (u *documentUsecase) Upload(ctx context.Context, files []httpclient.FileUpload) ([]entity.UploadedDocument, error) {
	if len(files) == 0 {
		return nil, apierror.Argumentf("file", "at least one file is required")
	}

	u.logger.Info("Uploading documents",
		zap.Int("count", len(files)),
		zap.Int("concurrency", u.concurrency),
		zap.String("correlation_id", entity.CorrelationIDFrom(ctx)),
	)

	results := make([]entity.UploadedDocument, len(files))
	g, gctx := errgroup.WithContext(ctx)
	if u.concurrency > 0 {
		g.SetLimit(u.concurrency)
	}

	for i, file := range files {
		g.Go(func() error {
			upload, err := u.repo.UploadContent(gctx, file.Filename, file.Content)
			if err != nil {
				u.logger.Error("Failed to upload document",
					zap.String("filename", file.Filename),
					zap.Error(err),
				)
				return err
			}

			ref := upload.FileReference()
			if err := u.files.Set(gctx, ref); err != nil {
				return err
			}

			results[i] = entity.UploadedDocument{
				FileName:   file.Filename,
				Upload:     upload,
				Reference:  ref,
				TotalPages: upload.Data.TotalPages,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	u.logger.Info("Successfully uploaded documents", zap.Int("count", len(results)))
	return results, nil
}

func (u *documentUsecase) ListReferences(ctx context.Context) ([]entity.FileReference, error) {
	refs, err := u.files.All(ctx)
	if err != nil {
		u.logger.Error("Failed to list cached documents", zap.Error(err))
		return nil, err
	}
	return refs, nil
}

func (u *documentUsecase) ClearReferences(ctx context.Context) error {
	if err := u.files.Clear(ctx); err != nil {
		u.logger.Error("Failed to clear cached documents", zap.Error(err))
		return err
	}
	u.logger.Info("Cleared cached documents")
	return nil
}
