package repository

import (
	"context"
	"time"

	"forsign-esign/internal/domain/entity"
)

// OperationRepository wraps the operation endpoints of the ForSign API.
type OperationRepository interface {
	Create(ctx context.Context, req *entity.OperationRequest) (*entity.OperationCreated, error)
	Complete(ctx context.Context, operationID int64) (*entity.OperationStatus, error)
	// Cancel stops the operation; message is shown to its members.
	Cancel(ctx context.Context, operationID int64, message string) (*entity.OperationStatus, error)
	// SetAutomaticCompletion completes the operation at endDate, which must be
	// more than one hour away.
	SetAutomaticCompletion(ctx context.Context, operationID int64, endDate time.Time) (*entity.OperationStatus, error)
	SetManualCompletion(ctx context.Context, operationID int64) (*entity.OperationStatus, error)
	DownloadZip(ctx context.Context, operationID int64) (*entity.OperationZip, error)
}

// AttachmentRepository wraps the member attachment endpoints.
type AttachmentRepository interface {
	MemberAttachments(ctx context.Context, memberID int64) ([]entity.MemberAttachment, error)
	Approve(ctx context.Context, memberID int64, attachmentIDs []int64) error
	Reject(ctx context.Context, memberID int64, rejected []entity.RejectedAttachment) error
	Download(ctx context.Context, attachmentID int64) (*entity.AttachmentDownload, error)
}

type DocumentRepository interface {
	// Upload sends the PDF at path.
	Upload(ctx context.Context, path string) (*entity.DocumentUpload, error)
	UploadContent(ctx context.Context, filename string, content []byte) (*entity.DocumentUpload, error)
}

// APILogRepository stores and queries the audit trail of ForSign calls.
type APILogRepository interface {
	Save(ctx context.Context, log *entity.APILog) error
	FindAll(ctx context.Context, limit int) ([]entity.APILog, error)
	FindByCorrelationID(ctx context.Context, correlationID string) ([]entity.APILog, error)
}

// FileReferenceCache keeps references of uploaded documents.
type FileReferenceCache interface {
	Set(ctx context.Context, ref entity.FileReference) error
	Get(ctx context.Context, id string) (entity.FileReference, bool, error)
	All(ctx context.Context) ([]entity.FileReference, error)
	Clear(ctx context.Context) error
}
