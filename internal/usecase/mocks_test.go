package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"forsign-esign/internal/domain/entity"
)

type mockOperationRepository struct {
	mock.Mock
}

func (m *mockOperationRepository) Create(ctx context.Context, req *entity.OperationRequest) (*entity.OperationCreated, error) {
	args := m.Called(ctx, req)
	created, _ := args.Get(0).(*entity.OperationCreated)
	return created, args.Error(1)
}

func (m *mockOperationRepository) Complete(ctx context.Context, operationID int64) (*entity.OperationStatus, error) {
	args := m.Called(ctx, operationID)
	status, _ := args.Get(0).(*entity.OperationStatus)
	return status, args.Error(1)
}

func (m *mockOperationRepository) Cancel(ctx context.Context, operationID int64, message string) (*entity.OperationStatus, error) {
	args := m.Called(ctx, operationID, message)
	status, _ := args.Get(0).(*entity.OperationStatus)
	return status, args.Error(1)
}

func (m *mockOperationRepository) SetAutomaticCompletion(ctx context.Context, operationID int64, endDate time.Time) (*entity.OperationStatus, error) {
	args := m.Called(ctx, operationID, endDate)
	status, _ := args.Get(0).(*entity.OperationStatus)
	return status, args.Error(1)
}

func (m *mockOperationRepository) SetManualCompletion(ctx context.Context, operationID int64) (*entity.OperationStatus, error) {
	args := m.Called(ctx, operationID)
	status, _ := args.Get(0).(*entity.OperationStatus)
	return status, args.Error(1)
}

func (m *mockOperationRepository) DownloadZip(ctx context.Context, operationID int64) (*entity.OperationZip, error) {
	args := m.Called(ctx, operationID)
	zip, _ := args.Get(0).(*entity.OperationZip)
	return zip, args.Error(1)
}

type mockDocumentRepository struct {
	mock.Mock
}

func (m *mockDocumentRepository) Upload(ctx context.Context, path string) (*entity.DocumentUpload, error) {
	args := m.Called(ctx, path)
	upload, _ := args.Get(0).(*entity.DocumentUpload)
	return upload, args.Error(1)
}

func (m *mockDocumentRepository) UploadContent(ctx context.Context, filename string, content []byte) (*entity.DocumentUpload, error) {
	args := m.Called(ctx, filename, content)
	upload, _ := args.Get(0).(*entity.DocumentUpload)
	return upload, args.Error(1)
}

type mockAttachmentRepository struct {
	mock.Mock
}

func (m *mockAttachmentRepository) MemberAttachments(ctx context.Context, memberID int64) ([]entity.MemberAttachment, error) {
	args := m.Called(ctx, memberID)
	attachments, _ := args.Get(0).([]entity.MemberAttachment)
	return attachments, args.Error(1)
}

func (m *mockAttachmentRepository) Approve(ctx context.Context, memberID int64, attachmentIDs []int64) error {
	return m.Called(ctx, memberID, attachmentIDs).Error(0)
}

func (m *mockAttachmentRepository) Reject(ctx context.Context, memberID int64, rejected []entity.RejectedAttachment) error {
	return m.Called(ctx, memberID, rejected).Error(0)
}

func (m *mockAttachmentRepository) Download(ctx context.Context, attachmentID int64) (*entity.AttachmentDownload, error) {
	args := m.Called(ctx, attachmentID)
	download, _ := args.Get(0).(*entity.AttachmentDownload)
	return download, args.Error(1)
}

type mockAPILogRepository struct {
	mock.Mock
}

func (m *mockAPILogRepository) Save(ctx context.Context, log *entity.APILog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *mockAPILogRepository) FindAll(ctx context.Context, limit int) ([]entity.APILog, error) {
	args := m.Called(ctx, limit)
	logs, _ := args.Get(0).([]entity.APILog)
	return logs, args.Error(1)
}

func (m *mockAPILogRepository) FindByCorrelationID(ctx context.Context, correlationID string) ([]entity.APILog, error) {
	args := m.Called(ctx, correlationID)
	logs, _ := args.Get(0).([]entity.APILog)
	return logs, args.Error(1)
}
