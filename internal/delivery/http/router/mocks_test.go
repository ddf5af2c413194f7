package router

import (
	"context"

	"github.com/stretchr/testify/mock"

	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/infrastructure/httpclient"
)

type mockOperationUsecase struct {
	mock.Mock
}

func (m *mockOperationUsecase) Create(ctx context.Context, input *entity.CreateOperationInput) (*entity.CreateOperationResult, error) {
	args := m.Called(ctx, input)
	result, _ := args.Get(0).(*entity.CreateOperationResult)
	return result, args.Error(1)
}

func (m *mockOperationUsecase) Complete(ctx context.Context, operationID int64) (*entity.OperationStatus, error) {
	args := m.Called(ctx, operationID)
	status, _ := args.Get(0).(*entity.OperationStatus)
	return status, args.Error(1)
}

func (m *mockOperationUsecase) Cancel(ctx context.Context, operationID int64, message string) (*entity.OperationStatus, error) {
	args := m.Called(ctx, operationID, message)
	status, _ := args.Get(0).(*entity.OperationStatus)
	return status, args.Error(1)
}

func (m *mockOperationUsecase) SetAutomaticCompletion(ctx context.Context, operationID int64, endDate string) (*entity.OperationStatus, error) {
	args := m.Called(ctx, operationID, endDate)
	status, _ := args.Get(0).(*entity.OperationStatus)
	return status, args.Error(1)
}

func (m *mockOperationUsecase) SetManualCompletion(ctx context.Context, operationID int64) (*entity.OperationStatus, error) {
	args := m.Called(ctx, operationID)
	status, _ := args.Get(0).(*entity.OperationStatus)
	return status, args.Error(1)
}

func (m *mockOperationUsecase) DownloadZip(ctx context.Context, operationID int64) (*entity.OperationZip, error) {
	args := m.Called(ctx, operationID)
	zip, _ := args.Get(0).(*entity.OperationZip)
	return zip, args.Error(1)
}

type mockDocumentUsecase struct {
	mock.Mock
}

func (m *mockDocumentUsecase) Upload(ctx context.Context, files []httpclient.FileUpload) ([]entity.UploadedDocument, error) {
	args := m.Called(ctx, files)
	uploaded, _ := args.Get(0).([]entity.UploadedDocument)
	return uploaded, args.Error(1)
}

func (m *mockDocumentUsecase) ListReferences(ctx context.Context) ([]entity.FileReference, error) {
	args := m.Called(ctx)
	refs, _ := args.Get(0).([]entity.FileReference)
	return refs, args.Error(1)
}

func (m *mockDocumentUsecase) ClearReferences(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockAttachmentUsecase struct {
	mock.Mock
}

func (m *mockAttachmentUsecase) MemberAttachments(ctx context.Context, memberID int64) ([]entity.MemberAttachment, error) {
	args := m.Called(ctx, memberID)
	attachments, _ := args.Get(0).([]entity.MemberAttachment)
	return attachments, args.Error(1)
}

func (m *mockAttachmentUsecase) Approve(ctx context.Context, memberID int64, attachmentIDs []int64) error {
	return m.Called(ctx, memberID, attachmentIDs).Error(0)
}

func (m *mockAttachmentUsecase) Reject(ctx context.Context, memberID int64, rejected []entity.RejectedAttachment) error {
	return m.Called(ctx, memberID, rejected).Error(0)
}

func (m *mockAttachmentUsecase) Download(ctx context.Context, attachmentID int64) (*entity.AttachmentDownload, error) {
	args := m.Called(ctx, attachmentID)
	download, _ := args.Get(0).(*entity.AttachmentDownload)
	return download, args.Error(1)
}

type mockLogUsecase struct {
	mock.Mock
}

func (m *mockLogUsecase) Recent(ctx context.Context, limit int) ([]entity.APILog, error) {
	args := m.Called(ctx, limit)
	logs, _ := args.Get(0).([]entity.APILog)
	return logs, args.Error(1)
}

func (m *mockLogUsecase) ByCorrelationID(ctx context.Context, correlationID string) ([]entity.APILog, error) {
	args := m.Called(ctx, correlationID)
	logs, _ := args.Get(0).([]entity.APILog)
	return logs, args.Error(1)
}
