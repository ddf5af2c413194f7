package usecase

import (
	"context"

	"go.uber.org/zap"

	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/domain/repository"
)

type AttachmentUsecase interface {
	MemberAttachments(ctx context.Context, memberID int64) ([]entity.MemberAttachment, error)
	Approve(ctx context.Context, memberID int64, attachmentIDs []int64) error
	Reject(ctx context.Context, memberID int64, rejected []entity.RejectedAttachment) error
	Download(ctx context.Context, attachmentID int64) (*entity.AttachmentDownload, error)
}

type attachmentUsecase struct {
	repo   repository.AttachmentRepository
	logger *zap.Logger
}

func NewAttachmentUsecase(repo repository.AttachmentRepository, logger *zap.Logger) AttachmentUsecase {
	return &attachmentUsecase{
		repo:   repo,
		logger: logger,
	}
}

func (u *attachmentUsecase) MemberAttachments(ctx context.Context, memberID int64) ([]entity.MemberAttachment, error) {
	attachments, err := u.repo.MemberAttachments(ctx, memberID)
	if err != nil {
		u.logger.Error("Failed to get member attachments", zap.Int64("member_id", memberID), zap.Error(err))
		return nil, err
	}

	pending := 0
	for i := range attachments {
		if attachments[i].IsPending() {
			pending++
		}
	}
	u.logger.Info("Retrieved member attachments",
		zap.Int64("member_id", memberID),
		zap.Int("count", len(attachments)),
		zap.Int("pending", pending),
	)
	return attachments, nil
}

func (u *attachmentUsecase) Approve(ctx context.Context, memberID int64, attachmentIDs []int64) error {
	if err := u.repo.Approve(ctx, memberID, attachmentIDs); err != nil {
		u.logger.Error("Failed to approve attachments", zap.Int64("member_id", memberID), zap.Error(err))
		return err
	}
	return nil
}

func (u *attachmentUsecase) Reject(ctx context.Context, memberID int64, rejected []entity.RejectedAttachment) error {
	if err := u.repo.Reject(ctx, memberID, rejected); err != nil {
		u.logger.Error("Failed to reject attachments", zap.Int64("member_id", memberID), zap.Error(err))
		return err
	}
	return nil
}

func (u *attachmentUsecase) Download(ctx context.Context, attachmentID int64) (*entity.AttachmentDownload, error) {
	download, err := u.repo.Download(ctx, attachmentID)
	if err != nil {
		u.logger.Error("Failed to download attachment", zap.Int64("attachment_id", attachmentID), zap.Error(err))
		return nil, err
	}

	u.logger.Info("Downloaded attachment",
		zap.Int64("attachment_id", attachmentID),
		zap.String("filename", download.FileName),
		zap.String("size", download.HumanReadableSize()),
	)
	return download, nil
}
