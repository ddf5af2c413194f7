package repository

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/domain/repository"
	"forsign-esign/internal/infrastructure/httpclient"
)

type attachmentRepository struct {
	client httpclient.HTTPClient
	logger *zap.Logger
}

func NewAttachmentRepository(client httpclient.HTTPClient, logger *zap.Logger) repository.AttachmentRepository {
	return &attachmentRepository{
		client: client,
		logger: logger,
	}
}

// MemberAttachments accepts the list either as the whole body or under "data".
func (r *attachmentRepository) MemberAttachments(ctx context.Context, memberID int64) ([]entity.MemberAttachment, error) {
	if err := apierror.ValidateID("member_id", memberID); err != nil {
		return nil, err
	}

	ctx, correlationID := httpclient.EnsureCorrelationID(ctx)
	var raw json.RawMessage
	path := fmt.Sprintf("/api/v2/attachment/member/%d", memberID)
	if err := r.client.Get(ctx, nil, path, &raw); err != nil {
		return nil, fmt.Errorf("failed to get attachments of member %d: %w", memberID, err)
	}

	attachments := []entity.MemberAttachment{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return attachments, nil
	}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &attachments); err != nil {
			return nil, parseFailureWith(http.StatusOK, correlationID, err)
		}
		return attachments, nil
	}

	var envelope struct {
		Data *[]entity.MemberAttachment `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, parseFailureWith(http.StatusOK, correlationID, err)
	}
	if envelope.Data == nil {
		return nil, apierror.NewInvalidResponse(http.StatusOK, "data", correlationID)
	}
	return *envelope.Data, nil
}

func (r *attachmentRepository) Approve(ctx context.Context, memberID int64, attachmentIDs []int64) error {
	if err := apierror.ValidateID("operation_member_id", memberID); err != nil {
		return err
	}
	err := apierror.Validate("attachment_ids", attachmentIDs,
		validation.Required.Error("attachment IDs cannot be empty"),
		validation.Each(validation.Required.Error("must be greater than zero"), validation.Min(int64(1)).Error("must be greater than zero")),
	)
	if err != nil {
		return err
	}

	body := map[string]any{
		"operationMemberId": memberID,
		"attachmentIds":     attachmentIDs,
	}
	if err := r.client.Post(ctx, nil, "/api/v2/attachment/approve", body, nil); err != nil {
		return fmt.Errorf("failed to approve attachments of member %d: %w", memberID, err)
	}

	r.logger.Info("Attachments approved",
		zap.Int64("member_id", memberID),
		zap.Int64s("attachment_ids", attachmentIDs),
	)
	return nil
}

func (r *attachmentRepository) Reject(ctx context.Context, memberID int64, rejected []entity.RejectedAttachment) error {
	if err := apierror.ValidateID("operation_member_id", memberID); err != nil {
		return err
	}
	if len(rejected) == 0 {
		return apierror.Argumentf("rejected_attachments", "rejected attachments cannot be empty")
	}
	for i, item := range rejected {
		if item.ID <= 0 || strings.TrimSpace(item.Reason) == "" {
			return apierror.Argumentf(fmt.Sprintf("rejected_attachments[%d]", i), "each rejected attachment must have an ID and a non-empty reason")
		}
	}

	body := map[string]any{
		"operationMemberId":   memberID,
		"rejectedAttachments": rejected,
	}
	if err := r.client.Post(ctx, nil, "/api/v2/attachment/reject", body, nil); err != nil {
		return fmt.Errorf("failed to reject attachments of member %d: %w", memberID, err)
	}

	r.logger.Info("Attachments rejected",
		zap.Int64("member_id", memberID),
		zap.Int("count", len(rejected)),
	)
	return nil
}

// Download handles both the JSON form {contentType, fileName, content} with
// base64 content (optionally under "data") and a raw binary body described
// by Content-Type and Content-Disposition.
func (r *attachmentRepository) Download(ctx context.Context, attachmentID int64) (*entity.AttachmentDownload, error) {
	if err := apierror.ValidateID("attachment_id", attachmentID); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/v2/attachment/%d/download", attachmentID)
	resp, err := r.client.Download(ctx, nil, path)
	if err != nil {
		return nil, fmt.Errorf("failed to download attachment %d: %w", attachmentID, err)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "application/json" {
		return decodeAttachmentJSON(resp)
	}

	download := &entity.AttachmentDownload{
		ContentType: mediaType,
		FileName:    fmt.Sprintf("attachment-%d", attachmentID),
		Content:     resp.Body,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		download.FileName = params["filename"]
	}
	return download, nil
}

type attachmentPayload struct {
	ContentType string `json:"contentType"`
	FileName    string `json:"fileName"`
	Content     string `json:"content"`
}

func decodeAttachmentJSON(resp *httpclient.RawResponse) (*entity.AttachmentDownload, error) {
	var envelope struct {
		attachmentPayload
		Data *attachmentPayload `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, parseFailureWith(resp.StatusCode, resp.CorrelationID, err)
	}

	payload := envelope.attachmentPayload
	if envelope.Data != nil {
		payload = *envelope.Data
	}
	if payload.Content == "" && payload.FileName == "" {
		return nil, apierror.NewInvalidResponse(resp.StatusCode, "content", resp.CorrelationID)
	}

	content, err := base64.StdEncoding.DecodeString(payload.Content)
	if err != nil {
		return nil, parseFailureWith(resp.StatusCode, resp.CorrelationID, fmt.Errorf("attachment content is not base64: %w", err))
	}

	return &entity.AttachmentDownload{
		ContentType: payload.ContentType,
		FileName:    payload.FileName,
		Content:     content,
	}, nil
}

func parseFailureWith(status int, correlationID string, err error) error {
	return &apierror.APIError{
		StatusCode:    status,
		Message:       "Failed to parse response: " + err.Error(),
		CorrelationID: correlationID,
		Err:           err,
	}
}
