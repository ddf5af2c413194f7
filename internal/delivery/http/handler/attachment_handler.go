package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/usecase"
)

type AttachmentHandler struct {
	usecase usecase.AttachmentUsecase
	logger  *zap.Logger
}

func NewAttachmentHandler(usecase usecase.AttachmentUsecase, logger *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// MemberAttachments godoc
// @Summary List member attachments
// @Tags attachments
// @Produce json
// @Param id path int true "Operation member id"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/members/{id}/attachments [get]
func (h *AttachmentHandler) MemberAttachments(c *fiber.Ctx) error {
	memberID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "List attachments", err)
	}

	attachments, err := h.usecase.MemberAttachments(c.UserContext(), memberID)
	if err != nil {
		return respondError(c, h.logger, "List attachments", err)
	}

	return c.JSON(entity.NewSuccessResponse(attachments, "Attachments retrieved successfully"))
}

// @Router /api/v1/members/{id}/attachments/approve [post]
func (h *AttachmentHandler) Approve(c *fiber.Ctx) error {
	memberID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Approve attachments", err)
	}

	var input entity.ApproveAttachmentsInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid approve payload")
	}

	if err := h.usecase.Approve(c.UserContext(), memberID, input.AttachmentIDs); err != nil {
		return respondError(c, h.logger, "Approve attachments", err)
	}

	return c.JSON(entity.NewSuccessResponse(nil, "Attachments approved"))
}

// @Router /api/v1/members/{id}/attachments/reject [post]
func (h *AttachmentHandler) Reject(c *fiber.Ctx) error {
	memberID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Reject attachments", err)
	}

	var input entity.RejectAttachmentsInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid reject payload")
	}

	if err := h.usecase.Reject(c.UserContext(), memberID, input.Attachments); err != nil {
		return respondError(c, h.logger, "Reject attachments", err)
	}

	return c.JSON(entity.NewSuccessResponse(nil, "Attachments rejected"))
}

// Download sends the attachment file as-is.
// @Router /api/v1/attachments/{id}/download [get]
func (h *AttachmentHandler) Download(c *fiber.Ctx) error {
	attachmentID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Download attachment", err)
	}

	download, err := h.usecase.Download(c.UserContext(), attachmentID)
	if err != nil {
		return respondError(c, h.logger, "Download attachment", err)
	}

	c.Attachment(download.FileName)
	if download.ContentType != "" {
		c.Set(fiber.HeaderContentType, download.ContentType)
	}
	return c.Send(download.Content)
}
