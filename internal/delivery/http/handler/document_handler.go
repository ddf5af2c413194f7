package handler

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"forsign-esign/internal/config"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/infrastructure/httpclient"
	"forsign-esign/internal/usecase"
)

type DocumentHandler struct {
	usecase usecase.DocumentUsecase
	maxSize int
	logger  *zap.Logger
}

func NewDocumentHandler(cfg *config.Config, usecase usecase.DocumentUsecase, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		usecase: usecase,
		maxSize: cfg.Upload.MaxSize,
		logger:  logger,
	}
}

// Upload godoc
// @Summary Upload PDF documents
// @Description Uploads every multipart "file" part to ForSign and caches the returned references
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document (repeatable)"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Expected a multipart form with at least one file")
	}

	headers := form.File["file"]
	if len(headers) == 0 {
		return badRequest(c, "At least one file is required")
	}

	files := make([]httpclient.FileUpload, 0, len(headers))
	for _, fh := range headers {
		if h.maxSize > 0 && fh.Size > int64(h.maxSize) {
			return badRequest(c, fmt.Sprintf("%s exceeds the maximum size of %s",
				fh.Filename, entity.HumanReadableSize(h.maxSize)))
		}

		f, err := fh.Open()
		if err != nil {
			return respondError(c, h.logger, "Read upload", err)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return respondError(c, h.logger, "Read upload", err)
		}

		files = append(files, httpclient.FileUpload{Filename: fh.Filename, Content: content})
	}

	uploaded, err := h.usecase.Upload(c.UserContext(), files)
	if err != nil {
		return respondError(c, h.logger, "Upload documents", err)
	}

	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(uploaded, "Documents uploaded successfully"),
	)
}

// List returns the references uploaded through this gateway.
// @Router /api/v1/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	refs, err := h.usecase.ListReferences(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "List documents", err)
	}

	return c.JSON(entity.NewSuccessResponse(refs, "Documents retrieved successfully"))
}

// @Router /api/v1/documents [delete]
func (h *DocumentHandler) Clear(c *fiber.Ctx) error {
	if err := h.usecase.ClearReferences(c.UserContext()); err != nil {
		return respondError(c, h.logger, "Clear documents", err)
	}

	return c.JSON(entity.NewSuccessResponse(nil, "Document references cleared"))
}
