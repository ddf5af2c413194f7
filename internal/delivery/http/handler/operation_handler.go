package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/usecase"
)

type OperationHandler struct {
	usecase usecase.OperationUsecase
	logger  *zap.Logger
}

func NewOperationHandler(usecase usecase.OperationUsecase, logger *zap.Logger) *OperationHandler {
	return &OperationHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Create godoc
// @Summary Create a signing operation
// @Description Compiles the signers into a ForSign operation request and submits it
// @Tags operations
// @Accept json
// @Produce json
// @Param payload body entity.CreateOperationInput true "Operation"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 422 {object} entity.APIResponse
// @Router /api/v1/operations [post]
func (h *OperationHandler) Create(c *fiber.Ctx) error {
	var input entity.CreateOperationInput
	if err := c.BodyParser(&input); err != nil {
		h.logger.Warn("Failed to parse operation payload", zap.Error(err))
		return badRequest(c, "Invalid operation payload")
	}

	result, err := h.usecase.Create(c.UserContext(), &input)
	if err != nil {
		return respondError(c, h.logger, "Create operation", err)
	}

	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(result, "Operation created successfully"),
	)
}

// @Router /api/v1/operations/{id}/complete [post]
func (h *OperationHandler) Complete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Complete operation", err)
	}

	status, err := h.usecase.Complete(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, "Complete operation", err)
	}

	return c.JSON(entity.NewSuccessResponse(status, "Operation completed"))
}

// @Router /api/v1/operations/{id}/cancel [post]
func (h *OperationHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Cancel operation", err)
	}

	var input entity.CancelOperationInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid cancel payload")
	}

	status, err := h.usecase.Cancel(c.UserContext(), id, input.Message)
	if err != nil {
		return respondError(c, h.logger, "Cancel operation", err)
	}

	return c.JSON(entity.NewSuccessResponse(status, "Operation cancelled"))
}

// AutomaticCompletion switches the operation to finish by itself at end_date.
// @Router /api/v1/operations/{id}/automatic-completion [patch]
func (h *OperationHandler) AutomaticCompletion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Set automatic completion", err)
	}

	var input entity.AutomaticCompletionInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid completion payload")
	}

	status, err := h.usecase.SetAutomaticCompletion(c.UserContext(), id, input.EndDate)
	if err != nil {
		return respondError(c, h.logger, "Set automatic completion", err)
	}

	return c.JSON(entity.NewSuccessResponse(status, "Automatic completion scheduled"))
}

// @Router /api/v1/operations/{id}/manual-completion [patch]
func (h *OperationHandler) ManualCompletion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Set manual completion", err)
	}

	status, err := h.usecase.SetManualCompletion(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, "Set manual completion", err)
	}

	return c.JSON(entity.NewSuccessResponse(status, "Manual completion set"))
}

// DownloadZip streams the signed bundle. With ?format=json the base64
// payload is returned in the envelope instead.
// @Router /api/v1/operations/{id}/zip [get]
func (h *OperationHandler) DownloadZip(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Download operation zip", err)
	}

	zip, err := h.usecase.DownloadZip(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, "Download operation zip", err)
	}

	if c.Query("format") == "json" {
		return c.JSON(entity.NewSuccessResponse(zip, "Operation archive retrieved"))
	}

	content, err := zip.Content()
	if err != nil {
		return respondError(c, h.logger, "Download operation zip", err)
	}

	c.Attachment(zip.Name)
	c.Set(fiber.HeaderContentType, "application/zip")
	return c.Send(content)
}
