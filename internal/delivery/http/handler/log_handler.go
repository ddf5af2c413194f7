package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/usecase"
)

type LogHandler struct {
	usecase usecase.LogUsecase
	logger  *zap.Logger
}

func NewLogHandler(usecase usecase.LogUsecase, logger *zap.Logger) *LogHandler {
	return &LogHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// GetLogs returns the most recent ForSign calls
func (h *LogHandler) GetLogs(c *fiber.Ctx) error {
	logs, err := h.usecase.Recent(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, h.logger, "List API logs", err)
	}

	return c.JSON(entity.NewSuccessResponse(logs, "Logs retrieved successfully"))
}

// SearchLogs returns every call made under one correlation id
func (h *LogHandler) SearchLogs(c *fiber.Ctx) error {
	logs, err := h.usecase.ByCorrelationID(c.UserContext(), c.Query("correlation_id"))
	if err != nil {
		return respondError(c, h.logger, "Search API logs", err)
	}

	return c.JSON(entity.NewSuccessResponse(logs, "Logs retrieved successfully"))
}
