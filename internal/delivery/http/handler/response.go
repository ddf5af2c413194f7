package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/usecase"
)

// ValidationDetails is the data of a 422 gateway response.
type ValidationDetails struct {
	Errors        map[string]string `json:"errors"`
	CorrelationID string            `json:"correlation_id,omitempty"`
}

// UpstreamDetails is the data of a failed ForSign call.
type UpstreamDetails struct {
	StatusCode    int    `json:"status_code"`
	CorrelationID string `json:"correlation_id,omitempty"`
	Snippet       string `json:"snippet,omitempty"`
}

// respondError maps the client error taxonomy onto a gateway response.
func respondError(c *fiber.Ctx, logger *zap.Logger, action string, err error) error {
	var (
		argErr        *apierror.ArgumentError
		validationErr *apierror.ValidationError
		apiErr        *apierror.APIError
	)

	switch {
	case errors.As(err, &argErr):
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", err.Error()),
		)

	case errors.As(err, &validationErr):
		logger.Warn(action+" rejected by ForSign",
			zap.String("correlation_id", validationErr.CorrelationID),
			zap.Any("errors", validationErr.Errors()),
		)
		resp := entity.NewErrorResponse("VALIDATION_ERROR", validationErr.Message)
		resp.Data = ValidationDetails{
			Errors:        validationErr.Errors(),
			CorrelationID: validationErr.CorrelationID,
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)

	case errors.As(err, &apiErr):
		status := apiErr.StatusCode
		code := "UPSTREAM_ERROR"
		switch {
		case apiErr.IsTransport(), errors.Is(err, apierror.ErrInvalidResponse):
			status = fiber.StatusBadGateway
			code = "BAD_GATEWAY"
		case status < 400:
			status = fiber.StatusBadGateway
		}
		logger.Error(action+" failed",
			zap.Int("upstream_status", apiErr.StatusCode),
			zap.String("correlation_id", apiErr.CorrelationID),
			zap.Error(err),
		)
		resp := entity.NewErrorResponse(code, apiErr.Message)
		resp.Data = UpstreamDetails{
			StatusCode:    apiErr.StatusCode,
			CorrelationID: apiErr.CorrelationID,
			Snippet:       apiErr.Snippet,
		}
		return c.Status(status).JSON(resp)

	case errors.Is(err, usecase.ErrAuditDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(
			entity.NewErrorResponse("SERVICE_UNAVAILABLE", err.Error()),
		)

	default:
		logger.Error(action+" failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(
		entity.NewErrorResponse("BAD_REQUEST", message),
	)
}

// paramID reads a positive numeric route parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.Argumentf(name, "must be a positive integer")
	}
	return id, nil
}
