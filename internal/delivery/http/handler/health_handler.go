package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"forsign-esign/internal/config"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/infrastructure/database"
	redisclient "forsign-esign/internal/infrastructure/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	name         string
	dependencies map[string]pinger
}

// NewHealthHandler accepts nil db and redis when they are disabled.
func NewHealthHandler(cfg *config.Config, db *database.Database, rc *redisclient.RedisClient) *HealthHandler {
	deps := make(map[string]pinger)
	if db != nil {
		deps["database"] = db
	}
	if rc != nil {
		deps["redis"] = rc
	}
	return &HealthHandler{name: cfg.App.Name, dependencies: deps}
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Timestamp    time.Time         `json:"timestamp"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Health godoc
// @Summary Health check
// @Description Check if the service and its enabled dependencies are reachable
// @Tags health
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 503 {object} entity.APIResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Service:   h.name,
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}

	if len(h.dependencies) > 0 {
		resp.Dependencies = make(map[string]string, len(h.dependencies))
	}
	for name, dep := range h.dependencies {
		if err := dep.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Dependencies[name] = err.Error()
			continue
		}
		resp.Dependencies[name] = "up"
	}

	if resp.Status != "healthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(
			entity.NewErrorResponse("UNHEALTHY", "Service is degraded").WithData(resp),
		)
	}
	return c.JSON(entity.NewSuccessResponse(resp, "Service is healthy"))
}
