package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	"forsign-esign/internal/config"
	"forsign-esign/internal/delivery/http/handler"
	"forsign-esign/internal/domain/entity"
)

// maxFilesPerRequest bounds the request body to this many full-size uploads.
const maxFilesPerRequest = 10

type Router struct {
	app               *fiber.App
	config            *config.Config
	healthHandler     *handler.HealthHandler
	operationHandler  *handler.OperationHandler
	documentHandler   *handler.DocumentHandler
	attachmentHandler *handler.AttachmentHandler
	logHandler        *handler.LogHandler
}

func NewRouter(
	cfg *config.Config,
	healthHandler *handler.HealthHandler,
	operationHandler *handler.OperationHandler,
	documentHandler *handler.DocumentHandler,
	attachmentHandler *handler.AttachmentHandler,
	logHandler *handler.LogHandler,
) *Router {
	fiberCfg := fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: customErrorHandler,
	}
	if cfg.Upload.MaxSize > 0 {
		fiberCfg.BodyLimit = cfg.Upload.MaxSize * maxFilesPerRequest
	}

	return &Router{
		app:               fiber.New(fiberCfg),
		config:            cfg,
		healthHandler:     healthHandler,
		operationHandler:  operationHandler,
		documentHandler:   documentHandler,
		attachmentHandler: attachmentHandler,
		logHandler:        logHandler,
	}
}

func (r *Router) Setup() *fiber.App {
	// Middleware
	r.app.Use(recover.New())
	r.app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	r.app.Use(correlation)
	r.app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,X-Request-Id",
		ExposeHeaders: "X-Request-Id,Content-Disposition",
	}))

	if r.config.IsDevelopment() {
		r.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path} ${respHeader:X-Request-Id}\n",
		}))
	}

	// Health check route
	r.app.Get("/health", r.healthHandler.Health)

	// API v1 routes
	api := r.app.Group("/api/v1")
	{
		documents := api.Group("/documents")
		{
			documents.Post("", r.documentHandler.Upload)
			documents.Get("", r.documentHandler.List)
			documents.Delete("", r.documentHandler.Clear)
		}

		operations := api.Group("/operations")
		{
			operations.Post("", r.operationHandler.Create)
			operations.Post("/:id/complete", r.operationHandler.Complete)
			operations.Post("/:id/cancel", r.operationHandler.Cancel)
			operations.Patch("/:id/automatic-completion", r.operationHandler.AutomaticCompletion)
			operations.Patch("/:id/manual-completion", r.operationHandler.ManualCompletion)
			operations.Get("/:id/zip", r.operationHandler.DownloadZip)
		}

		members := api.Group("/members")
		{
			members.Get("/:id/attachments", r.attachmentHandler.MemberAttachments)
			members.Post("/:id/attachments/approve", r.attachmentHandler.Approve)
			members.Post("/:id/attachments/reject", r.attachmentHandler.Reject)
		}

		api.Get("/attachments/:id/download", r.attachmentHandler.Download)

		// Log routes
		logs := api.Group("/logs")
		{
			logs.Get("", r.logHandler.GetLogs)
			logs.Get("/search", r.logHandler.SearchLogs)
		}
	}

	return r.app
}

func (r *Router) GetApp() *fiber.App {
	return r.app
}

// correlation forwards the request id to ForSign as X-Correlation-Id. The id
// outlives the request in the async audit log, so it is copied out of the
// pooled header buffer.
func correlation(c *fiber.Ctx) error {
	if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
		c.SetUserContext(entity.WithCorrelationID(c.UserContext(), utils.CopyString(id)))
	}
	return c.Next()
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(entity.NewErrorResponse(
		errorCode(code), err.Error(),
	))
}

func errorCode(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	default:
		return "INTERNAL_ERROR"
	}
}
