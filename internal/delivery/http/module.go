package http

import (
	"go.uber.org/fx"

	"forsign-esign/internal/delivery/http/handler"
	"forsign-esign/internal/delivery/http/router"
)

var Module = fx.Module("http",
	fx.Provide(
		handler.NewHealthHandler,
		handler.NewOperationHandler,
		handler.NewDocumentHandler,
		handler.NewAttachmentHandler,
		handler.NewLogHandler,
		router.NewRouter,
	),
)
