package repository

import (
	"go.uber.org/fx"
)

var Module = fx.Module("repository",
	fx.Provide(NewOperationRepository),
	fx.Provide(NewAttachmentRepository),
	fx.Provide(NewDocumentRepository),
	fx.Provide(NewAPILogRepository),
	fx.Provide(NewAPILogSaver),
)
