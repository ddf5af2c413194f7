package usecase

import "go.uber.org/fx"

var Module = fx.Module("usecase",
	fx.Provide(NewOperationUsecase),
	fx.Provide(NewDocumentUsecase),
	fx.Provide(NewAttachmentUsecase),
	fx.Provide(NewLogUsecase),
)
