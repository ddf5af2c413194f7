package main

import (
	"go.uber.org/fx"

	"forsign-esign/internal/config"
	deliveryhttp "forsign-esign/internal/delivery/http"
	"forsign-esign/internal/infrastructure/database"
	"forsign-esign/internal/infrastructure/document"
	"forsign-esign/internal/infrastructure/filecache"
	"forsign-esign/internal/infrastructure/httpclient"
	"forsign-esign/internal/infrastructure/logger"
	"forsign-esign/internal/infrastructure/redis"
	"forsign-esign/internal/infrastructure/repository"
	"forsign-esign/internal/server"
	"forsign-esign/internal/usecase"
)

func main() {
	fx.New(
		// Configuration
		config.Module,

		// Infrastructure
		logger.Module,
		database.Module,
		redis.Module,
		filecache.Module,
		document.Module,
		httpclient.Module,
		repository.Module,

		// Business Logic
		usecase.Module,

		// Delivery
		deliveryhttp.Module,

		// Server
		server.Module,
	).Run()
}
