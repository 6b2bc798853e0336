package app

import (
	httpx "github.com/Zartof23/mytops-sub000/internal/http"
	httpMW "github.com/Zartof23/mytops-sub000/internal/http/middleware"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, clients Clients, svcs Services) *httpx.Server {
	log.Info("Wiring router...")
	return httpx.NewServer(httpx.RouterConfig{
		Log: log,

		AuthHandler:       handlers.Auth,
		AuthMiddleware:    httpMW.NewAuthMiddleware(log, svcs.Auth),
		UserHandler:       handlers.User,
		TopicHandler:      handlers.Topic,
		RatingHandler:     handlers.Rating,
		WatchLaterHandler: handlers.WatchLater,
		EnrichHandler:     handlers.Enrich,

		HealthHandler: handlers.Health,

		MediaDir:    clients.Media.Root(),
		ServiceName: cfg.ServiceName,
	})
}
