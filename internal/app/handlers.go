package app

import (
	httpH "github.com/Zartof23/mytops-sub000/internal/http/handlers"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	User       *httpH.UserHandler
	Topic      *httpH.TopicHandler
	Rating     *httpH.RatingHandler
	WatchLater *httpH.WatchLaterHandler
	Enrich     *httpH.EnrichHandler
}

func wireHandlers(log *logger.Logger, svcs Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		Auth:       httpH.NewAuthHandler(svcs.Auth),
		User:       httpH.NewUserHandler(svcs.User),
		Topic:      httpH.NewTopicHandler(svcs.Topic, svcs.Catalog, svcs.Stats),
		Rating:     httpH.NewRatingHandler(svcs.Rating),
		WatchLater: httpH.NewWatchLaterHandler(svcs.WatchLater),
		Enrich:     httpH.NewEnrichHandler(svcs.Enrich, svcs.RateLimit),
	}
}
