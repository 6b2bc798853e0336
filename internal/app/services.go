package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Zartof23/mytops-sub000/internal/browse"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
	"github.com/Zartof23/mytops-sub000/internal/services"
)

type Services struct {
	Auth       services.AuthService
	User       services.UserService
	Avatar     services.AvatarService
	Topic      services.TopicService
	Catalog    services.CatalogService
	Stats      services.StatsService
	Rating     services.RatingService
	WatchLater services.WatchLaterService
	RateLimit  services.RateLimitService
	Enrich     services.EnrichService

	// Browse is the in-process gateway for embedded browse controllers
	// (server-driven UIs, smoke tooling); the HTTP handlers call the
	// services directly.
	Browse browse.Gateway
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	avatar, err := services.NewAvatarService(db, log, repos.User, clients.Media)
	if err != nil {
		return Services{}, fmt.Errorf("init avatar service: %w", err)
	}

	auth := services.NewAuthService(db, log, repos.User, repos.UserToken, avatar,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	rateLimit := services.NewRateLimitService(db, log, clients.Counter, repos.AIRequestLog, cfg.AIDailyLimit)

	catalog := services.NewCatalogService(db, log, repos.Topic, repos.Item, cfg.BrowsePageSize)
	rating := services.NewRatingService(db, log, repos.Rating)
	watchLater := services.NewWatchLaterService(db, log, repos.WatchLater, repos.Item, repos.Topic)

	return Services{
		Auth:       auth,
		User:       services.NewUserService(db, log, repos.User, avatar),
		Avatar:     avatar,
		Topic:      services.NewTopicService(db, log, repos.Topic),
		Catalog:    catalog,
		Stats:      services.NewStatsService(db, log, repos.Rating),
		Rating:     rating,
		WatchLater: watchLater,
		RateLimit:  rateLimit,
		Enrich:     services.NewEnrichService(db, log, repos.Topic, repos.Item, repos.AIRequestLog, clients.OpenAI, rateLimit),
		Browse:     browse.NewLocalGateway(catalog, rating, watchLater),
	}, nil
}
