package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/Zartof23/mytops-sub000/internal/http/handlers"
	httpMW "github.com/Zartof23/mytops-sub000/internal/http/middleware"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler       *httpH.AuthHandler
	AuthMiddleware    *httpMW.AuthMiddleware
	UserHandler       *httpH.UserHandler
	TopicHandler      *httpH.TopicHandler
	RatingHandler     *httpH.RatingHandler
	WatchLaterHandler *httpH.WatchLaterHandler
	EnrichHandler     *httpH.EnrichHandler

	HealthHandler *httpH.HealthHandler

	// MediaDir, when set, is served at /media for generated avatars.
	MediaDir string

	ServiceName string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	if cfg.MediaDir != "" {
		r.Static("/media", cfg.MediaDir)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}

		// Browsing is public; identity-dependent state (ratings, watch-later)
		// comes from separate authenticated endpoints.
		if cfg.TopicHandler != nil {
			api.GET("/topics", cfg.TopicHandler.ListTopics)
			api.GET("/topics/:slug", cfg.TopicHandler.GetTopic)
			api.GET("/topics/:slug/items", cfg.TopicHandler.BrowseItems)
			api.GET("/items/:itemID", cfg.TopicHandler.GetItem)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me", cfg.UserHandler.UpdateProfile)
			protected.POST("/me/avatar", cfg.UserHandler.RegenerateAvatar)
		}

		if cfg.RatingHandler != nil {
			protected.POST("/ratings", cfg.RatingHandler.Rate)
			protected.DELETE("/ratings/:itemID", cfg.RatingHandler.Remove)
			protected.POST("/ratings/batch", cfg.RatingHandler.Batch)
		}

		if cfg.WatchLaterHandler != nil {
			protected.POST("/watch-later", cfg.WatchLaterHandler.Add)
			protected.DELETE("/watch-later/:itemID", cfg.WatchLaterHandler.Remove)
			protected.POST("/watch-later/status", cfg.WatchLaterHandler.Status)
			protected.GET("/topics/:slug/watch-later", cfg.WatchLaterHandler.ListByTopic)
		}

		if cfg.EnrichHandler != nil {
			protected.POST("/enrich", cfg.EnrichHandler.Search)
			protected.GET("/enrich/limit", cfg.EnrichHandler.Limit)
		}
	}

	return r
}
