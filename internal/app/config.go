package app

import (
	"time"

	"github.com/Zartof23/mytops-sub000/internal/platform/envutil"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

type Config struct {
	ServiceName string
	Environment string
	Version     string

	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	BrowsePageSize int
	AIDailyLimit   int

	EnableAISearch bool
}

func LoadConfig(log *logger.Logger) Config {
	log.Info("Loading configuration...")
	return Config{
		ServiceName: envutil.String("SERVICE_NAME", "mytops"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),

		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:  envutil.DurationSeconds("ACCESS_TOKEN_TTL", 3600),
		RefreshTokenTTL: envutil.DurationSeconds("REFRESH_TOKEN_TTL", 86400),

		BrowsePageSize: envutil.Int("BROWSE_PAGE_SIZE", 24),
		AIDailyLimit:   envutil.Int("AI_DAILY_LIMIT", 10),

		EnableAISearch: envutil.Bool("ENABLE_AI_SEARCH", true),
	}
}
