package app

import (
	"github.com/Zartof23/mytops-sub000/internal/clients/openai"
	"github.com/Zartof23/mytops-sub000/internal/clients/redis"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
	"github.com/Zartof23/mytops-sub000/internal/platform/mediastore"
)

type Clients struct {
	OpenAI  openai.Client
	Counter redis.DailyCounter
	Media   mediastore.Store
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	media, err := mediastore.NewLocalStore(log)
	if err != nil {
		return Clients{}, err
	}

	counter, err := redis.NewDailyCounter(log)
	if err != nil {
		// The rate limiter has a database fallback; a dead Redis should not
		// keep the server from starting.
		log.Warn("redis unavailable, rate limiting falls back to database", "error", err)
		counter = nil
	}

	var ai openai.Client
	if cfg.EnableAISearch {
		ai, err = openai.NewClient(log)
		if err != nil {
			log.Warn("AI search disabled", "error", err)
			ai = nil
		}
	}

	return Clients{
		OpenAI:  ai,
		Counter: counter,
		Media:   media,
	}, nil
}
