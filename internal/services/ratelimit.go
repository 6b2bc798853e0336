package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zartof23/mytops-sub000/internal/clients/redis"
	"github.com/Zartof23/mytops-sub000/internal/data/repos/activity"
	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
	"github.com/Zartof23/mytops-sub000/internal/platform/ctxutil"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

// RateLimitStatus reports the acting user's AI-search quota for the current
// UTC day.
type RateLimitStatus struct {
	RequestsToday int  `json:"requests_today"`
	DailyLimit    int  `json:"daily_limit"`
	CanRequest    bool `json:"can_request"`
}

type RateLimitService interface {
	Status(ctx context.Context) (*RateLimitStatus, error)
	// Consume spends one request from today's quota, returning ErrRateLimited
	// at the cap. The counter resets at midnight UTC.
	Consume(ctx context.Context) error
}

type rateLimitService struct {
	db         *gorm.DB
	log        *logger.Logger
	counter    redis.DailyCounter
	aiLogRepo  activity.AIRequestLogRepo
	dailyLimit int
	now        func() time.Time
}

func NewRateLimitService(
	db *gorm.DB,
	log *logger.Logger,
	counter redis.DailyCounter,
	aiLogRepo activity.AIRequestLogRepo,
	dailyLimit int,
) RateLimitService {
	return &rateLimitService{
		db:         db,
		log:        log.With("service", "RateLimitService"),
		counter:    counter,
		aiLogRepo:  aiLogRepo,
		dailyLimit: dailyLimit,
		now:        time.Now,
	}
}

func (rl *rateLimitService) Status(ctx context.Context) (*RateLimitStatus, error) {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: authentication required", pkgerrors.ErrUnauthorized)
	}

	used, err := rl.usedToday(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &RateLimitStatus{
		RequestsToday: used,
		DailyLimit:    rl.dailyLimit,
		CanRequest:    used < rl.dailyLimit,
	}, nil
}

func (rl *rateLimitService) Consume(ctx context.Context) error {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return fmt.Errorf("%w: authentication required", pkgerrors.ErrUnauthorized)
	}

	if rl.counter != nil {
		n, err := rl.counter.Incr(ctx, rl.key(userID), rl.untilMidnightUTC())
		if err == nil {
			if int(n) > rl.dailyLimit {
				return fmt.Errorf("%w: daily AI search limit reached", pkgerrors.ErrRateLimited)
			}
			return nil
		}
		rl.log.Warn("redis counter unavailable, falling back to database", "error", err)
	}

	// Fallback path: the request-log row written after a successful AI call
	// is the increment, so only the pre-check happens here.
	used, err := rl.countFromDB(ctx, userID)
	if err != nil {
		return err
	}
	if used >= rl.dailyLimit {
		return fmt.Errorf("%w: daily AI search limit reached", pkgerrors.ErrRateLimited)
	}
	return nil
}

func (rl *rateLimitService) usedToday(ctx context.Context, userID uuid.UUID) (int, error) {
	if rl.counter != nil {
		n, err := rl.counter.Get(ctx, rl.key(userID))
		if err == nil {
			return int(n), nil
		}
		rl.log.Warn("redis counter unavailable, falling back to database", "error", err)
	}
	return rl.countFromDB(ctx, userID)
}

func (rl *rateLimitService) countFromDB(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := rl.aiLogRepo.CountByUserDay(ctx, nil, userID, rl.day())
	if err != nil {
		return 0, fmt.Errorf("count ai requests: %w", err)
	}
	return int(count), nil
}

func (rl *rateLimitService) day() string {
	return rl.now().UTC().Format("2006-01-02")
}

func (rl *rateLimitService) key(userID uuid.UUID) string {
	return fmt.Sprintf("enrich:%s:%s", userID.String(), rl.day())
}

func (rl *rateLimitService) untilMidnightUTC() time.Duration {
	now := rl.now().UTC()
	midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	return midnight.Sub(now)
}
