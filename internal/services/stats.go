package services

import (
	"context"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zartof23/mytops-sub000/internal/data/repos/activity"
	types "github.com/Zartof23/mytops-sub000/internal/domain"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

// StatsService is the client-side aggregation path: averages computed in
// process from raw rating rows. The browse query computes the same numbers in
// SQL; this path serves callers that already hold rating rows or need stats
// outside a browse fetch.
type StatsService interface {
	// StatsForItems returns aggregates for every requested item. An empty
	// input yields an empty map and no error; items with no ratings get
	// {0, 0}.
	StatsForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]types.ItemStats, error)
}

type statsService struct {
	db         *gorm.DB
	log        *logger.Logger
	ratingRepo activity.RatingRepo
}

func NewStatsService(db *gorm.DB, log *logger.Logger, ratingRepo activity.RatingRepo) StatsService {
	return &statsService{
		db:         db,
		log:        log.With("service", "StatsService"),
		ratingRepo: ratingRepo,
	}
}

func (ss *statsService) StatsForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]types.ItemStats, error) {
	results := map[uuid.UUID]types.ItemStats{}
	if len(itemIDs) == 0 {
		return results, nil
	}

	rows, err := ss.ratingRepo.ListByItemIDs(ctx, nil, itemIDs)
	if err != nil {
		return nil, err
	}

	valuesByItem := map[uuid.UUID][]int{}
	for _, row := range rows {
		valuesByItem[row.ItemID] = append(valuesByItem[row.ItemID], row.Rating)
	}
	for _, id := range itemIDs {
		results[id] = ComputeStats(valuesByItem[id])
	}
	return results, nil
}

// ComputeStats aggregates raw rating values. No ratings means {0, 0}, never
// NaN.
func ComputeStats(values []int) types.ItemStats {
	if len(values) == 0 {
		return types.ItemStats{AvgRating: 0, RatingCount: 0}
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	avg := float64(sum) / float64(len(values))
	return types.ItemStats{
		AvgRating:   RoundHalfUp1(avg),
		RatingCount: len(values),
	}
}

// RoundHalfUp1 rounds half-up at one decimal, matching the SQL aggregate.
func RoundHalfUp1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
