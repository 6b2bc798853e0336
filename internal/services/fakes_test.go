package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	repocatalog "github.com/Zartof23/mytops-sub000/internal/data/repos/catalog"
	types "github.com/Zartof23/mytops-sub000/internal/domain"
)

// Base fakes for service unit tests. Each implements its repo interface with
// zero-value methods; tests embed one and override what they exercise.

type fakeRatingRepo struct{}

func (fakeRatingRepo) Upsert(_ context.Context, _ *gorm.DB, rating *types.Rating) (*types.Rating, error) {
	return rating, nil
}

func (fakeRatingRepo) DeleteByUserItem(_ context.Context, _ *gorm.DB, _, _ uuid.UUID) error {
	return nil
}

func (fakeRatingRepo) GetByUserAndItems(_ context.Context, _ *gorm.DB, _ uuid.UUID, _ []uuid.UUID) (map[uuid.UUID]*types.Rating, error) {
	return map[uuid.UUID]*types.Rating{}, nil
}

func (fakeRatingRepo) ListByItemIDs(_ context.Context, _ *gorm.DB, _ []uuid.UUID) ([]*types.Rating, error) {
	return nil, nil
}

type fakeItemRepo struct{}

func (fakeItemRepo) Create(_ context.Context, _ *gorm.DB, items []*types.Item) ([]*types.Item, error) {
	return items, nil
}

func (fakeItemRepo) GetByIDs(_ context.Context, _ *gorm.DB, _ []uuid.UUID) ([]*types.Item, error) {
	return nil, nil
}

func (fakeItemRepo) GetByTopicAndName(_ context.Context, _ *gorm.DB, _ uuid.UUID, _ string) (*types.Item, error) {
	return nil, nil
}

func (fakeItemRepo) ListWithStats(_ context.Context, _ *gorm.DB, _ repocatalog.StatsQuery) ([]types.ItemWithStats, error) {
	return []types.ItemWithStats{}, nil
}

func (fakeItemRepo) CountWithStats(_ context.Context, _ *gorm.DB, _ repocatalog.StatsQuery) (int64, error) {
	return 0, nil
}

type fakeTopicRepo struct{}

func (fakeTopicRepo) Create(_ context.Context, _ *gorm.DB, topics []*types.Topic) ([]*types.Topic, error) {
	return topics, nil
}

func (fakeTopicRepo) GetByIDs(_ context.Context, _ *gorm.DB, _ []uuid.UUID) ([]*types.Topic, error) {
	return nil, nil
}

func (fakeTopicRepo) GetBySlug(_ context.Context, _ *gorm.DB, _ string) (*types.Topic, error) {
	return nil, nil
}

func (fakeTopicRepo) List(_ context.Context, _ *gorm.DB) ([]*types.Topic, error) {
	return nil, nil
}

type fakeWatchLaterRepo struct{}

func (fakeWatchLaterRepo) Create(_ context.Context, _ *gorm.DB, entry *types.WatchLaterEntry) (*types.WatchLaterEntry, error) {
	return entry, nil
}

func (fakeWatchLaterRepo) DeleteByUserItem(_ context.Context, _ *gorm.DB, _, _ uuid.UUID) error {
	return nil
}

func (fakeWatchLaterRepo) GetByUserAndItems(_ context.Context, _ *gorm.DB, _ uuid.UUID, _ []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return map[uuid.UUID]struct{}{}, nil
}

func (fakeWatchLaterRepo) ListByUserTopic(_ context.Context, _ *gorm.DB, _, _ uuid.UUID) ([]*types.WatchLaterEntry, error) {
	return nil, nil
}

type fakeAIRequestLogRepo struct{}

func (fakeAIRequestLogRepo) Create(_ context.Context, _ *gorm.DB, entry *types.AIRequestLog) (*types.AIRequestLog, error) {
	return entry, nil
}

func (fakeAIRequestLogRepo) CountByUserDay(_ context.Context, _ *gorm.DB, _ uuid.UUID, _ string) (int64, error) {
	return 0, nil
}
