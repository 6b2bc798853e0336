package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

type TopicRepo interface {
	Create(ctx context.Context, tx *gorm.DB, topics []*types.Topic) ([]*types.Topic, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) ([]*types.Topic, error)
	// GetBySlug returns (nil, nil) when no topic has the slug.
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Topic, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error)
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return &topicRepo{db: db, log: baseLog.With("repo", "TopicRepo")}
}

func (tr *topicRepo) Create(ctx context.Context, tx *gorm.DB, topics []*types.Topic) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(topics) == 0 {
		return []*types.Topic{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (tr *topicRepo) GetByIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Topic
	if len(topicIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", topicIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *topicRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.Topic
	err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *topicRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Topic
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
