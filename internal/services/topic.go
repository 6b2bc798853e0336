package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	repocatalog "github.com/Zartof23/mytops-sub000/internal/data/repos/catalog"
	types "github.com/Zartof23/mytops-sub000/internal/domain"
	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

type TopicService interface {
	ListTopics(ctx context.Context) ([]*types.Topic, error)
	// GetTopicBySlug returns ErrNotFound for an unknown slug.
	GetTopicBySlug(ctx context.Context, slug string) (*types.Topic, error)
}

type topicService struct {
	db        *gorm.DB
	log       *logger.Logger
	topicRepo repocatalog.TopicRepo
}

func NewTopicService(db *gorm.DB, log *logger.Logger, topicRepo repocatalog.TopicRepo) TopicService {
	return &topicService{
		db:        db,
		log:       log.With("service", "TopicService"),
		topicRepo: topicRepo,
	}
}

func (ts *topicService) ListTopics(ctx context.Context) ([]*types.Topic, error) {
	topics, err := ts.topicRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

func (ts *topicService) GetTopicBySlug(ctx context.Context, slug string) (*types.Topic, error) {
	topic, err := ts.topicRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	if topic == nil {
		return nil, fmt.Errorf("%w: topic %q", pkgerrors.ErrNotFound, slug)
	}
	return topic, nil
}
