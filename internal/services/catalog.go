package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	repocatalog "github.com/Zartof23/mytops-sub000/internal/data/repos/catalog"
	types "github.com/Zartof23/mytops-sub000/internal/domain"
	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

// Offsets are always computed as (page-1)*pageSize.
const (
	DefaultPageSize = 24
	MaxPageSize     = 100
)

// BrowseQuery is one filtered, paginated fetch against a topic's items.
// PageSize overrides the configured size when positive, capped at
// MaxPageSize.
type BrowseQuery struct {
	TopicSlug     string
	Search        string
	MinRating     *float64
	ReleasedAfter *time.Time
	Page          int
	PageSize      int
}

// BrowsePage is the result of a browse fetch. TotalPages is at least 1 even
// when no items match.
type BrowsePage struct {
	Topic      *types.Topic          `json:"topic"`
	Items      []types.ItemWithStats `json:"items"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalCount int64                 `json:"total_count"`
	TotalPages int                   `json:"total_pages"`
}

type CatalogService interface {
	// BrowseItems runs the filtered, paginated item query with server-side
	// stats. Pages below 1 are clamped to 1.
	BrowseItems(ctx context.Context, q BrowseQuery) (*BrowsePage, error)
	GetItemsByIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*types.Item, error)
}

type catalogService struct {
	db        *gorm.DB
	log       *logger.Logger
	topicRepo repocatalog.TopicRepo
	itemRepo  repocatalog.ItemRepo
	pageSize  int
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, topicRepo repocatalog.TopicRepo, itemRepo repocatalog.ItemRepo, pageSize int) CatalogService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &catalogService{
		db:        db,
		log:       log.With("service", "CatalogService"),
		topicRepo: topicRepo,
		itemRepo:  itemRepo,
		pageSize:  pageSize,
	}
}

func (cs *catalogService) BrowseItems(ctx context.Context, q BrowseQuery) (*BrowsePage, error) {
	topic, err := cs.topicRepo.GetBySlug(ctx, nil, q.TopicSlug)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	if topic == nil {
		return nil, fmt.Errorf("%w: topic %q", pkgerrors.ErrNotFound, q.TopicSlug)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := cs.pageSize
	if q.PageSize > 0 {
		pageSize = q.PageSize
		if pageSize > MaxPageSize {
			pageSize = MaxPageSize
		}
	}

	statsQuery := repocatalog.StatsQuery{
		TopicID:       topic.ID,
		Search:        q.Search,
		MinAvgRating:  q.MinRating,
		ReleasedAfter: q.ReleasedAfter,
		Limit:         pageSize,
		Offset:        (page - 1) * pageSize,
	}

	var (
		items []types.ItemWithStats
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var listErr error
		items, listErr = cs.itemRepo.ListWithStats(gctx, nil, statsQuery)
		return listErr
	})
	g.Go(func() error {
		var countErr error
		total, countErr = cs.itemRepo.CountWithStats(gctx, nil, statsQuery)
		return countErr
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("browse items: %w", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	return &BrowsePage{
		Topic:      topic,
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

func (cs *catalogService) GetItemsByIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*types.Item, error) {
	return cs.itemRepo.GetByIDs(ctx, nil, itemIDs)
}
