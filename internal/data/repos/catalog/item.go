package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

// StatsQuery holds the filter set shared by ListWithStats and CountWithStats.
// Search is a case-insensitive substring match on name. MinAvgRating, when
// set, also requires at least one rating; an unrated item never matches the
// rating filter, even at threshold 0. ReleasedAfter matches an explicit
// release_date metadata field or a bare year field, whichever satisfies it.
type StatsQuery struct {
	TopicID       uuid.UUID
	Search        string
	MinAvgRating  *float64
	ReleasedAfter *time.Time
	Limit         int
	Offset        int
}

type ItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.Item) ([]*types.Item, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.Item, error)
	// GetByTopicAndName returns (nil, nil) when no item matches; the match is
	// case-insensitive on the exact name.
	GetByTopicAndName(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, name string) (*types.Item, error)
	// ListWithStats is the filtered, paginated browse query: each row is an
	// item plus avg_rating (one decimal, 0 when unrated) and rating_count,
	// ordered by item name.
	ListWithStats(ctx context.Context, tx *gorm.DB, q StatsQuery) ([]types.ItemWithStats, error)
	// CountWithStats returns the total match count for the same filter set,
	// ignoring Limit/Offset.
	CountWithStats(ctx context.Context, tx *gorm.DB, q StatsQuery) (int64, error)
}

type itemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	return &itemRepo{db: db, log: baseLog.With("repo", "ItemRepo")}
}

func (ir *itemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.Item) ([]*types.Item, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if len(items) == 0 {
		return []*types.Item{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (ir *itemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.Item, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.Item
	if len(itemIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", itemIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *itemRepo) GetByTopicAndName(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, name string) (*types.Item, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var result types.Item
	err := transaction.WithContext(ctx).
		Where("topic_id = ? AND LOWER(name) = LOWER(?)", topicID, name).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// statsSelectSQL is the aggregate projection for the browse query. Postgres
// needs the numeric cast for half-up one-decimal rounding; sqlite ROUND
// already rounds halves away from zero.
func statsSelectSQL(dialect string) string {
	if dialect == "sqlite" {
		return `item.*,
			COALESCE(ROUND(AVG(rating.rating), 1), 0) AS avg_rating,
			COUNT(rating.id) AS rating_count`
	}
	return `item.*,
		COALESCE(ROUND(AVG(rating.rating)::numeric, 1), 0)::float8 AS avg_rating,
		COUNT(rating.id) AS rating_count`
}

// searchSQL is the case-insensitive substring match on name. Postgres ILIKE;
// sqlite LIKE is only case-insensitive for ASCII, so fold both sides.
func searchSQL(dialect string) string {
	if dialect == "sqlite" {
		return "LOWER(item.name) LIKE LOWER(?)"
	}
	return "item.name ILIKE ?"
}

// releasedAfterSQL matches an explicit release_date metadata field or a bare
// year field, whichever satisfies the threshold. Sqlite CAST yields 0 for
// non-numeric text, which never passes the year comparison, so no pattern
// guard is needed there.
func releasedAfterSQL(dialect string) string {
	if dialect == "sqlite" {
		return `(json_extract(item.metadata, '$.release_date') IS NOT NULL AND json_extract(item.metadata, '$.release_date') >= ?)
			OR (json_extract(item.metadata, '$.year') IS NOT NULL AND CAST(json_extract(item.metadata, '$.year') AS INTEGER) >= ?)`
	}
	return `((item.metadata->>'release_date') IS NOT NULL AND (item.metadata->>'release_date') >= ?)
		OR ((item.metadata->>'year') IS NOT NULL AND (item.metadata->>'year') ~ '^[0-9]+$' AND (item.metadata->>'year')::int >= ?)`
}

// statsBase builds the shared filtered aggregate query for the connection's
// dialect (postgres or sqlite, matching the drivers db.New opens).
func (ir *itemRepo) statsBase(ctx context.Context, transaction *gorm.DB, q StatsQuery) *gorm.DB {
	dialect := transaction.Dialector.Name()

	base := transaction.WithContext(ctx).
		Table("item").
		Select(statsSelectSQL(dialect)).
		Joins("LEFT JOIN rating ON rating.item_id = item.id").
		Where("item.topic_id = ?", q.TopicID).
		Group("item.id")

	if q.Search != "" {
		base = base.Where(searchSQL(dialect), "%"+q.Search+"%")
	}
	if q.ReleasedAfter != nil {
		dateStr := q.ReleasedAfter.Format("2006-01-02")
		base = base.Where(releasedAfterSQL(dialect), dateStr, q.ReleasedAfter.Year())
	}
	if q.MinAvgRating != nil {
		base = base.Having("COUNT(rating.id) > 0 AND AVG(rating.rating) >= ?", *q.MinAvgRating)
	}
	return base
}

func (ir *itemRepo) ListWithStats(ctx context.Context, tx *gorm.DB, q StatsQuery) ([]types.ItemWithStats, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	query := ir.statsBase(ctx, transaction, q).Order("item.name ASC")
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}

	results := []types.ItemWithStats{}
	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *itemRepo) CountWithStats(ctx context.Context, tx *gorm.DB, q StatsQuery) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	sub := ir.statsBase(ctx, transaction, q).Select("item.id")

	var count int64
	if err := transaction.WithContext(ctx).
		Table("(?) AS matched", sub).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
