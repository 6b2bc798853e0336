package activity

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

type WatchLaterRepo interface {
	// Create inserts a new entry. This is a plain insert, not an upsert:
	// re-adding an existing (user, item) pair violates the unique index and
	// returns the database error.
	Create(ctx context.Context, tx *gorm.DB, entry *types.WatchLaterEntry) (*types.WatchLaterEntry, error)
	// DeleteByUserItem removes the (user, item) entry; absent rows are not an
	// error.
	DeleteByUserItem(ctx context.Context, tx *gorm.DB, userID, itemID uuid.UUID) error
	// GetByUserAndItems returns the subset of itemIDs currently on the user's
	// list, as a set.
	GetByUserAndItems(ctx context.Context, tx *gorm.DB, userID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)
	ListByUserTopic(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID) ([]*types.WatchLaterEntry, error)
}

type watchLaterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWatchLaterRepo(db *gorm.DB, baseLog *logger.Logger) WatchLaterRepo {
	return &watchLaterRepo{db: db, log: baseLog.With("repo", "WatchLaterRepo")}
}

func (wr *watchLaterRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.WatchLaterEntry) (*types.WatchLaterEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (wr *watchLaterRepo) DeleteByUserItem(ctx context.Context, tx *gorm.DB, userID, itemID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&types.WatchLaterEntry{}).Error
}

func (wr *watchLaterRepo) GetByUserAndItems(ctx context.Context, tx *gorm.DB, userID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	results := map[uuid.UUID]struct{}{}
	if len(itemIDs) == 0 {
		return results, nil
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.WatchLaterEntry{}).
		Where("user_id = ? AND item_id IN ?", userID, itemIDs).
		Pluck("item_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		results[id] = struct{}{}
	}
	return results, nil
}

func (wr *watchLaterRepo) ListByUserTopic(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID) ([]*types.WatchLaterEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var rows []*types.WatchLaterEntry
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Order("priority ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
