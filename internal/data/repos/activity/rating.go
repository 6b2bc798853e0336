package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

type RatingRepo interface {
	// Upsert writes the rating keyed on (user_id, item_id), overwriting any
	// prior rating for that pair and refreshing updated_at.
	Upsert(ctx context.Context, tx *gorm.DB, rating *types.Rating) (*types.Rating, error)
	// DeleteByUserItem removes the (user, item) row; deleting an absent row
	// is not an error.
	DeleteByUserItem(ctx context.Context, tx *gorm.DB, userID, itemID uuid.UUID) error
	// GetByUserAndItems maps item id to the user's rating row. Items the user
	// has not rated are absent from the map.
	GetByUserAndItems(ctx context.Context, tx *gorm.DB, userID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*types.Rating, error)
	// ListByItemIDs returns the raw rating rows for the given items, for the
	// client-side stats fallback.
	ListByItemIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.Rating, error)
}

type ratingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	return &ratingRepo{db: db, log: baseLog.With("repo", "RatingRepo")}
}

func (rr *ratingRepo) Upsert(ctx context.Context, tx *gorm.DB, rating *types.Rating) (*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	now := time.Now().UTC()
	rating.UpdatedAt = now
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = now
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "note", "updated_at"}),
		}).
		Create(rating).Error; err != nil {
		return nil, err
	}

	// Re-read so the caller sees the surviving row (the original id on a
	// conflict update, not the candidate's).
	var persisted types.Rating
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", rating.UserID, rating.ItemID).
		First(&persisted).Error; err != nil {
		return nil, err
	}
	return &persisted, nil
}

func (rr *ratingRepo) DeleteByUserItem(ctx context.Context, tx *gorm.DB, userID, itemID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&types.Rating{}).Error
}

func (rr *ratingRepo) GetByUserAndItems(ctx context.Context, tx *gorm.DB, userID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	results := map[uuid.UUID]*types.Rating{}
	if len(itemIDs) == 0 {
		return results, nil
	}

	var rows []*types.Rating
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND item_id IN ?", userID, itemIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		results[row.ItemID] = row
	}
	return results, nil
}

func (rr *ratingRepo) ListByItemIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var rows []*types.Rating
	if len(itemIDs) == 0 {
		return rows, nil
	}
	if err := transaction.WithContext(ctx).
		Where("item_id IN ?", itemIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
