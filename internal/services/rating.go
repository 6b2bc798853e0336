package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zartof23/mytops-sub000/internal/data/repos/activity"
	types "github.com/Zartof23/mytops-sub000/internal/domain"
	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
	"github.com/Zartof23/mytops-sub000/internal/platform/ctxutil"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

type RatingService interface {
	// RateItem writes the acting user's rating for an item, overwriting any
	// prior value. Rating must be in 1..5.
	RateItem(ctx context.Context, itemID uuid.UUID, rating int, note string) (*types.Rating, error)
	RemoveRating(ctx context.Context, itemID uuid.UUID) error
	// RatingsForItems maps item id to the acting user's rating. Unrated items
	// are absent from the map.
	RatingsForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*types.Rating, error)
}

type ratingService struct {
	db         *gorm.DB
	log        *logger.Logger
	ratingRepo activity.RatingRepo
}

func NewRatingService(db *gorm.DB, log *logger.Logger, ratingRepo activity.RatingRepo) RatingService {
	return &ratingService{
		db:         db,
		log:        log.With("service", "RatingService"),
		ratingRepo: ratingRepo,
	}
}

func (rs *ratingService) RateItem(ctx context.Context, itemID uuid.UUID, rating int, note string) (*types.Rating, error) {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: must be authenticated to rate", pkgerrors.ErrUnauthorized)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", pkgerrors.ErrInvalidArgument)
	}
	if itemID == uuid.Nil {
		return nil, fmt.Errorf("%w: item id required", pkgerrors.ErrInvalidArgument)
	}

	persisted, err := rs.ratingRepo.Upsert(ctx, nil, &types.Rating{
		UserID: userID,
		ItemID: itemID,
		Rating: rating,
		Note:   note,
	})
	if err != nil {
		return nil, fmt.Errorf("save rating: %w", err)
	}
	return persisted, nil
}

func (rs *ratingService) RemoveRating(ctx context.Context, itemID uuid.UUID) error {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return fmt.Errorf("%w: must be authenticated to rate", pkgerrors.ErrUnauthorized)
	}
	if err := rs.ratingRepo.DeleteByUserItem(ctx, nil, userID, itemID); err != nil {
		return fmt.Errorf("remove rating: %w", err)
	}
	return nil
}

func (rs *ratingService) RatingsForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*types.Rating, error) {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: authentication required", pkgerrors.ErrUnauthorized)
	}
	ratings, err := rs.ratingRepo.GetByUserAndItems(ctx, nil, userID, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	return ratings, nil
}
