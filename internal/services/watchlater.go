package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zartof23/mytops-sub000/internal/data/repos/activity"
	repocatalog "github.com/Zartof23/mytops-sub000/internal/data/repos/catalog"
	types "github.com/Zartof23/mytops-sub000/internal/domain"
	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
	"github.com/Zartof23/mytops-sub000/internal/platform/ctxutil"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

type WatchLaterService interface {
	// Add puts an item on the acting user's watch-later list. Adding an item
	// already on the list is ErrConflict.
	Add(ctx context.Context, itemID uuid.UUID) (*types.WatchLaterEntry, error)
	// Remove deletes the entry; removing an absent entry is not an error.
	Remove(ctx context.Context, itemID uuid.UUID) error
	// StatusForItems returns which of the given items are on the user's list.
	StatusForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)
	// ListByTopic returns the user's watch-later items for one topic, in
	// priority order.
	ListByTopic(ctx context.Context, topicSlug string) ([]*types.Item, error)
}

type watchLaterService struct {
	db             *gorm.DB
	log            *logger.Logger
	watchLaterRepo activity.WatchLaterRepo
	itemRepo       repocatalog.ItemRepo
	topicRepo      repocatalog.TopicRepo
}

func NewWatchLaterService(
	db *gorm.DB,
	log *logger.Logger,
	watchLaterRepo activity.WatchLaterRepo,
	itemRepo repocatalog.ItemRepo,
	topicRepo repocatalog.TopicRepo,
) WatchLaterService {
	return &watchLaterService{
		db:             db,
		log:            log.With("service", "WatchLaterService"),
		watchLaterRepo: watchLaterRepo,
		itemRepo:       itemRepo,
		topicRepo:      topicRepo,
	}
}

func (ws *watchLaterService) Add(ctx context.Context, itemID uuid.UUID) (*types.WatchLaterEntry, error) {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: authentication required", pkgerrors.ErrUnauthorized)
	}

	items, err := ws.itemRepo.GetByIDs(ctx, nil, []uuid.UUID{itemID})
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: item not found", pkgerrors.ErrNotFound)
	}

	entry, err := ws.watchLaterRepo.Create(ctx, nil, &types.WatchLaterEntry{
		UserID:  userID,
		ItemID:  itemID,
		TopicID: items[0].TopicID,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: item already on watch-later list", pkgerrors.ErrConflict)
		}
		return nil, fmt.Errorf("add watch-later entry: %w", err)
	}
	return entry, nil
}

func (ws *watchLaterService) Remove(ctx context.Context, itemID uuid.UUID) error {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return fmt.Errorf("%w: authentication required", pkgerrors.ErrUnauthorized)
	}
	if err := ws.watchLaterRepo.DeleteByUserItem(ctx, nil, userID, itemID); err != nil {
		return fmt.Errorf("remove watch-later entry: %w", err)
	}
	return nil
}

func (ws *watchLaterService) StatusForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: authentication required", pkgerrors.ErrUnauthorized)
	}
	status, err := ws.watchLaterRepo.GetByUserAndItems(ctx, nil, userID, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("load watch-later status: %w", err)
	}
	return status, nil
}

func (ws *watchLaterService) ListByTopic(ctx context.Context, topicSlug string) ([]*types.Item, error) {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: authentication required", pkgerrors.ErrUnauthorized)
	}

	topic, err := ws.topicRepo.GetBySlug(ctx, nil, topicSlug)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	if topic == nil {
		return nil, fmt.Errorf("%w: topic %q", pkgerrors.ErrNotFound, topicSlug)
	}

	entries, err := ws.watchLaterRepo.ListByUserTopic(ctx, nil, userID, topic.ID)
	if err != nil {
		return nil, fmt.Errorf("list watch-later entries: %w", err)
	}
	if len(entries) == 0 {
		return []*types.Item{}, nil
	}

	itemIDs := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		itemIDs = append(itemIDs, e.ItemID)
	}
	items, err := ws.itemRepo.GetByIDs(ctx, nil, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}

	// Keep the entry ordering, not the lookup's.
	byID := make(map[uuid.UUID]*types.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	ordered := make([]*types.Item, 0, len(entries))
	for _, e := range entries {
		if item, ok := byID[e.ItemID]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered, nil
}

// isUniqueViolation matches duplicate-key failures across postgres and
// sqlite without importing driver error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
