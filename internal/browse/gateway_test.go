package browse

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
	"github.com/Zartof23/mytops-sub000/internal/services"
)

// Service stubs for exercising the local service-backed gateway end to end.

type stubCatalogService struct {
	page *services.BrowsePage
}

func (s *stubCatalogService) BrowseItems(ctx context.Context, q services.BrowseQuery) (*services.BrowsePage, error) {
	return s.page, nil
}

func (s *stubCatalogService) GetItemsByIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*types.Item, error) {
	return nil, nil
}

type stubRatingService struct {
	mu      sync.Mutex
	upserts []types.Rating
}

func (s *stubRatingService) RateItem(ctx context.Context, itemID uuid.UUID, rating int, note string) (*types.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := types.Rating{ItemID: itemID, Rating: rating, Note: note}
	s.upserts = append(s.upserts, r)
	return &r, nil
}

func (s *stubRatingService) RemoveRating(ctx context.Context, itemID uuid.UUID) error {
	return nil
}

func (s *stubRatingService) RatingsForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*types.Rating, error) {
	return map[uuid.UUID]*types.Rating{}, nil
}

type stubWatchLaterService struct {
	addErr error
}

func (s *stubWatchLaterService) Add(ctx context.Context, itemID uuid.UUID) (*types.WatchLaterEntry, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &types.WatchLaterEntry{ItemID: itemID}, nil
}

func (s *stubWatchLaterService) Remove(ctx context.Context, itemID uuid.UUID) error {
	return nil
}

func (s *stubWatchLaterService) StatusForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return map[uuid.UUID]struct{}{}, nil
}

func (s *stubWatchLaterService) ListByTopic(ctx context.Context, topicSlug string) ([]*types.Item, error) {
	return nil, nil
}

func TestLocalGatewayDrivesController(t *testing.T) {
	itemID := uuid.New()
	catalog := &stubCatalogService{page: &services.BrowsePage{
		Topic:      &types.Topic{Slug: "movies"},
		Items:      []types.ItemWithStats{{Item: types.Item{ID: itemID, Name: "Dune"}}},
		Page:       1,
		TotalPages: 1,
	}}
	ratings := &stubRatingService{}
	watch := &stubWatchLaterService{addErr: errors.New("insert failed")}

	gw := NewLocalGateway(catalog, ratings, watch)
	rec := newRecorder()
	c := NewController(gw, testLogger(t), 0, rec.notify)
	t.Cleanup(c.Close)

	c.SetTopic(context.Background(), "movies")
	s := rec.waitFor(t, func(s State) bool { return s.Phase == PhaseReady })
	if len(s.Result.Items) != 1 || s.Result.Items[0].Item.ID != itemID {
		t.Fatalf("expected the service page through the gateway, got %+v", s.Result)
	}

	if err := c.Rate(context.Background(), itemID, 4); err != nil {
		t.Fatalf("rate through gateway: %v", err)
	}
	ratings.mu.Lock()
	upserts := len(ratings.upserts)
	ratings.mu.Unlock()
	if upserts != 1 || ratings.upserts[0].Rating != 4 {
		t.Fatalf("expected one upsert with rating 4, got %+v", ratings.upserts)
	}

	// A failing service write rolls the optimistic mark back through the
	// same path.
	if err := c.AddWatchLater(context.Background(), itemID); err == nil {
		t.Fatalf("expected watch-later error")
	}
	if _, ok := c.State().WatchLater[itemID]; ok {
		t.Fatalf("expected optimistic mark rolled back")
	}
}
