package browse

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
)

// seed puts the controller in a ready state with the given overlays, as if
// a fetch had completed.
func seed(c *Controller, ratings map[uuid.UUID]*types.Rating, watch map[uuid.UUID]struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Phase = PhaseReady
	if ratings == nil {
		ratings = map[uuid.UUID]*types.Rating{}
	}
	if watch == nil {
		watch = map[uuid.UUID]struct{}{}
	}
	c.state.Ratings = ratings
	c.state.WatchLater = watch
}

func TestRateOptimisticSuccess(t *testing.T) {
	gw := &fakeGateway{}
	c, _ := newTestController(t, gw, 0)
	itemID := uuid.New()
	seed(c, nil, map[uuid.UUID]struct{}{itemID: {}})

	if err := c.Rate(context.Background(), itemID, 5); err != nil {
		t.Fatalf("rate: %v", err)
	}
	s := c.State()
	if r := s.Ratings[itemID]; r == nil || r.Rating != 5 {
		t.Fatalf("expected rating 5 in state, got %+v", r)
	}
	if _, ok := s.WatchLater[itemID]; ok {
		t.Fatalf("rating should clear the watch-later mark")
	}
	if len(gw.rated) != 1 || gw.rated[0] != itemID {
		t.Fatalf("expected one upsert for %s, got %v", itemID, gw.rated)
	}
}

func TestRateFailureRollsBackRatingOnly(t *testing.T) {
	gw := &fakeGateway{rateErr: errors.New("write failed")}
	c, rec := newTestController(t, gw, 0)
	itemID := uuid.New()
	prev := &types.Rating{ItemID: itemID, Rating: 2}
	seed(c, map[uuid.UUID]*types.Rating{itemID: prev}, map[uuid.UUID]struct{}{itemID: {}})
	before := rec.count()

	if err := c.Rate(context.Background(), itemID, 5); err == nil {
		t.Fatalf("expected error")
	}
	s := c.State()
	if r := s.Ratings[itemID]; r == nil || r.Rating != 2 {
		t.Fatalf("expected previous rating restored, got %+v", r)
	}
	// The watch-later mark stays cleared: the row was never deleted
	// server-side, so the next fetch brings it back.
	if _, ok := s.WatchLater[itemID]; ok {
		t.Fatalf("watch-later mark should not be restored by the rating rollback")
	}
	if got := rec.count() - before; got != 2 {
		t.Fatalf("expected apply + rollback notifications, got %d", got)
	}
}

func TestRateFailureWithoutPriorRatingDeletesEntry(t *testing.T) {
	gw := &fakeGateway{rateErr: errors.New("write failed")}
	c, _ := newTestController(t, gw, 0)
	itemID := uuid.New()
	seed(c, nil, nil)

	if err := c.Rate(context.Background(), itemID, 4); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := c.State().Ratings[itemID]; ok {
		t.Fatalf("expected optimistic rating removed after rollback")
	}
}

func TestClearRatingFailureRestoresPrevious(t *testing.T) {
	gw := &fakeGateway{clearErr: errors.New("write failed")}
	c, _ := newTestController(t, gw, 0)
	itemID := uuid.New()
	prev := &types.Rating{ItemID: itemID, Rating: 3}
	seed(c, map[uuid.UUID]*types.Rating{itemID: prev}, nil)

	if err := c.ClearRating(context.Background(), itemID); err == nil {
		t.Fatalf("expected error")
	}
	if r := c.State().Ratings[itemID]; r == nil || r.Rating != 3 {
		t.Fatalf("expected rating restored, got %+v", r)
	}
}

func TestAddWatchLaterFailureRollsBack(t *testing.T) {
	gw := &fakeGateway{addErr: errors.New("write failed")}
	c, rec := newTestController(t, gw, 0)
	itemID := uuid.New()
	seed(c, nil, nil)
	before := rec.count()

	if err := c.AddWatchLater(context.Background(), itemID); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := c.State().WatchLater[itemID]; ok {
		t.Fatalf("expected mark rolled back")
	}
	if got := rec.count() - before; got != 2 {
		t.Fatalf("expected apply + rollback notifications, got %d", got)
	}
}

func TestRemoveWatchLaterFailureRestoresMark(t *testing.T) {
	gw := &fakeGateway{removeErr: errors.New("write failed")}
	c, _ := newTestController(t, gw, 0)
	itemID := uuid.New()
	seed(c, nil, map[uuid.UUID]struct{}{itemID: {}})

	if err := c.RemoveWatchLater(context.Background(), itemID); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := c.State().WatchLater[itemID]; !ok {
		t.Fatalf("expected mark restored")
	}
}

func TestSnapshotsAreStable(t *testing.T) {
	gw := &fakeGateway{}
	c, _ := newTestController(t, gw, 0)
	itemID := uuid.New()
	seed(c, nil, map[uuid.UUID]struct{}{itemID: {}})

	held := c.State()
	if err := c.RemoveWatchLater(context.Background(), itemID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := held.WatchLater[itemID]; !ok {
		t.Fatalf("held snapshot mutated by a later operation")
	}
}
