package browse

import (
	"context"
	"time"

	"github.com/google/uuid"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
)

// change pairs an in-place state edit with the inverse that undoes it. The
// inverse runs only when the server write fails.
type change struct {
	apply   func(*State)
	inverse func(*State)
}

// runOptimistic applies the change and notifies before the server write
// starts. On failure the inverse runs and exactly one follow-up
// notification carries the rolled-back state.
func (c *Controller) runOptimistic(ctx context.Context, ch change, commit func(context.Context) error) error {
	c.mu.Lock()
	ch.apply(&c.state)
	snapshot := c.state
	c.mu.Unlock()
	c.emit(snapshot)

	if err := commit(ctx); err != nil {
		c.mu.Lock()
		ch.inverse(&c.state)
		snapshot := c.state
		c.mu.Unlock()
		c.emit(snapshot)
		return err
	}
	return nil
}

// Rate records the user's rating optimistically and removes the item from
// the watch-later overlay in the same step. When the upsert fails only the
// rating is restored; the watch-later row was never touched server-side, so
// the entry reappears on the next fetch.
func (c *Controller) Rate(ctx context.Context, itemID uuid.UUID, value int) error {
	var prev *types.Rating
	ch := change{
		apply: func(s *State) {
			prev = s.Ratings[itemID]
			next := cloneRatings(s.Ratings)
			next[itemID] = &types.Rating{ItemID: itemID, Rating: value, UpdatedAt: time.Now()}
			s.Ratings = next
			s.WatchLater = without(s.WatchLater, itemID)
		},
		inverse: func(s *State) {
			next := cloneRatings(s.Ratings)
			if prev == nil {
				delete(next, itemID)
			} else {
				next[itemID] = prev
			}
			s.Ratings = next
		},
	}
	return c.runOptimistic(ctx, ch, func(ctx context.Context) error {
		return c.gw.Rate(ctx, itemID, value)
	})
}

// ClearRating removes the user's rating optimistically.
func (c *Controller) ClearRating(ctx context.Context, itemID uuid.UUID) error {
	var prev *types.Rating
	ch := change{
		apply: func(s *State) {
			prev = s.Ratings[itemID]
			next := cloneRatings(s.Ratings)
			delete(next, itemID)
			s.Ratings = next
		},
		inverse: func(s *State) {
			if prev == nil {
				return
			}
			next := cloneRatings(s.Ratings)
			next[itemID] = prev
			s.Ratings = next
		},
	}
	return c.runOptimistic(ctx, ch, func(ctx context.Context) error {
		return c.gw.ClearRating(ctx, itemID)
	})
}

// AddWatchLater marks the item optimistically and rolls the mark back if
// the insert fails.
func (c *Controller) AddWatchLater(ctx context.Context, itemID uuid.UUID) error {
	var present bool
	ch := change{
		apply: func(s *State) {
			_, present = s.WatchLater[itemID]
			next := cloneSet(s.WatchLater)
			next[itemID] = struct{}{}
			s.WatchLater = next
		},
		inverse: func(s *State) {
			if present {
				return
			}
			s.WatchLater = without(s.WatchLater, itemID)
		},
	}
	return c.runOptimistic(ctx, ch, func(ctx context.Context) error {
		return c.gw.AddWatchLater(ctx, itemID)
	})
}

// RemoveWatchLater clears the mark optimistically and restores it if the
// delete fails.
func (c *Controller) RemoveWatchLater(ctx context.Context, itemID uuid.UUID) error {
	var present bool
	ch := change{
		apply: func(s *State) {
			_, present = s.WatchLater[itemID]
			s.WatchLater = without(s.WatchLater, itemID)
		},
		inverse: func(s *State) {
			if !present {
				return
			}
			next := cloneSet(s.WatchLater)
			next[itemID] = struct{}{}
			s.WatchLater = next
		},
	}
	return c.runOptimistic(ctx, ch, func(ctx context.Context) error {
		return c.gw.RemoveWatchLater(ctx, itemID)
	})
}

func cloneRatings(m map[uuid.UUID]*types.Rating) map[uuid.UUID]*types.Rating {
	next := make(map[uuid.UUID]*types.Rating, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	return next
}

func cloneSet(m map[uuid.UUID]struct{}) map[uuid.UUID]struct{} {
	next := make(map[uuid.UUID]struct{}, len(m)+1)
	for k := range m {
		next[k] = struct{}{}
	}
	return next
}

func without(m map[uuid.UUID]struct{}, id uuid.UUID) map[uuid.UUID]struct{} {
	if _, ok := m[id]; !ok {
		return m
	}
	next := cloneSet(m)
	delete(next, id)
	return next
}
