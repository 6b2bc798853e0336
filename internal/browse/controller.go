package browse

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
	"github.com/Zartof23/mytops-sub000/internal/pkg/debounce"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
	"github.com/Zartof23/mytops-sub000/internal/services"
)

// Phase is the lifecycle of the current page load.
type Phase int

const (
	// PhaseLoading covers the first fetch for a topic, before any page has
	// arrived. Later fetches keep the previous page visible and only flip
	// Searching.
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
)

// State is an immutable snapshot handed to the notify callback. Maps are
// replaced wholesale on every mutation, never edited in place, so a held
// snapshot stays stable.
type State struct {
	Phase     Phase
	Searching bool

	TopicSlug     string
	Search        string
	MinRating     *float64
	ReleasedAfter *time.Time
	Page          int

	Result     *services.BrowsePage
	Ratings    map[uuid.UUID]*types.Rating
	WatchLater map[uuid.UUID]struct{}
	SelectedID *uuid.UUID

	// Err is set only when the initial load fails and the view has nothing
	// to show (PhaseError). A failed refetch keeps the stale Result visible
	// and reports the failure through FetchErr instead; the next successful
	// fetch clears it.
	Err      error
	FetchErr error
}

// Controller drives one browse view: topic selection, debounced search,
// filters, pagination, and optimistic rating / watch-later mutations. Every
// state transition is pushed through the notify callback.
//
// Concurrent fetches are serialized by a generation counter: each fetch
// takes the next generation, and a response whose generation is no longer
// current is discarded instead of overwriting newer data.
type Controller struct {
	mu  sync.Mutex
	gw  Gateway
	log *logger.Logger

	state    State
	notify   func(State)
	searcher *debounce.Debouncer[searchInput]

	gen         uint64
	inFlight    bool
	inFlightKey string
}

type searchInput struct {
	ctx  context.Context
	text string
}

func NewController(gw Gateway, baseLog *logger.Logger, searchDelay time.Duration, notify func(State)) *Controller {
	c := &Controller{
		gw:     gw,
		log:    baseLog.With("component", "BrowseController"),
		notify: notify,
		state:  State{Phase: PhaseLoading, Page: 1},
	}
	c.searcher = debounce.New(searchDelay, func(in searchInput) {
		c.applySearch(in.ctx, in.text)
	})
	return c
}

// Close cancels any pending debounced search. In-flight fetches finish but
// their results are discarded.
func (c *Controller) Close() {
	c.searcher.Stop()
	c.mu.Lock()
	c.gen++
	c.inFlight = false
	c.mu.Unlock()
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetTopic switches the view to a new topic. All filters, the search text,
// and pagination reset; the view re-enters the loading phase.
func (c *Controller) SetTopic(ctx context.Context, slug string) {
	c.mu.Lock()
	if c.state.TopicSlug == slug {
		c.mu.Unlock()
		return
	}
	c.state = State{Phase: PhaseLoading, TopicSlug: slug, Page: 1}
	c.mu.Unlock()
	c.requestFetch(ctx)
}

// SetSearch records the text immediately but debounces the fetch, so a
// burst of keystrokes produces one request. The fetch resets to page 1.
func (c *Controller) SetSearch(ctx context.Context, text string) {
	c.mu.Lock()
	c.state.Search = text
	c.state.Searching = true
	snapshot := c.state
	c.mu.Unlock()
	c.emit(snapshot)
	c.searcher.Set(searchInput{ctx: ctx, text: text})
}

func (c *Controller) applySearch(ctx context.Context, text string) {
	c.mu.Lock()
	if c.state.Search != text {
		// A newer keystroke superseded this emission.
		c.mu.Unlock()
		return
	}
	c.state.Page = 1
	c.mu.Unlock()
	c.requestFetch(ctx)
}

// SetMinRating changes the minimum-average filter and fetches page 1.
func (c *Controller) SetMinRating(ctx context.Context, min *float64) {
	c.mu.Lock()
	c.state.MinRating = min
	c.state.Page = 1
	c.mu.Unlock()
	c.requestFetch(ctx)
}

// SetReleasedAfter changes the release-date filter and fetches page 1.
func (c *Controller) SetReleasedAfter(ctx context.Context, after *time.Time) {
	c.mu.Lock()
	c.state.ReleasedAfter = after
	c.state.Page = 1
	c.mu.Unlock()
	c.requestFetch(ctx)
}

// SetPage fetches the given page with the current filters.
func (c *Controller) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.state.Page = page
	c.mu.Unlock()
	c.requestFetch(ctx)
}

// Refresh re-runs the current query, bypassing the duplicate-fetch check.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.inFlightKey = ""
	c.mu.Unlock()
	c.requestFetch(ctx)
}

// Select marks an item as the active detail selection.
func (c *Controller) Select(itemID uuid.UUID) {
	c.mu.Lock()
	id := itemID
	c.state.SelectedID = &id
	snapshot := c.state
	c.mu.Unlock()
	c.emit(snapshot)
}

func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.state.SelectedID = nil
	snapshot := c.state
	c.mu.Unlock()
	c.emit(snapshot)
}

func (c *Controller) requestFetch(ctx context.Context) {
	c.mu.Lock()
	key := fetchKey(c.state)
	if c.inFlight && c.inFlightKey == key {
		// Identical request already on the wire.
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	c.inFlight = true
	c.inFlightKey = key
	if c.state.Result == nil {
		c.state.Phase = PhaseLoading
	} else {
		// Every refetch past the initial load toggles the searching flag
		// around the request, whatever triggered it.
		c.state.Searching = true
	}
	q := services.BrowseQuery{
		TopicSlug:     c.state.TopicSlug,
		Search:        c.state.Search,
		MinRating:     c.state.MinRating,
		ReleasedAfter: c.state.ReleasedAfter,
		Page:          c.state.Page,
	}
	snapshot := c.state
	c.mu.Unlock()
	c.emit(snapshot)

	go c.runFetch(ctx, gen, q)
}

func (c *Controller) runFetch(ctx context.Context, gen uint64, q services.BrowseQuery) {
	page, err := c.gw.FetchPage(ctx, q)

	var ratings map[uuid.UUID]*types.Rating
	var watch map[uuid.UUID]struct{}
	if err == nil && len(page.Items) > 0 {
		ids := make([]uuid.UUID, 0, len(page.Items))
		for i := range page.Items {
			ids = append(ids, page.Items[i].Item.ID)
		}
		// Per-user overlays are best effort: an anonymous session just
		// renders the page without them.
		if r, rerr := c.gw.RatingsForItems(ctx, ids); rerr == nil {
			ratings = r
		}
		if w, werr := c.gw.WatchLaterStatus(ctx, ids); werr == nil {
			watch = w
		}
	}

	c.mu.Lock()
	if gen != c.gen {
		// A newer fetch owns the state now.
		c.mu.Unlock()
		return
	}
	c.inFlight = false
	c.state.Searching = false
	if err != nil {
		c.log.Warn("browse fetch failed", "topic", q.TopicSlug, "page", q.Page, "error", err.Error())
		if c.state.Result == nil {
			// Nothing to show: the initial load failed, full error state.
			c.state.Phase = PhaseError
			c.state.Err = err
		} else {
			// The stale list stays visible; the failure is transient.
			c.state.FetchErr = err
		}
	} else {
		c.state.Phase = PhaseReady
		c.state.Err = nil
		c.state.FetchErr = nil
		c.state.Result = page
		if ratings == nil {
			ratings = map[uuid.UUID]*types.Rating{}
		}
		if watch == nil {
			watch = map[uuid.UUID]struct{}{}
		}
		c.state.Ratings = ratings
		c.state.WatchLater = watch
	}
	snapshot := c.state
	c.mu.Unlock()
	c.emit(snapshot)
}

func (c *Controller) emit(s State) {
	if c.notify != nil {
		c.notify(s)
	}
}

func fetchKey(s State) string {
	minPart := ""
	if s.MinRating != nil {
		minPart = fmt.Sprintf("%.1f", *s.MinRating)
	}
	afterPart := ""
	if s.ReleasedAfter != nil {
		afterPart = s.ReleasedAfter.Format("2006-01-02")
	}
	return fmt.Sprintf("%s|%s|%s|%s|%d", s.TopicSlug, s.Search, minPart, afterPart, s.Page)
}
