package browse

import (
	"context"

	"github.com/google/uuid"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
	"github.com/Zartof23/mytops-sub000/internal/services"
)

// Gateway is the data access surface the page controller drives. The local
// implementation calls straight into the service layer; an HTTP client
// implementation can stand in for embedded or test use.
type Gateway interface {
	FetchPage(ctx context.Context, q services.BrowseQuery) (*services.BrowsePage, error)
	RatingsForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*types.Rating, error)
	WatchLaterStatus(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)

	Rate(ctx context.Context, itemID uuid.UUID, rating int) error
	ClearRating(ctx context.Context, itemID uuid.UUID) error
	AddWatchLater(ctx context.Context, itemID uuid.UUID) error
	RemoveWatchLater(ctx context.Context, itemID uuid.UUID) error
}

type localGateway struct {
	catalog    services.CatalogService
	rating     services.RatingService
	watchLater services.WatchLaterService
}

func NewLocalGateway(catalog services.CatalogService, rating services.RatingService, watchLater services.WatchLaterService) Gateway {
	return &localGateway{catalog: catalog, rating: rating, watchLater: watchLater}
}

func (g *localGateway) FetchPage(ctx context.Context, q services.BrowseQuery) (*services.BrowsePage, error) {
	return g.catalog.BrowseItems(ctx, q)
}

func (g *localGateway) RatingsForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*types.Rating, error) {
	return g.rating.RatingsForItems(ctx, itemIDs)
}

func (g *localGateway) WatchLaterStatus(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return g.watchLater.StatusForItems(ctx, itemIDs)
}

func (g *localGateway) Rate(ctx context.Context, itemID uuid.UUID, rating int) error {
	_, err := g.rating.RateItem(ctx, itemID, rating, "")
	return err
}

func (g *localGateway) ClearRating(ctx context.Context, itemID uuid.UUID) error {
	return g.rating.RemoveRating(ctx, itemID)
}

func (g *localGateway) AddWatchLater(ctx context.Context, itemID uuid.UUID) error {
	_, err := g.watchLater.Add(ctx, itemID)
	return err
}

func (g *localGateway) RemoveWatchLater(ctx context.Context, itemID uuid.UUID) error {
	return g.watchLater.Remove(ctx, itemID)
}
