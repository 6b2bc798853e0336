package catalog

// ItemStats is the server-computed rating aggregate for one item. AvgRating
// is rounded half-up to one decimal and is 0 when the item has no ratings.
type ItemStats struct {
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

// ItemWithStats is the derived, read-only browse row: an Item plus its
// aggregate. Recomputed on every filtered fetch, never persisted.
type ItemWithStats struct {
	Item
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}
