package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    "pw",
		DisplayName: "Seed User",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedTopic(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.Topic {
	tb.Helper()
	t := &types.Topic{
		ID:   uuid.New(),
		Name: slug,
		Slug: slug,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed topic: %v", err)
	}
	return t
}

func SeedItem(tb testing.TB, ctx context.Context, tx *gorm.DB, topicID uuid.UUID, name string) *types.Item {
	tb.Helper()
	i := &types.Item{
		ID:         uuid.New(),
		TopicID:    topicID,
		Name:       name,
		Slug:       name,
		Provenance: types.ProvenanceSeed,
		Metadata:   datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(i).Error; err != nil {
		tb.Fatalf("seed item: %v", err)
	}
	return i
}

func SeedItemWithMetadata(tb testing.TB, ctx context.Context, tx *gorm.DB, topicID uuid.UUID, name, metadata string) *types.Item {
	tb.Helper()
	i := &types.Item{
		ID:         uuid.New(),
		TopicID:    topicID,
		Name:       name,
		Slug:       name,
		Provenance: types.ProvenanceSeed,
		Metadata:   datatypes.JSON([]byte(metadata)),
	}
	if err := tx.WithContext(ctx).Create(i).Error; err != nil {
		tb.Fatalf("seed item with metadata: %v", err)
	}
	return i
}

func SeedRating(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, itemID uuid.UUID, rating int) *types.Rating {
	tb.Helper()
	r := &types.Rating{
		ID:     uuid.New(),
		UserID: userID,
		ItemID: itemID,
		Rating: rating,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed rating: %v", err)
	}
	return r
}

// SeedRatings creates one rating per value, each from a fresh user.
func SeedRatings(tb testing.TB, ctx context.Context, tx *gorm.DB, itemID uuid.UUID, values ...int) {
	tb.Helper()
	for n, v := range values {
		u := SeedUser(tb, ctx, tx, fmt.Sprintf("rater-%s-%d@example.com", itemID.String()[:8], n))
		SeedRating(tb, ctx, tx, u.ID, itemID, v)
	}
}

func SeedWatchLater(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, itemID, topicID uuid.UUID) *types.WatchLaterEntry {
	tb.Helper()
	w := &types.WatchLaterEntry{
		ID:      uuid.New(),
		UserID:  userID,
		ItemID:  itemID,
		TopicID: topicID,
	}
	if err := tx.WithContext(ctx).Create(w).Error; err != nil {
		tb.Fatalf("seed watch later: %v", err)
	}
	return w
}
