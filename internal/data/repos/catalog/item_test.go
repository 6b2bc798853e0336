package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/Zartof23/mytops-sub000/internal/data/repos/testutil"
)

func TestItemRepoListWithStats(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewItemRepo(db, testutil.Logger(t))
	ctx := context.Background()

	topic := testutil.SeedTopic(t, ctx, tx, "movies")

	dune := testutil.SeedItemWithMetadata(t, ctx, tx, topic.ID, "Dune", `{"release_date":"2021-10-22"}`)
	blade := testutil.SeedItemWithMetadata(t, ctx, tx, topic.ID, "Blade Runner", `{"year":"1982"}`)
	unrated := testutil.SeedItem(t, ctx, tx, topic.ID, "Unrated Film")

	testutil.SeedRatings(t, ctx, tx, dune.ID, 5, 4, 3)
	testutil.SeedRatings(t, ctx, tx, blade.ID, 5, 4, 4)

	t.Run("aggregates and ordering", func(t *testing.T) {
		rows, err := repo.ListWithStats(ctx, tx, StatsQuery{TopicID: topic.ID, Limit: 24})
		if err != nil {
			t.Fatalf("ListWithStats: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("ListWithStats: expected 3 rows, got %d", len(rows))
		}
		// Ordered by name: Blade Runner, Dune, Unrated Film.
		if rows[0].Name != "Blade Runner" || rows[1].Name != "Dune" || rows[2].Name != "Unrated Film" {
			t.Fatalf("ListWithStats: wrong order: %s, %s, %s", rows[0].Name, rows[1].Name, rows[2].Name)
		}
		// [5,4,4] rounds half-up to 4.3.
		if rows[0].AvgRating != 4.3 || rows[0].RatingCount != 3 {
			t.Fatalf("Blade Runner stats: want avg=4.3 count=3, got avg=%v count=%d", rows[0].AvgRating, rows[0].RatingCount)
		}
		// [5,4,3] averages to exactly 4.0.
		if rows[1].AvgRating != 4.0 || rows[1].RatingCount != 3 {
			t.Fatalf("Dune stats: want avg=4.0 count=3, got avg=%v count=%d", rows[1].AvgRating, rows[1].RatingCount)
		}
		// Unrated items report 0, never NULL/NaN.
		if rows[2].AvgRating != 0 || rows[2].RatingCount != 0 {
			t.Fatalf("unrated stats: want avg=0 count=0, got avg=%v count=%d", rows[2].AvgRating, rows[2].RatingCount)
		}
	})

	t.Run("search is case-insensitive substring", func(t *testing.T) {
		rows, err := repo.ListWithStats(ctx, tx, StatsQuery{TopicID: topic.ID, Search: "dUnE", Limit: 24})
		if err != nil {
			t.Fatalf("ListWithStats: %v", err)
		}
		if len(rows) != 1 || rows[0].ID != dune.ID {
			t.Fatalf("search: expected only Dune, got %d rows", len(rows))
		}
	})

	t.Run("min rating excludes unrated even at zero threshold", func(t *testing.T) {
		zero := 0.0
		rows, err := repo.ListWithStats(ctx, tx, StatsQuery{TopicID: topic.ID, MinAvgRating: &zero, Limit: 24})
		if err != nil {
			t.Fatalf("ListWithStats: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("min rating 0: expected 2 rated items, got %d", len(rows))
		}
		for _, r := range rows {
			if r.ID == unrated.ID {
				t.Fatalf("min rating 0: unrated item matched the rating filter")
			}
		}

		fourPlus := 4.0
		rows, err = repo.ListWithStats(ctx, tx, StatsQuery{TopicID: topic.ID, MinAvgRating: &fourPlus, Limit: 24})
		if err != nil {
			t.Fatalf("ListWithStats: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("min rating 4: expected 2 items (avg 4.0 and 4.33), got %d", len(rows))
		}
	})

	t.Run("released after matches date or bare year", func(t *testing.T) {
		after := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		rows, err := repo.ListWithStats(ctx, tx, StatsQuery{TopicID: topic.ID, ReleasedAfter: &after, Limit: 24})
		if err != nil {
			t.Fatalf("ListWithStats: %v", err)
		}
		// Dune via release_date; Blade Runner (1982) and the metadata-less
		// item do not match.
		if len(rows) != 1 || rows[0].ID != dune.ID {
			t.Fatalf("released after 2000: expected only Dune, got %d rows", len(rows))
		}

		earlier := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
		rows, err = repo.ListWithStats(ctx, tx, StatsQuery{TopicID: topic.ID, ReleasedAfter: &earlier, Limit: 24})
		if err != nil {
			t.Fatalf("ListWithStats: %v", err)
		}
		// Blade Runner now matches through its bare year field.
		if len(rows) != 2 {
			t.Fatalf("released after 1980: expected Dune and Blade Runner, got %d rows", len(rows))
		}
	})

	t.Run("pagination and count", func(t *testing.T) {
		rows, err := repo.ListWithStats(ctx, tx, StatsQuery{TopicID: topic.ID, Limit: 2})
		if err != nil {
			t.Fatalf("ListWithStats page 1: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("page 1: expected 2 rows, got %d", len(rows))
		}

		rows, err = repo.ListWithStats(ctx, tx, StatsQuery{TopicID: topic.ID, Limit: 2, Offset: 2})
		if err != nil {
			t.Fatalf("ListWithStats page 2: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("page 2: expected 1 row, got %d", len(rows))
		}

		total, err := repo.CountWithStats(ctx, tx, StatsQuery{TopicID: topic.ID})
		if err != nil {
			t.Fatalf("CountWithStats: %v", err)
		}
		if total != 3 {
			t.Fatalf("CountWithStats: want 3, got %d", total)
		}
	})
}

func TestItemRepoGetByTopicAndName(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewItemRepo(db, testutil.Logger(t))
	ctx := context.Background()

	topic := testutil.SeedTopic(t, ctx, tx, "games")
	item := testutil.SeedItem(t, ctx, tx, topic.ID, "Outer Wilds")

	got, err := repo.GetByTopicAndName(ctx, tx, topic.ID, "outer wilds")
	if err != nil {
		t.Fatalf("GetByTopicAndName: %v", err)
	}
	if got == nil || got.ID != item.ID {
		t.Fatalf("GetByTopicAndName: unexpected result: %+v", got)
	}

	missing, err := repo.GetByTopicAndName(ctx, tx, topic.ID, "Hollow Knight")
	if err != nil {
		t.Fatalf("GetByTopicAndName (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByTopicAndName (missing): expected nil, got %+v", missing)
	}
}
