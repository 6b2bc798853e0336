package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

type fakeRatingRows struct {
	fakeRatingRepo
	rows []*types.Rating
}

func (f *fakeRatingRows) ListByItemIDs(_ context.Context, _ *gorm.DB, itemIDs []uuid.UUID) ([]*types.Rating, error) {
	want := map[uuid.UUID]struct{}{}
	for _, id := range itemIDs {
		want[id] = struct{}{}
	}
	var out []*types.Rating
	for _, r := range f.rows {
		if _, ok := want[r.ItemID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestComputeStats(t *testing.T) {
	cases := []struct {
		name      string
		values    []int
		wantAvg   float64
		wantCount int
	}{
		{"no ratings", nil, 0, 0},
		{"exact average", []int{5, 4, 3}, 4.0, 3},
		{"rounds half up", []int{5, 4, 4}, 4.3, 3},
		{"single rating", []int{2}, 2.0, 1},
		{"half value rounds up", []int{4, 5}, 4.5, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeStats(tc.values)
			if got.AvgRating != tc.wantAvg {
				t.Fatalf("avg: want=%v got=%v", tc.wantAvg, got.AvgRating)
			}
			if got.RatingCount != tc.wantCount {
				t.Fatalf("count: want=%d got=%d", tc.wantCount, got.RatingCount)
			}
		})
	}
}

func TestStatsForItemsEmptyInput(t *testing.T) {
	svc := NewStatsService(nil, testLogger(t), &fakeRatingRows{})

	got, err := svc.StatsForItems(context.Background(), nil)
	if err != nil {
		t.Fatalf("StatsForItems: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("empty input: want empty map, got %d entries", len(got))
	}
}

func TestStatsForItemsUnratedItemGetsZeroes(t *testing.T) {
	rated := uuid.New()
	unrated := uuid.New()
	svc := NewStatsService(nil, testLogger(t), &fakeRatingRows{rows: []*types.Rating{
		{ItemID: rated, Rating: 5},
		{ItemID: rated, Rating: 4},
		{ItemID: rated, Rating: 4},
	}})

	got, err := svc.StatsForItems(context.Background(), []uuid.UUID{rated, unrated})
	if err != nil {
		t.Fatalf("StatsForItems: %v", err)
	}
	if got[rated].AvgRating != 4.3 || got[rated].RatingCount != 3 {
		t.Fatalf("rated item: want avg=4.3 count=3, got %+v", got[rated])
	}
	// Unrated items are present with zeroes, never NaN or missing.
	if got[unrated].AvgRating != 0 || got[unrated].RatingCount != 0 {
		t.Fatalf("unrated item: want {0,0}, got %+v", got[unrated])
	}
}
