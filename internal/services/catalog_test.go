package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	repocatalog "github.com/Zartof23/mytops-sub000/internal/data/repos/catalog"
	types "github.com/Zartof23/mytops-sub000/internal/domain"
	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
)

type fakeBrowseTopicRepo struct {
	fakeTopicRepo
	topic *types.Topic
}

func (f *fakeBrowseTopicRepo) GetBySlug(_ context.Context, _ *gorm.DB, slug string) (*types.Topic, error) {
	if f.topic != nil && f.topic.Slug == slug {
		return f.topic, nil
	}
	return nil, nil
}

type fakeBrowseItemRepo struct {
	fakeItemRepo
	gotList  repocatalog.StatsQuery
	gotCount repocatalog.StatsQuery
	items    []types.ItemWithStats
	total    int64
}

func (f *fakeBrowseItemRepo) ListWithStats(_ context.Context, _ *gorm.DB, q repocatalog.StatsQuery) ([]types.ItemWithStats, error) {
	f.gotList = q
	return f.items, nil
}

func (f *fakeBrowseItemRepo) CountWithStats(_ context.Context, _ *gorm.DB, q repocatalog.StatsQuery) (int64, error) {
	f.gotCount = q
	return f.total, nil
}

func TestBrowseItemsPagination(t *testing.T) {
	topic := &types.Topic{ID: uuid.New(), Name: "Movies", Slug: "movies"}
	topicRepo := &fakeBrowseTopicRepo{topic: topic}

	cases := []struct {
		name       string
		page       int
		total      int64
		wantPage   int
		wantOffset int
		wantPages  int
	}{
		{"first page", 1, 100, 1, 0, 5},
		{"third page", 3, 100, 3, 48, 5},
		{"zero clamps to one", 0, 100, 1, 0, 5},
		{"negative clamps to one", -4, 100, 1, 0, 5},
		{"no matches still one page", 1, 0, 1, 0, 1},
		{"partial last page", 2, 25, 2, 24, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			itemRepo := &fakeBrowseItemRepo{total: tc.total}
			svc := NewCatalogService(nil, testLogger(t), topicRepo, itemRepo, 0)

			got, err := svc.BrowseItems(context.Background(), BrowseQuery{TopicSlug: "movies", Page: tc.page})
			if err != nil {
				t.Fatalf("BrowseItems: %v", err)
			}
			if got.Page != tc.wantPage {
				t.Fatalf("page: want=%d got=%d", tc.wantPage, got.Page)
			}
			if got.PageSize != DefaultPageSize {
				t.Fatalf("page size: want=%d got=%d", DefaultPageSize, got.PageSize)
			}
			if itemRepo.gotList.Offset != tc.wantOffset {
				t.Fatalf("offset: want=%d got=%d", tc.wantOffset, itemRepo.gotList.Offset)
			}
			if itemRepo.gotList.Limit != DefaultPageSize {
				t.Fatalf("limit: want=%d got=%d", DefaultPageSize, itemRepo.gotList.Limit)
			}
			if got.TotalPages != tc.wantPages {
				t.Fatalf("total pages: want=%d got=%d", tc.wantPages, got.TotalPages)
			}
		})
	}
}

func TestBrowseItemsPassesFilters(t *testing.T) {
	topic := &types.Topic{ID: uuid.New(), Name: "Movies", Slug: "movies"}
	itemRepo := &fakeBrowseItemRepo{}
	svc := NewCatalogService(nil, testLogger(t), &fakeBrowseTopicRepo{topic: topic}, itemRepo, 0)

	minRating := 4.0
	released := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.BrowseItems(context.Background(), BrowseQuery{
		TopicSlug:     "movies",
		Search:        "dune",
		MinRating:     &minRating,
		ReleasedAfter: &released,
		Page:          1,
	})
	if err != nil {
		t.Fatalf("BrowseItems: %v", err)
	}

	q := itemRepo.gotList
	if q.TopicID != topic.ID {
		t.Fatalf("topic id: want=%s got=%s", topic.ID, q.TopicID)
	}
	if q.Search != "dune" {
		t.Fatalf("search: want=dune got=%q", q.Search)
	}
	if q.MinAvgRating == nil || *q.MinAvgRating != 4.0 {
		t.Fatalf("min rating not forwarded: %+v", q.MinAvgRating)
	}
	if q.ReleasedAfter == nil || !q.ReleasedAfter.Equal(released) {
		t.Fatalf("released-after not forwarded: %+v", q.ReleasedAfter)
	}
	// List and count must see the same filter set.
	if itemRepo.gotCount.TopicID != q.TopicID || itemRepo.gotCount.Search != q.Search {
		t.Fatalf("count query diverged from list query")
	}
}

func TestBrowseItemsPageSizeOverride(t *testing.T) {
	topic := &types.Topic{ID: uuid.New(), Name: "Movies", Slug: "movies"}

	cases := []struct {
		name     string
		size     int
		wantSize int
	}{
		{"explicit size", 10, 10},
		{"zero falls back to default", 0, DefaultPageSize},
		{"capped at max", 500, MaxPageSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			itemRepo := &fakeBrowseItemRepo{total: 100}
			svc := NewCatalogService(nil, testLogger(t), &fakeBrowseTopicRepo{topic: topic}, itemRepo, 0)

			got, err := svc.BrowseItems(context.Background(), BrowseQuery{TopicSlug: "movies", Page: 2, PageSize: tc.size})
			if err != nil {
				t.Fatalf("BrowseItems: %v", err)
			}
			if got.PageSize != tc.wantSize {
				t.Fatalf("page size: want=%d got=%d", tc.wantSize, got.PageSize)
			}
			if itemRepo.gotList.Limit != tc.wantSize || itemRepo.gotList.Offset != tc.wantSize {
				t.Fatalf("query: limit=%d offset=%d want both %d", itemRepo.gotList.Limit, itemRepo.gotList.Offset, tc.wantSize)
			}
		})
	}
}

func TestBrowseItemsUnknownTopic(t *testing.T) {
	svc := NewCatalogService(nil, testLogger(t), &fakeBrowseTopicRepo{}, &fakeBrowseItemRepo{}, 0)

	_, err := svc.BrowseItems(context.Background(), BrowseQuery{TopicSlug: "nope"})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
