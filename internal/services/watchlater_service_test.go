package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
)

type fakeItemLookup struct {
	fakeItemRepo
	items map[uuid.UUID]*types.Item
}

func (f *fakeItemLookup) GetByIDs(_ context.Context, _ *gorm.DB, itemIDs []uuid.UUID) ([]*types.Item, error) {
	var out []*types.Item
	for _, id := range itemIDs {
		if item, ok := f.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeWatchLaterInsert struct {
	fakeWatchLaterRepo
	err     error
	created *types.WatchLaterEntry
}

func (f *fakeWatchLaterInsert) Create(_ context.Context, _ *gorm.DB, entry *types.WatchLaterEntry) (*types.WatchLaterEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = entry
	return entry, nil
}

func TestWatchLaterAddRequiresAuth(t *testing.T) {
	svc := NewWatchLaterService(nil, testLogger(t), &fakeWatchLaterInsert{}, &fakeItemLookup{}, &fakeBrowseTopicRepo{})

	_, err := svc.Add(context.Background(), uuid.New())
	if !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestWatchLaterAddUnknownItem(t *testing.T) {
	svc := NewWatchLaterService(nil, testLogger(t), &fakeWatchLaterInsert{}, &fakeItemLookup{}, &fakeBrowseTopicRepo{})

	_, err := svc.Add(authedCtx(uuid.New()), uuid.New())
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestWatchLaterAddCopiesTopic(t *testing.T) {
	item := &types.Item{ID: uuid.New(), TopicID: uuid.New(), Name: "Dune"}
	repo := &fakeWatchLaterInsert{}
	svc := NewWatchLaterService(nil, testLogger(t), repo,
		&fakeItemLookup{items: map[uuid.UUID]*types.Item{item.ID: item}},
		&fakeBrowseTopicRepo{})

	userID := uuid.New()
	entry, err := svc.Add(authedCtx(userID), item.ID)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if entry.UserID != userID || entry.ItemID != item.ID || entry.TopicID != item.TopicID {
		t.Fatalf("entry fields wrong: %+v", entry)
	}
}

func TestWatchLaterAddDuplicateIsConflict(t *testing.T) {
	item := &types.Item{ID: uuid.New(), TopicID: uuid.New(), Name: "Dune"}
	repo := &fakeWatchLaterInsert{err: fmt.Errorf(`duplicate key value violates unique constraint "idx_watch_later_user_item"`)}
	svc := NewWatchLaterService(nil, testLogger(t), repo,
		&fakeItemLookup{items: map[uuid.UUID]*types.Item{item.ID: item}},
		&fakeBrowseTopicRepo{})

	_, err := svc.Add(authedCtx(uuid.New()), item.ID)
	if !errors.Is(err, pkgerrors.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

type fakeWatchLaterList struct {
	fakeWatchLaterRepo
	entries []*types.WatchLaterEntry
}

func (f *fakeWatchLaterList) ListByUserTopic(_ context.Context, _ *gorm.DB, _, _ uuid.UUID) ([]*types.WatchLaterEntry, error) {
	return f.entries, nil
}

func TestWatchLaterListKeepsPriorityOrder(t *testing.T) {
	topic := &types.Topic{ID: uuid.New(), Name: "Movies", Slug: "movies"}
	first := &types.Item{ID: uuid.New(), TopicID: topic.ID, Name: "Zulu"}
	second := &types.Item{ID: uuid.New(), TopicID: topic.ID, Name: "Alien"}

	svc := NewWatchLaterService(nil, testLogger(t),
		&fakeWatchLaterList{entries: []*types.WatchLaterEntry{
			{ItemID: first.ID, TopicID: topic.ID},
			{ItemID: second.ID, TopicID: topic.ID},
		}},
		&fakeItemLookup{items: map[uuid.UUID]*types.Item{first.ID: first, second.ID: second}},
		&fakeBrowseTopicRepo{topic: topic})

	items, err := svc.ListByTopic(authedCtx(uuid.New()), "movies")
	if err != nil {
		t.Fatalf("ListByTopic: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
	// Entry order wins over any lookup ordering, even when it disagrees with
	// name order.
	if items[0].ID != first.ID || items[1].ID != second.ID {
		t.Fatalf("order lost: got [%s, %s]", items[0].Name, items[1].Name)
	}
}
