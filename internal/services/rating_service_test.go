package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
	"github.com/Zartof23/mytops-sub000/internal/platform/ctxutil"
)

type recordingRatingRepo struct {
	fakeRatingRepo
	upserted *types.Rating
}

func (f *recordingRatingRepo) Upsert(_ context.Context, _ *gorm.DB, rating *types.Rating) (*types.Rating, error) {
	f.upserted = rating
	return rating, nil
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})
}

func TestRateItemRequiresAuth(t *testing.T) {
	svc := NewRatingService(nil, testLogger(t), &recordingRatingRepo{})

	_, err := svc.RateItem(context.Background(), uuid.New(), 4, "")
	if !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestRateItemValidatesRange(t *testing.T) {
	svc := NewRatingService(nil, testLogger(t), &recordingRatingRepo{})
	ctx := authedCtx(uuid.New())

	for _, bad := range []int{0, -1, 6, 100} {
		if _, err := svc.RateItem(ctx, uuid.New(), bad, ""); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
			t.Fatalf("rating %d: want ErrInvalidArgument, got %v", bad, err)
		}
	}
}

func TestRateItemUpserts(t *testing.T) {
	repo := &recordingRatingRepo{}
	svc := NewRatingService(nil, testLogger(t), repo)
	userID := uuid.New()
	itemID := uuid.New()

	got, err := svc.RateItem(authedCtx(userID), itemID, 5, "favourite")
	if err != nil {
		t.Fatalf("RateItem: %v", err)
	}
	if got.Rating != 5 || got.Note != "favourite" {
		t.Fatalf("unexpected rating row: %+v", got)
	}
	if repo.upserted == nil || repo.upserted.UserID != userID || repo.upserted.ItemID != itemID {
		t.Fatalf("upsert keyed wrong: %+v", repo.upserted)
	}
}

func TestRemoveRatingRequiresAuth(t *testing.T) {
	svc := NewRatingService(nil, testLogger(t), &recordingRatingRepo{})

	if err := svc.RemoveRating(context.Background(), uuid.New()); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}
