package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
)

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func (f *fakeCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeCounter) Get(_ context.Context, key string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[key], nil
}

func (f *fakeCounter) Close() error { return nil }

type fakeAILogCount struct {
	fakeAIRequestLogRepo
	count int64
}

func (f *fakeAILogCount) CountByUserDay(_ context.Context, _ *gorm.DB, _ uuid.UUID, _ string) (int64, error) {
	return f.count, nil
}

func TestRateLimitConsumeStopsAtCap(t *testing.T) {
	svc := NewRateLimitService(nil, testLogger(t), &fakeCounter{}, &fakeAILogCount{}, 3)
	ctx := authedCtx(uuid.New())

	for i := 0; i < 3; i++ {
		if err := svc.Consume(ctx); err != nil {
			t.Fatalf("consume %d: %v", i+1, err)
		}
	}
	if err := svc.Consume(ctx); !errors.Is(err, pkgerrors.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited at cap, got %v", err)
	}
}

func TestRateLimitStatusCountsDown(t *testing.T) {
	svc := NewRateLimitService(nil, testLogger(t), &fakeCounter{}, &fakeAILogCount{}, 3)
	ctx := authedCtx(uuid.New())

	status, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.RequestsToday != 0 || status.DailyLimit != 3 || !status.CanRequest {
		t.Fatalf("fresh status wrong: %+v", status)
	}

	for i := 0; i < 3; i++ {
		if err := svc.Consume(ctx); err != nil {
			t.Fatalf("consume %d: %v", i+1, err)
		}
	}

	status, err = svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.RequestsToday != 3 || status.CanRequest {
		t.Fatalf("exhausted status wrong: %+v", status)
	}
}

func TestRateLimitFallsBackToDatabase(t *testing.T) {
	// A failing counter must not fail the request while the log table can
	// still answer.
	counter := &fakeCounter{err: errors.New("redis down")}

	svc := NewRateLimitService(nil, testLogger(t), counter, &fakeAILogCount{count: 1}, 3)
	ctx := authedCtx(uuid.New())

	status, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.RequestsToday != 1 || !status.CanRequest {
		t.Fatalf("fallback status wrong: %+v", status)
	}

	if err := svc.Consume(ctx); err != nil {
		t.Fatalf("fallback consume: %v", err)
	}

	over := NewRateLimitService(nil, testLogger(t), counter, &fakeAILogCount{count: 3}, 3)
	if err := over.Consume(ctx); !errors.Is(err, pkgerrors.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited from fallback, got %v", err)
	}
}

func TestRateLimitRequiresAuth(t *testing.T) {
	svc := NewRateLimitService(nil, testLogger(t), &fakeCounter{}, &fakeAILogCount{}, 3)

	if _, err := svc.Status(context.Background()); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if err := svc.Consume(context.Background()); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}
