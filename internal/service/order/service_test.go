package order

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"desithreads-api/internal/domain"
)

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubRepo struct {
	orders     []domain.Order
	listErr    error
	failErr    error
	lastFailed string
	sweepN     int64
	sweepErr   error
	lastCutoff time.Time
}

func (s *stubRepo) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, s.listErr
}

func (s *stubRepo) MarkFailed(_ context.Context, gatewayOrderID string) error {
	s.lastFailed = gatewayOrderID
	return s.failErr
}

func (s *stubRepo) SweepStale(_ context.Context, olderThan time.Time) (int64, error) {
	s.lastCutoff = olderThan
	return s.sweepN, s.sweepErr
}

func TestMarkFailed(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo, logger: discard()}
	if err := svc.MarkFailed(context.Background(), "order_abc"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if repo.lastFailed != "order_abc" {
		t.Fatalf("expected order_abc, got %s", repo.lastFailed)
	}
}

func TestMarkFailed_UnknownOrder(t *testing.T) {
	repo := &stubRepo{failErr: domain.ErrNotFound}
	svc := &Service{repo: repo, logger: discard()}
	if err := svc.MarkFailed(context.Background(), "order_missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSweepStale_CutoffFromTTL(t *testing.T) {
	repo := &stubRepo{sweepN: 3}
	svc := &Service{repo: repo, logger: discard()}

	before := time.Now().Add(-time.Hour)
	n, err := svc.SweepStale(context.Background(), time.Hour)
	if err != nil {
		t.Fatalf("SweepStale: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
	// Cutoff should be roughly now-1h.
	if repo.lastCutoff.Before(before.Add(-time.Minute)) || repo.lastCutoff.After(time.Now()) {
		t.Fatalf("unexpected cutoff %v", repo.lastCutoff)
	}
}
