package order

import (
	"context"
	"io"
	"log"
	"time"

	"desithreads-api/internal/domain"
	orderrepo "desithreads-api/internal/repository/order"
)

type repo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	MarkFailed(ctx context.Context, gatewayOrderID string) error
	SweepStale(ctx context.Context, olderThan time.Time) (int64, error)
}

// Service covers order history plus the explicit pending→failed transitions
// (gateway failure webhook, stale-order sweep) that keep orders from being
// stuck at pending_payment forever.
type Service struct {
	repo   repo
	logger *log.Logger
}

func New(r orderrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: r, logger: logger}
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// MarkFailed records a gateway-side payment failure. Paid orders are never
// downgraded; repeats are no-ops.
func (s *Service) MarkFailed(ctx context.Context, gatewayOrderID string) error {
	if err := s.repo.MarkFailed(ctx, gatewayOrderID); err != nil {
		return err
	}
	s.logger.Printf("orders: marked failed gateway_order=%s", gatewayOrderID)
	return nil
}

// SweepStale fails pending orders older than ttl, covering clients that
// abandoned the payment step without any gateway callback.
func (s *Service) SweepStale(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)
	n, err := s.repo.SweepStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Printf("orders: swept %d stale pending orders older than %s", n, ttl)
	}
	return n, nil
}
