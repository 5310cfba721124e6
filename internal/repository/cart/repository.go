package cart

import (
	"context"

	"desithreads-api/internal/domain"
)

type UpsertInput struct {
	UserID    string
	ProductID string
	Size      string
	Quantity  int
}

// Repository stores per-user cart lines. One row per (user, product, size);
// a repeated upsert for the same combination increments quantity. Successful
// checkout clears rows as part of the order finalize transaction.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error)
	Upsert(ctx context.Context, in UpsertInput) (*domain.CartItem, error)
	Delete(ctx context.Context, id, userID string) error
}
