package product

import (
	"context"

	"desithreads-api/internal/domain"
)

// Repository reads and writes catalog products. Checkout treats the catalog
// as read-only; stock mutation happens inside the order repository's
// finalize transaction.
type Repository interface {
	List(ctx context.Context, orderBy string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
