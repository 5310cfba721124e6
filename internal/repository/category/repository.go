package category

import (
	"context"

	"desithreads-api/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}
