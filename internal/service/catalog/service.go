package catalog

import (
	"context"
	"errors"
	"strings"

	"desithreads-api/internal/domain"
	categoryrepo "desithreads-api/internal/repository/category"
	productrepo "desithreads-api/internal/repository/product"
)

type Service struct {
	products   productrepo.Repository
	categories categoryrepo.Repository
}

func New(products productrepo.Repository, categories categoryrepo.Repository) *Service {
	return &Service{products: products, categories: categories}
}

func (s *Service) List(ctx context.Context, orderBy string) ([]domain.Product, error) {
	return s.products.List(ctx, orderBy)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// UpsertProduct backs the admin product manager.
func (s *Service) UpsertProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, errors.New("title required")
	}
	if p.Price < 0 {
		return nil, errors.New("price must not be negative")
	}
	if p.Stock < 0 {
		return nil, errors.New("stock must not be negative")
	}
	return s.products.Upsert(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *Service) UpsertCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, errors.New("name required")
	}
	return s.categories.Upsert(ctx, c)
}
