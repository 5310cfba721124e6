package catalog

import (
	"context"
	"testing"

	"desithreads-api/internal/domain"
)

type stubProducts struct {
	upserted *domain.Product
	lastIn   *domain.Product
}

func (s *stubProducts) List(_ context.Context, _ string) ([]domain.Product, error) { return nil, nil }
func (s *stubProducts) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}
func (s *stubProducts) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.lastIn = &p
	if s.upserted != nil {
		return s.upserted, nil
	}
	return &p, nil
}
func (s *stubProducts) Delete(_ context.Context, _ string) error { return nil }

type stubCategories struct{}

func (s *stubCategories) List(_ context.Context) ([]domain.Category, error) { return nil, nil }
func (s *stubCategories) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	return &c, nil
}

func TestUpsertProduct_Validation(t *testing.T) {
	svc := &Service{products: &stubProducts{}, categories: &stubCategories{}}

	if _, err := svc.UpsertProduct(context.Background(), domain.Product{Title: "  ", Price: 10}); err == nil {
		t.Fatalf("expected error for blank title")
	}
	if _, err := svc.UpsertProduct(context.Background(), domain.Product{Title: "Kurta", Price: -1}); err == nil {
		t.Fatalf("expected error for negative price")
	}
	if _, err := svc.UpsertProduct(context.Background(), domain.Product{Title: "Kurta", Price: 799, Stock: -1}); err == nil {
		t.Fatalf("expected error for negative stock")
	}
	if _, err := svc.UpsertProduct(context.Background(), domain.Product{Title: "Kurta", Price: 799, Stock: 10}); err != nil {
		t.Fatalf("UpsertProduct: %v", err)
	}
}

func TestUpsertCategory_Validation(t *testing.T) {
	svc := &Service{products: &stubProducts{}, categories: &stubCategories{}}
	if _, err := svc.UpsertCategory(context.Background(), domain.Category{Name: ""}); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if _, err := svc.UpsertCategory(context.Background(), domain.Category{Name: "Ethnic"}); err != nil {
		t.Fatalf("UpsertCategory: %v", err)
	}
}
