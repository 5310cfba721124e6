package cart

import (
	"context"
	"errors"
	"testing"

	"desithreads-api/internal/domain"
	cartrepo "desithreads-api/internal/repository/cart"
)

type stubRepo struct {
	items      []domain.CartItem
	listErr    error
	upserted   *domain.CartItem
	upsertErr  error
	lastUpsert cartrepo.UpsertInput
	deleteErr  error
	lastDelID  string
	lastDelUID string
}

func (s *stubRepo) ListByUser(_ context.Context, _ string) ([]domain.CartItem, error) {
	return s.items, s.listErr
}

func (s *stubRepo) Upsert(_ context.Context, in cartrepo.UpsertInput) (*domain.CartItem, error) {
	s.lastUpsert = in
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	if s.upserted != nil {
		return s.upserted, nil
	}
	return &domain.CartItem{ID: "ci-1", UserID: in.UserID, ProductID: in.ProductID, Size: in.Size, Quantity: in.Quantity}, nil
}

func (s *stubRepo) Delete(_ context.Context, id, userID string) error {
	s.lastDelID = id
	s.lastDelUID = userID
	return s.deleteErr
}

type stubProducts struct {
	product *domain.Product
	err     error
}

func (s *stubProducts) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func TestAdd_DefaultsQuantityToOne(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo, products: &stubProducts{product: &domain.Product{ID: "p1", Sizes: []string{"M"}}}}

	item, err := svc.Add(context.Background(), "user-1", AddInput{ProductID: "p1", Size: "M"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if repo.lastUpsert.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", repo.lastUpsert.Quantity)
	}
	if item.Product == nil || item.Product.ID != "p1" {
		t.Fatalf("expected product attached to returned item")
	}
}

func TestAdd_UnknownProduct(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, products: &stubProducts{err: domain.ErrNotFound}}
	if _, err := svc.Add(context.Background(), "user-1", AddInput{ProductID: "missing"}); err == nil {
		t.Fatalf("expected error for unknown product")
	}
}

func TestAdd_SizeValidation(t *testing.T) {
	products := &stubProducts{product: &domain.Product{ID: "p1", Sizes: []string{"S", "M"}}}
	svc := &Service{repo: &stubRepo{}, products: products}

	if _, err := svc.Add(context.Background(), "user-1", AddInput{ProductID: "p1", Size: "XXL"}); err == nil {
		t.Fatalf("expected error for unavailable size")
	}
	if _, err := svc.Add(context.Background(), "user-1", AddInput{ProductID: "p1", Size: "S"}); err != nil {
		t.Fatalf("Add with valid size: %v", err)
	}

	// Products without a size list accept anything.
	products.product = &domain.Product{ID: "p2"}
	if _, err := svc.Add(context.Background(), "user-1", AddInput{ProductID: "p2", Size: "onesize"}); err != nil {
		t.Fatalf("Add sizeless product: %v", err)
	}
}

func TestAdd_NegativeQuantity(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, products: &stubProducts{product: &domain.Product{ID: "p1"}}}
	if _, err := svc.Add(context.Background(), "user-1", AddInput{ProductID: "p1", Quantity: -2}); err == nil {
		t.Fatalf("expected error for negative quantity")
	}
}

func TestRemove_PassesOwner(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo, products: &stubProducts{}}
	if err := svc.Remove(context.Background(), "user-1", "ci-9"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if repo.lastDelID != "ci-9" || repo.lastDelUID != "user-1" {
		t.Fatalf("expected delete scoped to owner, got id=%s user=%s", repo.lastDelID, repo.lastDelUID)
	}
}

func TestRemove_NotFound(t *testing.T) {
	repo := &stubRepo{deleteErr: domain.ErrNotFound}
	svc := &Service{repo: repo, products: &stubProducts{}}
	if err := svc.Remove(context.Background(), "user-1", "ci-9"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
