package cart

import (
	"context"
	"errors"

	"desithreads-api/internal/domain"
	cartrepo "desithreads-api/internal/repository/cart"
)

type cartRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error)
	Upsert(ctx context.Context, in cartrepo.UpsertInput) (*domain.CartItem, error)
	Delete(ctx context.Context, id, userID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	repo     cartRepo
	products productRepo
}

func New(repo cartrepo.Repository, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

type AddInput struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// Add puts a product into the user's cart. Repeated adds for the same
// (product, size) accumulate quantity rather than duplicating rows.
func (s *Service) Add(ctx context.Context, userID string, in AddInput) (*domain.CartItem, error) {
	if in.ProductID == "" {
		return nil, errors.New("productId required")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 {
		return nil, errors.New("quantity must be positive")
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, err
	}
	if !product.HasSize(in.Size) {
		return nil, errors.New("size not available for this product")
	}

	item, err := s.repo.Upsert(ctx, cartrepo.UpsertInput{
		UserID:    userID,
		ProductID: in.ProductID,
		Size:      in.Size,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

func (s *Service) Remove(ctx context.Context, userID, itemID string) error {
	return s.repo.Delete(ctx, itemID, userID)
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.CartItem, error) {
	return s.repo.ListByUser(ctx, userID)
}
