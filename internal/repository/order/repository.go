package order

import (
	"context"
	"time"

	"desithreads-api/internal/domain"
)

type CreateInput struct {
	UserID          string
	GatewayOrderID  string
	TotalAmount     int64
	ShippingAddress domain.Address
	Items           []ItemInput
}

// ItemInput carries the product snapshot frozen into order_items.
type ItemInput struct {
	ProductID       string
	ProductTitle    string
	PriceAtPurchase int64
	Quantity        int
	Size            string
	ImageURL        string
}

// StockShortage records a paid line whose decrement was clamped at zero.
// Payment is already captured at that point, so shortages are reported,
// never rolled back.
type StockShortage struct {
	ProductID string
	Requested int
	Available int
}

type FinalizeResult struct {
	OrderID     string
	AlreadyPaid bool
	Shortages   []StockShortage
}

// Repository owns the Order/OrderItem lifecycle. CreateWithItems and
// FinalizePaid each run as a single transaction so an order can never be
// observed without its items, and finalize side effects (status, stock,
// cart clearing) land together exactly once.
type Repository interface {
	CreateWithItems(ctx context.Context, in CreateInput) (*domain.Order, error)
	FinalizePaid(ctx context.Context, userID, gatewayOrderID, paymentID string) (*FinalizeResult, error)
	MarkFailed(ctx context.Context, gatewayOrderID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	SweepStale(ctx context.Context, olderThan time.Time) (int64, error)
}
