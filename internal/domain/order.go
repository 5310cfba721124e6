package domain

import "time"

// Order statuses form a small state machine: pending_payment is the only
// non-terminal state, moving to paid on verified payment or failed on a
// gateway failure event / stale-order sweep.
const (
	OrderStatusPending = "pending_payment"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

type Order struct {
	ID               string      `json:"id"`
	UserID           string      `json:"-"`
	GatewayOrderID   string      `json:"gatewayOrderId"`
	GatewayPaymentID string      `json:"gatewayPaymentId,omitempty"`
	Status           string      `json:"status"`
	TotalAmount      int64       `json:"totalAmount"`
	ShippingAddress  Address     `json:"shippingAddress"`
	CreatedAt        time.Time   `json:"createdAt"`
	Items            []OrderItem `json:"items,omitempty"`
}

// OrderItem is a snapshot of the product at purchase time. Title, price and
// image are denormalized so later catalog edits cannot alter placed orders.
type OrderItem struct {
	ID              string `json:"id"`
	OrderID         string `json:"-"`
	ProductID       string `json:"productId"`
	ProductTitle    string `json:"productTitle"`
	PriceAtPurchase int64  `json:"priceAtPurchase"`
	Quantity        int    `json:"quantity"`
	Size            string `json:"size,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
}

type Address struct {
	Line1   string `json:"line1"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone,omitempty"`
}
