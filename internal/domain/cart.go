package domain

import "time"

type CartItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	ProductID string    `json:"productId"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
