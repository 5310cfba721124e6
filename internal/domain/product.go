package domain

import "time"

type Product struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Price         int64     `json:"price"`
	OriginalPrice *int64    `json:"originalPrice,omitempty"`
	CategoryID    string    `json:"categoryId,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	Sizes         []string  `json:"sizes,omitempty"`
	Stock         int       `json:"stock"`
	CreatedAt     time.Time `json:"createdAt"`
}

// HasSize reports whether the product is offered in the given size.
// Products without a size list accept any size (accessories etc).
func (p Product) HasSize(size string) bool {
	if len(p.Sizes) == 0 {
		return true
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
