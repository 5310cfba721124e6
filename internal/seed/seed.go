package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Title         string
	Description   string
	Price         int64
	OriginalPrice int64
	Category      string
	ImageURL      string
	Sizes         []string
	Stock         int
}

// Apply inserts a demo catalog for manual testing. It is idempotent: categories
// upsert on name, products insert only when the title is not already present.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := map[string]string{
		"Kurtas":      "https://images.example.com/categories/kurtas.jpg",
		"Sarees":      "https://images.example.com/categories/sarees.jpg",
		"Lehengas":    "https://images.example.com/categories/lehengas.jpg",
		"Accessories": "https://images.example.com/categories/accessories.jpg",
	}

	categoryIDs := make(map[string]string, len(categories))
	for name, image := range categories {
		id, err := ensureCategory(ctx, pool, name, image)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		categoryIDs[name] = id
	}

	products := []productSeed{
		{
			Title:         "Chikankari Cotton Kurta",
			Description:   "Hand-embroidered chikankari on breathable white cotton",
			Price:         799,
			OriginalPrice: 1199,
			Category:      "Kurtas",
			ImageURL:      "https://images.example.com/products/chikankari-kurta.jpg",
			Sizes:         []string{"S", "M", "L", "XL"},
			Stock:         25,
		},
		{
			Title:         "Anarkali Festive Kurta",
			Description:   "Flared anarkali cut with gota patti detailing",
			Price:         999,
			OriginalPrice: 1499,
			Category:      "Kurtas",
			ImageURL:      "https://images.example.com/products/anarkali-kurta.jpg",
			Sizes:         []string{"S", "M", "L"},
			Stock:         18,
		},
		{
			Title:         "Banarasi Silk Saree",
			Description:   "Pure Banarasi silk with zari border",
			Price:         2499,
			OriginalPrice: 3999,
			Category:      "Sarees",
			ImageURL:      "https://images.example.com/products/banarasi-saree.jpg",
			Stock:         10,
		},
		{
			Title:         "Bandhani Georgette Saree",
			Description:   "Traditional bandhani print on flowing georgette",
			Price:         1299,
			Category:      "Sarees",
			ImageURL:      "https://images.example.com/products/bandhani-saree.jpg",
			Stock:         15,
		},
		{
			Title:         "Embroidered Bridal Lehenga",
			Description:   "Heavy zardozi work with matching dupatta",
			Price:         7999,
			OriginalPrice: 11999,
			Category:      "Lehengas",
			ImageURL:      "https://images.example.com/products/bridal-lehenga.jpg",
			Sizes:         []string{"S", "M", "L", "XL"},
			Stock:         5,
		},
		{
			Title:         "Oxidised Silver Jhumkas",
			Description:   "Lightweight oxidised jhumkas for daily wear",
			Price:         349,
			Category:      "Accessories",
			ImageURL:      "https://images.example.com/products/jhumkas.jpg",
			Stock:         50,
		},
	}

	for _, p := range products {
		if err := insertProduct(ctx, pool, categoryIDs[p.Category], p); err != nil {
			return fmt.Errorf("insert product %s: %w", p.Title, err)
		}
	}

	return nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name, imageURL string) (string, error) {
	const q = `
INSERT INTO categories (name, image_url)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET image_url = EXCLUDED.image_url
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, name, imageURL).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID string, p productSeed) error {
	const q = `
INSERT INTO products (title, description, price, original_price, category_id, image_url, sizes, stock)
SELECT $1, $2, $3, NULLIF($4, 0), $5::uuid, $6, $7, $8
WHERE NOT EXISTS (SELECT 1 FROM products WHERE title = $1)
`
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	_, err := pool.Exec(ctx, q, p.Title, p.Description, p.Price, p.OriginalPrice, categoryID, p.ImageURL, sizes, p.Stock)
	return err
}
