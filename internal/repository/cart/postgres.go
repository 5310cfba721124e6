package cart

import (
	"context"
	"errors"

	"desithreads-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// ListByUser joins the live product so the cart shows current catalog data,
// as opposed to the frozen snapshot taken into order_items at purchase time.
func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error) {
	const q = `
SELECT ci.id::text, ci.user_id, ci.product_id::text, ci.size, ci.quantity, ci.created_at,
       p.id::text, p.title, COALESCE(p.description, ''), p.price, p.original_price,
       COALESCE(p.category_id::text, ''), COALESCE(p.image_url, ''), p.sizes, p.stock, p.created_at
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = $1
ORDER BY ci.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		var p domain.Product
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Size, &item.Quantity, &item.CreatedAt,
			&p.ID, &p.Title, &p.Description, &p.Price, &p.OriginalPrice,
			&p.CategoryID, &p.ImageURL, &p.Sizes, &p.Stock, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.Product = &p
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, in UpsertInput) (*domain.CartItem, error) {
	const q = `
INSERT INTO cart_items (user_id, product_id, size, quantity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, product_id, size) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING id::text, user_id, product_id::text, size, quantity, created_at
`
	var item domain.CartItem
	err := r.pool.QueryRow(ctx, q, in.UserID, in.ProductID, in.Size, in.Quantity).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Size, &item.Quantity, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete is scoped by user so one user cannot remove another user's line by id.
func (r *postgresRepo) Delete(ctx context.Context, id, userID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
