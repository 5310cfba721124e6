package product

import (
	"context"
	"errors"
	"io"
	"log"

	"desithreads-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// orderColumns whitelists sort keys accepted from clients.
var orderColumns = map[string]string{
	"":           "created_at DESC",
	"created_at": "created_at DESC",
	"price":      "price ASC",
	"price_desc": "price DESC",
	"title":      "title ASC",
}

func (r *postgresRepo) List(ctx context.Context, orderBy string) ([]domain.Product, error) {
	clause, ok := orderColumns[orderBy]
	if !ok {
		clause = orderColumns[""]
	}
	q := `
SELECT id::text, title, COALESCE(description, ''), price, original_price, COALESCE(category_id::text, ''), COALESCE(image_url, ''), sizes, stock, created_at
FROM products
ORDER BY ` + clause
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.OriginalPrice, &p.CategoryID, &p.ImageURL, &p.Sizes, &p.Stock, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, title, COALESCE(description, ''), price, original_price, COALESCE(category_id::text, ''), COALESCE(image_url, ''), sizes, stock, created_at
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.OriginalPrice, &p.CategoryID, &p.ImageURL, &p.Sizes, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, title, description, price, original_price, category_id, image_url, sizes, stock)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, NULLIF($3, ''), $4, $5, NULLIF($6, '')::uuid, NULLIF($7, ''), $8, $9)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    original_price = EXCLUDED.original_price,
    category_id = EXCLUDED.category_id,
    image_url = EXCLUDED.image_url,
    sizes = EXCLUDED.sizes,
    stock = EXCLUDED.stock
RETURNING id::text, created_at
`
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	res := p
	err := r.pool.QueryRow(ctx, q,
		p.ID,
		p.Title,
		p.Description,
		p.Price,
		p.OriginalPrice,
		p.CategoryID,
		p.ImageURL,
		sizes,
		p.Stock,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert title=%q error=%v", p.Title, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted id=%s title=%q", res.ID, res.Title)
	return &res, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
