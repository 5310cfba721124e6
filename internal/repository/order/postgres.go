package order

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

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

func (r *postgresRepo) CreateWithItems(ctx context.Context, in CreateInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	order := domain.Order{
		UserID:          in.UserID,
		GatewayOrderID:  in.GatewayOrderID,
		Status:          domain.OrderStatusPending,
		TotalAmount:     in.TotalAmount,
		ShippingAddress: in.ShippingAddress,
	}
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, gateway_order_id, status, total_amount, shipping_address)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at
`, in.UserID, in.GatewayOrderID, domain.OrderStatusPending, in.TotalAmount, in.ShippingAddress).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		r.logger.Printf("order repo: insert order user=%s error=%v", in.UserID, err)
		return nil, err
	}

	for _, item := range in.Items {
		var id string
		err = tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, product_id, product_title, price_at_purchase, quantity, size, image_url)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
RETURNING id::text
`, order.ID, item.ProductID, item.ProductTitle, item.PriceAtPurchase, item.Quantity, item.Size, item.ImageURL).Scan(&id)
		if err != nil {
			r.logger.Printf("order repo: insert item order=%s product=%s error=%v", order.ID, item.ProductID, err)
			return nil, err
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:              id,
			OrderID:         order.ID,
			ProductID:       item.ProductID,
			ProductTitle:    item.ProductTitle,
			PriceAtPurchase: item.PriceAtPurchase,
			Quantity:        item.Quantity,
			Size:            item.Size,
			ImageURL:        item.ImageURL,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created order=%s gateway_order=%s items=%d total=%d", order.ID, order.GatewayOrderID, len(order.Items), order.TotalAmount)
	return &order, nil
}

// FinalizePaid marks the order paid, decrements stock per item and clears
// the user's cart, all in one transaction. Re-running it for an already
// paid order is a no-op, which makes duplicated gateway callbacks safe.
func (r *postgresRepo) FinalizePaid(ctx context.Context, userID, gatewayOrderID, paymentID string) (*FinalizeResult, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var orderID, ownerID, status string
	err = tx.QueryRow(ctx, `
SELECT id::text, user_id, status
FROM orders
WHERE gateway_order_id = $1
FOR UPDATE
`, gatewayOrderID).Scan(&orderID, &ownerID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("order repo: finalize gateway_order=%s matched no order", gatewayOrderID)
			return nil, domain.ErrStoreInconsistency
		}
		return nil, err
	}
	if ownerID != userID {
		return nil, domain.ErrNotFound
	}

	switch status {
	case domain.OrderStatusPaid:
		return &FinalizeResult{OrderID: orderID, AlreadyPaid: true}, nil
	case domain.OrderStatusFailed:
		// A verified payment against a terminally failed order means the
		// store and the gateway disagree; alert rather than flip state.
		r.logger.Printf("order repo: finalize gateway_order=%s order=%s already failed", gatewayOrderID, orderID)
		return nil, domain.ErrStoreInconsistency
	}

	if _, err := tx.Exec(ctx, `
UPDATE orders
SET status = $1, gateway_payment_id = $2
WHERE id = $3
`, domain.OrderStatusPaid, paymentID, orderID); err != nil {
		return nil, err
	}

	shortages, err := decrementStock(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, ownerID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: finalized order=%s payment=%s shortages=%d", orderID, paymentID, len(shortages))
	return &FinalizeResult{OrderID: orderID, Shortages: shortages}, nil
}

func decrementStock(ctx context.Context, tx pgx.Tx, orderID string) ([]StockShortage, error) {
	rows, err := tx.Query(ctx, `
SELECT product_id::text, quantity
FROM order_items
WHERE order_id = $1
`, orderID)
	if err != nil {
		return nil, err
	}

	type line struct {
		productID string
		quantity  int
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var shortages []StockShortage
	for _, l := range lines {
		var available int
		err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1 FOR UPDATE`, l.productID).Scan(&available)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Product deleted from the catalog after purchase. The sale
				// stands; report it as a full shortage.
				shortages = append(shortages, StockShortage{ProductID: l.productID, Requested: l.quantity})
				continue
			}
			return nil, err
		}
		if available < l.quantity {
			shortages = append(shortages, StockShortage{ProductID: l.productID, Requested: l.quantity, Available: available})
		}
		if _, err := tx.Exec(ctx, `
UPDATE products SET stock = GREATEST(stock - $1, 0) WHERE id = $2
`, l.quantity, l.productID); err != nil {
			return nil, err
		}
	}
	return shortages, nil
}

// MarkFailed moves a pending order to failed. Orders already paid or
// already failed are left untouched; a missing order is reported.
func (r *postgresRepo) MarkFailed(ctx context.Context, gatewayOrderID string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $1
WHERE gateway_order_id = $2 AND status = $3
`, domain.OrderStatusFailed, gatewayOrderID, domain.OrderStatusPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() > 0 {
		r.logger.Printf("order repo: marked failed gateway_order=%s", gatewayOrderID)
		return nil
	}

	var status string
	err = r.pool.QueryRow(ctx, `SELECT status FROM orders WHERE gateway_order_id = $1`, gatewayOrderID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id, gateway_order_id, COALESCE(gateway_payment_id, ''), status, total_amount, shipping_address, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	index := make(map[string]int)
	var ids []string
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.GatewayOrderID, &o.GatewayPaymentID, &o.Status, &o.TotalAmount, &o.ShippingAddress, &o.CreatedAt); err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	itemRows, err := r.pool.Query(ctx, `
SELECT id::text, order_id::text, product_id::text, product_title, price_at_purchase, quantity, size, COALESCE(image_url, '')
FROM order_items
WHERE order_id = ANY($1)
`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item domain.OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductTitle, &item.PriceAtPurchase, &item.Quantity, &item.Size, &item.ImageURL); err != nil {
			return nil, err
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *postgresRepo) SweepStale(ctx context.Context, olderThan time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $1
WHERE status = $2 AND created_at < $3
`, domain.OrderStatusFailed, domain.OrderStatusPending, olderThan)
	if err != nil {
		return 0, err
	}
	if n := cmd.RowsAffected(); n > 0 {
		r.logger.Printf("order repo: swept %d stale pending orders", n)
		return n, nil
	}
	return 0, nil
}
