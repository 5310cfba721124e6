package cart

import (
	"context"
	"errors"
	"os"
	"testing"

	"desithreads-api/internal/domain"
	"desithreads-api/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_UpsertIncrementsQuantity(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	productID := insertProduct(ctx, t, pool, "Kurta", 799, 10)
	repo := NewPostgres(pool)

	first, err := repo.Upsert(ctx, UpsertInput{UserID: "user-1", ProductID: productID, Size: "M", Quantity: 1})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if first.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", first.Quantity)
	}

	second, err := repo.Upsert(ctx, UpsertInput{UserID: "user-1", ProductID: productID, Size: "M", Quantity: 2})
	if err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same row on repeat add, got %s and %s", first.ID, second.ID)
	}
	if second.Quantity != 3 {
		t.Fatalf("expected quantity 3 after increment, got %d", second.Quantity)
	}

	other, err := repo.Upsert(ctx, UpsertInput{UserID: "user-1", ProductID: productID, Size: "L", Quantity: 1})
	if err != nil {
		t.Fatalf("Upsert other size: %v", err)
	}
	if other.ID == first.ID {
		t.Fatalf("different size must create a separate row")
	}
}

func TestPostgres_ListJoinsProduct(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	productID := insertProduct(ctx, t, pool, "Saree", 1299, 5)
	repo := NewPostgres(pool)

	if _, err := repo.Upsert(ctx, UpsertInput{UserID: "user-1", ProductID: productID, Size: "", Quantity: 2}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	items, err := repo.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Product == nil || items[0].Product.Title != "Saree" || items[0].Product.Price != 1299 {
		t.Fatalf("expected joined product, got %+v", items[0].Product)
	}
}

func TestPostgres_DeleteEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	productID := insertProduct(ctx, t, pool, "Kurta", 799, 10)
	repo := NewPostgres(pool)

	item, err := repo.Upsert(ctx, UpsertInput{UserID: "user-1", ProductID: productID, Size: "M", Quantity: 1})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := repo.Delete(ctx, item.ID, "user-2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting another user's item, got %v", err)
	}
	if err := repo.Delete(ctx, item.ID, "user-1"); err != nil {
		t.Fatalf("Delete by owner: %v", err)
	}

	items, err := repo.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE order_items, orders, cart_items, products, categories CASCADE`); err != nil {
		t.Fatalf("reset tables: %v", err)
	}
}

func insertProduct(ctx context.Context, t *testing.T, pool *pgxpool.Pool, title string, price int64, stock int) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx, `
INSERT INTO products (title, price, sizes, stock)
VALUES ($1, $2, '{S,M,L}', $3)
RETURNING id::text
`, title, price, stock).Scan(&id)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return id
}
