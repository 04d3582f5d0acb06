package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, user_id, business_id, name, current_stock, selling_price,
	last_sale_date, monthly_sales_count, created_at, updated_at`

// ProductRepo implements ProductRepository over PostgreSQL (pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the adapter. Pass a pool or a tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persists a new product.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.UserID, p.BusinessID, p.Name, p.CurrentStock, p.SellingPrice,
		p.LastSaleDate, p.MonthlySalesCount, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update rewrites name and selling price. Stock goes through the dedicated
// counter methods only.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, selling_price = $3, updated_at = $4 WHERE id = $1`,
		p.ID, p.Name, p.SellingPrice, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// GetByID fetches one product scoped to its owner. Returns (nil, nil) on no rows.
func (r *ProductRepo) GetByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND id = $2`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, userID, id).Scan(
		&p.ID, &p.UserID, &p.BusinessID, &p.Name, &p.CurrentStock, &p.SellingPrice,
		&p.LastSaleDate, &p.MonthlySalesCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List returns the user's products ordered by name.
func (r *ProductRepo) List(ctx context.Context, userID string) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.BusinessID, &p.Name, &p.CurrentStock, &p.SellingPrice,
			&p.LastSaleDate, &p.MonthlySalesCount, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// AdjustStock adds delta (signed) to the running counter.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = current_stock + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	return nil
}

// SetStock overwrites the counter (reconciliation repair).
func (r *ProductRepo) SetStock(ctx context.Context, id string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return nil
}

// RecordSaleStats decrements stock and bumps the sale bookkeeping in one
// statement. The monthly counter resets when the previous sale was in an
// earlier month.
func (r *ProductRepo) RecordSaleStats(ctx context.Context, id string, quantity decimal.Decimal, at time.Time) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products SET
			current_stock = current_stock - $2,
			monthly_sales_count = CASE
				WHEN last_sale_date IS NULL OR date_trunc('month', last_sale_date) <> date_trunc('month', $3::timestamptz)
				THEN 1 ELSE monthly_sales_count + 1 END,
			last_sale_date = $3,
			updated_at = now()
		WHERE id = $1`,
		id, quantity, at,
	)
	if err != nil {
		return fmt.Errorf("record sale stats: %w", err)
	}
	return nil
}
