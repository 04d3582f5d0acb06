package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/names"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, user_id, business_id, product_name, amount, quantity, payment_method,
	purchase_date, reversed, reversed_at, reversal_reason, reversed_amount, reversed_quantity,
	outstanding_credit, partial_payment, created_at`

// SaleRepo implements SaleRepository over PostgreSQL (pool or tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the adapter. Pass a pool or a tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persists a sale row.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.UserID, s.BusinessID, s.ProductName, s.Amount, s.Quantity, s.PaymentMethod,
		s.PurchaseDate, s.Reversed, s.ReversedAt, s.ReversalReason, s.ReversedAmount, s.ReversedQuantity,
		s.OutstandingCredit, s.PartialPayment, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID fetches one sale scoped to its owner. Returns (nil, nil) on no rows.
func (r *SaleRepo) GetByID(ctx context.Context, userID, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE user_id = $1 AND id = $2`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, userID, id).Scan(
		&s.ID, &s.UserID, &s.BusinessID, &s.ProductName, &s.Amount, &s.Quantity, &s.PaymentMethod,
		&s.PurchaseDate, &s.Reversed, &s.ReversedAt, &s.ReversalReason, &s.ReversedAmount, &s.ReversedQuantity,
		&s.OutstandingCredit, &s.PartialPayment, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// List returns the user's sales ordered by purchase date descending,
// applying the filter. Reversed rows are excluded unless requested.
func (r *SaleRepo) List(ctx context.Context, userID string, f repository.SaleFilter) ([]entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE user_id = $1`
	args := []any{userID}

	if !f.IncludeReversed {
		query += ` AND reversed = FALSE`
	}
	if f.BusinessID != "" {
		args = append(args, f.BusinessID)
		query += ` AND business_id = $` + strconv.Itoa(len(args))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		query += ` AND purchase_date >= $` + strconv.Itoa(len(args))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		query += ` AND purchase_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY purchase_date DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.BusinessID, &s.ProductName, &s.Amount, &s.Quantity, &s.PaymentMethod,
			&s.PurchaseDate, &s.Reversed, &s.ReversedAt, &s.ReversalReason, &s.ReversedAmount, &s.ReversedQuantity,
			&s.OutstandingCredit, &s.PartialPayment, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// MarkReversed stamps the reversal fields on an existing row.
func (r *SaleRepo) MarkReversed(ctx context.Context, userID, id string, at time.Time, reason string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sales SET reversed = TRUE, reversed_at = $3, reversal_reason = $4
		WHERE user_id = $1 AND id = $2 AND reversed = FALSE`,
		userID, id, at, reason,
	)
	if err != nil {
		return fmt.Errorf("mark sale reversed: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("mark sale reversed: no matching open sale")
	}
	return nil
}

// Count counts non-reversed sales for the user.
func (r *SaleRepo) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM sales WHERE user_id = $1 AND reversed = FALSE`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return count, nil
}

// CountSince counts non-reversed sales at or after the given time.
func (r *SaleRepo) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM sales WHERE user_id = $1 AND reversed = FALSE AND purchase_date >= $2`,
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales since: %w", err)
	}
	return count, nil
}

// SumEffectiveSince totals effective amounts over non-reversed sales, from
// `since` when set. COALESCE keeps empty windows at zero.
func (r *SaleRepo) SumEffectiveSince(ctx context.Context, userID string, since *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount - reversed_amount), 0)
		FROM sales WHERE user_id = $1 AND reversed = FALSE`
	args := []any{userID}
	if since != nil {
		args = append(args, *since)
		query += ` AND purchase_date >= $2`
	}
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum effective amount: %w", err)
	}
	return total, nil
}

// DistinctProducts counts distinct product names sold. SQL only dedupes the
// raw text; the count itself goes through the shared normalization so
// "Milo  Tin" and "milo tin" stay one product here like everywhere else.
func (r *SaleRepo) DistinctProducts(ctx context.Context, userID string) (int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT product_name
		FROM sales WHERE user_id = $1 AND reversed = FALSE`, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("distinct products: %w", err)
	}
	defer rows.Close()

	var raw []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return 0, fmt.Errorf("distinct products: %w", err)
		}
		raw = append(raw, name)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("distinct products: %w", err)
	}
	return countDistinctNormalized(raw), nil
}

// countDistinctNormalized dedupes names under the shared normalization.
func countDistinctNormalized(raw []string) int {
	seen := make(map[string]struct{}, len(raw))
	for _, name := range raw {
		seen[names.Normalize(name)] = struct{}{}
	}
	return len(seen)
}
