package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implements InventoryRepository over PostgreSQL (pool or tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository builds the adapter. Pass a pool or a tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// CreateReceipt persists a purchase-in event.
func (r *InventoryRepo) CreateReceipt(ctx context.Context, rc *entity.InventoryReceipt) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_receipts
			(id, user_id, product_name, quantity_received, unit_cost, total_cost, received_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rc.ID, rc.UserID, rc.ProductName, rc.QuantityReceived, rc.UnitCost, rc.TotalCost,
		rc.ReceivedAt, rc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// ListReceipts returns the user's receipts, optionally bounded by an
// inclusive date window, newest first.
func (r *InventoryRepo) ListReceipts(ctx context.Context, userID string, start, end *time.Time) ([]entity.InventoryReceipt, error) {
	query := `
		SELECT id, user_id, product_name, quantity_received, unit_cost, total_cost, received_at, created_at
		FROM inventory_receipts WHERE user_id = $1`
	args := []any{userID}
	if start != nil {
		args = append(args, *start)
		query += ` AND received_at >= $` + strconv.Itoa(len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += ` AND received_at <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY received_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var list []entity.InventoryReceipt
	for rows.Next() {
		var rc entity.InventoryReceipt
		if err := rows.Scan(
			&rc.ID, &rc.UserID, &rc.ProductName, &rc.QuantityReceived, &rc.UnitCost, &rc.TotalCost,
			&rc.ReceivedAt, &rc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, rc)
	}
	return list, rows.Err()
}

// SumReceiptCost totals receipt costs over an inclusive window, applying the
// unit-cost fallback when the total was not recorded.
func (r *InventoryRepo) SumReceiptCost(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(
			CASE WHEN total_cost > 0 THEN total_cost ELSE unit_cost * quantity_received END
		), 0)
		FROM inventory_receipts
		WHERE user_id = $1 AND received_at >= $2 AND received_at <= $3`,
		userID, start, end,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum receipt cost: %w", err)
	}
	return total, nil
}

// CreateMovement appends one ledger entry.
func (r *InventoryRepo) CreateMovement(ctx context.Context, m *entity.InventoryMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_movements
			(id, user_id, product_name, type, quantity, unit_price, note, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.UserID, m.ProductName, m.Type, m.Quantity, m.UnitPrice, m.Note,
		m.OccurredAt, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListMovements returns ledger entries, optionally filtered by type, oldest
// first (ledger order).
func (r *InventoryRepo) ListMovements(ctx context.Context, userID, movementType string) ([]entity.InventoryMovement, error) {
	query := `
		SELECT id, user_id, product_name, type, quantity, unit_price, note, occurred_at, created_at
		FROM inventory_movements WHERE user_id = $1`
	args := []any{userID}
	if movementType != "" {
		args = append(args, movementType)
		query += ` AND type = $2`
	}
	query += ` ORDER BY occurred_at`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.ProductName, &m.Type, &m.Quantity, &m.UnitPrice, &m.Note,
			&m.OccurredAt, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
