// Package ledger holds the sales ledger reader, the single definition of
// "what counts as revenue" (the effective-amount reducers), and the sale
// write paths.
package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

// Reader fetches normalized sale rows for a user. Read-only; storage errors
// propagate as-is, the caller owns retry policy.
type Reader struct {
	sales repository.SaleRepository
}

// NewReader builds the reader.
func NewReader(sales repository.SaleRepository) *Reader {
	return &Reader{sales: sales}
}

// List returns sale rows ordered by purchase date descending. Reversed sales
// are excluded unless the filter requests them.
func (r *Reader) List(ctx context.Context, userID string, filter repository.SaleFilter) ([]entity.Sale, error) {
	rows, err := r.sales.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("ledger: list sales: %w", err)
	}
	return rows, nil
}

// ListResponse fetches rows and totals them with the shared reducers.
func (r *Reader) ListResponse(ctx context.Context, userID string, filter repository.SaleFilter) (*dto.SaleListResponse, error) {
	rows, err := r.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Sales:         make([]dto.SaleResponse, 0, len(rows)),
		TotalAmount:   SumEffectiveAmount(rows),
		TotalQuantity: SumEffectiveQuantity(rows),
	}
	for _, s := range rows {
		out.Sales = append(out.Sales, toSaleResponse(s))
	}
	return out, nil
}

// SumEffectiveAmount reduces a row set to the total effective amount.
// Reversed sales contribute zero. Every downstream summary uses this one
// reducer so profit definitions never diverge.
func SumEffectiveAmount(sales []entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.EffectiveAmount())
	}
	return total
}

// SumEffectiveQuantity reduces a row set to the total effective quantity.
func SumEffectiveQuantity(sales []entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.EffectiveQuantity())
	}
	return total
}

func toSaleResponse(s entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:                s.ID,
		ProductName:       s.ProductName,
		Amount:            s.Amount,
		Quantity:          s.Quantity,
		EffectiveAmount:   s.EffectiveAmount(),
		EffectiveQuantity: s.EffectiveQuantity(),
		PaymentMethod:     s.PaymentMethod,
		PurchaseDate:      s.PurchaseDate,
		Reversed:          s.Reversed,
		ReversalReason:    s.ReversalReason,
		OutstandingCredit: s.OutstandingCredit,
		PartialPayment:    s.PartialPayment,
	}
}
