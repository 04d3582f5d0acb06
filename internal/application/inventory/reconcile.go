package inventory

import (
	"context"
	"fmt"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
	"github.com/kofiannan/biztrack-api/pkg/logger"
)

// Reconciler checks each product's denormalized stock counter against the
// movement ledger. The counter is a cache; the ledger is the source of
// truth. With repair enabled, drifted counters are overwritten from the
// ledger total.
type Reconciler struct {
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	log       *logger.Logger
}

// NewReconciler builds the reconciler.
func NewReconciler(products repository.ProductRepository, inventory repository.InventoryRepository, log *logger.Logger) *Reconciler {
	return &Reconciler{products: products, inventory: inventory, log: log}
}

// Reconcile recomputes every counter from the ledger and reports
// divergence. A zero counter over an empty ledger is not drift.
func (r *Reconciler) Reconcile(ctx context.Context, userID string, repair bool) (*dto.ReconciliationDTO, error) {
	products, err := r.products.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reconcile: list products: %w", err)
	}
	movements, err := r.inventory.ListMovements(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("reconcile: list movements: %w", err)
	}

	result := &dto.ReconciliationDTO{Checked: len(products), Repaired: repair}
	for _, p := range products {
		ledgerTotal := LedgerTotal(movements, p.Name)
		drift := p.CurrentStock.Sub(ledgerTotal)
		if drift.IsZero() {
			continue
		}
		result.Drifted = append(result.Drifted, dto.DriftItemDTO{
			ProductID:   p.ID,
			Name:        p.Name,
			Counter:     p.CurrentStock,
			LedgerTotal: ledgerTotal,
			Drift:       drift,
		})
		r.log.Warn().
			Str("product", p.Name).
			Str("counter", p.CurrentStock.String()).
			Str("ledger", ledgerTotal.String()).
			Msg("stock counter drift")
		if repair {
			if err := r.products.SetStock(ctx, p.ID, ledgerTotal); err != nil {
				return nil, fmt.Errorf("reconcile: repair %s: %w", p.Name, err)
			}
		}
	}
	return result, nil
}
