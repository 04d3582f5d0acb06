// Package inventory holds the stock write paths (receipts, manual
// movements) and the counter-vs-ledger reconciler.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/names"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

// ReceiveStockUseCase records a purchase-in: receipt row, "received"
// movement and stock counter bump in one transaction, then a refresh
// publish.
type ReceiveStockUseCase struct {
	txRunner TxRunner
	products repository.ProductRepository
	bus      Publisher
}

// NewReceiveStockUseCase builds the use case.
func NewReceiveStockUseCase(txRunner TxRunner, products repository.ProductRepository, bus Publisher) *ReceiveStockUseCase {
	return &ReceiveStockUseCase{txRunner: txRunner, products: products, bus: bus}
}

// Receive validates and persists a stock receipt.
func (uc *ReceiveStockUseCase) Receive(ctx context.Context, userID string, in dto.ReceiveStockRequest) error {
	if in.ProductName == "" || !in.Quantity.IsPositive() || in.UnitCost.IsNegative() {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	receivedAt := now
	if in.ReceivedAt != nil {
		receivedAt = *in.ReceivedAt
	}
	totalCost := in.TotalCost
	if !totalCost.IsPositive() {
		totalCost = in.UnitCost.Mul(in.Quantity)
	}

	product, err := findByName(ctx, uc.products, userID, in.ProductName)
	if err != nil {
		return err
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.SaleRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
	) error {
		receipt := &entity.InventoryReceipt{
			ID:               uuid.New().String(),
			UserID:           userID,
			ProductName:      in.ProductName,
			QuantityReceived: in.Quantity,
			UnitCost:         in.UnitCost,
			TotalCost:        totalCost,
			ReceivedAt:       receivedAt,
			CreatedAt:        now,
		}
		if err := invRepo.CreateReceipt(ctx, receipt); err != nil {
			return err
		}
		movement := &entity.InventoryMovement{
			ID:          uuid.New().String(),
			UserID:      userID,
			ProductName: in.ProductName,
			Type:        entity.MovementReceived,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitCost,
			Note:        "stock receipt",
			OccurredAt:  receivedAt,
			CreatedAt:   now,
		}
		if err := invRepo.CreateMovement(ctx, movement); err != nil {
			return err
		}
		if product != nil {
			return productRepo.AdjustStock(ctx, product.ID, in.Quantity)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.bus.Publish()
	return nil
}

// RecordMovementUseCase appends a manual ledger entry (damaged, expired,
// adjusted) and moves the counter accordingly.
type RecordMovementUseCase struct {
	txRunner TxRunner
	products repository.ProductRepository
	bus      Publisher
}

// NewRecordMovementUseCase builds the use case.
func NewRecordMovementUseCase(txRunner TxRunner, products repository.ProductRepository, bus Publisher) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner, products: products, bus: bus}
}

// Record validates the movement type and sign, then persists it. Received
// and sold entries come from their own write paths and are rejected here.
func (uc *RecordMovementUseCase) Record(ctx context.Context, userID string, in dto.RecordMovementRequest) error {
	switch in.Type {
	case entity.MovementDamaged, entity.MovementExpired:
		// loss entries are always stock-decreasing
		if !in.Quantity.IsNegative() {
			return domain.ErrInvalidInput
		}
	case entity.MovementAdjusted:
		if in.Quantity.IsZero() {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	if in.ProductName == "" {
		return domain.ErrInvalidInput
	}

	product, err := findByName(ctx, uc.products, userID, in.ProductName)
	if err != nil {
		return err
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		_ repository.SaleRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
	) error {
		movement := &entity.InventoryMovement{
			ID:          uuid.New().String(),
			UserID:      userID,
			ProductName: in.ProductName,
			Type:        in.Type,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Note:        in.Note,
			OccurredAt:  now,
			CreatedAt:   now,
		}
		if err := invRepo.CreateMovement(ctx, movement); err != nil {
			return err
		}
		if product != nil {
			return productRepo.AdjustStock(ctx, product.ID, in.Quantity)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.bus.Publish()
	return nil
}

// findByName resolves a product by normalized-name equality.
func findByName(ctx context.Context, products repository.ProductRepository, userID, name string) (*entity.Product, error) {
	list, err := products.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if names.Match(list[i].Name, name) {
			return &list[i], nil
		}
	}
	return nil, nil
}

// LedgerTotal sums the signed movement quantities for one product name.
func LedgerTotal(movements []entity.InventoryMovement, productName string) decimal.Decimal {
	key := names.Normalize(productName)
	total := decimal.Zero
	for _, m := range movements {
		if names.Normalize(m.ProductName) == key {
			total = total.Add(m.Quantity)
		}
	}
	return total
}
