package ledger

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

// RecordSaleUseCase writes a sale through the ledger: sale row, "sold"
// movement and product counters in one transaction, then a refresh publish.
type RecordSaleUseCase struct {
	txRunner TxRunner
	products repository.ProductRepository
	business repository.BusinessRepository
	bus      Publisher
}

// NewRecordSaleUseCase builds the use case.
func NewRecordSaleUseCase(
	txRunner TxRunner,
	products repository.ProductRepository,
	business repository.BusinessRepository,
	bus Publisher,
) *RecordSaleUseCase {
	return &RecordSaleUseCase{txRunner: txRunner, products: products, business: business, bus: bus}
}

// Record validates and persists a sale. The product is resolved by
// normalized name; a sale for an unknown product still lands in the ledger,
// only the counter update is skipped (text correlation, no foreign key).
func (uc *RecordSaleUseCase) Record(ctx context.Context, userID string, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if in.ProductName == "" || !in.Amount.IsPositive() || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	switch in.PaymentMethod {
	case entity.PaymentCash, entity.PaymentCredit, entity.PaymentMomo:
	case "":
		in.PaymentMethod = entity.PaymentCash
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.OutstandingCredit.IsNegative() || in.OutstandingCredit.GreaterThan(in.Amount) {
		return nil, domain.ErrInvalidInput
	}

	biz, err := uc.business.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	businessID := ""
	if biz != nil {
		businessID = biz.ID
	}

	now := time.Now()
	purchaseDate := now
	if in.PurchaseDate != nil {
		purchaseDate = *in.PurchaseDate
	}

	product, err := uc.findProduct(ctx, userID, in.ProductName)
	if err != nil {
		return nil, err
	}

	sale := &entity.Sale{
		ID:                uuid.New().String(),
		UserID:            userID,
		BusinessID:        businessID,
		ProductName:       in.ProductName,
		Amount:            in.Amount,
		Quantity:          in.Quantity,
		PaymentMethod:     in.PaymentMethod,
		PurchaseDate:      purchaseDate,
		OutstandingCredit: in.OutstandingCredit,
		PartialPayment:    in.PartialPayment,
		CreatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		movement := &entity.InventoryMovement{
			ID:          uuid.New().String(),
			UserID:      userID,
			ProductName: in.ProductName,
			Type:        entity.MovementSold,
			Quantity:    in.Quantity.Neg(),
			UnitPrice:   unitPrice(in.Amount, in.Quantity),
			Note:        "sale " + sale.ID,
			OccurredAt:  purchaseDate,
			CreatedAt:   now,
		}
		if err := invRepo.CreateMovement(ctx, movement); err != nil {
			return err
		}
		if product != nil {
			return productRepo.RecordSaleStats(ctx, product.ID, in.Quantity, purchaseDate)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.bus.Publish()
	resp := toSaleResponse(*sale)
	return &resp, nil
}

// ReverseSaleUseCase nullifies a prior sale's contribution to forward
// aggregates without deleting history.
type ReverseSaleUseCase struct {
	txRunner TxRunner
	sales    repository.SaleRepository
	products repository.ProductRepository
	bus      Publisher
}

// NewReverseSaleUseCase builds the use case.
func NewReverseSaleUseCase(
	txRunner TxRunner,
	sales repository.SaleRepository,
	products repository.ProductRepository,
	bus Publisher,
) *ReverseSaleUseCase {
	return &ReverseSaleUseCase{txRunner: txRunner, sales: sales, products: products, bus: bus}
}

// Reverse marks the sale reversed, appends a compensating ledger movement
// and restores the stock counter. Reversing twice is ErrConflict.
func (uc *ReverseSaleUseCase) Reverse(ctx context.Context, userID, saleID, reason string) error {
	sale, err := uc.sales.GetByID(ctx, userID, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.Reversed {
		return domain.ErrConflict
	}

	product, err := findByName(ctx, uc.products, userID, sale.ProductName)
	if err != nil {
		return err
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := saleRepo.MarkReversed(ctx, userID, saleID, now, reason); err != nil {
			return err
		}
		movement := &entity.InventoryMovement{
			ID:          uuid.New().String(),
			UserID:      userID,
			ProductName: sale.ProductName,
			Type:        entity.MovementAdjusted,
			Quantity:    sale.EffectiveQuantity(),
			Note:        "reversal of sale " + saleID,
			OccurredAt:  now,
			CreatedAt:   now,
		}
		if err := invRepo.CreateMovement(ctx, movement); err != nil {
			return err
		}
		if product != nil {
			return productRepo.AdjustStock(ctx, product.ID, sale.EffectiveQuantity())
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.bus.Publish()
	return nil
}

func (uc *RecordSaleUseCase) findProduct(ctx context.Context, userID, name string) (*entity.Product, error) {
	return findByName(ctx, uc.products, userID, name)
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

func unitPrice(amount, quantity decimal.Decimal) decimal.Decimal {
	if quantity.IsZero() {
		return decimal.Zero
	}
	return amount.Div(quantity)
}
