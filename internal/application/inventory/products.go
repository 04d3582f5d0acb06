package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

// ProductUseCase product CRUD. Duplicate detection goes through the shared
// name normalization, the same rule the aggregation engine joins on.
type ProductUseCase struct {
	products repository.ProductRepository
	business repository.BusinessRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(products repository.ProductRepository, business repository.BusinessRepository) *ProductUseCase {
	return &ProductUseCase{products: products, business: business}
}

// Create registers a product. Name must not collide with an existing
// product under normalization.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SellingPrice.IsNegative() || in.InitialStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := findByName(ctx, uc.products, userID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
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
	product := &entity.Product{
		ID:           uuid.New().String(),
		UserID:       userID,
		BusinessID:   businessID,
		Name:         in.Name,
		CurrentStock: in.InitialStock,
		SellingPrice: in.SellingPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := toProductResponse(*product)
	return &resp, nil
}

// List returns the user's products.
func (uc *ProductUseCase) List(ctx context.Context, userID string) ([]dto.ProductResponse, error) {
	products, err := uc.products.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		CurrentStock:      p.CurrentStock,
		SellingPrice:      p.SellingPrice,
		LastSaleDate:      p.LastSaleDate,
		MonthlySalesCount: p.MonthlySalesCount,
	}
}
