package inventory

import (
	"context"

	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

// TxRunner executes a function inside one DB transaction with repositories
// bound to that tx. Receipt, movement and counter commit together or not at
// all.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Publisher signals the refresh bus after a committed write.
type Publisher interface {
	Publish()
}
