package ledger

import (
	"context"

	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

// TxRunner executes a function inside one DB transaction, passing
// repositories bound to that tx. Guarantees that a sale, its ledger movement
// and the product counter update commit or roll back together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Publisher is the refresh-bus side the write paths need: signal that
// transactional data changed so mounted aggregations recompute.
type Publisher interface {
	Publish()
}
