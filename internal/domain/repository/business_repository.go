package repository

import (
	"context"

	"github.com/kofiannan/biztrack-api/internal/domain/entity"
)

// BusinessRepository is the persistence port for business profiles.
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	Update(ctx context.Context, business *entity.Business) error

	// GetByUserID returns (nil, nil) when the user has no profile yet; callers
	// treat that as a valid empty state.
	GetByUserID(ctx context.Context, userID string) (*entity.Business, error)

	// ListAll returns every business profile; used by the batch achievement
	// evaluator.
	ListAll(ctx context.Context) ([]entity.Business, error)
}
