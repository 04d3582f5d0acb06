package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implements BusinessRepository over PostgreSQL.
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository builds the adapter.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

// Create persists a business profile. One per user (unique user_id).
func (r *BusinessRepo) Create(ctx context.Context, b *entity.Business) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO businesses (id, user_id, name, phone, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.UserID, b.Name, b.Phone, b.Location, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// Update rewrites the profile fields.
func (r *BusinessRepo) Update(ctx context.Context, b *entity.Business) error {
	_, err := r.q.Exec(ctx, `
		UPDATE businesses SET name = $2, phone = $3, location = $4, updated_at = now()
		WHERE id = $1`,
		b.ID, b.Name, b.Phone, b.Location,
	)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}

// GetByUserID returns (nil, nil) when the user has no profile yet.
func (r *BusinessRepo) GetByUserID(ctx context.Context, userID string) (*entity.Business, error) {
	var b entity.Business
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, name, phone, location, created_at, updated_at
		FROM businesses WHERE user_id = $1`,
		userID,
	).Scan(&b.ID, &b.UserID, &b.Name, &b.Phone, &b.Location, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

// ListAll returns every business profile (batch evaluator input).
func (r *BusinessRepo) ListAll(ctx context.Context) ([]entity.Business, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, name, phone, location, created_at, updated_at
		FROM businesses ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	var list []entity.Business
	for rows.Next() {
		var b entity.Business
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Phone, &b.Location, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
