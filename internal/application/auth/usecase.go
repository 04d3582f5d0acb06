package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
	"github.com/kofiannan/biztrack-api/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase registration, login and business-profile management.
type UseCase struct {
	users    repository.UserRepository
	business repository.BusinessRepository
	jwtCfg   JWTConfig
}

// NewUseCase builds the auth use case.
func NewUseCase(users repository.UserRepository, business repository.BusinessRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{users: users, business: business, jwtCfg: jwtCfg}
}

// Register creates a user with a bcrypt-hashed password.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.users.FindByEmail(ctx, in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifies credentials and returns a signed token plus the user.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// CreateBusiness creates the user's business profile. One per user.
func (uc *UseCase) CreateBusiness(ctx context.Context, userID string, in dto.BusinessRequest) (*dto.BusinessResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.business.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	biz := &entity.Business{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		Phone:     in.Phone,
		Location:  in.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.business.Create(ctx, biz); err != nil {
		return nil, err
	}
	return toBusinessResponse(biz), nil
}

// GetBusiness returns the user's profile or (nil, nil) when absent.
func (uc *UseCase) GetBusiness(ctx context.Context, userID string) (*dto.BusinessResponse, error) {
	biz, err := uc.business.GetByUserID(ctx, userID)
	if err != nil || biz == nil {
		return nil, err
	}
	return toBusinessResponse(biz), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

func toBusinessResponse(b *entity.Business) *dto.BusinessResponse {
	return &dto.BusinessResponse{
		ID:        b.ID,
		Name:      b.Name,
		Phone:     b.Phone,
		Location:  b.Location,
		CreatedAt: b.CreatedAt,
	}
}
