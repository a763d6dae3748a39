package ports

import (
	"context"

	"github.com/motorshield/insurance-portal/internal/core/domain"
)

// UserRepository defines persistence operations for portal accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// AuthService defines registration and login use cases.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName, phone string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
