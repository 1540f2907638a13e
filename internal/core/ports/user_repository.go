package ports

import (
	"context"

	"github.com/uyghurcoder/login-service/internal/core/domain"
)

// UserRepository defines the interface for credential record persistence.
type UserRepository interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
}

// RoleRepository looks up the seeded role catalogue.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	Seed(ctx context.Context) error
}
