package ports

import (
	"context"

	"github.com/uyghurcoder/login-service/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string, roleNames []string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// TokenIssuer issues and validates the signed tokens carried in the
// auth cookie. Validate returns the token subject, or one of the
// domain.ErrToken* classification errors.
type TokenIssuer interface {
	Issue(username string) (string, error)
	Validate(token string) (string, error)
}
