package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/uyghurcoder/login-service/internal/core/domain"
	"github.com/uyghurcoder/login-service/internal/core/ports"
)

// AuthService implements signup and signin on top of the credential store.
type AuthService struct {
	users   ports.UserRepository
	roles   ports.RoleRepository
	tokens  ports.TokenIssuer
	limiter ports.LoginLimiter
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, tokens ports.TokenIssuer, limiter ports.LoginLimiter) *AuthService {
	return &AuthService{users: users, roles: roles, tokens: tokens, limiter: limiter}
}

// Register validates uniqueness and persists a new credential record.
// Requested role names are mapped onto the seeded catalogue; an empty
// request or an unrecognized name falls back to ROLE_USER.
func (s *AuthService) Register(ctx context.Context, username, email, password string, roleNames []string) (*domain.User, error) {
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	roles, err := s.resolveRoles(ctx, roleNames)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        roles,
	}

	return s.users.Create(ctx, user)
}

// Login verifies a password and issues a token. An unknown username is
// indistinguishable from a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if s.limiter != nil {
		// Throttle errors are advisory: a failing limiter backend must
		// not block sign-in.
		if ok, err := s.limiter.Allowed(ctx, username); err == nil && !ok {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.recordFailure(ctx, username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		_ = s.limiter.Reset(ctx, username)
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.limiter != nil {
		_ = s.limiter.RecordFailure(ctx, username)
	}
}

// resolveRoles maps requested role names onto seeded roles. "admin" and
// "mod" select the elevated roles; anything else, including an empty
// request, silently selects ROLE_USER. A name missing from the seed data
// is a server fault, not a caller error.
func (s *AuthService) resolveRoles(ctx context.Context, roleNames []string) ([]string, error) {
	wanted := map[string]struct{}{}
	if len(roleNames) == 0 {
		wanted[domain.RoleUser] = struct{}{}
	}
	for _, name := range roleNames {
		switch name {
		case "admin":
			wanted[domain.RoleAdmin] = struct{}{}
		case "mod":
			wanted[domain.RoleModerator] = struct{}{}
		default:
			wanted[domain.RoleUser] = struct{}{}
		}
	}

	roles := make([]string, 0, len(wanted))
	for _, name := range domain.AllRoles {
		if _, ok := wanted[name]; !ok {
			continue
		}
		role, err := s.roles.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve role %s: %w", name, err)
		}
		roles = append(roles, role.Name)
	}
	return roles, nil
}
