package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/uyghurcoder/login-service/internal/core/domain"
	"github.com/uyghurcoder/login-service/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	created := cloneUser(user)
	if created.ID == "" {
		created.ID = user.Username
	}
	r.users[created.Username] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *cloneUser(u))
	}
	return all, nil
}

type stubRoleRepo struct {
	missing map[string]bool
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	if r.missing[name] {
		return nil, domain.ErrRoleNotFound
	}
	return &domain.Role{ID: name, Name: name}, nil
}

func (r *stubRoleRepo) Seed(context.Context) error { return nil }

type stubLimiter struct {
	failures map[string]int
	blocked  map[string]bool
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{failures: make(map[string]int), blocked: make(map[string]bool)}
}

func (l *stubLimiter) Allowed(_ context.Context, username string) (bool, error) {
	return !l.blocked[username], nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, username string) error {
	l.failures[username]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, username string) error {
	delete(l.failures, username)
	return nil
}

func newTestAuthService(users *stubUserRepo, limiter ports.LoginLimiter) *AuthService {
	return NewAuthService(users, &stubRoleRepo{}, NewTokenService("secret", time.Hour), limiter)
}

func TestAuthService_Register_DefaultRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass123", nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("expected exactly ROLE_USER, got %v", user.Roles)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_RequestedRoles(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	user, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass123", []string{"admin", "mod"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(user.Roles) != 2 {
		t.Fatalf("expected two roles, got %v", user.Roles)
	}
	got := domain.Identity{Roles: user.Roles}
	if !got.HasAnyRole(domain.RoleAdmin) || !got.HasAnyRole(domain.RoleModerator) {
		t.Fatalf("expected admin and moderator roles, got %v", user.Roles)
	}
}

func TestAuthService_Register_UnknownRoleFallsBack(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	user, err := svc.Register(context.Background(), "carol", "carol@example.com", "pass123", []string{"superuser"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("unknown role name must fall back to ROLE_USER, got %v", user.Roles)
	}
}

func TestAuthService_Register_MissingSeedRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubRoleRepo{missing: map[string]bool{domain.RoleUser: true}}, NewTokenService("secret", time.Hour), nil)

	if _, err := svc.Register(context.Background(), "dave", "dave@example.com", "pass123", nil); err == nil {
		t.Fatalf("expected error when seed role is missing")
	}
	if _, ok := repo.users["dave"]; ok {
		t.Fatalf("no record must be created on failure")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "alice", "a1@example.com", "pass123", nil); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "a2@example.com", "pass123", nil); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("duplicate signup must not create a record")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "alice", "shared@example.com", "pass123", nil); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "shared@example.com", "pass123", nil); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "carol", "carol@example.com", "s3cret", nil); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	// The issued token must round-trip to the same subject.
	subject, err := NewTokenService("secret", time.Hour).Validate(token)
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
	if subject != "carol" {
		t.Fatalf("expected subject carol, got %q", subject)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	limiter := newStubLimiter()
	svc := newTestAuthService(repo, limiter)

	_, _ = svc.Register(context.Background(), "dave", "dave@example.com", "goodpass", nil)
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.failures["dave"] != 1 {
		t.Fatalf("failed attempt not recorded")
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	// An unknown username must look exactly like a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	limiter := newStubLimiter()
	limiter.blocked["dave"] = true
	svc := newTestAuthService(repo, limiter)

	_, _ = svc.Register(context.Background(), "dave", "dave@example.com", "goodpass", nil)
	if _, _, err := svc.Login(context.Background(), "dave", "goodpass"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ResetsFailuresOnSuccess(t *testing.T) {
	repo := newStubUserRepo()
	limiter := newStubLimiter()
	svc := newTestAuthService(repo, limiter)

	_, _ = svc.Register(context.Background(), "erin", "erin@example.com", "goodpass", nil)
	_, _, _ = svc.Login(context.Background(), "erin", "badpass")
	if _, _, err := svc.Login(context.Background(), "erin", "goodpass"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if limiter.failures["erin"] != 0 {
		t.Fatalf("failure counter not reset after successful login")
	}
}
