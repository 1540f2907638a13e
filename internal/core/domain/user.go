package domain

import (
	"errors"
	"time"
)

// Role names carry the ROLE_ prefix so stored records, token-derived
// identities and route guards share one vocabulary.
const (
	RoleUser      = "ROLE_USER"
	RoleModerator = "ROLE_MODERATOR"
	RoleAdmin     = "ROLE_ADMIN"
)

// AllRoles is the fixed role catalogue, seeded once at startup and never
// extended through the API surface.
var AllRoles = []string{RoleUser, RoleModerator, RoleAdmin}

var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role is not found")
	ErrTooManyAttempts    = errors.New("too many failed sign-in attempts")
)

// Token validation failure classes. The authentication gate logs each
// class under its own reason, but callers treat them all identically:
// the token is rejected and the request proceeds unauthenticated.
var (
	ErrTokenMissing     = errors.New("token is empty")
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrTokenExpired     = errors.New("token is expired")
	ErrTokenSignature   = errors.New("token signature is invalid")
	ErrTokenUnsupported = errors.New("token algorithm is unsupported")
)

// User is a stored credential record. Username and email are unique
// across records; every record holds at least one role.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// Role is a seeded reference record.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Identity is the request-scoped authenticated caller, resolved from a
// token subject by the authentication gate. Roles are re-derived from
// the credential store on every request; the token itself carries none.
type Identity struct {
	ID       string
	Username string
	Email    string
	Roles    []string
}

// HasAnyRole reports whether the identity holds at least one of the
// given roles.
func (i Identity) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range i.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
