package domain

import (
	"context"
	"errors"
	"regexp"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether addr looks like a deliverable email address.
// Every layer that validates email input shares this one pattern.
func ValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// User represents a registered account. Roles and admin organizations are
// embedded into issued tokens; services never load users directly.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Roles        []string  `json:"roles"`
	AdminOrgs    []int     `json:"admin_orgs"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRepository defines storage operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated principal.
type TokenIssuer interface {
	Issue(user *User, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}

// AuthService handles signup and login for the local identity store.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}
