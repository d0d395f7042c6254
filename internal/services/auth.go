package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventuras/internal/domain"
)

const minPasswordLen = 8

type authService struct {
	userRepo  domain.UserRepository
	hasher    domain.PasswordHasher
	issuer    domain.TokenIssuer
	jwtExpiry time.Duration
}

// NewAuthService creates an AuthService backed by the local user store.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer, jwtExpiry time.Duration) domain.AuthService {
	return &authService{
		userRepo:  userRepo,
		hasher:    hasher,
		issuer:    issuer,
		jwtExpiry: jwtExpiry,
	}
}

func (s *authService) SignUp(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !domain.ValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		// Do not reveal whether the account exists.
		return "", nil, fmt.Errorf("invalid credentials")
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}
	token, err := s.issuer.Issue(user, s.jwtExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
