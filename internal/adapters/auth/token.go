package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventuras/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	AdminOrgs []int    `json:"orgs"`
}

type JWTTokens struct {
	secret []byte
}

// NewJWTTokens returns a TokenIssuer/TokenVerifier pair backed by HS256
// tokens signed with the given secret.
func NewJWTTokens(secret string) *JWTTokens {
	return &JWTTokens{secret: []byte(secret)}
}

func (j *JWTTokens) Issue(user *domain.User, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email:     user.Email,
		Roles:     user.Roles,
		AdminOrgs: user.AdminOrgs,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (j *JWTTokens) Verify(tokenString string) (*domain.Principal, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return &domain.Principal{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Roles:     claims.Roles,
		AdminOrgs: claims.AdminOrgs,
	}, nil
}
