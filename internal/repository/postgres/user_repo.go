package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventuras/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, name, password_hash, salt, roles, admin_orgs, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.Salt,
		pq.Array(user.Roles), pq.Array(user.AdminOrgs),
		user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, name, password_hash, salt, roles, admin_orgs, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	user := &domain.User{}
	var roles pq.StringArray
	var orgs pq.Int64Array
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Salt,
		&roles, &orgs, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user.Roles = roles
	for _, id := range orgs {
		user.AdminOrgs = append(user.AdminOrgs, int(id))
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, name, password_hash, salt, roles, admin_orgs, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	user := &domain.User{}
	var roles pq.StringArray
	var orgs pq.Int64Array
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Salt,
		&roles, &orgs, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user.Roles = roles
	for _, id := range orgs {
		user.AdminOrgs = append(user.AdminOrgs, int(id))
	}
	return user, nil
}
