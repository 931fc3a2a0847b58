package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onestep-labs/urban-solve/internal/domain"
)

// UserRepository defines persistence access for registered accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByNID(ctx context.Context, nid string) (*domain.User, error)
	GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (nid, name, email, password_hash, role, contact)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		user.NID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Contact,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = userBaseSelect + ` WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = userBaseSelect + ` WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) GetByNID(ctx context.Context, nid string) (*domain.User, error) {
	const query = userBaseSelect + ` WHERE nid=$1`
	return r.fetchSingle(ctx, query, nid)
}

func (r *userRepository) GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	const query = userBaseSelect + ` WHERE email=$1 AND role=$2`
	return r.fetchSingle(ctx, query, email, role)
}

const userBaseSelect = `
        SELECT id, nid, name, email, password_hash, role, contact, created_at
        FROM users`

func (r *userRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.NID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Contact,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
