package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	user "kejayangu/internal/pkg/user/application/domain"
	repository "kejayangu/internal/pkg/user/persistence/repository/port"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ repository.UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) Create(ctx context.Context, u user.User) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgUserRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text
	`, u.Email, u.Name, u.PasswordHash, u.Role).Scan(&id)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return "", user.ErrEmailTaken
	}
	return id, err
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id::text, email, name, password_hash, role, created_at
		FROM users WHERE id = $1::uuid
	`, id))
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id::text, email, name, password_hash, role, created_at
		FROM users WHERE email = $1
	`, email))
}

func (r *PgUserRepository) scanOne(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
