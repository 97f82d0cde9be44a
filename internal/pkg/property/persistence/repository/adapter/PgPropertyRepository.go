package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	repository "kejayangu/internal/pkg/property/persistence/repository/port"
)

type PgPropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPgPropertyRepository(pool *pgxpool.Pool) *PgPropertyRepository {
	return &PgPropertyRepository{pool: pool}
}

var _ repository.PropertyRepository = (*PgPropertyRepository)(nil)

func (r *PgPropertyRepository) Exists(ctx context.Context, id string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgPropertyRepository: nil pool")
	}
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM properties WHERE id = $1::uuid)
	`, id).Scan(&ok)
	return ok, err
}

func (r *PgPropertyRepository) FindByID(ctx context.Context, id string) (*repository.Property, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgPropertyRepository: nil pool")
	}
	var p repository.Property
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, agent_id::text, title, created_at
		FROM properties WHERE id = $1::uuid
	`, id).Scan(&p.ID, &p.AgentID, &p.Title, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
