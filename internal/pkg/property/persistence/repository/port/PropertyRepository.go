package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNoRows signals that the requested property does not exist.
var ErrNoRows = errors.New("property repository: no rows")

// Property is the slice of the catalog the chat flow needs: enough to scope
// a conversation to a listing and resolve its agent.
type Property struct {
	ID        string    `db:"id"`
	AgentID   string    `db:"agent_id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}

// PropertyRepository exposes existence checks and minimal lookups.
type PropertyRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*Property, error)
}
