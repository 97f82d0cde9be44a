package repository

import (
	"context"
	"errors"

	user "kejayangu/internal/pkg/user/application/domain"
)

// ErrNoRows signals that the requested user does not exist.
var ErrNoRows = errors.New("user repository: no rows")

// UserRepository defines persistence operations for identity records.
type UserRepository interface {
	Create(ctx context.Context, u user.User) (string, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}
