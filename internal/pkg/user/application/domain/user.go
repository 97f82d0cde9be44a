package user

import (
	"errors"
	"time"
)

// Role distinguishes plain users, listing agents, and admins.
type Role int16

const (
	RoleUser  Role = 0
	RoleAgent Role = 1
	RoleAdmin Role = 2
)

var (
	ErrInvalidCredentials = errors.New("user: invalid credentials")
	ErrEmailTaken         = errors.New("user: email already registered")
)

// User is an identity record. Identity fields are immutable after creation.
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

// CanReceiveInquiries reports whether the user is addressable as a
// conversation counterparty in the chat flow.
func (u User) CanReceiveInquiries() bool {
	return u.Role == RoleAgent || u.Role == RoleAdmin
}
