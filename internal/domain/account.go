// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates that the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness violation on username or email.
	ErrConflict = errors.New("username or email already exists")
)

// Account represents a registered user.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Age          *int      `json:"age,omitempty"`
	Gender       *string   `json:"gender,omitempty"`
	HeightCm     *float64  `json:"heightCm,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AccountRepository is the port for account persistence. Lookups return
// (nil, nil) when no matching account exists.
type AccountRepository interface {
	// GetByUsernameOrEmail matches the value exactly against either unique
	// column, supporting login by username or email.
	GetByUsernameOrEmail(ctx context.Context, value string) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	// Exists reports whether an account with the given username or email is
	// already registered. The check and a subsequent Create are not atomic;
	// the storage unique constraint is the authoritative conflict signal.
	Exists(ctx context.Context, username, email string) (bool, error)
	// Create inserts the account and assigns its ID. A unique-constraint
	// rejection surfaces as ErrConflict.
	Create(ctx context.Context, a *Account) (*Account, error)
	// Delete removes the account with the given id. Deleting an id that does
	// not exist is a no-op success.
	Delete(ctx context.Context, id int64) error
}
