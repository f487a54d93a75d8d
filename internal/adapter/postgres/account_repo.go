package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bodycomp/internal/domain"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

const accountColumns = "id, username, email, password_hash, age, gender, height_cm, created_at"

// GetByUsernameOrEmail retrieves an account whose username or email equals
// value exactly.
func (d *DB) GetByUsernameOrEmail(ctx context.Context, value string) (*domain.Account, error) {
	return d.scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM users WHERE username = $1 OR email = $1",
		value,
	))
}

// GetByID retrieves an account by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return d.scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM users WHERE id = $1",
		id,
	))
}

// Exists reports whether the username or email is already registered.
func (d *DB) Exists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := d.sql.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)",
		username, email,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new account and assigns its ID. A unique-constraint
// rejection maps to domain.ErrConflict.
func (d *DB) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	row := d.sql.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash, age, gender, height_cm, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+accountColumns,
		a.Username, a.Email, a.PasswordHash, a.Age, a.Gender, a.HeightCm, time.Now(),
	)
	created, err := d.scanAccount(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

// Delete removes the account with the given id. Deleting a missing id
// succeeds without effect.
func (d *DB) Delete(ctx context.Context, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

func (d *DB) scanAccount(row *sql.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash,
		&a.Age, &a.Gender, &a.HeightCm, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgerrcode.UniqueViolation
}
