// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"bodycomp/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu           sync.Mutex
	accounts     []domain.Account
	measurements []domain.Measurement

	accountIDCounter     int64
	measurementIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.AccountRepository = (*DB)(nil)
var _ domain.MeasurementRepository = (*DB)(nil)

// --- AccountRepository ---

// GetByUsernameOrEmail retrieves an account by username or email.
func (db *DB) GetByUsernameOrEmail(ctx context.Context, value string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.accounts {
		if db.accounts[i].Username == value || db.accounts[i].Email == value {
			a := db.accounts[i]
			return &a, nil
		}
	}
	return nil, nil
}

// GetByID retrieves an account by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.accounts {
		if db.accounts[i].ID == id {
			a := db.accounts[i]
			return &a, nil
		}
	}
	return nil, nil
}

// Exists reports whether the username or email is taken.
func (db *DB) Exists(ctx context.Context, username, email string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.accounts {
		if db.accounts[i].Username == username || db.accounts[i].Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Create inserts a new account, enforcing the same uniqueness rule the
// database constraint does.
func (db *DB) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.accounts {
		if db.accounts[i].Username == a.Username || db.accounts[i].Email == a.Email {
			return nil, domain.ErrConflict
		}
	}

	db.accountIDCounter++
	stored := *a
	stored.ID = db.accountIDCounter
	stored.CreatedAt = time.Now().UTC()
	db.accounts = append(db.accounts, stored)

	created := stored
	return &created, nil
}

// Delete removes an account by ID. Missing ids are a no-op.
func (db *DB) Delete(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.accounts {
		if db.accounts[i].ID == id {
			db.accounts = append(db.accounts[:i], db.accounts[i+1:]...)
			return nil
		}
	}
	return nil
}

// Count returns the number of stored accounts.
func (db *DB) Count() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.accounts)
}

// --- MeasurementRepository ---

// ListRecentMeasurements lists the most recent measurements for a user.
func (db *DB) ListRecentMeasurements(ctx context.Context, userID int64, limit int) ([]domain.Measurement, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Measurement
	for _, m := range db.measurements {
		if m.UserID == userID {
			result = append(result, m)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// SeedMeasurement inserts a measurement directly; in production the series
// is written by the scale-import pipeline, not through this repository.
func (db *DB) SeedMeasurement(m domain.Measurement) domain.Measurement {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.measurementIDCounter++
	m.ID = db.measurementIDCounter
	if m.Unit == "" {
		m.Unit = "kg"
	}
	if m.RecordedAt.IsZero() {
		m.RecordedAt = time.Now().UTC()
	}
	db.measurements = append(db.measurements, m)
	return m
}
