package auth

import (
	"context"
	"fmt"

	"github.com/rangerclubhouse/clubhouse/internal/platform/db"
)

// Repository defines persistence operations for auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(q db.Querier) *PGRepository {
	return &PGRepository{db: q}
}

// FindByEmail fetches the account matching email, ignoring case.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password, status FROM person WHERE lower(email) = lower($1)`, email).
		Scan(&a.PersonID, &a.Email, &a.PasswordHash, &a.Status)
	if err != nil {
		return nil, fmt.Errorf("auth: find by email: %w", db.TranslateError(err))
	}
	return &a, nil
}

var _ Repository = (*PGRepository)(nil)
