package roles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/platform/db"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool db.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool db.Pool) *Repository {
	return &Repository{pool: pool}
}

// RolesForPerson returns the role ids granted to a person.
func (r *Repository) RolesForPerson(ctx context.Context, personID int64) ([]filters.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT role_id FROM person_role WHERE person_id = $1 ORDER BY role_id`, personID)
	if err != nil {
		return nil, fmt.Errorf("roles: query person roles: %w", err)
	}
	defer rows.Close()
	var out []filters.Role
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, filters.Role(id))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceRoles swaps the person's grants for roles in one transaction.
func (r *Repository) ReplaceRoles(ctx context.Context, personID int64, roles []filters.Role) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM person_role WHERE person_id = $1`, personID); err != nil {
			return fmt.Errorf("roles: clear grants: %w", err)
		}
		for _, role := range roles {
			if _, err := tx.Exec(ctx, `INSERT INTO person_role (person_id, role_id, created_at) VALUES ($1, $2, NOW())`, personID, int(role)); err != nil {
				return fmt.Errorf("roles: grant %s: %w", role, db.TranslateError(err))
			}
		}
		return nil
	})
}
