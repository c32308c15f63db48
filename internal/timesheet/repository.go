package timesheet

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/rangerclubhouse/clubhouse/internal/platform/db"
	"github.com/rangerclubhouse/clubhouse/internal/restapi"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

var columns = []string{
	"id", "person_id", "position_id", "on_duty", "off_duty", "notes",
	"reviewer_notes", "review_status", "reviewer_person_id", "is_non_ranger",
	"desired_position_id", "desired_on_duty", "desired_off_duty", "created_at",
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	db db.Querier
}

// NewRepository constructs a repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

// Get loads a timesheet entry by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Timesheet, error) {
	query, args, err := db.Builder.Select(columns...).
		From("timesheet").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("timesheet: build select: %w", err)
	}
	var t Timesheet
	if err := pgxscan.Get(ctx, r.db, &t, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("timesheet: get %d: %w", id, err)
	}
	return &t, nil
}

// Update writes the named fields of t.
func (r *Repository) Update(ctx context.Context, t *Timesheet, fields []string) error {
	set := restapi.Values(t, fields)
	if len(set) == 0 {
		return nil
	}
	query, args, err := db.Builder.Update("timesheet").
		SetMap(set).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("timesheet: build update: %w", err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("timesheet: update %d: %w", t.ID, db.TranslateError(err))
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
