package vehicle

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
	"id", "person_id", "event_year", "type", "vehicle_class", "vehicle_year",
	"vehicle_make", "vehicle_model", "vehicle_color", "vehicle_type",
	"rental_number", "license_number", "license_state", "request_comment",
	"driving_sticker", "sticker_number", "fuel_chit", "ranger_logo",
	"amber_light", "team_assignment", "status", "response_comment", "notes",
	"maintenance_notes", "last_service_date", "odometer", "created_at",
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	db db.Querier
}

// NewRepository constructs a repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

// Get loads a vehicle by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Vehicle, error) {
	query, args, err := db.Builder.Select(columns...).
		From("vehicle").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("vehicle: build select: %w", err)
	}
	var v Vehicle
	if err := pgxscan.Get(ctx, r.db, &v, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("vehicle: get %d: %w", id, err)
	}
	return &v, nil
}

// List returns vehicles matching filter, newest first.
func (r *Repository) List(ctx context.Context, filter Filter) ([]*Vehicle, error) {
	qb := db.Builder.Select(columns...).From("vehicle").OrderBy("event_year DESC", "id")
	if filter.PersonID != 0 {
		qb = qb.Where(squirrel.Eq{"person_id": filter.PersonID})
	}
	if filter.Year != 0 {
		qb = qb.Where(squirrel.Eq{"event_year": filter.Year})
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("vehicle: build list: %w", err)
	}
	var out []*Vehicle
	if err := pgxscan.Select(ctx, r.db, &out, query, args...); err != nil {
		return nil, fmt.Errorf("vehicle: list: %w", err)
	}
	return out, nil
}

// Create inserts v with the named fields and fills its id and created_at.
func (r *Repository) Create(ctx context.Context, v *Vehicle, fields []string) error {
	set := restapi.Values(v, fields)
	cols := make([]string, 0, len(fields))
	vals := make([]any, 0, len(fields))
	for _, field := range fields {
		if value, ok := set[field]; ok {
			cols = append(cols, field)
			vals = append(vals, value)
		}
	}
	query, args, err := db.Builder.Insert("vehicle").
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("vehicle: build insert: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&v.ID, &v.CreatedAt); err != nil {
		return fmt.Errorf("vehicle: insert: %w", db.TranslateError(err))
	}
	return nil
}

// Update writes the named fields of v.
func (r *Repository) Update(ctx context.Context, v *Vehicle, fields []string) error {
	set := restapi.Values(v, fields)
	if len(set) == 0 {
		return nil
	}
	query, args, err := db.Builder.Update("vehicle").
		SetMap(set).
		Where(squirrel.Eq{"id": v.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("vehicle: build update: %w", err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("vehicle: update %d: %w", v.ID, db.TranslateError(err))
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
