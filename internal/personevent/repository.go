package personevent

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/rangerclubhouse/clubhouse/internal/platform/db"
	"github.com/rangerclubhouse/clubhouse/internal/restapi"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

var columns = []string{
	"id", "person_id", "year", "may_request_stickers", "org_vehicle_insurance",
	"signed_motorpool_agreement", "signed_personal_vehicle_agreement",
	"asset_authorized", "timesheet_confirmed", "timesheet_confirmed_at",
	"sandman_affidavit", "ignore_mvr", "ignore_pvr", "pii_started_at",
	"pii_finished_at", "lms_course_id", "lms_enrollment_id", "lms_enrolled_at",
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	db db.Querier
}

// NewRepository constructs a repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

// Get loads the row for personID and year.
func (r *Repository) Get(ctx context.Context, personID int64, year int) (*PersonEvent, error) {
	query, args, err := db.Builder.Select(columns...).
		From("person_event").
		Where(squirrel.Eq{"person_id": personID, "year": year}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("personevent: build select: %w", err)
	}
	var pe PersonEvent
	if err := pgxscan.Get(ctx, r.db, &pe, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("personevent: get %d/%d: %w", personID, year, err)
	}
	return &pe, nil
}

// Save upserts the named fields of pe, creating the row on first write.
func (r *Repository) Save(ctx context.Context, pe *PersonEvent, fields []string) error {
	set := restapi.Values(pe, fields)
	cols := []string{"person_id", "year"}
	vals := []any{pe.PersonID, pe.Year}
	updates := make([]string, 0, len(fields))
	for _, field := range fields {
		v, ok := set[field]
		if !ok || field == "person_id" || field == "year" {
			continue
		}
		cols = append(cols, field)
		vals = append(vals, v)
		updates = append(updates, field+" = EXCLUDED."+field)
	}
	if len(updates) == 0 {
		updates = append(updates, "year = EXCLUDED.year")
	}
	conflict := "ON CONFLICT (person_id, year) DO UPDATE SET " + strings.Join(updates, ", ") + " RETURNING id"
	query, args, err := db.Builder.Insert("person_event").
		Columns(cols...).
		Values(vals...).
		Suffix(conflict).
		ToSql()
	if err != nil {
		return fmt.Errorf("personevent: build upsert: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&pe.ID); err != nil {
		return fmt.Errorf("personevent: save %d/%d: %w", pe.PersonID, pe.Year, db.TranslateError(err))
	}
	return nil
}
