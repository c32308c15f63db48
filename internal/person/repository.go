package person

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
	"id", "first_name", "mi", "last_name", "gender", "pronouns",
	"callsign", "callsign_approved", "callsign_pronounce", "formerly_known_as",
	"status", "status_date", "vintage", "date_verified", "email",
	"street1", "street2", "apt", "city", "state", "zip", "country",
	"home_phone", "alt_phone", "birthdate", "camp_location",
	"teeshirt_size_style", "longsleeveshirt_size_style", "emergency_contact",
	"bpguid", "sfuid", "on_site", "arrival_date", "behavioral_agreement",
	"has_note_on_file", "lam_status", "lam_username", "sms_on_playa",
	"sms_off_playa", "sms_verified", "mentors_notes", "mentors_flag",
	"created_at",
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	db db.Querier
}

// NewRepository constructs a repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

// Get loads a person by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Person, error) {
	query, args, err := db.Builder.Select(columns...).
		From("person").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("person: build select: %w", err)
	}
	var p Person
	if err := pgxscan.Get(ctx, r.db, &p, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("person: get %d: %w", id, err)
	}
	return &p, nil
}

// Teams lists the titles of the teams the person belongs to.
func (r *Repository) Teams(ctx context.Context, id int64) ([]string, error) {
	query, args, err := db.Builder.Select("team.title").
		From("person_team").
		Join("team ON team.id = person_team.team_id").
		Where(squirrel.Eq{"person_team.person_id": id}).
		OrderBy("team.title").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("person: build teams select: %w", err)
	}
	var titles []string
	if err := pgxscan.Select(ctx, r.db, &titles, query, args...); err != nil {
		return nil, fmt.Errorf("person: teams %d: %w", id, err)
	}
	return titles, nil
}

// Update writes the named fields of p.
func (r *Repository) Update(ctx context.Context, p *Person, fields []string) error {
	set := restapi.Values(p, fields)
	if len(set) == 0 {
		return nil
	}
	query, args, err := db.Builder.Update("person").
		SetMap(set).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("person: build update: %w", err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("person: update %d: %w", p.ID, db.TranslateError(err))
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
