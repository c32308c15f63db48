package personevent

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/restapi"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

// RepositoryPort defines data access methods for person events.
type RepositoryPort interface {
	Get(ctx context.Context, personID int64, year int) (*PersonEvent, error)
	Save(ctx context.Context, pe *PersonEvent, fields []string) error
}

// Service handles person event reads and writes.
type Service struct {
	repo      RepositoryPort
	codec     *restapi.Codec
	validator *restapi.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, codec *restapi.Codec, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, codec: codec, validator: restapi.NewValidator(), logger: logger, now: time.Now}
}

// Find returns the stored record for personID and year, or a blank one when
// nothing has been written yet.
func (s *Service) Find(ctx context.Context, personID int64, year int) (*PersonEvent, error) {
	pe, err := s.repo.Get(ctx, personID, year)
	if errors.Is(err, shared.ErrNotFound) {
		return &PersonEvent{PersonID: personID, Year: year}, nil
	}
	return pe, err
}

// Get returns the record as visible to requester.
func (s *Service) Get(ctx context.Context, requester filters.Requester, personID int64, year int) (*restapi.Document, error) {
	pe, err := s.Find(ctx, personID, year)
	if err != nil {
		return nil, err
	}
	return s.codec.Serialize(pe, requester), nil
}

// Update applies what requester may write from raw and persists it.
func (s *Service) Update(ctx context.Context, requester filters.Requester, personID int64, year int, raw []byte) (*restapi.Document, error) {
	if requester == nil {
		return nil, shared.ErrUnauthenticated
	}
	pe, err := s.Find(ctx, personID, year)
	if err != nil {
		return nil, err
	}
	wasConfirmed := pe.TimesheetConfirmed
	applied, err := s.codec.DeserializeJSON(pe, raw, requester)
	if err != nil {
		return nil, err
	}
	if len(applied) == 0 {
		return s.codec.Serialize(pe, requester), nil
	}
	if slices.Contains(applied, "timesheet_confirmed") && pe.TimesheetConfirmed != wasConfirmed {
		pe.TimesheetConfirmedAt = pgtype.Timestamp{}
		if pe.TimesheetConfirmed {
			pe.TimesheetConfirmedAt = pgtype.Timestamp{Time: s.now().UTC().Truncate(time.Second), Valid: true}
		}
		applied = append(applied, "timesheet_confirmed_at")
	}
	if err := s.validator.Validate(pe); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, pe, applied); err != nil {
		return nil, err
	}
	s.logger.Info("person event updated",
		slog.Int64("person_id", personID),
		slog.Int("year", year),
		slog.Int64("by", requester.RequesterID()),
		slog.Any("fields", applied))
	return s.codec.Serialize(pe, requester), nil
}
