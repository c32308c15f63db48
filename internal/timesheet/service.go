package timesheet

import (
	"context"
	"log/slog"
	"slices"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/restapi"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

// RepositoryPort defines data access methods for timesheets.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (*Timesheet, error)
	Update(ctx context.Context, t *Timesheet, fields []string) error
}

var readers = []filters.Role{filters.RoleAdmin, filters.RoleManage, filters.RoleTimesheetManagement}

// Service handles timesheet reads and corrections.
type Service struct {
	repo      RepositoryPort
	codec     *restapi.Codec
	validator *restapi.Validator
	logger    *slog.Logger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, codec *restapi.Codec, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, codec: codec, validator: restapi.NewValidator(), logger: logger}
}

// load fetches an entry readable by requester: its owner or a timesheet
// reviewer.
func (s *Service) load(ctx context.Context, requester filters.Requester, id int64) (*Timesheet, error) {
	if requester == nil {
		return nil, shared.ErrUnauthenticated
	}
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.PersonID != requester.RequesterID() && !requester.Roles().HasAny(readers...) {
		return nil, shared.ErrForbidden
	}
	return t, nil
}

// Get returns the entry.
func (s *Service) Get(ctx context.Context, requester filters.Requester, id int64) (*restapi.Document, error) {
	t, err := s.load(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	return s.codec.Serialize(t, requester), nil
}

// Update applies what requester may write from raw. A review status change
// records requester as the reviewer.
func (s *Service) Update(ctx context.Context, requester filters.Requester, id int64, raw []byte) (*restapi.Document, error) {
	t, err := s.load(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	applied, err := s.codec.DeserializeJSON(t, raw, requester)
	if err != nil {
		return nil, err
	}
	if len(applied) == 0 {
		return s.codec.Serialize(t, requester), nil
	}
	if slices.Contains(applied, "review_status") {
		reviewer := requester.RequesterID()
		t.ReviewerPersonID = &reviewer
		applied = append(applied, "reviewer_person_id")
	}
	if err := s.validate(t); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, t, applied); err != nil {
		return nil, err
	}
	s.logger.Info("timesheet updated",
		slog.Int64("timesheet_id", id),
		slog.Int64("by", requester.RequesterID()),
		slog.Any("fields", applied))
	return s.codec.Serialize(t, requester), nil
}

func (s *Service) validate(t *Timesheet) error {
	verrs := restapi.ValidationErrors{}
	if err := s.validator.Validate(t); err != nil {
		found, ok := restapi.AsValidationErrors(err)
		if !ok {
			return err
		}
		verrs = found
	}
	for field, msg := range t.Check() {
		verrs.Add(field, msg)
	}
	if verrs.Empty() {
		return nil
	}
	return verrs
}
