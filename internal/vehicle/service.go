package vehicle

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/personevent"
	"github.com/rangerclubhouse/clubhouse/internal/restapi"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

// RepositoryPort defines data access methods for vehicles.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (*Vehicle, error)
	List(ctx context.Context, filter Filter) ([]*Vehicle, error)
	Create(ctx context.Context, v *Vehicle, fields []string) error
	Update(ctx context.Context, v *Vehicle, fields []string) error
}

// PaperworkSource loads the person event carrying a vehicle owner's
// paperwork flags.
type PaperworkSource interface {
	Find(ctx context.Context, personID int64, year int) (*personevent.PersonEvent, error)
}

// Service handles vehicle registrations.
type Service struct {
	repo      RepositoryPort
	paperwork PaperworkSource
	codec     *restapi.Codec
	validator *restapi.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, paperwork PaperworkSource, codec *restapi.Codec, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		paperwork: paperwork,
		codec:     codec,
		validator: restapi.NewValidator(),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) attachPaperwork(ctx context.Context, v *Vehicle) error {
	if v.PersonID == 0 {
		return nil
	}
	pe, err := s.paperwork.Find(ctx, v.PersonID, v.EventYear)
	if err != nil {
		return fmt.Errorf("vehicle: paperwork: %w", err)
	}
	v.Paperwork = pe
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*Vehicle, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachPaperwork(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Get returns the vehicle as visible to requester.
func (s *Service) Get(ctx context.Context, requester filters.Requester, id int64) (*restapi.Document, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.codec.Serialize(v, requester), nil
}

// List returns matching vehicles. Listing another person's vehicles, or
// everyone's, needs ADMIN or MANAGE.
func (s *Service) List(ctx context.Context, requester filters.Requester, filter Filter) ([]*restapi.Document, error) {
	if requester == nil {
		return nil, shared.ErrUnauthenticated
	}
	if filter.PersonID != requester.RequesterID() && !requester.Roles().HasAny(filters.RoleAdmin, filters.RoleManage) {
		return nil, shared.ErrForbidden
	}
	vehicles, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*restapi.Document, 0, len(vehicles))
	for _, v := range vehicles {
		if err := s.attachPaperwork(ctx, v); err != nil {
			return nil, err
		}
		out = append(out, s.codec.Serialize(v, requester))
	}
	return out, nil
}

// Create registers a vehicle. Requesters without ADMIN always register for
// themselves, whatever person_id they send.
func (s *Service) Create(ctx context.Context, requester filters.Requester, raw []byte) (*restapi.Document, error) {
	if requester == nil {
		return nil, shared.ErrUnauthenticated
	}
	v := &Vehicle{}
	applied, err := s.codec.DeserializeJSON(v, raw, requester)
	if err != nil {
		return nil, err
	}
	if !requester.Roles().Has(filters.RoleAdmin) || v.PersonID == 0 {
		v.PersonID = requester.RequesterID()
	}
	if v.EventYear == 0 {
		v.EventYear = s.now().Year()
	}
	if v.Status == "" {
		v.Status = StatusPending
	}
	fields := ensure(applied, "person_id", "event_year", "status")
	if err := s.validator.Validate(v); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, v, fields); err != nil {
		return nil, err
	}
	if err := s.attachPaperwork(ctx, v); err != nil {
		return nil, err
	}
	s.logger.Info("vehicle created",
		slog.Int64("vehicle_id", v.ID),
		slog.Int64("person_id", v.PersonID),
		slog.Int64("by", requester.RequesterID()))
	return s.codec.Serialize(v, requester), nil
}

// Update applies what requester may write from raw. person_id is
// writable by ADMIN only.
func (s *Service) Update(ctx context.Context, requester filters.Requester, id int64, raw []byte) (*restapi.Document, error) {
	if requester == nil {
		return nil, shared.ErrUnauthenticated
	}
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	applied, err := s.codec.DeserializeJSON(v, raw, requester)
	if err != nil {
		return nil, err
	}
	if len(applied) == 0 {
		return s.codec.Serialize(v, requester), nil
	}
	if err := s.validator.Validate(v); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, v, applied); err != nil {
		return nil, err
	}
	if err := s.attachPaperwork(ctx, v); err != nil {
		return nil, err
	}
	s.logger.Info("vehicle updated",
		slog.Int64("vehicle_id", v.ID),
		slog.Int64("by", requester.RequesterID()),
		slog.Any("fields", applied))
	return s.codec.Serialize(v, requester), nil
}

func ensure(fields []string, required ...string) []string {
	for _, f := range required {
		if !slices.Contains(fields, f) {
			fields = append(fields, f)
		}
	}
	return fields
}
