package person

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/restapi"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

// RepositoryPort defines data access methods for people.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (*Person, error)
	Teams(ctx context.Context, id int64) ([]string, error)
	Update(ctx context.Context, p *Person, fields []string) error
}

// RoleSource resolves a person's effective roles.
type RoleSource interface {
	Roles(ctx context.Context, personID int64) (filters.RoleSet, error)
}

// Service handles person reads and writes through the field filters.
type Service struct {
	repo      RepositoryPort
	roles     RoleSource
	codec     *restapi.Codec
	validator *restapi.Validator
	logger    *slog.Logger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, roles RoleSource, codec *restapi.Codec, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, roles: roles, codec: codec, validator: restapi.NewValidator(), logger: logger}
}

func (s *Service) load(ctx context.Context, id int64) (*Person, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Teams, err = s.repo.Teams(ctx, id); err != nil {
		return nil, err
	}
	set, err := s.roles.Roles(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("person: roles: %w", err)
	}
	for _, r := range set.Roles() {
		p.RoleNames = append(p.RoleNames, r.String())
	}
	return p, nil
}

// Get returns the person as visible to requester.
func (s *Service) Get(ctx context.Context, requester filters.Requester, id int64) (*restapi.Document, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.codec.Serialize(p, requester), nil
}

// Update applies the fields of raw requester may write, validates and
// persists the result.
func (s *Service) Update(ctx context.Context, requester filters.Requester, id int64, raw []byte) (*restapi.Document, error) {
	if requester == nil {
		return nil, shared.ErrUnauthenticated
	}
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	applied, err := s.codec.DeserializeJSON(p, raw, requester)
	if err != nil {
		return nil, err
	}
	if len(applied) > 0 {
		if err := s.validator.Validate(p); err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, p, applied); err != nil {
			return nil, err
		}
		s.logger.Info("person updated",
			slog.Int64("person_id", id),
			slog.Int64("by", requester.RequesterID()),
			slog.Any("fields", applied))
	}
	return s.codec.Serialize(p, requester), nil
}
