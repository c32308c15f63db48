package roles

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

// RepositoryPort defines data access methods for role grants.
type RepositoryPort interface {
	Loader
	ReplaceRoles(ctx context.Context, personID int64, roles []filters.Role) error
}

// Service handles role grant business logic.
type Service struct {
	repo   RepositoryPort
	cache  *Cache
	logger *slog.Logger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, cache *Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, cache: cache, logger: logger}
}

// Roles returns the effective roles of a person.
func (s *Service) Roles(ctx context.Context, personID int64) (filters.RoleSet, error) {
	return s.cache.Roles(ctx, personID)
}

// Replace sets the person's grants to roles. Only ADMIN holders may change
// grants.
func (s *Service) Replace(ctx context.Context, requester filters.Requester, personID int64, roles []filters.Role) (filters.RoleSet, error) {
	if requester == nil {
		return filters.RoleSet{}, shared.ErrUnauthenticated
	}
	if !requester.Roles().Has(filters.RoleAdmin) {
		return filters.RoleSet{}, shared.ErrForbidden
	}
	for _, r := range roles {
		if !filters.KnownRole(r) {
			return filters.RoleSet{}, fmt.Errorf("%w: unknown %s", shared.ErrInvalidArgument, r)
		}
	}
	set := filters.NewRoleSet(roles...)
	if err := s.repo.ReplaceRoles(ctx, personID, set.Roles()); err != nil {
		return filters.RoleSet{}, err
	}
	if err := s.cache.Invalidate(ctx, personID); err != nil {
		s.logger.Warn("invalidate role cache", slog.Int64("person_id", personID), slog.Any("error", err))
	}
	s.logger.Info("roles replaced",
		slog.Int64("person_id", personID),
		slog.Int64("by", requester.RequesterID()),
		slog.String("roles", set.String()))
	return set, nil
}
