package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

// RoleSource resolves a person's effective roles.
type RoleSource interface {
	Roles(ctx context.Context, personID int64) (filters.RoleSet, error)
}

// Service wraps authentication business rules.
type Service struct {
	repo        Repository
	roles       RoleSource
	tokens      *TokenIssuer
	revocations *Revocations
	logger      *slog.Logger
}

// NewService constructs a new Service.
func NewService(repo Repository, roles RoleSource, tokens *TokenIssuer, revocations *Revocations, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, roles: roles, tokens: tokens, revocations: revocations, logger: logger}
}

// Login validates email/password credentials and issues a token. Accounts
// need the LOGIN role and an unlocked status.
func (s *Service) Login(ctx context.Context, email, password string) (*Token, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("login lookup", slog.Any("error", err))
		}
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !account.CanLogin() {
		return nil, shared.ErrInvalidCredentials
	}
	roles, err := s.roles.Roles(ctx, account.PersonID)
	if err != nil {
		return nil, err
	}
	if !roles.Has(filters.RoleLogin) {
		return nil, shared.ErrInvalidCredentials
	}
	signed, claims, err := s.tokens.Issue(account.PersonID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("login", slog.Int64("person_id", account.PersonID))
	return &Token{AccessToken: signed, ExpiresAt: claims.ExpiresAt.Time, PersonID: account.PersonID}, nil
}

// Resolve verifies a bearer token and loads the requester it names.
func (s *Service) Resolve(ctx context.Context, raw string) (*Requester, *Claims, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrUnauthenticated, err)
	}
	personID, err := claims.PersonID()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrUnauthenticated, err)
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, fmt.Errorf("%w: token revoked", shared.ErrUnauthenticated)
	}
	roles, err := s.roles.Roles(ctx, personID)
	if err != nil {
		return nil, nil, err
	}
	return NewRequester(personID, roles), claims, nil
}

// Logout revokes the token described by claims.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	expiresAt := time.Now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return s.revocations.Revoke(ctx, claims.ID, expiresAt)
}
