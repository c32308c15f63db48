package shared

import (
	"context"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
)

type requesterContextKey struct{}

// ContextWithRequester stores the authenticated requester in context.
func ContextWithRequester(ctx context.Context, requester filters.Requester) context.Context {
	return context.WithValue(ctx, requesterContextKey{}, requester)
}

// RequesterFromContext extracts the requester from context. It returns nil
// for anonymous calls.
func RequesterFromContext(ctx context.Context) filters.Requester {
	requester, _ := ctx.Value(requesterContextKey{}).(filters.Requester)
	return requester
}

// RequireRequester returns the requester or ErrUnauthenticated.
func RequireRequester(ctx context.Context) (filters.Requester, error) {
	requester := RequesterFromContext(ctx)
	if requester == nil {
		return nil, ErrUnauthenticated
	}
	return requester, nil
}
