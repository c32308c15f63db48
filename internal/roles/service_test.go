package roles

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

type actor struct {
	id    int64
	roles filters.RoleSet
}

func (a actor) RequesterID() int64     { return a.id }
func (a actor) Roles() filters.RoleSet { return a.roles }

func TestServiceReplaceRequiresAdmin(t *testing.T) {
	loader := &stubLoader{roles: map[int64][]filters.Role{}}
	svc := NewService(loader, NewCache(loader, nil, time.Minute, nil), nil)
	ctx := context.Background()

	_, err := svc.Replace(ctx, nil, 7, []filters.Role{filters.RoleVC})
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)

	_, err = svc.Replace(ctx, actor{id: 2, roles: filters.NewRoleSet(filters.RoleVC)}, 7, []filters.Role{filters.RoleVC})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.Replace(ctx, actor{id: 1, roles: filters.NewRoleSet(filters.RoleAdmin)}, 7, []filters.Role{filters.Role(999)})
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestServiceReplaceInvalidatesCache(t *testing.T) {
	loader := &stubLoader{roles: map[int64][]filters.Role{7: {filters.RoleLogin}}}
	svc := NewService(loader, NewCache(loader, nil, time.Minute, nil), nil)
	ctx := context.Background()

	before, err := svc.Roles(ctx, 7)
	require.NoError(t, err)
	assert.False(t, before.Has(filters.RoleVC))

	admin := actor{id: 1, roles: filters.NewRoleSet(filters.RoleAdmin)}
	_, err = svc.Replace(ctx, admin, 7, []filters.Role{filters.RoleVC, filters.RoleLogin, filters.RoleVC})
	require.NoError(t, err)

	after, err := svc.Roles(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []filters.Role{filters.RoleLogin, filters.RoleVC}, after.Roles())
}
