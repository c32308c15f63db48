package roles

import (
	"time"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
)

// Grant records a role held by a person.
type Grant struct {
	PersonID  int64
	Role      filters.Role
	GrantedAt time.Time
}

// RoleView is the wire form of a role.
type RoleView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func toViews(set filters.RoleSet) []RoleView {
	roles := set.Roles()
	out := make([]RoleView, len(roles))
	for i, r := range roles {
		out[i] = RoleView{ID: int(r), Name: r.String()}
	}
	return out
}
