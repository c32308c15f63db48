package filters

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Role identifies a granted capability. Ids are stable and persisted in the
// person_role table.
type Role int

// Known roles. New roles are additive.
const (
	RoleAdmin               Role = 1
	RoleViewPII             Role = 2
	RoleViewEmail           Role = 3
	RoleGrantPosition       Role = 4
	RoleEditAccessDocs      Role = 5
	RoleEditBMIDs           Role = 6
	RoleEditSlots           Role = 7
	RoleLogin               Role = 11
	RoleManage              Role = 12
	RoleIntake              Role = 13
	RoleMentor              Role = 101
	RoleTrainer             Role = 102
	RoleVC                  Role = 103
	RoleTimesheetManagement Role = 104
	RoleEventManagement     Role = 105
	RoleShiftManagement     Role = 106
)

var roleNames = map[Role]string{
	RoleAdmin:               "admin",
	RoleViewPII:             "view_pii",
	RoleViewEmail:           "view_email",
	RoleGrantPosition:       "grant_position",
	RoleEditAccessDocs:      "edit_access_docs",
	RoleEditBMIDs:           "edit_bmids",
	RoleEditSlots:           "edit_slots",
	RoleLogin:               "login",
	RoleManage:              "manage",
	RoleIntake:              "intake",
	RoleMentor:              "mentor",
	RoleTrainer:             "trainer",
	RoleVC:                  "vc",
	RoleTimesheetManagement: "timesheet_management",
	RoleEventManagement:     "event_management",
	RoleShiftManagement:     "shift_management",
}

// String returns the role's canonical name.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "role(" + strconv.Itoa(int(r)) + ")"
}

// KnownRole reports whether r is part of the deployed role catalogue.
func KnownRole(r Role) bool {
	_, ok := roleNames[r]
	return ok
}

// AllRoles returns every known role ordered by id.
func AllRoles() []Role {
	out := make([]Role, 0, len(roleNames))
	for r := range roleNames {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseRole accepts a role name (case-insensitive) or its numeric id.
func ParseRole(raw string) (Role, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return 0, fmt.Errorf("filters: empty role")
	}
	if id, err := strconv.Atoi(raw); err == nil {
		if !KnownRole(Role(id)) {
			return 0, fmt.Errorf("filters: unknown role id %d", id)
		}
		return Role(id), nil
	}
	for r, name := range roleNames {
		if name == raw {
			return r, nil
		}
	}
	return 0, fmt.Errorf("filters: unknown role %q", raw)
}

// RoleSet is an immutable set of roles. The zero value is the empty set and
// is what anonymous callers hold.
type RoleSet struct {
	members map[Role]struct{}
}

// NewRoleSet builds a RoleSet from the given roles; duplicates collapse.
func NewRoleSet(roles ...Role) RoleSet {
	if len(roles) == 0 {
		return RoleSet{}
	}
	members := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		members[r] = struct{}{}
	}
	return RoleSet{members: members}
}

// Has reports whether r is a member.
func (s RoleSet) Has(r Role) bool {
	_, ok := s.members[r]
	return ok
}

// HasAny reports whether the set shares at least one role with candidates.
// ADMIN gets no special treatment here.
func (s RoleSet) HasAny(candidates ...Role) bool {
	if len(s.members) == 0 {
		return false
	}
	for _, r := range candidates {
		if _, ok := s.members[r]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of roles in the set.
func (s RoleSet) Len() int {
	return len(s.members)
}

// Roles returns the members ordered by id.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(s.members))
	for r := range s.members {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the set as a comma separated list of role names.
func (s RoleSet) String() string {
	roles := s.Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, ",")
}
