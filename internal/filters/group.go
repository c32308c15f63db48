package filters

// FieldGroup bundles fields that share one access rule.
//
// A group with neither OwnerAllowed nor Roles is public: it is granted to
// every caller, including anonymous ones.
type FieldGroup struct {
	Name         string
	Fields       []string
	OwnerAllowed bool
	Roles        []Role
}

// Public declares a group visible to everyone.
func Public(name string, fields ...string) FieldGroup {
	return FieldGroup{Name: name, Fields: fields}
}

// OwnerOnly declares a group granted solely to the record's owner.
func OwnerOnly(name string, fields ...string) FieldGroup {
	return FieldGroup{Name: name, Fields: fields, OwnerAllowed: true}
}

// OwnerOr declares a group granted to the owner or to holders of any role.
func OwnerOr(name string, roles []Role, fields ...string) FieldGroup {
	return FieldGroup{Name: name, Fields: fields, OwnerAllowed: true, Roles: roles}
}

// RolesOnly declares a group granted to holders of any role, never to the
// owner by virtue of ownership.
func RolesOnly(name string, roles []Role, fields ...string) FieldGroup {
	return FieldGroup{Name: name, Fields: fields, Roles: roles}
}

// Unconditional reports whether the group is public.
func (g FieldGroup) Unconditional() bool {
	return !g.OwnerAllowed && len(g.Roles) == 0
}

// Allows evaluates the group for a single requester. admin must only be true
// when the enclosing policy opts into the admin override and the requester
// holds ADMIN. Callers with no requester pass anonymous=true.
func (g FieldGroup) Allows(anonymous bool, ownership Ownership, roles RoleSet, admin bool) bool {
	if g.Unconditional() {
		return true
	}
	if anonymous {
		return false
	}
	if g.OwnerAllowed && ownership.IsOwner() {
		return true
	}
	if roles.HasAny(g.Roles...) {
		return true
	}
	return admin
}
