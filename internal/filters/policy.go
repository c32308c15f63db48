package filters

import (
	"errors"
	"fmt"
)

// Direction selects which side of a policy applies.
type Direction int

const (
	// Outbound governs serialization (reads).
	Outbound Direction = iota
	// Inbound governs deserialization (writes).
	Inbound
)

func (d Direction) String() string {
	if d == Inbound {
		return "inbound"
	}
	return "outbound"
}

// Policy is the complete read and write rule set for one entity type.
//
// AdminOverride grants every group to ADMIN holders. Policies that leave it
// off must list ADMIN explicitly on the groups admins may reach.
type Policy struct {
	Entity        string
	AdminOverride bool
	Outbound      []FieldGroup
	Inbound       []FieldGroup
}

// Groups returns the groups for the given direction in declaration order.
func (p *Policy) Groups(dir Direction) []FieldGroup {
	if p == nil {
		return nil
	}
	if dir == Inbound {
		return p.Inbound
	}
	return p.Outbound
}

// HasDirection reports whether the policy declares any group for dir.
func (p *Policy) HasDirection(dir Direction) bool {
	return len(p.Groups(dir)) > 0
}

// ErrInvalidPolicy wraps every policy authoring error.
var ErrInvalidPolicy = errors.New("filters: invalid policy")

// Validate reports authoring errors. A field may appear in only one group
// per direction, and every referenced role must be known.
func (p *Policy) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil policy", ErrInvalidPolicy)
	}
	if p.Entity == "" {
		return fmt.Errorf("%w: missing entity", ErrInvalidPolicy)
	}
	var errs []error
	for _, dir := range []Direction{Outbound, Inbound} {
		seen := make(map[string]string)
		for _, group := range p.Groups(dir) {
			if len(group.Fields) == 0 {
				errs = append(errs, fmt.Errorf("%w: %s %s group %q has no fields", ErrInvalidPolicy, p.Entity, dir, group.Name))
			}
			for _, field := range group.Fields {
				if prev, dup := seen[field]; dup {
					errs = append(errs, fmt.Errorf("%w: %s %s field %q in groups %q and %q", ErrInvalidPolicy, p.Entity, dir, field, prev, group.Name))
					continue
				}
				seen[field] = group.Name
			}
			for _, r := range group.Roles {
				if !KnownRole(r) {
					errs = append(errs, fmt.Errorf("%w: %s %s group %q references unknown %s", ErrInvalidPolicy, p.Entity, dir, group.Name, r))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// GroupDecision records the outcome of one group evaluation.
type GroupDecision struct {
	Group   FieldGroup
	Allowed bool
}

// Evaluate decides every group of dir independently for the given caller.
// anonymous callers only reach public groups.
func (p *Policy) Evaluate(dir Direction, anonymous bool, ownership Ownership, roles RoleSet) []GroupDecision {
	groups := p.Groups(dir)
	admin := !anonymous && p.AdminOverride && roles.Has(RoleAdmin)
	out := make([]GroupDecision, len(groups))
	for i, group := range groups {
		out[i] = GroupDecision{Group: group, Allowed: group.Allows(anonymous, ownership, roles, admin)}
	}
	return out
}
