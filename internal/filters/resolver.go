package filters

// FieldSet is an ordered set of field names. Order follows group
// declaration order, then field order within the group.
type FieldSet struct {
	order []string
	index map[string]struct{}
}

// NewFieldSet builds a FieldSet from names; duplicates collapse.
func NewFieldSet(names ...string) FieldSet {
	var fs FieldSet
	fs.add(names...)
	return fs
}

func (fs *FieldSet) add(names ...string) {
	if fs.index == nil {
		fs.index = make(map[string]struct{}, len(names))
	}
	for _, name := range names {
		if _, ok := fs.index[name]; ok {
			continue
		}
		fs.index[name] = struct{}{}
		fs.order = append(fs.order, name)
	}
}

// Has reports whether name is in the set.
func (fs FieldSet) Has(name string) bool {
	_, ok := fs.index[name]
	return ok
}

// Fields returns the names in resolution order.
func (fs FieldSet) Fields() []string {
	out := make([]string, len(fs.order))
	copy(out, fs.order)
	return out
}

// Len returns the number of fields.
func (fs FieldSet) Len() int {
	return len(fs.order)
}

// Resolve computes the fields requester may see (Outbound) or assign
// (Inbound) on record. A nil requester only reaches public groups.
func Resolve(policy *Policy, dir Direction, record Subject, requester Requester) FieldSet {
	var (
		anonymous = requester == nil
		roles     RoleSet
	)
	if !anonymous {
		roles = requester.Roles()
	}
	ownership := DetermineOwnership(record, requester)

	var fs FieldSet
	for _, decision := range policy.Evaluate(dir, anonymous, ownership, roles) {
		if decision.Allowed {
			fs.add(decision.Group.Fields...)
		}
	}
	return fs
}
