package filters

import (
	"errors"
	"fmt"
	"sort"
)

// Registry maps entity tags to their policy. It is built once at startup and
// is read-only afterwards.
type Registry struct {
	policies map[string]*Policy
}

// NewRegistry validates and indexes the given policies.
func NewRegistry(policies ...*Policy) (*Registry, error) {
	reg := &Registry{policies: make(map[string]*Policy, len(policies))}
	var errs []error
	for _, p := range policies {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := reg.policies[p.Entity]; dup {
			errs = append(errs, fmt.Errorf("%w: entity %q registered twice", ErrInvalidPolicy, p.Entity))
			continue
		}
		reg.policies[p.Entity] = p
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return reg, nil
}

// DefaultRegistry returns the built-in Clubhouse policies. It panics on an
// authoring error so a bad table never reaches a running server.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(BuiltinPolicies()...)
	if err != nil {
		panic(err)
	}
	return reg
}

// BuiltinPolicies lists every policy shipped with the API.
func BuiltinPolicies() []*Policy {
	return []*Policy{
		PersonPolicy(),
		PersonEventPolicy(),
		VehiclePolicy(),
		TimesheetPolicy(),
	}
}

// Lookup returns the policy for entity.
func (r *Registry) Lookup(entity string) (*Policy, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.policies[entity]
	return p, ok
}

// Entities lists the registered entity tags in lexical order.
func (r *Registry) Entities() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.policies))
	for entity := range r.policies {
		out = append(out, entity)
	}
	sort.Strings(out)
	return out
}
