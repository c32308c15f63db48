package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
)

// ExitError carries a non-zero process exit code out of a command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// PolicyCLI inspects field policies without a running server.
type PolicyCLI struct {
	Policies []*filters.Policy
}

// NewPolicyCLI returns a PolicyCLI over the built-in policies.
func NewPolicyCLI() *PolicyCLI {
	return &PolicyCLI{Policies: filters.BuiltinPolicies()}
}

// LintOptions defines available flags for the policies lint command.
type LintOptions struct {
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// LintSummary describes the JSON response for policies lint.
type LintSummary struct {
	OK       bool     `json:"ok"`
	Entities []string `json:"entities"`
	Problems []string `json:"problems"`
}

// LintCommand validates every policy and prints the outcome. It returns 10
// when any policy has authoring errors.
func (c *PolicyCLI) LintCommand(opts LintOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	summary := LintSummary{Entities: []string{}, Problems: []string{}}
	registry, err := filters.NewRegistry(c.Policies...)
	if err != nil {
		summary.Problems = splitJoined(err)
	} else {
		summary.Entities = registry.Entities()
	}
	summary.OK = len(summary.Problems) == 0

	if opts.JSONOutput {
		if err := json.NewEncoder(opts.Stdout).Encode(summary); err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "policies lint: encode json: %v\n", err)
			return 1
		}
	} else {
		renderLintHuman(opts.Stdout, summary)
	}
	if !summary.OK {
		return 10
	}
	return 0
}

func splitJoined(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		out := make([]string, 0, len(joined.Unwrap()))
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

func renderLintHuman(w io.Writer, summary LintSummary) {
	if summary.OK {
		_, _ = fmt.Fprintf(w, "policies ok: %s\n", strings.Join(summary.Entities, ", "))
		return
	}
	_, _ = fmt.Fprintf(w, "%d policy problem(s):\n", len(summary.Problems))
	for _, p := range summary.Problems {
		_, _ = fmt.Fprintf(w, "  - %s\n", p)
	}
}

// ShowOptions defines available flags for the policies show command.
type ShowOptions struct {
	Entity     string
	Roles      []string
	Owner      bool
	Creating   bool
	Anonymous  bool
	Direction  string
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// ShowSummary is the JSON response for policies show.
type ShowSummary struct {
	Entity     string          `json:"entity"`
	Ownership  string          `json:"ownership"`
	Anonymous  bool            `json:"anonymous"`
	Roles      []string        `json:"roles"`
	Directions []DirectionView `json:"directions"`
}

// DirectionView lists the group decisions for one direction.
type DirectionView struct {
	Direction string      `json:"direction"`
	Groups    []GroupView `json:"groups"`
	Fields    []string    `json:"fields"`
}

// GroupView is a single evaluated group.
type GroupView struct {
	Name    string   `json:"name"`
	Allowed bool     `json:"allowed"`
	Fields  []string `json:"fields"`
}

// ShowCommand prints which groups and fields a hypothetical caller reaches.
func (c *PolicyCLI) ShowCommand(opts ShowOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	registry, err := filters.NewRegistry(c.Policies...)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "policies show: %v\n", err)
		return 1
	}
	policy, ok := registry.Lookup(strings.TrimSpace(opts.Entity))
	if !ok {
		_, _ = fmt.Fprintf(opts.Stderr, "policies show: unknown entity %q (known: %s)\n", opts.Entity, strings.Join(registry.Entities(), ", "))
		return 1
	}
	directions, err := parseDirections(opts.Direction)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "policies show: %v\n", err)
		return 1
	}
	var parsed []filters.Role
	for _, raw := range opts.Roles {
		for _, name := range strings.Split(raw, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			role, err := filters.ParseRole(name)
			if err != nil {
				_, _ = fmt.Fprintf(opts.Stderr, "policies show: %v\n", err)
				return 1
			}
			parsed = append(parsed, role)
		}
	}
	if opts.Anonymous && (len(parsed) > 0 || opts.Owner || opts.Creating) {
		_, _ = fmt.Fprintln(opts.Stderr, "policies show: --anonymous excludes the other caller flags")
		return 1
	}

	ownership := filters.NotOwner
	switch {
	case opts.Creating:
		ownership = filters.CreatingAsOwner
	case opts.Owner:
		ownership = filters.Owner
	}
	roleSet := filters.NewRoleSet(parsed...)

	summary := ShowSummary{
		Entity:    policy.Entity,
		Ownership: ownership.String(),
		Anonymous: opts.Anonymous,
		Roles:     []string{},
	}
	for _, r := range roleSet.Roles() {
		summary.Roles = append(summary.Roles, r.String())
	}
	for _, dir := range directions {
		view := DirectionView{Direction: dir.String(), Groups: []GroupView{}, Fields: []string{}}
		for _, decision := range policy.Evaluate(dir, opts.Anonymous, ownership, roleSet) {
			view.Groups = append(view.Groups, GroupView{
				Name:    decision.Group.Name,
				Allowed: decision.Allowed,
				Fields:  decision.Group.Fields,
			})
			if decision.Allowed {
				view.Fields = append(view.Fields, decision.Group.Fields...)
			}
		}
		summary.Directions = append(summary.Directions, view)
	}

	if opts.JSONOutput {
		if err := json.NewEncoder(opts.Stdout).Encode(summary); err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "policies show: encode json: %v\n", err)
			return 1
		}
		return 0
	}
	renderShowHuman(opts.Stdout, summary)
	return 0
}

func parseDirections(raw string) ([]filters.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "both":
		return []filters.Direction{filters.Outbound, filters.Inbound}, nil
	case "outbound", "read":
		return []filters.Direction{filters.Outbound}, nil
	case "inbound", "write":
		return []filters.Direction{filters.Inbound}, nil
	default:
		return nil, fmt.Errorf("invalid direction %q (expected outbound, inbound or both)", raw)
	}
}

func renderShowHuman(w io.Writer, summary ShowSummary) {
	caller := "anonymous"
	if !summary.Anonymous {
		caller = summary.Ownership
		if len(summary.Roles) > 0 {
			caller += " with " + strings.Join(summary.Roles, ", ")
		}
	}
	_, _ = fmt.Fprintf(w, "%s as %s\n", summary.Entity, caller)
	for _, dir := range summary.Directions {
		_, _ = fmt.Fprintf(w, "%s:\n", dir.Direction)
		for _, g := range dir.Groups {
			mark := "-"
			if g.Allowed {
				mark = "+"
			}
			_, _ = fmt.Fprintf(w, "  %s %s: %s\n", mark, g.Name, strings.Join(g.Fields, ", "))
		}
	}
}
