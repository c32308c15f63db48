package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
)

func groupAllowed(t *testing.T, view DirectionView, name string) bool {
	t.Helper()
	for _, g := range view.Groups {
		if g.Name == name {
			return g.Allowed
		}
	}
	t.Fatalf("group %q not found in %s", name, view.Direction)
	return false
}

func TestLintCommandBuiltinPolicies(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	code := NewPolicyCLI().LintCommand(LintOptions{JSONOutput: true, Stdout: stdout, Stderr: stderr})
	require.Equal(t, 0, code, stderr.String())

	var summary LintSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	require.True(t, summary.OK)
	require.Equal(t, []string{"person", "person_event", "timesheet", "vehicle"}, summary.Entities)
	require.Empty(t, summary.Problems)
}

func TestLintCommandReportsProblems(t *testing.T) {
	broken := &filters.Policy{
		Entity: "widget",
		Outbound: []filters.FieldGroup{
			filters.Public("a", "name"),
			filters.Public("b", "name"),
		},
	}
	cli := &PolicyCLI{Policies: []*filters.Policy{broken, filters.VehiclePolicy(), filters.VehiclePolicy()}}

	stdout := new(bytes.Buffer)
	code := cli.LintCommand(LintOptions{Stdout: stdout, Stderr: new(bytes.Buffer)})
	require.Equal(t, 10, code)
	require.Contains(t, stdout.String(), "2 policy problem(s)")
	require.Contains(t, stdout.String(), `field "name"`)
	require.Contains(t, stdout.String(), `"vehicle" registered twice`)
}

func TestShowCommandOwnerAndRoles(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	code := NewPolicyCLI().ShowCommand(ShowOptions{
		Entity:     "person",
		Roles:      []string{"mentor"},
		Direction:  "outbound",
		JSONOutput: true,
		Stdout:     stdout,
		Stderr:     stderr,
	})
	require.Equal(t, 0, code, stderr.String())

	var summary ShowSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	require.Equal(t, "not_owner", summary.Ownership)
	require.Equal(t, []string{"mentor"}, summary.Roles)
	require.Len(t, summary.Directions, 1)

	out := summary.Directions[0]
	require.Equal(t, "outbound", out.Direction)
	require.True(t, groupAllowed(t, out, "callsigns"))
	require.True(t, groupAllowed(t, out, "mentor"))
	require.True(t, groupAllowed(t, out, "lam"))
	require.False(t, groupAllowed(t, out, "email"))
	require.Contains(t, out.Fields, "callsign")
	require.NotContains(t, out.Fields, "email")
}

func TestShowCommandOwnerReachesPersonalGroups(t *testing.T) {
	stdout := new(bytes.Buffer)
	code := NewPolicyCLI().ShowCommand(ShowOptions{
		Entity:     "person",
		Owner:      true,
		JSONOutput: true,
		Stdout:     stdout,
		Stderr:     new(bytes.Buffer),
	})
	require.Equal(t, 0, code)

	var summary ShowSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	require.Len(t, summary.Directions, 2)
	require.True(t, groupAllowed(t, summary.Directions[0], "email"))
	require.False(t, groupAllowed(t, summary.Directions[0], "mentor"))
	require.Equal(t, "inbound", summary.Directions[1].Direction)
	require.True(t, groupAllowed(t, summary.Directions[1], "lam"))
	require.False(t, groupAllowed(t, summary.Directions[1], "account"))
}

func TestShowCommandAnonymousHuman(t *testing.T) {
	stdout := new(bytes.Buffer)
	code := NewPolicyCLI().ShowCommand(ShowOptions{
		Entity:    "person",
		Anonymous: true,
		Direction: "outbound",
		Stdout:    stdout,
		Stderr:    new(bytes.Buffer),
	})
	require.Equal(t, 0, code)
	require.Contains(t, stdout.String(), "person as anonymous")
	require.Contains(t, stdout.String(), "  + callsigns: callsign_pronounce")
	require.Contains(t, stdout.String(), "  - mentor:")
}

func TestShowCommandRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		opts ShowOptions
		want string
	}{
		{name: "unknown entity", opts: ShowOptions{Entity: "bicycle"}, want: "unknown entity"},
		{name: "unknown role", opts: ShowOptions{Entity: "person", Roles: []string{"wizard"}}, want: "unknown role"},
		{name: "bad direction", opts: ShowOptions{Entity: "person", Direction: "sideways"}, want: "invalid direction"},
		{name: "anonymous with roles", opts: ShowOptions{Entity: "person", Anonymous: true, Roles: []string{"admin"}}, want: "--anonymous"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stderr := new(bytes.Buffer)
			tc.opts.Stdout = new(bytes.Buffer)
			tc.opts.Stderr = stderr
			require.Equal(t, 1, NewPolicyCLI().ShowCommand(tc.opts))
			require.Contains(t, stderr.String(), tc.want)
		})
	}
}

func TestPoliciesCommandExitCode(t *testing.T) {
	cmd := NewPoliciesCommand()
	stdout := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"show", "--entity", "vehicle", "--roles", "admin,manage", "--direction", "inbound", "--json"})
	require.NoError(t, cmd.Execute())

	var summary ShowSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	require.Equal(t, "vehicle", summary.Entity)
	require.Equal(t, []string{"admin", "manage"}, summary.Roles)

	cmd = NewPoliciesCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"show", "--entity", "nope"})
	err := cmd.Execute()
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.Code)
}
