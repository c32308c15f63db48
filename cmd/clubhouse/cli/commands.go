package cli

import (
	"github.com/spf13/cobra"
)

// NewPoliciesCommand builds the "policies" command tree.
func NewPoliciesCommand() *cobra.Command {
	c := NewPolicyCLI()
	cmd := &cobra.Command{
		Use:   "policies",
		Short: "Inspect serialization field policies",
	}

	var lint LintOptions
	lintCmd := &cobra.Command{
		Use:   "lint",
		Short: "Validate every built-in policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lint.Stdout = cmd.OutOrStdout()
			lint.Stderr = cmd.ErrOrStderr()
			return exit(c.LintCommand(lint))
		},
	}
	lintCmd.Flags().BoolVar(&lint.JSONOutput, "json", false, "print JSON output")

	var show ShowOptions
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the groups and fields a caller reaches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			show.Stdout = cmd.OutOrStdout()
			show.Stderr = cmd.ErrOrStderr()
			return exit(c.ShowCommand(show))
		},
	}
	flags := showCmd.Flags()
	flags.StringVar(&show.Entity, "entity", "", "entity tag, e.g. person or vehicle")
	flags.StringSliceVar(&show.Roles, "roles", nil, "comma separated role names or ids")
	flags.BoolVar(&show.Owner, "owner", false, "evaluate as the record owner")
	flags.BoolVar(&show.Creating, "creating", false, "evaluate as the creator of a new record")
	flags.BoolVar(&show.Anonymous, "anonymous", false, "evaluate as an unauthenticated caller")
	flags.StringVar(&show.Direction, "direction", "both", "outbound, inbound or both")
	flags.BoolVar(&show.JSONOutput, "json", false, "print JSON output")
	_ = showCmd.MarkFlagRequired("entity")

	cmd.AddCommand(lintCmd, showCmd)
	return cmd
}

func exit(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitError{Code: code}
}
