package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rangerclubhouse/clubhouse/cmd/clubhouse/cli"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		_, _ = fmt.Fprintln(os.Stderr, "clubhouse:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "clubhouse",
		Short:         "Ranger Clubhouse API server and policy tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand())
	root.AddCommand(cli.NewPoliciesCommand())
	return root
}
