package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for plantrack.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plantrack",
		Short: "Track crash-report files against a triage plan document",
		Long: `plantrack compares report identifiers found on disk with identifiers
already mentioned in a plan document.

Report files are named report-<YYYYMMDD>-<HHMMSS>.md. Any identifier of
that shape appearing anywhere in the plan document counts as mentioned,
even in the middle of a sentence. The 'findings' command prints the
reports that are not mentioned yet as a checklist ready to paste into
the plan.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewFindingsCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
