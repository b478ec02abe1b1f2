package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plantrack/plantrack/internal/config"
	"github.com/plantrack/plantrack/internal/history"
)

// NewHistoryCmd creates the history command.
// This command compares findings runs recorded with 'findings --save'.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Compare saved findings runs",
		Long: `History displays differences between findings runs saved with
'plantrack findings --save'.

By default the latest two runs are compared, showing:
- Findings that appeared since the previous run
- Findings that were resolved (mentioned in the plan or report removed)

Examples:
  # Compare the latest two runs
  plantrack history

  # List all saved runs
  plantrack history --list

  # Compare the latest run against a specific baseline
  plantrack history --with-run-id 3`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List all saved runs")
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare the latest run with a specific run by ID (use --list to see IDs)")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory containing the history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}

	// Open without creating: an absent database means no saved runs,
	// which deserves a hint rather than an empty file.
	db, err := history.Open(dbDir, history.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return errors.New("no saved runs found (use 'plantrack findings --save' to record runs)")
	}
	defer db.Close()

	ctx := context.Background()

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if list {
		return listRuns(ctx, db, cmd.OutOrStdout())
	}

	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}

	return compareRuns(ctx, db, withRunID, cmd.OutOrStdout())
}

// listRuns lists all saved findings runs.
func listRuns(ctx context.Context, db *history.RunDB, out io.Writer) error {
	runs, err := db.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No saved runs found.")
		fmt.Fprintln(out, "\nUse 'plantrack findings --save' to record a run.")
		return nil
	}

	fmt.Fprintf(out, "Saved runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-8s  %-9s  %s\n", "ID", "Date", "Reports", "Mentioned", "New")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 58))

	for _, run := range runs {
		fmt.Fprintf(out, "  %-6d  %-20s  %-8d  %-9d  %d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TotalReports,
			run.MentionedCount,
			len(run.NewFindings),
		)
	}

	fmt.Fprintln(out, "\nUse 'plantrack history' to compare the latest two runs.")
	fmt.Fprintln(out, "Use 'plantrack history --with-run-id <id>' to compare against a specific run.")

	return nil
}

// compareRuns compares the latest run against a baseline and prints the result.
func compareRuns(ctx context.Context, db *history.RunDB, withRunID int64, out io.Writer) error {
	latest, err := db.LatestRuns(ctx, 2)
	if err != nil {
		return fmt.Errorf("failed to get runs: %w", err)
	}

	if len(latest) == 0 {
		return errors.New("no saved runs found (use 'plantrack findings --save' to record runs)")
	}

	current := latest[0]

	var baseline *history.StoredRun
	if withRunID > 0 {
		baseline, err = db.GetRun(ctx, withRunID)
		if err != nil {
			return fmt.Errorf("failed to get run %d: %w", withRunID, err)
		}
		if baseline == nil {
			return fmt.Errorf("run with ID %d not found", withRunID)
		}
		if baseline.ID == current.ID {
			return fmt.Errorf("run %d is the latest run; choose an earlier baseline", withRunID)
		}
	} else {
		if len(latest) < 2 {
			return fmt.Errorf("at least 2 saved runs are required for comparison (found %d)", len(latest))
		}
		baseline = latest[1]
	}

	printComparison(out, history.CompareRuns(baseline, current))
	return nil
}

// printComparison prints a run comparison in human-readable form.
func printComparison(out io.Writer, cmp *history.RunComparison) {
	fmt.Fprintln(out, "Findings run comparison")
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nBaseline: run %d  %s  (%d findings)\n",
		cmp.Baseline.ID,
		cmp.Baseline.Timestamp.Format("2006-01-02 15:04:05"),
		len(cmp.Baseline.NewFindings),
	)
	fmt.Fprintf(out, "Current:  run %d  %s  (%d findings)\n",
		cmp.Current.ID,
		cmp.Current.Timestamp.Format("2006-01-02 15:04:05"),
		len(cmp.Current.NewFindings),
	)

	if len(cmp.Appeared) > 0 {
		fmt.Fprintf(out, "\nAppeared (%d):\n", len(cmp.Appeared))
		for _, id := range cmp.Appeared {
			fmt.Fprintf(out, "  [+] %s\n", id)
		}
	}

	if len(cmp.Resolved) > 0 {
		fmt.Fprintf(out, "\nResolved (%d):\n", len(cmp.Resolved))
		for _, id := range cmp.Resolved {
			fmt.Fprintf(out, "  [-] %s\n", id)
		}
	}

	if len(cmp.Appeared) == 0 && len(cmp.Resolved) == 0 {
		fmt.Fprintln(out, "\nNo changes between runs.")
	}

	if cmp.UnchangedCount > 0 {
		fmt.Fprintf(out, "\nUnchanged: %d findings\n", cmp.UnchangedCount)
	}
}
