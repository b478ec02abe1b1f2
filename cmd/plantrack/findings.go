package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/plantrack/plantrack/internal/config"
	"github.com/plantrack/plantrack/internal/history"
	"github.com/plantrack/plantrack/internal/log"
	"github.com/plantrack/plantrack/internal/model"
	"github.com/plantrack/plantrack/internal/report"
	"github.com/plantrack/plantrack/internal/scanner"
)

// NewFindingsCmd creates the findings command.
func NewFindingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "findings",
		Short: "List report identifiers not yet mentioned in the plan document",
		Long: `Findings scans the reports directory for report-<YYYYMMDD>-<HHMMSS>.md
files, scans the plan document for identifier mentions, and prints the
set difference as a checklist.

A missing plan document is treated as an empty plan: every report is a
new finding. A missing reports directory is an error, since it usually
means the tool was run from the wrong directory.

Examples:
  # Scan ./reports against ./PLAN.md
  plantrack findings

  # Custom locations
  plantrack findings --reports-dir csmith-reports --plan docs/PLAN.md

  # Output JSON for automation
  plantrack findings --json

  # Full markdown document, also written to a file
  plantrack findings --markdown --output findings.md

  # Record this run in the history database
  plantrack findings --save`,
		Args: cobra.NoArgs,
		RunE: runFindingsCmd,
	}

	// Scan location flags
	cmd.Flags().StringP("reports-dir", "r", config.DefaultReportsDir,
		"Directory containing report-<id>.md files")
	cmd.Flags().StringP("plan", "p", config.DefaultPlanFile,
		"Plan document scanned for identifier mentions")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .plantrack in current or home directory)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path in addition to stdout")

	// History flags
	cmd.Flags().BoolP("save", "s", false,
		"Record this run in the history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory for the history database")

	return cmd
}

// runFindingsCmd executes the findings command.
func runFindingsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging on stderr so stdout carries only the report
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Cancel the scan on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := scanner.New(cfg.ReportsDir, cfg.PlanFile, scanner.WithLogger(logger))
	result, err := s.Scan(ctx)
	if err != nil {
		return err
	}

	writer, cleanup, err := buildWriter(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := writer.Write(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.SaveRun {
		if err := saveRun(ctx, cfg, result, logger); err != nil {
			return err
		}
	}

	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a logger writing to stderr.
// Verbose selects debug level; otherwise only warnings and errors are
// logged. The TidyHandler keeps home-anchored paths short.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := log.NewTidyHandler(slog.NewTextHandler(os.Stderr, opts))
	return slog.New(handler)
}

// buildConfig creates a Config from defaults, the optional config
// file, and command flags, in that order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file, error if not found.
	// Otherwise a missing file just means defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		f, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(f)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Flags win over the config file, but only when actually set,
	// so a file value is not clobbered by a flag default.
	if cmd.Flags().Changed("reports-dir") || cfg.ReportsDir == "" {
		cfg.ReportsDir, err = cmd.Flags().GetString("reports-dir")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("plan") || cfg.PlanFile == "" {
		cfg.PlanFile, err = cmd.Flags().GetString("plan")
		if err != nil {
			return nil, err
		}
	}

	cfg.JSONOutput, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownOutput, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("save") {
		cfg.SaveRun, err = cmd.Flags().GetBool("save")
		if err != nil {
			return nil, err
		}
	}

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// buildWriter selects the report writer for the configured format and
// destination. The returned cleanup function closes the output file,
// if any; it is safe to call unconditionally.
func buildWriter(cfg *config.Config, stdout io.Writer) (report.Writer, func(), error) {
	newWriter := func(out io.Writer) report.Writer {
		switch {
		case cfg.JSONOutput:
			return report.NewJSONWriter(out)
		case cfg.MarkdownOutput:
			return report.NewMarkdownWriter(out)
		default:
			return report.NewTextWriter(out, report.WithStats(cfg.Verbose))
		}
	}

	if cfg.OutputFile == "" {
		return newWriter(stdout), func() {}, nil
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(cfg.OutputFile) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}

	mw := report.NewMultiWriter(newWriter(stdout), newWriter(f))
	return mw, func() { _ = f.Close() }, nil
}

// saveRun records the findings run in the history database.
func saveRun(ctx context.Context, cfg *config.Config, result *model.FindingsReport, logger *slog.Logger) error {
	db, err := history.Open(cfg.DBDir, history.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, result)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Debug("saved findings run",
		"run_id", id,
		"db", db.Path(),
		"findings", len(result.NewFindings),
	)

	return nil
}
