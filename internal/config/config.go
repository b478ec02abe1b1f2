package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultReportsDir is the directory scanned for report files,
	// relative to the working directory. Report files are named
	// report-<YYYYMMDD>-<HHMMSS>.md.
	DefaultReportsDir = "reports"

	// DefaultPlanFile is the plan document scanned for identifier
	// mentions, relative to the working directory.
	DefaultPlanFile = "PLAN.md"

	// AppName is the application name used for XDG directory paths.
	AppName = "plantrack"
)

// Config holds all configuration options for plantrack.
// It is populated from defaults, the optional config file, and CLI
// flags, then passed through the application via dependency injection
// rather than global state.
type Config struct {
	// ReportsDir is the directory containing report-<id>.md files.
	// A missing directory is a fatal error at scan time: the plan
	// document is optional, so a missing reports directory almost
	// always means the tool was run from the wrong place.
	ReportsDir string

	// PlanFile is the plan document scanned for identifier mentions.
	// A missing plan is a normal outcome treated as "nothing mentioned".
	PlanFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONOutput enables JSON output instead of the plain checklist.
	// Mutually exclusive with MarkdownOutput.
	JSONOutput bool

	// MarkdownOutput enables a full markdown document instead of the
	// plain checklist. Mutually exclusive with JSONOutput.
	MarkdownOutput bool

	// OutputFile is the output file path for the findings report.
	// When set, the report is written to this file in addition to stdout.
	OutputFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .plantrack in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// SaveRun indicates whether to record this run in the history
	// database for later comparison.
	SaveRun bool

	// DBDir is the directory for the run-history SQLite database.
	// Defaults to the XDG data directory (~/.local/share/plantrack on Linux).
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		ReportsDir: DefaultReportsDir,
		PlanFile:   DefaultPlanFile,
		DBDir:      XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for plantrack.
// On Linux: ~/.local/share/plantrack
// On macOS: ~/Library/Application Support/plantrack
// On Windows: %LOCALAPPDATA%\plantrack
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for plantrack.
// On Linux: ~/.config/plantrack
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid, checking
// one rule at a time so the first failure is reported clearly.
func (c *Config) Validate() error {
	if c.ReportsDir == "" {
		return ErrNoReportsDir
	}

	if c.PlanFile == "" {
		return ErrNoPlanFile
	}

	// JSONOutput and MarkdownOutput are mutually exclusive
	if c.JSONOutput && c.MarkdownOutput {
		return ErrConflictingOutputFormats
	}

	// Saving a run requires somewhere to save it
	if c.SaveRun && c.DBDir == "" {
		return ErrNoDBDir
	}

	return nil
}

// ApplyFile overlays values from a loaded configuration file onto the
// defaults. Only fields the file actually sets are applied; CLI flags
// are applied after this and win over both.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.ReportsDir != "" {
		c.ReportsDir = f.ReportsDir
	}
	if f.PlanFile != "" {
		c.PlanFile = f.PlanFile
	}
	if f.SaveRuns {
		c.SaveRun = true
	}
}
