package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration. They are
// package-level sentinels so callers can use errors.Is() for
// programmatic handling.
var (
	// ErrNoReportsDir is returned when the reports directory is empty.
	// The directory may not exist yet, but the path itself must be set.
	ErrNoReportsDir = errors.New("no reports directory specified")

	// ErrNoPlanFile is returned when the plan document path is empty.
	// The file may be absent at scan time, but the path must be set.
	ErrNoPlanFile = errors.New("no plan document specified")

	// ErrConflictingOutputFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used
	// at a time.
	ErrConflictingOutputFormats = errors.New("conflicting output formats: --json and --markdown cannot be used together")

	// ErrNoDBDir is returned when --save is requested but the history
	// database directory is empty.
	ErrNoDBDir = errors.New("no database directory specified for saving runs")
)
