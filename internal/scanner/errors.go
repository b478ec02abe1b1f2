package scanner

import "errors"

// Scanner errors.
//
// Design decision: We use package-level sentinel errors so callers can
// use errors.Is() for programmatic handling while still getting a
// human-readable message. Only the reports directory is a hard failure
// point; a missing plan document is a normal outcome (every report is
// new) and produces no error.
var (
	// ErrReportsDirNotFound is returned when the reports directory does
	// not exist. The wrapping error names the missing path. A wrong
	// working directory is the usual cause, and silently reporting
	// "no new findings" would mask it.
	ErrReportsDirNotFound = errors.New("reports directory not found")

	// ErrReportsDirUnreadable is returned when the reports directory
	// exists but cannot be enumerated (e.g. permission denied).
	ErrReportsDirUnreadable = errors.New("reports directory unreadable")
)
