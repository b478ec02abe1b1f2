// Package model defines the core data structures used throughout plantrack.
//
// This package contains the following main types:
//   - ReportID: A validated report timestamp identifier (YYYYMMDD-HHMMSS)
//   - IDSet: A set of report identifiers with set-difference support
//   - FindingsReport: The result of a single findings run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (scanner, report, history) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
