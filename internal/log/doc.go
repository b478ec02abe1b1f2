// Package log provides logging utilities for plantrack.
//
// This package implements TidyHandler, a slog.Handler wrapper that
// shortens filesystem paths in log attributes by replacing the user's
// home directory prefix with "~". Reports directory and plan document
// paths appear in nearly every log record, and absolute home-anchored
// paths make the output noisy and leak the local username into logs
// that are often pasted into issue trackers.
package log
