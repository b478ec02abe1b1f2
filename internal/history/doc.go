// Package history provides SQLite-based storage of findings runs.
//
// Each saved run records where the scan looked, its counts, and the
// full list of new findings. Stored runs can be listed and compared:
// the comparison between two runs shows which identifiers appeared
// since the baseline and which were resolved (mentioned in the plan,
// or their report file removed).
//
// The database lives in the XDG data directory by default and uses
// the pure-Go modernc.org/sqlite driver, so no cgo is required.
package history
