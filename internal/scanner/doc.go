// Package scanner locates report identifiers on disk and computes new findings.
//
// The scanner performs three operations:
//   - ScanReports: extract identifiers from report filenames in a directory
//   - ScanPlan: extract identifier mentions from a plan document's text
//   - Scan: run both and compute the set difference as a FindingsReport
//
// Extraction from the plan document is deliberately unanchored: an
// identifier embedded anywhere in the text counts as mentioned, including
// inside prose. Extraction from filenames is anchored to the full
// report-<id>.md pattern so unrelated files are ignored.
package scanner
