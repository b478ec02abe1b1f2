// Package main provides the entry point for the plantrack CLI.
//
// plantrack tracks fuzzer crash-report files against a triage plan
// document. It scans a directory of report-<YYYYMMDD>-<HHMMSS>.md files,
// extracts identifier mentions from the plan, and prints the reports
// not yet mentioned as a markdown checklist.
//
// Usage:
//
//	plantrack findings
//	plantrack findings --reports-dir csmith-reports --plan PLAN.md
//
// See --help for all available options.
package main

// main is the entry point for plantrack.
func main() {
	Execute()
}
