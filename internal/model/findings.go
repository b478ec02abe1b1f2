package model

import (
	"path/filepath"
	"time"
)

// FindingsReport is the result of a single findings run.
// It records where the run looked, what it counted, and the sorted
// list of report identifiers not yet mentioned in the plan document.
//
// Design decision: We keep the run metadata (paths, counts, scan time)
// alongside the findings rather than returning a bare slice because
// the JSON writer and the run history store both need the full
// context of a run, not just its difference set.
type FindingsReport struct {
	// ReportsDir is the directory that was scanned for report files.
	ReportsDir string `json:"reports_dir"`

	// PlanFile is the plan document that was scanned for mentions.
	PlanFile string `json:"plan_file"`

	// ScannedAt is when the run was performed.
	ScannedAt time.Time `json:"scanned_at"`

	// TotalReports is the number of report files found in ReportsDir.
	TotalReports int `json:"total_reports"`

	// MentionedCount is the number of distinct identifiers found in
	// the plan document. This counts every extracted identifier, not
	// only those that correspond to an existing report file.
	MentionedCount int `json:"mentioned_count"`

	// PlanMissing indicates the plan document did not exist.
	// A missing plan is a normal outcome: every report is then new.
	PlanMissing bool `json:"plan_missing"`

	// NewFindings lists report identifiers present in ReportsDir but
	// absent from the plan document, in ascending order.
	NewFindings []ReportID `json:"new_findings"`
}

// HasFindings reports whether the run produced any new findings.
func (r *FindingsReport) HasFindings() bool {
	return len(r.NewFindings) > 0
}

// PlanName returns the base name of the plan document for display,
// e.g. "PLAN.md".
func (r *FindingsReport) PlanName() string {
	return filepath.Base(r.PlanFile)
}
