package history

import "github.com/plantrack/plantrack/internal/model"

// RunComparison holds the result of comparing two stored runs.
// The baseline is the older run; the current run is the newer one.
type RunComparison struct {
	// Baseline is the older run.
	Baseline *StoredRun `json:"-"`

	// Current is the newer run.
	Current *StoredRun `json:"-"`

	// Appeared lists identifiers that are findings in the current run
	// but were not findings in the baseline, ascending.
	Appeared []model.ReportID `json:"appeared,omitempty"`

	// Resolved lists identifiers that were findings in the baseline
	// but are no longer findings in the current run, ascending.
	// A finding resolves when it gets mentioned in the plan or its
	// report file is removed.
	Resolved []model.ReportID `json:"resolved,omitempty"`

	// UnchangedCount is the number of findings present in both runs.
	UnchangedCount int `json:"unchanged_count"`
}

// CompareRuns compares two stored runs by their findings sets.
func CompareRuns(baseline, current *StoredRun) *RunComparison {
	baseSet := model.NewIDSet(baseline.NewFindings...)
	currentSet := model.NewIDSet(current.NewFindings...)

	unchanged := 0
	for _, id := range baseline.NewFindings {
		if currentSet.Contains(id) {
			unchanged++
		}
	}

	return &RunComparison{
		Baseline:       baseline,
		Current:        current,
		Appeared:       currentSet.Diff(baseSet),
		Resolved:       baseSet.Diff(currentSet),
		UnchangedCount: unchanged,
	}
}
