package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/plantrack/plantrack/internal/model"
)

// noFindingsLine is the exact output when a run produced no new findings.
const noFindingsLine = "No new findings."

// TextWriter outputs the plain checklist format for terminal display.
// With findings the output is a header naming the plan document
// followed by one checkbox line per identifier in ascending order:
//
//	New findings not in PLAN.md:
//	  - [ ] 20260301-010101
//
// Without findings the output is the single line "No new findings.".
// This shape is stable; scripts may parse it.
type TextWriter struct {
	baseWriter

	// stats appends scan statistics after the checklist.
	stats bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithStats appends a scan statistics line to the output.
func WithStats(stats bool) TextWriterOption {
	return func(w *TextWriter) {
		w.stats = stats
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the findings report in plain checklist format.
func (w *TextWriter) Write(report *model.FindingsReport) (int, error) {
	var sb strings.Builder

	if report.HasFindings() {
		fmt.Fprintf(&sb, "New findings not in %s:\n", report.PlanName())
		for _, id := range report.NewFindings {
			fmt.Fprintf(&sb, "  - [ ] %s\n", id)
		}
	} else {
		sb.WriteString(noFindingsLine + "\n")
	}

	if w.stats {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "Scanned %d reports, %d identifiers mentioned in %s.\n",
			report.TotalReports, report.MentionedCount, report.PlanName())
	}

	return w.output.Write([]byte(sb.String()))
}
