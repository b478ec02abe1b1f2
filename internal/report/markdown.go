package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/plantrack/plantrack/internal/model"
)

// MarkdownWriter outputs findings reports in Markdown format.
// This format is designed for pasting into the plan document or
// sharing in issue trackers.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and checkboxes
//  3. GitHub-flavored markdown output
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the findings report as a Markdown document.
func (w *MarkdownWriter) Write(report *model.FindingsReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeFindings(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.FindingsReport) {
	md.H1("Findings Report")
	md.PlainText("")

	planStatus := "present"
	if report.PlanMissing {
		planStatus = "missing (treated as empty)"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Reports Directory", "`" + report.ReportsDir + "`"},
			{"Plan Document", "`" + report.PlanFile + "` (" + planStatus + ")"},
			{"Scanned At", report.ScannedAt.Format("2006-01-02 15:04:05 MST")},
			{"Total Reports", strconv.Itoa(report.TotalReports)},
			{"Mentioned Identifiers", strconv.Itoa(report.MentionedCount)},
			{"New Findings", strconv.Itoa(len(report.NewFindings))},
		},
	})
	md.PlainText("")
}

// writeFindings writes the checklist of new findings, or the
// no-findings line when the run came up empty.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.FindingsReport) {
	if !report.HasFindings() {
		md.PlainText(noFindingsLine)
		return
	}

	md.H2("New findings not in " + report.PlanName())
	md.PlainText("")

	boxes := make([]markdown.CheckBoxSet, 0, len(report.NewFindings))
	for _, id := range report.NewFindings {
		boxes = append(boxes, markdown.CheckBoxSet{
			Checked: false,
			Text:    id.String(),
		})
	}
	md.CheckBox(boxes)
}
