package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/plantrack/plantrack/internal/model"
)

// reportFilePattern matches a report filename and captures its identifier.
// Anchored to the full name so files like "report-20260205-225448.md.bak"
// or "old-report-20260205-225448.md" are skipped.
var reportFilePattern = regexp.MustCompile(`^report-(\d{8}-\d{6})\.md$`)

// mentionPattern matches an identifier anywhere in the plan text.
// Unanchored: an identifier inside a sentence still counts as mentioned.
var mentionPattern = regexp.MustCompile(`\d{8}-\d{6}`)

// Scanner locates report identifiers in a reports directory and a plan
// document, and computes which reports are not yet mentioned in the plan.
//
// A Scanner holds no open resources; every scan opens, reads, and
// releases its file handles within the call. Scans are read-only and
// idempotent: two runs over unchanged inputs produce identical results.
type Scanner struct {
	// reportsDir is the directory containing report-<id>.md files.
	reportsDir string

	// planFile is the plan document scanned for identifier mentions.
	planFile string

	// logger is used for debug-level scan progress.
	logger *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets a custom logger for scan progress.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// New creates a Scanner for the given reports directory and plan document.
func New(reportsDir, planFile string, opts ...Option) *Scanner {
	s := &Scanner{
		reportsDir: reportsDir,
		planFile:   planFile,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// ScanReports enumerates the reports directory and collects the
// identifier of every entry named report-<YYYYMMDD>-<HHMMSS>.md.
// Entries with any other name are skipped silently. A missing directory
// returns an error wrapping ErrReportsDirNotFound that names the path;
// an empty directory returns an empty set.
func (s *Scanner) ScanReports(ctx context.Context) (*model.IDSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.reportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrReportsDirNotFound, s.reportsDir)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrReportsDirUnreadable, s.reportsDir, err)
	}

	ids := model.NewIDSet()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := reportFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		ids.Add(model.ReportID(m[1]))
	}

	s.logger.Debug("scanned reports directory",
		"dir", s.reportsDir,
		"entries", len(entries),
		"reports", ids.Len(),
	)

	return ids, nil
}

// ScanPlan reads the plan document and collects every identifier
// mentioned anywhere in its text. The found result reports whether the
// plan document exists; a missing plan yields an empty set with no
// error, since a plan that has not been written yet simply mentions
// nothing.
func (s *Scanner) ScanPlan(ctx context.Context) (ids *model.IDSet, found bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(s.planFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("plan document does not exist", "path", s.planFile)
			return model.NewIDSet(), false, nil
		}
		return nil, false, fmt.Errorf("failed to read plan document %s: %w", s.planFile, err)
	}

	ids = model.NewIDSet()
	for _, m := range mentionPattern.FindAllString(string(data), -1) {
		ids.Add(model.ReportID(m))
	}

	s.logger.Debug("scanned plan document",
		"path", s.planFile,
		"mentions", ids.Len(),
	)

	return ids, true, nil
}

// Scan runs ScanReports and ScanPlan concurrently and assembles a
// FindingsReport whose NewFindings is the ascending-sorted set
// difference of reports minus mentions.
//
// The two scans touch independent paths, so they fan out on an
// errgroup; the first error cancels the sibling via the derived
// context.
func (s *Scanner) Scan(ctx context.Context) (*model.FindingsReport, error) {
	var (
		reports   *model.IDSet
		mentioned *model.IDSet
		planFound bool
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		reports, err = s.ScanReports(ctx)
		return err
	})

	g.Go(func() error {
		var err error
		mentioned, planFound, err = s.ScanPlan(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.FindingsReport{
		ReportsDir:     s.reportsDir,
		PlanFile:       s.planFile,
		ScannedAt:      time.Now(),
		TotalReports:   reports.Len(),
		MentionedCount: mentioned.Len(),
		PlanMissing:    !planFound,
		NewFindings:    reports.Diff(mentioned),
	}, nil
}
