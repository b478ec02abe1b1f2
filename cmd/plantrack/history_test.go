package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/plantrack/plantrack/internal/history"
	"github.com/plantrack/plantrack/internal/model"
)

// runHistory executes the history command against the given database
// directory and returns its stdout.
func runHistory(t *testing.T, dbDir string, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"history", "--db-dir", dbDir}, args...))

	err := cmd.Execute()
	return buf.String(), err
}

// seedRuns saves runs into a fresh database directory and returns it.
func seedRuns(t *testing.T, runs ...*model.FindingsReport) string {
	t.Helper()

	dbDir := t.TempDir()
	db, err := history.Open(dbDir, history.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	for _, run := range runs {
		if _, err := db.SaveRun(context.Background(), run); err != nil {
			t.Fatalf("failed to seed run: %v", err)
		}
	}
	return dbDir
}

func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	first := &model.FindingsReport{
		ReportsDir:   "reports",
		PlanFile:     "PLAN.md",
		ScannedAt:    time.Date(2026, 2, 5, 23, 0, 0, 0, time.UTC),
		TotalReports: 2,
		NewFindings:  []model.ReportID{"20260102-120000", "20260205-225448"},
	}
	second := &model.FindingsReport{
		ReportsDir:   "reports",
		PlanFile:     "PLAN.md",
		ScannedAt:    time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC),
		TotalReports: 2,
		NewFindings:  []model.ReportID{"20260205-225448", "20260301-010101"},
	}

	t.Run("list shows saved runs newest first", func(t *testing.T) {
		t.Parallel()

		dbDir := seedRuns(t, first, second)
		out, err := runHistory(t, dbDir, "--list")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(out, "Saved runs (2):") {
			t.Errorf("expected run count header, got %q", out)
		}
		newest := strings.Index(out, "2026-03-01")
		oldest := strings.Index(out, "2026-02-05")
		if newest == -1 || oldest == -1 || newest > oldest {
			t.Errorf("expected newest run listed first, got %q", out)
		}
	})

	t.Run("compares the latest two runs", func(t *testing.T) {
		t.Parallel()

		dbDir := seedRuns(t, first, second)
		out, err := runHistory(t, dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(out, "[+] 20260301-010101") {
			t.Errorf("expected appeared finding, got %q", out)
		}
		if !strings.Contains(out, "[-] 20260102-120000") {
			t.Errorf("expected resolved finding, got %q", out)
		}
		if !strings.Contains(out, "Unchanged: 1 findings") {
			t.Errorf("expected unchanged count, got %q", out)
		}
	})

	t.Run("single run cannot be compared", func(t *testing.T) {
		t.Parallel()

		dbDir := seedRuns(t, first)
		_, err := runHistory(t, dbDir)
		if err == nil || !strings.Contains(err.Error(), "at least 2 saved runs") {
			t.Errorf("expected comparison error, got %v", err)
		}
	})

	t.Run("missing database reports no saved runs", func(t *testing.T) {
		t.Parallel()

		_, err := runHistory(t, t.TempDir())
		if err == nil || !strings.Contains(err.Error(), "no saved runs") {
			t.Errorf("expected no-saved-runs error, got %v", err)
		}
	})

	t.Run("unknown baseline run id fails", func(t *testing.T) {
		t.Parallel()

		dbDir := seedRuns(t, first, second)
		_, err := runHistory(t, dbDir, "--with-run-id", "9999")
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected not-found error, got %v", err)
		}
	})
}

func TestFindingsSaveThenHistory(t *testing.T) {
	t.Parallel()

	// End to end: two saved findings runs through the real command,
	// then a comparison.
	dir := t.TempDir()
	reportsDir := filepath.Join(dir, "reports")
	if err := os.Mkdir(reportsDir, 0750); err != nil {
		t.Fatalf("failed to create reports dir: %v", err)
	}
	plan := filepath.Join(dir, "PLAN.md")
	dbDir := filepath.Join(dir, "data")

	run := func(args ...string) error {
		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	findingsArgs := []string{"findings", "--save",
		"--reports-dir", reportsDir, "--plan", plan, "--db-dir", dbDir}

	writeReport(t, reportsDir, "20260205-225448")
	if err := run(findingsArgs...); err != nil {
		t.Fatalf("first findings run failed: %v", err)
	}

	writeReport(t, reportsDir, "20260301-010101")
	if err := run(findingsArgs...); err != nil {
		t.Fatalf("second findings run failed: %v", err)
	}

	out, err := runHistory(t, dbDir)
	if err != nil {
		t.Fatalf("history comparison failed: %v", err)
	}
	if !strings.Contains(out, "[+] 20260301-010101") {
		t.Errorf("expected appeared finding in comparison, got %q", out)
	}
	if !strings.Contains(out, "Unchanged: 1 findings") {
		t.Errorf("expected unchanged count, got %q", out)
	}
}
