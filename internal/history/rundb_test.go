package history

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/plantrack/plantrack/internal/model"
)

// newTestDB opens a RunDB in a temporary directory and closes it when
// the test finishes.
func newTestDB(t *testing.T) *RunDB {
	t.Helper()

	rdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := rdb.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return rdb
}

// findingsRun builds a FindingsReport scanned at the given time.
func findingsRun(at time.Time, findings ...model.ReportID) *model.FindingsReport {
	return &model.FindingsReport{
		ReportsDir:     "reports",
		PlanFile:       "PLAN.md",
		ScannedAt:      at,
		TotalReports:   len(findings),
		MentionedCount: 0,
		NewFindings:    findings,
	}
}

func TestRunDBOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database file and directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "data")
		rdb, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rdb.Close()

		if rdb.Path() != filepath.Join(dir, "plantrack.db") {
			t.Errorf("unexpected database path %q", rdb.Path())
		}
	})

	t.Run("missing database without create option fails", func(t *testing.T) {
		t.Parallel()

		opts := Options{CreateIfNotExists: false}
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected error for missing database")
		}
	})
}

func TestRunDBSaveAndListRuns(t *testing.T) {
	t.Parallel()

	rdb := newTestDB(t)
	ctx := context.Background()

	first := findingsRun(time.Date(2026, 2, 5, 23, 0, 0, 0, time.UTC),
		"20260205-225448")
	second := findingsRun(time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC),
		"20260205-225448", "20260301-010101")

	if _, err := rdb.SaveRun(ctx, first); err != nil {
		t.Fatalf("failed to save first run: %v", err)
	}
	if _, err := rdb.SaveRun(ctx, second); err != nil {
		t.Fatalf("failed to save second run: %v", err)
	}

	runs, err := rdb.ListRuns(ctx)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}

	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	t.Run("runs are newest first", func(t *testing.T) {
		if !runs[0].Timestamp.After(runs[1].Timestamp) {
			t.Errorf("expected newest first, got %v then %v",
				runs[0].Timestamp, runs[1].Timestamp)
		}
	})

	t.Run("findings survive the round trip", func(t *testing.T) {
		want := []model.ReportID{"20260205-225448", "20260301-010101"}
		if !reflect.DeepEqual(runs[0].NewFindings, want) {
			t.Errorf("expected %v, got %v", want, runs[0].NewFindings)
		}
	})
}

func TestRunDBGetRun(t *testing.T) {
	t.Parallel()

	rdb := newTestDB(t)
	ctx := context.Background()

	id, err := rdb.SaveRun(ctx, findingsRun(time.Now().UTC(), "20260301-010101"))
	if err != nil {
		t.Fatalf("failed to save run: %v", err)
	}

	t.Run("existing run is returned", func(t *testing.T) {
		run, err := rdb.GetRun(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if run == nil {
			t.Fatal("expected run, got nil")
		}
		if run.ID != id {
			t.Errorf("expected ID %d, got %d", id, run.ID)
		}
	})

	t.Run("unknown ID returns nil without error", func(t *testing.T) {
		run, err := rdb.GetRun(ctx, 9999)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if run != nil {
			t.Errorf("expected nil, got %+v", run)
		}
	})
}

func TestRunDBLatestRuns(t *testing.T) {
	t.Parallel()

	rdb := newTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		if _, err := rdb.SaveRun(ctx, findingsRun(base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("failed to save run %d: %v", i, err)
		}
	}

	runs, err := rdb.LatestRuns(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if !runs[0].Timestamp.After(runs[1].Timestamp) {
		t.Error("expected newest first")
	}
}

func TestCompareRuns(t *testing.T) {
	t.Parallel()

	baseline := &StoredRun{
		NewFindings: []model.ReportID{"20260102-120000", "20260205-225448"},
	}
	current := &StoredRun{
		NewFindings: []model.ReportID{"20260205-225448", "20260301-010101"},
	}

	cmp := CompareRuns(baseline, current)

	t.Run("appeared holds findings new in current", func(t *testing.T) {
		want := []model.ReportID{"20260301-010101"}
		if !reflect.DeepEqual(cmp.Appeared, want) {
			t.Errorf("expected %v, got %v", want, cmp.Appeared)
		}
	})

	t.Run("resolved holds findings gone from current", func(t *testing.T) {
		want := []model.ReportID{"20260102-120000"}
		if !reflect.DeepEqual(cmp.Resolved, want) {
			t.Errorf("expected %v, got %v", want, cmp.Resolved)
		}
	})

	t.Run("unchanged counts the intersection", func(t *testing.T) {
		if cmp.UnchangedCount != 1 {
			t.Errorf("expected 1 unchanged, got %d", cmp.UnchangedCount)
		}
	})
}
