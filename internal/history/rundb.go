package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/plantrack/plantrack/internal/model"
)

// dbFileName is the SQLite database file name inside the data directory.
const dbFileName = "plantrack.db"

// RunDB provides SQLite-based storage for findings runs.
// It manages connection pooling and provides methods for saving,
// listing, and retrieving runs.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// Path returns the path to the SQLite database file.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Runs store one row per findings run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		reports_dir TEXT NOT NULL,
		plan_file TEXT NOT NULL,
		total_reports INTEGER NOT NULL,
		mentioned_count INTEGER NOT NULL,
		plan_missing INTEGER NOT NULL DEFAULT 0,
		findings_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// StoredRun represents a findings run persisted in the database.
type StoredRun struct {
	// ID is the database row identifier.
	ID int64

	// Timestamp is when the run was performed.
	Timestamp time.Time

	// ReportsDir is the directory that was scanned.
	ReportsDir string

	// PlanFile is the plan document that was scanned.
	PlanFile string

	// TotalReports is the number of report files found.
	TotalReports int

	// MentionedCount is the number of identifiers found in the plan.
	MentionedCount int

	// PlanMissing indicates the plan document did not exist during the run.
	PlanMissing bool

	// NewFindings is the run's sorted list of unmentioned identifiers.
	NewFindings []model.ReportID
}

// SaveRun persists a findings run and returns its row ID.
func (rdb *RunDB) SaveRun(ctx context.Context, report *model.FindingsReport) (int64, error) {
	findingsJSON, err := json.Marshal(report.NewFindings)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize findings: %w", err)
	}

	query := `
	INSERT INTO runs (timestamp, reports_dir, plan_file, total_reports, mentioned_count, plan_missing, findings_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	planMissing := 0
	if report.PlanMissing {
		planMissing = 1
	}

	result, err := rdb.db.ExecContext(ctx, query,
		report.ScannedAt.UTC().Format(time.RFC3339),
		report.ReportsDir,
		report.PlanFile,
		report.TotalReports,
		report.MentionedCount,
		planMissing,
		string(findingsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return result.LastInsertId()
}

// ListRuns retrieves all stored runs, newest first.
func (rdb *RunDB) ListRuns(ctx context.Context) ([]*StoredRun, error) {
	return rdb.queryRuns(ctx, `
	SELECT id, timestamp, reports_dir, plan_file, total_reports, mentioned_count, plan_missing, findings_json
	FROM runs
	ORDER BY timestamp DESC, id DESC
	`)
}

// LatestRuns retrieves the n most recent runs, newest first.
func (rdb *RunDB) LatestRuns(ctx context.Context, n int) ([]*StoredRun, error) {
	return rdb.queryRuns(ctx, `
	SELECT id, timestamp, reports_dir, plan_file, total_reports, mentioned_count, plan_missing, findings_json
	FROM runs
	ORDER BY timestamp DESC, id DESC
	LIMIT ?
	`, n)
}

// GetRun retrieves a stored run by ID.
// Returns nil without error if no run has that ID.
func (rdb *RunDB) GetRun(ctx context.Context, id int64) (*StoredRun, error) {
	runs, err := rdb.queryRuns(ctx, `
	SELECT id, timestamp, reports_dir, plan_file, total_reports, mentioned_count, plan_missing, findings_json
	FROM runs
	WHERE id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

// queryRuns executes a runs query and scans the rows.
func (rdb *RunDB) queryRuns(ctx context.Context, query string, args ...any) ([]*StoredRun, error) {
	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*StoredRun
	for rows.Next() {
		var (
			run         StoredRun
			timestamp   string
			planMissing int
			findings    string
		)

		if err := rows.Scan(
			&run.ID,
			&timestamp,
			&run.ReportsDir,
			&run.PlanFile,
			&run.TotalReports,
			&run.MentionedCount,
			&planMissing,
			&findings,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.Timestamp = parseTimestamp(timestamp)
		run.PlanMissing = planMissing != 0

		if err := json.Unmarshal([]byte(findings), &run.NewFindings); err != nil {
			return nil, fmt.Errorf("failed to parse findings for run %d: %w", run.ID, err)
		}

		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// parseTimestamp parses a timestamp stored by SQLite.
// SQLite may return different formats depending on how the value was
// written, so several layouts are tried.
func parseTimestamp(s string) time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z07:00",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
