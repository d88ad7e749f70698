package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/sitegrade/internal/model"
)

// DBFileName is the name of the database file inside the data directory.
const DBFileName = "sitegrade.db"

// storedTimeFormat has a fixed width so that stored timestamps sort
// lexically in time order.
const storedTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNilReport is returned when SaveReport is called without a report.
var ErrNilReport = errors.New("report is nil")

// HistoryDB provides SQLite-based storage for evaluation reports.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// now returns the current time; replaced in tests.
	now func() time.Time
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run 'sitegrade evaluate --save' first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc creates it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the path of the database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS evaluations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		evaluated_at TEXT NOT NULL,
		total_score INTEGER NOT NULL,
		grade TEXT NOT NULL,
		category_scores TEXT,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_evaluations_url ON evaluations(url);
	CREATE INDEX IF NOT EXISTS idx_evaluations_evaluated_at ON evaluations(evaluated_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// EvaluationRecord is the summary of one stored evaluation.
// It is used for listing history without loading the full report.
type EvaluationRecord struct {
	// ID is the unique identifier of the evaluation in the database.
	ID int64

	// URL is the evaluated address.
	URL string

	// EvaluatedAt is when the page was fetched.
	EvaluatedAt time.Time

	// TotalScore is the total score out of 100.
	TotalScore int

	// Grade is the letter grade.
	Grade model.Grade

	// CategoryScores holds the capped points per category.
	CategoryScores map[model.CategoryName]int
}

// SaveReport stores a report and returns its ID.
// A zero EvaluatedAt is replaced by the current time.
func (hdb *HistoryDB) SaveReport(ctx context.Context, report *model.Report) (int64, error) {
	if report == nil {
		return 0, ErrNilReport
	}

	evaluatedAt := report.EvaluatedAt
	if evaluatedAt.IsZero() {
		evaluatedAt = hdb.now()
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	scoresJSON, err := json.Marshal(report.Scores())
	if err != nil {
		return 0, fmt.Errorf("failed to serialize category scores: %w", err)
	}

	query := `
	INSERT INTO evaluations (url, evaluated_at, total_score, grade, category_scores, report_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		report.URL,
		evaluatedAt.UTC().Format(storedTimeFormat),
		report.TotalScore,
		string(report.Grade),
		string(scoresJSON),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save report: %w", err)
	}

	return result.LastInsertId()
}

// GetLatestReport retrieves the most recent report for a URL.
// Returns nil without error when the URL has no history.
func (hdb *HistoryDB) GetLatestReport(ctx context.Context, url string) (*model.Report, error) {
	reports, err := hdb.GetRecentReports(ctx, url, 1)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}
	return reports[0], nil
}

// GetRecentReports retrieves up to limit reports for a URL, newest first.
// A limit of zero or less returns every report.
func (hdb *HistoryDB) GetRecentReports(ctx context.Context, url string, limit int) ([]*model.Report, error) {
	query := `
	SELECT report_json FROM evaluations
	WHERE url = ?
	ORDER BY evaluated_at DESC, id DESC
	`
	args := []any{url}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		var report model.Report
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// GetReportByID retrieves a report by its database ID.
// Returns nil without error when no such evaluation exists.
func (hdb *HistoryDB) GetReportByID(ctx context.Context, id int64) (*model.Report, error) {
	query := `
	SELECT report_json FROM evaluations
	WHERE id = ?
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// GetHistory retrieves evaluation summaries for a URL, newest first.
// An empty url returns the history of every URL.
func (hdb *HistoryDB) GetHistory(ctx context.Context, url string) ([]EvaluationRecord, error) {
	query := `
	SELECT id, url, evaluated_at, total_score, grade, category_scores
	FROM evaluations
	`
	args := make([]any, 0, 1)
	if url != "" {
		query += " WHERE url = ?"
		args = append(args, url)
	}
	query += " ORDER BY evaluated_at DESC, id DESC"

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var results []EvaluationRecord
	for rows.Next() {
		var rec EvaluationRecord
		var evaluatedAt, grade string
		var scoresJSON sql.NullString

		if err := rows.Scan(&rec.ID, &rec.URL, &evaluatedAt, &rec.TotalScore, &grade, &scoresJSON); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}

		rec.EvaluatedAt = parseTimestamp(evaluatedAt)
		rec.Grade = model.Grade(grade)
		rec.CategoryScores = make(map[model.CategoryName]int)
		if scoresJSON.Valid && scoresJSON.String != "" {
			if err := json.Unmarshal([]byte(scoresJSON.String), &rec.CategoryScores); err != nil {
				rec.CategoryScores = make(map[model.CategoryName]int)
			}
		}

		results = append(results, rec)
	}

	return results, rows.Err()
}

// ListEvaluatedURLs returns every URL with at least one stored evaluation.
func (hdb *HistoryDB) ListEvaluatedURLs(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT url FROM evaluations
	ORDER BY url
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list URLs: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan URL: %w", err)
		}
		urls = append(urls, url)
	}

	return urls, rows.Err()
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
