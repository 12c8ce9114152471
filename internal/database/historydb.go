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

	"github.com/nao1215/careermap/internal/model"
)

// FileName is the database file created in the database directory.
const FileName = "careermap.db"

// HistoryDB stores crawl runs and the pages they fetched.
type HistoryDB struct {
	db     *sql.DB
	dbPath string
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

// Open opens or creates the history database in dbDir.
// With CreateIfNotExists false, a missing database is an error.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	var dsn string
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?mode=rwc"
	} else {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s: %w", dbPath, err)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

func (h *HistoryDB) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		root_url TEXT NOT NULL,
		root_hash TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL DEFAULT '',
		category_count INTEGER NOT NULL DEFAULT 0,
		job_count INTEGER NOT NULL DEFAULT 0,
		output_path TEXT NOT NULL DEFAULT '',
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_mode_started ON runs(mode, started_at);

	-- Pages fetched by each run, root page first.
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		url TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		content_type TEXT NOT NULL DEFAULT '',
		hash TEXT NOT NULL DEFAULT '',
		fetched_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pages_run ON pages(run_id);
	CREATE INDEX IF NOT EXISTS idx_pages_url ON pages(url);
	`

	_, err := h.db.ExecContext(ctx, schema)
	return err
}

// SaveRun stores a crawl report and its pages. Saving a run id again
// replaces the earlier record.
func (h *HistoryDB) SaveRun(ctx context.Context, report *model.CrawlReport) (err error) {
	// Pages live in their own table.
	stored := *report
	stored.Pages = nil
	reportJSON, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	info := model.NewRunInfo(report)

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM pages WHERE run_id = ?`, info.ID); err != nil {
		return fmt.Errorf("failed to clear pages: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (id, mode, root_url, root_hash, status, error_message, started_at, finished_at,
		category_count, job_count, output_path, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		root_hash = excluded.root_hash,
		status = excluded.status,
		error_message = excluded.error_message,
		finished_at = excluded.finished_at,
		category_count = excluded.category_count,
		job_count = excluded.job_count,
		output_path = excluded.output_path,
		report_json = excluded.report_json
	`,
		info.ID,
		string(info.Mode),
		info.RootURL,
		info.RootHash,
		string(info.Status),
		info.ErrorMessage,
		formatTimestamp(info.StartedAt),
		formatTimestamp(info.FinishedAt),
		info.CategoryCount,
		info.JobCount,
		info.OutputPath,
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	for i, p := range report.Pages {
		_, err = tx.ExecContext(ctx, `
		INSERT INTO pages (run_id, seq, url, status_code, content_type, hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		`, info.ID, i, p.URL, p.StatusCode, p.ContentType, p.Hash, formatTimestamp(p.FetchedAt))
		if err != nil {
			return fmt.Errorf("failed to save page %s: %w", p.URL, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

const runColumns = `id, mode, root_url, root_hash, status, error_message, started_at, finished_at,
	category_count, job_count, output_path`

// ListRuns returns run metadata newest first. An empty mode lists all runs.
func (h *HistoryDB) ListRuns(ctx context.Context, mode model.Mode) ([]model.RunInfo, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE 1=1`
	args := make([]any, 0, 1)

	if mode != "" {
		query += " AND mode = ?"
		args = append(args, string(mode))
	}
	query += " ORDER BY started_at DESC"

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]model.RunInfo, 0)
	for rows.Next() {
		var info model.RunInfo
		var mode, status, startedAt, finishedAt string
		err := rows.Scan(
			&info.ID,
			&mode,
			&info.RootURL,
			&info.RootHash,
			&status,
			&info.ErrorMessage,
			&startedAt,
			&finishedAt,
			&info.CategoryCount,
			&info.JobCount,
			&info.OutputPath,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		info.Mode = model.Mode(mode)
		info.Status = model.RunStatus(status)
		info.StartedAt = parseTimestamp(startedAt)
		info.FinishedAt = parseTimestamp(finishedAt)
		runs = append(runs, info)
	}

	return runs, rows.Err()
}

// GetRun loads a full run by id. A unique id prefix, such as the short id
// shown by the history command, is accepted too.
func (h *HistoryDB) GetRun(ctx context.Context, id string) (*model.CrawlReport, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, report_json FROM runs WHERE id = ? OR id LIKE ? || '%' LIMIT 2`, id, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	type match struct{ id, reportJSON string }
	matches := make([]match, 0, 2)
	for rows.Next() {
		var m match
		if err := rows.Scan(&m.id, &m.reportJSON); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
	default:
		exact := false
		for _, m := range matches {
			if m.id == id {
				matches = []match{m}
				exact = true
				break
			}
		}
		if !exact {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousRunID, id)
		}
	}

	return h.loadReport(ctx, matches[0].id, matches[0].reportJSON)
}

// LatestRuns returns up to n full runs of mode, newest first.
// With onlySucceeded, failed and unfinished runs are skipped.
func (h *HistoryDB) LatestRuns(ctx context.Context, mode model.Mode, n int, onlySucceeded bool) ([]*model.CrawlReport, error) {
	query := `SELECT id, report_json FROM runs WHERE mode = ?`
	args := []any{string(mode)}
	if onlySucceeded {
		query += " AND status = ?"
		args = append(args, string(model.RunStatusSucceeded))
	}
	query += " ORDER BY started_at DESC LIMIT ?"
	args = append(args, n)

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest runs: %w", err)
	}

	type stored struct{ id, reportJSON string }
	found := make([]stored, 0, n)
	for rows.Next() {
		var s stored
		if err := rows.Scan(&s.id, &s.reportJSON); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		found = append(found, s)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	reports := make([]*model.CrawlReport, 0, len(found))
	for _, s := range found {
		r, err := h.loadReport(ctx, s.id, s.reportJSON)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// DeleteRun removes a run and its pages.
func (h *HistoryDB) DeleteRun(ctx context.Context, id string) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE run_id = ?`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete pages: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return tx.Commit()
}

func (h *HistoryDB) loadReport(ctx context.Context, id, reportJSON string) (*model.CrawlReport, error) {
	var report model.CrawlReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse run %s: %w", id, err)
	}
	if report.Mapping == nil {
		report.Mapping = model.NewMapping()
	}
	if report.ErrorMessage != "" {
		report.Error = errors.New(report.ErrorMessage)
	}

	pages, err := h.pages(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Pages = pages

	return &report, nil
}

func (h *HistoryDB) pages(ctx context.Context, runID string) ([]model.Page, error) {
	rows, err := h.db.QueryContext(ctx, `
	SELECT url, status_code, content_type, hash, fetched_at
	FROM pages WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var pages []model.Page
	for rows.Next() {
		var p model.Page
		var fetchedAt string
		if err := rows.Scan(&p.URL, &p.StatusCode, &p.ContentType, &p.Hash, &fetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		p.FetchedAt = parseTimestamp(fetchedAt)
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// storedTimeFormat sorts lexically in chronological order.
const storedTimeFormat = "2006-01-02 15:04:05.000000000"

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(storedTimeFormat)
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	storedTimeFormat,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// parseTimestamp parses s with the known formats. Unparseable or empty
// values give the zero time.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
