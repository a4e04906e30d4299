package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/archguard/archguard/internal/archguard/domain"
)

// Run is one recorded validation run.
type Run struct {
	ID           int64     `json:"id"`
	Root         string    `json:"root"`
	FilesChecked int       `json:"files_checked"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	Success      bool      `json:"success"`
	Summary      string    `json:"summary"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store persists validation-run history using SQLite. The policy document is
// never written here; only the tool's own run records are.
type Store struct {
	db *sql.DB
}

// NewStore initializes a Store in the specified storage directory, creating
// the directory and 'history.db' if needed.
func NewStore(storageDir string) (*Store, error) {
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}

	dbPath := filepath.Join(storageDir, "history.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			root TEXT NOT NULL,
			files_checked INTEGER,
			error_count INTEGER,
			warning_count INTEGER,
			success INTEGER,
			summary TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_root ON runs(root);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to exec schema query: %w", err)
		}
	}
	return nil
}

// RecordRun persists the outcome of one validation run.
func (s *Store) RecordRun(root string, report *domain.ValidationReport) error {
	success := 0
	if report.Success {
		success = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO runs (root, files_checked, error_count, warning_count, success, summary)
		VALUES (?, ?, ?, ?, ?, ?)
	`, root, report.FilesChecked, len(report.Errors), len(report.Warnings), success, report.Summary)
	return err
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, root, files_checked, error_count, warning_count, success, summary, created_at
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var success int
		if err := rows.Scan(&r.ID, &r.Root, &r.FilesChecked, &r.ErrorCount, &r.WarningCount, &success, &r.Summary, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Success = success == 1
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
