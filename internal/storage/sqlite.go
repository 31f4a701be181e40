package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codescribe/internal/analyzer"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS scans (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			root TEXT NOT NULL,
			created_at TEXT NOT NULL,
			file_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS files (
			scan_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			path TEXT NOT NULL,
			language TEXT NOT NULL,
			line_count INTEGER NOT NULL,
			size INTEGER NOT NULL,
			description TEXT,
			functions JSON,
			classes JSON,
			imports JSON,
			PRIMARY KEY (scan_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_files_path ON files(path);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveScan records a scan snapshot atomically: the scan row plus one files
// row per record, preserving record order via the position column.
func (s *SQLiteStore) SaveScan(ctx context.Context, root string, sum analyzer.ModuleSummary) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO scans (root, created_at, file_count) VALUES (?, ?, ?)`,
		root, time.Now().UTC().Format(time.RFC3339), sum.FileCount)
	if err != nil {
		return 0, err
	}
	scanID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO files (scan_id, position, path, language, line_count, size, description, functions, classes, imports)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, rec := range sum.Records {
		functions, _ := json.Marshal(rec.Functions)
		classes, _ := json.Marshal(rec.Classes)
		imports, _ := json.Marshal(rec.Imports)
		if _, err := stmt.Exec(scanID, i, rec.Path, string(rec.Language), rec.LineCount,
			rec.Size, rec.Description, functions, classes, imports); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return scanID, nil
}

// LoadLatestScan restores the most recent snapshot in its original record
// order. Returns ErrNoScans on an empty database.
func (s *SQLiteStore) LoadLatestScan(ctx context.Context) (string, analyzer.ModuleSummary, error) {
	var scanID int64
	var root string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, root FROM scans ORDER BY id DESC LIMIT 1`).Scan(&scanID, &root)
	if err == sql.ErrNoRows {
		return "", analyzer.ModuleSummary{}, ErrNoScans
	}
	if err != nil {
		return "", analyzer.ModuleSummary{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, language, line_count, size, description, functions, classes, imports
		FROM files WHERE scan_id = ? ORDER BY position
	`, scanID)
	if err != nil {
		return "", analyzer.ModuleSummary{}, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var records []analyzer.FileRecord
	for rows.Next() {
		var rec analyzer.FileRecord
		var lang string
		var functions, classes, imports []byte
		if err := rows.Scan(&rec.Path, &lang, &rec.LineCount, &rec.Size,
			&rec.Description, &functions, &classes, &imports); err != nil {
			return "", analyzer.ModuleSummary{}, fmt.Errorf("failed to scan file row: %w", err)
		}
		rec.Language = analyzer.Language(lang)
		rec.Functions = unmarshalNames(functions)
		rec.Classes = unmarshalNames(classes)
		rec.Imports = unmarshalNames(imports)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return "", analyzer.ModuleSummary{}, err
	}

	return root, analyzer.SummarizeRecords(records), nil
}

func unmarshalNames(data []byte) []string {
	names := []string{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &names)
	}
	return names
}
