// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records org-to-Hatena conversions in a SQLite database so
// repeated runs can skip inputs that have not changed since their last
// successful conversion.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/org2hatena/pkg/types"
)

const (
	// DefaultPath is used when HistoryConfig.Path is empty.
	DefaultPath = ".org2hatena/history.db"

	// timeLayout is fixed-width so stored timestamps sort chronologically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages the conversion history database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the history database described by cfg and
// creates the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			source TEXT PRIMARY KEY,
			output TEXT NOT NULL,
			sha256 TEXT,
			lines INTEGER,
			blocks TEXT,
			status TEXT NOT NULL,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_converted_at ON conversions(converted_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts or replaces the entry for rec.Source.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) error {
	blocksJSON, err := json.Marshal(rec.Blocks)
	if err != nil {
		return fmt.Errorf("encoding block counts: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO conversions (source, output, sha256, lines, blocks, status, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET
			output=excluded.output, sha256=excluded.sha256, lines=excluded.lines,
			blocks=excluded.blocks, status=excluded.status, error=excluded.error,
			converted_at=excluded.converted_at`,
		rec.Source, rec.Output, rec.SHA256, rec.Lines, string(blocksJSON),
		string(rec.Status), rec.Error, rec.ConvertedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", rec.Source, err)
	}
	return nil
}

// Lookup returns the last record for source. The boolean is false when the
// source has never been recorded.
func (s *Store) Lookup(ctx context.Context, source string) (types.ConversionRecord, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT source, output, sha256, lines, blocks, status, error, converted_at
		 FROM conversions WHERE source = ?`, source)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ConversionRecord{}, false, nil
	}
	if err != nil {
		return types.ConversionRecord{}, false, fmt.Errorf("looking up %s: %w", source, err)
	}
	return rec, true, nil
}

// List returns records newest first. A limit of zero or less returns all.
func (s *Store) List(ctx context.Context, limit int) ([]types.ConversionRecord, error) {
	query := `SELECT source, output, sha256, lines, blocks, status, error, converted_at
		FROM conversions ORDER BY converted_at DESC, source`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Forget removes the record for source, if any.
func (s *Store) Forget(ctx context.Context, source string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM conversions WHERE source = ?`, source); err != nil {
		return fmt.Errorf("forgetting %s: %w", source, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (types.ConversionRecord, error) {
	var (
		rec                 types.ConversionRecord
		sha, blocks, errMsg sql.NullString
		lines               sql.NullInt64
		status, convertedAt string
	)
	if err := row.Scan(&rec.Source, &rec.Output, &sha, &lines, &blocks, &status, &errMsg, &convertedAt); err != nil {
		return rec, err
	}
	rec.SHA256 = sha.String
	rec.Lines = int(lines.Int64)
	rec.Error = errMsg.String
	rec.Status = types.ConversionStatus(status)
	if blocks.Valid && blocks.String != "" && blocks.String != "null" {
		if err := json.Unmarshal([]byte(blocks.String), &rec.Blocks); err != nil {
			return rec, fmt.Errorf("decoding block counts: %w", err)
		}
	}
	t, err := time.Parse(timeLayout, convertedAt)
	if err != nil {
		return rec, fmt.Errorf("parsing converted_at: %w", err)
	}
	rec.ConvertedAt = t
	return rec, nil
}
