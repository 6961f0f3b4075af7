// Package store persists extraction runs and their tables to SQLite so
// past results can be listed and re-exported without reprocessing the
// source document.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tsawler/pdftables/engine"
)

const DefaultDBName = "pdftables.db"

// Store wraps the SQLite database holding extraction history.
type Store struct {
	*sql.DB
	path string
}

// Open opens or creates the SQLite database at the given path and
// ensures the schema exists.
func Open(dbPath string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{
		DB:   sqlDB,
		path: dbPath,
	}

	if err := s.initSchema(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema() error {
	_, err := s.Exec(schema)
	return err
}

// Run is one recorded extraction of a source document.
type Run struct {
	ID         int64     `json:"id"`
	SourceFile string    `json:"source_file"`
	CreatedAt  time.Time `json:"created_at"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	NumTables  int       `json:"num_tables"`
}

// SaveResult records one extraction result and its tables. The table
// data is stored as JSON so a stored run round-trips back to the same
// records it was serialized from.
func (s *Store) SaveResult(ctx context.Context, result *engine.Result) (int64, error) {
	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source_file, created_at, success, error) VALUES (?, ?, ?, ?)`,
		result.SourceFile, time.Now().UTC(), result.Success, result.Error)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for _, t := range result.Tables {
		box, err := json.Marshal(t.Metadata.Box)
		if err != nil {
			return 0, fmt.Errorf("failed to encode table box: %w", err)
		}
		data, err := json.Marshal(t.Data)
		if err != nil {
			return 0, fmt.Errorf("failed to encode table data: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO tables (run_id, page_number, detection_score, n_rows, n_cols, box, data)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, t.Metadata.PageNumber, t.Metadata.DetectionScore,
			t.Metadata.NRows, t.Metadata.NCols, string(box), string(data))
		if err != nil {
			return 0, fmt.Errorf("failed to insert table: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return runID, nil
}

// ListRuns returns recorded runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.QueryContext(ctx,
		`SELECT r.id, r.source_file, r.created_at, r.success, r.error,
		        (SELECT COUNT(*) FROM tables t WHERE t.run_id = r.id)
		 FROM runs r ORDER BY r.created_at DESC, r.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var errText sql.NullString
		if err := rows.Scan(&r.ID, &r.SourceFile, &r.CreatedAt, &r.Success, &errText, &r.NumTables); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Error = errText.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunTables returns the tables saved for one run, in insertion order.
func (s *Store) RunTables(ctx context.Context, runID int64) ([]engine.TableResult, error) {
	rows, err := s.QueryContext(ctx,
		`SELECT t.page_number, t.detection_score, t.n_rows, t.n_cols, t.box, t.data, r.source_file
		 FROM tables t JOIN runs r ON r.id = t.run_id
		 WHERE t.run_id = ? ORDER BY t.id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []engine.TableResult
	for rows.Next() {
		var t engine.TableResult
		var boxText, dataText string
		if err := rows.Scan(&t.Metadata.PageNumber, &t.Metadata.DetectionScore,
			&t.Metadata.NRows, &t.Metadata.NCols, &boxText, &dataText, &t.Metadata.SourceFile); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		if err := json.Unmarshal([]byte(boxText), &t.Metadata.Box); err != nil {
			return nil, fmt.Errorf("failed to decode table box: %w", err)
		}
		if err := json.Unmarshal([]byte(dataText), &t.Data); err != nil {
			return nil, fmt.Errorf("failed to decode table data: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}
