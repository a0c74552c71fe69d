package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"powderteam/oaiprofile/internal/database"
	"powderteam/oaiprofile/internal/retry"
)

// Repository defines the persistence interface for render history.
type Repository interface {
	Save(entry *Entry) error
	List(limit int) ([]Entry, error)
	ListByBench(bench string, limit int) ([]Entry, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by the local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the history at the default database path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens the history in the database at path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS render_history (
            id           INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp    TEXT    NOT NULL,
            bench        TEXT    NOT NULL DEFAULT '',
            sdr_nodetype TEXT    NOT NULL DEFAULT '',
            cn_nodetype  TEXT    NOT NULL DEFAULT '',
            ran_hash     TEXT    NOT NULL DEFAULT '',
            cn_hash      TEXT    NOT NULL DEFAULT '',
            format       TEXT    NOT NULL DEFAULT '',
            output       TEXT    NOT NULL DEFAULT '',
            digest       TEXT    NOT NULL DEFAULT '',
            outcome      TEXT    NOT NULL DEFAULT '',
            detail       TEXT    NOT NULL DEFAULT '',
            duration_ms  INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_render_history_timestamp ON render_history(timestamp);
        CREATE INDEX IF NOT EXISTS idx_render_history_bench ON render_history(bench);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("history: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new entry, assigning its ID and, when unset, its timestamp.
func (r *SQLiteRepository) Save(entry *Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	var result sql.Result
	err := retry.Do(context.Background(), retry.DefaultConfig(), isBusy, func() error {
		var execErr error
		result, execErr = r.db.Exec(`
        INSERT INTO render_history (timestamp, bench, sdr_nodetype, cn_nodetype, ran_hash, cn_hash,
                                    format, output, digest, outcome, detail, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.Timestamp.Format(time.RFC3339Nano), entry.Bench, entry.SDRNodeType, entry.CNNodeType,
			entry.RANHash, entry.CNHash, entry.Format, entry.Output, entry.Digest,
			entry.Outcome, entry.Detail, entry.DurationMs,
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("history: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("history: failed to get last insert ID: %w", err)
	}
	entry.ID = id
	return nil
}

// isBusy reports whether err is SQLite lock contention from another
// process writing the same database.
func isBusy(err error) bool {
	var sqlErr *sqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	switch sqlErr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

const selectColumns = `
        SELECT id, timestamp, bench, sdr_nodetype, cn_nodetype, ran_hash, cn_hash,
               format, output, digest, outcome, detail, duration_ms
        FROM render_history`

// List returns the most recent n entries.
func (r *SQLiteRepository) List(limit int) ([]Entry, error) {
	rows, err := r.db.Query(selectColumns+` ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByBench returns the most recent n entries for a workbench.
func (r *SQLiteRepository) ListByBench(bench string, limit int) ([]Entry, error) {
	rows, err := r.db.Query(selectColumns+` WHERE bench = ? ORDER BY timestamp DESC LIMIT ?`, bench, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes entries older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	result, err := r.db.Exec(`DELETE FROM render_history WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("history: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var timestamp string
		err := rows.Scan(
			&entry.ID, &timestamp, &entry.Bench, &entry.SDRNodeType, &entry.CNNodeType,
			&entry.RANHash, &entry.CNHash, &entry.Format, &entry.Output, &entry.Digest,
			&entry.Outcome, &entry.Detail, &entry.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("history: scan failed: %w", err)
		}
		entry.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
