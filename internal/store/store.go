// Package store handles SQLite persistence of the typing log.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sin1227488801/rct/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for typing log entries.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS typing_log (
			id INTEGER PRIMARY KEY,
			attempt_id TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			lang TEXT NOT NULL,
			study_item_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			total INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_typing_log_user_started ON typing_log(user_id, started_at);`,
		`CREATE INDEX IF NOT EXISTS idx_typing_log_item ON typing_log(study_item_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertEntry stores one completed attempt.
func (s *Store) InsertEntry(ctx context.Context, entry model.LogEntry) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO typing_log (attempt_id, user_id, lang, study_item_id, started_at, ended_at, total, correct, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.AttemptID,
		entry.UserID,
		entry.Lang,
		entry.StudyItemID,
		entry.StartedAt.Format(time.RFC3339Nano),
		entry.EndedAt.Format(time.RFC3339Nano),
		entry.Total,
		entry.Correct,
		entry.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListEntries returns log entries in chronological order, filtered by user,
// language, and start date.
func (s *Store) ListEntries(ctx context.Context, filter model.StatsFilter) ([]model.LogEntry, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.UserID != "" {
		clauses = append(clauses, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Lang != "" {
		clauses = append(clauses, "lang = ?")
		args = append(args, filter.Lang)
	}
	if filter.Since != nil {
		clauses = append(clauses, "started_at >= ?")
		args = append(args, filter.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, attempt_id, user_id, lang, study_item_id, started_at, ended_at, total, correct, duration_ms
		FROM typing_log
		WHERE %s
		ORDER BY started_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []model.LogEntry
	for rows.Next() {
		var entry model.LogEntry
		var startedAt, endedAt string
		if err := rows.Scan(&entry.ID, &entry.AttemptID, &entry.UserID, &entry.Lang, &entry.StudyItemID,
			&startedAt, &endedAt, &entry.Total, &entry.Correct, &entry.DurationMs); err != nil {
			return nil, err
		}
		if entry.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if entry.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListSnippetAggregates sums attempt outcomes per study item over the most
// recent attempts of one user, optionally filtered by language.
func (s *Store) ListSnippetAggregates(ctx context.Context, window int, userID, lang string) ([]model.SnippetAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_attempts AS (
		SELECT id FROM typing_log
		WHERE user_id = ? AND (? = '' OR lang = ?)
		ORDER BY started_at DESC
		LIMIT ?
	)
	SELECT t.study_item_id, COUNT(*) AS attempts, SUM(t.total) AS total, SUM(t.correct) AS correct
	FROM typing_log t
	JOIN recent_attempts r ON r.id = t.id
	GROUP BY t.study_item_id`

	rows, err := s.db.QueryContext(ctx, query, userID, lang, lang, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SnippetAggregate
	for rows.Next() {
		var agg model.SnippetAggregate
		if err := rows.Scan(&agg.StudyItemID, &agg.Attempts, &agg.Total, &agg.Correct); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
