package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
)

// sequenceCounter numbers events across all event tables, so a session's
// start, its answers, its explanation requests and its end sort into one
// timeline.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates the counter row on first use. A fresh counter
// starts after the highest sequence already stored, so a database whose
// counter table was dropped keeps its ordering.
func newSequenceCounter(ctx context.Context, db *sql.DB) (*sequenceCounter, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS event_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	start, err := maxStoredSequence(ctx, db)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO event_sequence (id, next_val) VALUES (1, ?)`, start+1,
	); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// maxStoredSequence returns the largest sequence in any event table, or 0.
func maxStoredSequence(ctx context.Context, db *sql.DB) (int64, error) {
	parts := make([]string, 0, len(Tables))
	for _, t := range Tables {
		parts = append(parts, fmt.Sprintf("SELECT MAX(sequence) AS s FROM %s", t.Name))
	}
	query := "SELECT COALESCE(MAX(s), 0) FROM (" + strings.Join(parts, " UNION ALL ") + ")"

	var seq int64
	if err := db.QueryRowContext(ctx, query).Scan(&seq); err != nil {
		return 0, fmt.Errorf("scan stored sequences: %w", err)
	}
	return seq, nil
}

// Next returns the next sequence number. The UPDATE ... RETURNING makes the
// increment atomic in the database; the mutex keeps callers in this process
// from interleaving.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE event_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
