package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/echolon-ai/echolon/pkg/models/store"
)

// Store persists analysis snapshots and session notes so previous
// dashboards can be replayed. The engine never writes here; the web
// host does, after each analysis.
type Store interface {
	AddSnapshot(ctx context.Context, snapshot store.AnalysisSnapshot) error
	ListSnapshots(ctx context.Context, limit int) ([]store.AnalysisSnapshot, error)
	GetSnapshot(ctx context.Context, id string) (*store.AnalysisSnapshot, error)
	AddNote(ctx context.Context, note store.Note) error
	ListNotes(ctx context.Context) ([]store.Note, error)
}

type historyStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &historyStore{db: db}, nil
}

func (s *historyStore) AddSnapshot(ctx context.Context, snapshot store.AnalysisSnapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_snapshots (id, industry, generated_at, report)
		VALUES (?, ?, ?, ?)`,
		snapshot.ID, snapshot.Industry, snapshot.GeneratedAt, snapshot.Report,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot %s: %w", snapshot.ID, err)
	}
	return nil
}

func (s *historyStore) ListSnapshots(ctx context.Context, limit int) ([]store.AnalysisSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, industry, generated_at, report
		FROM analysis_snapshots
		ORDER BY generated_at DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []store.AnalysisSnapshot
	for rows.Next() {
		var snap store.AnalysisSnapshot
		if err := rows.Scan(&snap.ID, &snap.Industry, &snap.GeneratedAt, &snap.Report); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

func (s *historyStore) GetSnapshot(ctx context.Context, id string) (*store.AnalysisSnapshot, error) {
	var snap store.AnalysisSnapshot
	err := s.db.QueryRowContext(ctx, `
		SELECT id, industry, generated_at, report
		FROM analysis_snapshots
		WHERE id = ?`, id,
	).Scan(&snap.ID, &snap.Industry, &snap.GeneratedAt, &snap.Report)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", id, err)
	}
	return &snap, nil
}

func (s *historyStore) AddNote(ctx context.Context, note store.Note) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_notes (id, note, created_at)
		VALUES (?, ?, ?)`,
		note.ID, note.Text, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (s *historyStore) ListNotes(ctx context.Context) ([]store.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, note, created_at
		FROM session_notes
		ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []store.Note
	for rows.Next() {
		var note store.Note
		if err := rows.Scan(&note.ID, &note.Text, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}
