// Package storage persists completed meal analyses to SQLite.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eatwise/backend/internal/domain"
)

// SQLiteStore is a domain.AnalysisRepository backed by a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		source TEXT NOT NULL,
		narrative TEXT,
		total_json TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save stores one completed analysis. The meal total, including per
// ingredient provenance, is stored as a JSON document.
func (s *SQLiteStore) Save(ctx context.Context, analysis *domain.MealAnalysis) error {
	totalJSON, err := json.Marshal(analysis.Total)
	if err != nil {
		return fmt.Errorf("failed to marshal total: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, description, source, narrative, total_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		analysis.ID,
		analysis.Description,
		analysis.Source,
		analysis.Narrative,
		string(totalJSON),
		analysis.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// GetByID returns one stored analysis.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*domain.MealAnalysis, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, description, source, narrative, total_json, created_at
		FROM analyses WHERE id = ?`, id)

	analysis, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAnalysisNotFound
	}
	return analysis, err
}

// ListRecent returns up to limit analyses, newest first.
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]*domain.MealAnalysis, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, source, narrative, total_json, created_at
		FROM analyses ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*domain.MealAnalysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}
	return analyses, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(row rowScanner) (*domain.MealAnalysis, error) {
	var analysis domain.MealAnalysis
	var totalJSON, createdAt string

	if err := row.Scan(
		&analysis.ID,
		&analysis.Description,
		&analysis.Source,
		&analysis.Narrative,
		&totalJSON,
		&createdAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(totalJSON), &analysis.Total); err != nil {
		return nil, fmt.Errorf("failed to unmarshal total: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	analysis.CreatedAt = ts

	return &analysis, nil
}
