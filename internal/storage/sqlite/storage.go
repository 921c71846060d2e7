package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/storage"
)

//go:embed schema.sql
var schema string

// Config holds SQLite settings
type Config struct {
	// Path is the database file, or ":memory:" for a private in-memory database
	Path string
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path: "octiline.db",
	}
}

// Storage is a SQLite-backed implementation of the storage interface.
// Games are stored as JSON documents; summaries are plain rows.
type Storage struct {
	db *sql.DB
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// New opens the database and applies the schema
func New(ctx context.Context, cfg Config) (*Storage, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to ":memory:" is a separate database, and sqlite allows one writer anyway
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	game, err := json.Marshal(session.Game)
	if err != nil {
		return err
	}

	q := `
	INSERT INTO sessions (id, game, created_at, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET game = excluded.game, updated_at = excluded.updated_at;
	`
	if _, err := s.db.ExecContext(ctx, q, string(session.ID), string(game), session.CreatedAt, session.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	q := `SELECT game, created_at, updated_at FROM sessions WHERE id = ?;`

	var data string
	session := &model.Session{ID: id}
	err := s.db.QueryRowContext(ctx, q, string(id)).Scan(&data, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	var game model.Game
	if err := json.Unmarshal([]byte(data), &game); err != nil {
		return nil, fmt.Errorf("failed to decode game: %w", err)
	}
	session.Game = &game
	return session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?;`, string(id)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Summary operations

func (s *Storage) SaveSummary(ctx context.Context, summary *model.GameSummary) error {
	q := `
	INSERT INTO game_summaries (session_id, grid_size, winner, turns, path_length, completed_at)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	_, err := s.db.ExecContext(ctx, q,
		string(summary.SessionID), summary.GridSize, summary.Winner,
		summary.Turns, summary.PathLength, summary.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to insert summary: %w", err)
	}
	return nil
}

func (s *Storage) ListSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error) {
	q := `
	SELECT session_id, grid_size, winner, turns, path_length, completed_at
	FROM game_summaries
	ORDER BY completed_at DESC, id DESC
	LIMIT ?;
	`
	// SQLite treats a negative limit as no limit
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]*model.GameSummary, 0)
	for rows.Next() {
		var summary model.GameSummary
		var sessionID string
		err := rows.Scan(&sessionID, &summary.GridSize, &summary.Winner,
			&summary.Turns, &summary.PathLength, &summary.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summary.SessionID = model.SessionID(sessionID)
		summaries = append(summaries, &summary)
	}
	return summaries, rows.Err()
}
