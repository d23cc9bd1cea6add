package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Outcome names stored in the sessions table.
const (
	OutcomeWon        = "won"
	OutcomeTimedOut   = "timed_out"
	OutcomeDeadlocked = "deadlocked"
	OutcomeAbandoned  = "abandoned"
)

// SessionRecord is one finished mahjong session.
type SessionRecord struct {
	ID        int64
	SessionID string
	GameID    string
	Width     int
	Height    int
	Tiles     int
	Score     int
	Outcome   string
	Matches   int
	BestCombo int
	Elapsed   float64 // seconds of active play
	CreatedAt time.Time
}

const sessionColumns = `id, session_id, game_id, width, height, tiles, score, outcome,
		        matches, best_combo, elapsed_secs, created_at`

// SaveSession records a finished session. A session id can only be saved
// once. Returns the ID of the inserted record.
func (s *Store) SaveSession(r SessionRecord) (int64, error) {
	if r.SessionID == "" {
		return 0, errors.New("storage: cannot save session: empty session id")
	}
	res, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, game_id, width, height, tiles, score, outcome, matches, best_combo, elapsed_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.GameID, r.Width, r.Height, r.Tiles, r.Score,
		r.Outcome, r.Matches, r.BestCombo, r.Elapsed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SessionByID retrieves a session by its session id.
// Returns nil without error when no such session exists.
func (s *Store) SessionByID(sessionID string) (*SessionRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE session_id = ?`,
		sessionID,
	)
	r, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &r, nil
}

// RecentSessions retrieves the most recent sessions of a game, newest
// first. An empty gameID lists every game.
func (s *Store) RecentSessions(gameID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + sessionColumns + ` FROM sessions`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		r, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// OutcomeCounts returns how many sessions of a game ended each way.
func (s *Store) OutcomeCounts(gameID string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT outcome, COUNT(*) FROM sessions WHERE game_id = ? GROUP BY outcome`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count outcomes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts[outcome] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (SessionRecord, error) {
	var r SessionRecord
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.SessionID,
		&r.GameID,
		&r.Width,
		&r.Height,
		&r.Tiles,
		&r.Score,
		&r.Outcome,
		&r.Matches,
		&r.BestCombo,
		&r.Elapsed,
		&createdAt,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTimestamp(createdAt)
	return r, nil
}
