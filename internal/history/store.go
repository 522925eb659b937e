// internal/history/store.go
//
// Finished-game records.
// A row is written when a session starts and closed when it is won or
// abandoned. Rows are a history log only; live games are never rebuilt from them.

package history

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Status values stored in games.status.
const (
	StatusPlaying   = "playing"
	StatusWon       = "won"
	StatusAbandoned = "abandoned"
)

// Record is one row of the games table.
type Record struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	AnonID     string    `json:"-"`
	Daily      string    `json:"daily,omitempty"`
	Rows       int       `json:"rows"`
	Columns    int       `json:"columns"`
	Seed       int64     `json:"-"`
	Status     string    `json:"status"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt,omitempty"`
}

// Store reads and writes game records.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Start inserts a playing row for a new session.
func (s *Store) Start(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO games (id, user_id, anonymous_id, daily_date, rows_count, cols_count, seed, status, started_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, nullable(r.UserID), nullable(r.AnonID), nullable(r.Daily),
		r.Rows, r.Columns, r.Seed, StatusPlaying, r.StartedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Finish closes a playing row with status and, for signed-in owners, bumps
// the user's games played and wins within the same transaction.
func (s *Store) Finish(ctx context.Context, id, status string, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var userID sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT user_id FROM games WHERE id=? AND status=?`, id, StatusPlaying).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE games SET status=?, finished_at=? WHERE id=?`,
		status, at.UTC().Format(time.RFC3339), id); err != nil {
		return err
	}
	if userID.Valid {
		won := 0
		if status == StatusWon {
			won = 1
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET games_played = games_played + 1, wins = wins + ? WHERE id=?`,
			won, userID.String); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Recent lists a user's games, newest first. Default limit is 50.
func (s *Store) Recent(ctx context.Context, userID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, COALESCE(daily_date,''), rows_count, cols_count, seed, status, started_at, COALESCE(finished_at,'')
        FROM games WHERE user_id=? ORDER BY started_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var r Record
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Daily, &r.Rows, &r.Columns, &r.Seed, &r.Status, &started, &finished); err != nil {
			return nil, err
		}
		r.UserID = userID
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// DailyWon reports whether the owner (user or anonymous id) already won the board of date.
func (s *Store) DailyWon(ctx context.Context, ownerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1) FROM games
        WHERE daily_date=? AND status=? AND (user_id=? OR anonymous_id=?)`,
		date, StatusWon, ownerID, ownerID,
	).Scan(&cnt)
	return cnt > 0, err
}

// ClaimAnon transfers anonymous games to a user account after sign-in.
func (s *Store) ClaimAnon(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// parseTime parses RFC3339 timestamps; on error returns zero time.
func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
