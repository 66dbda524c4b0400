package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/twisty"
)

// MoveRecord is one performed move.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	MoveIndex int
	TsMs      int64
	Requested string
	Applied   string
	Heading   float64
	Flipped   bool
}

// NewMoveRecord describes a settled turn made from the given camera.
func NewMoveRecord(tr twisty.Turn, heading float64, flipped bool, at time.Time) MoveRecord {
	return MoveRecord{
		TsMs:      at.UnixMilli(),
		Requested: tr.Requested.String(),
		Applied:   tr.Move.Notation.String(),
		Heading:   heading,
		Flipped:   flipped,
	}
}

// NewSessionID returns a fresh id grouping the moves of one play session.
func NewSessionID() string {
	return uuid.New().String()
}

// MoveRepository logs performed moves per session.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// CreateBatch appends moves to a session in a single transaction.
func (r *MoveRepository) CreateBatch(sessionID string, moves []MoveRecord) error {
	next, err := r.GetNextIndex(sessionID)
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, m := range moves {
			_, err := tx.Exec(`
				INSERT INTO moves (session_id, move_index, ts_ms, requested, applied, heading, flipped)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, sessionID, next+i, m.TsMs, m.Requested, m.Applied, m.Heading, m.Flipped)
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", next+i, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all moves of a session in order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, move_index, ts_ms, requested, applied, heading, flipped
		FROM moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.MoveIndex, &m.TsMs, &m.Requested, &m.Applied, &m.Heading, &m.Flipped)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// GetNextIndex returns the next move index for a session.
func (r *MoveRepository) GetNextIndex(sessionID string) (int, error) {
	var maxIndex int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(move_index), -1) FROM moves WHERE session_id = ?
	`, sessionID).Scan(&maxIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to get max move index: %w", err)
	}
	return maxIndex + 1, nil
}

// Count returns the number of moves in a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// SessionSummary describes the moves logged under one session.
type SessionSummary struct {
	SessionID string
	Moves     int
	FirstTsMs int64
	LastTsMs  int64
}

// Sessions lists the sessions with logged moves, most recent first.
func (r *MoveRepository) Sessions(limit int) ([]SessionSummary, error) {
	rows, err := r.db.Query(`
		SELECT session_id, COUNT(*), MIN(ts_ms), MAX(ts_ms)
		FROM moves
		GROUP BY session_id
		ORDER BY MAX(move_id) DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.SessionID, &s.Moves, &s.FirstTsMs, &s.LastTsMs); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Notations parses the applied notations of records.
func Notations(records []MoveRecord) []twisty.Notation {
	moves := make([]twisty.Notation, 0, len(records))
	for _, r := range records {
		if n, err := twisty.ParseNotation(r.Applied); err == nil {
			moves = append(moves, n)
		}
	}
	return moves
}
