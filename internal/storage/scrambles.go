package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/twisty"
)

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Scramble is a recorded scramble sequence.
type Scramble struct {
	ScrambleID string
	CreatedAt  time.Time
	Sequence   string
	Length     int
	Completed  bool
}

// Moves parses the recorded sequence.
func (s Scramble) Moves() []twisty.Notation {
	return twisty.ParseNotations(s.Sequence)
}

// ScrambleRepository records scramble sequences.
type ScrambleRepository struct {
	db *DB
}

// NewScrambleRepository creates a new scramble repository.
func NewScrambleRepository(db *DB) *ScrambleRepository {
	return &ScrambleRepository{db: db}
}

// Create records a scramble and returns its ID. Completed is false for
// scrambles cancelled part way.
func (r *ScrambleRepository) Create(moves []twisty.Notation, completed bool) (string, error) {
	id := uuid.New().String()
	createdAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO scrambles (scramble_id, created_at, sequence, length, completed)
		VALUES (?, ?, ?, ?, ?)
	`, id, createdAt.Format(timeLayout), twisty.FormatNotations(moves), len(moves), completed)

	if err != nil {
		return "", fmt.Errorf("failed to create scramble: %w", err)
	}

	return id, nil
}

// Get retrieves a scramble by ID. It returns nil if there is none.
func (r *ScrambleRepository) Get(scrambleID string) (*Scramble, error) {
	row := r.db.QueryRow(`
		SELECT scramble_id, created_at, sequence, length, completed
		FROM scrambles
		WHERE scramble_id = ?
	`, scrambleID)

	s, err := scanScramble(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scramble: %w", err)
	}
	return s, nil
}

// List retrieves the most recent scrambles first.
func (r *ScrambleRepository) List(limit int) ([]Scramble, error) {
	rows, err := r.db.Query(`
		SELECT scramble_id, created_at, sequence, length, completed
		FROM scrambles
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to list scrambles: %w", err)
	}
	defer rows.Close()

	var scrambles []Scramble
	for rows.Next() {
		s, err := scanScramble(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scramble: %w", err)
		}
		scrambles = append(scrambles, *s)
	}

	return scrambles, rows.Err()
}

// Count returns the number of recorded scrambles.
func (r *ScrambleRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM scrambles").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count scrambles: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScramble(row scanner) (*Scramble, error) {
	var s Scramble
	var createdAtStr string
	if err := row.Scan(&s.ScrambleID, &createdAtStr, &s.Sequence, &s.Length, &s.Completed); err != nil {
		return nil, err
	}
	s.CreatedAt, _ = time.Parse(timeLayout, createdAtStr)
	return &s, nil
}
