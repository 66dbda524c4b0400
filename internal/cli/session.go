package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
	"github.com/SeamusWaldron/twisty/pkg/sched"
)

// session is one command's view of the persisted puzzle: it restores the
// puzzle from the store, records history and saves on close.
type session struct {
	store  twisty.SlotStore
	clock  *sched.Clock
	puzzle *twisty.Puzzle

	// History, nil unless the sqlite backend keeps it
	scrambles *storage.ScrambleRepository
	moves     *storage.MoveRepository
	sessionID string

	heading float64
	pending []storage.MoveRecord

	// afterSettle, if set, runs after each settled turn is recorded.
	afterSettle func(twisty.Turn)
}

// openSession opens the configured store and restores the puzzle.
func openSession(ctx context.Context) (*session, error) {
	dir, err := appConfig.DataDir()
	if err != nil {
		return nil, err
	}

	store, err := storage.OpenStore(appConfig.Store.Backend, dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", appConfig.Store.Backend, err)
	}

	clock := sched.NewClock()
	p := twisty.New(
		twisty.WithLogger(logger),
		twisty.WithScheduler(clock),
		twisty.WithScrambleLength(appConfig.Puzzle.ScrambleLength),
	)
	if err := p.Load(ctx, store); err != nil {
		store.Close()
		return nil, err
	}

	s := &session{
		store:     store,
		clock:     clock,
		puzzle:    p,
		sessionID: storage.NewSessionID(),
	}

	if sq, ok := store.(*storage.SQLiteStore); ok && appConfig.HistoryEnabled() {
		s.scrambles = storage.NewScrambleRepository(sq.DB())
		s.moves = storage.NewMoveRepository(sq.DB())
	}

	p.OnSettle(func(tr twisty.Turn) {
		if !tr.Scramble {
			s.pending = append(s.pending, storage.NewMoveRecord(tr, s.heading, p.Flipped(), time.Now()))
		}
		if s.afterSettle != nil {
			s.afterSettle(tr)
		}
	})

	logger.Debug("session opened",
		zap.String("store", string(appConfig.Store.Backend)),
		zap.String("dir", dir),
		zap.Int("moves", p.MoveCount()))
	return s, nil
}

// move performs n as seen from heading and waits out the transition.
func (s *session) move(heading float64, n twisty.Notation) bool {
	s.heading = heading
	if !s.puzzle.PerformMove(heading, n) {
		return false
	}
	s.clock.RunUntilIdle()
	return true
}

// scramble runs a whole scramble and records it.
func (s *session) scramble() ([]twisty.Notation, error) {
	if !s.puzzle.Scramble() {
		return nil, twisty.ErrBusy
	}
	s.clock.RunUntilIdle()
	seq := s.puzzle.LastScramble()
	return seq, s.recordScramble(seq, true)
}

func (s *session) recordScramble(seq []twisty.Notation, completed bool) error {
	if s.scrambles == nil || len(seq) == 0 {
		return nil
	}
	id, err := s.scrambles.Create(seq, completed)
	if err != nil {
		return err
	}
	logger.Debug("scramble recorded", zap.String("id", id), zap.Int("moves", len(seq)))
	return nil
}

// save writes the puzzle and the pending move history.
func (s *session) save(ctx context.Context) error {
	if err := s.puzzle.Save(ctx, s.store); err != nil {
		return err
	}
	if s.moves == nil || len(s.pending) == 0 {
		s.pending = nil
		return nil
	}
	if err := s.moves.CreateBatch(s.sessionID, s.pending); err != nil {
		return err
	}
	s.pending = nil
	return nil
}

// close saves and releases the store.
func (s *session) close(ctx context.Context) error {
	err := s.save(ctx)
	return errors.Join(err, s.store.Close())
}
