package twisty

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/twisty/pkg/sched"
)

// Status is the phase of the puzzle state machine.
type Status uint8

const (
	// StatusIdle accepts moves.
	StatusIdle Status = iota
	// StatusRotating lasts one transition after a move.
	StatusRotating
	// StatusScrambling lasts for a whole scramble sequence.
	StatusScrambling
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRotating:
		return "rotating"
	case StatusScrambling:
		return "scrambling"
	default:
		return "unknown"
	}
}

// Turn describes one applied move to the rendering side.
type Turn struct {
	// Requested is the notation as issued, before viewpoint remapping.
	Requested Notation
	// Move is the absolute move that was applied.
	Move Move
	// Before holds the layer's stickers prior to the turn, in Move.Pieces
	// order, for animating the layer while the pieces already show the
	// new colors.
	Before [LayerSize]Stickers
	// Scramble is set for moves generated by Scramble.
	Scramble bool
}

// Puzzle is the puzzle state machine. It is not safe for concurrent use:
// calls and scheduled callbacks must share one goroutine.
type Puzzle struct {
	log   *zap.Logger
	sched sched.Scheduler
	clock *sched.Clock // set when the puzzle owns its scheduler
	rand  *rand.Rand

	state     State
	moveCount int
	status    Status

	// Presentation
	view    Angle
	flipped bool
	skin    Skin
	base    RGBA
	speed   Speed
	easing  Easing
	size    Size

	// In-flight work
	settleTask sched.Task
	settling   Turn
	stepTask   sched.Task
	scramble   []Notation
	applied    int
	scrambleN  int

	// Callbacks
	onTurn      func(Turn)
	onSettle    func(Turn)
	onScrambled func([]Notation)
}

// New creates a solved puzzle.
func New(opts ...Option) *Puzzle {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	p := &Puzzle{
		log:       cfg.logger,
		sched:     cfg.scheduler,
		rand:      cfg.rand,
		state:     SolvedState(),
		status:    StatusIdle,
		view:      DefaultAngle,
		skin:      cfg.skin,
		base:      Black,
		speed:     cfg.speed,
		easing:    cfg.easing,
		size:      SizeNormal,
		scrambleN: cfg.scrambleLength,
	}
	if p.sched == nil {
		p.clock = sched.NewClock()
		p.sched = p.clock
	}
	if p.rand == nil {
		p.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if p.skin.Special() {
		p.base = Transparent
	}
	return p
}

// OnTurn sets a callback fired right after a move changes the state.
func (p *Puzzle) OnTurn(cb func(Turn)) {
	p.onTurn = cb
}

// OnSettle sets a callback fired when a move's transition ends.
func (p *Puzzle) OnSettle(cb func(Turn)) {
	p.onSettle = cb
}

// OnScrambled sets a callback fired when a scramble sequence completes.
func (p *Puzzle) OnScrambled(cb func([]Notation)) {
	p.onScrambled = cb
}

// PerformMove turns the layer the caller sees as n from a camera at the
// given heading. It returns false without touching the state when n is
// unknown or the puzzle is not idle.
func (p *Puzzle) PerformMove(heading float64, n Notation) bool {
	if !n.Valid() {
		p.log.Debug("unknown notation ignored", zap.Uint8("notation", uint8(n)))
		return false
	}
	if p.status != StatusIdle {
		p.log.Debug("move rejected",
			zap.Stringer("notation", n),
			zap.Stringer("status", p.status))
		return false
	}

	abs := Remap(heading, p.flipped, n)
	p.status = StatusRotating
	p.turn(n, standardMoves[abs], false)
	p.moveCount++

	p.log.Debug("move performed",
		zap.Stringer("requested", n),
		zap.Stringer("absolute", abs),
		zap.Float64("heading", heading),
		zap.Bool("flipped", p.flipped),
		zap.Int("moves", p.moveCount))
	return true
}

// turn applies m to the whole layer at once and schedules the end of
// its transition.
func (p *Puzzle) turn(requested Notation, m Move, scramble bool) {
	t := Turn{Requested: requested, Move: m, Scramble: scramble}
	for i, id := range m.Pieces {
		t.Before[i] = p.state[id]
	}

	p.state = m.Apply(p.state)
	p.settling = t
	p.settleTask = p.sched.After(p.speed.Duration(), func() {
		p.settleTask = nil
		p.settle(t)
	})

	if p.onTurn != nil {
		p.onTurn(t)
	}
}

func (p *Puzzle) settle(t Turn) {
	if p.status == StatusRotating {
		p.status = StatusIdle
	}
	if p.onSettle != nil {
		p.onSettle(t)
	}
}

// forceSettle ends an in-flight transition immediately.
func (p *Puzzle) forceSettle() {
	if p.settleTask != nil && p.settleTask.Cancel() {
		p.settleTask = nil
		p.settle(p.settling)
	}
}

// Scramble starts a sequence of random absolute moves, one every
// transition plus ScrambleBuffer. Moves are rejected until it completes.
// It returns false if the puzzle is not idle.
func (p *Puzzle) Scramble() bool {
	if p.status != StatusIdle {
		p.log.Debug("scramble rejected", zap.Stringer("status", p.status))
		return false
	}

	seq := make([]Notation, p.scrambleN)
	for i := range seq {
		seq[i] = Notation(p.rand.IntN(NotationCount))
	}

	p.status = StatusScrambling
	p.scramble = seq
	p.applied = 0
	p.log.Debug("scramble started", zap.String("sequence", FormatNotations(seq)))

	p.scrambleStep()
	return true
}

func (p *Puzzle) scrambleStep() {
	n := p.scramble[p.applied]
	p.turn(n, standardMoves[n], true)
	p.applied++

	p.stepTask = p.sched.After(p.speed.Duration()+ScrambleBuffer, func() {
		p.stepTask = nil
		if p.applied < len(p.scramble) {
			p.scrambleStep()
			return
		}
		p.finishScramble()
	})
}

func (p *Puzzle) finishScramble() {
	p.status = StatusIdle
	p.log.Debug("scramble finished", zap.Int("moves", len(p.scramble)))
	if p.onScrambled != nil {
		p.onScrambled(p.LastScramble())
	}
}

// CancelScramble stops a running scramble after the move in flight.
// Moves already applied stay applied. It returns false if no scramble
// is running.
func (p *Puzzle) CancelScramble() bool {
	if p.status != StatusScrambling {
		return false
	}
	if p.stepTask != nil {
		p.stepTask.Cancel()
		p.stepTask = nil
	}
	p.forceSettle()
	p.scramble = p.scramble[:p.applied]
	p.status = StatusIdle
	p.log.Debug("scramble cancelled", zap.Int("applied", p.applied))
	return true
}

// LastScramble returns the moves of the most recent scramble.
func (p *Puzzle) LastScramble() []Notation {
	return append([]Notation(nil), p.scramble...)
}

// Reset restores every piece to solved and clears the move count. The
// camera and skin are left alone. A transition in flight is completed
// first; a running scramble makes Reset fail with ErrBusy.
func (p *Puzzle) Reset(solved State) error {
	if p.status == StatusScrambling {
		return ErrBusy
	}
	if err := checkLayout(solved); err != nil {
		return err
	}

	p.forceSettle()
	p.state = solved
	p.moveCount = 0
	p.log.Debug("puzzle reset")
	return nil
}

// checkLayout verifies that every piece shows stickers exactly on its
// outward faces and that each color covers one side's worth of stickers.
func checkLayout(st State) error {
	solved := SolvedState()
	var counts [FaceCount]int
	for id := range st {
		for f := Face(0); f < FaceCount; f++ {
			if st[id].Visible(f) != solved[id].Visible(f) {
				return fmt.Errorf("%w: piece %d face %v", ErrInvalidState, id, f)
			}
			if !st[id].Visible(f) {
				continue
			}
			if st[id][f] >= FaceCount {
				return fmt.Errorf("%w: piece %d color %d", ErrInvalidState, id, st[id][f])
			}
			counts[st[id][f]]++
		}
	}
	for c, n := range counts {
		if n != LayerSize {
			return fmt.Errorf("%w: color %d on %d stickers", ErrInvalidState, c, n)
		}
	}
	return nil
}

// State returns a copy of the current stickers of every piece.
func (p *Puzzle) State() State {
	return p.state
}

// MoveCount returns the number of moves performed since the last reset.
func (p *Puzzle) MoveCount() int {
	return p.moveCount
}

// Status returns the current state machine phase.
func (p *Puzzle) Status() Status {
	return p.status
}

// IsRotating reports whether a move transition is running.
func (p *Puzzle) IsRotating() bool {
	return p.status == StatusRotating
}

// IsScrambling reports whether a scramble is running.
func (p *Puzzle) IsScrambling() bool {
	return p.status == StatusScrambling
}

// IsSolved reports whether every side shows a single color.
func (p *Puzzle) IsSolved() bool {
	return p.state.IsSolved()
}

// IsSolved reports whether every side shows a single color.
func (st State) IsSolved() bool {
	for f := Face(0); f < FaceCount; f++ {
		side := NoColor
		for _, s := range st {
			if !s.Visible(f) {
				continue
			}
			if side == NoColor {
				side = s[f]
			} else if s[f] != side {
				return false
			}
		}
	}
	return true
}

// Scheduler returns the scheduler driving transitions. When none was
// supplied it is a *sched.Clock the caller must advance.
func (p *Puzzle) Scheduler() sched.Scheduler {
	return p.sched
}

// Flipped reports whether the camera looks at the puzzle upside down.
func (p *Puzzle) Flipped() bool {
	return p.flipped
}

// ToggleFlipped turns the camera upside down or back.
func (p *Puzzle) ToggleFlipped() {
	p.SetFlipped(!p.flipped)
}

// SetFlipped sets whether the camera looks at the puzzle upside down.
func (p *Puzzle) SetFlipped(flipped bool) {
	p.flipped = flipped
	p.view.Z = 0
	if flipped {
		p.view.Z = 180
	}
}

// View returns the camera orientation.
func (p *Puzzle) View() Angle {
	return p.view
}

// SetView stores the camera orientation. A non-zero Z angle means the
// camera is flipped.
func (p *Puzzle) SetView(a Angle) {
	p.view = a
	p.flipped = a.Flipped()
}

// Heading returns the camera heading around the vertical axis, in [0, 360).
func (p *Puzzle) Heading() float64 {
	return NormalizeHeading(p.view.Y)
}

// Skin returns the active skin.
func (p *Puzzle) Skin() Skin {
	return p.skin
}

// BaseColor returns the color of the piece bodies.
func (p *Puzzle) BaseColor() RGBA {
	return p.base
}

// ApplySkin switches the palette used to display color ids. Special skins
// force a transparent base; the logical state never changes.
func (p *Puzzle) ApplySkin(skin Skin) error {
	skin, err := ParseSkin(string(skin))
	if err != nil {
		return err
	}
	p.skin = skin
	switch {
	case skin.Special():
		p.base = Transparent
	case !skin.BaseColorEnabled() || p.base == Transparent:
		p.base = Black
	}
	return nil
}

// ApplyBaseColor changes the body color, keeping the current opacity.
// It returns false when the active skin does not allow a base color.
func (p *Puzzle) ApplyBaseColor(c RGBA) bool {
	if !p.skin.BaseColorEnabled() {
		return false
	}
	p.base = c.WithAlpha(p.base.A)
	return true
}

// SetBaseAlpha changes the opacity of the body color.
// It returns false when the active skin does not allow a base color.
func (p *Puzzle) SetBaseAlpha(a float64) bool {
	if !p.skin.BaseColorEnabled() {
		return false
	}
	p.base = p.base.WithAlpha(a)
	return true
}

// Speed returns the transition speed.
func (p *Puzzle) Speed() Speed {
	return p.speed
}

// SetTransition changes the duration of later transitions.
func (p *Puzzle) SetTransition(s Speed) error {
	if _, ok := speedDurations[s]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSpeed, s)
	}
	p.speed = s
	return nil
}

// Easing returns the transition timing function name.
func (p *Puzzle) Easing() Easing {
	return p.easing
}

// SetEasing changes the transition timing function.
func (p *Puzzle) SetEasing(e Easing) error {
	if _, ok := easingFunctions[e]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidEasing, e)
	}
	p.easing = e
	return nil
}

// Size returns the display size.
func (p *Puzzle) Size() Size {
	return p.size
}

// SetSize changes the display size.
func (p *Puzzle) SetSize(s Size) error {
	if _, ok := sizeScales[s]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	p.size = s
	return nil
}

// Appearance resolves the visible faces of piece id through the active
// skin. The core piece has no appearance.
func (p *Puzzle) Appearance(id int) map[Face]string {
	if id < 0 || id >= PieceCount {
		return nil
	}
	out := make(map[Face]string, FaceCount)
	for _, f := range p.state[id].Faces() {
		out[f] = p.skin.Appearance(p.state[id][f])
	}
	return out
}
