package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/twisty"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive puzzle mode",
	Long: `Start an interactive TUI that turns layers as you type.

Keyboard shortcuts:
  u d l r f b m e s  - Turn a layer clockwise
  U D L R F B M E S  - Turn a layer counter-clockwise
  left/right         - Move the camera by 90 degrees
  up/down            - Flip the camera upside down
  tab                - Scramble
  x                  - Cancel a running scramble
  backspace          - Reset to solved
  q/ctrl+c           - Quit

Moves are relative to the camera: with the camera turned, F is always
the face you look at.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

// Messages
type frameMsg time.Time

type playModel struct {
	ctx     context.Context
	session *session
	frame   time.Duration
	last    time.Time

	lastTurn     string
	lastScramble []twisty.Notation
	dirty        bool
	err          error
	quitting     bool
}

func newPlayModel(ctx context.Context, s *session, frameRate int) *playModel {
	m := &playModel{
		ctx:     ctx,
		session: s,
		frame:   time.Second / time.Duration(frameRate),
	}

	p := s.puzzle
	p.OnTurn(func(tr twisty.Turn) {
		if tr.Scramble {
			return
		}
		m.lastTurn = tr.Requested.String()
		if tr.Move.Notation != tr.Requested {
			m.lastTurn += " -> " + tr.Move.Notation.String()
		}
	})
	s.afterSettle = func(tr twisty.Turn) {
		if !tr.Scramble {
			m.dirty = true
		}
	}
	p.OnScrambled(func(seq []twisty.Notation) {
		m.lastScramble = seq
		m.fail(s.recordScramble(seq, true))
		m.dirty = true
	})
	return m
}

func (m *playModel) Init() tea.Cmd {
	m.last = time.Now()
	return m.frameCmd()
}

func (m *playModel) frameCmd() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *playModel) fail(err error) {
	if err != nil {
		m.err = err
		logger.Warn("play", zap.Error(err))
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		now := time.Time(msg)
		if elapsed := now.Sub(m.last); elapsed > 0 {
			m.session.clock.Advance(elapsed)
		}
		m.last = now

		p := m.session.puzzle
		if m.dirty && p.Status() == twisty.StatusIdle {
			m.dirty = false
			m.fail(m.session.save(m.ctx))
		}
		return m, m.frameCmd()
	}

	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.session.puzzle
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "left", "right":
		view := p.View()
		if key == "left" {
			view.Y -= 90
		} else {
			view.Y += 90
		}
		view.Y = twisty.NormalizeHeading(view.Y)
		p.SetView(view)
		m.dirty = true

	case "up", "down":
		p.ToggleFlipped()
		m.dirty = true

	case "tab":
		if p.Scramble() {
			m.err = nil
			m.lastTurn = ""
		}

	case "x":
		if p.CancelScramble() {
			m.lastScramble = p.LastScramble()
			m.fail(m.session.recordScramble(m.lastScramble, false))
			m.dirty = true
		}

	case "backspace":
		if err := p.Reset(twisty.SolvedState()); err != nil {
			m.err = err
		} else {
			m.err = nil
			m.lastTurn = ""
			m.dirty = true
		}

	default:
		if n, ok := keyNotation(key); ok {
			m.session.heading = p.Heading()
			p.PerformMove(p.Heading(), n)
		}
	}

	return m, nil
}

// keyNotation maps a layer letter to a clockwise turn, or to the inverse
// turn when typed in upper case.
func keyNotation(key string) (twisty.Notation, bool) {
	if len(key) != 1 {
		return 0, false
	}
	n, err := twisty.ParseNotation(key)
	if err != nil {
		return 0, false
	}
	if key == strings.ToUpper(key) {
		n = n.Inverse()
	}
	return n, true
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	p := m.session.puzzle
	var b strings.Builder

	b.WriteString(titleStyle.Render("twisty"))
	b.WriteString("\n\n")
	b.WriteString(renderNet(p.State(), p.Skin()))
	b.WriteString("\n\n")
	b.WriteString(renderStatus(p))
	b.WriteString("\n\n")

	switch {
	case p.IsScrambling():
		b.WriteString(turnStyle.Render("SCRAMBLING"))
	case p.IsSolved():
		b.WriteString(turnStyle.Render("SOLVED"))
	case m.lastTurn != "":
		b.WriteString(fmt.Sprintf("Last move: %s", moveStyle.Render(m.lastTurn)))
	}
	b.WriteString("\n")

	if len(m.lastScramble) > 0 {
		b.WriteString(statusStyle.Render("Scramble: " + twisty.FormatNotations(m.lastScramble)))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("udlrfbmes: turn  shift: inverse  arrows: camera  tab: scramble  x: cancel  backspace: reset  q: quit"))
	b.WriteString("\n")
	return b.String()
}

// finish stops a running scramble and saves.
func (m *playModel) finish() error {
	p := m.session.puzzle
	if p.CancelScramble() {
		m.fail(m.session.recordScramble(p.LastScramble(), false))
	}
	return m.session.close(m.ctx)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	model := newPlayModel(ctx, s, appConfig.Puzzle.FrameRate)
	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, runErr := prog.Run()
	if err := model.finish(); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("TUI error: %w", runErr)
	}

	fmt.Printf("Session %s: %d moves\n", s.sessionID, s.puzzle.MoveCount())
	return nil
}
