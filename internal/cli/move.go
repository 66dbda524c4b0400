package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
)

var (
	moveHeading float64
	moveFlipped bool
)

var moveCmd = &cobra.Command{
	Use:   "move <notation>...",
	Short: "Turn layers",
	Long: `Turn one or more layers as seen from the current camera.

Notations are U D L R F B M E S, with ' for the inverse turn.
Several moves may be given as separate arguments or in one quoted string.

Examples:
  twisty move R U R' U'
  twisty move "F2 B" --heading 90
  twisty move U --flipped`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMove,
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Set the camera heading and orientation",
	Long: `Turn the camera around the puzzle. The heading is in degrees around the
vertical axis; --flipped looks at the puzzle upside down.`,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(viewCmd)

	moveCmd.Flags().Float64Var(&moveHeading, "heading", 0, "Camera heading in degrees (default: saved view)")
	moveCmd.Flags().BoolVar(&moveFlipped, "flipped", false, "Look at the puzzle upside down")

	viewCmd.Flags().Float64Var(&moveHeading, "heading", 0, "Camera heading in degrees")
	viewCmd.Flags().BoolVar(&moveFlipped, "flipped", false, "Look at the puzzle upside down")
}

// parseMoves reads every notation in args, expanding double turns.
func parseMoves(args []string) ([]twisty.Notation, error) {
	var moves []twisty.Notation
	for _, arg := range args {
		for _, tok := range strings.Fields(arg) {
			count := 1
			if t, ok := strings.CutSuffix(tok, "2"); ok {
				tok, count = t, 2
			} else if t, ok := strings.CutSuffix(tok, "2'"); ok {
				tok, count = t+twisty.InverseMarker, 2
			}
			n, err := twisty.ParseNotation(tok)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", tok, err)
			}
			for i := 0; i < count; i++ {
				moves = append(moves, n)
			}
		}
	}
	return moves, nil
}

func runMove(cmd *cobra.Command, args []string) error {
	moves, err := parseMoves(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	p := s.puzzle
	heading := p.Heading()
	if cmd.Flags().Changed("heading") {
		heading = moveHeading
	}
	if cmd.Flags().Changed("flipped") {
		p.SetFlipped(moveFlipped)
	}

	var applied []twisty.Notation
	p.OnTurn(func(tr twisty.Turn) {
		applied = append(applied, tr.Move.Notation)
	})

	for _, n := range moves {
		if !s.move(heading, n) {
			err = errors.Join(err, fmt.Errorf("move %s rejected while %s", n, p.Status()))
			break
		}
	}

	if cerr := s.close(ctx); cerr != nil {
		return errors.Join(err, cerr)
	}
	if err != nil {
		return err
	}

	fmt.Println(renderNet(p.State(), p.Skin()))
	fmt.Println()
	fmt.Printf("%s %s\n", moveStyle.Render("Applied:"), twisty.FormatNotations(applied))
	fmt.Println(renderStatus(p))
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	p := s.puzzle
	view := p.View()
	if cmd.Flags().Changed("heading") {
		view.Y = twisty.NormalizeHeading(moveHeading)
	}
	p.SetView(view)
	if cmd.Flags().Changed("flipped") {
		p.SetFlipped(moveFlipped)
	}

	if err := s.close(ctx); err != nil {
		return err
	}
	fmt.Println(renderStatus(p))
	return nil
}
