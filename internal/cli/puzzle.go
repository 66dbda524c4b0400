package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
)

var (
	skinBase    string
	skinAlpha   float64
	speedEasing string
	speedSize   string
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Scramble the puzzle",
	Long: `Apply a random sequence of moves. The move count is left untouched and,
with the sqlite store, the sequence is kept in the scramble history.`,
	RunE: runScramble,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Return the puzzle to the solved state",
	Long:  `Restore the solved state and clear the move count. Presentation settings are kept.`,
	RunE:  runReset,
}

var skinCmd = &cobra.Command{
	Use:   "skin [name]",
	Short: "Show or change the skin and base color",
	Long: `Without arguments, list the skins and base colors.

Examples:
  twisty skin pastel
  twisty skin classic --base cream --alpha 0.8
  twisty skin --alpha 0.5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSkin,
}

var speedCmd = &cobra.Command{
	Use:   "speed [name]",
	Short: "Show or change the transition speed, easing and size",
	Long: `Without arguments, list the available speeds, easings and sizes.

Examples:
  twisty speed slow
  twisty speed --easing bounce
  twisty speed instant --size big`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSpeed,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(skinCmd)
	rootCmd.AddCommand(speedCmd)

	skinCmd.Flags().StringVar(&skinBase, "base", "", "Base color name")
	skinCmd.Flags().Float64Var(&skinAlpha, "alpha", 1, "Base color opacity (0-1)")

	speedCmd.Flags().StringVar(&speedEasing, "easing", "", "Easing function")
	speedCmd.Flags().StringVar(&speedSize, "size", "", "Puzzle size")
}

func runScramble(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	seq, err := s.scramble()
	if cerr := s.close(ctx); cerr != nil {
		return errors.Join(err, cerr)
	}
	if err != nil {
		return err
	}

	fmt.Println(renderNet(s.puzzle.State(), s.puzzle.Skin()))
	fmt.Println()
	fmt.Printf("%s %s\n", turnStyle.Render("Scramble:"), twisty.FormatNotations(seq))
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	err = s.puzzle.Reset(twisty.SolvedState())
	if cerr := s.close(ctx); cerr != nil {
		return errors.Join(err, cerr)
	}
	if err != nil {
		return err
	}

	fmt.Println(renderNet(s.puzzle.State(), s.puzzle.Skin()))
	fmt.Println()
	fmt.Println(renderStatus(s.puzzle))
	return nil
}

func runSkin(cmd *cobra.Command, args []string) error {
	alphaSet := cmd.Flags().Changed("alpha")
	if len(args) == 0 && skinBase == "" && !alphaSet {
		printChoices("Skins", names(twisty.Skins))
		printChoices("Base colors", twisty.BaseColorNames())
		return nil
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	err = applySkinFlags(s.puzzle, args, alphaSet)
	if cerr := s.close(ctx); cerr != nil {
		return errors.Join(err, cerr)
	}
	if err != nil {
		return err
	}

	fmt.Println(renderNet(s.puzzle.State(), s.puzzle.Skin()))
	fmt.Println()
	fmt.Printf("Skin: %s  Base: %s\n", s.puzzle.Skin(), s.puzzle.BaseColor())
	return nil
}

func applySkinFlags(p *twisty.Puzzle, args []string, alphaSet bool) error {
	if len(args) == 1 {
		skin, err := twisty.ParseSkin(args[0])
		if err != nil {
			return err
		}
		if err := p.ApplySkin(skin); err != nil {
			return err
		}
	}
	if skinBase != "" {
		c, ok := twisty.BaseColors[strings.ToUpper(skinBase)]
		if !ok {
			return fmt.Errorf("unknown base color %q (choose from %s)",
				skinBase, strings.Join(twisty.BaseColorNames(), ", "))
		}
		if !p.ApplyBaseColor(c) {
			return fmt.Errorf("skin %s has no base color", p.Skin())
		}
	}
	if alphaSet && !p.SetBaseAlpha(skinAlpha) {
		return fmt.Errorf("skin %s has no base color", p.Skin())
	}
	return nil
}

func runSpeed(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && speedEasing == "" && speedSize == "" {
		var speeds []string
		for _, sp := range twisty.Speeds {
			speeds = append(speeds, fmt.Sprintf("%s (%s)", sp, sp.Duration()))
		}
		printChoices("Speeds", speeds)
		printChoices("Easings", names(twisty.Easings))
		printChoices("Sizes", names(twisty.Sizes))
		return nil
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	err = applySpeedFlags(s.puzzle, args)
	if cerr := s.close(ctx); cerr != nil {
		return errors.Join(err, cerr)
	}
	if err != nil {
		return err
	}

	p := s.puzzle
	fmt.Printf("Transition: %s (%s, %s)  Size: %s\n", p.Speed(), p.Speed().Duration(), p.Easing(), p.Size())
	return nil
}

func applySpeedFlags(p *twisty.Puzzle, args []string) error {
	if len(args) == 1 {
		speed, err := twisty.ParseSpeed(args[0])
		if err != nil {
			return err
		}
		if err := p.SetTransition(speed); err != nil {
			return err
		}
	}
	if speedEasing != "" {
		e, err := twisty.ParseEasing(speedEasing)
		if err != nil {
			return err
		}
		if err := p.SetEasing(e); err != nil {
			return err
		}
	}
	if speedSize != "" {
		size, err := twisty.ParseSize(speedSize)
		if err != nil {
			return err
		}
		if err := p.SetSize(size); err != nil {
			return err
		}
	}
	return nil
}

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func printChoices(title string, choices []string) {
	fmt.Println(titleStyle.Render(title))
	for _, c := range choices {
		fmt.Printf("  %s\n", c)
	}
	fmt.Println()
}
