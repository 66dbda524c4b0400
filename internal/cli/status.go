package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"show"},
	Short:   "Show the puzzle and its settings",
	Long:    `Draw the unfolded puzzle and list the move count, view and presentation settings.`,
	RunE:    runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.store.Close()

	p := s.puzzle
	fmt.Println(titleStyle.Render("twisty"))
	fmt.Println()
	fmt.Println(renderNet(p.State(), p.Skin()))
	fmt.Println()
	fmt.Println(renderStatus(p))
	fmt.Println()

	fmt.Printf("Moves:      %d\n", p.MoveCount())
	fmt.Printf("Solved:     %t\n", p.IsSolved())
	fmt.Printf("Heading:    %g (%s)\n", p.Heading(), twisty.ViewBucket(p.Heading(), p.Flipped()))
	fmt.Printf("Flipped:    %t\n", p.Flipped())
	fmt.Printf("Skin:       %s\n", p.Skin())
	if p.Skin().BaseColorEnabled() {
		fmt.Printf("Base:       %s\n", p.BaseColor())
	}
	fmt.Printf("Transition: %s (%s, %s)\n", p.Speed(), p.Speed().Duration(), p.Easing())
	fmt.Printf("Size:       %s (x%g)\n", p.Size(), p.Size().Scale())

	if last, err := lastScramble(s); err != nil {
		return err
	} else if last != "" {
		fmt.Printf("Last scramble: %s\n", last)
	}
	return nil
}

// lastScramble returns the most recent recorded scramble, if history is kept.
func lastScramble(s *session) (string, error) {
	if s.scrambles == nil {
		return "", nil
	}
	list, err := s.scrambles.List(1)
	if err != nil {
		return "", fmt.Errorf("failed to list scrambles: %w", err)
	}
	if len(list) == 0 {
		return "", nil
	}
	return strings.TrimSpace(list[0].Sequence), nil
}
