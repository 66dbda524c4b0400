package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/analysis"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var (
	historyLimit   int
	historySession string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scrambles and moves",
	Long: `List the most recent scrambles, or the moves of one session with --session.
History is only kept with the sqlite store.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of scrambles to list")
	historyCmd.Flags().StringVar(&historySession, "session", "", "Show the moves of a session")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if !appConfig.HistoryEnabled() {
		return fmt.Errorf("history is only kept with the %s store", storage.BackendSQLite)
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.store.Close()

	if historySession != "" {
		return printSessionMoves(s.moves, historySession)
	}

	total, err := s.scrambles.Count()
	if err != nil {
		return fmt.Errorf("failed to count scrambles: %w", err)
	}
	list, err := s.scrambles.List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list scrambles: %w", err)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Scrambles (%d of %d)", len(list), total)))
	if len(list) == 0 {
		fmt.Println("No scrambles recorded")
	}
	for _, sc := range list {
		state := "complete"
		if !sc.Completed {
			state = "cancelled"
		}
		fmt.Printf("%s  %s  %2d moves  %-9s  %s\n",
			sc.ScrambleID[:8],
			sc.CreatedAt.Local().Format(time.DateTime),
			sc.Length,
			state,
			sc.Sequence)
	}
	fmt.Println()

	sessions, err := s.moves.Sessions(historyLimit)
	if err != nil {
		return err
	}
	fmt.Println(titleStyle.Render("Sessions"))
	if len(sessions) == 0 {
		fmt.Println("No moves recorded")
		return nil
	}
	for _, ss := range sessions {
		fmt.Printf("%s  %s  %3d moves\n",
			ss.SessionID,
			time.UnixMilli(ss.LastTsMs).Local().Format(time.DateTime),
			ss.Moves)
	}
	return nil
}

func printSessionMoves(repo *storage.MoveRepository, sessionID string) error {
	moves, err := repo.GetBySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}
	if len(moves) == 0 {
		return fmt.Errorf("no moves found for session %s", sessionID)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Session %s (%d moves)", sessionID, len(moves))))
	for _, m := range moves {
		remapped := ""
		if m.Requested != m.Applied {
			remapped = fmt.Sprintf(" (as %s)", m.Requested)
		}
		fmt.Printf("%4d  %s  %-2s%s\n",
			m.MoveIndex,
			time.UnixMilli(m.TsMs).Local().Format(time.TimeOnly),
			m.Applied,
			remapped)
	}
	notations := storage.Notations(moves)
	fmt.Println()
	fmt.Println(twisty.FormatNotations(notations))

	sum := analysis.Summarize(sessionID, moves)
	fmt.Println()
	fmt.Printf("Duration: %s  TPS: %.2f  Longest pause: %s  Pauses: %d\n",
		time.Duration(sum.DurationMs)*time.Millisecond,
		sum.TPS,
		time.Duration(sum.LongestPauseMs)*time.Millisecond,
		sum.Pauses)
	fmt.Printf("Cancelled: %d  Remapped by camera: %d\n", sum.Cancelled, sum.Remapped)

	report := analysis.MineNGrams(notations, 3, 8, 3)
	for n := 8; n >= 3; n-- {
		for _, ng := range report.TopNGrams[n] {
			fmt.Printf("Repeated %dx: %s\n", ng.Count, twisty.FormatNotations(ng.Sequence))
		}
	}
	return nil
}
