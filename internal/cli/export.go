package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the puzzle state and config",
	Long: `Write both persisted slots as one JSON document.

Examples:
  twisty export
  twisty export -o backup.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a puzzle exported with 'twisty export'",
	Long: `Replace the stored puzzle with an exported document. A malformed state
falls back to the solved puzzle and invalid config fields fall back to
their defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

// slotDocument is the export file format: one entry per slot.
type slotDocument map[string]json.RawMessage

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.store.Close()

	state, config, err := s.puzzle.Export()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(slotDocument{
		twisty.SlotState:  state,
		twisty.SlotConfig: config,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if exportOutput == "" {
		fmt.Println(string(data))
		return nil
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Exported puzzle to %s\n", exportOutput)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	var doc slotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	err = s.puzzle.Restore(doc[twisty.SlotState], doc[twisty.SlotConfig])
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
