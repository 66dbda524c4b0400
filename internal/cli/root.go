// Package cli implements the command-line interface for twisty.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SeamusWaldron/twisty/internal/config"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	storeFlag  string
	dataDir    string
	verbose    bool

	// Set up by the root command before any subcommand runs.
	appConfig *config.Config
	logger    = zap.NewNop()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "twisty",
	Short: "A 3x3x3 twisty puzzle in your terminal",
	Long: `twisty - A 3x3x3 twisty puzzle played from the command line.

Turn layers with standard notation (U D L R F B M E S, ' for inverse),
scramble, reset and inspect the puzzle. The puzzle and its presentation
settings are kept between runs in the configured store.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.twisty/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Slot store backend: sqlite, badger or file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: ~/.twisty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if storeFlag != "" {
		cfg.Store.Backend = storage.Backend(storeFlag)
	}
	if dataDir != "" {
		cfg.Store.Dir = dataDir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	l, err := buildLogger(cfg, cmd.Name() == "play")
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	appConfig = cfg
	logger = l
	logger.Debug("config loaded",
		zap.String("path", path),
		zap.String("store", string(cfg.Store.Backend)))
	return nil
}

// buildLogger writes to stderr, and to the configured file if any.
// Interactive commands own the terminal and only log to the file.
func buildLogger(cfg *config.Config, interactive bool) (*zap.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	var outputs []string
	if !interactive {
		outputs = append(outputs, "stderr")
	}
	if cfg.Logging.File != "" {
		outputs = append(outputs, cfg.Logging.File)
	}
	if len(outputs) == 0 {
		return zap.NewNop(), nil
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = outputs
	zc.ErrorOutputPaths = outputs
	return zc.Build()
}
