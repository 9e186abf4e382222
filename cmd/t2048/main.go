// t2048 is the sliding-tile puzzle 2048 for the terminal.
//
// Usage:
//
//	t2048 play [variant]     - Play a board (menu when no variant is given)
//	t2048 list               - List board variants
//	t2048 scores [variant]   - Show high scores for a variant
//	t2048 stats              - Show player and variant statistics
//	t2048 export [file]      - Write a JSON backup
//	t2048 import <file>      - Restore a JSON backup
//	t2048 reset              - Delete all saved data
//	t2048 serve              - Start SSH server for remote play
//	t2048 config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.t2048/config.yaml, ./configs/t2048.yaml)
//	--db <path>         - Database path (overrides storage.path)
//	--seed <value>      - RNG seed for reproducible games
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Slide and merge tiles in your terminal",
	Long: `t2048 is the sliding-tile puzzle 2048 for the terminal.

Slide all tiles in one direction; equal neighbours merge into their sum.
Reach the win tile, then keep going for a high score.

Available commands:
  play     - Play a board (menu when no variant is given)
  list     - Show board variants
  scores   - View high scores
  stats    - Player and variant statistics
  export   - Write a JSON backup
  import   - Restore a JSON backup
  reset    - Delete all saved data
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  t2048 play
  t2048 play mini
  t2048 scores classic
  t2048 serve`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies global flag overrides.
// It exits on error.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	return cfg
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(cfg config.Config, w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// openStore opens the database or exits.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// playerName resolves the player from the flag, config or OS user.
func playerName(flag string, cfg config.Config) string {
	if flag != "" {
		return flag
	}
	if cfg.Player.Name != "" {
		return cfg.Player.Name
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return filepath.Base(u.Username)
	}
	return tui.DefaultPlayer
}

// seedSource returns a seeded source when --seed is set, nil otherwise.
func seedSource() engine.Source {
	if flagSeed == 0 {
		return nil
	}
	return engine.NewSeededSource(flagSeed)
}
