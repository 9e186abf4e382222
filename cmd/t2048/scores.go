package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores for a variant",
	Long: `Display the top high scores for a board variant.
Without a variant the configured default is used.

Examples:
  t2048 scores
  t2048 scores mini --limit 5
  t2048 scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	variantID := cfg.Game.Variant
	if len(args) == 1 {
		variantID = args[0]
	}

	variant, err := registry.Lookup(variantID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available variants.")
		os.Exit(1)
	}

	store := openStore(cfg)
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, playerName("", cfg), variant.ID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(variant.ID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", variant.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", variant.ID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-8s  %-6s  %-3s  %s\n", "Rank", "Player", "Score", "Tile", "Won", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-6s  %-3s  %s\n", "----", "------", "-----", "----", "---", "----")

	for i, entry := range scores {
		won := ""
		if entry.Won {
			won = "yes"
		}
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-8d  %-6d  %-3s  %s\n", i+1, entry.Player, entry.Score, entry.HighestTile, won, dateStr)
	}

	fmt.Println()
	if highScore, err := store.HighScore(variant.ID); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}
