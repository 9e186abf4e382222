package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board variants",
	Long:  `Shows every board variant with its size, win tile and starting tiles.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-12s  %-5s  %-6s  %s\n", maxIDLen, "ID", "Title", "Size", "Win", "Start")
	fmt.Printf("  %-*s  %-12s  %-5s  %-6s  %s\n", maxIDLen, "--", "-----", "----", "---", "-----")

	for _, v := range variants {
		size := fmt.Sprintf("%dx%d", v.Config.BoardSize, v.Config.BoardSize)
		fmt.Printf("  %-*s  %-12s  %-5s  %-6d  %d\n", maxIDLen, v.ID, v.Title, size, v.Config.WinTile, v.Config.InitialTiles)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play <id>' to play a variant.")
}
