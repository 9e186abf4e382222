package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagResetYes bool

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write a JSON backup of players, saved games and scores",
	Long: `Export everything in the database as JSON.
Without a file the backup is written to stdout.

Examples:
  t2048 export backup.json
  t2048 export > backup.json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a JSON backup",
	Long: `Replace the database contents with a backup made by 'export'.
The database is left untouched if the backup is invalid.

Examples:
  t2048 import backup.json`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all players, saved games and scores",
	Long: `Clear the database. Requires --yes.

Examples:
  t2048 export backup.json && t2048 reset --yes`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "Confirm deleting all data")
}

func runExport(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	data, err := store.Export()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}

	if len(args) == 0 {
		os.Stdout.Write(data) //nolint:errcheck
		fmt.Println()
		return
	}

	if err := os.WriteFile(args[0], data, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", args[0], err)
		os.Exit(1)
	}
	fmt.Printf("Exported to %s\n", args[0])
}

func runImport(_ *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", args[0], err)
		os.Exit(1)
	}

	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	if err := store.Import(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %s\n", args[0])
}

func runReset(_ *cobra.Command, _ []string) {
	if !flagResetYes {
		fmt.Fprintln(os.Stderr, "Refusing to delete data without --yes.")
		os.Exit(1)
	}

	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	if err := store.ClearAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing data: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("All data deleted.")
}
