package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagNewGame bool
	flagPlayer  string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play 2048",
	Long: `Start playing. Without a variant a board picker menu is shown and
you return to it after each game.

Your unfinished game is saved after every move and resumed next time,
unless --new is given.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  U                - Undo last move
  R                - New game
  T                - Cycle theme (pastel, matrix, neon)
  C/Enter          - Keep playing after reaching the win tile
  ?                - Toggle help
  Esc              - Back to menu
  Q/Ctrl+C         - Quit

Examples:
  t2048 play
  t2048 play classic
  t2048 play mini --new
  t2048 play big --player ana --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNewGame, "new", false, "Start a new game instead of resuming")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name (default from config or OS user)")
}

func runPlay(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	variantID := cfg.Game.Variant
	if len(args) == 1 {
		variantID = args[0]
	}
	if !registry.Exists(variantID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variantID)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available variants.")
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger, closeLog := playLogger(cfg)
	defer closeLog()

	// Open storage
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	session := playSession{
		cfg:    cfg,
		store:  store,
		player: playerName(flagPlayer, cfg),
		logger: logger,
		width:  width,
		height: height,
	}

	if len(args) == 1 {
		if _, err := session.play(variantID, !flagNewGame); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := session.menuLoop(variantID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playSession carries what a local game needs between menu rounds.
type playSession struct {
	cfg    config.Config
	store  *storage.Store
	player string
	logger *log.Logger
	width  int
	height int
}

// play runs one game screen. It reports whether the user asked to go back to the menu.
func (s *playSession) play(variantID string, resume bool) (backToMenu bool, err error) {
	gameCfg, err := s.cfg.GameConfig(variantID)
	if err != nil {
		return false, err
	}
	variant, err := registry.Lookup(variantID)
	if err != nil {
		return false, err
	}
	variant.Config = gameCfg

	final, err := tui.RunPlay(tui.PlayOptions{
		Variant: variant,
		Store:   s.store,
		Player:  s.player,
		Theme:   s.cfg.Player.Theme,
		Source:  seedSource(),
		Resume:  resume,
		Logger:  s.logger,
		Width:   s.width,
		Height:  s.height,
	})
	if err != nil {
		return false, err
	}
	return final.BackToMenu(), nil
}

// menuLoop shows the variant menu until the user quits.
func (s *playSession) menuLoop(current string) error {
	for {
		result, err := tui.RunMenu(s.store, current, s.width, s.height)
		if err != nil {
			return err
		}
		if result.Width > 0 && result.Height > 0 {
			s.width, s.height = result.Width, result.Height
		}

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(s.store, s.player, current, s.width, s.height)
			if err != nil {
				return err
			}
			if !goBack {
				return nil // User quit from scoreboard
			}
			continue
		}

		current = result.VariantID
		backToMenu, err := s.play(current, !flagNewGame)
		if err != nil {
			return err
		}
		if !backToMenu {
			return nil
		}
	}
}

// playLogger writes to a log file next to the database so the TUI stays clean.
func playLogger(cfg config.Config) (*log.Logger, func()) {
	dbPath, err := storage.ExpandPath(cfg.Storage.Path)
	if err != nil {
		return newLogger(cfg, os.Stderr, "t2048"), func() {}
	}

	logPath := dbPath + ".log"
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(filepath.Dir(logPath), 0o755)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(cfg, os.Stderr, "t2048"), func() {}
	}
	return newLogger(cfg, f, "t2048"), func() { f.Close() }
}
