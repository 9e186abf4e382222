package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// DefaultPlayer is used when no player name is configured.
const DefaultPlayer = "player"

// PlayOptions configures a game screen.
type PlayOptions struct {
	Variant registry.Variant
	Store   *storage.Store // nil disables persistence
	Player  string
	Theme   config.Theme  // Used for players without a stored theme
	Source  engine.Source // nil uses a time-seeded source
	Resume  bool          // Load the saved game for this player and variant
	Logger  *log.Logger
	Width   int
	Height  int
}

// PlayModel is the Bubble Tea model for one 2048 game.
type PlayModel struct {
	engine   *engine.Engine
	variant  registry.Variant
	store    *storage.Store
	persist  *storage.Persistence
	logger   *log.Logger
	player   storage.PlayerData
	theme    Theme
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	gameID   string
	busy     bool   // Moves are ignored while the invalid-move notice shows
	flash    string // Invalid-move notice
	flashSeq int
	recorded bool // Score saved for the current game
	resumed  bool
	// Win overlay dismissed for the current game
	continued  bool
	quitting   bool
	backToMenu bool
}

// NewPlayModel creates a game screen, resuming a saved game when asked.
func NewPlayModel(opts PlayOptions) PlayModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	name := opts.Player
	if name == "" {
		name = DefaultPlayer
	}
	themeName := opts.Theme
	if !themeName.Valid() {
		themeName = config.ThemePastel
	}

	var engineOpts []engine.Option
	if opts.Source != nil {
		engineOpts = append(engineOpts, engine.WithSource(opts.Source))
	}

	h := help.New()
	h.ShowAll = false
	h.Width = opts.Width

	m := PlayModel{
		engine:  engine.New(opts.Variant.Config, engineOpts...),
		variant: opts.Variant,
		store:   opts.Store,
		logger:  logger,
		player:  storage.PlayerData{Username: name, Theme: string(themeName)},
		keys:    DefaultKeyMap(),
		help:    h,
		width:   opts.Width,
		height:  opts.Height,
		gameID:  uuid.NewString(),
	}

	if m.store != nil {
		m.loadPlayer(themeName)
		m.persist = storage.NewPersistence(m.store, storage.SlotFor(name, opts.Variant.ID), logger)
	}
	m.theme = ThemeFor(config.Theme(m.player.Theme))

	if opts.Resume {
		m.resume()
	}

	return m
}

// loadPlayer reads the stored profile, creating it on first play.
func (m *PlayModel) loadPlayer(theme config.Theme) {
	p, ok, err := m.store.Player(m.player.Username)
	if err != nil {
		m.logger.Warn("could not load player", "player", m.player.Username, "err", err)
		return
	}
	if ok {
		m.player = p
		return
	}
	p = storage.PlayerData{Username: m.player.Username, Theme: string(theme)}
	if err := m.store.SavePlayer(p); err != nil {
		m.logger.Warn("could not create player", "player", p.Username, "err", err)
	}
	m.player = p
}

// resume loads an unfinished saved game of the same board size that still
// has a legal move.
func (m *PlayModel) resume() {
	if m.persist == nil {
		return
	}
	state, ok := m.persist.Load()
	if !ok || state.IsGameOver {
		return
	}
	if err := state.Validate(m.engine.Config().BoardSize); err != nil {
		m.logger.Warn("ignoring saved game", "variant", m.variant.ID, "err", err)
		return
	}
	// A board without moves was saved before game over was detected
	if !state.Board.HasValidMoves() {
		m.logger.Info("ignoring saved game without moves", "variant", m.variant.ID)
		return
	}
	if err := m.engine.LoadState(state); err != nil {
		m.logger.Warn("ignoring saved game", "variant", m.variant.ID, "err", err)
		return
	}
	m.resumed = true
	// A saved won game was already acknowledged
	m.continued = state.IsWon
}

// Init initializes the model.
func (m PlayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.busy = false
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		if m.engine.Undo() {
			m.save()
		}
		return m, nil

	case key.Matches(msg, m.keys.Continue):
		if m.engine.Won() {
			m.continued = true
		}
		return m, nil
	}

	dir, ok := m.keys.Direction(msg)
	if !ok || m.busy || m.engine.GameOver() || m.showWinOverlay() {
		return m, nil
	}

	if !m.engine.Move(dir) {
		m.busy = true
		m.flash = fmt.Sprintf("Can't move %s", dir)
		m.flashSeq++
		return m, flashCmd(m.flashSeq, flashDuration)
	}

	m.afterMove()
	return m, nil
}

// afterMove persists the new state and records finished games once.
func (m *PlayModel) afterMove() {
	m.save()

	score := m.engine.Score()
	m.player.CurrentScore = score
	if score > m.player.BestScore {
		m.player.BestScore = score
	}
	if m.store != nil {
		if err := m.store.UpdateBestScore(m.player.Username, score); err != nil {
			m.logger.Warn("could not update best score", "err", err)
		}
	}

	if m.engine.GameOver() && !m.recorded {
		m.recordGame()
	}
}

// recordGame writes the finished game to the leaderboard.
func (m *PlayModel) recordGame() {
	m.recorded = true
	m.player.GamesPlayed++
	if m.store == nil {
		return
	}

	entry := storage.ScoreEntry{
		GameID:      m.gameID,
		Player:      m.player.Username,
		Variant:     m.variant.ID,
		Score:       m.engine.Score(),
		HighestTile: m.engine.Stats().HighestTile,
		Won:         m.engine.Won(),
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.logger.Warn("could not save score", "err", err)
	}
	if err := m.store.IncrementGamesPlayed(m.player.Username); err != nil {
		m.logger.Warn("could not update games played", "err", err)
	}
}

func (m *PlayModel) restart() {
	m.engine.Restart()
	m.gameID = uuid.NewString()
	m.recorded = false
	m.continued = false
	m.resumed = false
	m.busy = false
	m.flash = ""
	m.flashSeq++
	m.player.CurrentScore = 0
	m.save()
}

func (m *PlayModel) cycleTheme() {
	next := config.Theme(m.player.Theme).Next()
	m.player.Theme = string(next)
	m.theme = ThemeFor(next)
	if m.store != nil {
		if err := m.store.SetTheme(m.player.Username, string(next)); err != nil {
			m.logger.Warn("could not save theme", "err", err)
		}
	}
}

func (m *PlayModel) save() {
	if m.persist != nil {
		m.persist.Save(m.engine.State())
	}
}

// showWinOverlay reports whether the win notice is blocking moves.
func (m PlayModel) showWinOverlay() bool {
	return m.engine.Won() && !m.continued && !m.engine.GameOver()
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	board := m.engine.Board()
	layout := layoutFor(board, m.height)

	var b strings.Builder
	b.WriteString(m.renderHUD())
	b.WriteString("\n\n")

	boardView := renderBoard(board, m.theme, layout)
	switch {
	case m.engine.GameOver():
		boardView = m.withBanner(boardView, "GAME OVER",
			fmt.Sprintf("Final score: %d", m.engine.Score()), "r: new game  u: undo  q: quit")
	case m.showWinOverlay():
		boardView = m.withBanner(boardView, "YOU WIN!",
			fmt.Sprintf("You reached %d", m.variant.Config.WinTile), "c: keep playing  r: new game")
	}
	b.WriteString(boardView)
	b.WriteString("\n")

	status := m.flash
	if status == "" && m.resumed {
		status = "Resumed saved game"
	}
	b.WriteString(m.theme.Flash.Render(status))
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))

	if m.width == 0 || m.height == 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

func (m PlayModel) renderHUD() string {
	title := m.theme.Title.Render(fmt.Sprintf("2048 · %s", m.variant.Title))
	score := m.theme.ScoreLabel.Render("Score ") + m.theme.ScoreValue.Render(fmt.Sprintf("%d", m.engine.Score()))
	best := m.theme.ScoreLabel.Render("Best ") + m.theme.ScoreValue.Render(fmt.Sprintf("%d", m.player.BestScore))
	player := m.theme.ScoreLabel.Render(m.player.Username)
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, score, "   ", best, "   ", player),
	)
}

// withBanner stacks a message box under the board.
func (m PlayModel) withBanner(boardView, title, text, hint string) string {
	box := m.theme.OverlayBorder.Render(lipgloss.JoinVertical(lipgloss.Center,
		m.theme.OverlayTitle.Render(title),
		m.theme.OverlayText.Render(text),
		m.theme.Help.Render(hint),
	))
	return lipgloss.JoinVertical(lipgloss.Center, boardView, box)
}

// Score returns the current score.
func (m PlayModel) Score() int {
	return m.engine.Score()
}

// State returns the engine snapshot.
func (m PlayModel) State() engine.GameState {
	return m.engine.State()
}

// Player returns the player's profile as last seen by the model.
func (m PlayModel) Player() storage.PlayerData {
	return m.player
}

// Busy reports whether moves are currently ignored.
func (m PlayModel) Busy() bool {
	return m.busy
}

// Resumed reports whether the game was loaded from a save.
func (m PlayModel) Resumed() bool {
	return m.resumed
}

// IsQuitting returns true if the user asked to quit.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to leave the game screen.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// RunPlay starts a standalone game screen and returns the final model.
func RunPlay(opts PlayOptions) (PlayModel, error) {
	model := NewPlayModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return model, err
	}

	m, ok := finalModel.(PlayModel)
	if !ok {
		return model, nil
	}
	return m, nil
}
