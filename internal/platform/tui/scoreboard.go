package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	// Leaderboard rows loaded per variant
	maxScores = 100
	// Marks the viewing player's rows
	ownRowMark = "►"
	// Lines taken by everything around the table
	chromeLines = 12
)

// scoreboardKeys defines the key bindings for the leaderboard screen.
type scoreboardKeys struct {
	Up        key.Binding
	Down      key.Binding
	PrevBoard key.Binding
	NextBoard key.Binding
	Mine      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevBoard, k.NextBoard, k.Mine, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevBoard, k.NextBoard},
		{k.Mine, k.Back, k.Quit},
	}
}

func defaultScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		PrevBoard: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev board")),
		NextBoard: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next board")),
		Mine:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "my games")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the leaderboard of one variant at a time together
// with its aggregated results. The viewing player's games are marked and
// can be shown on their own.
type ScoreboardModel struct {
	store    *storage.Store
	player   string
	variants []registry.Variant
	cursor   int
	mineOnly bool

	scores []storage.ScoreEntry
	stats  storage.VariantStats

	table table.Model
	keys  scoreboardKeys
	help  help.Model

	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the leaderboard on the current variant for player.
func NewScoreboardModel(store *storage.Store, player, current string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:    store,
		player:   player,
		variants: registry.List(),
		keys:     defaultScoreboardKeys(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	for i, v := range m.variants {
		if v.ID == current {
			m.cursor = i
		}
	}
	m.help.Width = width

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "", Width: 1},
			{Title: "Rank", Width: 5},
			{Title: "Player", Width: 14},
			{Title: "Score", Width: 8},
			{Title: "Tile", Width: 6},
			{Title: "Won", Width: 4},
			{Title: "Date", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-chromeLines, 5)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)
	m.table = t

	m.reload()
	return m
}

// variant returns the variant on screen.
func (m ScoreboardModel) variant() registry.Variant {
	if len(m.variants) == 0 {
		return registry.Variant{}
	}
	return m.variants[m.cursor]
}

// reload fetches scores and stats for the selected variant and rebuilds the rows.
func (m *ScoreboardModel) reload() {
	id := m.variant().ID
	m.scores = nil
	m.stats = storage.VariantStats{Variant: id}

	if m.store != nil && id != "" {
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetVariantStats(id); err == nil {
			m.stats = *stats
		}
	}

	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		own := s.Player == m.player
		if m.mineOnly && !own {
			continue
		}
		mark := ""
		if own {
			mark = ownRowMark
		}
		won := ""
		if s.Won {
			won = "yes"
		}
		// Rank stays the position on the full leaderboard
		rows = append(rows, table.Row{
			mark,
			fmt.Sprintf("#%d", i+1),
			s.Player,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.HighestTile),
			won,
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// shift moves the variant cursor by delta, wrapping around.
func (m *ScoreboardModel) shift(delta int) {
	if len(m.variants) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.variants)) % len(m.variants)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextBoard):
			m.shift(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevBoard):
			m.shift(-1)
			return m, nil
		case key.Matches(msg, m.keys.Mine):
			m.mineOnly = !m.mineOnly
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-chromeLines, 5))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("215")).
		Render("HIGH SCORES · " + m.variant().Title)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var body string
	switch {
	case len(m.table.Rows()) > 0:
		body = box.Render(m.table.View())
	case m.mineOnly:
		body = box.Render(dim.Italic(true).Render(fmt.Sprintf("No games by %s on this board yet.", m.player)))
	default:
		body = box.Render(dim.Italic(true).Render("No scores recorded yet.\nFinish a game to set a high score!"))
	}

	filter := "all players"
	if m.mineOnly {
		filter = "only " + m.player
	}

	out := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		m.renderTabs(),
		"",
		m.summary(),
		dim.Render("showing "+filter),
		body,
		dim.Render(m.help.View(m.keys)),
	)
	if m.width == 0 || m.height == 0 {
		return out
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, out)
}

// renderTabs draws one tab per variant with the selected one highlighted.
func (m ScoreboardModel) renderTabs() string {
	idle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	active := idle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.cursor {
			tabs[i] = active.Render(v.Title)
		} else {
			tabs[i] = idle.Render(v.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// summary renders the variant's aggregated results on one line.
func (m ScoreboardModel) summary() string {
	if m.stats.GamesCount == 0 {
		return "no games played"
	}
	parts := []string{
		fmt.Sprintf("%d games", m.stats.GamesCount),
		fmt.Sprintf("%d wins", m.stats.Wins),
		fmt.Sprintf("best %d", m.stats.HighScore),
		fmt.Sprintf("top tile %d", m.stats.BestTile),
		fmt.Sprintf("avg %.0f", m.stats.AvgScore),
	}
	return strings.Join(parts, "  ·  ")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, player, current string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, player, current, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
