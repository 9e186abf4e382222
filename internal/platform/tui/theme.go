package tui

import (
	"math/bits"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/config"
)

// tileColor is a foreground/background pair for one tile value.
type tileColor struct {
	fg string
	bg string
}

// Theme contains the visual styles for the game screen.
type Theme struct {
	Name config.Theme

	// Tile styles, indexed by log2(value)-1; values past the end use Super
	Tiles []lipgloss.Style
	Super lipgloss.Style
	Empty lipgloss.Style

	// Board frame
	BoardBorder lipgloss.Style

	// HUD styles
	Title      lipgloss.Style
	ScoreLabel lipgloss.Style
	ScoreValue lipgloss.Style
	Flash      lipgloss.Style
	Help       lipgloss.Style

	// Overlay styles
	OverlayBorder lipgloss.Style
	OverlayTitle  lipgloss.Style
	OverlayText   lipgloss.Style
}

var themePalettes = map[config.Theme][]tileColor{
	// Soft colors close to the classic web game
	config.ThemePastel: {
		{"239", "255"}, // 2
		{"239", "230"}, // 4
		{"231", "216"}, // 8
		{"231", "209"}, // 16
		{"231", "203"}, // 32
		{"231", "196"}, // 64
		{"239", "222"}, // 128
		{"239", "221"}, // 256
		{"239", "220"}, // 512
		{"239", "214"}, // 1024
		{"231", "208"}, // 2048
	},
	// Shades of green on black
	config.ThemeMatrix: {
		{"22", "16"},
		{"28", "16"},
		{"34", "16"},
		{"40", "16"},
		{"46", "16"},
		{"16", "22"},
		{"16", "28"},
		{"16", "34"},
		{"16", "40"},
		{"16", "46"},
		{"16", "82"},
	},
	// Saturated colors
	config.ThemeNeon: {
		{"16", "51"},
		{"16", "45"},
		{"16", "201"},
		{"16", "199"},
		{"16", "226"},
		{"16", "190"},
		{"16", "129"},
		{"231", "93"},
		{"231", "57"},
		{"16", "118"},
		{"16", "214"},
	},
}

var themeAccents = map[config.Theme]string{
	config.ThemePastel: "215",
	config.ThemeMatrix: "46",
	config.ThemeNeon:   "201",
}

// ThemeFor returns the styles for a theme, falling back to pastel.
func ThemeFor(name config.Theme) Theme {
	palette, ok := themePalettes[name]
	if !ok {
		name = config.ThemePastel
		palette = themePalettes[name]
	}
	accent := lipgloss.Color(themeAccents[name])

	tiles := make([]lipgloss.Style, len(palette))
	for i, c := range palette {
		tiles[i] = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.fg)).
			Background(lipgloss.Color(c.bg))
	}

	return Theme{
		Name:  name,
		Tiles: tiles,
		Super: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("16")),
		Empty: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		BoardBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent),

		Title:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		ScoreLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ScoreValue: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Flash:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Italic(true),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		OverlayBorder: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent).
			Padding(0, 2),
		OverlayTitle: lipgloss.NewStyle().Bold(true).Foreground(accent),
		OverlayText:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// Tile returns the style for a tile value.
func (t Theme) Tile(value int) lipgloss.Style {
	if value <= 0 {
		return t.Empty
	}
	idx := tileIndex(value)
	if idx >= len(t.Tiles) {
		return t.Super
	}
	return t.Tiles[idx]
}

// tileIndex maps 2 -> 0, 4 -> 1 and so on.
func tileIndex(value int) int {
	idx := bits.Len(uint(value)) - 2
	if idx < 0 {
		return 0
	}
	return idx
}
