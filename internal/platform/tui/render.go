package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

const (
	minTileWidth = 6 // Tile width including padding
	tallTile     = 3 // Tile height when the terminal has room
)

// boardLayout holds the computed tile size for a board.
type boardLayout struct {
	tileW int
	tileH int
}

// layoutFor sizes tiles to fit the largest value and the terminal height.
func layoutFor(board engine.Board, termHeight int) boardLayout {
	tileW := len(strconv.Itoa(board.MaxTile())) + 2
	if tileW < minTileWidth {
		tileW = minTileWidth
	}

	tileH := 1
	// Board rows plus gaps, border and HUD
	if termHeight >= board.Size()*(tallTile+1)+10 {
		tileH = tallTile
	}
	return boardLayout{tileW: tileW, tileH: tileH}
}

// renderBoard draws the grid with one styled block per tile.
func renderBoard(board engine.Board, theme Theme, layout boardLayout) string {
	rows := make([]string, 0, board.Size()*2)
	for r, row := range board {
		cells := make([]string, 0, len(row)*2)
		for c, v := range row {
			if c > 0 {
				cells = append(cells, " ")
			}
			cells = append(cells, renderTile(v, theme, layout))
		}
		if r > 0 && layout.tileH > 1 {
			rows = append(rows, "")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, cells...))
	}

	return theme.BoardBorder.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderTile(value int, theme Theme, layout boardLayout) string {
	text := "·"
	if value > 0 {
		text = strconv.Itoa(value)
	}
	return theme.Tile(value).
		Width(layout.tileW).
		Height(layout.tileH).
		Align(lipgloss.Center, lipgloss.Center).
		Render(text)
}

// centerText pads text so it is centered within width.
func centerText(text string, width int) string {
	textW := lipgloss.Width(text)
	if textW >= width {
		return text
	}
	padding := (width - textW) / 2
	return strings.Repeat(" ", padding) + text
}
