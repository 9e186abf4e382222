package engine

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// Board is a square grid of tile values indexed as board[row][col].
// A zero cell is empty; every other cell holds a power of two >= 2.
type Board [][]int

// Cell addresses a single board position.
type Cell struct {
	Row int
	Col int
}

// NewBoard returns an empty size x size board.
func NewBoard(size int) Board {
	b := make(Board, size)
	for r := range b {
		b[r] = make([]int, size)
	}
	return b
}

// Size returns the board dimension.
func (b Board) Size() int {
	return len(b)
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	if b == nil {
		return nil
	}
	c := make(Board, len(b))
	for r, row := range b {
		c[r] = append([]int(nil), row...)
	}
	return c
}

// Equal reports whether both boards have the same shape and contents.
func (b Board) Equal(other Board) bool {
	if len(b) != len(other) {
		return false
	}
	for r := range b {
		if !slices.Equal(b[r], other[r]) {
			return false
		}
	}
	return true
}

// EmptyCells returns the empty positions in row-major order.
func (b Board) EmptyCells() []Cell {
	var cells []Cell
	for r, row := range b {
		for c, v := range row {
			if v == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// CountTiles returns the number of occupied cells.
func (b Board) CountTiles() int {
	n := 0
	for _, row := range b {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// MaxTile returns the highest tile value, or 0 for an empty board.
func (b Board) MaxTile() int {
	maxVal := 0
	for _, row := range b {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// HasAdjacentPair returns true if two horizontally or vertically
// adjacent cells hold the same value.
func (b Board) HasAdjacentPair() bool {
	size := len(b)
	for r := range size {
		for c := range size {
			val := b[r][c]
			// Check right neighbor
			if c < size-1 && b[r][c+1] == val {
				return true
			}
			// Check bottom neighbor
			if r < size-1 && b[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// HasValidMoves returns true if any direction can change the board.
func (b Board) HasValidMoves() bool {
	return len(b.EmptyCells()) > 0 || b.HasAdjacentPair()
}

// String renders the board as whitespace-aligned rows, "." for empty.
func (b Board) String() string {
	width := len(strconv.Itoa(b.MaxTile()))
	var sb strings.Builder
	for _, row := range b {
		for c, v := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			sb.WriteString(strings.Repeat(" ", max(0, width-len(cell))))
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// MarshalJSON encodes empty cells as null.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*int, len(b))
	for r, row := range b {
		rows[r] = make([]*int, len(row))
		for c := range row {
			if row[c] != 0 {
				v := row[c]
				rows[r][c] = &v
			}
		}
	}
	return json.Marshal(rows)
}

// UnmarshalJSON accepts null or 0 for empty cells.
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]*int
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if rows == nil {
		*b = nil
		return nil
	}
	out := make(Board, len(rows))
	for r, row := range rows {
		out[r] = make([]int, len(row))
		for c, v := range row {
			if v != nil {
				out[r][c] = *v
			}
		}
	}
	*b = out
	return nil
}

// isTileValue reports whether v is a legal tile: a power of two >= 2.
func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
