package engine

import (
	"fmt"
	"slices"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid move direction.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four move directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection converts a name ("up", "left", ...) into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("engine: unknown direction %q", s)
}

// SlideResult describes the outcome of sliding a board.
type SlideResult struct {
	Score   int   // Sum of all merged tile values
	Changed bool  // Whether any cell moved or merged
	Merged  []int // Values produced by merges, in scan order
}

// slideRow compacts a row to the left and merges equal pairs in a single
// left-to-right pass. A tile produced by a merge is not merged again.
// The returned row has the same length as the input.
func slideRow(row []int) (result []int, score int, merged []int) {
	tiles := make([]int, 0, len(row))
	for _, v := range row {
		if v != 0 {
			tiles = append(tiles, v)
		}
	}

	result = make([]int, 0, len(row))
	for i := 0; i < len(tiles); {
		if i+1 < len(tiles) && tiles[i] == tiles[i+1] {
			val := tiles[i] * 2
			result = append(result, val)
			score += val
			merged = append(merged, val)
			i += 2
			continue
		}
		result = append(result, tiles[i])
		i++
	}

	// Pad with empty cells back to full width
	for len(result) < len(row) {
		result = append(result, 0)
	}
	return result, score, merged
}

// reverseRows returns a copy of the board with every row reversed.
func reverseRows(board Board) Board {
	out := board.Clone()
	for _, row := range out {
		slices.Reverse(row)
	}
	return out
}

// transpose returns the matrix transpose.
func transpose(board Board) Board {
	size := len(board)
	result := NewBoard(size)
	for r := range size {
		for c := range size {
			result[r][c] = board[c][r]
		}
	}
	return result
}

// orient rotates the board so that dir becomes a slide to the left.
func orient(board Board, dir Direction) Board {
	switch dir {
	case DirRight:
		return reverseRows(board)
	case DirUp:
		return transpose(board)
	case DirDown:
		return reverseRows(transpose(board))
	default:
		return board.Clone()
	}
}

// restore undoes orient.
func restore(board Board, dir Direction) Board {
	switch dir {
	case DirRight:
		return reverseRows(board)
	case DirUp:
		return transpose(board)
	case DirDown:
		return transpose(reverseRows(board))
	default:
		return board
	}
}

// Slide performs a move in the given direction without spawning a tile.
// The input board is not modified. An invalid direction is a no-op.
func Slide(board Board, dir Direction) (Board, SlideResult) {
	if !dir.Valid() {
		return board.Clone(), SlideResult{}
	}

	var res SlideResult
	rotated := orient(board, dir)
	for r, row := range rotated {
		newRow, score, merged := slideRow(row)
		if !slices.Equal(row, newRow) {
			res.Changed = true
		}
		rotated[r] = newRow
		res.Score += score
		res.Merged = append(res.Merged, merged...)
	}

	return restore(rotated, dir), res
}
