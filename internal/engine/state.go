package engine

import (
	"errors"
	"fmt"
)

// GameState is a serializable snapshot of an engine.
type GameState struct {
	Board      Board `json:"board"`
	Score      int   `json:"score"`
	IsGameOver bool  `json:"isGameOver"`
	IsWon      bool  `json:"isWon"`
	CanUndo    bool  `json:"canUndo"`
}

// Stats summarizes the current board.
type Stats struct {
	EmptyCells  int `json:"emptyCells"`
	TotalTiles  int `json:"totalTiles"`
	HighestTile int `json:"highestTile"`
	Moves       int `json:"moves"` // 1 while an undo snapshot is held, else 0
}

// Persistence stores and retrieves game snapshots.
// Implementations absorb their own I/O failures: Load reports false when
// nothing usable is stored, and Save never fails loudly.
type Persistence interface {
	Save(state GameState)
	Load() (GameState, bool)
}

// Sentinel errors reported by LoadState.
var (
	ErrBoardShape    = errors.New("board shape does not match configuration")
	ErrTileValue     = errors.New("tile is not a power of two")
	ErrNegativeScore = errors.New("score is negative")
)

// StateError describes why a snapshot was rejected.
type StateError struct {
	Err    error
	Row    int
	Col    int
	Detail string
}

func (e *StateError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("engine: invalid state: %v (%s)", e.Err, e.Detail)
	}
	return fmt.Sprintf("engine: invalid state: %v", e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// Validate checks the snapshot against a board size.
func (s GameState) Validate(size int) error {
	if len(s.Board) != size {
		return &StateError{
			Err:    ErrBoardShape,
			Row:    -1,
			Col:    -1,
			Detail: fmt.Sprintf("%d rows, want %d", len(s.Board), size),
		}
	}
	for r, row := range s.Board {
		if len(row) != size {
			return &StateError{
				Err:    ErrBoardShape,
				Row:    r,
				Col:    -1,
				Detail: fmt.Sprintf("row %d has %d cells, want %d", r, len(row), size),
			}
		}
		for c, v := range row {
			if v != 0 && !isTileValue(v) {
				return &StateError{
					Err:    ErrTileValue,
					Row:    r,
					Col:    c,
					Detail: fmt.Sprintf("cell (%d,%d) = %d", r, c, v),
				}
			}
		}
	}
	if s.Score < 0 {
		return &StateError{Err: ErrNegativeScore, Row: -1, Col: -1, Detail: fmt.Sprintf("score %d", s.Score)}
	}
	return nil
}
