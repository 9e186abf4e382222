// Package engine implements the 2048 board engine: sliding and merging
// tiles, spawning new ones, single-level undo and terminal-state detection.
// It has no I/O and no ambient dependencies; randomness and persistence are
// supplied by the caller.
package engine

// Engine owns a board, its score and terminal flags.
// It is not safe for concurrent use; the owner serializes calls.
type Engine struct {
	cfg     GameConfig
	spawner Spawner

	board    Board
	score    int
	gameOver bool
	won      bool

	// Undo snapshot, nil when absent
	prevBoard Board
	prevScore int
}

// Option configures an Engine.
type Option func(*Engine)

// WithSpawner overrides the tile spawner.
func WithSpawner(s Spawner) Option {
	return func(e *Engine) {
		e.spawner = s
	}
}

// WithSource uses a RandomSpawner drawing from src.
func WithSource(src Source) Option {
	return func(e *Engine) {
		e.spawner = NewRandomSpawner(src)
	}
}

// New creates an engine and seeds it with cfg.InitialTiles tiles.
func New(cfg GameConfig, opts ...Option) *Engine {
	e := &Engine{cfg: cfg.WithDefaults()}
	for _, opt := range opts {
		opt(e)
	}
	if e.spawner == nil {
		e.spawner = NewRandomSpawner(newTimeSource())
	}
	e.Restart()
	return e
}

// Restart resets to a freshly seeded board, clearing score, flags and undo.
func (e *Engine) Restart() {
	e.board = NewBoard(e.cfg.BoardSize)
	e.score = 0
	e.gameOver = false
	e.won = false
	e.prevBoard = nil
	e.prevScore = 0
	e.spawner.Spawn(e.board, e.cfg.InitialTiles)
}

// Move slides the board in dir. It reports whether the board changed.
// The undo snapshot is always replaced with the pre-call state, even when
// nothing moved.
func (e *Engine) Move(dir Direction) bool {
	e.prevBoard = e.board.Clone()
	e.prevScore = e.score

	next, res := Slide(e.board, dir)
	if !res.Changed {
		return false
	}

	e.board = next
	e.score += res.Score
	e.spawner.Spawn(e.board, 1)

	for _, v := range res.Merged {
		if v >= e.cfg.WinTile {
			e.won = true
			break
		}
	}

	if len(e.board.EmptyCells()) == 0 && !e.board.HasAdjacentPair() {
		e.gameOver = true
	}

	return true
}

// CanMove reports whether moving in dir would change the board.
func (e *Engine) CanMove(dir Direction) bool {
	_, res := Slide(e.board, dir)
	return res.Changed
}

// Undo restores the board and score from before the last Move.
// The won flag is kept. Returns false if there is nothing to undo.
func (e *Engine) Undo() bool {
	if e.prevBoard == nil {
		return false
	}
	e.board = e.prevBoard
	e.score = e.prevScore
	e.prevBoard = nil
	e.gameOver = false
	return true
}

// LoadState replaces the engine state with a snapshot.
// The undo buffer is cleared. Malformed snapshots are rejected with a
// *StateError and leave the engine untouched.
func (e *Engine) LoadState(state GameState) error {
	if err := state.Validate(e.cfg.BoardSize); err != nil {
		return err
	}
	e.board = state.Board.Clone()
	e.score = state.Score
	e.gameOver = state.IsGameOver
	e.won = state.IsWon
	e.prevBoard = nil
	e.prevScore = 0
	return nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() GameConfig {
	return e.cfg
}

// Board returns a copy of the current board.
func (e *Engine) Board() Board {
	return e.board.Clone()
}

// Score returns the cumulative score.
func (e *Engine) Score() int {
	return e.score
}

// GameOver reports whether no move is possible.
func (e *Engine) GameOver() bool {
	return e.gameOver
}

// Won reports whether the win tile has been reached. Once set it stays set.
func (e *Engine) Won() bool {
	return e.won
}

// CanUndo reports whether an undo snapshot is held.
func (e *Engine) CanUndo() bool {
	return e.prevBoard != nil
}

// State returns a snapshot of the engine.
func (e *Engine) State() GameState {
	return GameState{
		Board:      e.Board(),
		Score:      e.score,
		IsGameOver: e.gameOver,
		IsWon:      e.won,
		CanUndo:    e.CanUndo(),
	}
}

// Stats returns board statistics.
func (e *Engine) Stats() Stats {
	empty := len(e.board.EmptyCells())
	moves := 0
	if e.CanUndo() {
		moves = 1
	}
	return Stats{
		EmptyCells:  empty,
		TotalTiles:  e.cfg.BoardSize*e.cfg.BoardSize - empty,
		HighestTile: e.board.MaxTile(),
		Moves:       moves,
	}
}
