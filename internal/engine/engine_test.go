package engine

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// scriptedSpawner places queued tiles in order and counts calls.
type scriptedSpawner struct {
	queue []Placement
	calls int
}

func (s *scriptedSpawner) Spawn(board Board, count int) []Placement {
	s.calls++
	var placed []Placement
	for range count {
		if len(s.queue) == 0 {
			break
		}
		p := s.queue[0]
		s.queue = s.queue[1:]
		board[p.Row][p.Col] = p.Value
		placed = append(placed, p)
	}
	return placed
}

func tile(row, col, value int) Placement {
	return Placement{Cell: Cell{Row: row, Col: col}, Value: value}
}

// newLoadedEngine returns an engine holding board, with spawns taken from queue.
func newLoadedEngine(t *testing.T, cfg GameConfig, board Board, queue ...Placement) (*Engine, *scriptedSpawner) {
	t.Helper()
	sp := &scriptedSpawner{}
	e := New(cfg, WithSpawner(sp))
	if err := e.LoadState(GameState{Board: board}); err != nil {
		t.Fatalf("LoadState() failed: %v", err)
	}
	sp.queue = queue
	sp.calls = 0
	return e, sp
}

func TestNewAppliesDefaults(t *testing.T) {
	e := New(GameConfig{}, WithSource(NewSeededSource(1)))

	cfg := e.Config()
	if cfg != DefaultGameConfig() {
		t.Errorf("Config() = %+v, want %+v", cfg, DefaultGameConfig())
	}
	if e.Board().Size() != 4 {
		t.Errorf("board size = %d, want 4", e.Board().Size())
	}
	if got := e.Board().CountTiles(); got != 2 {
		t.Errorf("initial tiles = %d, want 2", got)
	}
	if e.Score() != 0 || e.GameOver() || e.Won() || e.CanUndo() {
		t.Errorf("fresh engine has unexpected state: %+v", e.State())
	}
	for _, row := range e.Board() {
		for _, v := range row {
			if v != 0 && v != 2 && v != 4 {
				t.Errorf("initial tile %d, want 2 or 4", v)
			}
		}
	}
}

func TestDeterministicSeed(t *testing.T) {
	e1 := New(GameConfig{}, WithSource(NewSeededSource(12345)))
	e2 := New(GameConfig{}, WithSource(NewSeededSource(12345)))

	if !e1.Board().Equal(e2.Board()) {
		t.Errorf("Same seed should produce same initial board:\n%v\nvs\n%v", e1.Board(), e2.Board())
	}

	for _, dir := range []Direction{DirLeft, DirUp, DirRight, DirDown, DirLeft} {
		e1.Move(dir)
		e2.Move(dir)
	}
	if !e1.Board().Equal(e2.Board()) || e1.Score() != e2.Score() {
		t.Errorf("Same seed and moves should produce same game")
	}
}

func TestMoveMergesAndScores(t *testing.T) {
	e, sp := newLoadedEngine(t, GameConfig{}, Board{
		{2, 2, 4, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, tile(3, 3, 2))

	if !e.Move(DirLeft) {
		t.Fatal("Move(left) should report a change")
	}

	want := Board{
		{4, 8, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 2},
	}
	if !e.Board().Equal(want) {
		t.Errorf("board after move:\n%v\nwant\n%v", e.Board(), want)
	}
	if e.Score() != 12 {
		t.Errorf("Score() = %d, want 12", e.Score())
	}
	if sp.calls != 1 {
		t.Errorf("spawner called %d times, want 1", sp.calls)
	}
}

func TestMoveNoChange(t *testing.T) {
	board := Board{
		{2, 4, 8, 16},
		{4, 8, 16, 32},
		{2, 4, 8, 16},
		{4, 8, 16, 32},
	}
	e, sp := newLoadedEngine(t, GameConfig{}, board, tile(0, 0, 2))
	if e.CanUndo() {
		t.Fatal("loaded engine should not have an undo snapshot")
	}

	if e.Move(DirLeft) {
		t.Fatal("Move(left) on a packed board should report no change")
	}
	if !e.Board().Equal(board) {
		t.Errorf("board changed on a no-op move:\n%v", e.Board())
	}
	if e.Score() != 0 || e.GameOver() || e.Won() {
		t.Errorf("no-op move altered state: %+v", e.State())
	}
	if sp.calls != 0 {
		t.Errorf("spawner called %d times on a no-op move", sp.calls)
	}

	// The snapshot is still recorded and equals the current state
	if !e.CanUndo() {
		t.Fatal("no-op move should still record an undo snapshot")
	}
	if !e.Undo() {
		t.Fatal("Undo() should succeed")
	}
	if !e.Board().Equal(board) {
		t.Errorf("undo after no-op changed the board:\n%v", e.Board())
	}
}

func TestMoveInvalidDirection(t *testing.T) {
	e, _ := newLoadedEngine(t, GameConfig{}, Board{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	if e.Move(Direction(-1)) {
		t.Error("invalid direction should not move")
	}
	if !e.CanUndo() {
		t.Error("invalid direction should still record an undo snapshot")
	}
}

func TestSpawnAfterMove(t *testing.T) {
	e := New(GameConfig{}, WithSource(NewSeededSource(99)))

	for i := range 50 {
		before := e.Board()
		next, res := Slide(before, DirLeft)
		if !res.Changed {
			next, res = Slide(before, DirUp)
			if !res.Changed {
				break
			}
			e.Move(DirUp)
		} else {
			e.Move(DirLeft)
		}

		after := e.Board()
		if got, want := after.CountTiles(), next.CountTiles()+1; got != want {
			t.Fatalf("move %d: %d tiles, want %d", i, got, want)
		}

		spawned := 0
		for r := range after {
			for c := range after[r] {
				if after[r][c] != next[r][c] {
					spawned++
					if next[r][c] != 0 || (after[r][c] != 2 && after[r][c] != 4) {
						t.Fatalf("move %d: bad spawn %d at (%d,%d)", i, after[r][c], r, c)
					}
				}
			}
		}
		if spawned != 1 {
			t.Fatalf("move %d: %d cells spawned, want 1", i, spawned)
		}
	}
}

func TestWinIsSticky(t *testing.T) {
	e, _ := newLoadedEngine(t, GameConfig{WinTile: 16}, Board{
		{8, 8, 0, 0},
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, tile(3, 3, 2), tile(3, 2, 2), tile(3, 1, 2))

	e.Move(DirLeft)
	if !e.Won() {
		t.Fatal("merging into the win tile should set won")
	}

	// Non-winning merges keep the flag
	e.Move(DirRight)
	if !e.Won() {
		t.Error("won flag was cleared by a later move")
	}

	// Undo does not restore the flag
	e.Undo()
	if !e.Won() {
		t.Error("won flag was cleared by undo")
	}
}

func TestWinAboveTarget(t *testing.T) {
	e, _ := newLoadedEngine(t, GameConfig{WinTile: 8}, Board{
		{16, 16, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	e.Move(DirLeft)
	if !e.Won() {
		t.Error("a merge above the win tile should set won")
	}
}

func TestNoWinWithoutMerge(t *testing.T) {
	// The win tile already on the board does not count until produced by a merge
	e, _ := newLoadedEngine(t, GameConfig{WinTile: 16}, Board{
		{0, 16, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	if !e.Move(DirLeft) {
		t.Fatal("Move(left) should slide the tile")
	}
	if e.Won() {
		t.Error("sliding without a merge should not set won")
	}
}

func TestGameOverAfterSpawn(t *testing.T) {
	e, _ := newLoadedEngine(t, GameConfig{BoardSize: 2}, Board{
		{4, 0},
		{2, 8},
	}, tile(0, 0, 8))

	if !e.Move(DirRight) {
		t.Fatal("Move(right) should slide the top row")
	}
	want := Board{{8, 4}, {2, 8}}
	if !e.Board().Equal(want) {
		t.Fatalf("board = \n%v want \n%v", e.Board(), want)
	}
	if !e.GameOver() {
		t.Fatal("full board with no pairs should be game over")
	}

	if !e.Undo() {
		t.Fatal("Undo() should succeed")
	}
	if e.GameOver() {
		t.Error("Undo() should clear game over")
	}
	if !e.Board().Equal(Board{{4, 0}, {2, 8}}) {
		t.Errorf("Undo() restored wrong board:\n%v", e.Board())
	}
}

func TestFullBoardWithPairIsNotGameOver(t *testing.T) {
	e, _ := newLoadedEngine(t, GameConfig{BoardSize: 2}, Board{
		{4, 0},
		{2, 8},
	}, tile(0, 0, 2))

	e.Move(DirRight)
	// Column 0 now holds 2 above 2
	if e.GameOver() {
		t.Error("full board with a vertical pair should not be game over")
	}
}

func TestGameOverCondition(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		over  bool
	}{
		{
			name: "no moves",
			board: Board{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			over: true,
		},
		{
			name: "horizontal pair",
			board: Board{
				{2, 2, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
		},
		{
			name: "vertical pair",
			board: Board{
				{2, 4, 8, 16},
				{32, 64, 128, 16},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
		},
		{
			name: "empty cell",
			board: Board{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 0, 4096},
				{8192, 16384, 32768, 65536},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := !tt.board.HasValidMoves(); got != tt.over {
				t.Errorf("game over = %v, want %v", got, tt.over)
			}
		})
	}
}

func TestUndo(t *testing.T) {
	board := Board{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	e, _ := newLoadedEngine(t, GameConfig{}, board, tile(2, 2, 4))

	if e.Undo() {
		t.Fatal("Undo() without a prior move should return false")
	}

	e.Move(DirLeft)
	if e.Score() != 4 {
		t.Fatalf("Score() = %d, want 4", e.Score())
	}

	if !e.Undo() {
		t.Fatal("first Undo() should return true")
	}
	if !e.Board().Equal(board) {
		t.Errorf("Undo() board:\n%v\nwant\n%v", e.Board(), board)
	}
	if e.Score() != 0 {
		t.Errorf("Undo() score = %d, want 0", e.Score())
	}
	if e.CanUndo() {
		t.Error("CanUndo() should be false after undo")
	}
	if e.Undo() {
		t.Error("second consecutive Undo() should return false")
	}
}

func TestRestart(t *testing.T) {
	sp := &scriptedSpawner{queue: []Placement{tile(0, 0, 2), tile(1, 1, 2)}}
	e := New(GameConfig{WinTile: 4}, WithSpawner(sp))
	e.Move(DirUp)
	e.Move(DirLeft)

	sp.queue = []Placement{tile(3, 3, 4), tile(2, 2, 2)}
	e.Restart()

	want := NewBoard(4)
	want[3][3] = 4
	want[2][2] = 2
	if !e.Board().Equal(want) {
		t.Errorf("Restart() board:\n%v\nwant\n%v", e.Board(), want)
	}
	if e.Score() != 0 || e.Won() || e.GameOver() || e.CanUndo() {
		t.Errorf("Restart() left state behind: %+v", e.State())
	}
}

func TestLoadStateRoundTrip(t *testing.T) {
	e := New(GameConfig{}, WithSource(NewSeededSource(3)))
	for _, dir := range []Direction{DirLeft, DirDown, DirRight, DirUp} {
		e.Move(dir)
	}
	state := e.State()

	other := New(GameConfig{}, WithSource(NewSeededSource(4)))
	if err := other.LoadState(state); err != nil {
		t.Fatalf("LoadState() failed: %v", err)
	}

	got := other.State()
	if !got.Board.Equal(state.Board) || got.Score != state.Score ||
		got.IsGameOver != state.IsGameOver || got.IsWon != state.IsWon {
		t.Errorf("LoadState(State()) = %+v, want %+v", got, state)
	}
	if got.CanUndo {
		t.Error("LoadState() should clear the undo buffer")
	}

	// Loading the same state again changes nothing
	if err := other.LoadState(other.State()); err != nil {
		t.Fatalf("LoadState() failed: %v", err)
	}
	if !other.Board().Equal(state.Board) {
		t.Error("LoadState() is not idempotent")
	}
}

func TestLoadStateIsDeepCopy(t *testing.T) {
	board := Board{{2, 0}, {0, 0}}
	e, _ := newLoadedEngine(t, GameConfig{BoardSize: 2}, board)
	board[0][0] = 1024

	if e.Board()[0][0] != 2 {
		t.Error("LoadState() kept a reference to the caller's board")
	}

	out := e.Board()
	out[1][1] = 64
	if e.Board()[1][1] != 0 {
		t.Error("Board() exposed internal state")
	}
}

func TestLoadStateRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		state GameState
		want  error
	}{
		{
			name:  "too few rows",
			state: GameState{Board: Board{{2, 0, 0, 0}}},
			want:  ErrBoardShape,
		},
		{
			name: "ragged row",
			state: GameState{Board: Board{
				{2, 0, 0, 0},
				{0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			}},
			want: ErrBoardShape,
		},
		{
			name: "not a power of two",
			state: GameState{Board: Board{
				{2, 0, 0, 0},
				{0, 6, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			}},
			want: ErrTileValue,
		},
		{
			name: "tile of one",
			state: GameState{Board: Board{
				{1, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			}},
			want: ErrTileValue,
		},
		{
			name: "negative score",
			state: GameState{Board: NewBoard(4), Score: -4},
			want:  ErrNegativeScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(GameConfig{}, WithSource(NewSeededSource(1)))
			e.Move(DirLeft)
			before := e.State()

			err := e.LoadState(tt.state)
			if !errors.Is(err, tt.want) {
				t.Fatalf("LoadState() error = %v, want %v", err, tt.want)
			}
			var stateErr *StateError
			if !errors.As(err, &stateErr) {
				t.Fatalf("LoadState() error %T is not *StateError", err)
			}
			after := e.State()
			if !after.Board.Equal(before.Board) || after.Score != before.Score || after.CanUndo != before.CanUndo {
				t.Error("rejected LoadState() modified the engine")
			}
		})
	}
}

func TestEndToEndFixedSpawns(t *testing.T) {
	sp := &scriptedSpawner{queue: []Placement{
		tile(0, 0, 2), tile(1, 2, 2), // initial tiles
		tile(3, 3, 2), // after first move
		tile(2, 1, 4), // after second move
	}}
	e := New(GameConfig{}, WithSpawner(sp))

	initial := Board{
		{2, 0, 0, 0},
		{0, 0, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if !e.Board().Equal(initial) {
		t.Fatalf("initial board:\n%v\nwant\n%v", e.Board(), initial)
	}

	if !e.Move(DirLeft) {
		t.Fatal("Move(left) should change the board")
	}
	afterLeft := Board{
		{2, 0, 0, 0},
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 2},
	}
	if !e.Board().Equal(afterLeft) || e.Score() != 0 {
		t.Fatalf("after left:\n%v score %d", e.Board(), e.Score())
	}

	if !e.Move(DirUp) {
		t.Fatal("Move(up) should change the board")
	}
	afterUp := Board{
		{4, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 0, 0},
	}
	if !e.Board().Equal(afterUp) {
		t.Errorf("after up:\n%v\nwant\n%v", e.Board(), afterUp)
	}
	if e.Score() != 4 {
		t.Errorf("Score() = %d, want 4", e.Score())
	}
}

func TestStats(t *testing.T) {
	e, _ := newLoadedEngine(t, GameConfig{}, Board{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	}, tile(3, 3, 2))

	st := e.Stats()
	if st.EmptyCells != 8 || st.TotalTiles != 8 || st.HighestTile != 2048 || st.Moves != 0 {
		t.Errorf("Stats() = %+v", st)
	}

	e.Move(DirLeft)
	if e.Stats().Moves != 1 {
		t.Errorf("Stats().Moves = %d after a move, want 1", e.Stats().Moves)
	}
}

func TestStatsEmptyBoard(t *testing.T) {
	e, _ := newLoadedEngine(t, GameConfig{BoardSize: 3}, NewBoard(3))
	st := e.Stats()
	if st.HighestTile != 0 || st.EmptyCells != 9 || st.TotalTiles != 0 {
		t.Errorf("Stats() on empty board = %+v", st)
	}
}

func TestCanMove(t *testing.T) {
	e, _ := newLoadedEngine(t, GameConfig{}, Board{
		{2, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	if e.CanMove(DirLeft) || e.CanMove(DirUp) {
		t.Error("tiles in the top-left corner cannot move left or up")
	}
	if !e.CanMove(DirRight) || !e.CanMove(DirDown) {
		t.Error("tiles should be able to move right and down")
	}
	if e.CanUndo() {
		t.Error("CanMove() should not touch the undo buffer")
	}
}

func TestStateJSON(t *testing.T) {
	e, _ := newLoadedEngine(t, GameConfig{BoardSize: 2}, Board{{2, 0}, {0, 1024}})

	data, err := json.Marshal(e.State())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), `"board":[[2,null],[null,1024]]`) {
		t.Errorf("unexpected JSON: %s", data)
	}
	for _, key := range []string{`"score"`, `"isGameOver"`, `"isWon"`, `"canUndo"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON missing %s: %s", key, data)
		}
	}

	var decoded GameState
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !decoded.Board.Equal(e.Board()) {
		t.Errorf("decoded board = %v, want %v", decoded.Board, e.Board())
	}

	// Zeros are accepted as empty cells too
	var zeros GameState
	if err := json.Unmarshal([]byte(`{"board":[[0,2],[4,0]],"score":8}`), &zeros); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !zeros.Board.Equal(Board{{0, 2}, {4, 0}}) || zeros.Score != 8 {
		t.Errorf("decoded = %+v", zeros)
	}
}
