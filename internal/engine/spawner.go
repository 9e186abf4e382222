package engine

import "math/rand/v2"

// spawn2Prob is the chance that a spawned tile is a 2 rather than a 4.
const spawn2Prob = 0.9

// Source is the uniform random generator used to spawn tiles.
// *rand.Rand from math/rand/v2 satisfies it; tests plug in fixed sequences.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// Placement records a tile placed by a Spawner.
type Placement struct {
	Cell
	Value int
}

// Spawner places new tiles on a board.
type Spawner interface {
	// Spawn places up to count tiles on empty cells of board, modifying it
	// in place, and returns what it placed.
	Spawn(board Board, count int) []Placement
}

// RandomSpawner picks empty cells uniformly without replacement and places
// a 2 (90%) or a 4 (10%) on each.
type RandomSpawner struct {
	src Source
}

// NewRandomSpawner creates a spawner drawing from src.
func NewRandomSpawner(src Source) *RandomSpawner {
	return &RandomSpawner{src: src}
}

// NewSeededSource returns a deterministic source for the given seed.
func NewSeededSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// newTimeSource returns a source seeded from the runtime's global generator.
func newTimeSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Spawn implements Spawner.
func (s *RandomSpawner) Spawn(board Board, count int) []Placement {
	empty := board.EmptyCells()
	n := min(count, len(empty))

	placed := make([]Placement, 0, max(n, 0))
	for range n {
		idx := s.src.IntN(len(empty))
		cell := empty[idx]
		// Drop the chosen cell so it can't be drawn twice
		empty = append(empty[:idx], empty[idx+1:]...)

		value := 2
		if s.src.Float64() >= spawn2Prob {
			value = 4
		}
		board[cell.Row][cell.Col] = value
		placed = append(placed, Placement{Cell: cell, Value: value})
	}
	return placed
}
