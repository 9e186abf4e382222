package storage

import (
	"testing"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

func sampleState() engine.GameState {
	return engine.GameState{
		Board: engine.Board{
			{2, 0, 0, 4},
			{0, 0, 0, 0},
			{0, 8, 0, 0},
			{0, 0, 0, 2048},
		},
		Score:   1234,
		IsWon:   true,
		CanUndo: true,
	}
}

func TestGameStateRoundTrip(t *testing.T) {
	store := openTestStore(t)
	slot := SlotFor("ana", "classic")

	_, ok, err := store.LastGameState(slot)
	if err != nil {
		t.Fatalf("LastGameState() failed: %v", err)
	}
	if ok {
		t.Fatal("LastGameState() should be empty before saving")
	}

	want := sampleState()
	if err := store.SaveGameState(slot, want); err != nil {
		t.Fatalf("SaveGameState() failed: %v", err)
	}

	got, ok, err := store.LastGameState(slot)
	if err != nil || !ok {
		t.Fatalf("LastGameState() = %v, %v", ok, err)
	}
	if !got.Board.Equal(want.Board) || got.Score != want.Score || got.IsWon != want.IsWon ||
		got.IsGameOver != want.IsGameOver || got.CanUndo != want.CanUndo {
		t.Errorf("LastGameState() = %+v, want %+v", got, want)
	}

	// Saving again replaces the slot
	want.Score = 2000
	if err := store.SaveGameState(slot, want); err != nil {
		t.Fatalf("SaveGameState() failed: %v", err)
	}
	got, _, _ = store.LastGameState(slot)
	if got.Score != 2000 {
		t.Errorf("Score = %d, want 2000", got.Score)
	}

	if err := store.ClearGameState(slot); err != nil {
		t.Fatalf("ClearGameState() failed: %v", err)
	}
	if _, ok, _ := store.LastGameState(slot); ok {
		t.Error("LastGameState() should be empty after clear")
	}
}

func TestGameStateSlotsAreIndependent(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveGameState(SlotFor("ana", "classic"), sampleState()); err != nil {
		t.Fatalf("SaveGameState() failed: %v", err)
	}

	for _, slot := range []string{SlotFor("ana", "mini"), SlotFor("bo", "classic")} {
		if _, ok, _ := store.LastGameState(slot); ok {
			t.Errorf("slot %s should be empty", slot)
		}
	}
}

func TestGameStateCorrupted(t *testing.T) {
	store := openTestStore(t)
	slot := SlotFor("ana", "classic")

	if _, err := store.db.Exec("INSERT INTO game_states (slot, state) VALUES (?, ?)", slot, "{not json"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if _, ok, err := store.LastGameState(slot); err == nil || ok {
		t.Errorf("LastGameState() = %v, %v; want decode error", ok, err)
	}

	games, err := store.SavedGames()
	if err != nil {
		t.Fatalf("SavedGames() failed: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("SavedGames() should skip corrupted rows, got %d", len(games))
	}
}
