package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

func seedScores(t *testing.T, store *storage.Store) {
	t.Helper()
	for _, e := range []storage.ScoreEntry{
		{Player: "ana", Variant: "classic", Score: 500, HighestTile: 64},
		{Player: "bo", Variant: "classic", Score: 900, HighestTile: 128, Won: true},
		{Player: "ana", Variant: "classic", Score: 200, HighestTile: 32},
		{Player: "ana", Variant: "big", Score: 100, HighestTile: 16},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
}

func scoreboardStep(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sb
}

func TestScoreboardRowsAndStats(t *testing.T) {
	store := openStore(t)
	seedScores(t, store)

	m := NewScoreboardModel(store, "ana", "classic", 100, 30)
	if m.variant().ID != "classic" {
		t.Fatalf("scoreboard opened on %s", m.variant().ID)
	}

	rows := m.table.Rows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "" || rows[0][2] != "bo" || rows[0][3] != "900" || rows[0][5] != "yes" {
		t.Errorf("first row = %v", rows[0])
	}
	if rows[1][0] != ownRowMark || rows[1][2] != "ana" {
		t.Errorf("own row should be marked: %v", rows[1])
	}

	if m.stats.GamesCount != 3 || m.stats.Wins != 1 || m.stats.BestTile != 128 {
		t.Errorf("stats = %+v", m.stats)
	}
	view := m.View()
	for _, want := range []string{"3 games", "1 wins", "best 900", "top tile 128"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestScoreboardMineOnly(t *testing.T) {
	store := openStore(t)
	seedScores(t, store)

	m := NewScoreboardModel(store, "ana", "classic", 100, 30)
	m = scoreboardStep(t, m, runeKey("m"))

	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Ranks keep their leaderboard position
	if rows[0][1] != "#2" || rows[1][1] != "#3" {
		t.Errorf("ranks = %s, %s; want #2, #3", rows[0][1], rows[1][1])
	}
	for _, r := range rows {
		if r[2] != "ana" {
			t.Errorf("row for %s shown in my games", r[2])
		}
	}

	// The filter follows variant changes
	m = scoreboardStep(t, m, typeKey(tea.KeyRight))
	if m.variant().ID != "big" || len(m.table.Rows()) != 1 {
		t.Errorf("big: %d rows", len(m.table.Rows()))
	}

	m = scoreboardStep(t, m, runeKey("m"))
	m = scoreboardStep(t, m, typeKey(tea.KeyLeft))
	if len(m.table.Rows()) != 3 {
		t.Errorf("toggling back should show all rows, got %d", len(m.table.Rows()))
	}
}

func TestScoreboardSwitchVariants(t *testing.T) {
	store := openStore(t)
	seedScores(t, store)

	m := NewScoreboardModel(store, "ana", "classic", 100, 30)

	tests := []struct {
		key  tea.KeyMsg
		want string
		rows int
	}{
		{typeKey(tea.KeyTab), "big", 1},
		{typeKey(tea.KeyLeft), "classic", 3},
		{typeKey(tea.KeyLeft), "mini", 0},
		{typeKey(tea.KeyShiftTab), "huge", 0},
		{runeKey("l"), "mini", 0},
	}
	for _, tt := range tests {
		m = scoreboardStep(t, m, tt.key)
		if m.variant().ID != tt.want || len(m.table.Rows()) != tt.rows {
			t.Errorf("after %s: variant %s with %d rows, want %s with %d",
				tt.key, m.variant().ID, len(m.table.Rows()), tt.want, tt.rows)
		}
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, "ana", "classic", 80, 24)

	back, cmd := m.Update(typeKey(tea.KeyEsc))
	if !back.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("esc should go back")
	}
	quit, cmd := m.Update(runeKey("q"))
	if !quit.(ScoreboardModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "ana", "", 60, 20)
	if len(m.table.Rows()) != 0 {
		t.Error("scoreboard without store should be empty")
	}
	view := m.View()
	if !strings.Contains(view, "No scores recorded yet.") || !strings.Contains(view, "no games played") {
		t.Errorf("View() = %q", view)
	}
}
