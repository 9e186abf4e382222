package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// SavedGame is a stored game snapshot together with its slot.
type SavedGame struct {
	Slot      string           `json:"slot"`
	State     engine.GameState `json:"state"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// SlotFor names the save slot of a player's game on a variant.
func SlotFor(player, variant string) string {
	return player + "/" + variant
}

// SaveGameState stores the snapshot in the slot, replacing any previous one.
func (s *Store) SaveGameState(slot string, state engine.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("storage: cannot encode game state: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO game_states (slot, state, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		slot, string(data), formatTime(time.Time{}),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game state: %w", err)
	}
	return nil
}

// LastGameState returns the snapshot stored in the slot.
// The boolean is false when the slot is empty; undecodable data is an error.
func (s *Store) LastGameState(slot string) (engine.GameState, bool, error) {
	var raw string
	err := s.db.QueryRow("SELECT state FROM game_states WHERE slot = ?", slot).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.GameState{}, false, nil
	}
	if err != nil {
		return engine.GameState{}, false, fmt.Errorf("storage: cannot query game state: %w", err)
	}

	var state engine.GameState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return engine.GameState{}, false, fmt.Errorf("storage: cannot decode game state: %w", err)
	}
	return state, true, nil
}

// ClearGameState removes the slot's snapshot.
func (s *Store) ClearGameState(slot string) error {
	if _, err := s.db.Exec("DELETE FROM game_states WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot clear game state: %w", err)
	}
	return nil
}

// SavedGames lists every stored snapshot, skipping undecodable ones.
func (s *Store) SavedGames() ([]SavedGame, error) {
	return s.savedGames(false)
}

// savedGames reads every slot. With strict set an undecodable snapshot is
// an error naming its slot.
func (s *Store) savedGames(strict bool) ([]SavedGame, error) {
	rows, err := s.db.Query("SELECT slot, state, updated_at FROM game_states ORDER BY slot")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game states: %w", err)
	}
	defer rows.Close()

	var games []SavedGame
	for rows.Next() {
		var g SavedGame
		var raw string
		var updatedAt any
		if err := rows.Scan(&g.Slot, &raw, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &g.State); err != nil {
			if strict {
				return nil, fmt.Errorf("storage: cannot decode game state in slot %s: %w", g.Slot, err)
			}
			continue
		}
		g.UpdatedAt = parseTime(updatedAt)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return games, nil
}
