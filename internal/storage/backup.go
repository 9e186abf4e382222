package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// BackupVersion is the format version written by Export.
const BackupVersion = 1

// Backup is the JSON document produced by Export and consumed by Import.
type Backup struct {
	Version    int          `json:"version"`
	ExportedAt time.Time    `json:"exportedAt"`
	Players    []PlayerData `json:"players"`
	Games      []SavedGame  `json:"games"`
	Scores     []ScoreEntry `json:"scores"`
}

// Export renders every player, saved game and score as indented JSON.
// It fails rather than leave out a saved game it cannot decode.
func (s *Store) Export() ([]byte, error) {
	players, err := s.Players()
	if err != nil {
		return nil, err
	}
	games, err := s.savedGames(true)
	if err != nil {
		return nil, err
	}
	scores, err := s.AllScores()
	if err != nil {
		return nil, err
	}

	backup := Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Players:    players,
		Games:      games,
		Scores:     scores,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot encode backup: %w", err)
	}
	return data, nil
}

// Import replaces the database contents with a backup produced by Export.
// Nothing is changed if the backup cannot be decoded or applied.
func (s *Store) Import(data []byte) error {
	var backup Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("storage: cannot decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return fmt.Errorf("storage: unsupported backup version %d", backup.Version)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := clearTables(tx); err != nil {
		return err
	}

	for _, p := range backup.Players {
		if p.Username == "" {
			return errors.New("storage: backup contains a player without a name")
		}
		if p.Theme == "" {
			p.Theme = DefaultTheme
		}
		if _, err := tx.Exec(
			`INSERT INTO players (username, best_score, current_score, games_played, theme)
			 VALUES (?, ?, ?, ?, ?)`,
			p.Username, p.BestScore, p.CurrentScore, p.GamesPlayed, p.Theme,
		); err != nil {
			return fmt.Errorf("storage: cannot import player %s: %w", p.Username, err)
		}
	}

	for _, g := range backup.Games {
		state, err := json.Marshal(g.State)
		if err != nil {
			return fmt.Errorf("storage: cannot encode game state: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO game_states (slot, state, updated_at) VALUES (?, ?, ?)",
			g.Slot, string(state), formatTime(g.UpdatedAt),
		); err != nil {
			return fmt.Errorf("storage: cannot import game %s: %w", g.Slot, err)
		}
	}

	for _, e := range backup.Scores {
		if e.GameID == "" {
			return errors.New("storage: backup contains a score without a game id")
		}
		if _, err := tx.Exec(
			`INSERT INTO scores (game_id, player, variant, score, highest_tile, won, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.GameID, e.Player, e.Variant, e.Score, e.HighestTile, e.Won, formatTime(e.CreatedAt),
		); err != nil {
			return fmt.Errorf("storage: cannot import score %s: %w", e.GameID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}
