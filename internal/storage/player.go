package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// DefaultTheme is the theme given to new players.
const DefaultTheme = "pastel"

// PlayerData is a player's persistent profile.
type PlayerData struct {
	Username     string `json:"username"`
	BestScore    int    `json:"bestScore"`
	CurrentScore int    `json:"currentScore"`
	GamesPlayed  int    `json:"gamesPlayed"`
	Theme        string `json:"theme"`
}

// SavePlayer inserts or replaces a player profile.
func (s *Store) SavePlayer(p PlayerData) error {
	if p.Username == "" {
		return errors.New("storage: player name is empty")
	}
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}

	_, err := s.db.Exec(
		`INSERT INTO players (username, best_score, current_score, games_played, theme)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(username) DO UPDATE SET
			best_score = excluded.best_score,
			current_score = excluded.current_score,
			games_played = excluded.games_played,
			theme = excluded.theme`,
		p.Username, p.BestScore, p.CurrentScore, p.GamesPlayed, p.Theme,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save player: %w", err)
	}
	return nil
}

// Player retrieves a player profile.
// The boolean is false when no such player exists.
func (s *Store) Player(username string) (PlayerData, bool, error) {
	var p PlayerData
	err := s.db.QueryRow(
		`SELECT username, best_score, current_score, games_played, theme
		 FROM players WHERE username = ?`,
		username,
	).Scan(&p.Username, &p.BestScore, &p.CurrentScore, &p.GamesPlayed, &p.Theme)

	if errors.Is(err, sql.ErrNoRows) {
		return PlayerData{}, false, nil
	}
	if err != nil {
		return PlayerData{}, false, fmt.Errorf("storage: cannot query player: %w", err)
	}
	return p, true, nil
}

// EnsurePlayer returns the stored profile, creating a fresh one if needed.
func (s *Store) EnsurePlayer(username string) (PlayerData, error) {
	p, ok, err := s.Player(username)
	if err != nil {
		return PlayerData{}, err
	}
	if ok {
		return p, nil
	}

	p = PlayerData{Username: username, Theme: DefaultTheme}
	if err := s.SavePlayer(p); err != nil {
		return PlayerData{}, err
	}
	return p, nil
}

// Players lists all stored profiles ordered by best score.
func (s *Store) Players() ([]PlayerData, error) {
	rows, err := s.db.Query(
		`SELECT username, best_score, current_score, games_played, theme
		 FROM players
		 ORDER BY best_score DESC, username`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []PlayerData
	for rows.Next() {
		var p PlayerData
		if err := rows.Scan(&p.Username, &p.BestScore, &p.CurrentScore, &p.GamesPlayed, &p.Theme); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return players, nil
}

// UpdateBestScore records the player's current score and raises the best score
// when it is exceeded. Unknown players are left untouched.
func (s *Store) UpdateBestScore(username string, score int) error {
	_, err := s.db.Exec(
		`UPDATE players
		 SET current_score = ?, best_score = MAX(best_score, ?)
		 WHERE username = ?`,
		score, score, username,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update best score: %w", err)
	}
	return nil
}

// SetTheme changes the player's theme.
func (s *Store) SetTheme(username, theme string) error {
	_, err := s.db.Exec("UPDATE players SET theme = ? WHERE username = ?", theme, username)
	if err != nil {
		return fmt.Errorf("storage: cannot set theme: %w", err)
	}
	return nil
}

// IncrementGamesPlayed bumps the player's finished-game counter.
func (s *Store) IncrementGamesPlayed(username string) error {
	_, err := s.db.Exec(
		"UPDATE players SET games_played = games_played + 1 WHERE username = ?",
		username,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot increment games played: %w", err)
	}
	return nil
}
