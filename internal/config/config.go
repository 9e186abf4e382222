// Package config provides YAML-based configuration loading for t2048.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Config is the application configuration.
type Config struct {
	Game    GameSection    `yaml:"game"`
	Player  PlayerSection  `yaml:"player"`
	Storage StorageSection `yaml:"storage"`
	Server  ServerSection  `yaml:"server"`
	Log     LogSection     `yaml:"log"`
}

// GameSection selects the board variant and optional overrides.
type GameSection struct {
	Variant      string `yaml:"variant"`
	BoardSize    int    `yaml:"board_size"`    // 0 = use variant
	WinTile      int    `yaml:"win_tile"`      // 0 = use variant
	InitialTiles int    `yaml:"initial_tiles"` // 0 = use variant
}

// PlayerSection holds the local player's profile defaults.
type PlayerSection struct {
	Name  string `yaml:"name"`
	Theme Theme  `yaml:"theme"`
}

// StorageSection locates the score database.
type StorageSection struct {
	Path string `yaml:"path"`
}

// ServerSection configures the SSH server.
type ServerSection struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogSection configures logging.
type LogSection struct {
	Level string `yaml:"level"`
}

// Theme names a tile color scheme.
type Theme string

const (
	ThemePastel Theme = "pastel"
	ThemeMatrix Theme = "matrix"
	ThemeNeon   Theme = "neon"
)

// Themes lists the available themes in cycling order.
var Themes = []Theme{ThemePastel, ThemeMatrix, ThemeNeon}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}

// Next returns the theme after t, wrapping around.
func (t Theme) Next() Theme {
	for i, known := range Themes {
		if t == known {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// GameConfig resolves the engine configuration for a variant.
// An empty variant falls back to the configured one, then to the default.
// Non-zero overrides in the game section win over the variant preset.
func (c Config) GameConfig(variant string) (engine.GameConfig, error) {
	if variant == "" {
		variant = c.Game.Variant
	}
	if variant == "" {
		variant = registry.DefaultID
	}

	v, err := registry.Lookup(variant)
	if err != nil {
		return engine.GameConfig{}, err
	}

	cfg := v.Config
	if c.Game.BoardSize > 0 {
		cfg.BoardSize = c.Game.BoardSize
	}
	if c.Game.WinTile > 0 {
		cfg.WinTile = c.Game.WinTile
	}
	if c.Game.InitialTiles > 0 {
		cfg.InitialTiles = c.Game.InitialTiles
	}
	return cfg, nil
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	if c.Game.Variant != "" && !registry.Exists(c.Game.Variant) {
		return fmt.Errorf("config: unknown variant %q", c.Game.Variant)
	}
	if c.Game.BoardSize != 0 && c.Game.BoardSize < 2 {
		return fmt.Errorf("config: board_size must be at least 2, got %d", c.Game.BoardSize)
	}
	if c.Game.WinTile != 0 && (c.Game.WinTile < 4 || c.Game.WinTile&(c.Game.WinTile-1) != 0) {
		return fmt.Errorf("config: win_tile must be a power of two >= 4, got %d", c.Game.WinTile)
	}
	if c.Game.InitialTiles < 0 {
		return fmt.Errorf("config: initial_tiles must not be negative, got %d", c.Game.InitialTiles)
	}
	if c.Player.Theme != "" && !c.Player.Theme.Valid() {
		return fmt.Errorf("config: unknown theme %q", c.Player.Theme)
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}
