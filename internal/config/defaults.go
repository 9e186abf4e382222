package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-2048/internal/registry"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameSection{
			Variant: registry.DefaultID,
		},
		Player: PlayerSection{
			Theme: ThemePastel,
		},
		Storage: StorageSection{
			Path: "~/.t2048/t2048.db",
		},
		Server: ServerSection{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogSection{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
