package engine

// Defaults applied to zero GameConfig fields.
const (
	DefaultBoardSize    = 4
	DefaultWinTile      = 2048
	DefaultInitialTiles = 2
)

// GameConfig is the per-session game configuration.
// It is fixed when an Engine is created.
type GameConfig struct {
	BoardSize    int `yaml:"board_size" json:"boardSize"`
	WinTile      int `yaml:"win_tile" json:"winTile"`
	InitialTiles int `yaml:"initial_tiles" json:"initialTiles"`
}

// DefaultGameConfig returns the classic 4x4 configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		BoardSize:    DefaultBoardSize,
		WinTile:      DefaultWinTile,
		InitialTiles: DefaultInitialTiles,
	}
}

// WithDefaults returns a copy with zero or negative fields replaced by defaults.
func (c GameConfig) WithDefaults() GameConfig {
	if c.BoardSize <= 0 {
		c.BoardSize = DefaultBoardSize
	}
	if c.WinTile <= 0 {
		c.WinTile = DefaultWinTile
	}
	if c.InitialTiles <= 0 {
		c.InitialTiles = DefaultInitialTiles
	}
	return c
}
