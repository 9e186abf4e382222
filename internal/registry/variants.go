package registry

import "github.com/vovakirdan/tui-2048/internal/engine"

func init() {
	Register(Variant{
		ID:     "mini",
		Title:  "Mini 3x3",
		Config: engine.GameConfig{BoardSize: 3, WinTile: 256, InitialTiles: 2},
	})
	Register(Variant{
		ID:     DefaultID,
		Title:  "Classic 4x4",
		Config: engine.DefaultGameConfig(),
	})
	Register(Variant{
		ID:     "big",
		Title:  "Big 5x5",
		Config: engine.GameConfig{BoardSize: 5, WinTile: 4096, InitialTiles: 2},
	})
	Register(Variant{
		ID:     "huge",
		Title:  "Huge 6x6",
		Config: engine.GameConfig{BoardSize: 6, WinTile: 8192, InitialTiles: 3},
	})
}
