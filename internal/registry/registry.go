// Package registry provides a global registry of board variants.
// Variants register themselves in init() functions, allowing the CLI and the
// SSH server to offer them by name without hardcoding board parameters.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Variant is a named board preset.
type Variant struct {
	ID     string
	Title  string
	Config engine.GameConfig
}

// DefaultID is the variant used when none is requested.
const DefaultID = "classic"

var (
	variants = make(map[string]Variant)
	mu       sync.RWMutex
)

// Register adds a variant to the registry.
// Panics if a variant with the same ID is already registered.
func Register(v Variant) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := variants[v.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", v.ID))
	}

	v.Config = v.Config.WithDefaults()
	variants[v.ID] = v
}

// List returns all registered variants, sorted by board size then ID.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		result = append(result, v)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Config.BoardSize != result[j].Config.BoardSize {
			return result[i].Config.BoardSize < result[j].Config.BoardSize
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the variant with the given ID.
// Returns an error if the ID is not registered.
func Lookup(id string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	v, ok := variants[id]
	if !ok {
		return Variant{}, fmt.Errorf("registry: unknown variant %q", id)
	}

	return v, nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}
