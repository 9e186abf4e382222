package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Persistence stores one game slot in a Store.
// Failures are logged and absorbed.
type Persistence struct {
	store  *Store
	slot   string
	logger *log.Logger
}

var _ engine.Persistence = (*Persistence)(nil)

// NewPersistence returns a Persistence for the slot.
// A nil logger uses the default charmbracelet logger.
func NewPersistence(store *Store, slot string, logger *log.Logger) *Persistence {
	if logger == nil {
		logger = log.Default()
	}
	return &Persistence{store: store, slot: slot, logger: logger}
}

// Save stores the snapshot, logging any failure.
func (p *Persistence) Save(state engine.GameState) {
	if p.store == nil {
		return
	}
	if err := p.store.SaveGameState(p.slot, state); err != nil {
		p.logger.Warn("save game failed", "slot", p.slot, "err", err)
	}
}

// Load returns the stored snapshot. It reports false when nothing is
// stored or the stored data cannot be read.
func (p *Persistence) Load() (engine.GameState, bool) {
	if p.store == nil {
		return engine.GameState{}, false
	}
	state, ok, err := p.store.LastGameState(p.slot)
	if err != nil {
		p.logger.Warn("load game failed", "slot", p.slot, "err", err)
		return engine.GameState{}, false
	}
	return state, ok
}

// Clear forgets the stored snapshot.
func (p *Persistence) Clear() {
	if p.store == nil {
		return
	}
	if err := p.store.ClearGameState(p.slot); err != nil {
		p.logger.Warn("clear game failed", "slot", p.slot, "err", err)
	}
}
