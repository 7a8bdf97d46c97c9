package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/arkodev/skirmish/internal/model"
)

var (
	ErrUnknownWorld   = errors.New("world key is not defined")
	ErrAlreadyLoading = errors.New("world load already in progress")
	ErrNotLoaded      = errors.New("world is not loaded")
)

// Definition describes a world known to the manager but not necessarily
// loaded. Definitions come from configuration.
type Definition struct {
	Key    Key
	Extent int32
	Spawn  model.Point
}

// Manager owns the set of loaded worlds. Load and unload are modeled as
// asynchronous operations: they respect ctx cancellation and may be
// invoked from any goroutine.
type Manager struct {
	mu      sync.Mutex
	defs    map[Key]Definition
	worlds  map[Key]*World
	loading map[Key]struct{}
}

// NewManager creates a manager over the given world definitions.
func NewManager(defs []Definition) *Manager {
	m := &Manager{
		defs:    make(map[Key]Definition, len(defs)),
		worlds:  make(map[Key]*World),
		loading: make(map[Key]struct{}),
	}
	for _, d := range defs {
		m.defs[d.Key] = d
	}
	return m
}

// LoadWorld loads the world for key. An already loaded world is
// returned as-is; a concurrent load for the same key fails with
// ErrAlreadyLoading, and an undefined key with ErrUnknownWorld.
func (m *Manager) LoadWorld(ctx context.Context, key Key) (*World, error) {
	m.mu.Lock()
	def, ok := m.defs[key]
	if !ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("loading %s: %w", key, ErrUnknownWorld)
	}
	if w, ok := m.worlds[key]; ok {
		m.mu.Unlock()
		return w, nil
	}
	if _, ok := m.loading[key]; ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("loading %s: %w", key, ErrAlreadyLoading)
	}
	m.loading[key] = struct{}{}
	m.mu.Unlock()

	// Terrain IO happens here in a full storage backend; keep the
	// suspension point so callers stay ctx-aware.
	select {
	case <-ctx.Done():
		m.mu.Lock()
		delete(m.loading, key)
		m.mu.Unlock()
		return nil, fmt.Errorf("loading %s: %w", key, ctx.Err())
	default:
	}

	w := newWorld(def)

	m.mu.Lock()
	delete(m.loading, key)
	m.worlds[key] = w
	m.mu.Unlock()

	slog.Info("world loaded", "key", key, "extent", def.Extent)
	return w, nil
}

// World returns the loaded world for key, if any.
func (m *Manager) World(key Key) (*World, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.worlds[key]
	return w, ok
}

// UnloadWorld unloads the world for key. Unloading a world that is not
// loaded reports success without side effects.
func (m *Manager) UnloadWorld(ctx context.Context, key Key) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("unloading %s: %w", key, err)
	}

	m.mu.Lock()
	w, ok := m.worlds[key]
	if !ok {
		m.mu.Unlock()
		return true, nil
	}
	delete(m.worlds, key)
	m.mu.Unlock()

	slog.Info("world unloaded", "key", key, "occupants_left", w.OccupantCount())
	return true, nil
}

// Occupants returns everyone currently in w.
func (m *Manager) Occupants(w *World) []*model.Participant {
	return w.Occupants()
}

// Relocate moves a participant into dest at the given point, removing
// them from whatever world they were in before.
func (m *Manager) Relocate(p *model.Participant, dest *World, at model.Point) error {
	if dest == nil {
		return ErrNotLoaded
	}

	m.mu.Lock()
	prev, hadPrev := m.worlds[Key(p.WorldKey())]
	m.mu.Unlock()

	if hadPrev && prev != dest {
		prev.removeOccupant(p.ID())
	}
	dest.addOccupant(p)
	p.SetWorld(dest.Key().String(), at)
	return nil
}

// Loaded returns the keys of all currently loaded worlds.
func (m *Manager) Loaded() []Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]Key, 0, len(m.worlds))
	for k := range m.worlds {
		keys = append(keys, k)
	}
	return keys
}
