// Package instance implements the arena round lifecycle: the registry
// of live instances, their state machines and the create/start/end/
// unload protocol.
package instance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/arkodev/skirmish/internal/model"
	"github.com/arkodev/skirmish/internal/world"
)

// Provider supplies world load/unload and occupant movement.
// Implemented by world.Manager.
type Provider interface {
	LoadWorld(ctx context.Context, key world.Key) (*world.World, error)
	World(key world.Key) (*world.World, bool)
	UnloadWorld(ctx context.Context, key world.Key) (bool, error)
	Occupants(w *world.World) []*model.Participant
	Relocate(p *model.Participant, dest *world.World, at model.Point) error
}

// Manager owns the world-key → Instance registry. At most one instance
// exists per world key; creation and unload for a given key are
// serialized by a key-scoped lock so operations on unrelated keys run
// in parallel.
type Manager struct {
	provider  Provider
	lobbyKey  world.Key
	maxExtent int32

	mu        sync.RWMutex
	instances map[world.Key]*Instance

	createMu    sync.Mutex
	createLocks map[world.Key]*sync.Mutex

	obsMu     sync.RWMutex
	observers []Observer
}

// NewManager creates a lifecycle manager. lobbyKey names the world
// occupants are evicted to during unload; maxExtent is the hard border
// diameter ceiling for arena worlds.
func NewManager(provider Provider, lobbyKey world.Key, maxExtent int32) *Manager {
	return &Manager{
		provider:    provider,
		lobbyKey:    lobbyKey,
		maxExtent:   maxExtent,
		instances:   make(map[world.Key]*Instance),
		createLocks: make(map[world.Key]*sync.Mutex),
	}
}

// AddObserver registers a lifecycle observer.
func (m *Manager) AddObserver(o Observer) {
	m.obsMu.Lock()
	defer m.obsMu.Unlock()
	m.observers = append(m.observers, o)
}

// CreateInstance loads the world for key, validates it, and registers a
// new idle instance bound to it. With force set, an existing idle
// instance for the same key is replaced; a non-idle one is never
// touched. The type's generation pipeline runs before the instance is
// returned; a pipeline failure rolls the registry entry back.
func (m *Manager) CreateInstance(ctx context.Context, key world.Key, typ *Type, force bool) (*Instance, error) {
	if key == "" {
		return nil, errors.New("key must not be empty")
	}
	if typ == nil {
		return nil, errors.New("type must not be nil")
	}

	// Serialize lifecycle operations per key. The world load below
	// suspends, so a registry-wide lock here would stall unrelated
	// arenas.
	unlock := m.lockKey(key)
	defer unlock()

	w, err := m.provider.LoadWorld(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("creating instance %s: %w", key, err)
	}

	// Safety ceiling, keeps a misconfigured world from hanging the server.
	if w.Extent() >= m.maxExtent {
		return nil, fmt.Errorf("creating instance %s: extent %d: %w", key, w.Extent(), ErrWorldTooLarge)
	}

	// Round terrain is throwaway; persist metadata only.
	w.SetSerializationMode(world.SerializationMetadataOnly)

	inst := newInstance(w.Key(), typ)

	m.mu.Lock()
	prev, replaced := m.instances[w.Key()]
	if replaced {
		if !force {
			m.mu.Unlock()
			return nil, fmt.Errorf("creating instance %s: %w", key, ErrAlreadyExists)
		}
		if st := prev.State(); st != StateIdle {
			m.mu.Unlock()
			return nil, fmt.Errorf("creating instance %s: existing instance is %s: %w", key, st, ErrInvalidState)
		}
	}
	m.instances[w.Key()] = inst
	m.mu.Unlock()

	if err := typ.Pipeline().Mutate(ctx, w); err != nil {
		// Roll back so the registry never exposes a half-mutated instance.
		m.mu.Lock()
		if cur, ok := m.instances[w.Key()]; ok && cur == inst {
			delete(m.instances, w.Key())
		}
		m.mu.Unlock()
		return nil, fmt.Errorf("creating instance %s: %w: %w", key, ErrMutationFailed, err)
	}

	m.notifyCreated(inst)
	slog.Info("instance created", "world", w.Key(), "type", typ.ID(), "replaced", replaced)
	return inst, nil
}

// StartInstance moves the instance for key into the countdown phase.
func (m *Manager) StartInstance(key world.Key) error {
	return m.advance(key, StatePreStart)
}

// EndInstance stops the instance for key: immediately when force is
// set, otherwise as a graceful wind-down.
func (m *Manager) EndInstance(key world.Key, force bool) error {
	if force {
		return m.advance(key, StateForceStop)
	}
	return m.advance(key, StatePreEnd)
}

func (m *Manager) advance(key world.Key, target State) error {
	m.mu.RLock()
	inst, ok := m.instances[key]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("advancing %s to %s: %w", key, target, ErrUnknownInstance)
	}

	from, err := inst.AdvanceTo(target)
	if err != nil {
		return err
	}
	m.notifyStateChanged(inst, from, target)
	return nil
}

// UnloadInstance tears down the instance for key: every occupant of the
// backing world is moved to the lobby (registered players get their
// gameplay state reset first), the registry entry is removed, observers
// are notified, and only then is the world unload issued. Unloading a
// key with no live instance succeeds without side effects.
func (m *Manager) UnloadInstance(ctx context.Context, key world.Key) (bool, error) {
	// Hold the key's creation lock across the whole teardown. Eviction
	// suspends on provider calls; without the lock a force-create could
	// replace the idle instance mid-eviction and the removal below
	// would delete the replacement.
	unlock := m.lockKey(key)
	defer unlock()

	m.mu.RLock()
	inst, ok := m.instances[key]
	m.mu.RUnlock()
	if !ok {
		return true, nil
	}

	w, loaded := m.provider.World(inst.WorldKey())
	if loaded {
		// All-or-nothing gate: with no lobby there is nowhere to put
		// occupants, so nothing past this point may run.
		lobby, ok := m.provider.World(m.lobbyKey)
		if !ok {
			return false, fmt.Errorf("unloading %s: %w", key, ErrLobbyUnavailable)
		}

		for _, p := range m.provider.Occupants(w) {
			if inst.IsPlayerRegistered(p.ID()) {
				p.Reset()
			}
			// Best effort per occupant: one failed move must not strand
			// the rest.
			if err := m.provider.Relocate(p, lobby, lobby.Spawn()); err != nil {
				slog.Warn("failed to move occupant to lobby",
					"world", key, "participant", p.ID(), "err", err)
			}
		}
	}

	// Remove before issuing the unload so no lookup observes an entry
	// whose world is mid-teardown.
	m.mu.Lock()
	delete(m.instances, inst.WorldKey())
	m.mu.Unlock()

	m.notifyRemoved(inst)

	if loaded {
		ok, err := m.provider.UnloadWorld(ctx, w.Key())
		if err != nil {
			return ok, fmt.Errorf("unloading %s: %w", key, err)
		}
		slog.Info("instance unloaded", "world", key)
		return ok, nil
	}
	return true, nil
}

// GetInstance returns the live instance for key, if any.
func (m *Manager) GetInstance(key world.Key) (*Instance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.instances[key]
	return inst, ok
}

// All returns a snapshot of all live instances.
func (m *Manager) All() []*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Instance, 0, len(m.instances))
	for _, inst := range m.instances {
		out = append(out, inst)
	}
	return out
}

// lockKey acquires the lifecycle lock for key and returns its unlock.
func (m *Manager) lockKey(key world.Key) func() {
	m.createMu.Lock()
	l, ok := m.createLocks[key]
	if !ok {
		l = &sync.Mutex{}
		m.createLocks[key] = l
	}
	m.createMu.Unlock()

	l.Lock()
	return l.Unlock
}
