package instance

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/arkodev/skirmish/internal/world"
)

// Instance is one prepared or running round, bound 1:1 to a loaded
// world. The world key is its identity and never changes. All state
// transitions go through AdvanceTo; transitions on the same instance
// are serialized by its mutex.
type Instance struct {
	worldKey world.Key
	typ      *Type

	mu         sync.RWMutex
	state      State
	registered map[uuid.UUID]struct{}
}

func newInstance(key world.Key, typ *Type) *Instance {
	return &Instance{
		worldKey:   key,
		typ:        typ,
		state:      StateIdle,
		registered: make(map[uuid.UUID]struct{}),
	}
}

// WorldKey returns the key of the backing world.
func (i *Instance) WorldKey() world.Key { return i.worldKey }

// Type returns the instance's round configuration.
func (i *Instance) Type() *Type { return i.typ }

// State returns the current lifecycle state.
func (i *Instance) State() State {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.state
}

// AdvanceTo requests a transition to target. Illegal transitions are
// rejected with ErrInvalidState and leave the state unchanged.
// StateForceStop is always accepted. Returns the state the instance
// was in before the transition.
func (i *Instance) AdvanceTo(target State) (State, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	from := i.state
	if !from.canAdvanceTo(target) {
		return from, fmt.Errorf("advancing %s from %s to %s: %w",
			i.worldKey, from, target, ErrInvalidState)
	}

	i.state = target
	slog.Info("instance state changed", "world", i.worldKey, "from", from, "to", target)
	return from, nil
}

// RegisterPlayer adds a participant to this instance's round roster.
// Registration is capped by the type's max player count.
func (i *Instance) RegisterPlayer(id uuid.UUID) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.registered[id]; ok {
		return nil
	}
	if len(i.registered) >= i.typ.MaxPlayers() {
		return fmt.Errorf("instance %s is full (%d players)", i.worldKey, i.typ.MaxPlayers())
	}
	i.registered[id] = struct{}{}
	return nil
}

// UnregisterPlayer removes a participant from the roster. Removing an
// unknown participant is a no-op.
func (i *Instance) UnregisterPlayer(id uuid.UUID) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.registered, id)
}

// IsPlayerRegistered reports whether the participant is on the roster.
func (i *Instance) IsPlayerRegistered(id uuid.UUID) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.registered[id]
	return ok
}

// RegisteredCount returns the roster size.
func (i *Instance) RegisteredCount() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.registered)
}

// RegisteredPlayers returns a snapshot of the roster.
func (i *Instance) RegisteredPlayers() []uuid.UUID {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]uuid.UUID, 0, len(i.registered))
	for id := range i.registered {
		out = append(out, id)
	}
	return out
}
