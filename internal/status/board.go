// Package status keeps the lobby-facing status board: one line per
// live instance, maintained through lifecycle notifications. This is
// the in-memory backing for join signs and list commands.
package status

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arkodev/skirmish/internal/instance"
	"github.com/arkodev/skirmish/internal/world"
)

// Entry is the board line for one instance. State and player count are
// read from the instance at query time, so entries are never stale.
type Entry struct {
	World   world.Key
	Type    string
	State   instance.State
	Players int
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s %s %d players", e.World.Value(), e.Type, e.State, e.Players)
}

// Board implements instance.Observer and mirrors the live registry.
type Board struct {
	mu        sync.RWMutex
	instances map[world.Key]*instance.Instance
}

// NewBoard creates an empty status board.
func NewBoard() *Board {
	return &Board{instances: make(map[world.Key]*instance.Instance)}
}

// InstanceCreated adds a board line for the new instance.
func (b *Board) InstanceCreated(inst *instance.Instance) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.instances[inst.WorldKey()] = inst
}

// InstanceStateChanged is a no-op: entries read state live.
func (b *Board) InstanceStateChanged(*instance.Instance, instance.State, instance.State) {}

// InstanceRemoved drops the board line for a torn-down instance.
func (b *Board) InstanceRemoved(inst *instance.Instance) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.instances, inst.WorldKey())
}

func entryFor(inst *instance.Instance) Entry {
	return Entry{
		World:   inst.WorldKey(),
		Type:    inst.Type().Name(),
		State:   inst.State(),
		Players: inst.RegisteredCount(),
	}
}

// Entry returns the board line for key, if present.
func (b *Board) Entry(key world.Key) (Entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	inst, ok := b.instances[key]
	if !ok {
		return Entry{}, false
	}
	return entryFor(inst), true
}

// Entries returns all board lines sorted by world key.
func (b *Board) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Entry, 0, len(b.instances))
	for _, inst := range b.instances {
		out = append(out, entryFor(inst))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].World < out[j].World })
	return out
}
