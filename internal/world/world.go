package world

import (
	"sync"

	"github.com/google/uuid"

	"github.com/arkodev/skirmish/internal/model"
)

// SerializationMode controls what the storage backend persists for a world.
type SerializationMode int32

const (
	// SerializationFull persists terrain and metadata.
	SerializationFull SerializationMode = iota
	// SerializationMetadataOnly persists metadata only. Arena worlds run
	// in this mode: round terrain is throwaway.
	SerializationMetadataOnly
)

// Marker is a point of interest placed into a world by the generation
// pipeline (loot chests, spawn pads).
type Marker struct {
	Kind string
	At   model.Point
}

// World is a loaded, occupiable region. Occupant membership is owned
// here; the instance layer tracks registration separately.
type World struct {
	key    Key
	extent int32
	spawn  model.Point

	mu        sync.RWMutex
	mode      SerializationMode
	occupants map[uuid.UUID]*model.Participant
	markers   []Marker
}

func newWorld(def Definition) *World {
	return &World{
		key:       def.Key,
		extent:    def.Extent,
		spawn:     def.Spawn,
		occupants: make(map[uuid.UUID]*model.Participant),
	}
}

// Key returns the world's key.
func (w *World) Key() Key { return w.key }

// Extent returns the world border diameter in blocks.
func (w *World) Extent() int32 { return w.extent }

// Spawn returns the world's designated entry point.
func (w *World) Spawn() model.Point { return w.spawn }

// SerializationMode returns the current persistence mode.
func (w *World) SerializationMode() SerializationMode {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.mode
}

// SetSerializationMode switches the persistence mode.
func (w *World) SetSerializationMode(mode SerializationMode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.mode = mode
}

// Occupants returns a snapshot of everyone currently in the world,
// registered to an instance or not.
func (w *World) Occupants() []*model.Participant {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*model.Participant, 0, len(w.occupants))
	for _, p := range w.occupants {
		out = append(out, p)
	}
	return out
}

// OccupantCount returns the number of participants in the world.
func (w *World) OccupantCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.occupants)
}

func (w *World) addOccupant(p *model.Participant) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.occupants[p.ID()] = p
}

func (w *World) removeOccupant(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.occupants, id)
}

// PlaceMarker records a generated point of interest.
func (w *World) PlaceMarker(m Marker) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.markers = append(w.markers, m)
}

// Markers returns a snapshot of placed markers.
func (w *World) Markers() []Marker {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Marker, len(w.markers))
	copy(out, w.markers)
	return out
}

// MarkersOf returns placed markers of one kind.
func (w *World) MarkersOf(kind string) []Marker {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []Marker
	for _, m := range w.markers {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}
