package model

import (
	"sync"

	"github.com/google/uuid"
)

// Participant is a connected player present somewhere in the world set.
// Gameplay state (score, inventory) is owned here and reset by the
// lifecycle layer when the player is evicted from an arena.
type Participant struct {
	id   uuid.UUID
	name string

	mu        sync.RWMutex
	worldKey  string
	location  Point
	score     int32
	inventory []string
}

// NewParticipant creates a participant with a fresh unique ID.
func NewParticipant(name string) *Participant {
	return &Participant{
		id:   uuid.New(),
		name: name,
	}
}

// ID returns the participant's unique identifier.
func (p *Participant) ID() uuid.UUID { return p.id }

// Name returns the participant's display name.
func (p *Participant) Name() string { return p.name }

// WorldKey returns the key of the world the participant is currently in.
func (p *Participant) WorldKey() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.worldKey
}

// SetWorld moves the participant's bookkeeping to another world.
// The world layer is responsible for updating occupant sets.
func (p *Participant) SetWorld(key string, at Point) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.worldKey = key
	p.location = at
}

// Location returns the participant's current position.
func (p *Participant) Location() Point {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.location
}

// Score returns the participant's current round score.
func (p *Participant) Score() int32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.score
}

// AddScore adds points to the participant's round score.
func (p *Participant) AddScore(points int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.score += points
}

// Inventory returns a copy of the participant's inventory.
func (p *Participant) Inventory() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	items := make([]string, len(p.inventory))
	copy(items, p.inventory)
	return items
}

// GiveItem appends an item to the participant's inventory.
func (p *Participant) GiveItem(item string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inventory = append(p.inventory, item)
}

// Reset clears round-scoped gameplay state: score and inventory.
// World placement is untouched; relocation is a separate step.
func (p *Participant) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.score = 0
	p.inventory = nil
}
