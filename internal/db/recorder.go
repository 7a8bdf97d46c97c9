package db

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/arkodev/skirmish/internal/instance"
	"github.com/arkodev/skirmish/internal/world"
)

const recordTimeout = 5 * time.Second

// RoundRecorder is a lifecycle observer that writes one history row per
// torn-down instance. Writes are best effort: a database error is
// logged, never propagated into teardown.
type RoundRecorder struct {
	repo *RoundRepository

	mu      sync.Mutex
	created map[world.Key]time.Time
}

// NewRoundRecorder creates a recorder over the given repository.
func NewRoundRecorder(repo *RoundRepository) *RoundRecorder {
	return &RoundRecorder{
		repo:    repo,
		created: make(map[world.Key]time.Time),
	}
}

// InstanceCreated remembers the creation time for the eventual record.
func (r *RoundRecorder) InstanceCreated(inst *instance.Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created[inst.WorldKey()] = time.Now()
}

// InstanceStateChanged is a no-op; only creation and removal matter here.
func (r *RoundRecorder) InstanceStateChanged(*instance.Instance, instance.State, instance.State) {}

// InstanceRemoved writes the history row for the removed instance.
func (r *RoundRecorder) InstanceRemoved(inst *instance.Instance) {
	r.mu.Lock()
	createdAt, ok := r.created[inst.WorldKey()]
	delete(r.created, inst.WorldKey())
	r.mu.Unlock()
	if !ok {
		createdAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	rec := RoundRecord{
		WorldKey:     inst.WorldKey().String(),
		InstanceType: inst.Type().ID(),
		FinalState:   inst.State().String(),
		PlayerCount:  inst.RegisteredCount(),
		CreatedAt:    createdAt,
		EndedAt:      time.Now(),
	}
	if err := r.repo.Insert(ctx, &rec); err != nil {
		slog.Warn("failed to record round history", "world", inst.WorldKey(), "err", err)
	}
}
