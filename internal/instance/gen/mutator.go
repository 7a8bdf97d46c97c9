// Package gen holds the one-time world mutators applied when an arena
// instance is created, before the instance is handed to callers.
package gen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arkodev/skirmish/internal/world"
)

// Mutator is a single setup transform applied to a freshly loaded
// arena world. Mutators run once per instance creation and must leave
// the world untouched when they fail partway if at all possible; the
// lifecycle layer discards the instance on any failure.
type Mutator interface {
	Name() string
	Mutate(ctx context.Context, w *world.World) error
}

// Pipeline is an ordered sequence of mutators executed synchronously.
type Pipeline struct {
	mutators []Mutator
}

// NewPipeline builds a pipeline running the given mutators in order.
func NewPipeline(mutators ...Mutator) *Pipeline {
	return &Pipeline{mutators: mutators}
}

// Mutate runs every mutator in order, failing fast on the first error.
func (p *Pipeline) Mutate(ctx context.Context, w *world.World) error {
	for _, m := range p.mutators {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("mutating %s: %w", w.Key(), err)
		}
		if err := m.Mutate(ctx, w); err != nil {
			return fmt.Errorf("mutator %s on %s: %w", m.Name(), w.Key(), err)
		}
		slog.Debug("mutator applied", "mutator", m.Name(), "world", w.Key())
	}
	return nil
}

// Len returns the number of mutators in the pipeline.
func (p *Pipeline) Len() int { return len(p.mutators) }
