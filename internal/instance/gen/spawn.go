package gen

import (
	"context"
	"fmt"
	"math"

	"github.com/arkodev/skirmish/internal/model"
	"github.com/arkodev/skirmish/internal/world"
)

// MarkerSpawn marks a per-player spawn pad.
const MarkerSpawn = "spawn"

// SpawnMutator places Count spawn pads evenly on a circle of Radius
// blocks around the world spawn point.
type SpawnMutator struct {
	Count  int
	Radius int32
}

func (m *SpawnMutator) Name() string { return "player_spawns" }

func (m *SpawnMutator) Mutate(_ context.Context, w *world.World) error {
	if m.Count <= 0 {
		return fmt.Errorf("spawn count must be positive, got %d", m.Count)
	}
	// Pads must stay inside the border.
	if m.Radius*2 >= w.Extent() {
		return fmt.Errorf("spawn radius %d does not fit extent %d", m.Radius, w.Extent())
	}

	center := w.Spawn()
	for i := range m.Count {
		angle := 2 * math.Pi * float64(i) / float64(m.Count)
		w.PlaceMarker(world.Marker{
			Kind: MarkerSpawn,
			At: model.Point{
				X: center.X + int32(float64(m.Radius)*math.Cos(angle)),
				Y: center.Y,
				Z: center.Z + int32(float64(m.Radius)*math.Sin(angle)),
			},
		})
	}
	return nil
}
