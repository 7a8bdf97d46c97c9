package gen

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/arkodev/skirmish/internal/model"
	"github.com/arkodev/skirmish/internal/world"
)

// MarkerChest marks a loot chest position.
const MarkerChest = "chest"

// ChestMutator scatters Count loot chests inside the playable area.
// Placement is seeded from the world key, so recreating an instance on
// the same world yields the same layout.
type ChestMutator struct {
	Count  int
	Spread int32
}

func (m *ChestMutator) Name() string { return "loot_chests" }

func (m *ChestMutator) Mutate(_ context.Context, w *world.World) error {
	if m.Count <= 0 {
		return fmt.Errorf("chest count must be positive, got %d", m.Count)
	}
	spread := m.Spread
	if spread <= 0 {
		spread = w.Extent() / 4
	}
	if spread*2 >= w.Extent() {
		return fmt.Errorf("chest spread %d does not fit extent %d", spread, w.Extent())
	}

	h := fnv.New64a()
	h.Write([]byte(w.Key()))
	rng := rand.New(rand.NewPCG(h.Sum64(), uint64(m.Count)))

	center := w.Spawn()
	for range m.Count {
		w.PlaceMarker(world.Marker{
			Kind: MarkerChest,
			At: model.Point{
				X: center.X + rng.Int32N(spread*2+1) - spread,
				Y: center.Y,
				Z: center.Z + rng.Int32N(spread*2+1) - spread,
			},
		})
	}
	return nil
}
