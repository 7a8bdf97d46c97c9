package gen

import (
	"context"
	"errors"
	"testing"

	"github.com/arkodev/skirmish/internal/model"
	"github.com/arkodev/skirmish/internal/world"
)

func loadTestWorld(t *testing.T, extent int32) *world.World {
	t.Helper()
	m := world.NewManager([]world.Definition{
		{Key: "skirmish:arena_1", Extent: extent, Spawn: model.Point{X: 0, Y: 64, Z: 0}},
	})
	w, err := m.LoadWorld(context.Background(), "skirmish:arena_1")
	if err != nil {
		t.Fatalf("LoadWorld: %v", err)
	}
	return w
}

type recordMutator struct {
	name string
	log  *[]string
	err  error
}

func (m *recordMutator) Name() string { return m.name }

func (m *recordMutator) Mutate(context.Context, *world.World) error {
	*m.log = append(*m.log, m.name)
	return m.err
}

func TestPipeline_RunsInOrder(t *testing.T) {
	w := loadTestWorld(t, 1024)

	var log []string
	p := NewPipeline(
		&recordMutator{name: "first", log: &log},
		&recordMutator{name: "second", log: &log},
		&recordMutator{name: "third", log: &log},
	)

	if err := p.Mutate(context.Background(), w); err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(log) != len(want) {
		t.Fatalf("ran %d mutators; want %d", len(log), len(want))
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %s; want %s", i, log[i], want[i])
		}
	}
}

func TestPipeline_FailsFast(t *testing.T) {
	w := loadTestWorld(t, 1024)

	var log []string
	boom := errors.New("boom")
	p := NewPipeline(
		&recordMutator{name: "first", log: &log},
		&recordMutator{name: "second", log: &log, err: boom},
		&recordMutator{name: "third", log: &log},
	)

	err := p.Mutate(context.Background(), w)
	if !errors.Is(err, boom) {
		t.Fatalf("Mutate err = %v; want wrapped boom", err)
	}
	if len(log) != 2 {
		t.Errorf("ran %d mutators before failing; want 2", len(log))
	}
}

func TestPipeline_CancelledContext(t *testing.T) {
	w := loadTestWorld(t, 1024)

	var log []string
	p := NewPipeline(&recordMutator{name: "first", log: &log})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Mutate(ctx, w); !errors.Is(err, context.Canceled) {
		t.Fatalf("Mutate err = %v; want context.Canceled", err)
	}
	if len(log) != 0 {
		t.Error("no mutator should run after cancellation")
	}
}

func TestSpawnMutator(t *testing.T) {
	w := loadTestWorld(t, 1024)

	m := &SpawnMutator{Count: 12, Radius: 200}
	if err := m.Mutate(context.Background(), w); err != nil {
		t.Fatalf("Mutate: %v", err)
	}

	spawns := w.MarkersOf(MarkerSpawn)
	if len(spawns) != 12 {
		t.Fatalf("placed %d spawns; want 12", len(spawns))
	}
	for _, s := range spawns {
		if s.At.X < -200 || s.At.X > 200 || s.At.Z < -200 || s.At.Z > 200 {
			t.Errorf("spawn %v outside radius", s.At)
		}
		if s.At.Y != 64 {
			t.Errorf("spawn %v not at spawn height", s.At)
		}
	}
}

func TestSpawnMutator_RadiusExceedsExtent(t *testing.T) {
	w := loadTestWorld(t, 256)

	m := &SpawnMutator{Count: 8, Radius: 200}
	if err := m.Mutate(context.Background(), w); err == nil {
		t.Error("expected error when radius does not fit extent")
	}
	if len(w.Markers()) != 0 {
		t.Error("no markers should be placed on failure")
	}
}

func TestChestMutator_Deterministic(t *testing.T) {
	w1 := loadTestWorld(t, 1024)
	w2 := loadTestWorld(t, 1024)

	m := &ChestMutator{Count: 16, Spread: 100}
	if err := m.Mutate(context.Background(), w1); err != nil {
		t.Fatalf("Mutate w1: %v", err)
	}
	if err := m.Mutate(context.Background(), w2); err != nil {
		t.Fatalf("Mutate w2: %v", err)
	}

	c1, c2 := w1.MarkersOf(MarkerChest), w2.MarkersOf(MarkerChest)
	if len(c1) != 16 || len(c2) != 16 {
		t.Fatalf("placed %d/%d chests; want 16/16", len(c1), len(c2))
	}
	for i := range c1 {
		if c1[i].At != c2[i].At {
			t.Errorf("chest %d differs: %v vs %v", i, c1[i].At, c2[i].At)
		}
	}
}

func TestChestMutator_InvalidCount(t *testing.T) {
	w := loadTestWorld(t, 1024)
	m := &ChestMutator{Count: 0}
	if err := m.Mutate(context.Background(), w); err == nil {
		t.Error("expected error for zero chest count")
	}
}
