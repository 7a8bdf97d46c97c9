package instance

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/arkodev/skirmish/internal/instance/gen"
)

func newTestInstance(t *testing.T, maxPlayers int) *Instance {
	t.Helper()
	typ := NewType("classic", TypeConfig{
		MaxPlayers: maxPlayers,
		Pipeline:   gen.NewPipeline(),
	})
	return newInstance("skirmish:arena_1", typ)
}

func TestInstance_AdvanceTo(t *testing.T) {
	inst := newTestInstance(t, 8)

	if inst.State() != StateIdle {
		t.Fatalf("new instance state = %s; want IDLE", inst.State())
	}

	from, err := inst.AdvanceTo(StatePreStart)
	if err != nil {
		t.Fatalf("AdvanceTo(PRE_START): %v", err)
	}
	if from != StateIdle {
		t.Errorf("previous state = %s; want IDLE", from)
	}
	if inst.State() != StatePreStart {
		t.Errorf("state = %s; want PRE_START", inst.State())
	}
}

func TestInstance_AdvanceTo_IllegalLeavesStateUnchanged(t *testing.T) {
	inst := newTestInstance(t, 8)

	// IDLE can't jump straight to RUNNING.
	if _, err := inst.AdvanceTo(StateRunning); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("AdvanceTo(RUNNING) from IDLE: err = %v; want ErrInvalidState", err)
	}
	if inst.State() != StateIdle {
		t.Errorf("state = %s after rejected transition; want IDLE", inst.State())
	}
}

func TestInstance_AdvanceTo_ForceStopOverride(t *testing.T) {
	inst := newTestInstance(t, 8)

	steps := []State{StatePreStart, StateRunning}
	for _, s := range steps {
		if _, err := inst.AdvanceTo(s); err != nil {
			t.Fatalf("AdvanceTo(%s): %v", s, err)
		}
	}

	if _, err := inst.AdvanceTo(StateForceStop); err != nil {
		t.Fatalf("AdvanceTo(FORCE_STOP): %v", err)
	}
	if inst.State() != StateForceStop {
		t.Errorf("state = %s; want FORCE_STOP", inst.State())
	}
}

func TestInstance_FullRoundResetsToIdle(t *testing.T) {
	inst := newTestInstance(t, 8)

	for _, s := range []State{StatePreStart, StateRunning, StatePreEnd, StatePostEnd, StateIdle} {
		if _, err := inst.AdvanceTo(s); err != nil {
			t.Fatalf("AdvanceTo(%s): %v", s, err)
		}
	}
	if inst.State() != StateIdle {
		t.Errorf("state = %s after full round; want IDLE", inst.State())
	}
}

func TestInstance_RegisterPlayer(t *testing.T) {
	inst := newTestInstance(t, 2)

	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()

	if err := inst.RegisterPlayer(p1); err != nil {
		t.Fatalf("RegisterPlayer: %v", err)
	}
	if !inst.IsPlayerRegistered(p1) {
		t.Error("p1 should be registered")
	}
	if inst.IsPlayerRegistered(p2) {
		t.Error("p2 should not be registered")
	}

	// Re-registering is a no-op.
	if err := inst.RegisterPlayer(p1); err != nil {
		t.Fatalf("re-RegisterPlayer: %v", err)
	}
	if inst.RegisteredCount() != 1 {
		t.Errorf("RegisteredCount() = %d; want 1", inst.RegisteredCount())
	}

	if err := inst.RegisterPlayer(p2); err != nil {
		t.Fatalf("RegisterPlayer p2: %v", err)
	}
	if err := inst.RegisterPlayer(p3); err == nil {
		t.Error("registering past max players should fail")
	}

	inst.UnregisterPlayer(p1)
	if inst.IsPlayerRegistered(p1) {
		t.Error("p1 should be unregistered")
	}
	if inst.RegisteredCount() != 1 {
		t.Errorf("RegisteredCount() = %d; want 1", inst.RegisteredCount())
	}
}
