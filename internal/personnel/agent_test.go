package personnel

import (
	"errors"
	"testing"
)

func TestAgentCollection(t *testing.T) {
	f := newFixture(t)
	a := spawnAgent(t, f.mA, "vale")
	b := spawnAgent(t, f.mA, "rook")
	foreign := spawnAgent(t, f.mB, "zara")

	if err := f.mA.Agents.Add(nil); !errors.Is(err, ErrNilAgent) {
		t.Errorf("Add(nil) = %v, want ErrNilAgent", err)
	}
	if err := f.mA.Agents.Add(foreign); !errors.Is(err, ErrWrongOwner) {
		t.Errorf("Add(foreign) = %v, want ErrWrongOwner", err)
	}
	// Duplicate ids are ignored, not an error.
	if err := f.mA.Agents.Add(a); err != nil {
		t.Errorf("re-Add = %v, want nil", err)
	}

	if f.mA.Agents.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.mA.Agents.Len())
	}
	all := f.mA.Agents.All()
	if len(all) != 2 || all[0] != a || all[1] != b {
		t.Error("All() lost insertion order")
	}

	if got := f.mA.Agents.Remove(a.ID); got != a {
		t.Errorf("Remove = %v, want the agent", got)
	}
	if f.mA.Agents.Remove(a.ID) != nil {
		t.Error("second Remove returned an agent")
	}
	if f.mA.Agents.Get(a.ID) != nil {
		t.Error("removed agent still reachable")
	}
}

func TestManagerForwardsTurnLifecycle(t *testing.T) {
	f := newFixture(t)
	a := spawnAgent(t, f.mA, "vale")
	envoy := dispatchEnvoy(t, f, a)

	// Four full turns through the engine: the envoy rides the combat
	// sub-phase all the way to the counterparty's seat.
	for i := 0; i < 4; i++ {
		f.g.AdvanceTurn()
	}
	if envoy.CurrentPhase().Kind() != PhaseStationed {
		t.Errorf("phase after 4 turns = %v, want Stationed", envoy.CurrentPhase().Kind())
	}
}

func TestRemovedAgentStopsDrivingItsMission(t *testing.T) {
	f := newFixture(t)
	a := spawnAgent(t, f.mA, "vale")
	f.g.Turn = 1
	envoy := dispatchEnvoy(t, f, a)
	ob := envoy.CurrentPhase().(*OutboundPhase)

	// Removal from the collection is the agent's destruction path: it
	// must drop out of turn dispatch with it.
	if f.mA.Agents.Remove(a.ID) == nil {
		t.Fatal("Remove returned nil")
	}
	for i := 0; i < 3; i++ {
		f.g.AdvanceTurn()
	}

	if envoy.CurrentPhase().Kind() != PhaseOutbound {
		t.Fatalf("orphaned mission moved to %v", envoy.CurrentPhase().Kind())
	}
	if ob.TurnsUntilArrival != ob.TotalTurns {
		t.Errorf("mission advanced after its agent was removed: %d of %d turns remain",
			ob.TurnsUntilArrival, ob.TotalTurns)
	}
}
