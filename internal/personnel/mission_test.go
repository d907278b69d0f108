package personnel

import (
	"errors"
	"testing"
)

func TestNullMissionKeepsAgentAvailable(t *testing.T) {
	f := newFixture(t)
	a := spawnAgent(t, f.mA, "vale")

	null := a.Mission()
	if null == nil {
		t.Fatal("agent mission is nil")
	}
	if null.Kind() != MissionNull {
		t.Fatalf("mission kind = %v, want MissionNull", null.Kind())
	}
	if a.Status() != StatusUnassigned {
		t.Errorf("status = %v, want Unassigned", a.Status())
	}

	// The null mission holds planning open forever so the agent can be
	// picked up by any real mission at any time.
	if !null.CurrentPhase().AllowsAssignmentChanges() {
		t.Error("null mission phase froze assignment changes")
	}
	if err := null.Begin(f.g); !errors.Is(err, ErrNoAgentsAssigned) {
		t.Errorf("null Begin = %v, want ErrNoAgentsAssigned", err)
	}

	// Even with an assignee there is no first phase to enter.
	if err := null.Assign(a); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := null.Begin(f.g); !errors.Is(err, ErrCannotBegin) {
		t.Errorf("null Begin with assignee = %v, want ErrCannotBegin", err)
	}
}

func TestAssignAndUnassign(t *testing.T) {
	f := newFixture(t)
	a := spawnAgent(t, f.mA, "vale")

	envoy, err := NewDiplomaticEnvoyMission(f.mA, f.civB.ID, f.g.Turn)
	if err != nil {
		t.Fatalf("NewDiplomaticEnvoyMission: %v", err)
	}

	var assigned, unassigned int
	envoy.AgentAssigned = func(*Agent) { assigned++ }
	envoy.AgentUnassigned = func(*Agent) { unassigned++ }

	if err := envoy.Assign(a); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if a.Mission() != envoy.Mission {
		t.Error("agent mission not rebound to the envoy mission")
	}
	if a.Status() != StatusAvailableForReassignment {
		t.Errorf("status while planning = %v, want AvailableForReassignment", a.Status())
	}
	if assigned != 1 {
		t.Errorf("AgentAssigned fired %d times, want 1", assigned)
	}

	// Re-assigning the same agent is a policy rejection.
	if err := envoy.Assign(a); !errors.Is(err, ErrAssignmentNotAllowed) {
		t.Errorf("double Assign = %v, want ErrAssignmentNotAllowed", err)
	}

	if err := envoy.Unassign(a); err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	if unassigned != 1 {
		t.Errorf("AgentUnassigned fired %d times, want 1", unassigned)
	}
	if a.Mission().Kind() != MissionNull {
		t.Errorf("unassigned agent mission kind = %v, want MissionNull", a.Mission().Kind())
	}
	if a.Status() != StatusUnassigned {
		t.Errorf("status after unassign = %v, want Unassigned", a.Status())
	}
	if len(envoy.AssignedAgentRefs()) != 0 {
		t.Error("mission still holds a ref to the unassigned agent")
	}
}

func TestAssignRejections(t *testing.T) {
	f := newFixture(t)
	a := spawnAgent(t, f.mA, "vale")
	b := spawnAgent(t, f.mA, "rook")
	foreign := spawnAgent(t, f.mB, "zara")

	envoy, _ := NewDiplomaticEnvoyMission(f.mA, f.civB.ID, f.g.Turn)

	if err := envoy.Assign(nil); !errors.Is(err, ErrNilAgent) {
		t.Errorf("Assign(nil) = %v, want ErrNilAgent", err)
	}
	if err := envoy.Assign(foreign); !errors.Is(err, ErrWrongOwner) {
		t.Errorf("Assign(foreign) = %v, want ErrWrongOwner", err)
	}
	if err := envoy.Unassign(a); !errors.Is(err, ErrNotAssigned) {
		t.Errorf("Unassign(unattached) = %v, want ErrNotAssigned", err)
	}

	if err := envoy.Assign(a); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	// Envoy missions carry a single agent.
	if err := envoy.Assign(b); !errors.Is(err, ErrAssignmentNotAllowed) {
		t.Errorf("second Assign = %v, want ErrAssignmentNotAllowed", err)
	}
}

func TestAssignDetachesFromPreviousMission(t *testing.T) {
	f := newFixture(t)
	a := spawnAgent(t, f.mA, "vale")

	first, _ := NewDiplomaticEnvoyMission(f.mA, f.civB.ID, f.g.Turn)
	second, _ := NewDiplomaticEnvoyMission(f.mA, f.civB.ID, f.g.Turn)

	if err := first.Assign(a); err != nil {
		t.Fatalf("Assign(first): %v", err)
	}
	if err := second.Assign(a); err != nil {
		t.Fatalf("Assign(second): %v", err)
	}

	if len(first.AssignedAgentRefs()) != 0 {
		t.Error("first mission kept its ref after the agent moved on")
	}
	if a.Mission() != second.Mission {
		t.Error("agent mission not rebound to the second mission")
	}
}

func TestAssignCannotPoachTravellingAgent(t *testing.T) {
	f := newFixture(t)
	a := spawnAgent(t, f.mA, "vale")
	f.g.Turn = 1
	first := dispatchEnvoy(t, f, a)
	if a.Status() != StatusUnavailableForReassignment {
		t.Fatalf("setup: status = %v, want UnavailableForReassignment", a.Status())
	}

	second, err := NewDiplomaticEnvoyMission(f.mA, f.civB.ID, f.g.Turn)
	if err != nil {
		t.Fatalf("NewDiplomaticEnvoyMission: %v", err)
	}

	if second.CanAssign(a) {
		t.Error("CanAssign = true for an agent locked to a travelling mission")
	}
	if err := second.Assign(a); !errors.Is(err, ErrAssignmentNotAllowed) {
		t.Errorf("Assign = %v, want ErrAssignmentNotAllowed", err)
	}

	// The running mission keeps its agent and its assignment list.
	if a.Mission() != first.Mission {
		t.Error("agent rebound off its travelling mission")
	}
	if got := len(first.AssignedAgentRefs()); got != 1 {
		t.Errorf("travelling mission refs = %d, want 1", got)
	}
	if got := len(second.AssignedAgentRefs()); got != 0 {
		t.Errorf("rejected mission refs = %d, want 0", got)
	}
}

func TestBeginValidation(t *testing.T) {
	f := newFixture(t)
	a := spawnAgent(t, f.mA, "vale")
	envoy, _ := NewDiplomaticEnvoyMission(f.mA, f.civB.ID, f.g.Turn)

	if err := envoy.Begin(nil); !errors.Is(err, ErrNilGame) {
		t.Errorf("Begin(nil) = %v, want ErrNilGame", err)
	}
	if err := envoy.Begin(f.g); !errors.Is(err, ErrNoAgentsAssigned) {
		t.Errorf("Begin without agents = %v, want ErrNoAgentsAssigned", err)
	}

	if err := envoy.Assign(a); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := envoy.Begin(f.g); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if envoy.CurrentPhase().Kind() != PhaseOutbound {
		t.Fatalf("phase after Begin = %v, want Outbound", envoy.CurrentPhase().Kind())
	}
	if a.Status() != StatusUnavailableForReassignment {
		t.Errorf("status while outbound = %v, want UnavailableForReassignment", a.Status())
	}

	if err := envoy.Begin(f.g); !errors.Is(err, ErrNotPlanning) {
		t.Errorf("second Begin = %v, want ErrNotPlanning", err)
	}
}

func TestCancelWhilePlanningCompletesUnsuccessfully(t *testing.T) {
	f := newFixture(t)
	a := spawnAgent(t, f.mA, "vale")
	envoy, _ := NewDiplomaticEnvoyMission(f.mA, f.civB.ID, f.g.Turn)
	if err := envoy.Assign(a); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	var completions []bool
	envoy.Completed = func(success bool) { completions = append(completions, success) }

	if !envoy.Cancel(f.g, false) {
		t.Fatal("Cancel while planning returned false")
	}
	if !envoy.IsCompleted() || envoy.WasSuccessful() {
		t.Error("planning cancel should complete the mission unsuccessfully")
	}
	if len(completions) != 1 || completions[0] {
		t.Errorf("Completed fired with %v, want one false", completions)
	}
	if a.Mission().Kind() != MissionNull {
		t.Error("agent not released after planning cancel")
	}
}

func TestCancelAndUndoSameTurn(t *testing.T) {
	f := newFixture(t)
	a := spawnAgent(t, f.mA, "vale")
	f.g.Turn = 1
	envoy := dispatchEnvoy(t, f, a)

	// Outbound forbids voluntary cancellation.
	if envoy.CanCancel() {
		t.Error("CanCancel() = true while outbound")
	}
	if envoy.Cancel(f.g, false) {
		t.Fatal("voluntary cancel succeeded while outbound")
	}

	f.g.Turn = 3
	if !envoy.Cancel(f.g, true) {
		t.Fatal("forced cancel failed while outbound")
	}
	if !envoy.IsCancelled() {
		t.Fatal("IsCancelled() = false after cancel")
	}
	if turn, ok := envoy.CancellationTurn(); !ok || turn != 3 {
		t.Errorf("CancellationTurn() = %d, %v, want 3, true", turn, ok)
	}
	if envoy.CurrentPhase().Kind() != PhaseInbound {
		t.Fatalf("phase after cancel = %v, want Inbound", envoy.CurrentPhase().Kind())
	}

	var rescinded int
	envoy.CancellationRescinded = func() { rescinded++ }

	// Same turn: the cancellation can be taken back.
	if !envoy.UndoCancel(f.g) {
		t.Fatal("UndoCancel failed on the cancellation turn")
	}
	if envoy.IsCancelled() {
		t.Error("IsCancelled() = true after undo")
	}
	if envoy.CurrentPhase().Kind() != PhaseOutbound {
		t.Errorf("phase after undo = %v, want restored Outbound", envoy.CurrentPhase().Kind())
	}
	if rescinded != 1 {
		t.Errorf("CancellationRescinded fired %d times, want 1", rescinded)
	}

	// Cancel again, let a turn pass: the window has closed.
	if !envoy.Cancel(f.g, true) {
		t.Fatal("re-cancel failed")
	}
	f.g.Turn = 4
	if envoy.UndoCancel(f.g) {
		t.Error("UndoCancel succeeded a turn after the cancellation")
	}
	if !envoy.IsCancelled() {
		t.Error("stale undo attempt cleared the cancellation")
	}
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	f := newFixture(t)
	a := spawnAgent(t, f.mA, "vale")
	f.g.Turn = 1
	envoy := dispatchEnvoy(t, f, a)

	var completions int
	envoy.Completed = func(bool) { completions++ }

	envoy.Cancel(f.g, true)
	tickCombat(f, envoy.Mission, 10)

	if !envoy.IsCompleted() {
		t.Fatal("mission never completed")
	}
	if completions != 1 {
		t.Fatalf("Completed fired %d times, want 1", completions)
	}

	// Terminal phase rejects everything thrown at it afterward.
	if envoy.Cancel(f.g, true) {
		t.Error("Cancel succeeded on a completed mission")
	}
	if envoy.TransitionToPhase(f.g, NewCompletedPhase(envoy.Mission, f.g.Turn, true), false) {
		t.Error("TransitionToPhase succeeded on a completed mission")
	}
	if completions != 1 {
		t.Errorf("Completed re-fired, total %d", completions)
	}
}

func TestCanTransitionToPhaseRejectsForeignPhases(t *testing.T) {
	f := newFixture(t)
	a, _ := NewDiplomaticEnvoyMission(f.mA, f.civB.ID, 0)
	b, _ := NewDiplomaticEnvoyMission(f.mA, f.civB.ID, 0)

	if a.CanTransitionToPhase(nil) {
		t.Error("nil phase accepted")
	}
	if a.CanTransitionToPhase(NewPlanningPhase(b.Mission, 0)) {
		t.Error("phase owned by another mission accepted")
	}
	if !a.CanTransitionToPhase(NewCompletedPhase(a.Mission, 0, true)) {
		t.Error("own completed phase rejected from planning")
	}
}

func TestPhasesEqual(t *testing.T) {
	f := newFixture(t)
	m1, _ := NewDiplomaticEnvoyMission(f.mA, f.civB.ID, 0)
	m2, _ := NewDiplomaticEnvoyMission(f.mA, f.civB.ID, 0)

	p1 := NewPlanningPhase(m1.Mission, 0)
	p2 := NewPlanningPhase(m1.Mission, 5)
	if !PhasesEqual(p1, p2) {
		t.Error("same kind, same mission: want equal regardless of start turn")
	}
	if PhasesEqual(p1, NewPlanningPhase(m2.Mission, 0)) {
		t.Error("phases of different missions compared equal")
	}
	if PhasesEqual(p1, NewCompletedPhase(m1.Mission, 0, true)) {
		t.Error("different kinds compared equal")
	}

	cSuccess := NewCompletedPhase(m1.Mission, 0, true)
	cFailure := NewCompletedPhase(m1.Mission, 0, false)
	if PhasesEqual(cSuccess, cFailure) {
		t.Error("completed phases with different outcomes compared equal")
	}
	if !PhasesEqual(cSuccess, NewCompletedPhase(m1.Mission, 9, true)) {
		t.Error("matching completed phases compared unequal")
	}

	if !PhasesEqual(nil, nil) {
		t.Error("two nil phases compared unequal")
	}
	if PhasesEqual(p1, nil) {
		t.Error("phase compared equal to nil")
	}
}
