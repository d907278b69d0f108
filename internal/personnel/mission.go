package personnel

import (
	"github.com/talgya/dominion/internal/codec"
	"github.com/talgya/dominion/internal/galaxy"
	"github.com/talgya/dominion/internal/game"
)

// MissionKind discriminates mission variants.
type MissionKind uint8

const (
	MissionNull MissionKind = iota
	MissionDiplomaticEnvoy
)

// String returns the mission kind name.
func (k MissionKind) String() string {
	switch k {
	case MissionNull:
		return "None"
	case MissionDiplomaticEnvoy:
		return "DiplomaticEnvoy"
	default:
		return "Unknown"
	}
}

// MissionOps supplies the variant-specific behavior of a mission. The
// concrete mission type (e.g. DiplomaticEnvoyMission) implements it
// around the shared Mission orchestrator.
type MissionOps interface {
	Kind() MissionKind

	// CanAssignCore is the variant's extra assignment predicate on top
	// of the phase and owner checks; most variants accept a single
	// assignee.
	CanAssignCore(m *Mission, a *Agent) bool

	// CancelCore runs after the cancellation turn is recorded and
	// typically transitions into a return-trip phase. Returning false
	// rolls the cancellation back with no observable partial state.
	CancelCore(m *Mission, g *game.Game, force bool) bool

	// FirstPhase builds the phase Begin moves into from planning, or
	// nil when the variant cannot start.
	FirstPhase(m *Mission, g *game.Game) MissionPhase

	// EncodePayload/DecodePayload carry variant-specific fields in the
	// save stream.
	EncodePayload(w *codec.Writer)
	DecodePayload(r *codec.Reader)
}

// Mission is the phase-machine orchestrator: it owns the current
// phase, validates and drives transitions, and dispatches the turn
// lifecycle into the active phase. Variant behavior is plugged in via
// MissionOps.
type Mission struct {
	ops   MissionOps
	owner *Manager

	// Embarkation is the point the mission departs from.
	Embarkation galaxy.Sector

	assigned []AgentRef
	current  MissionPhase

	// previous is the single-slot phase snapshot backing same-turn
	// undo-cancel. Never serialized.
	previous MissionPhase

	cancelledTurn *int

	// Lifecycle callbacks. All optional.
	AgentAssigned         func(a *Agent)
	AgentUnassigned       func(a *Agent)
	PhaseChanged          func(old, new MissionPhase)
	Cancelled             func()
	CancellationRescinded func()
	Completed             func(success bool)
}

func newMission(owner *Manager, ops MissionOps, embarkation galaxy.Sector, turn int) *Mission {
	m := &Mission{ops: ops, owner: owner, Embarkation: embarkation}
	m.current = NewPlanningPhase(m, turn)
	return m
}

// Kind returns the mission variant.
func (m *Mission) Kind() MissionKind { return m.ops.Kind() }

// Ops exposes the variant behavior, e.g. for type-asserting the
// concrete mission.
func (m *Mission) Ops() MissionOps { return m.ops }

// Owner returns the owning civilization manager.
func (m *Mission) Owner() *Manager { return m.owner }

// OwnerID returns the owning civilization id.
func (m *Mission) OwnerID() game.CivID { return m.owner.Civ.ID }

// CurrentPhase returns the active phase. Never nil.
func (m *Mission) CurrentPhase() MissionPhase { return m.current }

// PreviousPhase returns the single retained phase snapshot, or nil.
func (m *Mission) PreviousPhase() MissionPhase { return m.previous }

// AssignedAgentRefs returns a copy of the assignment-pair list.
func (m *Mission) AssignedAgentRefs() []AgentRef {
	out := make([]AgentRef, len(m.assigned))
	copy(out, m.assigned)
	return out
}

// AssignedAgents resolves the assignment pairs against the owner's
// live collection; agents that have since been removed are skipped.
func (m *Mission) AssignedAgents() []*Agent {
	var out []*Agent
	for _, ref := range m.assigned {
		if a := m.owner.Agents.Get(ref.AgentID); a != nil {
			out = append(out, a)
		}
	}
	return out
}

// IsCancelled reports whether a cancellation turn is recorded.
func (m *Mission) IsCancelled() bool { return m.cancelledTurn != nil }

// CancellationTurn returns the recorded cancellation turn, if any.
func (m *Mission) CancellationTurn() (int, bool) {
	if m.cancelledTurn == nil {
		return 0, false
	}
	return *m.cancelledTurn, true
}

// IsCompleted reports whether the mission has reached its terminal
// phase.
func (m *Mission) IsCompleted() bool {
	_, ok := m.current.(*CompletedPhase)
	return ok
}

// WasSuccessful reports terminal success; false while unfinished.
func (m *Mission) WasSuccessful() bool {
	c, ok := m.current.(*CompletedPhase)
	return ok && c.Success
}

func (m *Mission) isAssigned(id AgentID) bool {
	for _, ref := range m.assigned {
		if ref.AgentID == id {
			return true
		}
	}
	return false
}

func (m *Mission) removeRef(id AgentID) {
	for i, ref := range m.assigned {
		if ref.AgentID == id {
			m.assigned = append(m.assigned[:i], m.assigned[i+1:]...)
			return
		}
	}
}

// CanAssign reports whether the agent may be assigned right now:
// owner match, both phases permit assignment changes, not already
// assigned, and the variant predicate accepts.
func (m *Mission) CanAssign(a *Agent) bool {
	if a == nil {
		return false
	}
	if a.OwnerID != m.OwnerID() {
		return false
	}
	if !m.current.AllowsAssignmentChanges() {
		return false
	}
	// The agent's own mission must release it too: an agent committed
	// to a travelling mission cannot be poached onto a new one.
	if a.mission != nil && !a.mission.current.AllowsAssignmentChanges() {
		return false
	}
	if m.isAssigned(a.ID) {
		return false
	}
	return m.ops.CanAssignCore(m, a)
}

// Assign attaches the agent to this mission, detaching it from its
// previous one. Nil agents and owner mismatches fail fast; policy
// rejections return ErrAssignmentNotAllowed and change nothing.
func (m *Mission) Assign(a *Agent) error {
	if a == nil {
		return ErrNilAgent
	}
	if a.OwnerID != m.OwnerID() {
		return ErrWrongOwner
	}
	if !m.CanAssign(a) {
		return ErrAssignmentNotAllowed
	}

	if old := a.mission; old != nil && old != m {
		old.removeRef(a.ID)
	}
	a.mission = m
	m.assigned = append(m.assigned, AgentRef{AgentID: a.ID, OwnerID: a.OwnerID})

	if m.AgentAssigned != nil {
		m.AgentAssigned(a)
	}
	return nil
}

// Unassign detaches the agent, returning it to a fresh null mission.
// Refused while the current phase freezes assignment changes.
func (m *Mission) Unassign(a *Agent) error {
	if a == nil {
		return ErrNilAgent
	}
	if !m.isAssigned(a.ID) {
		return ErrNotAssigned
	}
	if !m.current.AllowsAssignmentChanges() {
		return ErrAssignmentNotAllowed
	}
	m.forceUnassign(a)
	return nil
}

func (m *Mission) forceUnassign(a *Agent) {
	m.removeRef(a.ID)
	a.mission = NewNullMission(m.owner)
	if m.AgentUnassigned != nil {
		m.AgentUnassigned(a)
	}
}

// unassignAll returns every assigned agent to the pool. Runs on
// completion so no agent is left pointing at a finished mission.
func (m *Mission) unassignAll() {
	for _, ref := range m.AssignedAgentRefs() {
		if a := m.owner.Agents.Get(ref.AgentID); a != nil {
			m.forceUnassign(a)
		} else {
			m.removeRef(ref.AgentID)
		}
	}
}

// CanCancel reports whether cancellation is possible in the current
// phase.
func (m *Mission) CanCancel() bool {
	return !m.IsCancelled() && !m.IsCompleted() && m.current.AllowsCancellation()
}

// Cancel cancels the mission. While still planning it short-circuits
// straight to an unsuccessful completion. Otherwise the current turn
// is recorded as the cancellation turn and the variant's CancelCore
// runs, typically transitioning into a return trip; if CancelCore
// refuses, the cancellation turn is rolled back and nothing changed.
// force bypasses the phase's cancellation flag (involuntary recalls).
func (m *Mission) Cancel(g *game.Game, force bool) bool {
	if g == nil {
		return false
	}
	if m.IsCancelled() || m.IsCompleted() {
		return false
	}
	if !force && !m.current.AllowsCancellation() {
		return false
	}

	if m.current.Kind() == PhasePlanning {
		return m.TransitionToPhase(g, NewCompletedPhase(m, g.Turn, false), true)
	}

	turn := g.Turn
	m.cancelledTurn = &turn
	if !m.ops.CancelCore(m, g, force) {
		m.cancelledTurn = nil
		return false
	}
	if m.Cancelled != nil {
		m.Cancelled()
	}
	return true
}

// UndoCancel rescinds a cancellation made this turn, restoring the
// retained previous phase without re-running its transition hook.
// Exactly one level of history exists, so this succeeds at most once
// per cancellation and only on the turn it happened.
func (m *Mission) UndoCancel(g *game.Game) bool {
	if g == nil || !m.IsCancelled() {
		return false
	}
	if *m.cancelledTurn != g.Turn || m.previous == nil {
		return false
	}

	m.current, m.previous = m.previous, m.current
	m.cancelledTurn = nil
	if m.CancellationRescinded != nil {
		m.CancellationRescinded()
	}
	return true
}

// CanTransitionToPhase validates a proposed phase against the current
// one.
func (m *Mission) CanTransitionToPhase(phase MissionPhase) bool {
	if phase == nil || phase.Mission() != m {
		return false
	}
	if m.IsCompleted() {
		return false
	}
	return m.current.CanTransitionTo(phase)
}

// TransitionToPhase makes the proposed phase current: the old phase is
// retained in the single undo slot, the new phase's OnTransitionedTo
// hook runs with the old phase, and PhaseChanged fires. Entering the
// terminal phase additionally fires Completed and returns every
// assigned agent to the pool. A mission already completed never
// re-enters this path, so completion cannot fire twice.
func (m *Mission) TransitionToPhase(g *game.Game, phase MissionPhase, force bool) bool {
	if g == nil || phase == nil {
		return false
	}
	if m.IsCompleted() {
		return false
	}
	if !force && !m.CanTransitionToPhase(phase) {
		return false
	}

	old := m.current
	m.previous = old
	m.current = phase
	phase.OnTransitionedTo(g, old)

	if m.PhaseChanged != nil {
		m.PhaseChanged(old, phase)
	}

	if c, ok := phase.(*CompletedPhase); ok {
		if m.Completed != nil {
			m.Completed(c.Success)
		}
		m.unassignAll()
	}
	return true
}

// Begin moves the mission out of planning into the variant's first
// phase. Calling it past planning is a host bug, not a policy no-op.
func (m *Mission) Begin(g *game.Game) error {
	if g == nil {
		return ErrNilGame
	}
	if m.current.Kind() != PhasePlanning {
		return ErrNotPlanning
	}
	if len(m.assigned) == 0 {
		return ErrNoAgentsAssigned
	}
	first := m.ops.FirstPhase(m, g)
	if first == nil {
		return ErrCannotBegin
	}
	m.TransitionToPhase(g, first, false)
	return nil
}

// OnTurnStarted dispatches into the active phase.
func (m *Mission) OnTurnStarted(g *game.Game) {
	m.current.OnTurnStarted(g)
}

// OnTurnPhaseStarted dispatches into the active phase.
func (m *Mission) OnTurnPhaseStarted(g *game.Game, phase game.TurnPhase) {
	m.current.OnTurnPhaseStarted(g, phase)
}

// OnTurnPhaseFinished dispatches into the active phase.
func (m *Mission) OnTurnPhaseFinished(g *game.Game, phase game.TurnPhase) {
	m.current.OnTurnPhaseFinished(g, phase)
}

// OnTurnFinished dispatches into the active phase.
func (m *Mission) OnTurnFinished(g *game.Game) {
	m.current.OnTurnFinished(g)
}
