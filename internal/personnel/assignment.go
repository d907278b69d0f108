package personnel

import (
	"fmt"

	"github.com/talgya/dominion/internal/game"
)

// AssignmentState is the lifecycle of an AgentAssignment.
type AssignmentState uint8

const (
	AssignmentPlanning AssignmentState = iota
	AssignmentInProgress
	AssignmentCompleted
	AssignmentCancelled
)

// String returns the state name.
func (s AssignmentState) String() string {
	switch s {
	case AssignmentPlanning:
		return "Planning"
	case AssignmentInProgress:
		return "InProgress"
	case AssignmentCompleted:
		return "Completed"
	case AssignmentCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// CancellingEvent is raised before an assignment cancels; a subscriber
// vetoes the cancellation by setting Cancel.
type CancellingEvent struct {
	Cancel bool
}

// AssignmentOps supplies the variant-specific behavior of an
// assignment, mirroring MissionOps on the simpler non-phased track.
type AssignmentOps interface {
	// CanAssignCore is the variant's extra assignment predicate; most
	// variants accept a single assignee.
	CanAssignCore(aa *AgentAssignment, a *Agent) bool

	// OnTurnPhaseFinished carries the variant's per-turn work while
	// the assignment is in progress.
	OnTurnPhaseFinished(aa *AgentAssignment, g *game.Game, phase game.TurnPhase)
}

// AgentAssignment is the non-mission task lifecycle: a flat
// Planning → InProgress → Completed|Cancelled machine with a veto-able
// cancellation and idempotent completion.
type AgentAssignment struct {
	ops   AssignmentOps
	owner *Manager

	assigned  []AgentRef
	state     AssignmentState
	startTurn int

	// Lifecycle callbacks. All optional.
	Cancelling func(*CancellingEvent)
	Cancelled  func()
	Completed  func()
}

func newAgentAssignment(owner *Manager, ops AssignmentOps) *AgentAssignment {
	return &AgentAssignment{ops: ops, owner: owner, state: AssignmentPlanning}
}

// Owner returns the owning civilization manager.
func (aa *AgentAssignment) Owner() *Manager { return aa.owner }

// OwnerID returns the owning civilization id.
func (aa *AgentAssignment) OwnerID() game.CivID { return aa.owner.Civ.ID }

// State returns the lifecycle state.
func (aa *AgentAssignment) State() AssignmentState { return aa.state }

// AssignedAgentRefs returns a copy of the assignment-pair list.
func (aa *AgentAssignment) AssignedAgentRefs() []AgentRef {
	out := make([]AgentRef, len(aa.assigned))
	copy(out, aa.assigned)
	return out
}

// AssignedAgents resolves the pairs against the owner's collection.
func (aa *AgentAssignment) AssignedAgents() []*Agent {
	var out []*Agent
	for _, ref := range aa.assigned {
		if a := aa.owner.Agents.Get(ref.AgentID); a != nil {
			out = append(out, a)
		}
	}
	return out
}

func (aa *AgentAssignment) isAssigned(id AgentID) bool {
	for _, ref := range aa.assigned {
		if ref.AgentID == id {
			return true
		}
	}
	return false
}

// CanAssign reports whether the agent may join: planning only, owner
// match, no current assignment, and the variant predicate accepts.
func (aa *AgentAssignment) CanAssign(a *Agent) bool {
	if a == nil || aa.state != AssignmentPlanning {
		return false
	}
	if a.OwnerID != aa.OwnerID() {
		return false
	}
	if a.assignment != nil || aa.isAssigned(a.ID) {
		return false
	}
	return aa.ops.CanAssignCore(aa, a)
}

// Assign attaches the agent. Nil agents and owner mismatches fail
// fast; policy rejections return ErrAssignmentNotAllowed.
func (aa *AgentAssignment) Assign(a *Agent) error {
	if a == nil {
		return ErrNilAgent
	}
	if a.OwnerID != aa.OwnerID() {
		return ErrWrongOwner
	}
	if !aa.CanAssign(a) {
		return ErrAssignmentNotAllowed
	}
	a.assignment = aa
	aa.assigned = append(aa.assigned, AgentRef{AgentID: a.ID, OwnerID: a.OwnerID})
	return nil
}

// Unassign detaches the agent while still planning.
func (aa *AgentAssignment) Unassign(a *Agent) error {
	if a == nil {
		return ErrNilAgent
	}
	if !aa.isAssigned(a.ID) {
		return ErrNotAssigned
	}
	if aa.state != AssignmentPlanning {
		return ErrAssignmentNotAllowed
	}
	for i, ref := range aa.assigned {
		if ref.AgentID == a.ID {
			aa.assigned = append(aa.assigned[:i], aa.assigned[i+1:]...)
			break
		}
	}
	a.assignment = nil
	return nil
}

// Begin moves the assignment from planning to in-progress.
func (aa *AgentAssignment) Begin(g *game.Game) error {
	if g == nil {
		return ErrNilGame
	}
	if aa.state != AssignmentPlanning {
		return ErrNotPlanning
	}
	if len(aa.assigned) == 0 {
		return ErrNoAgentsAssigned
	}
	aa.state = AssignmentInProgress
	aa.startTurn = g.Turn
	return nil
}

// Cancel ends the assignment unless a Cancelling subscriber vetoes.
// No-op once completed or cancelled.
func (aa *AgentAssignment) Cancel() bool {
	if aa.state == AssignmentCompleted || aa.state == AssignmentCancelled {
		return false
	}
	ev := &CancellingEvent{}
	if aa.Cancelling != nil {
		aa.Cancelling(ev)
	}
	if ev.Cancel {
		return false
	}
	aa.state = AssignmentCancelled
	aa.releaseAgents()
	if aa.Cancelled != nil {
		aa.Cancelled()
	}
	return true
}

// Complete finishes the assignment. Idempotent: a second call after
// completion or cancellation changes nothing.
func (aa *AgentAssignment) Complete() bool {
	if aa.state == AssignmentCompleted || aa.state == AssignmentCancelled {
		return false
	}
	aa.state = AssignmentCompleted
	aa.releaseAgents()
	if aa.Completed != nil {
		aa.Completed()
	}
	return true
}

func (aa *AgentAssignment) releaseAgents() {
	for _, ref := range aa.assigned {
		if a := aa.owner.Agents.Get(ref.AgentID); a != nil && a.assignment == aa {
			a.assignment = nil
		}
	}
}

// OnTurnStarted is part of the turn lifecycle; assignments carry no
// turn-start work.
func (aa *AgentAssignment) OnTurnStarted(*game.Game) {}

// OnTurnPhaseStarted is part of the turn lifecycle; assignments carry
// no sub-phase-start work.
func (aa *AgentAssignment) OnTurnPhaseStarted(*game.Game, game.TurnPhase) {}

// OnTurnPhaseFinished forwards to the variant while in progress.
func (aa *AgentAssignment) OnTurnPhaseFinished(g *game.Game, phase game.TurnPhase) {
	if aa.state != AssignmentInProgress {
		return
	}
	aa.ops.OnTurnPhaseFinished(aa, g, phase)
}

// OnTurnFinished is part of the turn lifecycle; assignments carry no
// turn-finish work.
func (aa *AgentAssignment) OnTurnFinished(*game.Game) {}

// TrainingAssignment improves one of an agent's natural skills over a
// fixed number of turns, committing the gain permanently on
// completion.
type TrainingAssignment struct {
	*AgentAssignment

	Skill          AgentSkill
	Improvement    int
	TurnsRemaining int
}

// NewTrainingAssignment creates a training assignment in planning.
func NewTrainingAssignment(owner *Manager, skill AgentSkill, turns, improvement int) (*TrainingAssignment, error) {
	if owner == nil {
		return nil, ErrNilOwner
	}
	if turns < 1 {
		turns = 1
	}
	t := &TrainingAssignment{Skill: skill, Improvement: improvement, TurnsRemaining: turns}
	t.AgentAssignment = newAgentAssignment(owner, t)
	return t, nil
}

// CanAssignCore accepts a single trainee who actually has the skill.
func (t *TrainingAssignment) CanAssignCore(aa *AgentAssignment, a *Agent) bool {
	if len(aa.assigned) != 0 {
		return false
	}
	return a.Skills.MeterFor(t.Skill) != nil
}

// OnTurnPhaseFinished counts the course down on the combat sub-phase;
// on the final turn the trainee's meter improves and the gain is
// committed as the new base.
func (t *TrainingAssignment) OnTurnPhaseFinished(aa *AgentAssignment, g *game.Game, phase game.TurnPhase) {
	if phase != game.PhaseCombat {
		return
	}
	t.TurnsRemaining--
	if t.TurnsRemaining > 0 {
		return
	}

	for _, a := range aa.AssignedAgents() {
		if m := a.Skills.MeterFor(t.Skill); m != nil {
			m.AdjustBy(t.Improvement)
			m.UpdateAndReset()
		}
		aa.owner.SitRep.Add(g.Turn, game.SitRepPersonnel,
			fmt.Sprintf("%s has completed %s training.", a.DisplayName(), t.Skill))
	}
	t.Complete()
}
