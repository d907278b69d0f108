package personnel

import (
	"github.com/talgya/dominion/internal/codec"
	"github.com/talgya/dominion/internal/game"
)

// PhaseKind discriminates mission phase variants. Phase equality and
// serialization both dispatch on it.
type PhaseKind uint8

const (
	PhasePlanning PhaseKind = iota
	PhaseOutbound
	PhaseStationed
	PhaseInbound
	PhaseCompleted
)

// String returns the phase name.
func (k PhaseKind) String() string {
	switch k {
	case PhasePlanning:
		return "Planning"
	case PhaseOutbound:
		return "Outbound"
	case PhaseStationed:
		return "Stationed"
	case PhaseInbound:
		return "Inbound"
	case PhaseCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// MissionPhase is one state in a mission's phase machine. Concrete
// phases implement countdown and transition logic in the turn hooks,
// typically on the Combat sub-phase finishing, and self-transition the
// owning mission when done.
type MissionPhase interface {
	game.TurnListener

	Kind() PhaseKind
	Mission() *Mission
	StartTurn() int

	// CanTransitionTo is a pure predicate on a proposed next phase.
	CanTransitionTo(next MissionPhase) bool

	// OnTransitionedTo runs once, immediately after the phase becomes
	// current, with the phase it replaced. Phases derive state from
	// the previous phase here, e.g. crediting partial travel progress.
	OnTransitionedTo(g *game.Game, last MissionPhase)

	// Capability flags consulted by Mission.CanCancel and
	// Mission.CanAssign.
	AllowsCancellation() bool
	AllowsAssignmentChanges() bool

	EncodeTo(w *codec.Writer)
	DecodeFrom(r *codec.Reader)
}

// PhasesEqual compares two phases by variant: same kind and same
// owning mission, plus the success flag for completed phases.
func PhasesEqual(a, b MissionPhase) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() || a.Mission() != b.Mission() {
		return false
	}
	ca, aOK := a.(*CompletedPhase)
	cb, bOK := b.(*CompletedPhase)
	if aOK && bOK {
		return ca.Success == cb.Success
	}
	return true
}

// BasePhase carries the state and default behavior every phase shares:
// free transitions, cancellation allowed, assignment changes frozen,
// and no-op turn hooks.
type BasePhase struct {
	mission   *Mission
	startTurn int
}

func newBasePhase(m *Mission, turn int) BasePhase {
	return BasePhase{mission: m, startTurn: turn}
}

// Mission returns the owning mission.
func (p *BasePhase) Mission() *Mission { return p.mission }

// StartTurn returns the turn the phase became current.
func (p *BasePhase) StartTurn() int { return p.startTurn }

// CanTransitionTo permits any transition by default.
func (p *BasePhase) CanTransitionTo(MissionPhase) bool { return true }

// OnTransitionedTo is a no-op by default.
func (p *BasePhase) OnTransitionedTo(*game.Game, MissionPhase) {}

// AllowsCancellation permits cancellation by default.
func (p *BasePhase) AllowsCancellation() bool { return true }

// AllowsAssignmentChanges forbids assignment changes by default; only
// planning-like phases open them up.
func (p *BasePhase) AllowsAssignmentChanges() bool { return false }

// OnTurnStarted is a no-op by default.
func (p *BasePhase) OnTurnStarted(*game.Game) {}

// OnTurnPhaseStarted is a no-op by default.
func (p *BasePhase) OnTurnPhaseStarted(*game.Game, game.TurnPhase) {}

// OnTurnPhaseFinished is a no-op by default.
func (p *BasePhase) OnTurnPhaseFinished(*game.Game, game.TurnPhase) {}

// OnTurnFinished is a no-op by default.
func (p *BasePhase) OnTurnFinished(*game.Game) {}

// EncodeTo writes the shared phase state.
func (p *BasePhase) EncodeTo(w *codec.Writer) {
	w.WriteInt(p.startTurn)
}

// DecodeFrom reads the shared phase state.
func (p *BasePhase) DecodeFrom(r *codec.Reader) {
	p.startTurn = r.ReadInt()
}

// PlanningPhase is the initial phase of every mission: assignments are
// open, cancellation is allowed, and any phase may follow.
type PlanningPhase struct {
	BasePhase
}

// NewPlanningPhase creates a planning phase for the mission.
func NewPlanningPhase(m *Mission, turn int) *PlanningPhase {
	return &PlanningPhase{BasePhase: newBasePhase(m, turn)}
}

// Kind identifies the planning variant.
func (p *PlanningPhase) Kind() PhaseKind { return PhasePlanning }

// AllowsAssignmentChanges is open while planning.
func (p *PlanningPhase) AllowsAssignmentChanges() bool { return true }

// CompletedPhase is terminal. It forbids every further transition,
// including back into planning, and carries the mission's success flag.
type CompletedPhase struct {
	BasePhase
	Success bool
}

// NewCompletedPhase creates the terminal phase.
func NewCompletedPhase(m *Mission, turn int, success bool) *CompletedPhase {
	return &CompletedPhase{BasePhase: newBasePhase(m, turn), Success: success}
}

// Kind identifies the completed variant.
func (p *CompletedPhase) Kind() PhaseKind { return PhaseCompleted }

// CanTransitionTo always refuses: completed is terminal.
func (p *CompletedPhase) CanTransitionTo(MissionPhase) bool { return false }

// AllowsCancellation refuses: a finished mission cannot be cancelled.
func (p *CompletedPhase) AllowsCancellation() bool { return false }

// EncodeTo writes the shared state plus the success flag.
func (p *CompletedPhase) EncodeTo(w *codec.Writer) {
	p.BasePhase.EncodeTo(w)
	w.WriteBool(p.Success)
}

// DecodeFrom reads the shared state plus the success flag.
func (p *CompletedPhase) DecodeFrom(r *codec.Reader) {
	p.BasePhase.DecodeFrom(r)
	p.Success = r.ReadBool()
}
