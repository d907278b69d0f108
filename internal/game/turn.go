// Package game provides the turn engine, civilizations, diplomacy, and
// the collaborator surface the personnel subsystem runs against. The
// simulation is turn-stepped and single-threaded: the engine drives
// four sub-phases per turn and dispatches lifecycle callbacks to every
// registered listener with the active game passed explicitly. No
// ambient or thread-local state is involved.
package game

// TurnPhase is one of the named sub-phases within a turn.
type TurnPhase uint8

const (
	PhaseProduction TurnPhase = iota
	PhaseMovement
	PhaseCombat
	PhaseDiplomacy
)

// TurnPhases lists the sub-phases in dispatch order.
var TurnPhases = []TurnPhase{PhaseProduction, PhaseMovement, PhaseCombat, PhaseDiplomacy}

// String returns the phase name.
func (p TurnPhase) String() string {
	switch p {
	case PhaseProduction:
		return "Production"
	case PhaseMovement:
		return "Movement"
	case PhaseCombat:
		return "Combat"
	case PhaseDiplomacy:
		return "Diplomacy"
	default:
		return "Unknown"
	}
}

// TurnListener receives the turn lifecycle. The active game is passed
// on every call so nested or replayed games never depend on shared
// state.
type TurnListener interface {
	OnTurnStarted(g *Game)
	OnTurnPhaseStarted(g *Game, phase TurnPhase)
	OnTurnPhaseFinished(g *Game, phase TurnPhase)
	OnTurnFinished(g *Game)
}

// TurnUpdater runs once per turn before listener dispatch. Recruitment
// schedulers register here.
type TurnUpdater interface {
	Update(g *Game)
}
