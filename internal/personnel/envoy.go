package personnel

import (
	"fmt"
	"log/slog"

	"github.com/talgya/dominion/internal/codec"
	"github.com/talgya/dominion/internal/galaxy"
	"github.com/talgya/dominion/internal/game"
)

// DiplomaticEnvoyMission stations an agent at another civilization's
// seat of government: an outbound trip, a stationed residency, and an
// inbound return. Travel time derives from the sector distance between
// the two seats and the owner's fastest available ship.
type DiplomaticEnvoyMission struct {
	*Mission
	Counterparty game.CivID
}

// NewDiplomaticEnvoyMission creates an envoy mission in planning,
// embarking from the owner's seat of government.
func NewDiplomaticEnvoyMission(owner *Manager, counterparty game.CivID, turn int) (*DiplomaticEnvoyMission, error) {
	if owner == nil {
		return nil, ErrNilOwner
	}
	d := &DiplomaticEnvoyMission{Counterparty: counterparty}
	d.Mission = newMission(owner, d, owner.Civ.SeatOfGovernment, turn)
	return d, nil
}

// Kind identifies the envoy variant.
func (d *DiplomaticEnvoyMission) Kind() MissionKind { return MissionDiplomaticEnvoy }

// CanAssignCore accepts a single assignee.
func (d *DiplomaticEnvoyMission) CanAssignCore(m *Mission, a *Agent) bool {
	return len(m.assigned) == 0
}

// CancelCore turns the mission around: cancelling while outbound or
// stationed transitions into the inbound return trip.
func (d *DiplomaticEnvoyMission) CancelCore(m *Mission, g *game.Game, force bool) bool {
	switch m.current.Kind() {
	case PhaseOutbound, PhaseStationed:
		return m.TransitionToPhase(g, newInboundPhase(d, g.Turn), true)
	default:
		return false
	}
}

// FirstPhase starts the outbound trip.
func (d *DiplomaticEnvoyMission) FirstPhase(m *Mission, g *game.Game) MissionPhase {
	return newOutboundPhase(d, g.Turn)
}

// EncodePayload writes the counterparty id.
func (d *DiplomaticEnvoyMission) EncodePayload(w *codec.Writer) {
	w.WriteUint32(uint32(d.Counterparty))
}

// DecodePayload reads the counterparty id.
func (d *DiplomaticEnvoyMission) DecodePayload(r *codec.Reader) {
	d.Counterparty = game.CivID(r.ReadUint32())
}

// travelTurns returns the one-way trip length in turns: seat-to-seat
// distance over the owner's fastest ship speed, rounded up. A
// civilization with no ship design still crawls at speed 1.
func (d *DiplomaticEnvoyMission) travelTurns(g *game.Game) int {
	counter := g.Civ(d.Counterparty)
	if counter == nil {
		slog.Warn("envoy counterparty unknown, treating trip as instant",
			"owner", uint32(d.OwnerID()),
			"counterparty", uint32(d.Counterparty),
		)
		return 0
	}
	dist := galaxy.Distance(d.owner.Civ.SeatOfGovernment, counter.SeatOfGovernment)
	speed := d.owner.Civ.FastestShipSpeed()
	if speed < 1 {
		speed = 1
	}
	return (dist + speed - 1) / speed
}

// OutboundPhase is the trip toward the counterparty's seat of
// government. Travelling forbids both cancellation and assignment
// changes; an involuntary recall still reaches it through a forced
// cancel.
type OutboundPhase struct {
	BasePhase
	envoy *DiplomaticEnvoyMission

	TotalTurns        int
	TurnsUntilArrival int
}

func newOutboundPhase(d *DiplomaticEnvoyMission, turn int) *OutboundPhase {
	return &OutboundPhase{BasePhase: newBasePhase(d.Mission, turn), envoy: d}
}

// Kind identifies the outbound variant.
func (p *OutboundPhase) Kind() PhaseKind { return PhaseOutbound }

// AllowsCancellation refuses while travelling.
func (p *OutboundPhase) AllowsCancellation() bool { return false }

// OnTransitionedTo computes the ETA from seat distance and ship speed.
func (p *OutboundPhase) OnTransitionedTo(g *game.Game, last MissionPhase) {
	p.TotalTurns = p.envoy.travelTurns(g)
	p.TurnsUntilArrival = p.TotalTurns
}

// TurnsTravelled returns the outbound progress made so far.
func (p *OutboundPhase) TurnsTravelled() int {
	return p.TotalTurns - p.TurnsUntilArrival
}

// OnTurnPhaseFinished counts the trip down on the combat sub-phase and
// transitions to the stationed phase on arrival.
func (p *OutboundPhase) OnTurnPhaseFinished(g *game.Game, phase game.TurnPhase) {
	if phase != game.PhaseCombat {
		return
	}
	if p.TurnsUntilArrival > 0 {
		p.TurnsUntilArrival--
	}
	if p.TurnsUntilArrival <= 0 {
		p.mission.TransitionToPhase(g, newStationedPhase(p.envoy, g.Turn), false)
	}
}

// EncodeTo writes the shared state plus the travel counters.
func (p *OutboundPhase) EncodeTo(w *codec.Writer) {
	p.BasePhase.EncodeTo(w)
	w.WriteInt(p.TotalTurns)
	w.WriteInt(p.TurnsUntilArrival)
}

// DecodeFrom reads the shared state plus the travel counters.
func (p *OutboundPhase) DecodeFrom(r *codec.Reader) {
	p.BasePhase.DecodeFrom(r)
	p.TotalTurns = r.ReadInt()
	p.TurnsUntilArrival = r.ReadInt()
}

// StationedPhase is the residency abroad. Cancellation is open (a
// voluntary recall); assignment changes stay frozen. War breaking out
// with the host forces a recall by the end of the diplomacy sub-phase.
type StationedPhase struct {
	BasePhase
	envoy *DiplomaticEnvoyMission
}

func newStationedPhase(d *DiplomaticEnvoyMission, turn int) *StationedPhase {
	return &StationedPhase{BasePhase: newBasePhase(d.Mission, turn), envoy: d}
}

// Kind identifies the stationed variant.
func (p *StationedPhase) Kind() PhaseKind { return PhaseStationed }

// OnTransitionedTo places the assigned agents at the counterparty's
// seat of government.
func (p *StationedPhase) OnTransitionedTo(g *game.Game, last MissionPhase) {
	counter := g.Civ(p.envoy.Counterparty)
	if counter == nil {
		return
	}
	for _, a := range p.mission.AssignedAgents() {
		loc := counter.SeatOfGovernment
		a.Location = &loc
	}
	p.mission.owner.SitRep.Add(g.Turn, game.SitRepDiplomacy,
		fmt.Sprintf("Our envoy has arrived at %s.", counter.Name))
}

// OnTurnPhaseFinished checks for war with the host at the end of every
// diplomacy sub-phase and force-cancels the mission if found.
func (p *StationedPhase) OnTurnPhaseFinished(g *game.Game, phase game.TurnPhase) {
	if phase != game.PhaseDiplomacy {
		return
	}
	if !g.Diplomacy.AtWar(p.mission.OwnerID(), p.envoy.Counterparty) {
		return
	}

	counterName := ""
	if counter := g.Civ(p.envoy.Counterparty); counter != nil {
		counterName = counter.Name
	}
	p.mission.owner.SitRep.Add(g.Turn, game.SitRepDiplomacy,
		fmt.Sprintf("War with %s forces our envoy home.", counterName))
	slog.Info("envoy recalled by war",
		"owner", uint32(p.mission.OwnerID()),
		"counterparty", uint32(p.envoy.Counterparty),
		"turn", g.Turn,
	)
	p.mission.Cancel(g, true)
}

// InboundPhase is the return trip. When entered directly from an
// outbound leg (mid-flight recall), the turns already travelled are
// credited against the return ETA.
type InboundPhase struct {
	BasePhase
	envoy *DiplomaticEnvoyMission

	TotalTurns        int
	TurnsUntilArrival int
}

func newInboundPhase(d *DiplomaticEnvoyMission, turn int) *InboundPhase {
	return &InboundPhase{BasePhase: newBasePhase(d.Mission, turn), envoy: d}
}

// Kind identifies the inbound variant.
func (p *InboundPhase) Kind() PhaseKind { return PhaseInbound }

// AllowsCancellation refuses: the envoy is already heading home.
func (p *InboundPhase) AllowsCancellation() bool { return false }

// OnTransitionedTo computes the return ETA, crediting outbound
// progress when the previous phase was the outbound leg.
func (p *InboundPhase) OnTransitionedTo(g *game.Game, last MissionPhase) {
	eta := p.envoy.travelTurns(g)
	p.TotalTurns = eta
	if ob, ok := last.(*OutboundPhase); ok {
		eta -= ob.TurnsTravelled()
		if eta < 0 {
			eta = 0
		}
	}
	p.TurnsUntilArrival = eta
}

// OnTurnPhaseFinished counts the trip down on the combat sub-phase and
// completes the mission at home, successful unless it was cancelled.
func (p *InboundPhase) OnTurnPhaseFinished(g *game.Game, phase game.TurnPhase) {
	if phase != game.PhaseCombat {
		return
	}
	if p.TurnsUntilArrival > 0 {
		p.TurnsUntilArrival--
	}
	if p.TurnsUntilArrival > 0 {
		return
	}

	home := p.mission.owner.Civ.SeatOfGovernment
	for _, a := range p.mission.AssignedAgents() {
		loc := home
		a.Location = &loc
	}
	success := !p.mission.IsCancelled()
	p.mission.owner.SitRep.Add(g.Turn, game.SitRepPersonnel, "Our envoy has returned home.")
	p.mission.TransitionToPhase(g, NewCompletedPhase(p.mission, g.Turn, success), false)
}

// EncodeTo writes the shared state plus the travel counters.
func (p *InboundPhase) EncodeTo(w *codec.Writer) {
	p.BasePhase.EncodeTo(w)
	w.WriteInt(p.TotalTurns)
	w.WriteInt(p.TurnsUntilArrival)
}

// DecodeFrom reads the shared state plus the travel counters.
func (p *InboundPhase) DecodeFrom(r *codec.Reader) {
	p.BasePhase.DecodeFrom(r)
	p.TotalTurns = r.ReadInt()
	p.TurnsUntilArrival = r.ReadInt()
}
