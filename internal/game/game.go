package game

import (
	"log/slog"
)

// Game holds one running game: the turn counter, civilizations, war
// matrix, and the listeners driven through each turn.
type Game struct {
	Turn      int
	Diplomacy *Diplomacy

	civs     []*Civilization
	civIndex map[CivID]*Civilization

	listeners []TurnListener
	updaters  []TurnUpdater
}

// NewGame creates a game at turn 0 with the given civilizations.
func NewGame(civs []*Civilization) *Game {
	g := &Game{
		Diplomacy: NewDiplomacy(),
		civIndex:  make(map[CivID]*Civilization, len(civs)),
	}
	for _, c := range civs {
		g.civs = append(g.civs, c)
		g.civIndex[c.ID] = c
	}
	return g
}

// Civ returns the civilization with the given id, or nil.
func (g *Game) Civ(id CivID) *Civilization {
	return g.civIndex[id]
}

// Civs returns all civilizations in registration order.
func (g *Game) Civs() []*Civilization {
	return g.civs
}

// AddListener registers a turn listener. Listeners added mid-turn join
// dispatch from the next lifecycle step onward.
func (g *Game) AddListener(l TurnListener) {
	if l == nil {
		return
	}
	g.listeners = append(g.listeners, l)
}

// RemoveListener unregisters a turn listener.
func (g *Game) RemoveListener(l TurnListener) {
	for i, cur := range g.listeners {
		if cur == l {
			g.listeners = append(g.listeners[:i], g.listeners[i+1:]...)
			return
		}
	}
}

// AddUpdater registers a per-turn updater, run before listener dispatch.
func (g *Game) AddUpdater(u TurnUpdater) {
	if u == nil {
		return
	}
	g.updaters = append(g.updaters, u)
}

// AdvanceTurn advances the game by one turn: updaters first, then the
// full listener lifecycle across all four sub-phases. Listener sets are
// snapshotted per step because mission completion unassigns agents
// mid-dispatch.
func (g *Game) AdvanceTurn() {
	g.Turn++
	slog.Debug("turn started", "turn", g.Turn)

	for _, u := range snapshot(g.updaters) {
		u.Update(g)
	}

	for _, l := range snapshot(g.listeners) {
		l.OnTurnStarted(g)
	}

	for _, phase := range TurnPhases {
		for _, l := range snapshot(g.listeners) {
			l.OnTurnPhaseStarted(g, phase)
		}
		for _, l := range snapshot(g.listeners) {
			l.OnTurnPhaseFinished(g, phase)
		}
	}

	for _, l := range snapshot(g.listeners) {
		l.OnTurnFinished(g)
	}

	slog.Debug("turn finished", "turn", g.Turn)
}

func snapshot[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
