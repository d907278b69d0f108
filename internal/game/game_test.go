package game

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/talgya/dominion/internal/galaxy"
)

type recordingListener struct {
	events []string
}

func (r *recordingListener) OnTurnStarted(g *Game) {
	r.events = append(r.events, "started")
}

func (r *recordingListener) OnTurnPhaseStarted(g *Game, phase TurnPhase) {
	r.events = append(r.events, fmt.Sprintf("%s started", phase))
}

func (r *recordingListener) OnTurnPhaseFinished(g *Game, phase TurnPhase) {
	r.events = append(r.events, fmt.Sprintf("%s finished", phase))
}

func (r *recordingListener) OnTurnFinished(g *Game) {
	r.events = append(r.events, "finished")
}

func TestAdvanceTurnDispatchOrder(t *testing.T) {
	g := NewGame(nil)
	l := &recordingListener{}
	g.AddListener(l)

	g.AdvanceTurn()

	if g.Turn != 1 {
		t.Errorf("Turn = %d, want 1", g.Turn)
	}
	want := []string{
		"started",
		"Production started", "Production finished",
		"Movement started", "Movement finished",
		"Combat started", "Combat finished",
		"Diplomacy started", "Diplomacy finished",
		"finished",
	}
	if !reflect.DeepEqual(l.events, want) {
		t.Errorf("dispatch order:\n got %v\nwant %v", l.events, want)
	}
}

type selfRemovingListener struct {
	removed bool
}

func (s *selfRemovingListener) OnTurnStarted(g *Game) {
	g.RemoveListener(s)
	s.removed = true
}
func (s *selfRemovingListener) OnTurnPhaseStarted(g *Game, phase TurnPhase)  {}
func (s *selfRemovingListener) OnTurnPhaseFinished(g *Game, phase TurnPhase) {}
func (s *selfRemovingListener) OnTurnFinished(g *Game)                       {}

func TestListenerMayRemoveItselfMidDispatch(t *testing.T) {
	g := NewGame(nil)
	l := &selfRemovingListener{}
	g.AddListener(l)
	other := &recordingListener{}
	g.AddListener(other)

	g.AdvanceTurn()

	if !l.removed {
		t.Error("listener was not dispatched")
	}
	if len(other.events) == 0 {
		t.Error("remaining listener missed dispatch after mid-turn removal")
	}
}

func TestDiplomacy(t *testing.T) {
	d := NewDiplomacy()

	if d.AtWar(1, 2) {
		t.Error("fresh matrix reports war")
	}
	d.DeclareWar(1, 2)
	if !d.AtWar(1, 2) || !d.AtWar(2, 1) {
		t.Error("war not symmetric after DeclareWar")
	}
	d.MakePeace(2, 1)
	if d.AtWar(1, 2) {
		t.Error("still at war after MakePeace")
	}

	d.DeclareWar(3, 3)
	if d.AtWar(3, 3) {
		t.Error("self-war should be ignored")
	}
}

func TestResearch(t *testing.T) {
	var r Research
	r.SetTechLevel(TechPropulsion, 4)
	r.SetTechLevel(TechWeapons, -2)

	if got := r.TechLevel(TechPropulsion); got != 4 {
		t.Errorf("TechLevel(Propulsion) = %d, want 4", got)
	}
	if got := r.TechLevel(TechWeapons); got != 0 {
		t.Errorf("TechLevel(Weapons) = %d, want clamped 0", got)
	}
	// (4+0+0+0+0+0) / 6 with integer division.
	if got := r.AverageTechLevel(); got != 0 {
		t.Errorf("AverageTechLevel() = %d, want 0", got)
	}
	r.SetTechLevel(TechBiotech, 8)
	if got := r.AverageTechLevel(); got != 2 {
		t.Errorf("AverageTechLevel() = %d, want 2", got)
	}
}

func TestFastestShipSpeed(t *testing.T) {
	civ := &Civilization{
		ID:   1,
		Name: "Testers",
		ShipDesigns: []ShipDesign{
			{Name: "Scow", Speed: 1, MinPropulsion: 0},
			{Name: "Courier", Speed: 3, MinPropulsion: 2},
			{Name: "Clipper", Speed: 6, MinPropulsion: 5},
		},
	}

	cases := []struct {
		propulsion int
		want       int
	}{
		{0, 1},
		{2, 3},
		{4, 3},
		{5, 6},
	}
	for _, tc := range cases {
		civ.Research.SetTechLevel(TechPropulsion, tc.propulsion)
		if got := civ.FastestShipSpeed(); got != tc.want {
			t.Errorf("propulsion %d: FastestShipSpeed() = %d, want %d", tc.propulsion, got, tc.want)
		}
	}

	none := &Civilization{ID: 2, Name: "Grounded"}
	if got := none.FastestShipSpeed(); got != 0 {
		t.Errorf("no designs: FastestShipSpeed() = %d, want 0", got)
	}
}

func TestGameCivLookup(t *testing.T) {
	a := &Civilization{ID: 1, Name: "A", SeatOfGovernment: galaxy.Sector{X: 0, Y: 0}}
	b := &Civilization{ID: 2, Name: "B", SeatOfGovernment: galaxy.Sector{X: 5, Y: 5}}
	g := NewGame([]*Civilization{a, b})

	if g.Civ(1) != a || g.Civ(2) != b {
		t.Error("Civ lookup returned wrong civilization")
	}
	if g.Civ(99) != nil {
		t.Error("Civ(99) should be nil")
	}
	if len(g.Civs()) != 2 {
		t.Errorf("Civs() len = %d, want 2", len(g.Civs()))
	}
}

func TestSitRepLog(t *testing.T) {
	var l SitRepLog
	if got := l.Recent(3); got != nil {
		t.Errorf("Recent on empty log = %v, want nil", got)
	}

	l.Add(1, SitRepPersonnel, "first")
	l.Add(2, SitRepDiplomacy, "second")
	l.Add(3, SitRepMilitary, "third")

	got := l.Recent(2)
	if len(got) != 2 || got[0].Summary != "second" || got[1].Summary != "third" {
		t.Errorf("Recent(2) = %v, want last two entries", got)
	}
	if got := l.Recent(10); len(got) != 3 {
		t.Errorf("Recent(10) len = %d, want 3", len(got))
	}

	if label := got[0].TurnLabel(); label != "1st turn" {
		t.Errorf("TurnLabel() = %q, want %q", label, "1st turn")
	}
}
