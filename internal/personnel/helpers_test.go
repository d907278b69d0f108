package personnel

import (
	"math/rand"
	"testing"

	"github.com/talgya/dominion/internal/galaxy"
	"github.com/talgya/dominion/internal/game"
)

const testSeed = 99

// newTestProfiles builds an initialized database with one envoy-ish and
// one operative-ish profile for civ 1 and one profile for civ 2. All
// tech windows are wide open.
func newTestProfiles(t *testing.T) *ProfileDatabase {
	t.Helper()
	db := NewProfileDatabase()
	add := func(owner game.CivID, p *AgentProfile) {
		t.Helper()
		if err := db.AddProfile(owner, p); err != nil {
			t.Fatalf("AddProfile(%s): %v", p.Name, err)
		}
	}
	add(1, &AgentProfile{
		Name:          "vale",
		DisplayName:   "Envoy Vale",
		Gender:        GenderFemale,
		NaturalSkills: []AgentSkill{SkillCharisma, SkillEmpathy, SkillDeception},
		MaxTechLevel:  99,
	})
	add(1, &AgentProfile{
		Name:          "rook",
		DisplayName:   "Operative Rook",
		NaturalSkills: []AgentSkill{SkillStealth, SkillCombat, SkillDeception},
		MaxTechLevel:  99,
	})
	add(2, &AgentProfile{
		Name:          "zara",
		DisplayName:   "Legate Zara",
		Gender:        GenderFemale,
		NaturalSkills: []AgentSkill{SkillLeadership, SkillCharisma, SkillEmpathy},
		MaxTechLevel:  99,
	})
	if err := db.EndInit(rand.New(rand.NewSource(3))); err != nil {
		t.Fatalf("EndInit: %v", err)
	}
	return db
}

// fixture is two civilizations ten sectors apart with speed-3 couriers,
// so an envoy trip between their seats takes four turns.
type fixture struct {
	g          *game.Game
	civA, civB *game.Civilization
	mA, mB     *Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithPool(t, PoolConfig{
		MaxActiveAgentsPerEmpire:   5,
		MinTurnsBetweenRecruitment: 1,
	})
}

func newFixtureWithPool(t *testing.T, cfg PoolConfig) *fixture {
	t.Helper()
	civA := &game.Civilization{
		ID:               1,
		Name:             "Aurelia",
		SeatOfGovernment: galaxy.Sector{X: 0, Y: 0},
		ShipDesigns:      []game.ShipDesign{{Name: "Courier", Speed: 3}},
	}
	civB := &game.Civilization{
		ID:               2,
		Name:             "Borealis",
		SeatOfGovernment: galaxy.Sector{X: 10, Y: 0},
		ShipDesigns:      []game.ShipDesign{{Name: "Courier", Speed: 3}},
	}

	db := newTestProfiles(t)
	mA, err := NewManager(civA, db, cfg, testSeed)
	if err != nil {
		t.Fatalf("NewManager(civA): %v", err)
	}
	mB, err := NewManager(civB, db, cfg, testSeed)
	if err != nil {
		t.Fatalf("NewManager(civB): %v", err)
	}

	g := game.NewGame([]*game.Civilization{civA, civB})
	g.AddListener(mA)
	g.AddListener(mB)
	return &fixture{g: g, civA: civA, civB: civB, mA: mA, mB: mB}
}

// spawnAgent spawns the named profile into the manager's collection.
func spawnAgent(t *testing.T, m *Manager, profileName string) *Agent {
	t.Helper()
	p := m.Profiles.Lookup(m.Civ.ID, profileName)
	if p == nil {
		t.Fatalf("profile %q not in database for civ %d", profileName, m.Civ.ID)
	}
	a, err := p.Spawn(m)
	if err != nil {
		t.Fatalf("Spawn(%s): %v", profileName, err)
	}
	if err := m.Agents.Add(a); err != nil {
		t.Fatalf("Add(%s): %v", profileName, err)
	}
	return a
}

// dispatchEnvoy creates an envoy mission from mA to civB, assigns the
// agent, and begins it.
func dispatchEnvoy(t *testing.T, f *fixture, a *Agent) *DiplomaticEnvoyMission {
	t.Helper()
	envoy, err := NewDiplomaticEnvoyMission(f.mA, f.civB.ID, f.g.Turn)
	if err != nil {
		t.Fatalf("NewDiplomaticEnvoyMission: %v", err)
	}
	if err := envoy.Assign(a); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := envoy.Begin(f.g); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	return envoy
}

// tickCombat advances the turn counter and fires the combat sub-phase
// finish into the mission n times, the path travel countdowns run on.
func tickCombat(f *fixture, m *Mission, n int) {
	for i := 0; i < n; i++ {
		f.g.Turn++
		m.OnTurnPhaseFinished(f.g, game.PhaseCombat)
	}
}
