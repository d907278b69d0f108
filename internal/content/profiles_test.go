package content

import (
	"math/rand"
	"testing"

	"github.com/talgya/dominion/internal/personnel"
)

const sampleProfiles = `
civilizations:
  - id: 1
    profiles:
      - name: kess
        display_name: "Envoy Kess"
        gender: female
        natural_skills: [charisma, empathy, deception]
        min_tech_level: 0
        max_tech_level: 4
      - name: draven
        natural_skills: [stealth, mindreading, combat]
        min_tech_level: 1
        max_tech_level: 6
  - id: 2
    profiles:
      - name: tyrel
        display_name: "Legate Tyrel"
        gender: other
        natural_skills: [leadership, charisma, empathy]
        min_tech_level: 0
        max_tech_level: 5
`

func TestParseProfileDatabase(t *testing.T) {
	db, err := ParseProfileDatabase([]byte(sampleProfiles), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("ParseProfileDatabase: %v", err)
	}

	kess := db.Lookup(1, "kess")
	if kess == nil {
		t.Fatal("kess not loaded")
	}
	if kess.DisplayName != "Envoy Kess" {
		t.Errorf("DisplayName = %q, want %q", kess.DisplayName, "Envoy Kess")
	}
	if kess.Gender != personnel.GenderFemale {
		t.Errorf("Gender = %v, want Female", kess.Gender)
	}
	if kess.MinTechLevel != 0 || kess.MaxTechLevel != 4 {
		t.Errorf("tech window = [%d, %d], want [0, 4]", kess.MinTechLevel, kess.MaxTechLevel)
	}
	want := []personnel.AgentSkill{
		personnel.SkillCharisma, personnel.SkillEmpathy, personnel.SkillDeception,
	}
	for i, s := range want {
		if kess.NaturalSkills[i] != s {
			t.Errorf("skill %d = %v, want %v", i, kess.NaturalSkills[i], s)
		}
	}

	if !db.HasProfilesFor(2) {
		t.Error("civ 2 profiles missing")
	}
	if db.Lookup(2, "kess") != nil {
		t.Error("kess leaked across owners")
	}
}

func TestParseToleratesContentProblems(t *testing.T) {
	db, err := ParseProfileDatabase([]byte(sampleProfiles), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("ParseProfileDatabase: %v", err)
	}

	// draven: no display name, an unknown skill dropped and padded back
	// to three at init.
	draven := db.Lookup(1, "draven")
	if draven == nil {
		t.Fatal("draven not loaded")
	}
	if draven.DisplayName != "draven" {
		t.Errorf("DisplayName = %q, want fallback to name", draven.DisplayName)
	}
	if len(draven.NaturalSkills) != personnel.NaturalSkillsPerAgent {
		t.Errorf("skill count = %d, want %d", len(draven.NaturalSkills), personnel.NaturalSkillsPerAgent)
	}
	if draven.NaturalSkills[0] != personnel.SkillStealth {
		t.Errorf("primary skill = %v, want Stealth", draven.NaturalSkills[0])
	}

	// tyrel: unknown gender defaults rather than failing the load.
	tyrel := db.Lookup(2, "tyrel")
	if tyrel == nil {
		t.Fatal("tyrel not loaded")
	}
	if tyrel.Gender != personnel.GenderMale {
		t.Errorf("Gender = %v, want defaulted Male", tyrel.Gender)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := ParseProfileDatabase([]byte("civilizations: ["), rand.New(rand.NewSource(1))); err == nil {
		t.Error("malformed YAML accepted")
	}
}
