// Package content loads the agent-profile database from YAML content
// files. Content problems are corrected with a logged warning wherever
// a safe default exists; only unreadable files and malformed YAML are
// errors.
package content

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/dominion/internal/game"
	"github.com/talgya/dominion/internal/personnel"
)

type profileFile struct {
	Civilizations []civProfiles `yaml:"civilizations"`
}

type civProfiles struct {
	ID       uint32        `yaml:"id"`
	Profiles []profileYAML `yaml:"profiles"`
}

type profileYAML struct {
	Name          string   `yaml:"name"`
	DisplayName   string   `yaml:"display_name"`
	Gender        string   `yaml:"gender"`
	Image         string   `yaml:"image"`
	NaturalSkills []string `yaml:"natural_skills"`
	MinTechLevel  int      `yaml:"min_tech_level"`
	MaxTechLevel  int      `yaml:"max_tech_level"`
}

// LoadProfileDatabase reads a profile database from a YAML file. The
// rng drives load-time skill padding.
func LoadProfileDatabase(path string, rng *rand.Rand) (*personnel.ProfileDatabase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read profiles: %w", err)
	}
	return ParseProfileDatabase(data, rng)
}

// ParseProfileDatabase builds an initialized profile database from
// YAML bytes.
func ParseProfileDatabase(data []byte, rng *rand.Rand) (*personnel.ProfileDatabase, error) {
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("content: parse profiles: %w", err)
	}

	db := personnel.NewProfileDatabase()
	for _, civ := range file.Civilizations {
		owner := game.CivID(civ.ID)
		for _, py := range civ.Profiles {
			profile := buildProfile(py)
			if err := db.AddProfile(owner, profile); err != nil {
				return nil, err
			}
		}
	}
	if err := db.EndInit(rng); err != nil {
		return nil, err
	}
	return db, nil
}

func buildProfile(py profileYAML) *personnel.AgentProfile {
	p := &personnel.AgentProfile{
		Name:         py.Name,
		DisplayName:  py.DisplayName,
		Image:        py.Image,
		MinTechLevel: py.MinTechLevel,
		MaxTechLevel: py.MaxTechLevel,
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Name
	}

	switch py.Gender {
	case "", "male":
		p.Gender = personnel.GenderMale
	case "female":
		p.Gender = personnel.GenderFemale
	default:
		slog.Warn("unknown gender in profile, defaulting",
			"profile", py.Name, "gender", py.Gender)
		p.Gender = personnel.GenderMale
	}

	for _, name := range py.NaturalSkills {
		skill, err := personnel.ParseAgentSkill(name)
		if err != nil {
			slog.Warn("unknown skill in profile, skipping",
				"profile", py.Name, "skill", name)
			continue
		}
		p.NaturalSkills = append(p.NaturalSkills, skill)
	}
	return p
}
