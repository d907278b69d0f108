package game

import (
	"github.com/talgya/dominion/internal/galaxy"
)

// CivID is a unique identifier for a civilization.
type CivID uint32

// TechField enumerates the research fields contributing to a
// civilization's tech level.
type TechField uint8

const (
	TechBiotech TechField = iota
	TechComputers
	TechConstruction
	TechEnergy
	TechPropulsion
	TechWeapons
)

// NumTechFields is the total number of research fields.
const NumTechFields = 6

// Research tracks per-field tech levels for a civilization.
type Research struct {
	Levels [NumTechFields]int `json:"levels"`
}

// TechLevel returns the level of a single field.
func (r *Research) TechLevel(f TechField) int {
	if int(f) >= NumTechFields {
		return 0
	}
	return r.Levels[f]
}

// SetTechLevel sets the level of a single field. Negative levels clamp
// to zero.
func (r *Research) SetTechLevel(f TechField, level int) {
	if int(f) >= NumTechFields {
		return
	}
	if level < 0 {
		level = 0
	}
	r.Levels[f] = level
}

// AverageTechLevel returns the integer average across all fields.
func (r *Research) AverageTechLevel() int {
	sum := 0
	for _, l := range r.Levels {
		sum += l
	}
	return sum / NumTechFields
}

// ShipDesign describes a hull available to a civilization once its
// propulsion research reaches the design's gate.
type ShipDesign struct {
	Name          string `json:"name"`
	Speed         int    `json:"speed"`          // Sectors per turn
	MinPropulsion int    `json:"min_propulsion"` // Propulsion level required
}

// Civilization is one empire in the game.
type Civilization struct {
	ID               CivID         `json:"id"`
	Name             string        `json:"name"`
	SeatOfGovernment galaxy.Sector `json:"seat_of_government"`
	Research         Research      `json:"research"`
	ShipDesigns      []ShipDesign  `json:"ship_designs"`
}

// FastestShipSpeed returns the highest speed among designs the
// civilization's current propulsion level unlocks. Returns 0 when no
// design is available.
func (c *Civilization) FastestShipSpeed() int {
	level := c.Research.TechLevel(TechPropulsion)
	fastest := 0
	for _, d := range c.ShipDesigns {
		if d.MinPropulsion <= level && d.Speed > fastest {
			fastest = d.Speed
		}
	}
	return fastest
}
