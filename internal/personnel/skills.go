// Package personnel provides the agent roster: recruitable profiles,
// live agents with skill meters, the per-civilization recruitment pool,
// and the mission/assignment lifecycles agents are attached to.
package personnel

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/talgya/dominion/internal/codec"
	"github.com/talgya/dominion/internal/meter"
)

// AgentSkill enumerates the six agent skills.
type AgentSkill uint8

const (
	SkillLeadership AgentSkill = iota
	SkillCharisma
	SkillDeception
	SkillStealth
	SkillCombat
	SkillEmpathy
)

// NumAgentSkills is the total number of skills.
const NumAgentSkills = 6

// NaturalSkillsPerAgent is the number of natural skills every profile
// carries after load-time normalization.
const NaturalSkillsPerAgent = 3

// MaxSkillRating is the upper bound of every skill meter.
const MaxSkillRating = 100

// String returns the skill name.
func (s AgentSkill) String() string {
	switch s {
	case SkillLeadership:
		return "Leadership"
	case SkillCharisma:
		return "Charisma"
	case SkillDeception:
		return "Deception"
	case SkillStealth:
		return "Stealth"
	case SkillCombat:
		return "Combat"
	case SkillEmpathy:
		return "Empathy"
	default:
		return "Unknown"
	}
}

// ParseAgentSkill maps a case-insensitive skill name to its value.
func ParseAgentSkill(name string) (AgentSkill, error) {
	switch strings.ToLower(name) {
	case "leadership":
		return SkillLeadership, nil
	case "charisma":
		return SkillCharisma, nil
	case "deception":
		return SkillDeception, nil
	case "stealth":
		return SkillStealth, nil
	case "combat":
		return SkillCombat, nil
	case "empathy":
		return SkillEmpathy, nil
	default:
		return 0, fmt.Errorf("personnel: unknown agent skill %q", name)
	}
}

// AgentSkillMeter is one bounded skill counter tagged with its skill.
type AgentSkillMeter struct {
	Skill AgentSkill
	meter.Meter
}

// EncodeTo writes the meter with its skill tag.
func (m *AgentSkillMeter) EncodeTo(w *codec.Writer) {
	w.WriteByte(byte(m.Skill))
	m.Meter.EncodeTo(w)
}

// DecodeFrom reads the meter with its skill tag.
func (m *AgentSkillMeter) DecodeFrom(r *codec.Reader) {
	b, _ := r.ReadByte()
	m.Skill = AgentSkill(b)
	m.Meter.DecodeFrom(r)
}

// Starting-value ranges per natural-skill slot: primary, secondary,
// tertiary.
var skillSeedRanges = [NaturalSkillsPerAgent]struct{ lo, hi int }{
	{15, 20},
	{10, 14},
	{3, 7},
}

// AgentSkillMeters holds an agent's three natural-skill meters in
// primary/secondary/tertiary order.
type AgentSkillMeters struct {
	meters [NaturalSkillsPerAgent]AgentSkillMeter
}

// NewAgentSkillMeters seeds meters for the profile's natural skills:
// primary 15–20, secondary 10–14, tertiary 3–7.
func NewAgentSkillMeters(p *AgentProfile, rng *rand.Rand) AgentSkillMeters {
	var s AgentSkillMeters
	for i := 0; i < NaturalSkillsPerAgent && i < len(p.NaturalSkills); i++ {
		seed := skillSeedRanges[i]
		value := seed.lo + rng.Intn(seed.hi-seed.lo+1)
		s.meters[i] = AgentSkillMeter{
			Skill: p.NaturalSkills[i],
			Meter: meter.New(0, MaxSkillRating, value),
		}
	}
	return s
}

// MeterFor returns the meter bound to the given skill, or nil when the
// skill is not one of the agent's natural skills.
func (s *AgentSkillMeters) MeterFor(skill AgentSkill) *AgentSkillMeter {
	for i := range s.meters {
		if s.meters[i].Skill == skill {
			return &s.meters[i]
		}
	}
	return nil
}

// Primary returns the primary skill meter.
func (s *AgentSkillMeters) Primary() *AgentSkillMeter { return &s.meters[0] }

// Secondary returns the secondary skill meter.
func (s *AgentSkillMeters) Secondary() *AgentSkillMeter { return &s.meters[1] }

// Tertiary returns the tertiary skill meter.
func (s *AgentSkillMeters) Tertiary() *AgentSkillMeter { return &s.meters[2] }

// Snapshot captures current ratings across all six skills; skills the
// agent lacks read zero.
func (s *AgentSkillMeters) Snapshot() AgentSkillRatingsSnapshot {
	var snap AgentSkillRatingsSnapshot
	for i := range s.meters {
		snap.Set(s.meters[i].Skill, s.meters[i].Current())
	}
	return snap
}

// EncodeTo writes the three meters in order.
func (s *AgentSkillMeters) EncodeTo(w *codec.Writer) {
	for i := range s.meters {
		s.meters[i].EncodeTo(w)
	}
}

// DecodeFrom reads the three meters in order.
func (s *AgentSkillMeters) DecodeFrom(r *codec.Reader) {
	for i := range s.meters {
		s.meters[i].DecodeFrom(r)
	}
}

// AgentSkillRatingsSnapshot is a flat view of ratings across all six
// skills. Sets clamp to [0, MaxSkillRating] unconditionally.
type AgentSkillRatingsSnapshot struct {
	ratings [NumAgentSkills]int
}

// Set records a rating, clamping into [0, MaxSkillRating]. Unknown
// skills are ignored.
func (s *AgentSkillRatingsSnapshot) Set(skill AgentSkill, value int) {
	if int(skill) >= NumAgentSkills {
		return
	}
	if value < 0 {
		value = 0
	}
	if value > MaxSkillRating {
		value = MaxSkillRating
	}
	s.ratings[skill] = value
}

// Rating returns the recorded rating for a skill; unknown skills read
// zero.
func (s *AgentSkillRatingsSnapshot) Rating(skill AgentSkill) int {
	if int(skill) >= NumAgentSkills {
		return 0
	}
	return s.ratings[skill]
}
