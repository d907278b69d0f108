package personnel

import (
	"log/slog"
	"math/rand"

	"github.com/talgya/dominion/internal/codec"
	"github.com/talgya/dominion/internal/game"
)

// Gender of an agent profile.
type Gender uint8

const (
	GenderMale Gender = iota
	GenderFemale
)

// String returns the gender name.
func (g Gender) String() string {
	if g == GenderFemale {
		return "Female"
	}
	return "Male"
}

// AgentProfile is the static template a recruitable agent is spawned
// from. Profiles are shared and immutable once the database finishes
// loading.
type AgentProfile struct {
	Name          string       // Stable key, unique per civilization
	DisplayName   string
	Gender        Gender
	Image         string       // Portrait reference, opaque to this subsystem
	NaturalSkills []AgentSkill // Exactly NaturalSkillsPerAgent after EndInit
	MinTechLevel  int          // Appearance gate: inclusive lower bound
	MaxTechLevel  int          // Appearance gate: inclusive upper bound
}

// EndInit validates and normalizes the profile. Content problems are
// corrected with a logged warning, never rejected: externally edited
// data must not take down a running game.
//
// The tech window is corrected so min never exceeds max. Natural skills
// are deduplicated, truncated to NaturalSkillsPerAgent, and padded with
// randomly chosen unused skills when short. Padding order depends on
// the rng, so skill backfill varies per load.
func (p *AgentProfile) EndInit(rng *rand.Rand) {
	if p.MaxTechLevel < p.MinTechLevel {
		slog.Warn("agent profile tech window inverted, correcting",
			"profile", p.Name,
			"min", p.MinTechLevel,
			"max", p.MaxTechLevel,
		)
		p.MinTechLevel = p.MaxTechLevel
	}

	deduped := make([]AgentSkill, 0, len(p.NaturalSkills))
	seen := make(map[AgentSkill]bool, len(p.NaturalSkills))
	for _, s := range p.NaturalSkills {
		if int(s) >= NumAgentSkills || seen[s] {
			continue
		}
		seen[s] = true
		deduped = append(deduped, s)
	}
	if len(deduped) != len(p.NaturalSkills) {
		slog.Warn("agent profile skills deduplicated",
			"profile", p.Name,
			"declared", len(p.NaturalSkills),
			"kept", len(deduped),
		)
	}
	p.NaturalSkills = deduped

	if len(p.NaturalSkills) > NaturalSkillsPerAgent {
		slog.Warn("agent profile has too many natural skills, truncating",
			"profile", p.Name,
			"count", len(p.NaturalSkills),
			"limit", NaturalSkillsPerAgent,
		)
		p.NaturalSkills = p.NaturalSkills[:NaturalSkillsPerAgent]
	}

	if len(p.NaturalSkills) < NaturalSkillsPerAgent {
		slog.Warn("agent profile has too few natural skills, padding",
			"profile", p.Name,
			"count", len(p.NaturalSkills),
			"want", NaturalSkillsPerAgent,
		)
		var unused []AgentSkill
		for s := AgentSkill(0); int(s) < NumAgentSkills; s++ {
			if !seen[s] {
				unused = append(unused, s)
			}
		}
		for _, i := range rng.Perm(len(unused)) {
			if len(p.NaturalSkills) == NaturalSkillsPerAgent {
				break
			}
			p.NaturalSkills = append(p.NaturalSkills, unused[i])
		}
	}
}

// Spawn creates a live agent from this profile, owned by the given
// civilization manager. The agent's skill meters are seeded from the
// manager's rng and its mission starts as the null mission. The caller
// adds the agent to the owner's collection.
func (p *AgentProfile) Spawn(owner *Manager) (*Agent, error) {
	if owner == nil {
		return nil, ErrNilOwner
	}
	a := &Agent{
		ID:          owner.Agents.IssueID(),
		OwnerID:     owner.Civ.ID,
		ProfileName: p.Name,
		Skills:      NewAgentSkillMeters(p, owner.rng),
		profile:     p,
	}
	a.resolve = owner.profileResolver(a.OwnerID, p.Name)
	a.mission = NewNullMission(owner)
	return a, nil
}

// EncodeTo writes the profile in declaration order.
func (p *AgentProfile) EncodeTo(w *codec.Writer) {
	w.WriteString(p.Name)
	w.WriteString(p.DisplayName)
	w.WriteByte(byte(p.Gender))
	w.WriteString(p.Image)
	w.WriteUint32(uint32(len(p.NaturalSkills)))
	for _, s := range p.NaturalSkills {
		w.WriteByte(byte(s))
	}
	w.WriteInt(p.MinTechLevel)
	w.WriteInt(p.MaxTechLevel)
}

// DecodeFrom reads the profile in declaration order.
func (p *AgentProfile) DecodeFrom(r *codec.Reader) {
	p.Name = r.ReadString()
	p.DisplayName = r.ReadString()
	g, _ := r.ReadByte()
	p.Gender = Gender(g)
	p.Image = r.ReadString()
	n := r.ReadUint32()
	p.NaturalSkills = nil
	for i := uint32(0); i < n && r.Err() == nil; i++ {
		b, _ := r.ReadByte()
		p.NaturalSkills = append(p.NaturalSkills, AgentSkill(b))
	}
	p.MinTechLevel = r.ReadInt()
	p.MaxTechLevel = r.ReadInt()
}

type profileKey struct {
	owner game.CivID
	name  string
}

// ProfileDatabase holds every civilization's recruitable profiles.
// It is loaded from content data independently of save state; agents
// re-resolve their profile against it by name after deserialization.
type ProfileDatabase struct {
	byOwner     map[game.CivID][]*AgentProfile
	index       map[profileKey]*AgentProfile
	initialized bool
}

// NewProfileDatabase creates an empty database.
func NewProfileDatabase() *ProfileDatabase {
	return &ProfileDatabase{
		byOwner: make(map[game.CivID][]*AgentProfile),
		index:   make(map[profileKey]*AgentProfile),
	}
}

// AddProfile registers a profile for a civilization. Fails once the
// database is initialized.
func (db *ProfileDatabase) AddProfile(owner game.CivID, p *AgentProfile) error {
	if db.initialized {
		return ErrAlreadyInitialized
	}
	if p == nil {
		return ErrNilAgent
	}
	db.byOwner[owner] = append(db.byOwner[owner], p)
	return nil
}

// EndInit normalizes every profile and freezes the database. A second
// call fails with ErrAlreadyInitialized.
func (db *ProfileDatabase) EndInit(rng *rand.Rand) error {
	if db.initialized {
		return ErrAlreadyInitialized
	}
	for owner, profiles := range db.byOwner {
		for _, p := range profiles {
			p.EndInit(rng)
			db.index[profileKey{owner: owner, name: p.Name}] = p
		}
	}
	db.initialized = true
	return nil
}

// HasProfilesFor reports whether the civilization has any profiles.
func (db *ProfileDatabase) HasProfilesFor(owner game.CivID) bool {
	return db != nil && len(db.byOwner[owner]) > 0
}

// ProfilesFor returns the civilization's profiles in load order.
func (db *ProfileDatabase) ProfilesFor(owner game.CivID) []*AgentProfile {
	if db == nil {
		return nil
	}
	return db.byOwner[owner]
}

// Lookup resolves a profile by owner and name, or nil.
func (db *ProfileDatabase) Lookup(owner game.CivID, name string) *AgentProfile {
	if db == nil {
		return nil
	}
	return db.index[profileKey{owner: owner, name: name}]
}
