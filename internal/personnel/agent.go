package personnel

import (
	"log/slog"
	"math/rand"

	"github.com/talgya/dominion/internal/galaxy"
	"github.com/talgya/dominion/internal/game"
)

// AgentID is a unique identifier for an agent within its owning
// civilization.
type AgentID uint64

// AgentRef is an (agent id, owner id) pair used wherever agents are
// referenced rather than held, e.g. a mission's assignment list.
type AgentRef struct {
	AgentID AgentID    `json:"agent_id"`
	OwnerID game.CivID `json:"owner_id"`
}

// AgentStatus is derived from the agent's current mission phase.
type AgentStatus uint8

const (
	StatusUnassigned AgentStatus = iota
	StatusAvailableForReassignment
	StatusUnavailableForReassignment
)

// String returns the status name.
func (s AgentStatus) String() string {
	switch s {
	case StatusUnassigned:
		return "Unassigned"
	case StatusAvailableForReassignment:
		return "AvailableForReassignment"
	case StatusUnavailableForReassignment:
		return "UnavailableForReassignment"
	default:
		return "Unknown"
	}
}

// Agent is a live, owned instance of a profile. An agent always holds
// exactly one mission (unassigned agents hold the null mission) and at
// most one assignment. Agents are destroyed only by removal from their
// owning collection.
type Agent struct {
	ID             AgentID
	OwnerID        game.CivID
	AppearanceTurn int
	ProfileName    string
	Skills         AgentSkillMeters
	Location       *galaxy.Sector

	mission    *Mission
	assignment *AgentAssignment

	// Profiles are resolved lazily by name so agents survive a save
	// while the content database is reloaded out from under them.
	resolve func() *AgentProfile
	profile *AgentProfile
}

// Profile resolves the agent's profile, caching the result. Returns
// nil (with a logged warning from the resolver) when the content
// database no longer carries the profile.
func (a *Agent) Profile() *AgentProfile {
	if a.profile == nil && a.resolve != nil {
		a.profile = a.resolve()
	}
	return a.profile
}

// DisplayName returns the profile display name, falling back to the
// raw profile key when the profile is missing.
func (a *Agent) DisplayName() string {
	if p := a.Profile(); p != nil {
		return p.DisplayName
	}
	return a.ProfileName
}

// Mission returns the agent's current mission. Never nil.
func (a *Agent) Mission() *Mission {
	return a.mission
}

// Assignment returns the agent's current assignment, or nil.
func (a *Agent) Assignment() *AgentAssignment {
	return a.assignment
}

// Status derives the agent's availability from its mission phase.
func (a *Agent) Status() AgentStatus {
	m := a.mission
	if m == nil || m.Kind() == MissionNull {
		return StatusUnassigned
	}
	if m.CurrentPhase().AllowsAssignmentChanges() {
		return StatusAvailableForReassignment
	}
	return StatusUnavailableForReassignment
}

// OnTurnStarted forwards the turn start to the mission and assignment.
func (a *Agent) OnTurnStarted(g *game.Game) {
	a.mission.OnTurnStarted(g)
	if a.assignment != nil {
		a.assignment.OnTurnStarted(g)
	}
}

// OnTurnPhaseStarted forwards a sub-phase start.
func (a *Agent) OnTurnPhaseStarted(g *game.Game, phase game.TurnPhase) {
	a.mission.OnTurnPhaseStarted(g, phase)
	if a.assignment != nil {
		a.assignment.OnTurnPhaseStarted(g, phase)
	}
}

// OnTurnPhaseFinished forwards a sub-phase finish.
func (a *Agent) OnTurnPhaseFinished(g *game.Game, phase game.TurnPhase) {
	a.mission.OnTurnPhaseFinished(g, phase)
	if a.assignment != nil {
		a.assignment.OnTurnPhaseFinished(g, phase)
	}
}

// OnTurnFinished forwards the turn finish.
func (a *Agent) OnTurnFinished(g *game.Game) {
	a.mission.OnTurnFinished(g)
	if a.assignment != nil {
		a.assignment.OnTurnFinished(g)
	}
}

// AgentCollection is the id-keyed, owner-scoped set of a
// civilization's live agents. Removal is the only destruction path an
// agent has.
type AgentCollection struct {
	OwnerID game.CivID

	nextID AgentID
	agents map[AgentID]*Agent
	order  []AgentID
}

// NewAgentCollection creates an empty collection for the owner.
func NewAgentCollection(owner game.CivID) *AgentCollection {
	return &AgentCollection{
		OwnerID: owner,
		nextID:  1,
		agents:  make(map[AgentID]*Agent),
	}
}

// IssueID hands out the next agent id.
func (c *AgentCollection) IssueID() AgentID {
	id := c.nextID
	c.nextID++
	return id
}

// Add inserts an agent. Nil agents and owner mismatches fail fast;
// duplicate ids are ignored.
func (c *AgentCollection) Add(a *Agent) error {
	if a == nil {
		return ErrNilAgent
	}
	if a.OwnerID != c.OwnerID {
		return ErrWrongOwner
	}
	if _, ok := c.agents[a.ID]; ok {
		return nil
	}
	c.agents[a.ID] = a
	c.order = append(c.order, a.ID)
	return nil
}

// Remove deletes and returns the agent with the given id, or nil.
func (c *AgentCollection) Remove(id AgentID) *Agent {
	a, ok := c.agents[id]
	if !ok {
		return nil
	}
	delete(c.agents, id)
	for i, cur := range c.order {
		if cur == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return a
}

// Get returns the agent with the given id, or nil.
func (c *AgentCollection) Get(id AgentID) *Agent {
	return c.agents[id]
}

// All returns the agents in insertion order.
func (c *AgentCollection) All() []*Agent {
	out := make([]*Agent, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.agents[id])
	}
	return out
}

// Len returns the number of live agents.
func (c *AgentCollection) Len() int {
	return len(c.agents)
}

// Manager bundles a civilization's personnel state: its agents, its
// recruitment pool, its situation report, and the shared profile
// database. Every mission and assignment holds its owning manager.
type Manager struct {
	Civ      *game.Civilization
	Agents   *AgentCollection
	Pool     *AgentPool
	SitRep   *game.SitRepLog
	Profiles *ProfileDatabase

	rng *rand.Rand
}

// NewManager creates a manager with a pool seeded deterministically
// from the game seed and the civilization id.
func NewManager(civ *game.Civilization, profiles *ProfileDatabase, cfg PoolConfig, seed int64) (*Manager, error) {
	if civ == nil {
		return nil, ErrNilOwner
	}
	m := &Manager{
		Civ:      civ,
		Agents:   NewAgentCollection(civ.ID),
		SitRep:   &game.SitRepLog{},
		Profiles: profiles,
		rng:      rand.New(rand.NewSource(seed + int64(civ.ID))),
	}
	m.Pool = NewAgentPool(m, cfg)
	return m, nil
}

// The manager is the civilization's single turn listener: it forwards
// the lifecycle to whatever agents are live at dispatch time, so an
// agent removed from the collection stops receiving callbacks without
// any unregistration step.

// OnTurnStarted forwards the turn start to every live agent.
func (m *Manager) OnTurnStarted(g *game.Game) {
	for _, a := range m.Agents.All() {
		a.OnTurnStarted(g)
	}
}

// OnTurnPhaseStarted forwards a sub-phase start to every live agent.
func (m *Manager) OnTurnPhaseStarted(g *game.Game, phase game.TurnPhase) {
	for _, a := range m.Agents.All() {
		a.OnTurnPhaseStarted(g, phase)
	}
}

// OnTurnPhaseFinished forwards a sub-phase finish to every live agent.
func (m *Manager) OnTurnPhaseFinished(g *game.Game, phase game.TurnPhase) {
	for _, a := range m.Agents.All() {
		a.OnTurnPhaseFinished(g, phase)
	}
}

// OnTurnFinished forwards the turn finish to every live agent.
func (m *Manager) OnTurnFinished(g *game.Game) {
	for _, a := range m.Agents.All() {
		a.OnTurnFinished(g)
	}
}

func (m *Manager) profileResolver(owner game.CivID, name string) func() *AgentProfile {
	return func() *AgentProfile {
		p := m.Profiles.Lookup(owner, name)
		if p == nil {
			slog.Warn("agent profile missing from database",
				"owner", uint32(owner),
				"profile", name,
			)
		}
		return p
	}
}
