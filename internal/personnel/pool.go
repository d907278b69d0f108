package personnel

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/talgya/dominion/internal/game"
)

// PoolConfig holds recruitment pacing knobs.
type PoolConfig struct {
	// MaxActiveAgentsPerEmpire caps current plus scheduled agents.
	MaxActiveAgentsPerEmpire int

	// MinTurnsBetweenRecruitment is the minimum spacing between two
	// scheduled appearance turns; actual spacing is drawn from
	// [min, 2*min].
	MinTurnsBetweenRecruitment int
}

// DefaultPoolConfig returns the stock recruitment pacing.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxActiveAgentsPerEmpire:   5,
		MinTurnsBetweenRecruitment: 5,
	}
}

// FutureAgent is a scheduled-but-not-yet-recruited agent: an
// (appearance turn, owner, profile) triple consumed once its turn
// arrives.
type FutureAgent struct {
	AppearanceTurn int
	OwnerID        game.CivID
	ProfileName    string
}

// AgentPool is the per-civilization recruitment scheduler. Update runs
// once per turn and performs two ordered sub-operations: recruit the
// future agents whose turn has arrived, then schedule new future
// agents up to the cap.
type AgentPool struct {
	owner *Manager
	cfg   PoolConfig

	FutureAgents []*FutureAgent

	used            map[string]bool // Profiles already recruited or scheduled
	nextRecruitTurn int
}

// NewAgentPool creates a pool for the manager.
func NewAgentPool(owner *Manager, cfg PoolConfig) *AgentPool {
	if cfg.MaxActiveAgentsPerEmpire <= 0 {
		cfg = DefaultPoolConfig()
	}
	if cfg.MinTurnsBetweenRecruitment < 1 {
		cfg.MinTurnsBetweenRecruitment = 1
	}
	return &AgentPool{
		owner: owner,
		cfg:   cfg,
		used:  make(map[string]bool),
	}
}

// Config returns the pool's pacing knobs.
func (p *AgentPool) Config() PoolConfig { return p.cfg }

// Update advances the pool by one turn.
func (p *AgentPool) Update(g *game.Game) {
	if g == nil {
		return
	}
	p.recruitNewAgents(g)
	p.scheduleFutureAgents(g)
}

// recruitNewAgents spawns every future agent whose appearance turn is
// the current turn, in queue order, and moves it into the owner's
// collection.
func (p *AgentPool) recruitNewAgents(g *game.Game) {
	if len(p.FutureAgents) == 0 {
		return
	}

	var remaining []*FutureAgent
	for _, fa := range p.FutureAgents {
		if fa.AppearanceTurn != g.Turn {
			remaining = append(remaining, fa)
			continue
		}

		profile := p.owner.Profiles.Lookup(fa.OwnerID, fa.ProfileName)
		if profile == nil {
			slog.Warn("scheduled agent profile missing, dropping",
				"owner", uint32(fa.OwnerID),
				"profile", fa.ProfileName,
			)
			continue
		}

		agent, err := profile.Spawn(p.owner)
		if err != nil {
			slog.Warn("agent spawn failed",
				"owner", uint32(fa.OwnerID),
				"profile", fa.ProfileName,
				"error", err,
			)
			continue
		}
		agent.AppearanceTurn = g.Turn
		home := p.owner.Civ.SeatOfGovernment
		agent.Location = &home

		if err := p.owner.Agents.Add(agent); err != nil {
			slog.Warn("agent could not join collection", "error", err)
			continue
		}

		p.owner.SitRep.Add(g.Turn, game.SitRepPersonnel,
			fmt.Sprintf("A new agent is available for assignment: %s", agent.DisplayName()))
		slog.Info("agent recruited",
			"owner", uint32(fa.OwnerID),
			"agent", agent.DisplayName(),
			"turn", g.Turn,
		)
	}
	p.FutureAgents = remaining
}

// scheduleFutureAgents fills the pool toward the cap from profiles the
// civilization has not used yet.
//
// The tech-level filter is computed once per call, not per candidate.
// A pool filled in one call can therefore schedule agents whose gate
// would read differently by the time they appear; recruitment pacing
// is balanced around that, so the filter must not move inside the
// loop.
func (p *AgentPool) scheduleFutureAgents(g *game.Game) {
	owner := p.owner.Civ.ID
	if !p.owner.Profiles.HasProfilesFor(owner) {
		slog.Debug("no agent profiles for civilization, skipping scheduling",
			"owner", uint32(owner))
		return
	}

	count := p.owner.Agents.Len() + len(p.FutureAgents)
	if count >= p.cfg.MaxActiveAgentsPerEmpire {
		return
	}

	avgTech := p.owner.Civ.Research.AverageTechLevel()

	var candidates []*AgentProfile
	for _, prof := range p.owner.Profiles.ProfilesFor(owner) {
		if p.used[prof.Name] {
			continue
		}
		if avgTech < prof.MinTechLevel || avgTech > prof.MaxTechLevel {
			continue
		}
		candidates = append(candidates, prof)
	}

	// Earliest-eligible first, narrowest window breaking ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].MinTechLevel != candidates[j].MinTechLevel {
			return candidates[i].MinTechLevel < candidates[j].MinTechLevel
		}
		return candidates[i].MaxTechLevel < candidates[j].MaxTechLevel
	})

	if p.nextRecruitTurn < g.Turn {
		p.nextRecruitTurn = g.Turn
	}

	minSpacing := p.cfg.MinTurnsBetweenRecruitment
	for count < p.cfg.MaxActiveAgentsPerEmpire && len(candidates) > 0 {
		prof := candidates[0]
		candidates = candidates[1:]

		p.nextRecruitTurn += minSpacing + p.owner.rng.Intn(minSpacing+1)
		p.FutureAgents = append(p.FutureAgents, &FutureAgent{
			AppearanceTurn: p.nextRecruitTurn,
			OwnerID:        owner,
			ProfileName:    prof.Name,
		})
		p.used[prof.Name] = true
		count++

		slog.Debug("future agent scheduled",
			"owner", uint32(owner),
			"profile", prof.Name,
			"appearance_turn", p.nextRecruitTurn,
		)
	}
}
