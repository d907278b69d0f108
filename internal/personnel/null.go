package personnel

import (
	"github.com/talgya/dominion/internal/codec"
	"github.com/talgya/dominion/internal/galaxy"
	"github.com/talgya/dominion/internal/game"
)

// nullOps backs the sentinel mission unassigned agents hold. Its
// single planning phase keeps assignment changes open so the agent is
// immediately available for reassignment; it cannot begin or be
// cancelled into anything.
type nullOps struct{}

func (nullOps) Kind() MissionKind                            { return MissionNull }
func (nullOps) CanAssignCore(*Mission, *Agent) bool          { return true }
func (nullOps) CancelCore(*Mission, *game.Game, bool) bool   { return false }
func (nullOps) FirstPhase(*Mission, *game.Game) MissionPhase { return nil }
func (nullOps) EncodePayload(*codec.Writer)                  {}
func (nullOps) DecodePayload(*codec.Reader)                  {}

// NewNullMission creates the sentinel mission an unassigned agent
// holds. An agent's Mission is never nil.
func NewNullMission(owner *Manager) *Mission {
	return newMission(owner, nullOps{}, galaxy.Sector{}, 0)
}
