package personnel

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/talgya/dominion/internal/codec"
	"github.com/talgya/dominion/internal/galaxy"
	"github.com/talgya/dominion/internal/game"
)

// Save snapshots: every entity writes its fields in declaration order;
// mission and phase variants are tag-dispatched by kind. Profiles are
// carried by name + owner only and re-resolved lazily after load,
// because the content database is reloaded independently of save
// state. The previous-phase undo slot is not persisted: undo-cancel is
// a same-turn feature and a load starts a fresh turn.

const (
	snapshotMagic   uint32 = 0x444F4D53 // "DOMS"
	snapshotVersion byte   = 1
)

func encodePhase(w *codec.Writer, p MissionPhase) {
	w.WriteByte(byte(p.Kind()))
	p.EncodeTo(w)
}

func decodePhase(r *codec.Reader, m *Mission) (MissionPhase, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	var phase MissionPhase
	switch PhaseKind(b) {
	case PhasePlanning:
		phase = &PlanningPhase{BasePhase: newBasePhase(m, 0)}
	case PhaseCompleted:
		phase = &CompletedPhase{BasePhase: newBasePhase(m, 0)}
	case PhaseOutbound, PhaseStationed, PhaseInbound:
		d, ok := m.ops.(*DiplomaticEnvoyMission)
		if !ok {
			return nil, fmt.Errorf("personnel: phase %s on non-envoy mission", PhaseKind(b))
		}
		switch PhaseKind(b) {
		case PhaseOutbound:
			phase = &OutboundPhase{BasePhase: newBasePhase(m, 0), envoy: d}
		case PhaseStationed:
			phase = &StationedPhase{BasePhase: newBasePhase(m, 0), envoy: d}
		default:
			phase = &InboundPhase{BasePhase: newBasePhase(m, 0), envoy: d}
		}
	default:
		return nil, fmt.Errorf("personnel: unknown phase kind %d", b)
	}

	phase.DecodeFrom(r)
	return phase, r.Err()
}

// EncodeTo writes the mission: kind tag, variant payload, shared
// fields, current phase.
func (m *Mission) EncodeTo(w *codec.Writer) {
	w.WriteByte(byte(m.Kind()))
	m.ops.EncodePayload(w)
	w.WriteInt(m.Embarkation.X)
	w.WriteInt(m.Embarkation.Y)
	w.WriteUint32(uint32(len(m.assigned)))
	for _, ref := range m.assigned {
		w.WriteUint64(uint64(ref.AgentID))
		w.WriteUint32(uint32(ref.OwnerID))
	}
	w.WriteBool(m.cancelledTurn != nil)
	if m.cancelledTurn != nil {
		w.WriteInt(*m.cancelledTurn)
	}
	encodePhase(w, m.current)
}

// DecodeMission reads a mission written by EncodeTo, rebinding it to
// the owning manager.
func DecodeMission(r *codec.Reader, owner *Manager) (*Mission, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	var m *Mission
	switch MissionKind(b) {
	case MissionNull:
		m = NewNullMission(owner)
	case MissionDiplomaticEnvoy:
		d, err := NewDiplomaticEnvoyMission(owner, 0, 0)
		if err != nil {
			return nil, err
		}
		m = d.Mission
	default:
		return nil, fmt.Errorf("personnel: unknown mission kind %d", b)
	}

	m.ops.DecodePayload(r)
	m.Embarkation = galaxy.Sector{X: r.ReadInt(), Y: r.ReadInt()}
	n := r.ReadUint32()
	m.assigned = nil
	for i := uint32(0); i < n && r.Err() == nil; i++ {
		ref := AgentRef{
			AgentID: AgentID(r.ReadUint64()),
			OwnerID: game.CivID(r.ReadUint32()),
		}
		m.assigned = append(m.assigned, ref)
	}
	if r.ReadBool() {
		turn := r.ReadInt()
		m.cancelledTurn = &turn
	}

	phase, err := decodePhase(r, m)
	if err != nil {
		return nil, err
	}
	m.current = phase
	return m, r.Err()
}

// EncodeTo writes the agent, including its mission.
func (a *Agent) EncodeTo(w *codec.Writer) {
	w.WriteUint64(uint64(a.ID))
	w.WriteUint32(uint32(a.OwnerID))
	w.WriteInt(a.AppearanceTurn)
	w.WriteString(a.ProfileName)
	a.Skills.EncodeTo(w)
	w.WriteBool(a.Location != nil)
	if a.Location != nil {
		w.WriteInt(a.Location.X)
		w.WriteInt(a.Location.Y)
	}
	a.mission.EncodeTo(w)
}

// DecodeAgent reads an agent written by EncodeTo, recreating its lazy
// profile resolver against the owner's database.
func DecodeAgent(r *codec.Reader, owner *Manager) (*Agent, error) {
	if owner == nil {
		return nil, ErrNilOwner
	}
	a := &Agent{}
	a.ID = AgentID(r.ReadUint64())
	a.OwnerID = game.CivID(r.ReadUint32())
	a.AppearanceTurn = r.ReadInt()
	a.ProfileName = r.ReadString()
	a.Skills.DecodeFrom(r)
	if r.ReadBool() {
		loc := galaxy.Sector{X: r.ReadInt(), Y: r.ReadInt()}
		a.Location = &loc
	}

	mission, err := DecodeMission(r, owner)
	if err != nil {
		return nil, err
	}
	a.mission = mission
	a.resolve = owner.profileResolver(a.OwnerID, a.ProfileName)

	// Re-attach the agent to its own mission's assignment list view.
	if !mission.isAssigned(a.ID) && mission.Kind() != MissionNull {
		mission.assigned = append(mission.assigned, AgentRef{AgentID: a.ID, OwnerID: a.OwnerID})
	}
	return a, r.Err()
}

// EncodeTo writes the collection and every agent in insertion order.
func (c *AgentCollection) EncodeTo(w *codec.Writer) {
	w.WriteUint32(uint32(c.OwnerID))
	w.WriteUint64(uint64(c.nextID))
	w.WriteUint32(uint32(len(c.order)))
	for _, id := range c.order {
		c.agents[id].EncodeTo(w)
	}
}

// DecodeAgentCollection reads a collection written by EncodeTo into
// the owner's (empty) collection and returns the decoded agents.
func DecodeAgentCollection(r *codec.Reader, owner *Manager) ([]*Agent, error) {
	c := owner.Agents
	c.OwnerID = game.CivID(r.ReadUint32())
	c.nextID = AgentID(r.ReadUint64())
	n := r.ReadUint32()

	var agents []*Agent
	for i := uint32(0); i < n; i++ {
		if r.Err() != nil {
			return nil, r.Err()
		}
		a, err := DecodeAgent(r, owner)
		if err != nil {
			return nil, err
		}
		c.agents[a.ID] = a
		c.order = append(c.order, a.ID)
		agents = append(agents, a)
	}
	return agents, r.Err()
}

// EncodeTo writes the pool scheduler state.
func (p *AgentPool) EncodeTo(w *codec.Writer) {
	w.WriteInt(p.nextRecruitTurn)

	names := make([]string, 0, len(p.used))
	for name := range p.used {
		names = append(names, name)
	}
	sort.Strings(names)
	w.WriteUint32(uint32(len(names)))
	for _, name := range names {
		w.WriteString(name)
	}

	w.WriteUint32(uint32(len(p.FutureAgents)))
	for _, fa := range p.FutureAgents {
		w.WriteInt(fa.AppearanceTurn)
		w.WriteUint32(uint32(fa.OwnerID))
		w.WriteString(fa.ProfileName)
	}
}

// DecodeFrom reads the pool scheduler state.
func (p *AgentPool) DecodeFrom(r *codec.Reader) {
	p.nextRecruitTurn = r.ReadInt()

	p.used = make(map[string]bool)
	n := r.ReadUint32()
	for i := uint32(0); i < n && r.Err() == nil; i++ {
		p.used[r.ReadString()] = true
	}

	p.FutureAgents = nil
	n = r.ReadUint32()
	for i := uint32(0); i < n && r.Err() == nil; i++ {
		p.FutureAgents = append(p.FutureAgents, &FutureAgent{
			AppearanceTurn: r.ReadInt(),
			OwnerID:        game.CivID(r.ReadUint32()),
			ProfileName:    r.ReadString(),
		})
	}
}

// EncodeSnapshot serializes the turn counter and every manager's
// personnel state into one save blob.
func EncodeSnapshot(g *game.Game, managers []*Manager) ([]byte, error) {
	if g == nil {
		return nil, ErrNilGame
	}
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)

	w.WriteUint32(snapshotMagic)
	w.WriteByte(snapshotVersion)
	w.WriteInt(g.Turn)
	w.WriteUint32(uint32(len(managers)))
	for _, m := range managers {
		w.WriteUint32(uint32(m.Civ.ID))
		m.Pool.EncodeTo(w)
		m.Agents.EncodeTo(w)
	}

	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot restores a save blob into freshly built managers.
// Restored agents rejoin the turn loop through their manager's
// listener dispatch; no per-agent registration is needed.
func DecodeSnapshot(data []byte, g *game.Game, managers []*Manager) error {
	if g == nil {
		return ErrNilGame
	}
	byID := make(map[game.CivID]*Manager, len(managers))
	for _, m := range managers {
		byID[m.Civ.ID] = m
	}

	r := codec.NewReader(bytes.NewReader(data))
	if magic := r.ReadUint32(); magic != snapshotMagic {
		return fmt.Errorf("decode snapshot: bad magic %#x", magic)
	}
	if v, _ := r.ReadByte(); v != snapshotVersion {
		return fmt.Errorf("decode snapshot: unsupported version %d", v)
	}

	g.Turn = r.ReadInt()
	n := r.ReadUint32()
	for i := uint32(0); i < n; i++ {
		id := game.CivID(r.ReadUint32())
		m, ok := byID[id]
		if !ok {
			return fmt.Errorf("decode snapshot: no manager for civilization %d", id)
		}
		m.Pool.DecodeFrom(r)
		if _, err := DecodeAgentCollection(r, m); err != nil {
			return fmt.Errorf("decode snapshot: civilization %d: %w", id, err)
		}
	}
	return r.Err()
}
