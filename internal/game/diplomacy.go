package game

// Diplomacy tracks pairwise war state between civilizations.
type Diplomacy struct {
	wars map[warKey]bool
}

type warKey struct {
	a, b CivID
}

func makeWarKey(a, b CivID) warKey {
	if a > b {
		a, b = b, a
	}
	return warKey{a: a, b: b}
}

// NewDiplomacy creates an empty (all-at-peace) war matrix.
func NewDiplomacy() *Diplomacy {
	return &Diplomacy{wars: make(map[warKey]bool)}
}

// DeclareWar marks the two civilizations as at war. Self-war is ignored.
func (d *Diplomacy) DeclareWar(a, b CivID) {
	if a == b {
		return
	}
	d.wars[makeWarKey(a, b)] = true
}

// MakePeace clears the war state between the two civilizations.
func (d *Diplomacy) MakePeace(a, b CivID) {
	delete(d.wars, makeWarKey(a, b))
}

// AtWar reports whether the two civilizations are at war.
func (d *Diplomacy) AtWar(a, b CivID) bool {
	if a == b {
		return false
	}
	return d.wars[makeWarKey(a, b)]
}
