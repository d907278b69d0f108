// Package meter provides bounded integer accumulators used for skill
// levels and progress percentages. Out-of-range values clamp; meters
// never reject a set.
package meter

import "github.com/talgya/dominion/internal/codec"

// Meter is a bounded counter with a committed base value, a working
// current value, and the value observed at the last commit.
type Meter struct {
	base    int
	current int
	last    int
	min     int
	max     int
}

// New creates a meter clamped to [min, max] with base, current, and
// last all set to the clamped initial value.
func New(min, max, value int) Meter {
	if max < min {
		max = min
	}
	v := clamp(value, min, max)
	return Meter{base: v, current: v, last: v, min: min, max: max}
}

// Base returns the committed base value.
func (m *Meter) Base() int { return m.base }

// Current returns the working value.
func (m *Meter) Current() int { return m.current }

// Last returns the value recorded at the most recent commit.
func (m *Meter) Last() int { return m.last }

// Min returns the lower bound.
func (m *Meter) Min() int { return m.min }

// Max returns the upper bound.
func (m *Meter) Max() int { return m.max }

// IsMinimized reports whether the current value sits at the lower bound.
func (m *Meter) IsMinimized() bool { return m.current == m.min }

// IsMaximized reports whether the current value sits at the upper bound.
func (m *Meter) IsMaximized() bool { return m.current == m.max }

// SetCurrent sets the working value, clamping into [min, max].
func (m *Meter) SetCurrent(value int) {
	m.current = clamp(value, m.min, m.max)
}

// AdjustBy shifts the working value by delta, clamping into [min, max].
func (m *Meter) AdjustBy(delta int) {
	m.SetCurrent(m.current + delta)
}

// AdjustByPercent scales the working value by the given multiplier,
// clamping into [min, max]. A multiplier of 1.10 raises the value 10%.
func (m *Meter) AdjustByPercent(multiplier float64) {
	m.SetCurrent(int(float64(m.current) * multiplier))
}

// UpdateAndReset commits the working value as the new base. Used once a
// change is permanent, e.g. a skill that has finished improving.
func (m *Meter) UpdateAndReset() {
	m.last = m.current
	m.base = m.current
}

// Reset discards the working value and restores the committed base.
func (m *Meter) Reset() {
	m.current = m.base
}

// EncodeTo writes the meter in declaration order.
func (m *Meter) EncodeTo(w *codec.Writer) {
	w.WriteInt(m.base)
	w.WriteInt(m.current)
	w.WriteInt(m.last)
	w.WriteInt(m.min)
	w.WriteInt(m.max)
}

// DecodeFrom reads the meter in declaration order.
func (m *Meter) DecodeFrom(r *codec.Reader) {
	m.base = r.ReadInt()
	m.current = r.ReadInt()
	m.last = r.ReadInt()
	m.min = r.ReadInt()
	m.max = r.ReadInt()
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
