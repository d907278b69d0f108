// Package galaxy provides the sector grid and starfield generation.
// Sectors use plain cartesian coordinates; travel distance is measured
// in sectors with diagonal moves costing the same as orthogonal ones.
package galaxy

import "fmt"

// Sector represents a position on the galactic grid.
type Sector struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String formats the sector as "(x, y)".
func (s Sector) String() string {
	return fmt.Sprintf("(%d, %d)", s.X, s.Y)
}

// Distance returns the travel distance in sectors between a and b.
// One move covers one sector in any direction, diagonals included.
func Distance(a, b Sector) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
