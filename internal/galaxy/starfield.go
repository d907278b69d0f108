package galaxy

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds starfield generation parameters.
type GenConfig struct {
	Width     int     // Grid width in sectors
	Height    int     // Grid height in sectors
	Seed      int64   // Noise seed
	Density   float64 // Noise threshold above which a sector holds a star (0.0–1.0)
	Frequency float64 // Noise sampling frequency
}

// DefaultGenConfig returns parameters for a small, playable galaxy.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:     40,
		Height:    30,
		Seed:      42,
		Density:   0.62,
		Frequency: 0.18,
	}
}

// Starfield is a generated galactic map.
type Starfield struct {
	Width  int
	Height int
	Stars  []Sector

	starSet map[Sector]bool
}

// Generate creates a starfield from simplex noise. Deterministic for a
// given config.
func Generate(cfg GenConfig) *Starfield {
	noise := opensimplex.NewNormalized(cfg.Seed)

	f := &Starfield{
		Width:   cfg.Width,
		Height:  cfg.Height,
		starSet: make(map[Sector]bool),
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			v := noise.Eval2(float64(x)*cfg.Frequency, float64(y)*cfg.Frequency)
			if v >= cfg.Density {
				s := Sector{X: x, Y: y}
				f.Stars = append(f.Stars, s)
				f.starSet[s] = true
			}
		}
	}

	return f
}

// HasStar reports whether the sector holds a star.
func (f *Starfield) HasStar(s Sector) bool {
	return f.starSet[s]
}

// SpreadHomeworlds picks n star sectors far apart from each other:
// the first is chosen by the rng, each following pick maximizes the
// minimum distance to those already chosen. Returns fewer than n when
// the field has fewer stars.
func (f *Starfield) SpreadHomeworlds(n int, rng *rand.Rand) []Sector {
	if n <= 0 || len(f.Stars) == 0 {
		return nil
	}
	if n > len(f.Stars) {
		n = len(f.Stars)
	}

	picked := []Sector{f.Stars[rng.Intn(len(f.Stars))]}
	for len(picked) < n {
		best := f.Stars[0]
		bestScore := -1
		for _, cand := range f.Stars {
			score := minDistanceTo(cand, picked)
			if score > bestScore {
				best = cand
				bestScore = score
			}
		}
		if bestScore == 0 {
			break
		}
		picked = append(picked, best)
	}
	return picked
}

func minDistanceTo(s Sector, others []Sector) int {
	min := -1
	for _, o := range others {
		d := Distance(s, o)
		if min < 0 || d < min {
			min = d
		}
	}
	return min
}
