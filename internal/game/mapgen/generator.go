// Package mapgen produces the initial board: one or two base cells per
// player on opposite edges, and trenches scattered in point-symmetric pairs.
package mapgen

import (
	"math/rand"

	"papertactics/internal/game/core"
)

// Config holds board generation settings.
type Config struct {
	// Size is the board edge length.
	Size int
	// DoubleBase places a second base per player.
	DoubleBase bool
	// RandomBases picks base rows randomly within each player's half of
	// the board instead of the fixed corners.
	RandomBases bool
	// TrenchDensityPercent is the probability (0-100) that a candidate
	// cell becomes a trench.
	TrenchDensityPercent int
	// Geometry supplies the point-symmetry used for trench pairing.
	Geometry core.Geometry
}

// Generator handles board generation with deterministic RNG.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator creates a board generator. The rng is the only source of
// randomness, so a seeded one reproduces the same board.
func NewGenerator(cfg Config, rng *rand.Rand) *Generator {
	return &Generator{cfg: cfg, rng: rng}
}

// PlaceBases returns the base cells for the first player (left edge) and
// the second player (right edge). The second player's bases mirror the
// first player's rows, so starting positions are always symmetric.
func (g *Generator) PlaceBases() (first, second []core.Cell) {
	edge := g.cfg.Size

	firstY, secondY := 1, 1
	if g.cfg.RandomBases {
		firstY = g.randInt(1, (edge+1)/2)
		secondY = g.randInt(edge/2+1, edge)
	}

	first = append(first, core.NewCell(1, firstY))
	second = append(second, core.NewCell(edge, edge-firstY+1))

	if g.cfg.DoubleBase {
		first = append(first, core.NewCell(1, secondY))
		second = append(second, core.NewCell(edge, edge-secondY+1))
	}
	return first, second
}

// ScatterTrenches rolls every candidate cell in one half of the board
// against the trench density and emits each hit together with its mirror,
// so trenches always come in point-symmetric pairs. Cells in occupied
// (the players' bases) are never trenches.
func (g *Generator) ScatterTrenches(occupied core.CellSet) core.CellSet {
	trenches := core.NewCellSet()
	if g.cfg.TrenchDensityPercent <= 0 {
		return trenches
	}

	size := g.cfg.Size
	half := (size + 1) / 2

	for x := 0; x < size; x++ {
		for y := 0; y < half; y++ {
			// Only half of the final candidate row is rolled; the rest of
			// it is reached through mirroring.
			if y == half-1 && x >= half {
				continue
			}
			c := core.NewCell(x+1, y+1)
			if occupied.Contains(c) {
				continue
			}
			if g.randInt(1, 100) <= g.cfg.TrenchDensityPercent {
				trenches.Add(c)
				trenches.Add(g.cfg.Geometry.Mirror(c))
			}
		}
	}
	return trenches
}

// randInt returns a uniform value in [low, high], both inclusive.
func (g *Generator) randInt(low, high int) int {
	return low + g.rng.Intn(high-low+1)
}
