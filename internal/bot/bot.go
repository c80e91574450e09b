// Package bot provides the default opponent policy used for automated
// games. The engine only talks to it through game.OpponentPolicy, so any
// other policy can be swapped in.
package bot

import (
	"errors"
	"math/rand"
	"time"

	"papertactics/internal/game"
	"papertactics/internal/game/core"
)

// Greedy is a simple opponent policy: capture an opponent unit if possible,
// otherwise claim a trench, otherwise advance toward the nearest visible
// opponent cell. Ties are broken with the injected RNG, so games are
// reproducible given a seed.
type Greedy struct {
	rng *rand.Rand
}

// NewGreedy creates a greedy policy. A nil rng falls back to a time-seeded
// source.
func NewGreedy(rng *rand.Rand) *Greedy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Greedy{rng: rng}
}

// Choose picks one cell from the view's reachable set.
func (b *Greedy) Choose(view game.GameView, turnsLeft int) (core.Cell, error) {
	reachable := view.Me.Reachable.Sorted()
	if len(reachable) == 0 {
		return core.Cell{}, errors.New("no reachable cells to choose from")
	}

	var captures, trenches []core.Cell
	for _, c := range reachable {
		switch {
		case view.Opponent.Units.Contains(c):
			captures = append(captures, c)
		case view.Trenches.Contains(c):
			trenches = append(trenches, c)
		}
	}

	if len(captures) > 0 {
		return captures[b.rng.Intn(len(captures))], nil
	}
	if len(trenches) > 0 {
		return trenches[b.rng.Intn(len(trenches))], nil
	}
	return b.advance(view, reachable), nil
}

// advance picks the reachable cell closest to any visible opponent cell,
// falling back to a random cell when no opponent is visible.
func (b *Greedy) advance(view game.GameView, reachable []core.Cell) core.Cell {
	targets := view.Opponent.Units.Sorted()
	targets = append(targets, view.Opponent.Walls.Sorted()...)
	if len(targets) == 0 {
		return reachable[b.rng.Intn(len(reachable))]
	}

	best := reachable[0]
	bestDist := -1
	for _, c := range reachable {
		d := nearestDistance(c, targets)
		if bestDist == -1 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// nearestDistance returns the smallest Chebyshev distance from c to any
// target. Chebyshev matches the board's 8-neighbour adjacency: it is the
// number of moves between the cells on an empty board.
func nearestDistance(c core.Cell, targets []core.Cell) int {
	nearest := -1
	for _, t := range targets {
		dx := abs(c.X - t.X)
		dy := abs(c.Y - t.Y)
		d := dx
		if dy > d {
			d = dy
		}
		if nearest == -1 || d < nearest {
			nearest = d
		}
	}
	return nearest
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
