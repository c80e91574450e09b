package game

import "papertactics/internal/game/core"

// rebuildReachable recomputes p's reachable set from its current units and
// walls via a fixed-point frontier search. The frontier starts at p's units
// and chains through p's own walls (walls are pass-through, never move
// targets themselves); the opponent's walls stop propagation. Every cell
// the frontier touches that is neither a wall of either side nor one of p's
// units is a legal move target.
//
// With fog-of-war on, the same sweep accumulates p's knowledge: every
// adjacent cell is recorded as seen, and seeing one end of a trench pair
// reveals its mirror. Before the sweep, remembered opponent cells that the
// opponent no longer occupies or walls are forgotten, while every current
// non-trench opponent wall is always known.
//
// Must be re-run whenever p's units or walls change, or whenever the
// opponent loses a unit. Terminates because the frontier grows
// monotonically and is bounded by the board.
func (g *Game) rebuildReachable(p, opponent *Player) {
	p.Reachable = core.NewCellSet()

	if g.Prefs.IsVisibilityApplied {
		kept := core.NewCellSet()
		for c := range p.VisibleOpponent {
			if opponent.Units.Contains(c) || opponent.Walls.Contains(c) {
				kept.Add(c)
			}
		}
		for c := range opponent.Walls {
			if !g.Trenches.Contains(c) {
				kept.Add(c)
			}
		}
		p.VisibleOpponent = kept
	}

	frontier := p.Units.Clone()
	for {
		next := core.NewCellSet()

		for src := range frontier {
			for _, c := range g.Prefs.Geometry.Adjacent(src) {
				if g.Prefs.IsVisibilityApplied {
					p.VisibleOpponent.Add(c)
					if g.Trenches.Contains(c) {
						p.VisibleTerrain.Add(c)
						p.VisibleTerrain.Add(g.Prefs.Geometry.Mirror(c))
					}
				}
				switch {
				case frontier.Contains(c):
					// already processed
				case p.Walls.Contains(c):
					next.Add(c)
				case !opponent.Walls.Contains(c) && !p.Units.Contains(c):
					p.Reachable.Add(c)
				}
			}
		}

		if next.Len() == 0 {
			break
		}
		for c := range next {
			frontier.Add(c)
		}
	}
}
