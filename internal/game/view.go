package game

import (
	"fmt"
	"maps"

	"papertactics/internal/game/core"
)

// PlayerView is the read-only projection of one player's territory. All
// sets are snapshots: mutating the game after taking a view never changes
// a view already handed out.
type PlayerView struct {
	Units     core.CellSet   `json:"units"`
	Walls     core.CellSet   `json:"walls"`
	Reachable core.CellSet   `json:"reachable"`
	ViewData  map[string]any `json:"view_data,omitempty"`

	IsGone     bool `json:"is_gone"`
	IsDefeated bool `json:"is_defeated"`
}

// GameView is what one player is allowed to see of a game.
type GameView struct {
	ID        string `json:"id"`
	TurnsLeft int    `json:"turns_left"`
	MyTurn    bool   `json:"my_turn"`

	Me       PlayerView `json:"me"`
	Opponent PlayerView `json:"opponent"`

	Trenches core.CellSet `json:"trenches"`
	Prefs    Preferences  `json:"preferences"`
}

// View builds the projection of the game exposed to the given player. It is
// read-only and callable at any time, including after defeat.
//
// The viewer's own state is always shown in full. With fog-of-war on (and
// the game still undecided), the opponent's shown units and walls are cut
// down to what the viewer has seen, shown trenches to known terrain, and
// the opponent's shown reachable set is re-derived from that restricted
// picture alone. That derivation runs on a transient player record which is
// discarded afterwards; it never feeds back into the real opponent.
func (g *Game) View(playerID string) (GameView, error) {
	var me, opponent *Player
	switch playerID {
	case g.Active.ID:
		me, opponent = g.Active, g.Passive
	case g.Passive.ID:
		me, opponent = g.Passive, g.Active
	default:
		return GameView{}, fmt.Errorf("game %s: %w: %q", g.ID, core.ErrUnknownPlayer, playerID)
	}

	var oppUnits, oppWalls, oppReachable, trenches core.CellSet
	if g.Prefs.IsVisibilityApplied && me.CanWin() && opponent.CanWin() {
		oppUnits = opponent.Units.Intersect(me.VisibleOpponent)
		oppWalls = opponent.Walls.Intersect(me.VisibleOpponent)
		trenches = g.Trenches.Intersect(me.VisibleTerrain)

		shadow := NewPlayer(opponent.ID)
		shadow.Units = oppUnits.Clone()
		shadow.Walls = oppWalls.Clone()
		g.rebuildReachable(shadow, me)
		oppReachable = shadow.Reachable
	} else {
		oppUnits = opponent.Units.Clone()
		oppWalls = opponent.Walls.Clone()
		oppReachable = opponent.Reachable.Clone()
		trenches = g.Trenches.Clone()
	}

	return GameView{
		ID:        g.ID,
		TurnsLeft: g.TurnsLeft,
		MyTurn:    me == g.Active,
		Me: PlayerView{
			Units:      me.Units.Clone(),
			Walls:      me.Walls.Clone(),
			Reachable:  me.Reachable.Clone(),
			ViewData:   maps.Clone(me.ViewData),
			IsGone:     me.IsGone,
			IsDefeated: me.IsDefeated,
		},
		Opponent: PlayerView{
			Units:      oppUnits,
			Walls:      oppWalls,
			Reachable:  oppReachable,
			ViewData:   maps.Clone(opponent.ViewData),
			IsGone:     opponent.IsGone,
			IsDefeated: opponent.IsDefeated,
		},
		Trenches: trenches,
		Prefs:    g.Prefs,
	}, nil
}
