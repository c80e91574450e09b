package game

import "papertactics/internal/game/core"

// Player is one side's mutable territory record.
//
// Units and Walls are the player's owned and fortified cells. Reachable is
// the set of cells currently legal as the player's next move; it is never
// persisted across turns, the engine fully recomputes it after every
// mutation. VisibleOpponent and VisibleTerrain are fog-of-war knowledge
// sets and stay empty when visibility is off.
type Player struct {
	ID string `json:"id"`

	Units     core.CellSet `json:"units"`
	Walls     core.CellSet `json:"walls"`
	Reachable core.CellSet `json:"reachable"`

	VisibleOpponent core.CellSet `json:"-"`
	VisibleTerrain  core.CellSet `json:"-"`

	// ViewData is an opaque per-player payload carried through to views;
	// the engine never interprets it.
	ViewData map[string]any `json:"view_data,omitempty"`

	IsGone     bool `json:"is_gone"`
	IsDefeated bool `json:"is_defeated"`
}

// NewPlayer creates a player with independently owned, empty sets. Sets are
// never shared between players or copied from a prototype value.
func NewPlayer(id string) *Player {
	return &Player{
		ID:              id,
		Units:           core.NewCellSet(),
		Walls:           core.NewCellSet(),
		Reachable:       core.NewCellSet(),
		VisibleOpponent: core.NewCellSet(),
		VisibleTerrain:  core.NewCellSet(),
		ViewData:        make(map[string]any),
	}
}

// CanWin reports whether the player is still in the running. Derived from
// IsDefeated on every call rather than stored, so it can never go stale.
func (p *Player) CanWin() bool {
	return !p.IsDefeated
}
