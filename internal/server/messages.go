package server

import (
	"papertactics/internal/game"
	"papertactics/internal/game/core"
)

// ClientMessage is what a connected player sends over the websocket.
type ClientMessage struct {
	// Type is one of "create", "join", "move" or "view".
	Type   string `json:"type"`
	GameID string `json:"game_id,omitempty"`
	// Cell is the chosen move target for "move".
	Cell *core.Cell `json:"cell,omitempty"`
	// Preferences overrides the server's default game settings for "create".
	Preferences *PreferencesMessage `json:"preferences,omitempty"`
}

// PreferencesMessage mirrors game.Preferences on the wire. Geometry is not
// part of the protocol; the server always builds square boards.
type PreferencesMessage struct {
	Size                 int  `json:"size"`
	TurnCount            int  `json:"turn_count"`
	IsDeathmatch         bool `json:"is_deathmatch"`
	IsAgainstBot         bool `json:"is_against_bot"`
	IsDoubleBase         bool `json:"is_double_base"`
	IsWithRandomBases    bool `json:"is_with_random_bases"`
	IsVisibilityApplied  bool `json:"is_visibility_applied"`
	TrenchDensityPercent int  `json:"trench_density_percent"`
}

// Preferences converts the wire form into engine preferences.
func (p *PreferencesMessage) Preferences() game.Preferences {
	return game.Preferences{
		Size:                 p.Size,
		TurnCount:            p.TurnCount,
		IsDeathmatch:         p.IsDeathmatch,
		IsAgainstBot:         p.IsAgainstBot,
		IsDoubleBase:         p.IsDoubleBase,
		IsWithRandomBases:    p.IsWithRandomBases,
		IsVisibilityApplied:  p.IsVisibilityApplied,
		TrenchDensityPercent: p.TrenchDensityPercent,
		Geometry:             core.NewSquareGeometry(p.Size),
	}
}

// ServerMessage is what the server pushes back to a player.
type ServerMessage struct {
	// Type is one of "welcome", "created", "view" or "error".
	Type     string         `json:"type"`
	PlayerID string         `json:"player_id,omitempty"`
	GameID   string         `json:"game_id,omitempty"`
	View     *game.GameView `json:"view,omitempty"`
	Error    string         `json:"error,omitempty"`
}
