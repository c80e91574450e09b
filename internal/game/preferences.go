package game

import (
	"fmt"

	"papertactics/internal/game/core"
)

// Preferences is the per-game configuration bundle. It is fixed for the
// lifetime of a game except TurnCount, which deathmatch mode grows at
// round boundaries.
type Preferences struct {
	// Size is the board edge length.
	Size int `json:"size"`
	// TurnCount is the number of moves allowed per round.
	TurnCount int `json:"turn_count"`

	IsDeathmatch        bool `json:"is_deathmatch"`
	IsAgainstBot        bool `json:"is_against_bot"`
	IsDoubleBase        bool `json:"is_double_base"`
	IsWithRandomBases   bool `json:"is_with_random_bases"`
	IsVisibilityApplied bool `json:"is_visibility_applied"`

	// TrenchDensityPercent is the probability (0-100) that a candidate
	// terrain cell becomes a trench during board generation.
	TrenchDensityPercent int `json:"trench_density_percent"`

	// Geometry answers adjacency and mirror queries. It must cover a board
	// of edge length Size.
	Geometry core.Geometry `json:"-"`
}

// Validate checks the bundle before a game is built from it. Client
// requests reach the engine through here, so bounds are enforced rather
// than assumed.
func (p Preferences) Validate() error {
	if p.Size < 2 {
		return fmt.Errorf("board size must be at least 2, got %d: %w", p.Size, core.ErrInvalidPreferences)
	}
	if p.TurnCount < 1 {
		return fmt.Errorf("turn count must be positive, got %d: %w", p.TurnCount, core.ErrInvalidPreferences)
	}
	if p.TrenchDensityPercent < 0 || p.TrenchDensityPercent > 100 {
		return fmt.Errorf("trench density must be between 0 and 100, got %d: %w", p.TrenchDensityPercent, core.ErrInvalidPreferences)
	}
	if p.Geometry == nil {
		return fmt.Errorf("geometry is required: %w", core.ErrInvalidPreferences)
	}
	return nil
}

// DefaultPreferences returns the standard game setup: a 10x10 board,
// three moves per round, no optional modes.
func DefaultPreferences() Preferences {
	return Preferences{
		Size:      10,
		TurnCount: 3,
		Geometry:  core.NewSquareGeometry(10),
	}
}
