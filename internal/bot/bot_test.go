package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papertactics/internal/game"
	"papertactics/internal/game/core"
	"papertactics/internal/testutil"
)

func viewWith(reachable, oppUnits, trenches core.CellSet) game.GameView {
	return game.GameView{
		Me:       game.PlayerView{Reachable: reachable},
		Opponent: game.PlayerView{Units: oppUnits, Walls: core.NewCellSet()},
		Trenches: trenches,
	}
}

func TestGreedy_PrefersCapture(t *testing.T) {
	b := NewGreedy(testutil.NewTestRNG(1))

	view := viewWith(
		core.NewCellSet(core.NewCell(2, 2), core.NewCell(3, 3), core.NewCell(4, 4)),
		core.NewCellSet(core.NewCell(3, 3)),
		core.NewCellSet(core.NewCell(4, 4)),
	)

	cell, err := b.Choose(view, 1)
	require.NoError(t, err)
	assert.Equal(t, core.NewCell(3, 3), cell, "a capture beats a trench claim")
}

func TestGreedy_ClaimsTrenchWithoutCapture(t *testing.T) {
	b := NewGreedy(testutil.NewTestRNG(1))

	view := viewWith(
		core.NewCellSet(core.NewCell(2, 2), core.NewCell(4, 4)),
		core.NewCellSet(),
		core.NewCellSet(core.NewCell(4, 4)),
	)

	cell, err := b.Choose(view, 1)
	require.NoError(t, err)
	assert.Equal(t, core.NewCell(4, 4), cell)
}

func TestGreedy_AdvancesTowardVisibleOpponent(t *testing.T) {
	b := NewGreedy(testutil.NewTestRNG(1))

	// Opponent sits at (9,9); of the two options, (5,5) is closer.
	view := viewWith(
		core.NewCellSet(core.NewCell(2, 2), core.NewCell(5, 5)),
		core.NewCellSet(),
		core.NewCellSet(),
	)
	view.Opponent.Units = core.NewCellSet()
	view.Opponent.Walls = core.NewCellSet(core.NewCell(9, 9))

	cell, err := b.Choose(view, 1)
	require.NoError(t, err)
	assert.Equal(t, core.NewCell(5, 5), cell)
}

func TestGreedy_EmptyReachable(t *testing.T) {
	b := NewGreedy(testutil.NewTestRNG(1))

	_, err := b.Choose(viewWith(core.NewCellSet(), core.NewCellSet(), core.NewCellSet()), 1)
	require.Error(t, err)
}

func TestGreedy_AlwaysChoosesReachableCell(t *testing.T) {
	// Play a full bot-vs-bot game and verify the engine never rejects a
	// greedy choice.
	prefs := game.Preferences{
		Size:                 6,
		TurnCount:            2,
		IsAgainstBot:         true,
		TrenchDensityPercent: 20,
		Geometry:             core.NewSquareGeometry(6),
	}
	rng := testutil.NewTestRNG(99)
	g := game.NewGame("bot-match", prefs, game.NewPlayer("human"), game.NewPlayer("cpu"), rng, testutil.NopLogger())
	g.Policy = NewGreedy(rng)
	require.NoError(t, g.Init())

	driver := NewGreedy(rng)
	for i := 0; i < 100; i++ {
		if g.Active.IsDefeated || g.Passive.IsDefeated {
			break
		}
		view, err := g.View(g.Active.ID)
		require.NoError(t, err)
		cell, err := driver.Choose(view, g.TurnsLeft)
		if err != nil {
			break
		}
		require.NoError(t, g.MakeTurn(g.Active.ID, cell))
	}
}
