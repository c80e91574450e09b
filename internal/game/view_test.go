package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papertactics/internal/game/core"
)

func TestView_FullTruthWithoutFog(t *testing.T) {
	g := newInitializedGame(t, plainPrefs(5, 1))

	view, err := g.View("a")
	require.NoError(t, err)

	assert.Equal(t, "test-game", view.ID)
	assert.True(t, view.MyTurn)
	assert.Equal(t, g.Active.Units, view.Me.Units)
	assert.Equal(t, g.Passive.Units, view.Opponent.Units)
	assert.Equal(t, g.Passive.Reachable, view.Opponent.Reachable)

	opponentView, err := g.View("b")
	require.NoError(t, err)
	assert.False(t, opponentView.MyTurn)
}

func TestView_Idempotent(t *testing.T) {
	prefs := plainPrefs(5, 1)
	prefs.IsVisibilityApplied = true
	g := newInitializedGame(t, prefs)

	first, err := g.View("a")
	require.NoError(t, err)
	second, err := g.View("a")
	require.NoError(t, err)

	assert.Equal(t, first, second, "views without an intervening move must match")
}

func TestView_IsSnapshot(t *testing.T) {
	g := newInitializedGame(t, plainPrefs(5, 3))

	view, err := g.View("a")
	require.NoError(t, err)
	require.NoError(t, g.MakeTurn("a", core.NewCell(2, 2)))

	assert.False(t, view.Me.Units.Contains(core.NewCell(2, 2)),
		"a view taken earlier must not change with the game")

	// Nor does mutating a view leak back into the game.
	view.Me.Units.Add(core.NewCell(4, 4))
	assert.False(t, g.Active.Units.Contains(core.NewCell(4, 4)))
}

func TestView_FogHidesUnseenOpponent(t *testing.T) {
	prefs := plainPrefs(7, 1)
	prefs.IsVisibilityApplied = true
	g := newInitializedGame(t, prefs)

	view, err := g.View("a")
	require.NoError(t, err)

	// The opponent's base at the far corner has never been seen.
	assert.Equal(t, 0, view.Opponent.Units.Len())
	assert.Equal(t, 0, view.Opponent.Reachable.Len(),
		"the shown opponent reachable set derives from visible cells only")
	// The viewer's own state is full truth.
	assert.Equal(t, g.Active.Units, view.Me.Units)
	assert.Equal(t, g.Active.Reachable, view.Me.Reachable)
}

func TestView_FogShowsTrenchesOnlyWhenKnown(t *testing.T) {
	prefs := plainPrefs(5, 1)
	prefs.IsVisibilityApplied = true
	g := newBareGame(t, prefs)
	g.Active.Units.Add(core.NewCell(1, 1))
	g.Passive.Units.Add(core.NewCell(5, 5))
	g.Trenches.Add(core.NewCell(2, 2))
	g.Trenches.Add(core.NewCell(4, 4))
	g.Trenches.Add(core.NewCell(5, 1)) // never adjacent to a's flood
	g.Trenches.Add(core.NewCell(1, 5))
	g.rebuildReachable(g.Active, g.Passive)
	g.rebuildReachable(g.Passive, g.Active)

	view, err := g.View("a")
	require.NoError(t, err)

	// (2,2) was seen directly, which also reveals its mirror (4,4).
	assert.True(t, view.Trenches.Contains(core.NewCell(2, 2)))
	assert.True(t, view.Trenches.Contains(core.NewCell(4, 4)))
	assert.False(t, view.Trenches.Contains(core.NewCell(5, 1)))
	assert.False(t, view.Trenches.Contains(core.NewCell(1, 5)))
}

func TestView_FogEstimatesOpponentReachable(t *testing.T) {
	prefs := plainPrefs(5, 1)
	prefs.IsVisibilityApplied = true
	g := newBareGame(t, prefs)
	g.Active.Units.Add(core.NewCell(2, 2))
	g.Passive.Units.Add(core.NewCell(3, 3)) // adjacent, so visible
	g.Passive.Units.Add(core.NewCell(5, 5)) // out of sight
	g.rebuildReachable(g.Active, g.Passive)
	g.rebuildReachable(g.Passive, g.Active)

	view, err := g.View("a")
	require.NoError(t, err)

	require.Equal(t, core.NewCellSet(core.NewCell(3, 3)), view.Opponent.Units)
	// The estimate floods from the visible unit only; nothing around the
	// hidden unit at (5,5) shows up unless it also neighbours (3,3).
	assert.True(t, view.Opponent.Reachable.Contains(core.NewCell(4, 4)))
	assert.False(t, view.Opponent.Reachable.Contains(core.NewCell(5, 4)))

	// The what-if recomputation never leaks into the real opponent record.
	assert.True(t, g.Passive.Reachable.Contains(core.NewCell(5, 4)))
	assert.True(t, g.Passive.Units.Contains(core.NewCell(5, 5)))
}

func TestView_FogDroppedOnceDecided(t *testing.T) {
	prefs := plainPrefs(5, 1)
	prefs.IsVisibilityApplied = true
	g := newInitializedGame(t, prefs)
	g.Passive.IsDefeated = true

	view, err := g.View("a")
	require.NoError(t, err)

	// With the game decided, the full board is exposed.
	assert.Equal(t, g.Passive.Units, view.Opponent.Units)
	assert.True(t, view.Opponent.IsDefeated)
}

func TestRender_ContainsBoardRows(t *testing.T) {
	g := newInitializedGame(t, plainPrefs(5, 1))

	view, err := g.View("a")
	require.NoError(t, err)
	out := Render(view)

	assert.Contains(t, out, "turns left: 1")
	assert.Contains(t, out, "my turn: true")
}
