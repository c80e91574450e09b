package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papertactics/internal/game"
	"papertactics/internal/game/core"
	"papertactics/internal/testutil"
)

func newTestManager(t *testing.T, maxGames int) *Manager {
	t.Helper()
	m := NewManager(ManagerConfig{
		MaxGames:        maxGames,
		IdleTimeout:     time.Hour,
		CleanupInterval: time.Hour,
	}, testutil.NopLogger())
	t.Cleanup(m.Close)
	return m
}

func testPrefs() game.Preferences {
	prefs := game.DefaultPreferences()
	prefs.Size = 6
	prefs.Geometry = core.NewSquareGeometry(6)
	return prefs
}

func TestManager_HumanGameLifecycle(t *testing.T) {
	m := newTestManager(t, 10)

	id, err := m.CreateGame("alice", testPrefs())
	require.NoError(t, err)
	require.Equal(t, 1, m.GameCount())

	// Waiting games have no view yet.
	_, err = m.View(id, "alice")
	assert.Error(t, err)

	require.NoError(t, m.JoinGame(id, "bob"))

	players, err := m.Players(id)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, players)

	view, err := m.View(id, "alice")
	require.NoError(t, err)
	require.True(t, view.MyTurn, "the host moves first")

	cells := view.Me.Reachable.Sorted()
	require.NotEmpty(t, cells)
	require.NoError(t, m.MakeTurn(id, "alice", cells[0]))

	after, err := m.View(id, "alice")
	require.NoError(t, err)
	assert.Greater(t, after.Me.Units.Len(), view.Me.Units.Len())
}

func TestManager_BotGameStartsImmediately(t *testing.T) {
	m := newTestManager(t, 10)

	prefs := testPrefs()
	prefs.IsAgainstBot = true
	id, err := m.CreateGame("alice", prefs)
	require.NoError(t, err)

	view, err := m.View(id, "alice")
	require.NoError(t, err)
	assert.True(t, view.MyTurn)

	// Play out a full round; the bot answers inside the same call.
	for i := 0; i < prefs.TurnCount; i++ {
		view, err = m.View(id, "alice")
		require.NoError(t, err)
		cells := view.Me.Reachable.Sorted()
		require.NotEmpty(t, cells)
		require.NoError(t, m.MakeTurn(id, "alice", cells[0]))
	}

	after, err := m.View(id, "alice")
	require.NoError(t, err)
	assert.True(t, after.MyTurn, "against a bot the human is always the active player")
	assert.Greater(t, after.Opponent.Units.Len()+after.Opponent.Walls.Len(), 1,
		"the bot made its moves")
}

func TestManager_JoinErrors(t *testing.T) {
	m := newTestManager(t, 10)

	id, err := m.CreateGame("alice", testPrefs())
	require.NoError(t, err)

	err = m.JoinGame(id, "alice")
	assert.ErrorIs(t, err, core.ErrIntegrity, "host cannot join their own game")

	require.NoError(t, m.JoinGame(id, "bob"))
	err = m.JoinGame(id, "carol")
	assert.ErrorIs(t, err, core.ErrGameFull)
}

func TestManager_GameNotFound(t *testing.T) {
	m := newTestManager(t, 10)

	_, err := m.View("missing", "alice")
	assert.ErrorIs(t, err, core.ErrGameNotFound)

	err = m.MakeTurn("missing", "alice", core.NewCell(1, 1))
	assert.ErrorIs(t, err, core.ErrGameNotFound)

	err = m.JoinGame("missing", "bob")
	assert.ErrorIs(t, err, core.ErrGameNotFound)
}

func TestManager_MaxGames(t *testing.T) {
	m := newTestManager(t, 2)

	_, err := m.CreateGame("a", testPrefs())
	require.NoError(t, err)
	_, err = m.CreateGame("b", testPrefs())
	require.NoError(t, err)

	_, err = m.CreateGame("c", testPrefs())
	assert.Error(t, err)
	assert.Equal(t, 2, m.GameCount())
}

func TestManager_RejectsInvalidPreferences(t *testing.T) {
	m := newTestManager(t, 10)

	// Wire preferences are client input; a zero board size with random
	// bases would otherwise reach board generation and panic there.
	wire := &PreferencesMessage{
		Size:              0,
		TurnCount:         1,
		IsAgainstBot:      true,
		IsWithRandomBases: true,
	}

	var err error
	require.NotPanics(t, func() { _, err = m.CreateGame("host", wire.Preferences()) })
	assert.ErrorIs(t, err, core.ErrInvalidPreferences)
	assert.Equal(t, 0, m.GameCount())

	_, err = m.CreateGame("host", game.Preferences{
		Size:     8,
		Geometry: core.NewSquareGeometry(8),
	})
	assert.ErrorIs(t, err, core.ErrInvalidPreferences, "zero turn count never reaches the engine")
}

func TestManager_UpdateLimitsRaisesGameCap(t *testing.T) {
	m := newTestManager(t, 1)

	_, err := m.CreateGame("a", testPrefs())
	require.NoError(t, err)
	_, err = m.CreateGame("b", testPrefs())
	require.Error(t, err)

	m.UpdateLimits(2, time.Hour)

	_, err = m.CreateGame("b", testPrefs())
	assert.NoError(t, err)
	assert.Equal(t, 2, m.GameCount())
}

func TestManager_UpdateLimitsAffectsCleanup(t *testing.T) {
	m := newTestManager(t, 10)

	_, err := m.CreateGame("a", testPrefs())
	require.NoError(t, err)

	m.UpdateLimits(10, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	m.removeIdleGames()

	assert.Equal(t, 0, m.GameCount())
}

func TestManager_IllegalTurnSurfaces(t *testing.T) {
	m := newTestManager(t, 10)

	id, err := m.CreateGame("alice", testPrefs())
	require.NoError(t, err)
	require.NoError(t, m.JoinGame(id, "bob"))

	var illegal *core.IllegalTurnError
	err = m.MakeTurn(id, "bob", core.NewCell(1, 1))
	require.ErrorAs(t, err, &illegal, "moving out of turn is an illegal turn")
	assert.Equal(t, "bob", illegal.PlayerID)
}
