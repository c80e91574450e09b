package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"papertactics/internal/game/core"
	"papertactics/internal/game/events"
	"papertactics/internal/game/mapgen"
)

// OpponentPolicy chooses moves for an automated player. Choose receives the
// automated player's own (fog-limited) view and the number of moves left in
// the current round, and must return a cell from that player's reachable
// set; anything else is treated as a broken collaborator, not a game-rule
// outcome.
type OpponentPolicy interface {
	Choose(view GameView, turnsLeft int) (core.Cell, error)
}

// Game is a single two-player match. It is a synchronous, single-threaded
// state machine: callers must serialize access per instance. A Game owns
// its two players and its trench set exclusively; nothing is shared across
// games.
type Game struct {
	ID    string
	Prefs Preferences

	TurnsLeft int
	Active    *Player
	Passive   *Player

	// Trenches is frozen at Init and never mutated afterwards.
	Trenches core.CellSet

	// Policy is consulted for automated moves when Prefs.IsAgainstBot is set.
	Policy OpponentPolicy

	rng         *rand.Rand
	logger      zerolog.Logger
	bus         events.Publisher
	initialized bool
}

// NewGame creates an uninitialized game. A nil rng falls back to a
// time-seeded source; pass a seeded one for reproducible board generation.
func NewGame(id string, prefs Preferences, active, passive *Player, rng *rand.Rand, logger zerolog.Logger) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{
		ID:      id,
		Prefs:   prefs,
		Active:  active,
		Passive: passive,
		rng:     rng,
		logger:  logger.With().Str("component", "game").Str("game_id", id).Logger(),
	}
}

// SetEventBus attaches a bus the game publishes lifecycle events to.
// Without one the game stays silent.
func (g *Game) SetEventBus(bus events.Publisher) {
	g.bus = bus
}

// Init places bases, scatters trenches and computes both initial reachable
// sets. It must be called exactly once, before any turn is submitted, with
// two distinct player identities.
func (g *Game) Init() error {
	if err := g.Prefs.Validate(); err != nil {
		return fmt.Errorf("game %s: %w", g.ID, err)
	}
	if g.initialized {
		return fmt.Errorf("game %s: init called twice: %w", g.ID, core.ErrIntegrity)
	}
	if g.Active.ID == g.Passive.ID {
		return fmt.Errorf("game %s: players share identity %q: %w", g.ID, g.Active.ID, core.ErrIntegrity)
	}

	gen := mapgen.NewGenerator(mapgen.Config{
		Size:                 g.Prefs.Size,
		DoubleBase:           g.Prefs.IsDoubleBase,
		RandomBases:          g.Prefs.IsWithRandomBases,
		TrenchDensityPercent: g.Prefs.TrenchDensityPercent,
		Geometry:             g.Prefs.Geometry,
	}, g.rng)

	activeBases, passiveBases := gen.PlaceBases()
	for _, c := range activeBases {
		g.Active.Units.Add(c)
	}
	for _, c := range passiveBases {
		g.Passive.Units.Add(c)
	}

	occupied := g.Active.Units.Clone()
	for c := range g.Passive.Units {
		occupied.Add(c)
	}
	g.Trenches = gen.ScatterTrenches(occupied)

	g.rebuildReachable(g.Active, g.Passive)
	g.rebuildReachable(g.Passive, g.Active)
	g.TurnsLeft = g.Prefs.TurnCount
	g.initialized = true

	g.logger.Debug().
		Int("size", g.Prefs.Size).
		Int("trenches", g.Trenches.Len()).
		Msg("Game initialized")
	g.publish(events.NewGameStartedEvent(g.ID, g.Prefs.Size, g.Trenches.Len(), g.Active.ID, g.Passive.ID))
	return nil
}

// MakeTurn applies one chosen cell as a move for the submitting player.
// Validation happens strictly before any mutation: a rejected move leaves
// the game untouched.
func (g *Game) MakeTurn(playerID string, cell core.Cell) error {
	if playerID != g.Active.ID ||
		!g.Active.Reachable.Contains(cell) ||
		!g.Active.CanWin() || !g.Passive.CanWin() {
		return &core.IllegalTurnError{GameID: g.ID, PlayerID: playerID, Cell: cell}
	}

	g.resolve(cell, g.Active, g.Passive)
	return g.endTurn()
}

// resolve classifies and applies one move. The cases are evaluated in
// order capture, trench, expand; each is terminal.
func (g *Game) resolve(cell core.Cell, mover, opponent *Player) {
	var outcome string
	switch {
	case opponent.Units.Contains(cell):
		// Capture: the cell flips from opponent unit to mover wall, which
		// invalidates the opponent's reachable computation.
		opponent.Units.Remove(cell)
		mover.Walls.Add(cell)
		g.rebuildReachable(opponent, mover)
		outcome = events.OutcomeCapture
	case g.Trenches.Contains(cell):
		// Claiming a trench denies that one cell to the opponent without a
		// full rebuild on their side: their own territory is unaffected,
		// only the move option disappears.
		mover.Walls.Add(cell)
		opponent.Reachable.Remove(cell)
		outcome = events.OutcomeTrench
	default:
		mover.Units.Add(cell)
		outcome = events.OutcomeExpand
	}

	g.rebuildReachable(mover, opponent)
	g.publish(events.NewTurnResolvedEvent(g.ID, mover.ID, cell, outcome, g.TurnsLeft))
}

// endTurn counts the move against the current round and, at round
// boundaries, escalates deathmatch, runs the bot round or swaps roles, and
// checks the stalemate-by-exhaustion loss condition.
func (g *Game) endTurn() error {
	g.TurnsLeft--
	if g.TurnsLeft == 0 {
		if g.Prefs.IsDeathmatch {
			g.Prefs.TurnCount++
		}
		g.TurnsLeft = g.Prefs.TurnCount

		if g.Prefs.IsAgainstBot {
			if err := g.runBotRound(); err != nil {
				return err
			}
			// Second escalation after the bot round keeps both sides'
			// round lengths in lockstep under deathmatch.
			if g.Prefs.IsDeathmatch {
				g.Prefs.TurnCount++
			}
			g.TurnsLeft = g.Prefs.TurnCount
		} else {
			g.Active, g.Passive = g.Passive, g.Active
		}
	}

	if g.Active.Reachable.Len() == 0 && !g.Passive.IsDefeated {
		g.Active.IsDefeated = true
		g.logger.Info().Str("player_id", g.Active.ID).Msg("Player defeated, no reachable cells")
		g.publish(events.NewPlayerDefeatedEvent(g.ID, g.Active.ID))
	}
	return nil
}

// runBotRound plays up to TurnCount automated moves for the passive player.
func (g *Game) runBotRound() error {
	if g.Policy == nil {
		return fmt.Errorf("game %s: bot game without opponent policy: %w", g.ID, core.ErrIntegrity)
	}

	for i := 0; i < g.Prefs.TurnCount; i++ {
		if g.Passive.Reachable.Len() == 0 {
			g.Passive.IsDefeated = true
			g.publish(events.NewPlayerDefeatedEvent(g.ID, g.Passive.ID))
			break
		}

		view, err := g.View(g.Passive.ID)
		if err != nil {
			return err
		}
		cell, err := g.Policy.Choose(view, g.TurnsLeft)
		if err != nil {
			return fmt.Errorf("game %s: opponent policy: %w", g.ID, err)
		}
		if !g.Passive.Reachable.Contains(cell) {
			return fmt.Errorf("game %s: policy chose unreachable cell %s: %w", g.ID, cell, core.ErrIntegrity)
		}

		g.resolve(cell, g.Passive, g.Active)
		g.TurnsLeft--
	}
	return nil
}

func (g *Game) publish(e events.Event) {
	if g.bus != nil {
		g.bus.Publish(e)
	}
}
