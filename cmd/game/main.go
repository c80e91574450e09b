// Command game runs a local bot-vs-bot match and prints the board after
// every round, which is handy for eyeballing rule changes.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"papertactics/internal/bot"
	"papertactics/internal/game"
	"papertactics/internal/game/core"
)

func main() {
	size := flag.Int("size", 10, "board edge length")
	turns := flag.Int("turns", 3, "moves per round")
	deathmatch := flag.Bool("deathmatch", false, "grow round length every round")
	fog := flag.Bool("fog", false, "enable fog of war")
	doubleBase := flag.Bool("double-base", false, "two bases per player")
	randomBases := flag.Bool("random-bases", false, "randomize base rows")
	density := flag.Int("trench-density", 12, "trench density percent (0-100)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxRounds := flag.Int("max-rounds", 200, "stop after this many rounds")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	fmt.Printf("seed: %d\n", *seed)
	rng := rand.New(rand.NewSource(*seed))

	prefs := game.Preferences{
		Size:                 *size,
		TurnCount:            *turns,
		IsDeathmatch:         *deathmatch,
		IsAgainstBot:         true,
		IsDoubleBase:         *doubleBase,
		IsWithRandomBases:    *randomBases,
		IsVisibilityApplied:  *fog,
		TrenchDensityPercent: *density,
		Geometry:             core.NewSquareGeometry(*size),
	}

	g := game.NewGame("local", prefs, game.NewPlayer("red"), game.NewPlayer("blue"), rng, log.Logger)
	g.Policy = bot.NewGreedy(rng)
	if err := g.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize game")
	}

	// The passive side is automated by the engine; drive the active side
	// with a second instance of the same policy.
	driver := bot.NewGreedy(rng)

	for round := 0; round < *maxRounds; round++ {
		if g.Active.IsDefeated || g.Passive.IsDefeated {
			break
		}

		// TurnsLeft resets at the round boundary inside MakeTurn, so count
		// the round's moves up front instead of polling it.
		movesThisRound := g.TurnsLeft
		for i := 0; i < movesThisRound && !g.Active.IsDefeated && !g.Passive.IsDefeated; i++ {
			view, err := g.View(g.Active.ID)
			if err != nil {
				log.Fatal().Err(err).Msg("View failed")
			}
			cell, err := driver.Choose(view, g.TurnsLeft)
			if err != nil {
				break
			}
			if err := g.MakeTurn(g.Active.ID, cell); err != nil {
				log.Fatal().Err(err).Msg("Turn failed")
			}
		}

		view, err := g.View(g.Active.ID)
		if err != nil {
			log.Fatal().Err(err).Msg("View failed")
		}
		fmt.Printf("round %d:\n%s\n", round+1, game.Render(view))
	}

	switch {
	case g.Active.IsDefeated:
		fmt.Printf("%s wins\n", g.Passive.ID)
	case g.Passive.IsDefeated:
		fmt.Printf("%s wins\n", g.Active.ID)
	default:
		fmt.Println("no winner within round limit")
	}
}
