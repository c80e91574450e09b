package core

import (
	"errors"
	"fmt"
)

var (
	// ErrIntegrity marks assertion-grade failures: a broken caller or
	// collaborator, never a normal game-rule outcome. Operations that hit
	// one abort without mutating state further.
	ErrIntegrity = errors.New("integrity violation")

	// ErrInvalidPreferences is returned when game settings fail validation.
	ErrInvalidPreferences = errors.New("invalid preferences")

	// ErrUnknownPlayer is returned when an ID matches neither player of a game.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrGameFull is returned when a third identity tries to join a game.
	ErrGameFull = errors.New("game already has two players")

	// ErrGameNotFound is returned for operations against a missing game ID.
	ErrGameNotFound = errors.New("game not found")
)

// IllegalTurnError rejects a move submission: the submitter is not the
// active player, the cell is not reachable, or the game is already decided.
// It is always recoverable; validation happens before any mutation, so the
// game state is untouched.
type IllegalTurnError struct {
	GameID   string
	PlayerID string
	Cell     Cell
}

func (e *IllegalTurnError) Error() string {
	return fmt.Sprintf("illegal turn in game %s: player %s, cell %s", e.GameID, e.PlayerID, e.Cell)
}
