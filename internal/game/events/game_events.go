package events

import (
	"time"

	"papertactics/internal/game/core"
)

// Event type identifiers.
const (
	EventGameStarted    = "game.started"
	EventTurnResolved   = "game.turn_resolved"
	EventPlayerDefeated = "game.player_defeated"
)

// Move outcomes carried by TurnResolvedEvent.
const (
	OutcomeCapture = "capture"
	OutcomeTrench  = "trench"
	OutcomeExpand  = "expand"
)

// GameStartedEvent is published once, when a game finishes initialization.
type GameStartedEvent struct {
	BaseEvent
	BoardSize     int    `json:"board_size"`
	TrenchCount   int    `json:"trench_count"`
	ActivePlayer  string `json:"active_player"`
	PassivePlayer string `json:"passive_player"`
}

// NewGameStartedEvent creates a GameStartedEvent.
func NewGameStartedEvent(gameID string, boardSize, trenchCount int, active, passive string) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:     BaseEvent{EventType: EventGameStarted, Time: time.Now(), Game: gameID},
		BoardSize:     boardSize,
		TrenchCount:   trenchCount,
		ActivePlayer:  active,
		PassivePlayer: passive,
	}
}

// TurnResolvedEvent is published after every resolved move, human or bot.
type TurnResolvedEvent struct {
	BaseEvent
	PlayerID  string    `json:"player_id"`
	Cell      core.Cell `json:"cell"`
	Outcome   string    `json:"outcome"`
	TurnsLeft int       `json:"turns_left"`
}

// NewTurnResolvedEvent creates a TurnResolvedEvent.
func NewTurnResolvedEvent(gameID, playerID string, cell core.Cell, outcome string, turnsLeft int) *TurnResolvedEvent {
	return &TurnResolvedEvent{
		BaseEvent: BaseEvent{EventType: EventTurnResolved, Time: time.Now(), Game: gameID},
		PlayerID:  playerID,
		Cell:      cell,
		Outcome:   outcome,
		TurnsLeft: turnsLeft,
	}
}

// PlayerDefeatedEvent is published when a player is marked defeated.
type PlayerDefeatedEvent struct {
	BaseEvent
	PlayerID string `json:"player_id"`
}

// NewPlayerDefeatedEvent creates a PlayerDefeatedEvent.
func NewPlayerDefeatedEvent(gameID, playerID string) *PlayerDefeatedEvent {
	return &PlayerDefeatedEvent{
		BaseEvent: BaseEvent{EventType: EventPlayerDefeated, Time: time.Now(), Game: gameID},
		PlayerID:  playerID,
	}
}
