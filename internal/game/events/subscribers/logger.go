package subscribers

import (
	"github.com/rs/zerolog"

	"papertactics/internal/game/events"
)

// LoggerSubscriber logs game events to structured logs.
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
}

// NewLoggerSubscriber creates a new logger subscriber.
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier.
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all).
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// InterestedIn returns true if the subscriber wants to receive this event type.
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it.
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent = logEvent.
			Int("board_size", e.BoardSize).
			Int("trench_count", e.TrenchCount).
			Str("active_player", e.ActivePlayer).
			Str("passive_player", e.PassivePlayer)
	case *events.TurnResolvedEvent:
		logEvent = logEvent.
			Str("player_id", e.PlayerID).
			Stringer("cell", e.Cell).
			Str("outcome", e.Outcome).
			Int("turns_left", e.TurnsLeft)
	case *events.PlayerDefeatedEvent:
		logEvent = logEvent.Str("player_id", e.PlayerID)
	}

	logEvent.Msg("Game event")
}
