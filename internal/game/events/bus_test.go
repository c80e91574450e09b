package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"papertactics/internal/game/core"
)

type recordingSubscriber struct {
	id       string
	types    map[string]bool
	received []Event
}

func (s *recordingSubscriber) ID() string          { return s.id }
func (s *recordingSubscriber) HandleEvent(e Event) { s.received = append(s.received, e) }
func (s *recordingSubscriber) InterestedIn(eventType string) bool {
	if len(s.types) == 0 {
		return true
	}
	return s.types[eventType]
}

func TestEventBus_SubscribeFunc(t *testing.T) {
	bus := NewEventBus()

	var got []Event
	bus.SubscribeFunc(EventTurnResolved, func(e Event) {
		got = append(got, e)
	})

	turn := NewTurnResolvedEvent("g1", "a", core.NewCell(2, 2), OutcomeExpand, 2)
	bus.Publish(turn)
	bus.Publish(NewGameStartedEvent("g1", 10, 0, "a", "b"))

	assert.Len(t, got, 1, "handler only sees its own event type")
	assert.Equal(t, turn, got[0])
}

func TestEventBus_SubscriberFiltering(t *testing.T) {
	bus := NewEventBus()

	all := &recordingSubscriber{id: "all"}
	defeatsOnly := &recordingSubscriber{id: "defeats", types: map[string]bool{EventPlayerDefeated: true}}
	bus.Subscribe(all)
	bus.Subscribe(defeatsOnly)

	bus.Publish(NewGameStartedEvent("g1", 10, 4, "a", "b"))
	bus.Publish(NewPlayerDefeatedEvent("g1", "b"))

	assert.Len(t, all.received, 2)
	assert.Len(t, defeatsOnly.received, 1)
	assert.Equal(t, EventPlayerDefeated, defeatsOnly.received[0].Type())
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()

	sub := &recordingSubscriber{id: "short-lived"}
	bus.Subscribe(sub)
	bus.Publish(NewPlayerDefeatedEvent("g1", "a"))
	bus.Unsubscribe(sub.ID())
	bus.Publish(NewPlayerDefeatedEvent("g1", "b"))

	assert.Len(t, sub.received, 1)
}

type panickySubscriber struct{}

func (panickySubscriber) ID() string               { return "panicky" }
func (panickySubscriber) HandleEvent(Event)        { panic("boom") }
func (panickySubscriber) InterestedIn(string) bool { return true }

func TestEventBus_SubscriberPanicIsContained(t *testing.T) {
	bus := NewEventBus()

	bus.Subscribe(panickySubscriber{})
	healthy := &recordingSubscriber{id: "healthy"}
	bus.Subscribe(healthy)

	assert.NotPanics(t, func() {
		bus.Publish(NewGameStartedEvent("g1", 10, 0, "a", "b"))
	})
	assert.Len(t, healthy.received, 1, "a panicking subscriber must not starve the others")
}
