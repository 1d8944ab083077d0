package game

import (
	"time"

	"github.com/google/uuid"
	"scanpoker-server/pkg/deck"
)

// EventType identifies an entry in a room's action log
type EventType string

// EventType constants
const (
	EventJoin       EventType = "JOIN"
	EventLeave      EventType = "LEAVE"
	EventStartHand  EventType = "START_HAND"
	EventSmallBlind EventType = "SMALL_BLIND"
	EventBigBlind   EventType = "BIG_BLIND"
	EventCheck      EventType = "CHECK"
	EventBet        EventType = "BET"
	EventCall       EventType = "CALL"
	EventRaise      EventType = "RAISE"
	EventFold       EventType = "FOLD"
	EventScanCard   EventType = "SCAN_CARD"
	EventLog        EventType = "LOG"
)

// Event is an append-only entry in the room's action log. The log is
// shipped to clients inside every snapshot and reset on each new hand.
type Event struct {
	ID         string     `json:"id"`
	Type       EventType  `json:"type"`
	PlayerID   string     `json:"playerId,omitempty"`
	PlayerName string     `json:"playerName,omitempty"`
	Amount     int        `json:"amount,omitempty"`
	Card       *deck.Card `json:"card,omitempty"`
	Message    string     `json:"message,omitempty"`
	Time       time.Time  `json:"time"`
}

func newEvent(eventType EventType) *Event {
	return &Event{
		ID:   uuid.New().String(),
		Type: eventType,
		Time: time.Now(),
	}
}
