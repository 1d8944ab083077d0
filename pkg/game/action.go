package game

import (
	"fmt"
	"strings"

	"scanpoker-server/pkg/deck"
)

// Action is a single request against a room's current hand. Concrete
// variants carry only the fields they need and are dispatched by type
// switch in Room.Apply.
type Action interface {
	actionName() string
}

// Check passes the action without wagering
type Check struct {
	PlayerID string
}

// Bet opens the betting with the given amount
type Bet struct {
	PlayerID string
	Amount   int
}

// Call matches the current bet
type Call struct {
	PlayerID string
}

// Raise matches the current bet and adds Amount on top
type Raise struct {
	PlayerID string
	Amount   int
}

// Fold gives up the hand
type Fold struct {
	PlayerID string
}

// ScanCard reports a physical card read by the scanner
type ScanCard struct {
	Card *deck.Card
}

// StartHand asks the room to begin the next hand
type StartHand struct{}

func (Check) actionName() string     { return "check" }
func (Bet) actionName() string       { return "bet" }
func (Call) actionName() string      { return "call" }
func (Raise) actionName() string     { return "raise" }
func (Fold) actionName() string      { return "fold" }
func (ScanCard) actionName() string  { return "scan" }
func (StartHand) actionName() string { return "start hand" }

// Envelope is the wire form of an action as submitted by clients
type Envelope struct {
	PlayerID string     `json:"playerId"`
	Type     string     `json:"type"`
	Amount   int        `json:"amount"`
	Card     *deck.Card `json:"card"`
}

// Decode converts the envelope into its concrete action
func (e Envelope) Decode() (Action, error) {
	switch strings.ToUpper(e.Type) {
	case "CHECK":
		return Check{PlayerID: e.PlayerID}, nil
	case "BET":
		return Bet{PlayerID: e.PlayerID, Amount: e.Amount}, nil
	case "CALL":
		return Call{PlayerID: e.PlayerID}, nil
	case "RAISE":
		return Raise{PlayerID: e.PlayerID, Amount: e.Amount}, nil
	case "FOLD":
		return Fold{PlayerID: e.PlayerID}, nil
	case "SCAN_CARD":
		return ScanCard{Card: e.Card}, nil
	case "START_HAND":
		return StartHand{}, nil
	}

	return nil, fmt.Errorf("unknown action type: %s", e.Type)
}
