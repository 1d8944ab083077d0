package game

import (
	"github.com/google/uuid"
	"scanpoker-server/pkg/deck"
)

// Player is a seat in a room. Active=false marks a player who left the
// hand (but not the room); Folded resets every hand.
type Player struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Chips            int       `json:"chips"`
	Folded           bool      `json:"folded"`
	Active           bool      `json:"active"`
	Online           bool      `json:"online"`
	VisuallyImpaired bool      `json:"visuallyImpaired"`
	HoleCards        deck.Hand `json:"holeCards"`
	LastAction       string    `json:"lastAction"`
	LastActionAmount int       `json:"lastActionAmount"`
	HandRanking      string    `json:"handRanking"`
}

// NewPlayer returns a new active player with a starting stack
func NewPlayer(name string, chips int) *Player {
	return &Player{
		ID:        uuid.New().String(),
		Name:      name,
		Chips:     chips,
		Active:    true,
		Online:    true,
		HoleCards: deck.Hand{},
	}
}

// InHand returns true if the player can still win the current hand
func (p *Player) InHand() bool {
	return p.Active && !p.Folded
}

func (p *Player) resetForHand() {
	p.Folded = false
	p.HoleCards = deck.Hand{}
	p.LastAction = ""
	p.LastActionAmount = 0
	p.HandRanking = ""
}
