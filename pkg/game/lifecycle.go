package game

import (
	"fmt"

	"scanpoker-server/pkg/deck"
)

// StartGame begins play from the WAITING stage. It requires an assigned
// dealer and enough active players.
func (r *Room) StartGame() error {
	if r.stage != StageWaiting {
		return ErrHandInProgress
	}
	if r.dealerID == "" {
		return ErrNoDealer
	}

	active := 0
	for _, p := range r.players {
		if p.Active {
			active++
		}
	}
	if active < r.options.MinPlayers {
		return ErrNotEnoughPlayers
	}

	// startHand rotates the blind first, so back up one seat to put the
	// first small blind on seat 0
	r.smallBlind = len(r.players) - 1
	r.startHand()

	return nil
}

// StartNewHand resets per-hand state, rotates the blinds, and enters
// PREFLOP waiting for hole cards
func (r *Room) StartNewHand() error {
	if r.stage == StageWaiting {
		return r.StartGame()
	}
	if r.HandInProgress() {
		return ErrHandInProgress
	}

	active := 0
	for _, p := range r.players {
		if p.Active {
			active++
		}
	}
	// a table that started full may play down to heads-up
	if active < 2 {
		return ErrNotEnoughPlayers
	}

	r.startHand()

	return nil
}

func (r *Room) startHand() {
	// seats vacated mid-hand are released before the blinds rotate, so a
	// departed stack can never be charged a blind
	for i := len(r.players) - 1; i >= 0; i-- {
		if r.players[i].Active {
			continue
		}

		r.players = append(r.players[:i], r.players[i+1:]...)
		if i <= r.smallBlind && r.smallBlind > 0 {
			r.smallBlind--
		}
	}

	r.community = deck.Hand{}
	r.pot = 0
	r.bets = make(map[string]int)
	r.acted = make(map[string]bool)
	r.currentBet = 0
	r.winners = nil
	r.events = nil
	for _, p := range r.players {
		p.resetForHand()
	}

	// rotate the small blind, falling back to seat 0 when out of range
	n := len(r.players)
	if r.smallBlind < 0 || r.smallBlind >= n {
		r.smallBlind = 0
	} else {
		r.smallBlind = (r.smallBlind + 1) % n
	}

	r.stage = StagePreFlop
	r.waitingForCards = true

	r.postBlind(r.smallBlind, r.options.SmallBlind, EventSmallBlind)
	r.postBlind(r.BigBlindIndex(), r.options.BigBlind, EventBigBlind)
	r.currentBet = r.options.BigBlind

	// hole cards are dealt starting at the small blind
	r.nextRecipient = r.smallBlind
	if seat := r.nextEligible(r.UnderTheGunIndex()); seat >= 0 {
		r.currentIndex = seat
	}

	event := newEvent(EventStartHand)
	event.Message = fmt.Sprintf("New hand, blinds %d/%d", r.options.SmallBlind, r.options.BigBlind)
	r.appendEvent(event)
}

// postBlind moves the forced bet into the ledger, clamped to the stack
func (r *Room) postBlind(seat, amount int, eventType EventType) {
	player := r.players[seat]
	if amount > player.Chips {
		amount = player.Chips
	}
	player.Chips -= amount
	r.bets[player.ID] += amount

	event := newEvent(eventType)
	event.PlayerID = player.ID
	event.PlayerName = player.Name
	event.Amount = amount
	r.appendEvent(event)
}

// advanceStage collects the round's bets into the pot and moves the hand
// forward. Entering RIVER's successor runs the showdown synchronously.
func (r *Room) advanceStage() {
	for _, bet := range r.bets {
		r.pot += bet
	}
	r.bets = make(map[string]int)
	r.acted = make(map[string]bool)
	r.currentBet = 0

	switch r.stage {
	case StagePreFlop:
		r.enterCardStage(StageFlop)
	case StageFlop:
		r.enterCardStage(StageTurn)
	case StageTurn:
		r.enterCardStage(StageRiver)
	case StageRiver:
		r.stage = StageShowdown
		r.runShowdown()
	}
}

// enterCardStage blocks betting until the stage's community cards arrive
func (r *Room) enterCardStage(stage Stage) {
	r.stage = stage
	r.waitingForCards = true

	if seat := r.nextEligible(r.smallBlind); seat >= 0 {
		r.currentIndex = seat
	}

	for _, p := range r.players {
		if p.InHand() {
			p.LastAction = ""
			p.LastActionAmount = 0
		}
	}
}

// endHandIfOneRemains awards the pot immediately when a lone player is
// left in the hand. Outstanding bets are swept into the pot first so the
// chip count stays constant.
func (r *Room) endHandIfOneRemains() bool {
	if !r.HandInProgress() {
		return false
	}

	var last *Player
	count := 0
	for _, p := range r.players {
		if p.InHand() {
			last = p
			count++
		}
	}
	if count != 1 {
		return false
	}

	for _, bet := range r.bets {
		r.pot += bet
	}
	r.bets = make(map[string]int)
	r.currentBet = 0
	r.waitingForCards = false

	last.Chips += r.pot
	r.winners = []string{last.ID}
	r.logMessage(fmt.Sprintf("%s wins %d", last.Name, r.pot))
	r.pot = 0
	r.stage = StageEnded

	return true
}
