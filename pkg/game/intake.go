package game

import (
	"fmt"

	"scanpoker-server/pkg/deck"
	"scanpoker-server/pkg/poker/handrank"
)

// handleScan reconciles a physical card scan with the current stage.
// Preflop scans deal hole cards round-robin starting at the small blind;
// flop/turn/river scans fill the board. Scans outside a card-intake
// window change nothing but the action log.
func (r *Room) handleScan(action ScanCard) {
	if !action.Card.IsValid() {
		r.logError("scan rejected: invalid card")
		return
	}
	if !r.waitingForCards {
		r.logError(fmt.Sprintf("scan rejected: not expecting a card (%s)", action.Card))
		return
	}

	switch r.stage {
	case StagePreFlop:
		if !r.dealHoleCard(action.Card) {
			return
		}
	case StageFlop, StageTurn, StageRiver:
		r.community.AddCard(action.Card)
	default:
		r.logError("scan rejected: no hand in progress")
		return
	}

	event := newEvent(EventScanCard)
	event.Card = action.Card
	r.appendEvent(event)

	r.updateHandRankings()

	if r.CardsScanned() >= r.CardsNeeded() {
		r.unblockBetting()
	}
}

// dealHoleCard gives the card to the next seat in the deal rotation that
// is still owed one
func (r *Room) dealHoleCard(card *deck.Card) bool {
	n := len(r.players)
	for i := 0; i < n; i++ {
		seat := (r.nextRecipient + i) % n
		player := r.players[seat]
		if player.InHand() && len(player.HoleCards) < 2 {
			player.HoleCards.AddCard(card)
			r.nextRecipient = (seat + 1) % n
			return true
		}
	}

	r.logError("scan rejected: no player can receive a card")

	return false
}

// CardsNeeded returns the total number of scans the current stage expects
func (r *Room) CardsNeeded() int {
	switch r.stage {
	case StagePreFlop:
		count := 0
		for _, p := range r.players {
			if p.InHand() {
				count++
			}
		}
		return 2 * count
	case StageFlop:
		return 3
	case StageTurn, StageRiver:
		return 1
	}

	return 0
}

// CardsScanned returns how many of the current stage's cards have arrived
func (r *Room) CardsScanned() int {
	switch r.stage {
	case StagePreFlop:
		count := 0
		for _, p := range r.players {
			if p.InHand() {
				count += len(p.HoleCards)
			}
		}
		return count
	case StageFlop:
		return len(r.community)
	case StageTurn:
		return len(r.community) - 3
	case StageRiver:
		return len(r.community) - 4
	}

	return 0
}

// unblockBetting opens the betting round once the stage's cards are in.
// First to act is under the gun preflop and the small blind after.
func (r *Room) unblockBetting() {
	r.waitingForCards = false

	first := r.smallBlind
	if r.stage == StagePreFlop {
		first = r.UnderTheGunIndex()
	}
	if seat := r.nextEligible(first); seat >= 0 {
		r.currentIndex = seat
	}

	// every remaining player may already be all-in
	r.maybeFinishRound()
}

// updateHandRankings refreshes the informational ranking label on every
// player still in the hand. The label only becomes meaningful once a
// five-card hand can be formed.
func (r *Room) updateHandRankings() {
	for _, p := range r.players {
		if !p.InHand() {
			continue
		}

		result := handrank.Best(append(p.HoleCards.Clone(), r.community...))
		if result.Complete() {
			p.HandRanking = result.Description
		} else {
			p.HandRanking = "Waiting for community cards"
		}
	}
}
