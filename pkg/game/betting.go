package game

import (
	"fmt"

	"github.com/thoas/go-funk"
)

// Apply processes a decoded action. Rejected actions never return an
// error; they are recorded in the action log and otherwise ignored.
func (r *Room) Apply(action Action) {
	switch a := action.(type) {
	case Check:
		r.handleCheck(a)
	case Bet:
		r.handleBet(a)
	case Call:
		r.handleCall(a)
	case Raise:
		r.handleRaise(a)
	case Fold:
		r.handleFold(a)
	case ScanCard:
		r.handleScan(a)
	case StartHand:
		if err := r.StartNewHand(); err != nil {
			r.logError(fmt.Sprintf("start hand rejected: %v", err))
		}
	default:
		r.logError(fmt.Sprintf("unsupported action: %s", action.actionName()))
	}
}

// actingPlayer validates that betting is open and that the request came
// from the seat whose turn it is. A nil return means the action was
// rejected and logged.
func (r *Room) actingPlayer(playerID, verb string) *Player {
	if !r.HandInProgress() || r.stage == StageShowdown {
		r.logError(fmt.Sprintf("%s rejected: no betting round in progress", verb))
		return nil
	}
	if r.waitingForCards {
		r.logError(fmt.Sprintf("%s rejected: waiting for cards", verb))
		return nil
	}

	current := r.CurrentPlayer()
	if current == nil || current.ID != playerID {
		r.logError(fmt.Sprintf("%s rejected: not this player's turn", verb))
		return nil
	}

	return current
}

func (r *Room) handleCheck(action Check) {
	player := r.actingPlayer(action.PlayerID, "check")
	if player == nil {
		return
	}

	if r.bets[player.ID] < r.currentBet {
		r.logError(fmt.Sprintf("%s cannot check facing a bet", player.Name))
		return
	}

	r.recordBetAction(player, EventCheck, 0)
	r.advanceTurn()
	r.maybeFinishRound()
}

func (r *Room) handleBet(action Bet) {
	player := r.actingPlayer(action.PlayerID, "bet")
	if player == nil {
		return
	}

	if action.Amount <= 0 {
		r.logError("bet rejected: amount must be positive")
		return
	}

	committed := r.commitChips(player, action.Amount)
	if total := r.bets[player.ID]; total > r.currentBet {
		r.currentBet = total
	}

	r.recordBetAction(player, EventBet, committed)
	r.advanceTurn()
	r.maybeFinishRound()
}

func (r *Room) handleCall(action Call) {
	player := r.actingPlayer(action.PlayerID, "call")
	if player == nil {
		return
	}

	committed := r.commitChips(player, r.currentBet-r.bets[player.ID])
	r.recordBetAction(player, EventCall, committed)
	r.advanceTurn()
	r.maybeFinishRound()
}

func (r *Room) handleRaise(action Raise) {
	player := r.actingPlayer(action.PlayerID, "raise")
	if player == nil {
		return
	}

	if action.Amount <= 0 {
		r.logError("raise rejected: amount must be positive")
		return
	}

	owed := r.currentBet - r.bets[player.ID]
	committed := r.commitChips(player, owed+action.Amount)
	if total := r.bets[player.ID]; total > r.currentBet {
		r.currentBet = total
	}

	r.recordBetAction(player, EventRaise, committed)
	r.advanceTurn()
	r.maybeFinishRound()
}

func (r *Room) handleFold(action Fold) {
	player := r.actingPlayer(action.PlayerID, "fold")
	if player == nil {
		return
	}

	player.Folded = true
	r.recordBetAction(player, EventFold, 0)
	r.advanceTurn()

	if r.endHandIfOneRemains() {
		return
	}
	r.maybeFinishRound()
}

// commitChips moves up to amount from the player's stack into the bet
// ledger, clamping to the stack so a short player simply goes all-in.
// Returns the amount actually committed.
func (r *Room) commitChips(player *Player, amount int) int {
	if amount > player.Chips {
		amount = player.Chips
	}
	if amount < 0 {
		amount = 0
	}

	player.Chips -= amount
	r.bets[player.ID] += amount

	return amount
}

// recordBetAction marks the player as having acted this round and logs
// the action
func (r *Room) recordBetAction(player *Player, eventType EventType, amount int) {
	player.LastAction = string(eventType)
	player.LastActionAmount = amount
	r.acted[player.ID] = true

	event := newEvent(eventType)
	event.PlayerID = player.ID
	event.PlayerName = player.Name
	event.Amount = amount
	r.appendEvent(event)
}

// isRoundComplete reports whether the betting round can close. The round
// closes when at most one player who is not all-in remains and that
// player has matched the current bet, or when every player still in the
// hand with chips behind has matched the current bet and acted
// voluntarily this round. Posting a blind does not count as acting,
// which preserves the big blind's option to raise preflop.
func (r *Room) isRoundComplete() bool {
	inHand := funk.Filter(r.players, func(p *Player) bool { return p.InHand() }).([]*Player)
	if len(inHand) < 2 {
		return true
	}

	withChips := funk.Filter(inHand, func(p *Player) bool { return p.Chips > 0 }).([]*Player)
	if len(withChips) == 0 {
		return true
	}
	if len(withChips) == 1 {
		return r.bets[withChips[0].ID] >= r.currentBet
	}

	for _, p := range withChips {
		if r.bets[p.ID] < r.currentBet || !r.acted[p.ID] {
			return false
		}
	}

	return true
}

func (r *Room) maybeFinishRound() {
	if !r.HandInProgress() || r.stage == StageShowdown || r.waitingForCards {
		return
	}

	if r.isRoundComplete() {
		r.advanceStage()
	}
}
