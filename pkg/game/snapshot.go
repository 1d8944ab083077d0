package game

import "scanpoker-server/pkg/deck"

// Snapshot is the client-facing view of a room. One is produced after
// every mutation and pushed to the room's websocket subscribers.
type Snapshot struct {
	Code               string         `json:"code"`
	Stage              Stage          `json:"stage"`
	Players            []*Player      `json:"players"`
	CommunityCards     deck.Hand      `json:"communityCards"`
	Pot                int            `json:"pot"`
	Bets               map[string]int `json:"bets"`
	CurrentBet         int            `json:"currentBet"`
	CurrentPlayerIndex int            `json:"currentPlayerIndex"`
	CurrentPlayerID    string         `json:"currentPlayerId,omitempty"`
	SmallBlindIndex    int            `json:"smallBlindIndex"`
	BigBlindIndex      int            `json:"bigBlindIndex"`
	ButtonIndex        int            `json:"buttonIndex"`
	WaitingForCards    bool           `json:"waitingForCards"`
	CardsNeeded        int            `json:"cardsNeeded"`
	CardsScanned       int            `json:"cardsScanned"`
	DealerID           string         `json:"dealerId,omitempty"`
	WinnerIDs          []string       `json:"winnerIds"`
	ActionLog          []*Event       `json:"actionLog"`
}

// Snapshot returns a copy of the room state safe to serialize after the
// per-room serialization boundary is released
func (r *Room) Snapshot() *Snapshot {
	players := make([]*Player, len(r.players))
	for i, p := range r.players {
		clone := *p
		clone.HoleCards = p.HoleCards.Clone()
		players[i] = &clone
	}

	bets := make(map[string]int, len(r.bets))
	for id, bet := range r.bets {
		bets[id] = bet
	}

	events := make([]*Event, len(r.events))
	copy(events, r.events)

	winners := make([]string, len(r.winners))
	copy(winners, r.winners)

	snapshot := &Snapshot{
		Code:               r.Code,
		Stage:              r.stage,
		Players:            players,
		CommunityCards:     r.community.Clone(),
		Pot:                r.pot,
		Bets:               bets,
		CurrentBet:         r.currentBet,
		CurrentPlayerIndex: r.currentIndex,
		SmallBlindIndex:    r.SmallBlindIndex(),
		BigBlindIndex:      r.BigBlindIndex(),
		ButtonIndex:        r.ButtonIndex(),
		WaitingForCards:    r.waitingForCards,
		CardsNeeded:        r.CardsNeeded(),
		CardsScanned:       r.CardsScanned(),
		DealerID:           r.dealerID,
		WinnerIDs:          winners,
		ActionLog:          events,
	}

	if current := r.CurrentPlayer(); current != nil && r.HandInProgress() {
		snapshot.CurrentPlayerID = current.ID
	}

	return snapshot
}
