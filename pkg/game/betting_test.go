package game

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// startedRoom returns a three-handed room with hole cards dealt:
// alice is the small blind, bob the big blind, carl under the gun.
func startedRoom(t *testing.T, holeCards string) *Room {
	t.Helper()

	room := testRoom(t, "alice", "bob", "carl")
	assert.NoError(t, room.StartGame())
	scan(room, holeCards)
	assert.False(t, room.waitingForCards)

	return room
}

func TestRoom_bigBlindOption(t *testing.T) {
	a := assert.New(t)
	room := startedRoom(t, "2c,3c,4c,5c,6c,7c")
	alice, bob, carl := room.players[0], room.players[1], room.players[2]

	a.Equal(carl, room.CurrentPlayer())
	room.Apply(Call{PlayerID: carl.ID})
	room.Apply(Call{PlayerID: alice.ID})

	// every bet equals the big blind, but bob still has his option
	a.Equal(StagePreFlop, room.Stage())
	a.Equal(bob, room.CurrentPlayer())
	a.Equal(10, room.bets[alice.ID])
	a.Equal(10, room.bets[bob.ID])
	a.Equal(10, room.bets[carl.ID])

	room.Apply(Check{PlayerID: bob.ID})
	a.Equal(StageFlop, room.Stage())
	a.True(room.waitingForCards)
	a.Equal(30, room.pot)
	a.Empty(room.bets)
}

func TestRoom_bigBlindRaisesOnOption(t *testing.T) {
	a := assert.New(t)
	room := startedRoom(t, "2c,3c,4c,5c,6c,7c")
	alice, bob, carl := room.players[0], room.players[1], room.players[2]

	room.Apply(Call{PlayerID: carl.ID})
	room.Apply(Call{PlayerID: alice.ID})
	room.Apply(Raise{PlayerID: bob.ID, Amount: 20})

	a.Equal(StagePreFlop, room.Stage())
	a.Equal(30, room.currentBet)
	a.Equal(carl, room.CurrentPlayer())

	room.Apply(Call{PlayerID: carl.ID})
	room.Apply(Call{PlayerID: alice.ID})
	a.Equal(StageFlop, room.Stage())
	a.Equal(90, room.pot)
}

func TestRoom_allInFastForward(t *testing.T) {
	a := assert.New(t)

	options := DefaultOptions()
	options.MinPlayers = 2
	room := NewRoom("ABC123", options, logrus.New())
	room.SetDealer("dealer")
	alice, _ := room.AddPlayer("alice")
	bob, _ := room.AddPlayer("bob")
	a.NoError(room.StartGame())
	scan(room, "14c,2c,14d,3d")

	// alice is down to 40 behind after posting the small blind
	alice.Chips = 40
	total := room.TotalChips()

	room.Apply(Bet{PlayerID: alice.ID, Amount: 100})
	a.Equal(0, alice.Chips)
	a.Equal(45, room.currentBet)

	// bob's call closes the round with no further action from alice
	room.Apply(Call{PlayerID: bob.ID})
	a.Equal(StageFlop, room.Stage())
	a.True(room.waitingForCards)
	a.Equal(90, room.pot)

	// no betting remains, so each street fast-forwards once its cards arrive
	scan(room, "5h,7s,9c")
	a.Equal(StageTurn, room.Stage())
	scan(room, "11d")
	a.Equal(StageRiver, room.Stage())
	scan(room, "13h")

	a.Equal(StageEnded, room.Stage())
	a.Equal([]string{alice.ID}, room.winners)
	a.Equal(90, alice.Chips)
	a.Equal("Pair of Aces", alice.HandRanking)
	a.Equal(total, room.TotalChips())
}

func TestRoom_foldToOneEndsHand(t *testing.T) {
	a := assert.New(t)
	room := startedRoom(t, "2c,3c,4c,5c,6c,7c")
	alice, bob, carl := room.players[0], room.players[1], room.players[2]

	room.Apply(Fold{PlayerID: carl.ID})
	a.Equal(StagePreFlop, room.Stage())

	room.Apply(Fold{PlayerID: alice.ID})
	a.Equal(StageEnded, room.Stage())
	a.Equal([]string{bob.ID}, room.winners)
	a.Equal(1005, bob.Chips)
	a.Equal(0, room.pot)
	a.Equal(3000, room.TotalChips())
}

func TestRoom_wrongTurnIgnored(t *testing.T) {
	a := assert.New(t)
	room := startedRoom(t, "2c,3c,4c,5c,6c,7c")
	alice, _, carl := room.players[0], room.players[1], room.players[2]

	room.Apply(Call{PlayerID: alice.ID})
	a.Equal(carl, room.CurrentPlayer())
	a.Equal(995, alice.Chips)
	a.Equal(5, room.bets[alice.ID])
	a.Equal(EventLog, lastEvent(room).Type)
}

func TestRoom_checkFacingBetIgnored(t *testing.T) {
	a := assert.New(t)
	room := startedRoom(t, "2c,3c,4c,5c,6c,7c")
	carl := room.players[2]

	room.Apply(Check{PlayerID: carl.ID})
	a.Equal(carl, room.CurrentPlayer())
	a.Equal(EventLog, lastEvent(room).Type)
	a.Equal(0, room.bets[carl.ID])
}

func TestRoom_actionsRejectedWhileWaitingForCards(t *testing.T) {
	a := assert.New(t)
	room := testRoom(t, "alice", "bob", "carl")
	a.NoError(room.StartGame())
	carl := room.players[2]

	room.Apply(Call{PlayerID: carl.ID})
	a.Equal(1000, carl.Chips)
	a.Equal(0, room.bets[carl.ID])
	a.Equal(EventLog, lastEvent(room).Type)
	a.True(room.waitingForCards)
}

func TestRoom_fullHand(t *testing.T) {
	a := assert.New(t)
	room := startedRoom(t, "14c,2d,9s,13c,7h,9d")
	alice, bob, carl := room.players[0], room.players[1], room.players[2]

	// the deal is round-robin from the small blind
	a.Equal("14c,13c", alice.HoleCards.String())
	a.Equal("2d,7h", bob.HoleCards.String())
	a.Equal("9s,9d", carl.HoleCards.String())

	assertInvariants := func() {
		a.Equal(3000, room.TotalChips())
		if room.HandInProgress() && !room.waitingForCards {
			a.True(room.CurrentPlayer().InHand())
		}
	}

	a.Equal("Waiting for community cards", alice.HandRanking)

	room.Apply(Call{PlayerID: carl.ID})
	assertInvariants()
	room.Apply(Call{PlayerID: alice.ID})
	assertInvariants()
	room.Apply(Check{PlayerID: bob.ID})
	assertInvariants()
	a.Equal(StageFlop, room.Stage())
	a.Equal(30, room.pot)

	scan(room, "9c,5d,13d")
	assertInvariants()
	a.False(room.waitingForCards)
	a.Equal("Three of a kind, 9s", carl.HandRanking)
	a.Equal("Pair of Kings", alice.HandRanking)

	a.Equal(alice, room.CurrentPlayer())
	room.Apply(Bet{PlayerID: alice.ID, Amount: 100})
	assertInvariants()
	room.Apply(Fold{PlayerID: bob.ID})
	assertInvariants()
	room.Apply(Raise{PlayerID: carl.ID, Amount: 50})
	assertInvariants()
	a.Equal(150, room.currentBet)
	room.Apply(Call{PlayerID: alice.ID})
	assertInvariants()
	a.Equal(StageTurn, room.Stage())
	a.Equal(330, room.pot)

	scan(room, "2c")
	room.Apply(Check{PlayerID: alice.ID})
	room.Apply(Check{PlayerID: carl.ID})
	assertInvariants()
	a.Equal(StageRiver, room.Stage())

	scan(room, "3h")
	room.Apply(Check{PlayerID: alice.ID})
	room.Apply(Check{PlayerID: carl.ID})
	assertInvariants()

	a.Equal(StageEnded, room.Stage())
	a.Equal([]string{carl.ID}, room.winners)
	a.Equal(1170, carl.Chips)
	a.Equal(840, alice.Chips)
	a.Equal(990, bob.Chips)
}
