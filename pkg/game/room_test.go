package game

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"scanpoker-server/pkg/deck"
)

func testRoom(t *testing.T, names ...string) *Room {
	t.Helper()

	room := NewRoom("ABC123", DefaultOptions(), logrus.New())
	room.SetDealer("dealer")
	for _, name := range names {
		_, err := room.AddPlayer(name)
		assert.NoError(t, err)
	}

	return room
}

func scan(room *Room, cards string) {
	for _, card := range deck.CardsFromString(cards) {
		room.Apply(ScanCard{Card: card})
	}
}

func lastEvent(room *Room) *Event {
	return room.events[len(room.events)-1]
}

func TestRoom_AddPlayer(t *testing.T) {
	a := assert.New(t)
	room := testRoom(t, "alice", "bob")

	a.Equal(EventJoin, lastEvent(room).Type)
	a.Equal("bob", lastEvent(room).PlayerName)
	a.True(room.players[0].Online)

	_, err := room.AddPlayer("BOB")
	a.Equal(ErrDuplicateName, err)

	for _, name := range []string{"carl", "dana", "edna"} {
		_, err := room.AddPlayer(name)
		a.NoError(err)
	}

	_, err = room.AddPlayer("frank")
	a.Equal(ErrRoomFull, err)
}

func TestRoom_StartGame(t *testing.T) {
	a := assert.New(t)

	room := NewRoom("ABC123", DefaultOptions(), logrus.New())
	_, _ = room.AddPlayer("alice")
	_, _ = room.AddPlayer("bob")
	a.Equal(ErrNoDealer, room.StartGame())

	room.SetDealer("dealer")
	a.Equal(ErrNotEnoughPlayers, room.StartGame())

	_, _ = room.AddPlayer("carl")
	a.NoError(room.StartGame())
	a.Equal(StagePreFlop, room.Stage())
	a.True(room.waitingForCards)

	a.Equal(0, room.SmallBlindIndex())
	a.Equal(1, room.BigBlindIndex())
	a.Equal(2, room.ButtonIndex())
	a.Equal(2, room.UnderTheGunIndex())

	alice, bob := room.players[0], room.players[1]
	a.Equal(995, alice.Chips)
	a.Equal(990, bob.Chips)
	a.Equal(5, room.bets[alice.ID])
	a.Equal(10, room.bets[bob.ID])
	a.Equal(10, room.currentBet)
	a.Equal(3000, room.TotalChips())

	a.Equal(ErrHandInProgress, room.StartGame())
	a.Equal(ErrHandInProgress, room.StartNewHand())
}

func TestRoom_blindRotation(t *testing.T) {
	a := assert.New(t)
	room := testRoom(t, "alice", "bob", "carl")
	a.NoError(room.StartGame())

	foldDown := func() {
		scan(room, "2c,3c,4c,5c,6c,7c")
		for room.HandInProgress() {
			room.Apply(Fold{PlayerID: room.CurrentPlayer().ID})
		}
	}

	a.Equal(0, room.SmallBlindIndex())
	foldDown()
	a.Equal(StageEnded, room.Stage())

	a.NoError(room.StartNewHand())
	a.Equal(1, room.SmallBlindIndex())
	foldDown()

	a.NoError(room.StartNewHand())
	a.Equal(2, room.SmallBlindIndex())
	foldDown()

	a.NoError(room.StartNewHand())
	a.Equal(0, room.SmallBlindIndex())
}

func TestRoom_headsUpPositions(t *testing.T) {
	a := assert.New(t)

	options := DefaultOptions()
	options.MinPlayers = 2
	room := NewRoom("ABC123", options, logrus.New())
	room.SetDealer("dealer")
	_, _ = room.AddPlayer("alice")
	_, _ = room.AddPlayer("bob")

	a.NoError(room.StartGame())
	a.Equal(0, room.SmallBlindIndex())
	a.Equal(1, room.BigBlindIndex())
	// heads-up the button posts the small blind
	a.Equal(0, room.ButtonIndex())
	a.Equal(0, room.UnderTheGunIndex())
}

func TestRoom_RemovePlayer(t *testing.T) {
	a := assert.New(t)
	room := testRoom(t, "alice", "bob", "carl")

	a.Equal(ErrUnknownPlayer, room.RemovePlayer("nope"))

	bob := room.players[1]
	a.NoError(room.RemovePlayer(bob.ID))
	a.Len(room.players, 2)
	a.Nil(room.Player(bob.ID))

	_, _ = room.AddPlayer("dana")
	a.NoError(room.StartGame())
	scan(room, "2c,3c,4c,5c,6c,7c")

	// leaving mid-hand marks the seat inactive but keeps it in the room
	carl := room.players[1]
	a.NoError(room.RemovePlayer(carl.ID))
	a.Len(room.players, 3)
	a.False(carl.Active)
	a.False(carl.Online)
}

func TestRoom_removePlayerDuringDeal(t *testing.T) {
	a := assert.New(t)
	room := testRoom(t, "alice", "bob", "carl")
	a.NoError(room.StartGame())

	// alice and bob have both hole cards, carl has one
	scan(room, "2c,3c,4c,5c,6c")
	a.True(room.waitingForCards)

	// carl's departure satisfies the card requirement
	a.NoError(room.RemovePlayer(room.players[2].ID))
	a.False(room.waitingForCards)
	a.Equal(StagePreFlop, room.Stage())
}

func TestRoom_departedSeatReleasedNextHand(t *testing.T) {
	a := assert.New(t)
	room := testRoom(t, "alice", "bob", "carl", "dana")
	a.NoError(room.StartGame())
	scan(room, "2c,3c,4c,5c,6c,7c,8c,9c")

	dana := room.players[3]
	a.NoError(room.RemovePlayer(dana.ID))

	// carl is under the gun; fold around to bob
	room.Apply(Fold{PlayerID: room.players[2].ID})
	room.Apply(Fold{PlayerID: room.players[0].ID})
	a.Equal(StageEnded, room.Stage())

	a.NoError(room.StartNewHand())
	a.Len(room.players, 3)
	a.Nil(room.Player(dana.ID))
	a.Equal(1, room.SmallBlindIndex())

	// the departed stack is out of the room and was never charged a blind
	a.Equal(1000, dana.Chips)
	a.NotContains(room.bets, dana.ID)
	a.Equal(3000, room.TotalChips())
}

func TestRoom_AssignScanner(t *testing.T) {
	a := assert.New(t)
	room := testRoom(t, "alice")

	a.NoError(room.AssignScanner())
	a.Equal(ErrScannerAssigned, room.AssignScanner())
}

func TestRoom_Disband(t *testing.T) {
	a := assert.New(t)
	room := testRoom(t, "alice", "bob", "carl")
	a.NoError(room.StartGame())

	room.Disband()
	a.Equal(StageEnded, room.Stage())
	a.Empty(room.Players())
}

func TestRoom_Snapshot(t *testing.T) {
	a := assert.New(t)
	room := testRoom(t, "alice", "bob", "carl")
	a.NoError(room.StartGame())
	scan(room, "2c,3c")

	snapshot := room.Snapshot()
	a.Equal("ABC123", snapshot.Code)
	a.Equal(StagePreFlop, snapshot.Stage)
	a.True(snapshot.WaitingForCards)
	a.Equal(6, snapshot.CardsNeeded)
	a.Equal(2, snapshot.CardsScanned)
	a.Equal(0, snapshot.SmallBlindIndex)
	a.Equal(1, snapshot.BigBlindIndex)
	a.Equal(2, snapshot.ButtonIndex)
	a.Equal(10, snapshot.CurrentBet)
	a.Len(snapshot.Players, 3)

	// mutating the snapshot must not touch the room
	snapshot.Players[0].Chips = 0
	snapshot.Players[0].HoleCards.AddCard(deck.CardFromString("14s"))
	a.Equal(995, room.players[0].Chips)
	a.Len(room.players[0].HoleCards, 1)
}

func TestEnvelope_Decode(t *testing.T) {
	a := assert.New(t)

	action, err := Envelope{Type: "check", PlayerID: "p1"}.Decode()
	a.NoError(err)
	a.Equal(Check{PlayerID: "p1"}, action)

	action, err = Envelope{Type: "RAISE", PlayerID: "p1", Amount: 50}.Decode()
	a.NoError(err)
	a.Equal(Raise{PlayerID: "p1", Amount: 50}, action)

	card := deck.CardFromString("14s")
	action, err = Envelope{Type: "SCAN_CARD", Card: card}.Decode()
	a.NoError(err)
	a.Equal(ScanCard{Card: card}, action)

	action, err = Envelope{Type: "START_HAND"}.Decode()
	a.NoError(err)
	a.Equal(StartHand{}, action)

	_, err = Envelope{Type: "JUMP"}.Decode()
	a.EqualError(err, "unknown action type: JUMP")
}
