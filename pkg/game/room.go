package game

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/thoas/go-funk"
	"scanpoker-server/pkg/deck"
)

// Stage is the phase of the current hand
type Stage string

// Stage constants
const (
	StageWaiting  Stage = "WAITING"
	StagePreFlop  Stage = "PREFLOP"
	StageFlop     Stage = "FLOP"
	StageTurn     Stage = "TURN"
	StageRiver    Stage = "RIVER"
	StageShowdown Stage = "SHOWDOWN"
	StageEnded    Stage = "ENDED"
)

// errors that surface to callers
var (
	ErrRoomFull         = errors.New("room is full")
	ErrDuplicateName    = errors.New("a player with that name is already seated")
	ErrScannerAssigned  = errors.New("room already has a scanner")
	ErrNoDealer         = errors.New("room has no dealer")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrHandInProgress   = errors.New("a hand is already in progress")
	ErrUnknownPlayer    = errors.New("unknown player")
)

// Options configure a room
type Options struct {
	SmallBlind    int
	BigBlind      int
	StartingChips int
	MinPlayers    int
	MaxPlayers    int
}

// DefaultOptions returns the standard room options
func DefaultOptions() Options {
	return Options{
		SmallBlind:    5,
		BigBlind:      10,
		StartingChips: 1000,
		MinPlayers:    3,
		MaxPlayers:    5,
	}
}

// Room holds the full state of a single table: the seats, the board, the
// pot and this round's bet ledger, and the action log. Methods are not
// safe for concurrent use; callers serialize access through a room host.
type Room struct {
	Code    string
	options Options
	log     logrus.FieldLogger

	players         []*Player
	stage           Stage
	community       deck.Hand
	pot             int
	bets            map[string]int
	currentBet      int
	currentIndex    int
	smallBlind      int
	nextRecipient   int
	waitingForCards bool
	acted           map[string]bool
	winners         []string
	events          []*Event
	dealerID        string
	scannerAssigned bool
}

// NewRoom returns a room in the WAITING stage
func NewRoom(code string, options Options, logger logrus.FieldLogger) *Room {
	return &Room{
		Code:      code,
		options:   options,
		log:       logger.WithField("room", code),
		stage:     StageWaiting,
		community: deck.Hand{},
		bets:      make(map[string]int),
		acted:     make(map[string]bool),
	}
}

// Stage returns the phase of the current hand
func (r *Room) Stage() Stage {
	return r.stage
}

// Options returns the room's configuration
func (r *Room) Options() Options {
	return r.options
}

// HandInProgress returns true between the start of a hand and its end
func (r *Room) HandInProgress() bool {
	switch r.stage {
	case StagePreFlop, StageFlop, StageTurn, StageRiver, StageShowdown:
		return true
	}

	return false
}

// AddPlayer seats a new player. Blank or duplicate names and full rooms
// are rejected.
func (r *Room) AddPlayer(name string) (*Player, error) {
	if len(r.players) >= r.options.MaxPlayers {
		return nil, ErrRoomFull
	}

	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) {
			return nil, ErrDuplicateName
		}
	}

	player := NewPlayer(name, r.options.StartingChips)
	// late joiners sit out the hand in progress
	player.Folded = r.HandInProgress()
	r.players = append(r.players, player)

	event := newEvent(EventJoin)
	event.PlayerID = player.ID
	event.PlayerName = player.Name
	r.appendEvent(event)

	return player, nil
}

// RemovePlayer handles a leave request. During a hand the seat is marked
// inactive and its committed chips stay in play; otherwise the seat is
// removed from the room.
func (r *Room) RemovePlayer(id string) error {
	player := r.Player(id)
	if player == nil {
		return ErrUnknownPlayer
	}

	event := newEvent(EventLeave)
	event.PlayerID = player.ID
	event.PlayerName = player.Name
	r.appendEvent(event)

	if r.HandInProgress() {
		wasTurn := r.CurrentPlayer() == player
		player.Active = false
		player.Online = false
		if wasTurn {
			r.advanceTurn()
		}

		if r.endHandIfOneRemains() {
			return nil
		}

		// the departure may have satisfied the stage's card requirement
		if r.waitingForCards && r.CardsScanned() >= r.CardsNeeded() {
			r.unblockBetting()
		}
		r.maybeFinishRound()

		return nil
	}

	for i, p := range r.players {
		if p == player {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}

	// keep the blind pointer in range for the next hand
	if r.smallBlind >= len(r.players) {
		r.smallBlind = 0
	}

	return nil
}

// Disband ends the room: the hand is abandoned and every seat is cleared
func (r *Room) Disband() {
	r.players = nil
	r.stage = StageEnded
	r.waitingForCards = false
	r.logMessage("room disbanded")
}

// SetDealer records the dealer identity required to start play
func (r *Room) SetDealer(id string) {
	r.dealerID = id
}

// DealerID returns the dealer identity, if assigned
func (r *Room) DealerID() string {
	return r.dealerID
}

// AssignScanner claims the room's single scanner slot
func (r *Room) AssignScanner() error {
	if r.scannerAssigned {
		return ErrScannerAssigned
	}

	r.scannerAssigned = true
	r.logMessage("scanner connected")

	return nil
}

// Player returns the player with the given id, or nil
func (r *Room) Player(id string) *Player {
	if found, ok := funk.Find(r.players, func(p *Player) bool { return p.ID == id }).(*Player); ok {
		return found
	}

	return nil
}

// Players returns the seats in turn order
func (r *Room) Players() []*Player {
	return r.players
}

// CurrentPlayer returns the occupant of the current seat, or nil
func (r *Room) CurrentPlayer() *Player {
	if r.currentIndex < 0 || r.currentIndex >= len(r.players) {
		return nil
	}

	return r.players[r.currentIndex]
}

// SmallBlindIndex returns the small-blind seat, or -1 for an empty room
func (r *Room) SmallBlindIndex() int {
	if len(r.players) == 0 {
		return -1
	}

	return r.smallBlind
}

// BigBlindIndex returns the seat after the small blind
func (r *Room) BigBlindIndex() int {
	n := len(r.players)
	if n == 0 {
		return -1
	}

	return (r.smallBlind + 1) % n
}

// ButtonIndex returns the seat before the small blind. Heads-up the
// button posts the small blind.
func (r *Room) ButtonIndex() int {
	n := len(r.players)
	if n == 0 {
		return -1
	}
	if n == 2 {
		return r.smallBlind
	}

	return (r.smallBlind - 1 + n) % n
}

// UnderTheGunIndex returns the first seat to act preflop
func (r *Room) UnderTheGunIndex() int {
	n := len(r.players)
	if n == 0 {
		return -1
	}

	return (r.smallBlind + 2) % n
}

// TotalChips returns chips behind plus everything committed to the hand
func (r *Room) TotalChips() int {
	total := r.pot
	for _, p := range r.players {
		total += p.Chips
	}
	for _, bet := range r.bets {
		total += bet
	}

	return total
}

// nextEligible returns the first seat at or after start whose occupant is
// still in the hand, or -1 if no such seat exists
func (r *Room) nextEligible(start int) int {
	n := len(r.players)
	if n == 0 {
		return -1
	}

	for i := 0; i < n; i++ {
		seat := (start + i) % n
		if r.players[seat].InHand() {
			return seat
		}
	}

	return -1
}

// advanceTurn moves the pointer to the next seat still in the hand. The
// pointer is left alone if no other seat is eligible.
func (r *Room) advanceTurn() {
	if next := r.nextEligible((r.currentIndex + 1) % len(r.players)); next >= 0 {
		r.currentIndex = next
	}
}

func (r *Room) appendEvent(event *Event) {
	r.events = append(r.events, event)
}

// logError records a rejected request in the action log
func (r *Room) logError(message string) {
	r.log.Warn(message)

	event := newEvent(EventLog)
	event.Message = message
	r.appendEvent(event)
}

func (r *Room) logMessage(message string) {
	event := newEvent(EventLog)
	event.Message = message
	r.appendEvent(event)
}
