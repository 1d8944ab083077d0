package handrank

import "fmt"

// Category is a poker hand category, i.e., straight flush.
// Categories are ordered strongest-first so that a lower value always
// denotes a stronger class of hand.
type Category int

// Constants for category
const (
	StraightFlush Category = iota
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	OnePair
	HighCard

	// incomplete marks a hand with fewer than five cards
	incomplete
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case StraightFlush:
		return "Straight flush"
	case FourOfAKind:
		return "Four of a kind"
	case FullHouse:
		return "Full house"
	case Flush:
		return "Flush"
	case Straight:
		return "Straight"
	case ThreeOfAKind:
		return "Three of a kind"
	case TwoPair:
		return "Two pair"
	case OnePair:
		return "Pair"
	case HighCard:
		return "High card"
	case incomplete:
		return "Incomplete"
	default:
		panic(fmt.Sprintf("unknown category: %d", c))
	}
}
