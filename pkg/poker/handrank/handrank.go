package handrank

import (
	"fmt"
	"sort"

	"github.com/thoas/go-funk"
	"scanpoker-server/pkg/deck"
)

// bandWidth is 15^5. Each category owns a contiguous score band of this
// size, and five base-15 digits are enough to encode five tie-break
// ranks (2-14) within the band.
const bandWidth = 759375

// incompleteScore sorts after every complete hand
const incompleteScore = int(incomplete) * bandWidth

// Result is the evaluated strength of a hand. Lower scores are stronger.
type Result struct {
	Category    Category `json:"category"`
	Score       int      `json:"score"`
	Description string   `json:"description"`
}

// Beats returns true if the result is strictly stronger than the other
func (r Result) Beats(other Result) bool {
	return r.Score < other.Score
}

// Complete returns true if the result came from at least five cards
func (r Result) Complete() bool {
	return r.Score < incompleteScore
}

// Incomplete returns the placeholder result for a player who cannot form a
// five-card hand yet. It loses to every complete hand and never splits a pot.
func Incomplete() Result {
	return Result{
		Category:    incomplete,
		Score:       incompleteScore,
		Description: "Incomplete",
	}
}

// Best returns the strongest five-card result that can be assembled from the
// cards. With six or seven cards every five-card subset is evaluated.
func Best(cards deck.Hand) Result {
	if len(cards) < 5 {
		return Incomplete()
	}

	best := Incomplete()
	five := make(deck.Hand, 5)

	var choose func(start, depth int)
	choose = func(start, depth int) {
		if depth == 5 {
			if result := scoreFive(five); result.Score < best.Score {
				best = result
			}

			return
		}

		for i := start; i <= len(cards)-(5-depth); i++ {
			five[depth] = cards[i]
			choose(i+1, depth+1)
		}
	}
	choose(0, 0)

	return best
}

// scoreFive evaluates exactly five cards
func scoreFive(cards deck.Hand) Result {
	ranks := make([]int, len(cards))
	for i, card := range cards {
		ranks[i] = card.Rank
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	counts := make(map[int]int)
	for _, rank := range ranks {
		counts[rank]++
	}

	flush := true
	for _, card := range cards {
		if card.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straightHigh := 0
	if len(counts) == 5 {
		if ranks[0]-ranks[4] == 4 {
			straightHigh = ranks[0]
		} else if ranks[0] == deck.Ace && ranks[1] == 5 && ranks[4] == 2 {
			// the wheel: the ace plays low and the five is high
			straightHigh = 5
		}
	}

	var quad, trip int
	var pairs []int
	for rank, count := range counts {
		switch count {
		case 4:
			quad = rank
		case 3:
			trip = rank
		case 2:
			pairs = append(pairs, rank)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(pairs)))

	kickers := func(exclude ...int) []int {
		remaining := make([]int, 0, len(ranks))
		for _, rank := range ranks {
			if !funk.ContainsInt(exclude, rank) {
				remaining = append(remaining, rank)
			}
		}

		return remaining
	}

	switch {
	case flush && straightHigh > 0:
		if straightHigh == deck.Ace {
			return newResult(StraightFlush, []int{straightHigh}, "Royal flush")
		}

		return newResult(StraightFlush, []int{straightHigh},
			fmt.Sprintf("Straight flush, %s high", deck.LongRankName(straightHigh)))
	case quad > 0:
		return newResult(FourOfAKind, append([]int{quad}, kickers(quad)...),
			fmt.Sprintf("Four of a kind, %ss", deck.LongRankName(quad)))
	case trip > 0 && len(pairs) == 1:
		return newResult(FullHouse, []int{trip, pairs[0]},
			fmt.Sprintf("Full house, %ss over %ss", deck.LongRankName(trip), deck.LongRankName(pairs[0])))
	case flush:
		return newResult(Flush, ranks,
			fmt.Sprintf("Flush, %s high", deck.LongRankName(ranks[0])))
	case straightHigh > 0:
		return newResult(Straight, []int{straightHigh},
			fmt.Sprintf("Straight, %s high", deck.LongRankName(straightHigh)))
	case trip > 0:
		return newResult(ThreeOfAKind, append([]int{trip}, kickers(trip)...),
			fmt.Sprintf("Three of a kind, %ss", deck.LongRankName(trip)))
	case len(pairs) == 2:
		return newResult(TwoPair, append(pairs, kickers(pairs...)...),
			fmt.Sprintf("Two pair, %ss and %ss", deck.LongRankName(pairs[0]), deck.LongRankName(pairs[1])))
	case len(pairs) == 1:
		return newResult(OnePair, append(pairs, kickers(pairs[0])...),
			fmt.Sprintf("Pair of %ss", deck.LongRankName(pairs[0])))
	}

	return newResult(HighCard, ranks, fmt.Sprintf("%s high", deck.LongRankName(ranks[0])))
}

// newResult encodes up to five tie-break ranks as base-15 digits,
// most significant first. The encoding is inverted within the category's
// band so that a stronger kicker yields a lower score.
func newResult(category Category, tiebreak []int, description string) Result {
	encoded := 0
	for i := 0; i < 5; i++ {
		encoded *= 15
		if i < len(tiebreak) {
			encoded += tiebreak[i]
		}
	}

	return Result{
		Category:    category,
		Score:       int(category)*bandWidth + (bandWidth - 1 - encoded),
		Description: description,
	}
}
