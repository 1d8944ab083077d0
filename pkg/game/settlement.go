package game

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/thoas/go-funk"
	"scanpoker-server/pkg/poker/handrank"
)

// runShowdown evaluates every remaining hand, splits the pot among the
// best scores, and ends the hand. Called synchronously when the river
// betting round completes.
func (r *Room) runShowdown() {
	best := handrank.Incomplete()
	results := make(map[string]handrank.Result)
	var contenders []*Player

	for _, p := range r.players {
		if !p.InHand() {
			continue
		}

		result := handrank.Best(append(p.HoleCards.Clone(), r.community...))
		p.HandRanking = result.Description
		results[p.ID] = result
		if result.Beats(best) {
			best = result
		}
		contenders = append(contenders, p)
	}

	winners := funk.Filter(contenders, func(p *Player) bool {
		return results[p.ID].Complete() && results[p.ID].Score == best.Score
	}).([]*Player)

	if len(winners) == 0 {
		// no five-card hand could be formed; nothing can be awarded
		r.logError("showdown reached without a complete hand")
		r.stage = StageEnded
		return
	}

	share := r.pot / len(winners)
	remainder := r.pot - share*len(winners)

	for _, winner := range winners {
		winner.Chips += share
		r.winners = append(r.winners, winner.ID)
		r.logMessage(fmt.Sprintf("%s wins %d with %s", winner.Name, share, results[winner.ID].Description))
	}

	if remainder > 0 {
		// the odd chip is not awarded; keep the discrepancy visible
		r.logMessage(fmt.Sprintf("%d chip(s) undistributed after split", remainder))
		r.log.WithFields(logrus.Fields{
			"pot":     r.pot,
			"winners": len(winners),
		}).Warn("pot split left a remainder")
	}

	r.pot = 0
	r.stage = StageEnded
}
