// Package market generates and resolves transfer offers and runs the entry draft.
package market

import (
	"fmt"
	"math"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/domain/league"
	"github.com/riskibarqy/footy-career/internal/platform/random"
)

// Season salaries in coins for an average player at each list level.
var tierSalary = map[career.Tier]int{
	career.TierNational: 2200,
	career.TierState:    900,
	career.TierLocal:    300,
}

// OfferWindow describes a transfer window opening.
type OfferWindow struct {
	Profile      career.Profile
	Ladder       []league.Team
	Week         int
	ExpiryRounds int
	NextSeq      int
	Label        string
}

// MarketValue blends current rating with this season's votes.
func MarketValue(p career.Profile) int {
	bonus := p.SeasonStats.Votes
	if bonus > 15 {
		bonus = 15
	}
	return p.Overall() + bonus
}

func roleFor(value int) career.Role {
	switch {
	case value >= 80:
		return career.RoleStar
	case value >= 65:
		return career.RoleStarter
	case value >= 50:
		return career.RoleRotation
	default:
		return career.RoleDepth
	}
}

func tierFor(value int) career.Tier {
	switch {
	case value >= 50:
		return career.TierNational
	case value >= 35:
		return career.TierState
	default:
		return career.TierLocal
	}
}

// GenerateOffers opens a window and returns the new offers plus the next id sequence.
// Clubs that already have an open offer, and the user's own club, are skipped.
func GenerateOffers(w OfferWindow, rng random.Source) ([]career.TransferOffer, int) {
	value := MarketValue(w.Profile)
	role := roleFor(value)
	tier := tierFor(value)

	open := make(map[string]struct{}, len(w.Profile.TransferOffers))
	for _, o := range w.Profile.TransferOffers {
		open[o.ClubID] = struct{}{}
	}

	type candidate struct {
		team     league.Team
		position int
	}
	var candidates []candidate
	var weights []float64
	for i, team := range w.Ladder {
		if team.ID == w.Profile.Contract.ClubID {
			continue
		}
		if _, ok := open[team.ID]; ok {
			continue
		}
		need := float64(i+1) / float64(len(w.Ladder))
		weight := 0.3 + need
		if role == career.RoleStar || role == career.RoleStarter {
			weight = 1
		}
		candidates = append(candidates, candidate{team: team, position: i + 1})
		weights = append(weights, weight)
	}

	count := 1 + rng.Intn(3)
	seq := w.NextSeq
	var offers []career.TransferOffer
	for len(offers) < count {
		idx := random.Pick(rng, weights)
		if idx < 0 {
			break
		}
		weights[idx] = 0

		c := candidates[idx]
		scale := 1 + float64(value-40)/50
		if scale < 0.5 {
			scale = 0.5
		}
		offers = append(offers, career.TransferOffer{
			ID:             fmt.Sprintf("offer-%d", seq),
			ClubID:         c.team.ID,
			ClubName:       c.team.Name,
			Tier:           tier,
			TeamRanking:    c.position,
			Salary:         int(math.Round(float64(tierSalary[tier])*scale/10)) * 10,
			ContractLength: rng.Range(1, 4),
			Role:           role,
			Reason:         offerReason(w.Label, c.position, len(w.Ladder), c.team.WeakestLine()),
			ExpiresRound:   w.Week + w.ExpiryRounds,
		})
		seq++
	}
	return offers, seq
}

func offerReason(label string, position, teams int, weakest career.Position) string {
	switch {
	case position > teams*2/3:
		return fmt.Sprintf("%s: rebuilding list, needs a %s", label, weakest)
	case position <= 4:
		return fmt.Sprintf("%s: premiership push, adding depth", label)
	default:
		return fmt.Sprintf("%s: looking to strengthen the %s group", label, weakest)
	}
}

// PruneOffers drops offers that expired before week.
func PruneOffers(offers []career.TransferOffer, week int) []career.TransferOffer {
	out := offers[:0:0]
	for _, o := range offers {
		if o.ExpiresRound >= week {
			out = append(out, o)
		}
	}
	return out
}

// AcceptOffer signs the offer, replacing the contract and clearing every other offer.
func AcceptOffer(p career.Profile, offerID string, week int) (career.Profile, career.TransferOffer, error) {
	for _, o := range p.TransferOffers {
		if o.ID != offerID {
			continue
		}
		if o.ExpiresRound < week {
			return p, career.TransferOffer{}, crerr.Wrapf(career.ErrNotFound, "offer %s has expired", offerID)
		}
		p.Contract = career.Contract{
			ClubID:    o.ClubID,
			ClubName:  o.ClubName,
			Salary:    o.Salary,
			Tier:      o.Tier,
			Role:      o.Role,
			YearsLeft: o.ContractLength,
		}
		p.TransferOffers = nil
		return p, o, nil
	}
	return p, career.TransferOffer{}, crerr.Wrapf(career.ErrNotFound, "offer %s", offerID)
}

func RejectOffer(p career.Profile, offerID string) (career.Profile, error) {
	for i, o := range p.TransferOffers {
		if o.ID != offerID {
			continue
		}
		remaining := make([]career.TransferOffer, 0, len(p.TransferOffers)-1)
		remaining = append(remaining, p.TransferOffers[:i]...)
		remaining = append(remaining, p.TransferOffers[i+1:]...)
		p.TransferOffers = remaining
		return p, nil
	}
	return p, crerr.Wrapf(career.ErrNotFound, "offer %s", offerID)
}
