package engine

import (
	"time"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/domain/league"
	"github.com/riskibarqy/footy-career/internal/domain/market"
	"github.com/riskibarqy/footy-career/internal/domain/media"
	"github.com/riskibarqy/footy-career/internal/domain/progression"
	"github.com/riskibarqy/footy-career/internal/domain/rewards"
)

// Views are computed from State on every call and never stored.

// CurrentFixture is the user's club's unplayed fixture in the current round.
// It returns false on a bye, before the finals week is scheduled, or after elimination.
func CurrentFixture(s State) (league.Fixture, bool) {
	club := s.UserTeamID()
	if club == "" {
		return league.Fixture{}, false
	}
	for _, f := range league.RoundFixtures(s.Fixtures, s.Round) {
		if !f.Played && f.Involves(club) {
			return f, true
		}
	}
	return league.Fixture{}, false
}

func Ladder(s State) []league.Team {
	return league.ComputeLadder(s.Teams, s.Fixtures)
}

func PendingMilestones(s State) []career.Milestone {
	if s.Profile == nil {
		return nil
	}
	return s.Profile.PendingMilestones()
}

func AvailableSkills(s State) []progression.MasterSkill {
	if s.Profile == nil {
		return nil
	}
	return progression.AvailableSkills(*s.Profile)
}

func CanClaimReward(s State, now time.Time) bool {
	return s.Profile != nil && rewards.CanClaim(s.Profile.DailyRewards, now)
}

// ActiveOffers are the offers still open at the current week.
func ActiveOffers(s State) []career.TransferOffer {
	if s.Profile == nil {
		return nil
	}
	return market.PruneOffers(s.Profile.TransferOffers, s.Week)
}

// InFinals reports whether the season has moved past the home-and-away rounds.
func InFinals(s State) bool {
	return s.Phase == PhaseSeason && s.Round > s.Config.SeasonLength
}

// UserEliminated is true once the user's club can play no further part in this season's finals.
func UserEliminated(s State) bool {
	if !InFinals(s) {
		return false
	}
	if s.Finals == nil {
		pos := league.LadderPosition(Ladder(s), s.UserTeamID())
		return pos == 0 || pos > s.Config.FinalsSize
	}
	return s.Finals.Eliminated(s.UserTeamID(), s.Fixtures)
}

// Summary is the compact status line shown on the career hub.
type Summary struct {
	Phase          Phase           `json:"phase"`
	Year           int             `json:"year"`
	Round          int             `json:"round"`
	Week           int             `json:"week"`
	ClubID         string          `json:"club_id,omitempty"`
	LadderPosition int             `json:"ladder_position,omitempty"`
	Overall        int             `json:"overall,omitempty"`
	ReputationTier media.Tier      `json:"reputation_tier,omitempty"`
	InFinals       bool            `json:"in_finals"`
	Eliminated     bool            `json:"eliminated"`
	Pending        int             `json:"pending_milestones"`
	Offers         int             `json:"open_offers"`
	Next           *league.Fixture `json:"next_fixture,omitempty"`
}

func Summarize(s State) Summary {
	sum := Summary{
		Phase:      s.Phase,
		Year:       s.Year,
		Round:      s.Round,
		Week:       s.Week,
		InFinals:   InFinals(s),
		Eliminated: UserEliminated(s),
		Pending:    len(PendingMilestones(s)),
		Offers:     len(ActiveOffers(s)),
	}
	if s.Profile == nil {
		return sum
	}
	sum.ClubID = s.UserTeamID()
	sum.Overall = s.Profile.Overall()
	sum.ReputationTier = media.TierFor(s.Profile.Media.Score)
	if s.Phase == PhaseSeason {
		sum.LadderPosition = league.LadderPosition(Ladder(s), sum.ClubID)
	}
	if f, ok := CurrentFixture(s); ok {
		sum.Next = &f
	}
	return sum
}
