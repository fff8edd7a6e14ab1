package engine

import (
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/domain/market"
	"github.com/riskibarqy/footy-career/internal/domain/media"
	"github.com/riskibarqy/footy-career/internal/domain/progression"
	"github.com/riskibarqy/footy-career/internal/domain/rewards"
)

func (e *Engine) TrainAttribute(s State, attribute string) (State, []Event, error) {
	return e.apply(s, profilePhase, func(t *txn) error {
		attr, ok := career.ParseAttribute(attribute)
		if !ok {
			return crerr.Wrapf(career.ErrValidation, "unknown attribute %q", attribute)
		}
		p := t.profile()
		level := p.Level
		trained, xp, err := progression.TrainAttribute(*p, attr)
		if err != nil {
			return err
		}
		*p = trained

		value, _ := p.Attributes.Get(attr)
		t.events.add(EventTraining, string(attr), "%s trained to %d (+%d XP)", attr, value, xp)
		if p.Level > level {
			t.events.add(EventLevelUp, "", "Level %d reached (+%d skill points)", p.Level, (p.Level-level)*progression.SkillPointsPerLevel)
		}
		return nil
	})
}

// AcknowledgeMilestone marks the oldest pending milestone as seen.
func (e *Engine) AcknowledgeMilestone(s State) (State, []Event, error) {
	return e.apply(s, profilePhase, func(t *txn) error {
		p := t.profile()
		pending := p.PendingMilestones()
		if len(pending) == 0 {
			return crerr.Wrap(career.ErrNotFound, "no pending milestones")
		}
		p.MilestonesAcknowledged++
		t.events.add(EventMilestoneSeen, pending[0].ID, "%s", pending[0].Title)
		return nil
	})
}

// ClaimReward pays the daily login reward. A second claim on the same day returns s unchanged.
func (e *Engine) ClaimReward(s State, now time.Time) (State, []Event, error) {
	if s.Profile != nil && !rewards.CanClaim(s.Profile.DailyRewards, now) {
		return s, nil, nil
	}
	return e.apply(s, profilePhase, func(t *txn) error {
		p := t.profile()
		claimed, res := rewards.Claim(*p, now)
		*p = claimed
		t.events.add(EventRewardClaimed, "", "Day %d reward: +%d skill points, +%d energy", res.Reward.Day, res.Reward.SkillPoints, res.Reward.Energy)
		return nil
	})
}

func (e *Engine) PurchaseItem(s State, itemID string) (State, []Event, error) {
	return e.apply(s, profilePhase, func(t *txn) error {
		p := t.profile()
		bought, item, levels, err := media.PurchaseItem(*p, itemID)
		if err != nil {
			return err
		}
		*p = bought
		t.events.add(EventPurchase, item.ID, "Bought %s for %d coins", item.Name, item.Price)
		if levels > 0 {
			t.events.add(EventLevelUp, "", "Level %d reached (+%d skill points)", p.Level, levels*progression.SkillPointsPerLevel)
		}
		return nil
	})
}

// AcceptTransfer signs an open offer. The user plays for the new club from the next fixture.
func (e *Engine) AcceptTransfer(s State, offerID string) (State, []Event, error) {
	return e.apply(s, seasonPhase, func(t *txn) error {
		p := t.profile()
		signed, offer, err := market.AcceptOffer(*p, offerID, t.state.Week)
		if err != nil {
			return err
		}
		*p = signed
		t.events.add(EventContractSigned, offer.ClubID, "Signed with %s: %d coins a season for %d years", offer.ClubName, offer.Salary, offer.ContractLength)
		return nil
	})
}

func (e *Engine) RejectTransfer(s State, offerID string) (State, []Event, error) {
	return e.apply(s, seasonPhase, func(t *txn) error {
		p := t.profile()
		rejected, err := market.RejectOffer(*p, offerID)
		if err != nil {
			return err
		}
		*p = rejected
		t.events.add(EventOfferRejected, offerID, "Offer %s declined", offerID)
		return nil
	})
}

func (e *Engine) RespondToMedia(s State, eventID, response string) (State, []Event, error) {
	return e.apply(s, profilePhase, func(t *txn) error {
		p := t.profile()
		updated, unlocked, err := media.RespondToMedia(*p, eventID, response)
		if err != nil {
			return err
		}
		*p = updated
		t.events.add(EventMediaResponse, eventID, "Reputation now %d (%s)", p.Media.Score, media.TierFor(p.Media.Score))
		t.fanMilestones(unlocked)
		return nil
	})
}

func (e *Engine) CreateSocialPost(s State, content string) (State, []Event, error) {
	return e.apply(s, profilePhase, func(t *txn) error {
		p := t.profile()
		updated, gain, unlocked, err := media.CreateSocialPost(*p, content)
		if err != nil {
			return err
		}
		*p = updated
		t.events.add(EventSocialPost, "", "Post published, +%d followers", gain)
		t.fanMilestones(unlocked)
		return nil
	})
}
