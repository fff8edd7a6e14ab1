// Package media covers reputation, fan following, media events and the shop economy.
package media

import (
	"fmt"
	"strings"
	"unicode/utf8"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/platform/random"
)

const (
	MaxReputation = 100
	MaxPostLength = 280
	bigGameChance = 1.0
	quietGameOdds = 0.25
)

type Tier string

const (
	TierUnknown      Tier = "UNKNOWN"
	TierLocalHero    Tier = "LOCAL_HERO"
	TierRisingStar   Tier = "RISING_STAR"
	TierFanFavourite Tier = "FAN_FAVOURITE"
	TierSuperstar    Tier = "SUPERSTAR"
)

var tiers = []Tier{TierUnknown, TierLocalHero, TierRisingStar, TierFanFavourite, TierSuperstar}

func tierIndex(score int) int {
	idx := score / 20
	if idx < 0 {
		return 0
	}
	if idx >= len(tiers) {
		return len(tiers) - 1
	}
	return idx
}

// TierFor maps a reputation score to its tier.
func TierFor(score int) Tier {
	return tiers[tierIndex(score)]
}

// FanMilestones are follower counts that unlock once, in ascending order.
var FanMilestones = []int{1000, 5000, 10000, 50000, 100000, 500000, 1000000}

const (
	EventInterview         = "POST_MATCH_INTERVIEW"
	EventPressConference   = "PRESS_CONFERENCE"
	EventControversy       = "CONTROVERSY"
	EventFanQA             = "FAN_QA"
	EventSponsorAppearance = "SPONSOR_APPEARANCE"
)

const (
	ResponseConfident     = "CONFIDENT"
	ResponseHumble        = "HUMBLE"
	ResponseDeflect       = "DEFLECT"
	ResponseControversial = "CONTROVERSIAL"
)

type effect struct {
	reputation int
	followers  int
}

var responseEffects = map[string]map[string]effect{
	EventInterview: {
		ResponseConfident:     {reputation: 3, followers: 400},
		ResponseHumble:        {reputation: 4, followers: 250},
		ResponseDeflect:       {reputation: 0, followers: 50},
		ResponseControversial: {reputation: -3, followers: 1200},
	},
	EventPressConference: {
		ResponseConfident:     {reputation: 2, followers: 300},
		ResponseHumble:        {reputation: 3, followers: 200},
		ResponseDeflect:       {reputation: -1, followers: 0},
		ResponseControversial: {reputation: -4, followers: 1500},
	},
	EventControversy: {
		ResponseConfident:     {reputation: -2, followers: 600},
		ResponseHumble:        {reputation: 5, followers: 150},
		ResponseDeflect:       {reputation: 1, followers: 0},
		ResponseControversial: {reputation: -8, followers: 2500},
	},
	EventFanQA: {
		ResponseConfident:     {reputation: 2, followers: 500},
		ResponseHumble:        {reputation: 3, followers: 450},
		ResponseDeflect:       {reputation: -1, followers: 50},
		ResponseControversial: {reputation: -2, followers: 900},
	},
	EventSponsorAppearance: {
		ResponseConfident:     {reputation: 3, followers: 700},
		ResponseHumble:        {reputation: 2, followers: 400},
		ResponseDeflect:       {reputation: -2, followers: 0},
		ResponseControversial: {reputation: -5, followers: 1000},
	},
}

// postGain is the follower gain of one social post for each reputation tier.
var postGain = []int{5, 15, 40, 100, 250}

// RespondToMedia answers an open media event and returns any fan milestones it unlocked.
func RespondToMedia(p career.Profile, eventID, response string) (career.Profile, []int, error) {
	idx := -1
	for i, ev := range p.Media.Events {
		if ev.ID == eventID && !ev.Responded {
			idx = i
			break
		}
	}
	if idx < 0 {
		return p, nil, crerr.Wrapf(career.ErrNotFound, "open media event %s", eventID)
	}

	response = strings.ToUpper(strings.TrimSpace(response))
	eff, ok := responseEffects[p.Media.Events[idx].Kind][response]
	if !ok {
		return p, nil, crerr.Wrapf(career.ErrValidation, "unknown response type %q", response)
	}

	events := make([]career.MediaEvent, len(p.Media.Events))
	copy(events, p.Media.Events)
	events[idx].Responded = true
	events[idx].Response = response
	p.Media.Events = events

	p.Media.Score = career.Clamp(p.Media.Score+eff.reputation, 0, MaxReputation)
	p.Media.FanFollowers = max(0, p.Media.FanFollowers+eff.followers)
	p, unlocked := UnlockFanMilestones(p)
	return p, unlocked, nil
}

// CreateSocialPost publishes a post; the follower gain depends on reputation tier only.
func CreateSocialPost(p career.Profile, content string) (career.Profile, int, []int, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return p, 0, nil, crerr.Wrap(career.ErrValidation, "post content is empty")
	}
	if utf8.RuneCountInString(content) > MaxPostLength {
		return p, 0, nil, crerr.Wrapf(career.ErrValidation, "post longer than %d characters", MaxPostLength)
	}

	gain := postGain[tierIndex(p.Media.Score)]
	p.Media.FanFollowers += gain
	p.Media.Posts++
	p, unlocked := UnlockFanMilestones(p)
	return p, gain, unlocked, nil
}

// UnlockFanMilestones records every follower milestone reached but not yet unlocked.
func UnlockFanMilestones(p career.Profile) (career.Profile, []int) {
	unlockedSet := make(map[int]struct{}, len(p.Media.FanMilestones))
	for _, m := range p.Media.FanMilestones {
		unlockedSet[m] = struct{}{}
	}

	var unlocked []int
	for _, threshold := range FanMilestones {
		if p.Media.FanFollowers < threshold {
			break
		}
		if _, done := unlockedSet[threshold]; done {
			continue
		}
		unlocked = append(unlocked, threshold)
	}
	if len(unlocked) > 0 {
		p.Media.FanMilestones = append(append([]int(nil), p.Media.FanMilestones...), unlocked...)
	}
	return p, unlocked
}

// MatchContext is what the media saw of the user's latest game.
type MatchContext struct {
	Line      career.StatLine
	Won       bool
	Final     bool
	Milestone bool
	Opponent  string
	Year      int
	Round     int
	EventID   string
}

func (m MatchContext) bigGame() bool {
	return m.Line.Goals >= 3 || m.Line.Votes == 3 || m.Milestone || m.Final
}

// MatchExposure grows the following from on-field output and maybe opens a media event.
func MatchExposure(p career.Profile, m MatchContext, rng random.Source) (career.Profile, *career.MediaEvent, []int) {
	p.Media.FanFollowers += 20*m.Line.Goals + 50*m.Line.Votes
	if m.Won {
		p.Media.FanFollowers += 10
	}

	var created *career.MediaEvent
	odds := quietGameOdds
	if m.bigGame() {
		odds = bigGameChance
	}
	if rng.Chance(odds) {
		kind := EventInterview
		if !m.bigGame() {
			others := []string{EventPressConference, EventControversy, EventFanQA, EventSponsorAppearance}
			kind = others[rng.Intn(len(others))]
		}
		ev := career.MediaEvent{
			ID:       m.EventID,
			Kind:     kind,
			Headline: headline(kind, p.Name, m),
			Year:     m.Year,
			Round:    m.Round,
		}
		p.Media.Events = append(append([]career.MediaEvent(nil), p.Media.Events...), ev)
		created = &ev
	}

	p, unlocked := UnlockFanMilestones(p)
	return p, created, unlocked
}

func headline(kind, name string, m MatchContext) string {
	switch kind {
	case EventInterview:
		if m.Line.Goals >= 3 {
			return fmt.Sprintf("%s kicks %d against %s", name, m.Line.Goals, m.Opponent)
		}
		return fmt.Sprintf("%s speaks after the clash with %s", name, m.Opponent)
	case EventPressConference:
		return fmt.Sprintf("%s fronts the media ahead of round %d", name, m.Round+1)
	case EventControversy:
		return fmt.Sprintf("Questions raised over %s's off-field week", name)
	case EventFanQA:
		return fmt.Sprintf("%s takes fan questions live", name)
	default:
		return fmt.Sprintf("%s lines up for a sponsor appearance", name)
	}
}
