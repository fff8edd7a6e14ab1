package career

import (
	"time"

	crerr "github.com/cockroachdb/errors"
)

// UserPlayerID identifies the user in stat lines and vote tallies.
const UserPlayerID = "user"

// Profile is the user's athlete and everything the career accumulates around it.
type Profile struct {
	Name                   string          `json:"name"`
	Position               Position        `json:"position"`
	SubPosition            SubPosition     `json:"sub_position"`
	Age                    int             `json:"age"`
	Attributes             Attributes      `json:"attributes"`
	Potential              int             `json:"potential"`
	Level                  int             `json:"level"`
	XP                     int             `json:"xp"`
	SkillPoints            int             `json:"skill_points"`
	Energy                 int             `json:"energy"`
	Morale                 int             `json:"morale"`
	Injury                 *Injury         `json:"injury,omitempty"`
	Contract               Contract        `json:"contract"`
	CareerStats            Stats           `json:"career_stats"`
	SeasonStats            Stats           `json:"season_stats"`
	Milestones             []Milestone     `json:"milestones"`
	MilestonesAcknowledged int             `json:"milestones_acknowledged"`
	Wallet                 int             `json:"wallet"`
	ItemsPurchased         []string        `json:"items_purchased"`
	TransferOffers         []TransferOffer `json:"transfer_offers"`
	Media                  MediaReputation `json:"media"`
	DailyRewards           DailyRewards    `json:"daily_rewards"`
	SeasonHistory          []SeasonRecord  `json:"season_history"`
	Draft                  *DraftRecord    `json:"draft,omitempty"`
}

type Injury struct {
	Name           string `json:"name"`
	WeeksRemaining int    `json:"weeks_remaining"`
}

type Tier string

const (
	TierLocal    Tier = "LOCAL"
	TierState    Tier = "STATE"
	TierNational Tier = "NATIONAL"
)

type Role string

const (
	RoleStar     Role = "STAR"
	RoleStarter  Role = "STARTER"
	RoleRotation Role = "ROTATION"
	RoleDepth    Role = "DEPTH"
)

type Contract struct {
	ClubID    string `json:"club_id"`
	ClubName  string `json:"club_name"`
	Salary    int    `json:"salary"`
	Tier      Tier   `json:"tier"`
	Role      Role   `json:"role"`
	YearsLeft int    `json:"years_left"`
}

// Stats are cumulative counters. Career stats never decrease; season stats reset each season.
type Stats struct {
	Matches      int `json:"matches"`
	Goals        int `json:"goals"`
	Behinds      int `json:"behinds"`
	Disposals    int `json:"disposals"`
	Tackles      int `json:"tackles"`
	Votes        int `json:"votes"`
	Premierships int `json:"premierships"`
	Awards       int `json:"awards"`
}

// AddLine folds one match into the counters.
func (s *Stats) AddLine(line StatLine) {
	s.Matches++
	s.Goals += line.Goals
	s.Behinds += line.Behinds
	s.Disposals += line.Disposals
	s.Tackles += line.Tackles
	s.Votes += line.Votes
}

// StatLine is one player's output in one match.
type StatLine struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	TeamID    string `json:"team_id"`
	Disposals int    `json:"disposals"`
	Tackles   int    `json:"tackles"`
	Goals     int    `json:"goals"`
	Behinds   int    `json:"behinds"`
	Votes     int    `json:"votes"`
}

type TransferOffer struct {
	ID             string `json:"id"`
	ClubID         string `json:"club_id"`
	ClubName       string `json:"club_name"`
	Tier           Tier   `json:"tier"`
	TeamRanking    int    `json:"team_ranking"`
	Salary         int    `json:"salary"`
	ContractLength int    `json:"contract_length"`
	Role           Role   `json:"role"`
	Reason         string `json:"reason"`
	ExpiresRound   int    `json:"expires_round"`
}

type MediaReputation struct {
	Score         int          `json:"score"`
	FanFollowers  int          `json:"fan_followers"`
	Events        []MediaEvent `json:"events"`
	FanMilestones []int        `json:"fan_milestones"`
	Posts         int          `json:"posts"`
}

type MediaEvent struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Headline  string `json:"headline"`
	Year      int    `json:"year"`
	Round     int    `json:"round"`
	Responded bool   `json:"responded"`
	Response  string `json:"response,omitempty"`
}

type DailyRewards struct {
	LastClaim   time.Time `json:"last_claim"`
	Streak      int       `json:"streak"`
	TotalLogins int       `json:"total_logins"`
}

// SeasonRecord summarizes a finished season for the career history.
type SeasonRecord struct {
	Year           int    `json:"year"`
	ClubID         string `json:"club_id"`
	ClubName       string `json:"club_name"`
	LadderPosition int    `json:"ladder_position"`
	FinalsResult   string `json:"finals_result"`
	Stats          Stats  `json:"stats"`
	Brownlow       bool   `json:"brownlow"`
	Premiership    bool   `json:"premiership"`
}

type DraftRecord struct {
	Year       int    `json:"year"`
	PickNumber int    `json:"pick_number"`
	ClubID     string `json:"club_id"`
	Undrafted  bool   `json:"undrafted"`
}

// HallOfFameEntry is the snapshot kept when a player retires.
type HallOfFameEntry struct {
	Name        string      `json:"name"`
	Position    Position    `json:"position"`
	RetiredYear int         `json:"retired_year"`
	Age         int         `json:"age"`
	Seasons     int         `json:"seasons"`
	Level       int         `json:"level"`
	LastClub    string      `json:"last_club"`
	CareerStats Stats       `json:"career_stats"`
	Milestones  []Milestone `json:"milestones"`
}

func (p Profile) Overall() int {
	return p.Attributes.Rating(p.Position)
}

func (p Profile) IsInjured() bool {
	return p.Injury != nil && p.Injury.WeeksRemaining > 0
}

// PendingMilestones returns achieved milestones not yet acknowledged by the user.
func (p Profile) PendingMilestones() []Milestone {
	if p.MilestonesAcknowledged >= len(p.Milestones) {
		return nil
	}
	return p.Milestones[p.MilestonesAcknowledged:]
}

func (p Profile) Owns(itemID string) bool {
	for _, id := range p.ItemsPurchased {
		if id == itemID {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of a profile.
func (p Profile) Validate(attributeCap int) error {
	if p.Name == "" {
		return crerr.Wrap(ErrValidation, "profile name is required")
	}
	if !ValidSubPosition(p.Position, p.SubPosition) {
		return crerr.Wrapf(ErrValidation, "sub-position %s does not belong to %s", p.SubPosition, p.Position)
	}
	if p.Potential < MinAttribute || p.Potential > attributeCap {
		return crerr.Wrapf(ErrValidation, "potential %d outside [%d, %d]", p.Potential, MinAttribute, attributeCap)
	}
	for _, attr := range AllAttributes {
		v, _ := p.Attributes.Get(attr)
		if v < MinAttribute || v > p.Potential {
			return crerr.Wrapf(ErrValidation, "attribute %s=%d outside [%d, %d]", attr, v, MinAttribute, p.Potential)
		}
	}
	if p.Level < 1 || p.XP < 0 || p.SkillPoints < 0 {
		return crerr.Wrap(ErrValidation, "level, xp and skill points must be non-negative")
	}
	if p.Energy < 0 || p.Energy > MaxEnergy || p.Morale < 0 || p.Morale > MaxMorale {
		return crerr.Wrap(ErrValidation, "energy and morale must be within [0, 100]")
	}
	if p.Injury != nil && p.Injury.WeeksRemaining <= 0 {
		return crerr.Wrap(ErrValidation, "injury must have weeks remaining")
	}
	if p.Wallet < 0 {
		return crerr.Wrap(ErrValidation, "wallet cannot be negative")
	}
	if p.MilestonesAcknowledged < 0 || p.MilestonesAcknowledged > len(p.Milestones) {
		return crerr.Wrap(ErrValidation, "milestone acknowledgement cursor out of range")
	}
	if p.DailyRewards.Streak < 1 || p.DailyRewards.TotalLogins < 0 {
		return crerr.Wrap(ErrValidation, "daily reward streak must be at least 1")
	}
	if p.Media.Score < 0 || p.Media.FanFollowers < 0 {
		return crerr.Wrap(ErrValidation, "media reputation cannot be negative")
	}
	if p.Contract.YearsLeft < 0 {
		return crerr.Wrap(ErrValidation, "contract years cannot be negative")
	}
	return nil
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
