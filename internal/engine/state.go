// Package engine is the career orchestrator. Every intent takes a State and returns
// a new State plus the events it produced; the input state is never modified.
package engine

import (
	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/domain/league"
	"github.com/riskibarqy/footy-career/internal/domain/market"
	"github.com/riskibarqy/footy-career/internal/platform/random"
)

// StateVersion is bumped whenever the State layout changes incompatibly.
const StateVersion = 1

type Phase string

const (
	PhaseEmpty   Phase = "EMPTY"
	PhaseDraft   Phase = "DRAFT"
	PhaseSeason  Phase = "SEASON"
	PhaseRetired Phase = "RETIRED"
)

// GameConfig holds the constants a career is created with. They are saved with the state.
type GameConfig struct {
	SeasonLength            int `json:"season_length" validate:"min=1,max=60"`
	TeamCount               int `json:"team_count" validate:"min=2,max=18"`
	FinalsSize              int `json:"finals_size" validate:"oneof=4 8"`
	StartingAttributePoints int `json:"starting_attribute_points" validate:"min=0,max=600"`
	AttributeCap            int `json:"attribute_cap" validate:"min=20,max=99"`
	StartingAge             int `json:"starting_age" validate:"min=15,max=40"`
	StartYear               int `json:"start_year" validate:"min=1900,max=9999"`
	OfferExpiryRounds       int `json:"offer_expiry_rounds" validate:"min=1,max=20"`
	StartingWallet          int `json:"starting_wallet" validate:"min=0"`
	StartingSkillPoints     int `json:"starting_skill_points" validate:"min=0"`
}

func DefaultConfig() GameConfig {
	return GameConfig{
		SeasonLength:            22,
		TeamCount:               18,
		FinalsSize:              8,
		StartingAttributePoints: 150,
		AttributeCap:            99,
		StartingAge:             18,
		StartYear:               2026,
		OfferExpiryRounds:       3,
		StartingWallet:          100,
		StartingSkillPoints:     5,
	}
}

var configValidator = validator.New()

// Validate reports an unusable configuration as a configuration error.
func (c GameConfig) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return crerr.Mark(crerr.Wrap(err, "game config"), career.ErrConfiguration)
	}
	if c.FinalsSize > c.TeamCount {
		return crerr.Wrapf(career.ErrConfiguration, "finals size %d exceeds %d teams", c.FinalsSize, c.TeamCount)
	}
	if c.TeamCount%2 == 1 && c.SeasonLength == c.TeamCount-1 {
		return crerr.Wrapf(career.ErrConfiguration, "%d teams with byes need %d rounds for a full round robin", c.TeamCount, c.TeamCount)
	}
	return nil
}

// Sequences hand out ids that must stay unique across a whole career.
type Sequences struct {
	Offer int `json:"offer"`
	Media int `json:"media"`
}

// State is the whole saved game.
type State struct {
	Version    int                      `json:"version"`
	Revision   int                      `json:"revision"`
	Config     GameConfig               `json:"config"`
	Phase      Phase                    `json:"phase"`
	Year       int                      `json:"year"`
	Round      int                      `json:"round"`
	Week       int                      `json:"week"`
	Teams      []league.Team            `json:"teams"`
	Fixtures   []league.Fixture         `json:"fixtures"`
	Finals     *league.FinalsBracket    `json:"finals,omitempty"`
	Profile    *career.Profile          `json:"profile,omitempty"`
	Draft      *market.DraftClass       `json:"draft,omitempty"`
	VoteTally  map[string]int           `json:"vote_tally"`
	Seq        Sequences                `json:"seq"`
	HallOfFame []career.HallOfFameEntry `json:"hall_of_fame"`
	RNG        random.Snapshot          `json:"rng"`
}

// EmptyState is a state with no career, ready for a new game.
func EmptyState(cfg GameConfig, seed uint64) State {
	return State{
		Version: StateVersion,
		Config:  cfg,
		Phase:   PhaseEmpty,
		RNG:     random.New(seed).Snapshot(),
	}
}

func (s State) clone() (State, error) {
	raw, err := sonic.ConfigStd.Marshal(s)
	if err != nil {
		return State{}, crerr.Wrap(err, "clone state")
	}
	var out State
	if err := sonic.ConfigStd.Unmarshal(raw, &out); err != nil {
		return State{}, crerr.Wrap(err, "clone state")
	}
	return out, nil
}

// UserTeamID is the club the user is contracted to, or "" before the draft.
func (s State) UserTeamID() string {
	if s.Profile == nil {
		return ""
	}
	return s.Profile.Contract.ClubID
}

// Validate checks the structural invariants a loaded state must satisfy.
func (s State) Validate() error {
	if s.Version != StateVersion {
		return crerr.Wrapf(career.ErrValidation, "state version %d, want %d", s.Version, StateVersion)
	}
	if err := s.Config.Validate(); err != nil {
		return err
	}
	if _, err := random.Restore(s.RNG); err != nil {
		return crerr.Mark(err, career.ErrValidation)
	}

	switch s.Phase {
	case PhaseEmpty, PhaseRetired:
		if s.Profile != nil {
			return crerr.Wrapf(career.ErrValidation, "phase %s cannot carry a profile", s.Phase)
		}
		return nil
	case PhaseDraft, PhaseSeason:
	default:
		return crerr.Wrapf(career.ErrValidation, "unknown phase %q", s.Phase)
	}

	if s.Profile == nil {
		return crerr.Wrapf(career.ErrValidation, "phase %s needs a profile", s.Phase)
	}
	if err := s.Profile.Validate(s.Config.AttributeCap); err != nil {
		return err
	}
	if len(s.Teams) != s.Config.TeamCount {
		return crerr.Wrapf(career.ErrValidation, "%d teams, config says %d", len(s.Teams), s.Config.TeamCount)
	}
	if s.Draft != nil {
		if err := s.Draft.Validate(); err != nil {
			return err
		}
	}
	if s.Phase == PhaseDraft {
		if s.Draft == nil || s.Draft.Completed {
			return crerr.Wrap(career.ErrValidation, "draft phase needs an open draft")
		}
		return nil
	}

	if s.Round < 1 {
		return crerr.Wrapf(career.ErrValidation, "round %d", s.Round)
	}
	if _, ok := league.FindTeam(s.Teams, s.UserTeamID()); !ok {
		return crerr.Wrapf(career.ErrValidation, "user club %q is not in the league", s.UserTeamID())
	}
	seen := make(map[string]struct{}, len(s.Fixtures))
	for _, f := range s.Fixtures {
		if _, dup := seen[f.ID]; dup {
			return crerr.Wrapf(career.ErrValidation, "duplicate fixture %s", f.ID)
		}
		seen[f.ID] = struct{}{}
		if _, ok := league.FindTeam(s.Teams, f.HomeID); !ok {
			return crerr.Wrapf(career.ErrValidation, "fixture %s has unknown home team", f.ID)
		}
		if _, ok := league.FindTeam(s.Teams, f.AwayID); !ok {
			return crerr.Wrapf(career.ErrValidation, "fixture %s has unknown away team", f.ID)
		}
		if f.Played != (f.Result != nil) {
			return crerr.Wrapf(career.ErrValidation, "fixture %s result does not match played flag", f.ID)
		}
	}
	return nil
}
