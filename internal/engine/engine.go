package engine

import (
	"cmp"
	"slices"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/domain/league"
	"github.com/riskibarqy/footy-career/internal/domain/market"
	"github.com/riskibarqy/footy-career/internal/domain/match"
	"github.com/riskibarqy/footy-career/internal/platform/random"
)

// Engine applies intents to game states. It holds no game state of its own and is
// safe to share between goroutines.
type Engine struct {
	cfg    GameConfig
	params match.Params
}

type Option func(*Engine)

func WithMatchParams(p match.Params) Option {
	return func(e *Engine) {
		e.params = p
	}
}

// New validates cfg, which is used for games started by this engine.
// Loaded states keep the config they were created with.
func New(cfg GameConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, params: match.DefaultParams()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Config() GameConfig {
	return e.cfg
}

// txn is one intent in flight: a private copy of the state plus its random stream.
type txn struct {
	state  State
	rng    *random.Stream
	events eventLog
}

func (t *txn) profile() *career.Profile {
	return t.state.Profile
}

// apply runs fn against a deep copy of s. On error the caller gets s back untouched.
func (e *Engine) apply(s State, phases []Phase, fn func(*txn) error) (State, []Event, error) {
	if !slices.Contains(phases, s.Phase) {
		return s, nil, crerr.Wrapf(career.ErrValidation, "not allowed during phase %s", s.Phase)
	}
	working, err := s.clone()
	if err != nil {
		return s, nil, err
	}
	rng, err := random.Restore(working.RNG)
	if err != nil {
		return s, nil, crerr.Mark(err, career.ErrCorruptSave)
	}

	t := &txn{state: working, rng: rng}
	if err := fn(t); err != nil {
		return s, nil, err
	}
	t.state.RNG = rng.Snapshot()
	t.state.Revision++
	return t.state, t.events, nil
}

var (
	anyPhase     = []Phase{PhaseEmpty, PhaseDraft, PhaseSeason, PhaseRetired}
	profilePhase = []Phase{PhaseDraft, PhaseSeason}
	draftPhase   = []Phase{PhaseDraft}
	seasonPhase  = []Phase{PhaseSeason}
	emptyPhase   = []Phase{PhaseEmpty}
)

// NewGameInput is the athlete created at onboarding.
type NewGameInput struct {
	Name        string             `json:"name" validate:"required,max=40"`
	Position    career.Position    `json:"position" validate:"required,oneof=FORWARD MIDFIELDER DEFENDER RUCK"`
	SubPosition career.SubPosition `json:"sub_position" validate:"required"`
	Attributes  career.Attributes  `json:"attributes"`
}

var inputValidator = validator.New()

func (in NewGameInput) validate(cfg GameConfig) error {
	if err := inputValidator.Struct(in); err != nil {
		return crerr.Mark(crerr.Wrap(err, "new game input"), career.ErrValidation)
	}
	if !career.ValidSubPosition(in.Position, in.SubPosition) {
		return crerr.Wrapf(career.ErrValidation, "sub-position %s does not belong to %s", in.SubPosition, in.Position)
	}
	for _, attr := range career.AllAttributes {
		v, _ := in.Attributes.Get(attr)
		if v < career.MinAttribute || v > cfg.AttributeCap {
			return crerr.Wrapf(career.ErrValidation, "attribute %s=%d outside [%d, %d]", attr, v, career.MinAttribute, cfg.AttributeCap)
		}
	}
	if spent := in.Attributes.PointsAboveBase(); spent > cfg.StartingAttributePoints {
		return crerr.Wrapf(career.ErrValidation, "allocated %d attribute points, only %d available", spent, cfg.StartingAttributePoints)
	}
	return nil
}

// NewGame starts a fresh save from seed.
func (e *Engine) NewGame(seed uint64, in NewGameInput) (State, []Event, error) {
	return e.StartNewCareer(EmptyState(e.cfg, seed), in)
}

// StartNewCareer begins a career on an empty state, keeping its hall of fame and random stream.
func (e *Engine) StartNewCareer(s State, in NewGameInput) (State, []Event, error) {
	if err := in.validate(s.Config); err != nil {
		return s, nil, err
	}
	return e.apply(s, emptyPhase, func(t *txn) error {
		cfg := t.state.Config
		in.Name = strings.TrimSpace(in.Name)

		highest := slices.Max(in.Attributes.Values())
		potential := t.rng.Range(max(highest, cfg.AttributeCap*3/4), cfg.AttributeCap)

		profile := career.Profile{
			Name:         in.Name,
			Position:     in.Position,
			SubPosition:  in.SubPosition,
			Age:          cfg.StartingAge,
			Attributes:   in.Attributes,
			Potential:    potential,
			Level:        1,
			SkillPoints:  cfg.StartingSkillPoints,
			Energy:       career.MaxEnergy,
			Morale:       70,
			Wallet:       cfg.StartingWallet,
			DailyRewards: career.DailyRewards{Streak: 1},
		}

		teams := league.NewTeams(cfg.TeamCount, cfg.AttributeCap, t.rng)
		draft := market.BuildDraftClass(cfg.StartYear, draftOrder(teams), profile, cfg.AttributeCap, t.rng)

		t.state.Phase = PhaseDraft
		t.state.Year = cfg.StartYear
		t.state.Round = 1
		t.state.Week = 0
		t.state.Teams = teams
		t.state.Fixtures = nil
		t.state.Finals = nil
		t.state.Profile = &profile
		t.state.Draft = &draft
		t.state.VoteTally = map[string]int{}
		t.state.Seq = Sequences{Offer: 1, Media: 1}

		t.events.add(EventGameStarted, "", "%s enters the %d national draft with potential %d", profile.Name, cfg.StartYear, potential)
		return nil
	})
}

// draftOrder gives the weakest clubs the earliest picks.
func draftOrder(teams []league.Team) []league.Team {
	order := slices.Clone(teams)
	slices.SortStableFunc(order, func(a, b league.Team) int {
		return cmp.Compare(a.Strength(), b.Strength())
	})
	return order
}

func (e *Engine) SimulateDraftPick(s State) (State, []Event, error) {
	return e.apply(s, draftPhase, func(t *txn) error {
		next, pick, err := market.SimulatePick(*t.state.Draft, t.state.Teams, t.rng)
		if err != nil {
			return err
		}
		t.state.Draft = &next
		t.recordPick(pick)
		return nil
	})
}

// CompleteDraft makes the remaining picks, signs the user and opens the first season.
func (e *Engine) CompleteDraft(s State) (State, []Event, error) {
	return e.apply(s, draftPhase, func(t *txn) error {
		next, picks, err := market.CompleteDraft(*t.state.Draft, t.state.Teams, t.rng)
		if err != nil {
			return err
		}
		t.state.Draft = &next
		for _, pick := range picks {
			t.recordPick(pick)
		}

		p := t.profile()
		if pick, ok := next.UserPick(); ok {
			p.Contract = market.RookieContract(pick)
			p.Draft = &career.DraftRecord{Year: next.Year, PickNumber: pick.PickNumber, ClubID: pick.TeamID}
			t.events.add(EventDrafted, pick.TeamID, "%s selected %s with pick %d", pick.TeamName, p.Name, pick.PickNumber)
		} else {
			p.Contract = market.UndraftedContract(next)
			p.Draft = &career.DraftRecord{Year: next.Year, ClubID: p.Contract.ClubID, Undrafted: true}
			t.events.add(EventUndrafted, p.Contract.ClubID, "Overlooked in the draft, %s signs a state-level deal with %s", p.Name, p.Contract.ClubName)
		}

		return t.startSeason()
	})
}

func (t *txn) recordPick(pick market.Pick) {
	prospect, _ := t.state.Draft.Prospect(pick.ProspectID)
	if prospect.IsUser {
		t.events.add(EventDraftPick, pick.ProspectID, "Pick %d: %s take YOU, %s", pick.PickNumber, pick.TeamName, prospect.Name)
		return
	}
	t.events.add(EventDraftPick, pick.ProspectID, "Pick %d: %s select %s (%s)", pick.PickNumber, pick.TeamName, prospect.Name, prospect.Position)
}

// startSeason resets standings and builds the home-and-away fixture for the current year.
func (t *txn) startSeason() error {
	for i := range t.state.Teams {
		t.state.Teams[i].Standing = league.Standing{}
	}
	fixtures, err := league.GenerateSeasonFixtures(t.state.Teams, t.state.Config.SeasonLength)
	if err != nil {
		return err
	}
	t.state.Phase = PhaseSeason
	t.state.Round = 1
	t.state.Fixtures = fixtures
	t.state.Finals = nil
	t.state.VoteTally = map[string]int{}
	return nil
}

// RetirePlayer moves the athlete into the hall of fame and ends the career.
func (e *Engine) RetirePlayer(s State) (State, []Event, error) {
	return e.apply(s, profilePhase, func(t *txn) error {
		p := t.profile()
		entry := career.HallOfFameEntry{
			Name:        p.Name,
			Position:    p.Position,
			RetiredYear: t.state.Year,
			Age:         p.Age,
			Seasons:     len(p.SeasonHistory),
			Level:       p.Level,
			LastClub:    p.Contract.ClubName,
			CareerStats: p.CareerStats,
			Milestones:  p.Milestones,
		}
		t.state.HallOfFame = append(t.state.HallOfFame, entry)
		t.events.add(EventRetired, "", "%s retires after %d seasons, %d games and %d goals", p.Name, entry.Seasons, p.CareerStats.Matches, p.CareerStats.Goals)
		t.clearCareer(PhaseRetired)
		return nil
	})
}

// ResetGame discards the current career. The hall of fame survives.
func (e *Engine) ResetGame(s State) (State, []Event, error) {
	return e.apply(s, anyPhase, func(t *txn) error {
		t.clearCareer(PhaseEmpty)
		t.events.add(EventGameReset, "", "Career reset")
		return nil
	})
}

func (t *txn) clearCareer(phase Phase) {
	t.state.Phase = phase
	t.state.Profile = nil
	t.state.Draft = nil
	t.state.Teams = nil
	t.state.Fixtures = nil
	t.state.Finals = nil
	t.state.VoteTally = nil
	t.state.Round = 0
}
