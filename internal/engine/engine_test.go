package engine

import (
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/domain/league"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultConfig())
	require.NoError(t, err)
	return e
}

func rookieInput() NewGameInput {
	return NewGameInput{
		Name:        "Casey Rookie",
		Position:    career.PositionForward,
		SubPosition: career.SubPositionFullForward,
		Attributes: career.Attributes{
			Kicking: 40, Handballing: 30, Marking: 35, Tackling: 25,
			Speed: 30, Endurance: 30, DecisionMaking: 30,
		},
	}
}

func seasonState(t *testing.T, e *Engine, seed uint64) State {
	t.Helper()
	s, _, err := e.NewGame(seed, rookieInput())
	require.NoError(t, err)
	s, _, err = e.CompleteDraft(s)
	require.NoError(t, err)
	return s
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FinalsSize = 6
	_, err := New(cfg)
	assert.True(t, crerr.Is(err, career.ErrConfiguration))

	cfg = DefaultConfig()
	cfg.TeamCount = 4
	_, err = New(cfg)
	assert.True(t, crerr.Is(err, career.ErrConfiguration), "final eight needs eight teams")

	cfg = DefaultConfig()
	cfg.TeamCount, cfg.SeasonLength = 17, 16
	_, err = New(cfg)
	assert.True(t, crerr.Is(err, career.ErrConfiguration), "odd team count needs a bye round to meet everyone")
}

func TestNewGame_ValidatesInput(t *testing.T) {
	e := newTestEngine(t)
	tests := []struct {
		name   string
		mutate func(*NewGameInput)
	}{
		{name: "empty name", mutate: func(in *NewGameInput) { in.Name = "" }},
		{name: "unknown position", mutate: func(in *NewGameInput) { in.Position = "GOALKEEPER" }},
		{name: "wrong sub-position", mutate: func(in *NewGameInput) { in.SubPosition = career.SubPositionRuckman }},
		{name: "attribute below floor", mutate: func(in *NewGameInput) { in.Attributes.Speed = 5 }},
		{name: "too many points", mutate: func(in *NewGameInput) { in.Attributes.Kicking = 99; in.Attributes.Marking = 99 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := rookieInput()
			tc.mutate(&in)
			_, _, err := e.NewGame(1, in)
			if !crerr.Is(err, career.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestNewGame_OpensDraft(t *testing.T) {
	e := newTestEngine(t)
	s, events, err := e.NewGame(42, rookieInput())
	require.NoError(t, err)

	assert.Equal(t, PhaseDraft, s.Phase)
	assert.Len(t, s.Teams, 18)
	require.NotNil(t, s.Draft)
	assert.Len(t, s.Draft.Prospects, 50)
	assert.Len(t, s.Draft.Picks, 36)
	require.NotNil(t, s.Profile)
	assert.GreaterOrEqual(t, s.Profile.Potential, 74)
	assert.LessOrEqual(t, s.Profile.Potential, 99)
	assert.Equal(t, 1, s.Profile.DailyRewards.Streak)
	assert.NotEmpty(t, events)
	require.NoError(t, s.Validate())
}

func TestCompleteDraft_SignsUserAndSchedulesSeason(t *testing.T) {
	e := newTestEngine(t)
	s, _, err := e.NewGame(7, rookieInput())
	require.NoError(t, err)

	s, _, err = e.SimulateDraftPick(s)
	require.NoError(t, err)
	assert.NotEmpty(t, s.Draft.Picks[0].ProspectID)

	s, _, err = e.CompleteDraft(s)
	require.NoError(t, err)
	assert.Equal(t, PhaseSeason, s.Phase)
	assert.Len(t, s.Fixtures, 198)
	assert.NotEmpty(t, s.Profile.Contract.ClubID)
	require.NotNil(t, s.Profile.Draft)

	_, _, err = e.CompleteDraft(s)
	assert.True(t, crerr.Is(err, career.ErrValidation), "draft intents are closed once the season starts")
}

func TestPhaseGuards(t *testing.T) {
	e := newTestEngine(t)
	draft, _, err := e.NewGame(3, rookieInput())
	require.NoError(t, err)

	_, _, err = e.SimulateRound(draft)
	assert.True(t, crerr.Is(err, career.ErrValidation))
	_, _, err = e.AcceptTransfer(draft, "offer-1")
	assert.True(t, crerr.Is(err, career.ErrValidation))

	empty := EmptyState(DefaultConfig(), 3)
	_, _, err = e.TrainAttribute(empty, "kicking")
	assert.True(t, crerr.Is(err, career.ErrValidation))
	_, _, err = e.ResetGame(empty)
	assert.NoError(t, err)
}

func TestIntentErrorLeavesStateUntouched(t *testing.T) {
	e := newTestEngine(t)
	s := seasonState(t, e, 11)
	before, err := Serialize(s)
	require.NoError(t, err)

	failures := []func(State) (State, []Event, error){
		func(s State) (State, []Event, error) { return e.TrainAttribute(s, "juggling") },
		func(s State) (State, []Event, error) { return e.PurchaseItem(s, "kicking-clinic") },
		func(s State) (State, []Event, error) { return e.AcceptTransfer(s, "offer-99") },
		func(s State) (State, []Event, error) { return e.RespondToMedia(s, "media-99", "HUMBLE") },
		func(s State) (State, []Event, error) { return e.CreateSocialPost(s, "") },
		func(s State) (State, []Event, error) { return e.AcknowledgeMilestone(s) },
	}
	for i, fn := range failures {
		got, events, err := fn(s)
		if err == nil {
			t.Fatalf("case %d: expected error", i)
		}
		assert.Empty(t, events)
		after, serr := Serialize(got)
		require.NoError(t, serr)
		assert.Equal(t, before, after, "case %d returned a modified state", i)
		again, serr := Serialize(s)
		require.NoError(t, serr)
		assert.Equal(t, before, again, "case %d mutated its input", i)
	}
}

func TestTrainAttribute_KickingScenario(t *testing.T) {
	e := newTestEngine(t)
	in := rookieInput()
	in.Attributes.Kicking = 10
	s, _, err := e.NewGame(5, in)
	require.NoError(t, err)
	s.Profile.SkillPoints = 1
	s.Profile.Energy = 100

	s, events, err := e.TrainAttribute(s, "KICKING")
	require.NoError(t, err)
	assert.Equal(t, 11, s.Profile.Attributes.Kicking)
	assert.Equal(t, 0, s.Profile.SkillPoints)
	assert.Equal(t, 90, s.Profile.Energy)
	assert.Equal(t, 15, s.Profile.XP)
	assert.Equal(t, EventTraining, events[0].Kind)
	assert.Contains(t, events[0].Message, "+15 XP")

	_, _, err = e.TrainAttribute(s, "kicking")
	assert.True(t, crerr.Is(err, career.ErrInsufficientResource))
}

func TestDeterministicReplay(t *testing.T) {
	play := func() []byte {
		e := newTestEngine(t)
		s := seasonState(t, e, 2026)
		var err error
		for i := 0; i < 5; i++ {
			s, _, err = e.SimulateRound(s)
			require.NoError(t, err)
		}
		s, _, err = e.CreateSocialPost(s, "Round five done")
		require.NoError(t, err)
		out, err := Serialize(s)
		require.NoError(t, err)
		return out
	}
	assert.Equal(t, play(), play())
}

func TestSimulateRound_KeepsRoundIntegrityAndMonotonicStats(t *testing.T) {
	e := newTestEngine(t)
	s := seasonState(t, e, 99)

	for round := 1; round <= s.Config.SeasonLength; round++ {
		prev := s.Profile.CareerStats
		next, _, err := e.SimulateRound(s)
		require.NoError(t, err)

		for _, f := range league.RoundFixtures(next.Fixtures, round) {
			if !f.Played || f.Result == nil {
				t.Fatalf("round %d fixture %s left unplayed", round, f.ID)
			}
		}
		cur := next.Profile.CareerStats
		if cur.Matches < prev.Matches || cur.Goals < prev.Goals || cur.Disposals < prev.Disposals || cur.Tackles < prev.Tackles || cur.Votes < prev.Votes {
			t.Fatalf("career stats decreased in round %d: %+v -> %+v", round, prev, cur)
		}
		assert.Equal(t, round, next.Week)
		assert.Equal(t, career.MaxEnergy, next.Profile.Energy)
		s = next
	}

	wins, losses, draws, pf, pa := 0, 0, 0, 0, 0
	for _, team := range Ladder(s) {
		wins += team.Standing.Wins
		losses += team.Standing.Losses
		draws += team.Standing.Draws
		pf += team.Standing.PointsFor
		pa += team.Standing.PointsAgainst
		assert.Equal(t, s.Config.SeasonLength, team.Standing.Played)
	}
	assert.Equal(t, wins, losses)
	assert.Equal(t, 0, draws%2)
	assert.Equal(t, pf, pa)
	assert.True(t, InFinals(s))
}

func TestSimulateRound_InjuredUserSitsOut(t *testing.T) {
	e := newTestEngine(t)
	s := seasonState(t, e, 31)
	s.Profile.Injury = &career.Injury{Name: "Hamstring", WeeksRemaining: 2}
	s.Profile.SkillPoints = 3

	next, _, err := e.SimulateRound(s)
	require.NoError(t, err)

	fixtures := league.RoundFixtures(next.Fixtures, 1)
	require.Len(t, fixtures, len(next.Teams)/2)
	for _, f := range fixtures {
		if !f.Played || f.Result == nil {
			t.Fatalf("fixture %s left unplayed while the user was injured", f.ID)
		}
	}
	assert.Equal(t, s.Profile.CareerStats, next.Profile.CareerStats)
	assert.Equal(t, s.Profile.SeasonStats, next.Profile.SeasonStats)
	require.NotNil(t, next.Profile.Injury)
	assert.Equal(t, 1, next.Profile.Injury.WeeksRemaining)
	assert.Equal(t, 2, s.Profile.Injury.WeeksRemaining, "input state must not change")

	_, _, err = e.TrainAttribute(next, "KICKING")
	assert.True(t, crerr.Is(err, career.ErrValidation), "training is refused while injured")
}

func TestSeasonRollover(t *testing.T) {
	e := newTestEngine(t)
	s := seasonState(t, e, 314)
	startYear := s.Year
	startAge := s.Profile.Age

	var err error
	var all []Event
	for i := 0; i < 40 && s.Year == startYear; i++ {
		var events []Event
		s, events, err = e.SimulateRound(s)
		require.NoError(t, err)
		all = append(all, events...)
	}
	require.Equal(t, startYear+1, s.Year, "season never finished")

	assert.Equal(t, 1, s.Round)
	assert.Nil(t, s.Finals)
	assert.Len(t, s.Fixtures, 198)
	assert.Equal(t, startAge+1, s.Profile.Age)
	assert.Equal(t, career.Stats{}, s.Profile.SeasonStats)
	require.Len(t, s.Profile.SeasonHistory, 1)
	assert.Equal(t, startYear, s.Profile.SeasonHistory[0].Year)
	assert.Equal(t, 22+4, s.Week)
	assert.GreaterOrEqual(t, s.Profile.Contract.YearsLeft, 1)

	kinds := map[EventKind]int{}
	for _, ev := range all {
		kinds[ev.Kind]++
	}
	assert.Equal(t, 1, kinds[EventSeasonComplete])
	assert.Equal(t, 9, kinds[EventFinalsScheduled], "final eight has nine matches")
	require.NoError(t, s.Validate())
}

func TestTransferWindow(t *testing.T) {
	e := newTestEngine(t)
	s := seasonState(t, e, 21)
	original := s.Profile.Contract.ClubID

	var err error
	for i := 0; i < s.Config.SeasonLength/2; i++ {
		s, _, err = e.SimulateRound(s)
		require.NoError(t, err)
	}
	offers := ActiveOffers(s)
	require.NotEmpty(t, offers, "mid-season window opens after round 11")

	first := offers[0]
	assert.NotEqual(t, original, first.ClubID)
	s, events, err := e.AcceptTransfer(s, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ClubID, s.Profile.Contract.ClubID)
	assert.Empty(t, s.Profile.TransferOffers)
	assert.Equal(t, EventContractSigned, events[0].Kind)

	_, _, err = e.AcceptTransfer(s, first.ID)
	assert.True(t, crerr.Is(err, career.ErrNotFound))
}

func TestClaimReward_SameDayIsNoop(t *testing.T) {
	e := newTestEngine(t)
	s := seasonState(t, e, 8)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	claimed, events, err := e.ClaimReward(s, now)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 1, claimed.Profile.DailyRewards.TotalLogins)
	assert.False(t, CanClaimReward(claimed, now))

	again, events, err := e.ClaimReward(claimed, now.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, claimed.Revision, again.Revision)
	assert.Equal(t, claimed.Profile.SkillPoints, again.Profile.SkillPoints)
}

func TestRetireAndReset(t *testing.T) {
	e := newTestEngine(t)
	s := seasonState(t, e, 17)

	retired, _, err := e.RetirePlayer(s)
	require.NoError(t, err)
	assert.Equal(t, PhaseRetired, retired.Phase)
	assert.Nil(t, retired.Profile)
	require.Len(t, retired.HallOfFame, 1)
	assert.Equal(t, "Casey Rookie", retired.HallOfFame[0].Name)

	_, _, err = e.SimulateRound(retired)
	assert.True(t, crerr.Is(err, career.ErrValidation))
	_, _, err = e.StartNewCareer(retired, rookieInput())
	assert.True(t, crerr.Is(err, career.ErrValidation), "reset comes first")

	empty, _, err := e.ResetGame(retired)
	require.NoError(t, err)
	assert.Equal(t, PhaseEmpty, empty.Phase)
	assert.Len(t, empty.HallOfFame, 1)

	next, _, err := e.StartNewCareer(empty, rookieInput())
	require.NoError(t, err)
	assert.Equal(t, PhaseDraft, next.Phase)
	assert.Len(t, next.HallOfFame, 1)
}
