package engine

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/domain/league"
	"github.com/riskibarqy/footy-career/internal/domain/market"
	"github.com/riskibarqy/footy-career/internal/domain/match"
	"github.com/riskibarqy/footy-career/internal/domain/media"
	"github.com/riskibarqy/footy-career/internal/domain/progression"
)

// CoinsPerVote is the match-day bonus for each Brownlow vote polled.
const CoinsPerVote = 10

// SimulateRound plays every unplayed fixture of the current round and advances the calendar.
// After the grand final it closes the season and schedules the next one.
func (e *Engine) SimulateRound(s State) (State, []Event, error) {
	return e.apply(s, seasonPhase, func(t *txn) error {
		if err := t.ensureFinalsWeek(); err != nil {
			return err
		}

		round := t.state.Round
		cfg := t.state.Config
		wasInjured := t.profile().IsInjured()
		finals := round > cfg.SeasonLength

		played := 0
		for i := range t.state.Fixtures {
			f := &t.state.Fixtures[i]
			if f.Round != round || f.Played {
				continue
			}
			if err := e.playFixture(t, f); err != nil {
				return err
			}
			played++
		}
		if played == 0 {
			return crerr.Wrapf(career.ErrValidation, "round %d has no fixtures to play", round)
		}

		p := t.profile()
		if !finals {
			p.Wallet += p.Contract.Salary / cfg.SeasonLength
		}
		if wasInjured {
			var recovered bool
			*p, recovered = progression.AdvanceInjury(*p)
			if recovered {
				t.events.add(EventRecovered, "", "%s is cleared to play", p.Name)
			}
		}

		t.refreshStandings()
		if !finals && round == cfg.SeasonLength/2 {
			t.openTransferWindow("Mid-season")
		}

		t.state.Week++
		t.state.Round++
		t.pruneOffers()

		if premier, ok := t.grandFinalWinner(); ok {
			return t.closeSeason(premier)
		}
		if finals || round == cfg.SeasonLength {
			if t.state.Finals == nil || t.state.Finals.Eliminated(t.state.UserTeamID(), t.state.Fixtures) {
				t.noteElimination()
			}
		}

		*p = progression.RestoreEnergy(*p)
		return nil
	})
}

// ensureFinalsWeek seeds the bracket once the home-and-away season is done and
// schedules the current finals week if its fixtures do not exist yet.
func (t *txn) ensureFinalsWeek() error {
	cfg := t.state.Config
	if t.state.Round <= cfg.SeasonLength {
		return nil
	}
	if t.state.Finals == nil {
		if !league.RegularSeasonComplete(t.state.Fixtures) {
			return crerr.Wrap(career.ErrValidation, "home-and-away season is incomplete")
		}
		ladder := league.ComputeLadder(t.state.Teams, t.state.Fixtures)
		bracket, err := league.NewFinalsBracket(ladder, cfg.FinalsSize)
		if err != nil {
			return err
		}
		t.state.Finals = &bracket
	}
	if len(league.RoundFixtures(t.state.Fixtures, t.state.Round)) > 0 {
		return nil
	}

	week := t.state.Round - cfg.SeasonLength
	scheduled, err := t.state.Finals.ScheduleWeek(week, t.state.Round, t.state.Fixtures)
	if err != nil {
		return err
	}
	t.state.Fixtures = append(t.state.Fixtures, scheduled...)
	for _, f := range scheduled {
		home, _ := league.FindTeam(t.state.Teams, f.HomeID)
		away, _ := league.FindTeam(t.state.Teams, f.AwayID)
		t.events.add(EventFinalsScheduled, f.ID, "%s: %s v %s", f.Stage, home.Name, away.Name)
	}
	return nil
}

func (e *Engine) playFixture(t *txn, f *league.Fixture) error {
	home, ok := league.FindTeam(t.state.Teams, f.HomeID)
	if !ok {
		return crerr.Wrapf(career.ErrValidation, "fixture %s: unknown team %s", f.ID, f.HomeID)
	}
	away, ok := league.FindTeam(t.state.Teams, f.AwayID)
	if !ok {
		return crerr.Wrapf(career.ErrValidation, "fixture %s: unknown team %s", f.ID, f.AwayID)
	}

	p := t.profile()
	in := match.Input{Home: home, Away: away, Final: f.IsFinal()}
	userTeam := t.state.UserTeamID()
	if f.Involves(userTeam) && !p.IsInjured() {
		in.User = &match.UserEntry{
			TeamID:     userTeam,
			Profile:    *p,
			SkillBonus: len(progression.AvailableSkills(*p)),
		}
	}

	out := match.Simulate(in, t.rng, e.params)
	if t.state.VoteTally == nil {
		t.state.VoteTally = map[string]int{}
	}
	for _, line := range out.Result.Votes {
		t.state.VoteTally[line.PlayerID] += line.Votes
	}

	if out.UserLine != nil {
		opponent := home
		if userTeam == home.ID {
			opponent = away
		}
		out.Result.Milestones = t.applyUserMatch(*out.UserLine, out.Result, f, opponent.Name)
	}
	if err := f.Record(out.Result); err != nil {
		return err
	}

	if f.Involves(userTeam) {
		t.events.add(EventMatchResult, f.ID, "%s", out.Result.Summary)
	}
	return nil
}

// applyUserMatch folds the user's stat line into the profile and returns new milestones.
func (t *txn) applyUserMatch(line career.StatLine, result league.Result, f *league.Fixture, opponent string) []career.Milestone {
	p := t.profile()
	won := result.WinnerID == p.Contract.ClubID

	before := p.CareerStats
	p.CareerStats.AddLine(line)
	p.SeasonStats.AddLine(line)
	milestones := career.DetectMilestones(before, p.CareerStats, t.state.Year, f.Round)
	p.Milestones = append(p.Milestones, milestones...)
	for _, m := range milestones {
		t.events.add(EventMilestone, m.ID, "Milestone: %s", m.Title)
	}

	var levels int
	*p, levels = progression.AddXP(*p, progression.MatchXP(line, won))
	if levels > 0 {
		t.events.add(EventLevelUp, "", "Level %d reached (+%d skill points)", p.Level, levels*progression.SkillPointsPerLevel)
	}
	p.Wallet += CoinsPerVote * line.Votes

	switch {
	case won:
		*p = progression.AdjustMorale(*p, progression.MoraleWin)
	case !result.IsDraw():
		*p = progression.AdjustMorale(*p, progression.MoraleLoss)
	}
	*p = progression.AdjustMorale(*p, progression.MoraleMilestone*len(milestones))

	var injured bool
	*p, injured = progression.RollInjury(*p, t.rng)
	if injured {
		t.events.add(EventInjury, "", "%s suffers a %s, out for %d weeks", p.Name, p.Injury.Name, p.Injury.WeeksRemaining)
	}

	updated, ev, fanMilestones := media.MatchExposure(*p, media.MatchContext{
		Line:      line,
		Won:       won,
		Final:     f.IsFinal(),
		Milestone: len(milestones) > 0,
		Opponent:  opponent,
		Year:      t.state.Year,
		Round:     f.Round,
		EventID:   fmt.Sprintf("media-%d", t.state.Seq.Media),
	}, t.rng)
	*p = updated
	if ev != nil {
		t.state.Seq.Media++
		t.events.add(EventMediaEvent, ev.ID, "%s", ev.Headline)
	}
	t.fanMilestones(fanMilestones)
	return milestones
}

func (t *txn) fanMilestones(unlocked []int) {
	for _, n := range unlocked {
		t.events.add(EventFanMilestone, "", "%d fans are now following your career", n)
	}
}

// refreshStandings writes the recomputed ladder back without reordering the teams.
func (t *txn) refreshStandings() {
	ladder := league.ComputeLadder(t.state.Teams, t.state.Fixtures)
	byID := make(map[string]league.Standing, len(ladder))
	for _, team := range ladder {
		byID[team.ID] = team.Standing
	}
	for i := range t.state.Teams {
		t.state.Teams[i].Standing = byID[t.state.Teams[i].ID]
	}
}

func (t *txn) openTransferWindow(label string) {
	p := t.profile()
	offers, next := market.GenerateOffers(market.OfferWindow{
		Profile:      *p,
		Ladder:       league.ComputeLadder(t.state.Teams, t.state.Fixtures),
		Week:         t.state.Week,
		ExpiryRounds: t.state.Config.OfferExpiryRounds,
		NextSeq:      t.state.Seq.Offer,
		Label:        label,
	}, t.rng)
	t.state.Seq.Offer = next
	p.TransferOffers = append(p.TransferOffers, offers...)
	for _, o := range offers {
		t.events.add(EventOfferReceived, o.ID, "%s offer %d coins a season for %d years as a %s", o.ClubName, o.Salary, o.ContractLength, o.Role)
	}
}

func (t *txn) pruneOffers() {
	p := t.profile()
	kept := market.PruneOffers(p.TransferOffers, t.state.Week)
	if len(kept) == len(p.TransferOffers) {
		return
	}
	live := make(map[string]struct{}, len(kept))
	for _, o := range kept {
		live[o.ID] = struct{}{}
	}
	for _, o := range p.TransferOffers {
		if _, ok := live[o.ID]; !ok {
			t.events.add(EventOfferExpired, o.ID, "%s offer has lapsed", o.ClubName)
		}
	}
	p.TransferOffers = kept
}

func (t *txn) grandFinalWinner() (string, bool) {
	if t.state.Finals == nil {
		return "", false
	}
	return t.state.Finals.Premier(t.state.Fixtures)
}

// noteElimination emits one notice in the round the user's club drops out of the finals race.
func (t *txn) noteElimination() {
	club := t.state.UserTeamID()
	round := t.state.Round - 1
	if t.state.Finals == nil {
		if round == t.state.Config.SeasonLength {
			ladder := league.ComputeLadder(t.state.Teams, t.state.Fixtures)
			if league.LadderPosition(ladder, club) > t.state.Config.FinalsSize {
				t.events.add(EventEliminated, club, "Season over: %s miss the finals", t.profile().Contract.ClubName)
			}
		}
		return
	}
	for _, f := range league.RoundFixtures(t.state.Fixtures, round) {
		if f.Loser() == club {
			t.events.add(EventEliminated, club, "%s are knocked out in the %s", t.profile().Contract.ClubName, f.Stage)
			return
		}
	}
}

// closeSeason hands out awards, archives the season and rolls the calendar into the next year.
func (t *txn) closeSeason(premier string) error {
	p := t.profile()
	club := p.Contract.ClubID
	ladder := league.ComputeLadder(t.state.Teams, t.state.Fixtures)

	brownlow := t.userWinsBrownlow()
	if brownlow {
		p.CareerStats.Awards++
		p.SeasonStats.Awards++
		t.events.add(EventBrownlow, "", "%s wins the Brownlow Medal with %d votes", p.Name, t.state.VoteTally[career.UserPlayerID])
	}
	premiership := premier == club
	if premiership {
		p.CareerStats.Premierships++
		p.SeasonStats.Premierships++
		t.events.add(EventPremiership, club, "Premiers! %s win the %d flag", p.Contract.ClubName, t.state.Year)
	}

	p.SeasonHistory = append(p.SeasonHistory, career.SeasonRecord{
		Year:           t.state.Year,
		ClubID:         club,
		ClubName:       p.Contract.ClubName,
		LadderPosition: league.LadderPosition(ladder, club),
		FinalsResult:   t.state.Finals.FinishLabel(club, t.state.Fixtures),
		Stats:          p.SeasonStats,
		Brownlow:       brownlow,
		Premiership:    premiership,
	})
	premierTeam, _ := league.FindTeam(t.state.Teams, premier)
	t.events.add(EventSeasonComplete, premier, "%d season complete, %s are premiers", t.state.Year, premierTeam.Name)

	t.openTransferWindow("End of season")

	if p.Contract.YearsLeft > 0 {
		p.Contract.YearsLeft--
	}
	if p.Contract.YearsLeft == 0 {
		p.Contract.YearsLeft = 1
		t.events.add(EventContractRenewed, club, "%s re-sign %s for another season", p.Contract.ClubName, p.Name)
	}
	p.Age++
	p.SeasonStats = career.Stats{}
	*p = progression.RestoreEnergy(*p)

	t.state.Year++
	return t.startSeason()
}

// userWinsBrownlow is true when the user polled votes and nobody polled more.
func (t *txn) userWinsBrownlow() bool {
	mine := t.state.VoteTally[career.UserPlayerID]
	if mine == 0 {
		return false
	}
	for id, votes := range t.state.VoteTally {
		if id != career.UserPlayerID && votes > mine {
			return false
		}
	}
	return true
}
