// Package match resolves a single fixture into a score, player stat lines and votes.
package match

import (
	"fmt"
	"math"
	"slices"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/domain/league"
	"github.com/riskibarqy/footy-career/internal/platform/random"
)

// UserEntry puts the user's athlete into one side's lineup.
type UserEntry struct {
	TeamID  string
	Profile career.Profile
	// SkillBonus is added to the user's rating, one point per available master skill.
	SkillBonus int
}

type Input struct {
	Home  league.Team
	Away  league.Team
	User  *UserEntry
	Final bool
}

// Outcome is the full match output. Result is what gets recorded on the fixture.
type Outcome struct {
	Result   league.Result
	Lines    []career.StatLine
	UserLine *career.StatLine
}

type participant struct {
	id     string
	name   string
	teamID string
	pos    career.Position
	attrs  career.Attributes
	rating float64
	form   float64
}

// Simulate plays one match. All randomness comes from rng, in a fixed order.
func Simulate(in Input, rng random.Source, p Params) Outcome {
	home := lineup(in.Home, in.User)
	away := lineup(in.Away, in.User)

	diff := strength(home) - strength(away) + p.HomeAdvantage
	homeGoals, homeBehinds := scoringShots(rng, rng.Range(p.EntriesMin, p.EntriesMax), diff, p)
	awayGoals, awayBehinds := scoringShots(rng, rng.Range(p.EntriesMin, p.EntriesMax), -diff, p)

	extraTime := false
	if in.Final {
		for period := 0; period < p.ExtraTimePeriods && homeGoals*6+homeBehinds == awayGoals*6+awayBehinds; period++ {
			extraTime = true
			g, b := scoringShots(rng, p.ExtraTimeEntries, diff, p)
			homeGoals, homeBehinds = homeGoals+g, homeBehinds+b
			g, b = scoringShots(rng, p.ExtraTimeEntries, -diff, p)
			awayGoals, awayBehinds = awayGoals+g, awayBehinds+b
		}
		if homeGoals*6+homeBehinds == awayGoals*6+awayBehinds {
			// still level after extra time: next score wins, awarded to the side with the edge
			if diff >= 0 {
				homeBehinds++
			} else {
				awayBehinds++
			}
		}
	}

	homeScore := league.NewScore(homeGoals, homeBehinds)
	awayScore := league.NewScore(awayGoals, awayBehinds)
	winnerID := ""
	switch {
	case homeScore.Total > awayScore.Total:
		winnerID = in.Home.ID
	case awayScore.Total > homeScore.Total:
		winnerID = in.Away.ID
	}

	homeLines := statLines(rng, home, homeGoals, homeBehinds)
	awayLines := statLines(rng, away, awayGoals, awayBehinds)
	lines := append(homeLines, awayLines...)
	awardVotes(lines, winnerID, p.WinnerVoteBonus)

	out := Outcome{
		Result: league.Result{
			Home:      homeScore,
			Away:      awayScore,
			WinnerID:  winnerID,
			ExtraTime: extraTime,
			Summary:   summary(in.Home, in.Away, homeScore, awayScore, extraTime),
			Votes:     votedLines(lines),
		},
		Lines: lines,
	}
	for i := range lines {
		if lines[i].PlayerID == career.UserPlayerID {
			line := lines[i]
			out.UserLine = &line
			out.Result.UserLine = &line
		}
	}
	return out
}

// lineup returns the players taking the field. The user replaces the lowest-rated list player.
func lineup(team league.Team, user *UserEntry) []participant {
	players := make([]participant, 0, len(team.Roster)+1)
	for _, rp := range team.Roster {
		players = append(players, participant{
			id:     rp.ID,
			name:   rp.Name,
			teamID: team.ID,
			pos:    rp.Position,
			attrs:  rp.Attributes,
			rating: float64(rp.Rating()),
			form:   1,
		})
	}
	if user == nil || user.TeamID != team.ID {
		return players
	}

	if len(players) > 0 {
		weakest := 0
		for i := range players {
			if players[i].rating < players[weakest].rating {
				weakest = i
			}
		}
		players = slices.Delete(players, weakest, weakest+1)
	}

	form := 0.95 + float64(user.Profile.Morale)/1000
	if user.Profile.Energy < 30 {
		form -= 0.05
	}
	players = append(players, participant{
		id:     career.UserPlayerID,
		name:   user.Profile.Name,
		teamID: team.ID,
		pos:    user.Profile.Position,
		attrs:  user.Profile.Attributes,
		rating: float64(user.Profile.Overall()+user.SkillBonus) * form,
		form:   form,
	})
	return players
}

func strength(players []participant) float64 {
	if len(players) == 0 {
		return 0
	}
	total := 0.0
	for _, pl := range players {
		total += pl.rating
	}
	return total / float64(len(players))
}

func scoringShots(rng random.Source, entries int, diff float64, p Params) (goals, behinds int) {
	shot := clampFloat(p.ShotBase+p.ShotSlope*diff, p.ShotMin, p.ShotMax)
	accuracy := clampFloat(p.GoalBase+p.GoalSlope*diff, p.GoalMin, p.GoalMax)
	for i := 0; i < entries; i++ {
		if !rng.Chance(shot) {
			continue
		}
		if rng.Chance(accuracy) {
			goals++
		} else {
			behinds++
		}
	}
	return goals, behinds
}

var (
	disposalFactor = map[career.Position]float64{
		career.PositionMidfielder: 1.3,
		career.PositionDefender:   1.0,
		career.PositionForward:    0.8,
		career.PositionRuck:       0.9,
	}
	tackleFactor = map[career.Position]float64{
		career.PositionMidfielder: 1.2,
		career.PositionDefender:   1.0,
		career.PositionForward:    0.9,
		career.PositionRuck:       1.0,
	}
	scoringFactor = map[career.Position]float64{
		career.PositionForward:    3.0,
		career.PositionMidfielder: 1.0,
		career.PositionRuck:       0.6,
		career.PositionDefender:   0.15,
	}
)

// statLines draws each player's numbers and splits the team's goals and behinds among them.
func statLines(rng random.Source, players []participant, goals, behinds int) []career.StatLine {
	lines := make([]career.StatLine, len(players))
	weights := make([]float64, len(players))
	for i, pl := range players {
		a := pl.attrs
		ballUse := float64(a.Kicking+a.Handballing+a.DecisionMaking) / 3
		disposalMean := (4 + 0.2*ballUse*disposalFactor[pl.pos] + 0.05*float64(a.Endurance-50)) * pl.form
		tackleMean := (0.5 + 0.05*float64(a.Tackling)*tackleFactor[pl.pos]) * pl.form

		lines[i] = career.StatLine{
			PlayerID:  pl.id,
			Name:      pl.name,
			TeamID:    pl.teamID,
			Disposals: nonNegative(rng.Normal(disposalMean, 4)),
			Tackles:   nonNegative(rng.Normal(tackleMean, 1.5)),
		}
		weights[i] = float64(a.Kicking+a.Marking) / 2 * scoringFactor[pl.pos]
	}

	for g := 0; g < goals; g++ {
		if idx := random.Pick(rng, weights); idx >= 0 {
			lines[idx].Goals++
		}
	}
	for b := 0; b < behinds; b++ {
		if idx := random.Pick(rng, weights); idx >= 0 {
			lines[idx].Behinds++
		}
	}
	return lines
}

func nonNegative(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Round(v))
}

func performance(line career.StatLine, winnerID string, winnerBonus float64) float64 {
	score := float64(line.Disposals) + 2*float64(line.Tackles) + 5*float64(line.Goals) + float64(line.Behinds)
	if winnerID != "" && line.TeamID == winnerID {
		score += winnerBonus
	}
	return score
}

// awardVotes gives 3, 2 and 1 votes to the best three performances.
// Ties fall to more goals, then more disposals, then lineup order.
func awardVotes(lines []career.StatLine, winnerID string, winnerBonus float64) {
	order := make([]int, len(lines))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		pa := performance(lines[a], winnerID, winnerBonus)
		pb := performance(lines[b], winnerID, winnerBonus)
		switch {
		case pa != pb:
			if pa > pb {
				return -1
			}
			return 1
		case lines[a].Goals != lines[b].Goals:
			return lines[b].Goals - lines[a].Goals
		case lines[a].Disposals != lines[b].Disposals:
			return lines[b].Disposals - lines[a].Disposals
		default:
			return a - b
		}
	})

	for rank, idx := range order {
		if rank >= 3 {
			break
		}
		lines[idx].Votes = 3 - rank
	}
}

func votedLines(lines []career.StatLine) []career.StatLine {
	var out []career.StatLine
	for votes := 3; votes >= 1; votes-- {
		for _, line := range lines {
			if line.Votes == votes {
				out = append(out, line)
			}
		}
	}
	return out
}

func summary(home, away league.Team, hs, as league.Score, extraTime bool) string {
	suffix := ""
	if extraTime {
		suffix = " after extra time"
	}
	switch {
	case hs.Total > as.Total:
		return fmt.Sprintf("%s %s def. %s %s%s", home.Name, hs, away.Name, as, suffix)
	case as.Total > hs.Total:
		return fmt.Sprintf("%s %s def. %s %s%s", away.Name, as, home.Name, hs, suffix)
	default:
		return fmt.Sprintf("%s %s drew with %s %s", home.Name, hs, away.Name, as)
	}
}
