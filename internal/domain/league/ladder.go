package league

import (
	"cmp"
	"slices"
)

// Percentage is points for divided by points against, times 100.
// With nothing conceded it is PF×100, or 0 when nothing has been scored either.
func Percentage(pointsFor, pointsAgainst int) float64 {
	if pointsAgainst == 0 {
		if pointsFor == 0 {
			return 0
		}
		return float64(pointsFor) * 100
	}
	return float64(pointsFor) / float64(pointsAgainst) * 100
}

// ComputeLadder rebuilds standings from played home-and-away fixtures and returns
// the teams in ladder order: points, percentage, points for, then name.
func ComputeLadder(teams []Team, fixtures []Fixture) []Team {
	index := make(map[string]int, len(teams))
	out := make([]Team, len(teams))
	for i, t := range teams {
		t.Standing = Standing{}
		out[i] = t
		index[t.ID] = i
	}

	for _, f := range fixtures {
		if !f.Played || f.Result == nil || f.Stage != StageRegular {
			continue
		}
		hi, hok := index[f.HomeID]
		ai, aok := index[f.AwayID]
		if !hok || !aok {
			continue
		}
		applyResult(&out[hi].Standing, f.Result.Home.Total, f.Result.Away.Total)
		applyResult(&out[ai].Standing, f.Result.Away.Total, f.Result.Home.Total)
	}

	for i := range out {
		s := &out[i].Standing
		s.Percentage = Percentage(s.PointsFor, s.PointsAgainst)
	}

	slices.SortStableFunc(out, compareLadder)
	return out
}

func applyResult(s *Standing, scored, conceded int) {
	s.Played++
	s.PointsFor += scored
	s.PointsAgainst += conceded
	switch {
	case scored > conceded:
		s.Wins++
		s.Points += PointsForWin
	case scored < conceded:
		s.Losses++
	default:
		s.Draws++
		s.Points += PointsForDraw
	}
}

func compareLadder(a, b Team) int {
	if c := cmp.Compare(b.Standing.Points, a.Standing.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Standing.Percentage, a.Standing.Percentage); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Standing.PointsFor, a.Standing.PointsFor); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// LadderPosition returns the 1-based position of teamID, or 0 when absent.
func LadderPosition(ladder []Team, teamID string) int {
	for i, t := range ladder {
		if t.ID == teamID {
			return i + 1
		}
	}
	return 0
}
