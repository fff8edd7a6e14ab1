package league

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/footy-career/internal/domain/career"
)

const byeID = ""

// GenerateSeasonFixtures builds the home-and-away draw with the circle method.
//
// Each round pairs every team once (teams sit out on a bye when the count is odd).
// Within a cycle of M-1 rounds every pair meets once, where M is the team count
// padded to even; odd cycles mirror home and away. A length that promises a full
// cycle (at least N-1) but stops short of M-1 is rejected.
func GenerateSeasonFixtures(teams []Team, seasonLength int) ([]Fixture, error) {
	if len(teams) < 2 {
		return nil, crerr.Wrapf(career.ErrConfiguration, "need at least two teams, got %d", len(teams))
	}
	if seasonLength < 1 {
		return nil, crerr.Wrapf(career.ErrConfiguration, "season length must be positive, got %d", seasonLength)
	}

	order := make([]string, 0, len(teams)+1)
	seen := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		if t.ID == "" {
			return nil, crerr.Wrap(career.ErrConfiguration, "team id is required")
		}
		if _, dup := seen[t.ID]; dup {
			return nil, crerr.Wrapf(career.ErrConfiguration, "duplicate team id %s", t.ID)
		}
		seen[t.ID] = struct{}{}
		order = append(order, t.ID)
	}
	if len(order)%2 == 1 {
		order = append(order, byeID)
	}
	if seasonLength >= len(teams)-1 && seasonLength < len(order)-1 {
		return nil, crerr.Wrapf(career.ErrConfiguration,
			"%d rounds cannot complete a round robin of %d teams with byes, need %d", seasonLength, len(teams), len(order)-1)
	}

	m := len(order)
	roundsPerCycle := m - 1
	fixtures := make([]Fixture, 0, seasonLength*m/2)
	for r := 0; r < seasonLength; r++ {
		cycle, rc := r/roundsPerCycle, r%roundsPerCycle
		for i := 0; i < m/2; i++ {
			a, b := order[i], order[m-1-i]
			if a == byeID || b == byeID {
				continue
			}

			homeA := i%2 == 0
			if i == 0 {
				homeA = rc%2 == 0
			}
			if cycle%2 == 1 {
				homeA = !homeA
			}

			if homeA {
				fixtures = append(fixtures, newFixture(r+1, StageRegular, a, b))
			} else {
				fixtures = append(fixtures, newFixture(r+1, StageRegular, b, a))
			}
		}

		last := order[m-1]
		copy(order[2:], order[1:m-1])
		order[1] = last
	}

	return fixtures, nil
}

// RoundFixtures returns the fixtures scheduled for round, in draw order.
func RoundFixtures(fixtures []Fixture, round int) []Fixture {
	var out []Fixture
	for _, f := range fixtures {
		if f.Round == round {
			out = append(out, f)
		}
	}
	return out
}

// RegularSeasonComplete reports whether every home-and-away fixture has been played.
func RegularSeasonComplete(fixtures []Fixture) bool {
	for _, f := range fixtures {
		if f.Stage == StageRegular && !f.Played {
			return false
		}
	}
	return true
}
