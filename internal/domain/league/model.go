package league

import (
	"fmt"
	"math"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/footy-career/internal/domain/career"
)

const (
	PointsForWin  = 4
	PointsForDraw = 2
	GoalValue     = 6
	BehindValue   = 1
)

// Team is a club in the simulated competition.
type Team struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	ShortName      string         `json:"short_name"`
	PrimaryColor   string         `json:"primary_color"`
	SecondaryColor string         `json:"secondary_color"`
	Stadium        string         `json:"stadium"`
	Standing       Standing       `json:"standing"`
	Roster         []RosterPlayer `json:"roster"`
}

// Standing holds ladder counters. Only ComputeLadder writes them.
type Standing struct {
	Played        int     `json:"played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Draws         int     `json:"draws"`
	PointsFor     int     `json:"points_for"`
	PointsAgainst int     `json:"points_against"`
	Percentage    float64 `json:"percentage"`
	Points        int     `json:"points"`
}

// RosterPlayer is a CPU-controlled list player.
type RosterPlayer struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Position   career.Position   `json:"position"`
	Attributes career.Attributes `json:"attributes"`
}

func (p RosterPlayer) Rating() int {
	return p.Attributes.Rating(p.Position)
}

// Strength is the mean roster rating.
func (t Team) Strength() float64 {
	if len(t.Roster) == 0 {
		return 0
	}
	total := 0
	for _, p := range t.Roster {
		total += p.Rating()
	}
	return float64(total) / float64(len(t.Roster))
}

// WeakestLine returns the position whose roster players rate lowest on average.
func (t Team) WeakestLine() career.Position {
	weakest := career.PositionMidfielder
	lowest := math.MaxFloat64
	for _, pos := range career.AllPositions {
		total, count := 0, 0
		for _, p := range t.Roster {
			if p.Position == pos {
				total += p.Rating()
				count++
			}
		}
		if count == 0 {
			return pos
		}
		if avg := float64(total) / float64(count); avg < lowest {
			lowest = avg
			weakest = pos
		}
	}
	return weakest
}

type Score struct {
	Goals   int `json:"goals"`
	Behinds int `json:"behinds"`
	Total   int `json:"total"`
}

func NewScore(goals, behinds int) Score {
	return Score{Goals: goals, Behinds: behinds, Total: goals*GoalValue + behinds*BehindValue}
}

func (s Score) String() string {
	return fmt.Sprintf("%d.%d (%d)", s.Goals, s.Behinds, s.Total)
}

type Result struct {
	Home       Score              `json:"home"`
	Away       Score              `json:"away"`
	WinnerID   string             `json:"winner_id"`
	ExtraTime  bool               `json:"extra_time"`
	Summary    string             `json:"summary"`
	Votes      []career.StatLine  `json:"votes"`
	UserLine   *career.StatLine   `json:"user_line,omitempty"`
	Milestones []career.Milestone `json:"milestones,omitempty"`
}

func (r Result) IsDraw() bool {
	return r.WinnerID == ""
}

// Stage marks a fixture as home-and-away or as a named finals match.
type Stage string

const StageRegular Stage = ""

type Fixture struct {
	ID     string  `json:"id"`
	Round  int     `json:"round"`
	Stage  Stage   `json:"stage"`
	HomeID string  `json:"home_id"`
	AwayID string  `json:"away_id"`
	Played bool    `json:"played"`
	Result *Result `json:"result,omitempty"`
}

func newFixture(round int, stage Stage, homeID, awayID string) Fixture {
	prefix := fmt.Sprintf("r%02d", round)
	if stage != StageRegular {
		prefix = string(stage)
	}
	return Fixture{
		ID:     fmt.Sprintf("%s-%s-%s", prefix, homeID, awayID),
		Round:  round,
		Stage:  stage,
		HomeID: homeID,
		AwayID: awayID,
	}
}

func (f Fixture) Involves(teamID string) bool {
	return f.HomeID == teamID || f.AwayID == teamID
}

func (f Fixture) IsFinal() bool {
	return f.Stage != StageRegular
}

// Loser returns the losing team id, or "" when unplayed or drawn.
func (f Fixture) Loser() string {
	if !f.Played || f.Result == nil || f.Result.IsDraw() {
		return ""
	}
	if f.Result.WinnerID == f.HomeID {
		return f.AwayID
	}
	return f.HomeID
}

// Record stores the result. A fixture can only be recorded once.
func (f *Fixture) Record(result Result) error {
	if f.Played {
		return crerr.Wrapf(career.ErrValidation, "fixture %s already played", f.ID)
	}
	if result.WinnerID != "" && !f.Involves(result.WinnerID) {
		return crerr.Wrapf(career.ErrValidation, "winner %s did not play fixture %s", result.WinnerID, f.ID)
	}
	f.Played = true
	f.Result = &result
	return nil
}

func FindTeam(teams []Team, id string) (Team, bool) {
	for _, t := range teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}
