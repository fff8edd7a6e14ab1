package market

import (
	"fmt"
	"math"
	"slices"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/domain/league"
	"github.com/riskibarqy/footy-career/internal/platform/random"
)

const (
	DraftRounds    = 2
	CPUProspects   = 49
	UserProspectID = "prospect-user"
)

type Prospect struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Age         int                `json:"age"`
	State       string             `json:"state"`
	Position    career.Position    `json:"position"`
	SubPosition career.SubPosition `json:"sub_position"`
	Rating      int                `json:"rating"`
	Potential   int                `json:"potential"`
	DraftRank   int                `json:"draft_rank"`
	Bio         string             `json:"bio"`
	IsUser      bool               `json:"is_user"`
}

// Pick is one slot in the draft order. An empty ProspectID means the pick is still to be made.
type Pick struct {
	Round      int    `json:"round"`
	PickNumber int    `json:"pick_number"`
	TeamID     string `json:"team_id"`
	TeamName   string `json:"team_name"`
	ProspectID string `json:"prospect_id"`
}

type DraftClass struct {
	Year      int        `json:"year"`
	Prospects []Prospect `json:"prospects"`
	Picks     []Pick     `json:"picks"`
	Completed bool       `json:"completed"`
}

var (
	states = []string{"VIC", "SA", "WA", "NSW", "QLD", "TAS", "NT", "ACT"}
	traits = []string{
		"a booming left boot", "clean hands below the knees", "elite repeat speed",
		"fearless overhead marking", "a relentless tackling pressure game", "composure under pressure",
		"a huge tank", "goal sense inside fifty",
	}
)

// BuildDraftClass creates the prospect pool, including the user, and the pick order.
// order lists the clubs from first pick to last.
func BuildDraftClass(year int, order []league.Team, user career.Profile, attributeCap int, rng random.Source) DraftClass {
	prospects := make([]Prospect, 0, CPUProspects+1)
	for i := 0; i < CPUProspects; i++ {
		pos := career.AllPositions[rng.Intn(len(career.AllPositions))]
		subs := career.SubPositions[pos]
		rating := rng.Range(22, 55)
		name := league.RandomName(rng)
		state := states[rng.Intn(len(states))]
		prospects = append(prospects, Prospect{
			ID:          fmt.Sprintf("prospect-%02d", i+1),
			Name:        name,
			Age:         rng.Range(17, 19),
			State:       state,
			Position:    pos,
			SubPosition: subs[rng.Intn(len(subs))],
			Rating:      rating,
			Potential:   career.Clamp(rating+rng.Range(10, 35), rating, attributeCap),
			Bio:         fmt.Sprintf("%s from %s with %s.", name, state, traits[rng.Intn(len(traits))]),
		})
	}
	prospects = append(prospects, Prospect{
		ID:          UserProspectID,
		Name:        user.Name,
		Age:         user.Age,
		State:       states[rng.Intn(len(states))],
		Position:    user.Position,
		SubPosition: user.SubPosition,
		Rating:      user.Overall(),
		Potential:   user.Potential,
		Bio:         fmt.Sprintf("%s, a %s prospect chasing a senior list spot.", user.Name, user.SubPosition),
		IsUser:      true,
	})

	rankDraftClass(prospects, rng)

	picks := make([]Pick, 0, len(order)*DraftRounds)
	for round := 1; round <= DraftRounds; round++ {
		for _, team := range order {
			picks = append(picks, Pick{
				Round:      round,
				PickNumber: len(picks) + 1,
				TeamID:     team.ID,
				TeamName:   team.Name,
			})
		}
	}

	return DraftClass{Year: year, Prospects: prospects, Picks: picks}
}

// rankDraftClass assigns phantom-draft rankings with scouting noise.
func rankDraftClass(prospects []Prospect, rng random.Source) {
	scores := make([]float64, len(prospects))
	order := make([]int, len(prospects))
	for i, p := range prospects {
		scores[i] = float64(p.Rating) + 0.3*float64(p.Potential) + rng.Normal(0, 6)
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case scores[a] > scores[b]:
			return -1
		case scores[a] < scores[b]:
			return 1
		default:
			return a - b
		}
	})
	for rank, idx := range order {
		prospects[idx].DraftRank = rank + 1
	}
}

func (d DraftClass) nextPick() (int, bool) {
	for i, p := range d.Picks {
		if p.ProspectID == "" {
			return i, true
		}
	}
	return 0, false
}

func (d DraftClass) Prospect(id string) (Prospect, bool) {
	for _, p := range d.Prospects {
		if p.ID == id {
			return p, true
		}
	}
	return Prospect{}, false
}

// UserPick returns the pick that selected the user, if any.
func (d DraftClass) UserPick() (Pick, bool) {
	for _, p := range d.Picks {
		if p.ProspectID == UserProspectID {
			return p, true
		}
	}
	return Pick{}, false
}

func (d DraftClass) drafted() map[string]struct{} {
	out := make(map[string]struct{}, len(d.Picks))
	for _, p := range d.Picks {
		if p.ProspectID != "" {
			out[p.ProspectID] = struct{}{}
		}
	}
	return out
}

// SimulatePick makes the next pick on behalf of the club on the clock.
func SimulatePick(d DraftClass, teams []league.Team, rng random.Source) (DraftClass, Pick, error) {
	if d.Completed {
		return d, Pick{}, crerr.Wrap(career.ErrValidation, "draft already completed")
	}
	idx, ok := d.nextPick()
	if !ok {
		return d, Pick{}, crerr.Wrap(career.ErrValidation, "no picks remaining")
	}

	pick := d.Picks[idx]
	need := career.PositionMidfielder
	if team, found := league.FindTeam(teams, pick.TeamID); found {
		need = team.WeakestLine()
	}

	taken := d.drafted()
	best, bestScore := -1, math.Inf(-1)
	for i, p := range d.Prospects {
		if _, gone := taken[p.ID]; gone {
			continue
		}
		score := float64(p.Rating) + 0.25*float64(p.Potential) + rng.Float64()*6
		if p.Position == need {
			score += 3
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return d, Pick{}, crerr.Wrap(career.ErrValidation, "no prospects remaining")
	}

	picks := slices.Clone(d.Picks)
	picks[idx].ProspectID = d.Prospects[best].ID
	d.Picks = picks
	return d, picks[idx], nil
}

// CompleteDraft makes every remaining pick and closes the draft.
func CompleteDraft(d DraftClass, teams []league.Team, rng random.Source) (DraftClass, []Pick, error) {
	if d.Completed {
		return d, nil, crerr.Wrap(career.ErrValidation, "draft already completed")
	}
	var made []Pick
	for {
		if _, ok := d.nextPick(); !ok {
			break
		}
		next, pick, err := SimulatePick(d, teams, rng)
		if err != nil {
			return d, nil, err
		}
		d = next
		made = append(made, pick)
	}
	d.Completed = true
	return d, made, nil
}

// Validate checks draft ordering invariants.
func (d DraftClass) Validate() error {
	seen := make(map[string]struct{}, len(d.Picks))
	open := false
	for i, p := range d.Picks {
		if p.PickNumber != i+1 {
			return crerr.Wrapf(career.ErrValidation, "pick %d out of order", p.PickNumber)
		}
		if p.ProspectID == "" {
			open = true
			continue
		}
		if open {
			return crerr.Wrapf(career.ErrValidation, "pick %d made before an earlier pick", p.PickNumber)
		}
		if _, dup := seen[p.ProspectID]; dup {
			return crerr.Wrapf(career.ErrValidation, "prospect %s drafted twice", p.ProspectID)
		}
		if _, ok := d.Prospect(p.ProspectID); !ok {
			return crerr.Wrapf(career.ErrValidation, "pick %d references unknown prospect", p.PickNumber)
		}
		seen[p.ProspectID] = struct{}{}
	}
	if d.Completed && open {
		return crerr.Wrap(career.ErrValidation, "completed draft has open picks")
	}
	return nil
}

// RookieContract is the list contract for a drafted player.
func RookieContract(pick Pick) career.Contract {
	salary := 1200 - 15*(pick.PickNumber-1)
	if salary < 600 {
		salary = 600
	}
	return career.Contract{
		ClubID:    pick.TeamID,
		ClubName:  pick.TeamName,
		Salary:    salary,
		Tier:      career.TierNational,
		Role:      career.RoleDepth,
		YearsLeft: 2,
	}
}

// UndraftedContract signs an overlooked player to a state-level top-up deal with the club holding pick one.
func UndraftedContract(d DraftClass) career.Contract {
	c := career.Contract{Salary: 400, Tier: career.TierState, Role: career.RoleDepth, YearsLeft: 1}
	if len(d.Picks) > 0 {
		c.ClubID = d.Picks[0].TeamID
		c.ClubName = d.Picks[0].TeamName
	}
	return c
}
