package league

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/footy-career/internal/domain/career"
)

type SlotKind string

const (
	SlotSeed   SlotKind = "SEED"
	SlotWinner SlotKind = "WINNER"
	SlotLoser  SlotKind = "LOSER"
)

// Slot says where a finals participant comes from.
type Slot struct {
	Kind  SlotKind
	Seed  int
	Match Stage
}

type FinalsMatch struct {
	Stage Stage
	Week  int
	Home  Slot
	Away  Slot
}

func seed(n int) Slot { return Slot{Kind: SlotSeed, Seed: n} }
func winnerOf(s Stage) Slot { return Slot{Kind: SlotWinner, Match: s} }
func loserOf(s Stage) Slot { return Slot{Kind: SlotLoser, Match: s} }

// finalFour is the Page-McIntyre system: the top two get a second chance.
var finalFour = []FinalsMatch{
	{Stage: "SF1", Week: 1, Home: seed(1), Away: seed(2)},
	{Stage: "SF2", Week: 1, Home: seed(3), Away: seed(4)},
	{Stage: "PF", Week: 2, Home: loserOf("SF1"), Away: winnerOf("SF2")},
	{Stage: "GF", Week: 3, Home: winnerOf("SF1"), Away: winnerOf("PF")},
}

// finalEight gives the top four a double chance through the qualifying finals.
var finalEight = []FinalsMatch{
	{Stage: "QF1", Week: 1, Home: seed(1), Away: seed(4)},
	{Stage: "QF2", Week: 1, Home: seed(2), Away: seed(3)},
	{Stage: "EF1", Week: 1, Home: seed(5), Away: seed(8)},
	{Stage: "EF2", Week: 1, Home: seed(6), Away: seed(7)},
	{Stage: "SF1", Week: 2, Home: loserOf("QF1"), Away: winnerOf("EF1")},
	{Stage: "SF2", Week: 2, Home: loserOf("QF2"), Away: winnerOf("EF2")},
	{Stage: "PF1", Week: 3, Home: winnerOf("QF1"), Away: winnerOf("SF2")},
	{Stage: "PF2", Week: 3, Home: winnerOf("QF2"), Away: winnerOf("SF1")},
	{Stage: "GF", Week: 4, Home: winnerOf("PF1"), Away: winnerOf("PF2")},
}

const StageGrandFinal Stage = "GF"

// FinalsBracket is the seeded finals series for one season.
type FinalsBracket struct {
	Size  int      `json:"size"`
	Seeds []string `json:"seeds"`
}

// NewFinalsBracket seeds the top size teams of the final ladder.
func NewFinalsBracket(ladder []Team, size int) (FinalsBracket, error) {
	if _, err := template(size); err != nil {
		return FinalsBracket{}, err
	}
	if size > len(ladder) {
		return FinalsBracket{}, crerr.Wrapf(career.ErrConfiguration, "finals size %d exceeds %d teams", size, len(ladder))
	}

	seeds := make([]string, 0, size)
	for _, t := range ladder[:size] {
		seeds = append(seeds, t.ID)
	}
	return FinalsBracket{Size: size, Seeds: seeds}, nil
}

func template(size int) ([]FinalsMatch, error) {
	switch size {
	case 4:
		return finalFour, nil
	case 8:
		return finalEight, nil
	default:
		return nil, crerr.Wrapf(career.ErrConfiguration, "unsupported finals size %d", size)
	}
}

// ValidFinalsSize reports whether a finals format exists for size.
func ValidFinalsSize(size int) bool {
	_, err := template(size)
	return err == nil
}

// Weeks is the number of finals rounds in the bracket.
func (b FinalsBracket) Weeks() int {
	matches, err := template(b.Size)
	if err != nil {
		return 0
	}
	return matches[len(matches)-1].Week
}

func (b FinalsBracket) Contains(teamID string) bool {
	for _, id := range b.Seeds {
		if id == teamID {
			return true
		}
	}
	return false
}

// ScheduleWeek resolves the matches of one finals week against results already played.
func (b FinalsBracket) ScheduleWeek(week, round int, fixtures []Fixture) ([]Fixture, error) {
	matches, err := template(b.Size)
	if err != nil {
		return nil, err
	}

	var out []Fixture
	for _, m := range matches {
		if m.Week != week {
			continue
		}
		home, err := b.resolve(m.Home, fixtures)
		if err != nil {
			return nil, err
		}
		away, err := b.resolve(m.Away, fixtures)
		if err != nil {
			return nil, err
		}
		out = append(out, newFixture(round, m.Stage, home, away))
	}
	if len(out) == 0 {
		return nil, crerr.Wrapf(career.ErrValidation, "finals week %d does not exist", week)
	}
	return out, nil
}

func (b FinalsBracket) resolve(slot Slot, fixtures []Fixture) (string, error) {
	if slot.Kind == SlotSeed {
		if slot.Seed < 1 || slot.Seed > len(b.Seeds) {
			return "", crerr.Wrapf(career.ErrValidation, "seed %d missing from bracket", slot.Seed)
		}
		return b.Seeds[slot.Seed-1], nil
	}

	f, ok := finalByStage(fixtures, slot.Match)
	if !ok || !f.Played || f.Result == nil || f.Result.IsDraw() {
		return "", crerr.Wrapf(career.ErrValidation, "final %s has not been decided", slot.Match)
	}
	if slot.Kind == SlotWinner {
		return f.Result.WinnerID, nil
	}
	return f.Loser(), nil
}

func finalByStage(fixtures []Fixture, stage Stage) (Fixture, bool) {
	for _, f := range fixtures {
		if f.Stage == stage {
			return f, true
		}
	}
	return Fixture{}, false
}

// Premier returns the grand final winner once it has been played.
func (b FinalsBracket) Premier(fixtures []Fixture) (string, bool) {
	f, ok := finalByStage(fixtures, StageGrandFinal)
	if !ok || !f.Played || f.Result == nil {
		return "", false
	}
	return f.Result.WinnerID, true
}

// Eliminated reports whether teamID can take no further part in the finals.
// Teams outside the bracket are always eliminated.
func (b FinalsBracket) Eliminated(teamID string, fixtures []Fixture) bool {
	if !b.Contains(teamID) {
		return true
	}
	matches, _ := template(b.Size)
	for _, f := range fixtures {
		if !f.IsFinal() || f.Loser() != teamID {
			continue
		}
		if !hasSecondChance(matches, f.Stage) {
			return true
		}
	}
	return false
}

func hasSecondChance(matches []FinalsMatch, stage Stage) bool {
	for _, m := range matches {
		if (m.Home.Kind == SlotLoser && m.Home.Match == stage) || (m.Away.Kind == SlotLoser && m.Away.Match == stage) {
			return true
		}
	}
	return false
}

// FinishLabel describes how far teamID went in the finals.
func (b FinalsBracket) FinishLabel(teamID string, fixtures []Fixture) string {
	if !b.Contains(teamID) {
		return "Missed finals"
	}
	last := Stage("")
	for _, f := range fixtures {
		if f.IsFinal() && f.Played && f.Involves(teamID) {
			last = f.Stage
		}
	}
	if premier, ok := b.Premier(fixtures); ok && premier == teamID {
		return "Premiers"
	}
	switch {
	case last == StageGrandFinal:
		return "Runners-up"
	case last == "":
		return "Finals"
	default:
		return "Eliminated in " + string(last)
	}
}
