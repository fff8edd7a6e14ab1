package progression

import (
	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/platform/random"
)

const (
	MoraleWin       = 4
	MoraleLoss      = -4
	MoraleMilestone = 5
)

type injuryKind struct {
	name     string
	minWeeks int
	maxWeeks int
}

var injuryTable = []injuryKind{
	{name: "Corked thigh", minWeeks: 1, maxWeeks: 1},
	{name: "Ankle sprain", minWeeks: 1, maxWeeks: 2},
	{name: "Concussion", minWeeks: 1, maxWeeks: 2},
	{name: "Hamstring strain", minWeeks: 2, maxWeeks: 4},
	{name: "Shoulder dislocation", minWeeks: 3, maxWeeks: 5},
	{name: "Syndesmosis", minWeeks: 4, maxWeeks: 6},
}

// InjuryChance grows as the player takes the field tired.
func InjuryChance(energy int) float64 {
	chance := 0.03
	switch {
	case energy < 30:
		chance += 0.07
	case energy < 60:
		chance += 0.03
	}
	return chance
}

// RollInjury decides whether a match left the player injured.
// An existing injury is never replaced.
func RollInjury(p career.Profile, rng random.Source) (career.Profile, bool) {
	if p.IsInjured() || !rng.Chance(InjuryChance(p.Energy)) {
		return p, false
	}
	kind := injuryTable[rng.Intn(len(injuryTable))]
	p.Injury = &career.Injury{
		Name:           kind.name,
		WeeksRemaining: rng.Range(kind.minWeeks, kind.maxWeeks),
	}
	return p, true
}

// AdvanceInjury counts one round off the current injury and clears it at zero.
func AdvanceInjury(p career.Profile) (career.Profile, bool) {
	if p.Injury == nil {
		return p, false
	}
	injury := *p.Injury
	injury.WeeksRemaining--
	if injury.WeeksRemaining <= 0 {
		p.Injury = nil
		return p, true
	}
	p.Injury = &injury
	return p, false
}

// HealInjury removes weeks from the current injury.
func HealInjury(p career.Profile, weeks int) career.Profile {
	if p.Injury == nil || weeks <= 0 {
		return p
	}
	injury := *p.Injury
	injury.WeeksRemaining -= weeks
	if injury.WeeksRemaining <= 0 {
		p.Injury = nil
		return p
	}
	p.Injury = &injury
	return p
}

func RestoreEnergy(p career.Profile) career.Profile {
	p.Energy = career.MaxEnergy
	return p
}

func AddEnergy(p career.Profile, delta int) career.Profile {
	p.Energy = career.Clamp(p.Energy+delta, 0, career.MaxEnergy)
	return p
}

func AdjustMorale(p career.Profile, delta int) career.Profile {
	p.Morale = career.Clamp(p.Morale+delta, 0, career.MaxMorale)
	return p
}

// BoostAttribute raises attr by delta without passing potential.
func BoostAttribute(p career.Profile, attr career.Attribute, delta int) career.Profile {
	current, ok := p.Attributes.Get(attr)
	if !ok {
		return p
	}
	p.Attributes.Set(attr, career.Clamp(current+delta, career.MinAttribute, p.Potential))
	return p
}
