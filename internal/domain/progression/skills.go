package progression

import "github.com/riskibarqy/footy-career/internal/domain/career"

// MasterSkill unlocks once its requirement holds. Availability is always recomputed.
type MasterSkill struct {
	ID          string
	Name        string
	Requirement string
	satisfied   func(career.Profile) bool
}

func attrAtLeast(attr career.Attribute, min, level int) func(career.Profile) bool {
	return func(p career.Profile) bool {
		v, _ := p.Attributes.Get(attr)
		return v >= min && p.Level >= level
	}
}

var MasterSkills = []MasterSkill{
	{ID: "torpedo", Name: "Torpedo Punt", Requirement: "Kicking 80, level 10", satisfied: attrAtLeast(career.AttributeKicking, 80, 10)},
	{ID: "silky-hands", Name: "Silky Hands", Requirement: "Handballing 80, level 8", satisfied: attrAtLeast(career.AttributeHandballing, 80, 8)},
	{ID: "contested-beast", Name: "Contested Beast", Requirement: "Marking 80, level 8", satisfied: attrAtLeast(career.AttributeMarking, 80, 8)},
	{ID: "hardball-get", Name: "Hardball Get", Requirement: "Tackling 80, level 8", satisfied: attrAtLeast(career.AttributeTackling, 80, 8)},
	{ID: "jet-pace", Name: "Jet Pace", Requirement: "Speed 85, level 6", satisfied: attrAtLeast(career.AttributeSpeed, 85, 6)},
	{ID: "engine", Name: "Engine", Requirement: "Endurance 85, level 6", satisfied: attrAtLeast(career.AttributeEndurance, 85, 6)},
	{ID: "footy-iq", Name: "Footy IQ", Requirement: "Decision making 85, level 12", satisfied: attrAtLeast(career.AttributeDecisionMaking, 85, 12)},
}

// AvailableSkills lists the master skills the profile currently qualifies for.
func AvailableSkills(p career.Profile) []MasterSkill {
	var out []MasterSkill
	for _, skill := range MasterSkills {
		if skill.satisfied(p) {
			out = append(out, skill)
		}
	}
	return out
}
