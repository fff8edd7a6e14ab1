package progression

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/footy-career/internal/domain/career"
)

const (
	TrainingEnergyCost  = 10
	TrainingXP          = 15
	MaxLevel            = 50
	SkillPointsPerLevel = 3
)

// TrainAttribute spends one skill point and some energy to raise attr by one.
// It returns the XP gained.
func TrainAttribute(p career.Profile, attr career.Attribute) (career.Profile, int, error) {
	current, ok := p.Attributes.Get(attr)
	if !ok {
		return p, 0, crerr.Wrapf(career.ErrValidation, "unknown attribute %q", attr)
	}
	if p.IsInjured() {
		return p, 0, crerr.Wrapf(career.ErrValidation, "cannot train while injured (%s)", p.Injury.Name)
	}
	if p.SkillPoints < 1 {
		return p, 0, crerr.Wrap(career.ErrInsufficientResource, "no skill points available")
	}
	if p.Energy < TrainingEnergyCost {
		return p, 0, crerr.Wrapf(career.ErrInsufficientResource, "training needs %d energy, have %d", TrainingEnergyCost, p.Energy)
	}
	if current >= p.Potential {
		return p, 0, crerr.Wrapf(career.ErrCapReached, "%s is already at potential %d", attr, p.Potential)
	}

	p.Attributes.Set(attr, current+1)
	p.SkillPoints--
	p.Energy -= TrainingEnergyCost
	p, _ = AddXP(p, TrainingXP)
	return p, TrainingXP, nil
}

// XPForLevel is the total XP needed to reach level.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return 25 * level * (level - 1)
}

func LevelForXP(xp int) int {
	level := 1
	for level < MaxLevel && xp >= XPForLevel(level+1) {
		level++
	}
	return level
}

// AddXP credits xp and applies any level-ups, granting skill points for each level gained.
func AddXP(p career.Profile, xp int) (career.Profile, int) {
	if xp <= 0 {
		return p, 0
	}
	p.XP += xp
	next := LevelForXP(p.XP)
	gained := 0
	if next > p.Level {
		gained = next - p.Level
		p.Level = next
		p.SkillPoints += gained * SkillPointsPerLevel
	}
	return p, gained
}

// MatchXP is the experience earned from one match.
func MatchXP(line career.StatLine, won bool) int {
	xp := 30 + 10*line.Goals + 20*line.Votes
	if won {
		xp += 10
	}
	return xp
}
