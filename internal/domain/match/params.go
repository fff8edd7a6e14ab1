package match

// Params holds the tunable curves of the match model.
type Params struct {
	// HomeAdvantage is added to the home side's rating differential.
	HomeAdvantage float64
	EntriesMin    int
	EntriesMax    int

	// Probability an entry becomes a scoring shot: ShotBase + ShotSlope×diff, clamped.
	ShotBase  float64
	ShotSlope float64
	ShotMin   float64
	ShotMax   float64

	// Probability a scoring shot is a goal: GoalBase + GoalSlope×diff, clamped.
	GoalBase  float64
	GoalSlope float64
	GoalMin   float64
	GoalMax   float64

	// ExtraTimeEntries is the per-side entry count of each extra-time period in a drawn final.
	ExtraTimeEntries int
	ExtraTimePeriods int

	// WinnerVoteBonus is added to the performance score of players on the winning side.
	WinnerVoteBonus float64
}

func DefaultParams() Params {
	return Params{
		HomeAdvantage:    3,
		EntriesMin:       48,
		EntriesMax:       60,
		ShotBase:         0.5,
		ShotSlope:        0.012,
		ShotMin:          0.2,
		ShotMax:          0.8,
		GoalBase:         0.52,
		GoalSlope:        0.004,
		GoalMin:          0.35,
		GoalMax:          0.7,
		ExtraTimeEntries: 6,
		ExtraTimePeriods: 3,
		WinnerVoteBonus:  3,
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
