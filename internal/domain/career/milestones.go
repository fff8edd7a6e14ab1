package career

import "fmt"

type MilestoneKind string

const (
	MilestoneGames     MilestoneKind = "GAMES"
	MilestoneGoals     MilestoneKind = "GOALS"
	MilestoneDisposals MilestoneKind = "DISPOSALS"
	MilestoneTackles   MilestoneKind = "TACKLES"
)

// Milestone is a one-shot career achievement. Once appended it is never changed.
type Milestone struct {
	ID        string        `json:"id"`
	Kind      MilestoneKind `json:"kind"`
	Threshold int           `json:"threshold"`
	Title     string        `json:"title"`
	Year      int           `json:"year"`
	Round     int           `json:"round"`
}

type milestoneTrack struct {
	kind       MilestoneKind
	noun       string
	thresholds []int
	value      func(Stats) int
}

var milestoneTracks = []milestoneTrack{
	{
		kind:       MilestoneGames,
		noun:       "games",
		thresholds: []int{1, 50, 100, 150, 200, 250, 300},
		value:      func(s Stats) int { return s.Matches },
	},
	{
		kind:       MilestoneGoals,
		noun:       "career goals",
		thresholds: []int{1, 50, 100, 200, 300, 500},
		value:      func(s Stats) int { return s.Goals },
	},
	{
		kind:       MilestoneDisposals,
		noun:       "disposals",
		thresholds: []int{1000, 2500, 5000},
		value:      func(s Stats) int { return s.Disposals },
	},
	{
		kind:       MilestoneTackles,
		noun:       "tackles",
		thresholds: []int{250, 500, 1000},
		value:      func(s Stats) int { return s.Tackles },
	},
}

// DetectMilestones returns one milestone for every threshold crossed between before and after.
// Thresholds already passed in before are never reported again.
func DetectMilestones(before, after Stats, year, round int) []Milestone {
	var out []Milestone
	for _, track := range milestoneTracks {
		prev, next := track.value(before), track.value(after)
		for _, threshold := range track.thresholds {
			if prev < threshold && next >= threshold {
				out = append(out, Milestone{
					ID:        fmt.Sprintf("%s-%d", track.kind, threshold),
					Kind:      track.kind,
					Threshold: threshold,
					Title:     milestoneTitle(track, threshold),
					Year:      year,
					Round:     round,
				})
			}
		}
	}
	return out
}

func milestoneTitle(track milestoneTrack, threshold int) string {
	if threshold == 1 {
		switch track.kind {
		case MilestoneGames:
			return "Debut game"
		case MilestoneGoals:
			return "First career goal"
		}
	}
	return fmt.Sprintf("%d %s", threshold, track.noun)
}
