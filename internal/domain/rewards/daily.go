// Package rewards tracks the daily login streak and its rewards.
package rewards

import (
	"time"

	"github.com/riskibarqy/footy-career/internal/domain/career"
)

// Reward is what one streak day pays out.
type Reward struct {
	Day         int `json:"day"`
	SkillPoints int `json:"skill_points"`
	Energy      int `json:"energy"`
}

// Table is the fortnight cycle; day 7 and day 14 carry the bonuses.
var Table = []Reward{
	{Day: 1, SkillPoints: 1, Energy: 10},
	{Day: 2, SkillPoints: 1, Energy: 10},
	{Day: 3, SkillPoints: 1, Energy: 15},
	{Day: 4, SkillPoints: 1, Energy: 15},
	{Day: 5, SkillPoints: 2, Energy: 20},
	{Day: 6, SkillPoints: 2, Energy: 20},
	{Day: 7, SkillPoints: 5, Energy: 50},
	{Day: 8, SkillPoints: 1, Energy: 10},
	{Day: 9, SkillPoints: 1, Energy: 15},
	{Day: 10, SkillPoints: 2, Energy: 15},
	{Day: 11, SkillPoints: 2, Energy: 20},
	{Day: 12, SkillPoints: 2, Energy: 20},
	{Day: 13, SkillPoints: 3, Energy: 25},
	{Day: 14, SkillPoints: 8, Energy: 100},
}

// Result describes one claim attempt.
type Result struct {
	Claimed bool   `json:"claimed"`
	Streak  int    `json:"streak"`
	Reward  Reward `json:"reward"`
}

// RewardFor returns the table entry for a streak length.
func RewardFor(streak int) Reward {
	if streak < 1 {
		streak = 1
	}
	return Table[(streak-1)%len(Table)]
}

// civilDay truncates t to its calendar day in loc.
func civilDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from last to now, both read in now's location.
func daysBetween(last, now time.Time) int {
	loc := now.Location()
	return int(civilDay(now, loc).Sub(civilDay(last, loc)).Hours() / 24)
}

// CanClaim reports whether a claim at now would pay out.
func CanClaim(d career.DailyRewards, now time.Time) bool {
	if d.LastClaim.IsZero() {
		return true
	}
	return daysBetween(d.LastClaim, now) > 0
}

// Claim pays the day's reward. A second claim on the same day returns the profile unchanged.
func Claim(p career.Profile, now time.Time) (career.Profile, Result) {
	d := p.DailyRewards
	if !CanClaim(d, now) {
		return p, Result{Streak: d.Streak}
	}

	switch {
	case d.LastClaim.IsZero():
		d.Streak = 1
	case daysBetween(d.LastClaim, now) == 1:
		d.Streak++
	default:
		d.Streak = 1
	}
	d.LastClaim = now
	d.TotalLogins++

	reward := RewardFor(d.Streak)
	p.DailyRewards = d
	p.SkillPoints += reward.SkillPoints
	p.Energy = career.Clamp(p.Energy+reward.Energy, 0, career.MaxEnergy)
	return p, Result{Claimed: true, Streak: d.Streak, Reward: reward}
}
