// Package saveslot describes where serialized careers live between intents.
package saveslot

import (
	"errors"
	"time"
)

// ErrVersionConflict means the slot changed since it was read.
var ErrVersionConflict = errors.New("save slot version conflict")

// Slot is one opaque save plus the metadata needed to list it without decoding.
// Version starts at 1 and increases on every successful save.
type Slot struct {
	ID         string
	Label      string
	Data       []byte
	Version    int64
	Phase      string
	PlayerName string
	Year       int
	Round      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Summary is a slot without its payload.
func (s Slot) Summary() Slot {
	s.Data = nil
	return s
}

// HallOfFameRecord is a retired career published to the shared leaderboard.
type HallOfFameRecord struct {
	SlotID      string
	Name        string
	Position    string
	RetiredYear int
	Seasons     int
	Matches     int
	Goals       int
	Awards      int
	Flags       int
	CreatedAt   time.Time
}
