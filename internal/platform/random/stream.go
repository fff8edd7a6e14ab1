// Package random provides the seeded outcome stream used by the career engine.
//
// Every draw advances a single logical cursor, and the full generator state can
// be captured in a Snapshot and restored later, so a saved game resumes the exact
// sequence of outcomes it would have produced without the save/load round trip.
package random

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// seedStream separates the two PCG words derived from one seed.
const seedStream = 0x9e3779b97f4a7c15

// Source is the read side of the outcome stream consumed by simulation code.
type Source interface {
	Intn(n int) int
	Range(lo, hi int) int
	Float64() float64
	Chance(p float64) bool
	Normal(mean, stddev float64) float64
	Shuffle(n int, swap func(i, j int))
}

// Snapshot is the serializable position of a Stream.
type Snapshot struct {
	Seed   uint64 `json:"seed"`
	Cursor uint64 `json:"cursor"`
	State  []byte `json:"state"`
}

type Stream struct {
	seed   uint64
	cursor uint64
	pcg    *rand.PCG
	rng    *rand.Rand
}

var _ Source = (*Stream)(nil)

func New(seed uint64) *Stream {
	pcg := rand.NewPCG(seed, seed^seedStream)
	return &Stream{
		seed: seed,
		pcg:  pcg,
		rng:  rand.New(pcg),
	}
}

// Restore resumes a stream from a snapshot taken with Snapshot.
func Restore(s Snapshot) (*Stream, error) {
	stream := New(s.Seed)
	if len(s.State) == 0 {
		if s.Cursor != 0 {
			return nil, fmt.Errorf("snapshot at cursor %d has no generator state", s.Cursor)
		}
		return stream, nil
	}
	if err := stream.pcg.UnmarshalBinary(s.State); err != nil {
		return nil, fmt.Errorf("restore generator state: %w", err)
	}
	stream.cursor = s.Cursor
	return stream, nil
}

func (s *Stream) Snapshot() Snapshot {
	state, err := s.pcg.MarshalBinary()
	if err != nil {
		// PCG marshalling cannot fail; keep the seed so Restore still works at cursor zero.
		return Snapshot{Seed: s.seed}
	}
	return Snapshot{Seed: s.seed, Cursor: s.cursor, State: state}
}

func (s *Stream) Seed() uint64 { return s.seed }

func (s *Stream) Cursor() uint64 { return s.cursor }

// Intn returns a value in [0, n). Non-positive n yields 0 without consuming a draw.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.cursor++
	return s.rng.IntN(n)
}

// Range returns a value in [lo, hi] inclusive.
func (s *Stream) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Intn(hi-lo+1)
}

func (s *Stream) Float64() float64 {
	s.cursor++
	return s.rng.Float64()
}

// Chance reports whether an event with probability p happened.
func (s *Stream) Chance(p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return s.Float64() < p
}

func (s *Stream) Normal(mean, stddev float64) float64 {
	s.cursor++
	v := mean + s.rng.NormFloat64()*stddev
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return mean
	}
	return v
}

func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	if n <= 1 {
		return
	}
	s.cursor++
	s.rng.Shuffle(n, swap)
}

// Pick returns an index chosen proportionally to weights, or -1 when no weight is positive.
func Pick(src Source, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	target := src.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if target < w {
			return i
		}
		target -= w
	}
	return last
}
