package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/riskibarqy/footy-career/internal/domain/saveslot"
)

type SaveSlotRepository struct {
	mu    sync.RWMutex
	items map[string]saveslot.Slot
	now   func() time.Time
}

func NewSaveSlotRepository() *SaveSlotRepository {
	return &SaveSlotRepository{
		items: make(map[string]saveslot.Slot),
		now:   time.Now,
	}
}

func (r *SaveSlotRepository) Get(_ context.Context, id string) (saveslot.Slot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.items[id]
	if !ok {
		return saveslot.Slot{}, false, nil
	}
	slot.Data = slices.Clone(slot.Data)
	return slot, true, nil
}

func (r *SaveSlotRepository) Save(_ context.Context, slot saveslot.Slot, expectedVersion int64) (saveslot.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.items[slot.ID]
	switch {
	case !exists && expectedVersion != 0:
		return saveslot.Slot{}, saveslot.ErrVersionConflict
	case exists && current.Version != expectedVersion:
		return saveslot.Slot{}, saveslot.ErrVersionConflict
	}

	now := r.now().UTC()
	slot.Data = slices.Clone(slot.Data)
	slot.Version = expectedVersion + 1
	slot.UpdatedAt = now
	if exists {
		slot.CreatedAt = current.CreatedAt
	} else {
		slot.CreatedAt = now
	}
	r.items[slot.ID] = slot

	out := slot
	out.Data = slices.Clone(slot.Data)
	return out, nil
}

func (r *SaveSlotRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *SaveSlotRepository) List(_ context.Context) ([]saveslot.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]saveslot.Slot, 0, len(r.items))
	for _, slot := range r.items {
		out = append(out, slot.Summary())
	}
	slices.SortFunc(out, func(a, b saveslot.Slot) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

type HallOfFameRepository struct {
	mu      sync.RWMutex
	records []saveslot.HallOfFameRecord
}

func NewHallOfFameRepository() *HallOfFameRepository {
	return &HallOfFameRepository{}
}

func (r *HallOfFameRepository) Record(_ context.Context, record saveslot.HallOfFameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	r.records = append(r.records, record)
	return nil
}

// Top ranks retired careers by games played, then goals.
func (r *HallOfFameRepository) Top(_ context.Context, limit int) ([]saveslot.HallOfFameRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := slices.Clone(r.records)
	slices.SortStableFunc(out, func(a, b saveslot.HallOfFameRecord) int {
		if c := cmp.Compare(b.Matches, a.Matches); c != 0 {
			return c
		}
		return cmp.Compare(b.Goals, a.Goals)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
