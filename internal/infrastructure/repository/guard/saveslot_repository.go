// Package guard wraps save slot storage with a circuit breaker so a failing
// backend is rejected fast instead of holding every request for its timeout.
package guard

import (
	"context"
	"errors"

	"github.com/riskibarqy/footy-career/internal/domain/saveslot"
	"github.com/riskibarqy/footy-career/internal/platform/resilience"
)

// IsBackendFailure reports whether err says the backend is unhealthy.
// Version conflicts and caller cancellation do not.
func IsBackendFailure(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, saveslot.ErrVersionConflict),
		errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}

type SaveSlotRepository struct {
	next    saveslot.Repository
	breaker *resilience.Breaker
}

func NewSaveSlotRepository(next saveslot.Repository, breaker *resilience.Breaker) *SaveSlotRepository {
	return &SaveSlotRepository{next: next, breaker: breaker}
}

func (r *SaveSlotRepository) Get(ctx context.Context, id string) (slot saveslot.Slot, exists bool, err error) {
	err = r.breaker.Do(func() error {
		var inner error
		slot, exists, inner = r.next.Get(ctx, id)
		return inner
	})
	return slot, exists, err
}

func (r *SaveSlotRepository) Save(ctx context.Context, slot saveslot.Slot, expectedVersion int64) (stored saveslot.Slot, err error) {
	err = r.breaker.Do(func() error {
		var inner error
		stored, inner = r.next.Save(ctx, slot, expectedVersion)
		return inner
	})
	return stored, err
}

func (r *SaveSlotRepository) Delete(ctx context.Context, id string) error {
	return r.breaker.Do(func() error { return r.next.Delete(ctx, id) })
}

func (r *SaveSlotRepository) List(ctx context.Context) (slots []saveslot.Slot, err error) {
	err = r.breaker.Do(func() error {
		var inner error
		slots, inner = r.next.List(ctx)
		return inner
	})
	return slots, err
}

type HallOfFameRepository struct {
	next    saveslot.HallOfFameRepository
	breaker *resilience.Breaker
}

func NewHallOfFameRepository(next saveslot.HallOfFameRepository, breaker *resilience.Breaker) *HallOfFameRepository {
	return &HallOfFameRepository{next: next, breaker: breaker}
}

func (r *HallOfFameRepository) Record(ctx context.Context, record saveslot.HallOfFameRecord) error {
	return r.breaker.Do(func() error { return r.next.Record(ctx, record) })
}

func (r *HallOfFameRepository) Top(ctx context.Context, limit int) (records []saveslot.HallOfFameRecord, err error) {
	err = r.breaker.Do(func() error {
		var inner error
		records, inner = r.next.Top(ctx, limit)
		return inner
	})
	return records, err
}
