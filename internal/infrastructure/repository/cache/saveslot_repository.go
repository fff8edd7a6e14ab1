package cache

import (
	"context"
	"errors"
	"slices"

	"github.com/riskibarqy/footy-career/internal/domain/saveslot"
	basecache "github.com/riskibarqy/footy-career/internal/platform/cache"
)

const slotListKey = "saveslot:list"

func slotKey(id string) string {
	return "saveslot:id:" + id
}

// SaveSlotRepository caches reads in front of another repository and writes through.
type SaveSlotRepository struct {
	next  saveslot.Repository
	cache *basecache.Store
}

func NewSaveSlotRepository(next saveslot.Repository, cache *basecache.Store) *SaveSlotRepository {
	return &SaveSlotRepository{next: next, cache: cache}
}

type cachedSlot struct {
	value  saveslot.Slot
	exists bool
}

func (r *SaveSlotRepository) Get(ctx context.Context, id string) (saveslot.Slot, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, slotKey(id), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedSlot{value: item, exists: exists}, nil
	})
	if err != nil {
		return saveslot.Slot{}, false, err
	}

	cached, _ := v.(cachedSlot)
	slot := cached.value
	slot.Data = slices.Clone(slot.Data)
	return slot, cached.exists, nil
}

func (r *SaveSlotRepository) Save(ctx context.Context, slot saveslot.Slot, expectedVersion int64) (saveslot.Slot, error) {
	stored, err := r.next.Save(ctx, slot, expectedVersion)
	r.cache.Delete(ctx, slotListKey)
	if err != nil {
		if errors.Is(err, saveslot.ErrVersionConflict) {
			r.cache.Delete(ctx, slotKey(slot.ID))
		}
		return saveslot.Slot{}, err
	}

	cached := stored
	cached.Data = slices.Clone(stored.Data)
	r.cache.Set(ctx, slotKey(stored.ID), cachedSlot{value: cached, exists: true})
	return stored, nil
}

func (r *SaveSlotRepository) Delete(ctx context.Context, id string) error {
	err := r.next.Delete(ctx, id)
	r.cache.Delete(ctx, slotKey(id))
	r.cache.Delete(ctx, slotListKey)
	return err
}

func (r *SaveSlotRepository) List(ctx context.Context) ([]saveslot.Slot, error) {
	v, err := r.cache.GetOrLoad(ctx, slotListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]saveslot.Slot)
	return slices.Clone(items), nil
}
