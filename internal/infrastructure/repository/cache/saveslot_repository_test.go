package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/footy-career/internal/domain/saveslot"
	saveslotmock "github.com/riskibarqy/footy-career/internal/mocks/domain/saveslot"
	basecache "github.com/riskibarqy/footy-career/internal/platform/cache"
)

func TestSaveSlotRepository_GetIsCached(t *testing.T) {
	ctx := context.Background()
	next := saveslotmock.NewRepository(t)
	next.On("Get", mock.Anything, "slot-1").
		Return(saveslot.Slot{ID: "slot-1", Version: 3, Data: []byte("abc")}, true, nil).
		Once()

	repo := NewSaveSlotRepository(next, basecache.NewStore(time.Minute))
	for i := 0; i < 3; i++ {
		slot, ok, err := repo.Get(ctx, "slot-1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(3), slot.Version)
		slot.Data[0] = 'z'
	}

	slot, _, _ := repo.Get(ctx, "slot-1")
	assert.Equal(t, "abc", string(slot.Data), "callers must not share the cached payload")
}

func TestSaveSlotRepository_SaveWritesThrough(t *testing.T) {
	ctx := context.Background()
	next := saveslotmock.NewRepository(t)
	stored := saveslot.Slot{ID: "slot-1", Version: 2, Data: []byte("v2")}
	next.On("Save", mock.Anything, mock.AnythingOfType("saveslot.Slot"), int64(1)).Return(stored, nil).Once()

	repo := NewSaveSlotRepository(next, basecache.NewStore(time.Minute))
	out, err := repo.Save(ctx, saveslot.Slot{ID: "slot-1", Data: []byte("v2")}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Version)

	// Served from cache; the mock would fail on an unexpected Get.
	got, ok, err := repo.Get(ctx, "slot-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", string(got.Data))
}

func TestSaveSlotRepository_ConflictInvalidates(t *testing.T) {
	ctx := context.Background()
	next := saveslotmock.NewRepository(t)
	next.On("Get", mock.Anything, "slot-1").Return(saveslot.Slot{ID: "slot-1", Version: 1}, true, nil).Twice()
	next.On("Save", mock.Anything, mock.Anything, int64(1)).Return(saveslot.Slot{}, saveslot.ErrVersionConflict).Once()

	repo := NewSaveSlotRepository(next, basecache.NewStore(time.Minute))
	_, _, err := repo.Get(ctx, "slot-1")
	require.NoError(t, err)

	_, err = repo.Save(ctx, saveslot.Slot{ID: "slot-1"}, 1)
	assert.True(t, errors.Is(err, saveslot.ErrVersionConflict))

	_, _, err = repo.Get(ctx, "slot-1")
	require.NoError(t, err)
}
