package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/domain/saveslot"
	"github.com/riskibarqy/footy-career/internal/engine"
	"github.com/riskibarqy/footy-career/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/footy-career/internal/metrics"
	saveslotmock "github.com/riskibarqy/footy-career/internal/mocks/domain/saveslot"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
)

func testPlayer() engine.NewGameInput {
	return engine.NewGameInput{
		Name:        "Casey Rookie",
		Position:    career.PositionForward,
		SubPosition: career.SubPositionFullForward,
		Attributes: career.Attributes{
			Kicking: 40, Handballing: 30, Marking: 35, Tackling: 25,
			Speed: 30, Endurance: 30, DecisionMaking: 30,
		},
	}
}

func newTestCareerService(t *testing.T, slots saveslot.Repository, hof saveslot.HallOfFameRepository) *CareerService {
	t.Helper()
	eng, err := engine.New(engine.DefaultConfig())
	require.NoError(t, err)
	return NewCareerService(eng, slots, hof, nil, metrics.New(), logging.NewNop())
}

func createTestCareer(t *testing.T, svc *CareerService, slotID string) CareerView {
	t.Helper()
	seed := uint64(42)
	view, err := svc.CreateCareer(context.Background(), CreateCareerInput{SlotID: slotID, Seed: &seed, Player: testPlayer()})
	require.NoError(t, err)
	return view
}

func TestCareerService_CreateAndPlay(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestCareerService(t, memory.NewSaveSlotRepository(), memory.NewHallOfFameRepository())

	view := createTestCareer(t, svc, "slot-1")
	assert.Equal(t, int64(1), view.Version)
	assert.Equal(t, engine.PhaseDraft, view.Summary.Phase)
	assert.NotEmpty(t, view.Events)

	view, err := svc.CompleteDraft(ctx, "slot-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), view.Version)
	assert.Equal(t, engine.PhaseSeason, view.Summary.Phase)

	view, err = svc.SimulateRound(ctx, "slot-1")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Summary.Round)

	loaded, err := svc.GetCareer(ctx, "slot-1")
	require.NoError(t, err)
	assert.Equal(t, view.Version, loaded.Version)
	assert.Equal(t, view.State.Revision, loaded.State.Revision)
	assert.Empty(t, loaded.Events)

	items, err := svc.ListCareers(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Casey Rookie", items[0].PlayerName)
	assert.Equal(t, string(engine.PhaseSeason), items[0].Phase)
	assert.Nil(t, items[0].Data)
}

func TestCareerService_SlotLocksAreReleased(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestCareerService(t, memory.NewSaveSlotRepository(), nil)
	createTestCareer(t, svc, "slot-1")
	_, err := svc.CompleteDraft(ctx, "slot-1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SimulateRound(ctx, "slot-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := svc.GetCareer(ctx, "slot-1")
	require.NoError(t, err)
	assert.Equal(t, 5, view.Summary.Round, "rounds on one slot run one after another")

	require.NoError(t, svc.DeleteCareer(ctx, "slot-1"))
	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Empty(t, svc.locks)
}

func TestCareerService_GeneratesSlotID(t *testing.T) {
	t.Parallel()

	svc := newTestCareerService(t, memory.NewSaveSlotRepository(), nil)
	view := createTestCareer(t, svc, "")
	if view.SlotID == "" {
		t.Fatalf("expected generated slot id")
	}
}

func TestCareerService_CreateTwiceConflicts(t *testing.T) {
	t.Parallel()

	svc := newTestCareerService(t, memory.NewSaveSlotRepository(), nil)
	createTestCareer(t, svc, "slot-1")

	seed := uint64(1)
	_, err := svc.CreateCareer(context.Background(), CreateCareerInput{SlotID: "slot-1", Seed: &seed, Player: testPlayer()})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCareerService_EngineErrorsPassThrough(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestCareerService(t, memory.NewSaveSlotRepository(), nil)
	createTestCareer(t, svc, "slot-1")

	_, err := svc.SimulateRound(ctx, "slot-1")
	if !crerr.Is(err, career.ErrValidation) {
		t.Fatalf("expected validation error in draft phase, got %v", err)
	}

	view, err := svc.GetCareer(ctx, "slot-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.Version, "rejected intents must not save")
}

func TestCareerService_SameDayClaimDoesNotSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestCareerService(t, memory.NewSaveSlotRepository(), nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	createTestCareer(t, svc, "slot-1")

	first, err := svc.ClaimReward(ctx, "slot-1")
	require.NoError(t, err)
	second, err := svc.ClaimReward(ctx, "slot-1")
	require.NoError(t, err)

	assert.Equal(t, first.Version, second.Version)
	assert.Equal(t, first.State.Revision, second.State.Revision)
}

func TestCareerService_RetirePublishesHallOfFame(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	hof := memory.NewHallOfFameRepository()
	svc := newTestCareerService(t, memory.NewSaveSlotRepository(), hof)
	createTestCareer(t, svc, "slot-1")

	_, err := svc.CompleteDraft(ctx, "slot-1")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = svc.SimulateRound(ctx, "slot-1")
		require.NoError(t, err)
	}

	view, err := svc.RetirePlayer(ctx, "slot-1")
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseRetired, view.Summary.Phase)

	top, err := svc.HallOfFame(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "slot-1", top[0].SlotID)
	assert.Equal(t, "Casey Rookie", top[0].Name)
	assert.Equal(t, view.State.HallOfFame[0].CareerStats.Matches, top[0].Matches)
}

func TestCareerService_InvalidSlotID(t *testing.T) {
	t.Parallel()

	svc := newTestCareerService(t, memory.NewSaveSlotRepository(), nil)
	for _, slotID := range []string{"", "   ", "../x", "has space"} {
		if _, err := svc.GetCareer(context.Background(), slotID); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("slot %q: expected ErrInvalidInput, got %v", slotID, err)
		}
	}
}

func TestCareerService_MissingSlotUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	slots := saveslotmock.NewRepository(t)
	slots.On("Get", mock.Anything, "missing").Return(saveslot.Slot{}, false, nil).Once()

	svc := newTestCareerService(t, slots, nil)
	_, err := svc.SimulateRound(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCareerService_SaveConflictUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eng, err := engine.New(engine.DefaultConfig())
	require.NoError(t, err)
	state, _, err := eng.NewGame(9, testPlayer())
	require.NoError(t, err)
	data, err := engine.Serialize(state)
	require.NoError(t, err)

	slots := saveslotmock.NewRepository(t)
	slots.On("Get", mock.Anything, "slot-1").Return(saveslot.Slot{ID: "slot-1", Version: 4, Data: data}, true, nil).Once()
	slots.On("Save", mock.Anything, mock.MatchedBy(func(s saveslot.Slot) bool {
		return s.ID == "slot-1" && s.Phase == string(engine.PhaseSeason)
	}), int64(4)).Return(saveslot.Slot{}, saveslot.ErrVersionConflict).Once()

	svc := NewCareerService(eng, slots, nil, nil, nil, logging.NewNop())
	_, err = svc.CompleteDraft(ctx, "slot-1")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCareerService_CorruptSlot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	slots := saveslotmock.NewRepository(t)
	slots.On("Get", mock.Anything, "slot-1").Return(saveslot.Slot{ID: "slot-1", Version: 1, Data: []byte("garbage")}, true, nil).Once()

	svc := newTestCareerService(t, slots, nil)
	_, err := svc.GetCareer(ctx, "slot-1")
	if !crerr.Is(err, career.ErrCorruptSave) {
		t.Fatalf("expected corrupt save error, got %v", err)
	}
}

func TestCareerService_BackendFailuresAreUnavailable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	down := errors.New("dial tcp 10.0.0.5:6379: connect: connection refused")
	slots := saveslotmock.NewRepository(t)
	slots.On("List", mock.Anything).Return(nil, down).Once()
	slots.On("Get", mock.Anything, "slot-1").Return(saveslot.Slot{}, false, down).Twice()
	hof := saveslotmock.NewHallOfFameRepository(t)
	hof.On("Top", mock.Anything, defaultHallOfFameLimit).Return(nil, down).Once()

	svc := newTestCareerService(t, slots, hof)

	_, err := svc.ListCareers(ctx)
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
	_, err = svc.GetCareer(ctx, "slot-1")
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
	assert.ErrorIs(t, svc.DeleteCareer(ctx, "slot-1"), ErrDependencyUnavailable)
	_, err = svc.HallOfFame(ctx, 0)
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}
