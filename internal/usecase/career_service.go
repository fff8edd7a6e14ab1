package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/footy-career/internal/domain/saveslot"
	"github.com/riskibarqy/footy-career/internal/engine"
	"github.com/riskibarqy/footy-career/internal/metrics"
	"github.com/riskibarqy/footy-career/internal/platform/id"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
	"github.com/riskibarqy/footy-career/internal/platform/random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultHallOfFameLimit = 20

// CareerView is a loaded career together with the events of the intent that produced it.
type CareerView struct {
	SlotID  string         `json:"slot_id"`
	Label   string         `json:"label,omitempty"`
	Version int64          `json:"version"`
	Summary engine.Summary `json:"summary"`
	State   engine.State   `json:"state"`
	Events  []engine.Event `json:"events"`
}

type CreateCareerInput struct {
	SlotID string
	Label  string
	Seed   *uint64
	Player engine.NewGameInput
}

// CareerService runs engine intents against persisted save slots.
// Intents on one slot are serialized; the repository version check catches writers in other processes.
type CareerService struct {
	engine     *engine.Engine
	slots      saveslot.Repository
	hallOfFame saveslot.HallOfFameRepository
	ids        id.Generator
	metrics    *metrics.Metrics
	logger     *logging.Logger
	now        func() time.Time

	mu    sync.Mutex
	locks map[string]*slotLock
}

// slotLock is dropped from the map once no intent holds or waits on it.
type slotLock struct {
	mu   sync.Mutex
	refs int
}

func NewCareerService(
	eng *engine.Engine,
	slots saveslot.Repository,
	hallOfFame saveslot.HallOfFameRepository,
	ids id.Generator,
	m *metrics.Metrics,
	logger *logging.Logger,
) *CareerService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &CareerService{
		engine:     eng,
		slots:      slots,
		hallOfFame: hallOfFame,
		ids:        ids,
		metrics:    m,
		logger:     logger.Named("career"),
		now:        time.Now,
		locks:      make(map[string]*slotLock),
	}
}

func (s *CareerService) lockSlot(slotID string) (unlock func()) {
	s.mu.Lock()
	lock, ok := s.locks[slotID]
	if !ok {
		lock = &slotLock{}
		s.locks[slotID] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		s.mu.Lock()
		defer s.mu.Unlock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.locks, slotID)
		}
	}
}

func normalizeSlotID(slotID string) (string, error) {
	slotID = strings.TrimSpace(slotID)
	if slotID == "" {
		return "", fmt.Errorf("%w: slot id is required", ErrInvalidInput)
	}
	if !id.Valid(slotID) {
		return "", fmt.Errorf("%w: malformed slot id %q", ErrInvalidInput, slotID)
	}
	return slotID, nil
}

func (s *CareerService) CreateCareer(ctx context.Context, input CreateCareerInput) (view CareerView, err error) {
	ctx, span := startSpan(ctx, "career.CreateCareer")
	defer span.End()
	started := time.Now()
	defer func() { s.metrics.ObserveIntent("create_career", err, time.Since(started)) }()

	slotID := strings.TrimSpace(input.SlotID)
	if slotID == "" {
		slotID, err = s.ids.NewID()
		if err != nil {
			return CareerView{}, fmt.Errorf("%w: generate slot id: %v", ErrDependencyUnavailable, err)
		}
	}
	if slotID, err = normalizeSlotID(slotID); err != nil {
		return CareerView{}, err
	}

	var seed uint64
	if input.Seed != nil {
		seed = *input.Seed
	} else if seed, err = random.NewSeed(); err != nil {
		return CareerView{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	defer s.lockSlot(slotID)()

	state, events, err := s.engine.NewGame(seed, input.Player)
	if err != nil {
		return CareerView{}, err
	}

	slot := saveslot.Slot{ID: slotID, Label: strings.TrimSpace(input.Label)}
	stored, err := s.store(ctx, slot, state, 0)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return CareerView{}, err
	}

	s.logger.InfoContext(ctx, "career created",
		"slot_id", slotID,
		"player", input.Player.Name,
		"seed", seed,
	)
	return newCareerView(stored, state, events), nil
}

func (s *CareerService) GetCareer(ctx context.Context, slotID string) (CareerView, error) {
	ctx, span := startSpan(ctx, "career.GetCareer")
	defer span.End()

	slotID, err := normalizeSlotID(slotID)
	if err != nil {
		return CareerView{}, err
	}

	slot, state, err := s.load(ctx, slotID)
	if err != nil {
		return CareerView{}, err
	}
	return newCareerView(slot, state, nil), nil
}

func (s *CareerService) ListCareers(ctx context.Context) ([]saveslot.Slot, error) {
	ctx, span := startSpan(ctx, "career.ListCareers")
	defer span.End()

	items, err := s.slots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list save slots: %v", ErrDependencyUnavailable, err)
	}
	return items, nil
}

func (s *CareerService) DeleteCareer(ctx context.Context, slotID string) error {
	ctx, span := startSpan(ctx, "career.DeleteCareer")
	defer span.End()

	slotID, err := normalizeSlotID(slotID)
	if err != nil {
		return err
	}

	defer s.lockSlot(slotID)()

	if _, exists, err := s.slots.Get(ctx, slotID); err != nil {
		return fmt.Errorf("%w: get save slot: %v", ErrDependencyUnavailable, err)
	} else if !exists {
		return fmt.Errorf("%w: slot=%s", ErrNotFound, slotID)
	}
	if err := s.slots.Delete(ctx, slotID); err != nil {
		return fmt.Errorf("%w: delete save slot: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "career deleted", "slot_id", slotID)
	return nil
}

func (s *CareerService) HallOfFame(ctx context.Context, limit int) ([]saveslot.HallOfFameRecord, error) {
	if s.hallOfFame == nil {
		return nil, fmt.Errorf("%w: hall of fame store is not configured", ErrDependencyUnavailable)
	}
	if limit <= 0 {
		limit = defaultHallOfFameLimit
	}
	items, err := s.hallOfFame.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list hall of fame: %v", ErrDependencyUnavailable, err)
	}
	return items, nil
}

func (s *CareerService) StartNewCareer(ctx context.Context, slotID string, input engine.NewGameInput) (CareerView, error) {
	return s.mutate(ctx, slotID, "start_new_career", func(st engine.State) (engine.State, []engine.Event, error) {
		return s.engine.StartNewCareer(st, input)
	})
}

func (s *CareerService) SimulateDraftPick(ctx context.Context, slotID string) (CareerView, error) {
	return s.mutate(ctx, slotID, "simulate_draft_pick", s.engine.SimulateDraftPick)
}

func (s *CareerService) CompleteDraft(ctx context.Context, slotID string) (CareerView, error) {
	return s.mutate(ctx, slotID, "complete_draft", s.engine.CompleteDraft)
}

func (s *CareerService) SimulateRound(ctx context.Context, slotID string) (CareerView, error) {
	view, err := s.mutate(ctx, slotID, "simulate_round", s.engine.SimulateRound)
	if err == nil {
		s.metrics.IncRounds()
	}
	return view, err
}

func (s *CareerService) TrainAttribute(ctx context.Context, slotID, attribute string) (CareerView, error) {
	return s.mutate(ctx, slotID, "train_attribute", func(st engine.State) (engine.State, []engine.Event, error) {
		return s.engine.TrainAttribute(st, attribute)
	})
}

func (s *CareerService) AcknowledgeMilestone(ctx context.Context, slotID string) (CareerView, error) {
	return s.mutate(ctx, slotID, "acknowledge_milestone", s.engine.AcknowledgeMilestone)
}

func (s *CareerService) ClaimReward(ctx context.Context, slotID string) (CareerView, error) {
	now := s.now()
	return s.mutate(ctx, slotID, "claim_reward", func(st engine.State) (engine.State, []engine.Event, error) {
		return s.engine.ClaimReward(st, now)
	})
}

func (s *CareerService) PurchaseItem(ctx context.Context, slotID, itemID string) (CareerView, error) {
	return s.mutate(ctx, slotID, "purchase_item", func(st engine.State) (engine.State, []engine.Event, error) {
		return s.engine.PurchaseItem(st, itemID)
	})
}

func (s *CareerService) AcceptTransfer(ctx context.Context, slotID, offerID string) (CareerView, error) {
	return s.mutate(ctx, slotID, "accept_transfer", func(st engine.State) (engine.State, []engine.Event, error) {
		return s.engine.AcceptTransfer(st, offerID)
	})
}

func (s *CareerService) RejectTransfer(ctx context.Context, slotID, offerID string) (CareerView, error) {
	return s.mutate(ctx, slotID, "reject_transfer", func(st engine.State) (engine.State, []engine.Event, error) {
		return s.engine.RejectTransfer(st, offerID)
	})
}

func (s *CareerService) RespondToMedia(ctx context.Context, slotID, eventID, response string) (CareerView, error) {
	return s.mutate(ctx, slotID, "respond_to_media", func(st engine.State) (engine.State, []engine.Event, error) {
		return s.engine.RespondToMedia(st, eventID, response)
	})
}

func (s *CareerService) CreateSocialPost(ctx context.Context, slotID, content string) (CareerView, error) {
	return s.mutate(ctx, slotID, "create_social_post", func(st engine.State) (engine.State, []engine.Event, error) {
		return s.engine.CreateSocialPost(st, content)
	})
}

func (s *CareerService) RetirePlayer(ctx context.Context, slotID string) (CareerView, error) {
	return s.mutate(ctx, slotID, "retire_player", s.engine.RetirePlayer)
}

func (s *CareerService) ResetGame(ctx context.Context, slotID string) (CareerView, error) {
	return s.mutate(ctx, slotID, "reset_game", s.engine.ResetGame)
}

type intentFunc func(engine.State) (engine.State, []engine.Event, error)

func (s *CareerService) mutate(ctx context.Context, slotID, intent string, fn intentFunc) (view CareerView, err error) {
	ctx, span := startSpan(ctx, "career."+intent, attribute.String("career.intent", intent))
	defer span.End()

	started := time.Now()
	defer func() {
		s.metrics.ObserveIntent(intent, err, time.Since(started))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	slotID, err = normalizeSlotID(slotID)
	if err != nil {
		return CareerView{}, err
	}
	span.SetAttributes(attribute.String("career.slot_id", slotID))

	defer s.lockSlot(slotID)()

	slot, state, err := s.load(ctx, slotID)
	if err != nil {
		return CareerView{}, err
	}

	next, events, err := fn(state)
	if err != nil {
		s.logger.DebugContext(ctx, "career intent rejected", "slot_id", slotID, "intent", intent, "error", err)
		return CareerView{}, err
	}
	if next.Revision == state.Revision {
		return newCareerView(slot, state, events), nil
	}

	stored, err := s.store(ctx, slot, next, slot.Version)
	if err != nil {
		return CareerView{}, err
	}

	if state.Phase != engine.PhaseRetired && next.Phase == engine.PhaseRetired {
		s.publishRetirement(ctx, slotID, next)
	}

	s.logger.InfoContext(ctx, "career intent applied",
		"slot_id", slotID,
		"intent", intent,
		"version", stored.Version,
		"events", len(events),
	)
	return newCareerView(stored, next, events), nil
}

func (s *CareerService) load(ctx context.Context, slotID string) (saveslot.Slot, engine.State, error) {
	slot, exists, err := s.slots.Get(ctx, slotID)
	if err != nil {
		return saveslot.Slot{}, engine.State{}, fmt.Errorf("%w: get save slot: %v", ErrDependencyUnavailable, err)
	}
	if !exists {
		return saveslot.Slot{}, engine.State{}, fmt.Errorf("%w: slot=%s", ErrNotFound, slotID)
	}

	state, err := engine.Deserialize(slot.Data)
	if err != nil {
		s.logger.ErrorContext(ctx, "save slot payload rejected", "slot_id", slotID, "error", err)
		return saveslot.Slot{}, engine.State{}, fmt.Errorf("load slot %s: %w", slotID, err)
	}
	return slot, state, nil
}

func (s *CareerService) store(ctx context.Context, slot saveslot.Slot, state engine.State, expectedVersion int64) (saveslot.Slot, error) {
	data, err := engine.Serialize(state)
	if err != nil {
		return saveslot.Slot{}, fmt.Errorf("serialize career: %w", err)
	}

	slot.Data = data
	slot.Phase = string(state.Phase)
	slot.Year = state.Year
	slot.Round = state.Round
	slot.PlayerName = ""
	if state.Profile != nil {
		slot.PlayerName = state.Profile.Name
	}

	stored, err := s.slots.Save(ctx, slot, expectedVersion)
	if err != nil {
		if errors.Is(err, saveslot.ErrVersionConflict) {
			s.metrics.IncSaveConflict()
			return saveslot.Slot{}, fmt.Errorf("%w: slot=%s", ErrConflict, slot.ID)
		}
		return saveslot.Slot{}, fmt.Errorf("%w: save slot: %v", ErrDependencyUnavailable, err)
	}
	return stored, nil
}

// publishRetirement copies the newest hall of fame entry to the shared leaderboard.
// The save is already committed, so a failure here is logged rather than returned.
func (s *CareerService) publishRetirement(ctx context.Context, slotID string, state engine.State) {
	if s.hallOfFame == nil || len(state.HallOfFame) == 0 {
		return
	}
	entry := state.HallOfFame[len(state.HallOfFame)-1]
	record := saveslot.HallOfFameRecord{
		SlotID:      slotID,
		Name:        entry.Name,
		Position:    string(entry.Position),
		RetiredYear: entry.RetiredYear,
		Seasons:     entry.Seasons,
		Matches:     entry.CareerStats.Matches,
		Goals:       entry.CareerStats.Goals,
		Awards:      entry.CareerStats.Awards,
		Flags:       entry.CareerStats.Premierships,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.hallOfFame.Record(ctx, record); err != nil {
		s.logger.WarnContext(ctx, "record hall of fame failed", "slot_id", slotID, "error", err)
	}
}

func newCareerView(slot saveslot.Slot, state engine.State, events []engine.Event) CareerView {
	if events == nil {
		events = []engine.Event{}
	}
	return CareerView{
		SlotID:  slot.ID,
		Label:   slot.Label,
		Version: slot.Version,
		Summary: engine.Summarize(state),
		State:   state,
		Events:  events,
	}
}
