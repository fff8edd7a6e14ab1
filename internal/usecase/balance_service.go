package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/engine"
	"github.com/riskibarqy/footy-career/internal/metrics"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
)

const (
	defaultBalanceCareers = 100
	defaultBalanceSeasons = 5
	maxBalanceCareers     = 10000
	maxBalanceSeasons     = 25
	maxBalanceWorkers     = 64
)

type BalanceInput struct {
	Careers    int
	Seasons    int
	BaseSeed   uint64
	MaxWorkers int
}

// BalanceCareer is the outcome of one simulated career.
type BalanceCareer struct {
	Seed         uint64          `json:"seed"`
	Position     career.Position `json:"position"`
	Seasons      int             `json:"seasons"`
	Matches      int             `json:"matches"`
	Goals        int             `json:"goals"`
	Votes        int             `json:"votes"`
	Overall      int             `json:"overall"`
	Level        int             `json:"level"`
	Premierships int             `json:"premierships"`
	Awards       int             `json:"awards"`
	Error        string          `json:"error,omitempty"`
	DurationMs   int64           `json:"duration_ms"`
}

type PositionAverages struct {
	Careers      int     `json:"careers"`
	Matches      float64 `json:"avg_matches"`
	Goals        float64 `json:"avg_goals"`
	Overall      float64 `json:"avg_overall"`
	Premierships int     `json:"premierships"`
	Awards       int     `json:"awards"`
}

type BalanceReport struct {
	Careers     int                                  `json:"careers"`
	Seasons     int                                  `json:"seasons"`
	WorkerCount int                                  `json:"worker_count"`
	Failed      int                                  `json:"failed"`
	ByPosition  map[career.Position]PositionAverages `json:"by_position"`
	Rows        []BalanceCareer                      `json:"rows"`
}

// BalanceService plays many independent careers to completion to check the tuning of the match and progression curves.
type BalanceService struct {
	engine  *engine.Engine
	metrics *metrics.Metrics
	logger  *logging.Logger
}

func NewBalanceService(eng *engine.Engine, m *metrics.Metrics, logger *logging.Logger) *BalanceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BalanceService{engine: eng, metrics: m, logger: logger.Named("balance")}
}

func (s *BalanceService) Run(ctx context.Context, input BalanceInput) (BalanceReport, error) {
	ctx, span := startSpan(ctx, "balance.Run")
	defer span.End()

	if input.Careers == 0 {
		input.Careers = defaultBalanceCareers
	}
	if input.Seasons == 0 {
		input.Seasons = defaultBalanceSeasons
	}
	if input.Careers < 0 || input.Careers > maxBalanceCareers {
		return BalanceReport{}, fmt.Errorf("%w: careers must be between 1 and %d", ErrInvalidInput, maxBalanceCareers)
	}
	if input.Seasons < 0 || input.Seasons > maxBalanceSeasons {
		return BalanceReport{}, fmt.Errorf("%w: seasons must be between 1 and %d", ErrInvalidInput, maxBalanceSeasons)
	}

	workerCount := normalizeBalanceWorkerCount(input.MaxWorkers, input.Careers)
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BalanceReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rows := make([]BalanceCareer, input.Careers)
	var workers sync.WaitGroup
	for i := 0; i < input.Careers; i++ {
		i := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if ctx.Err() != nil {
				rows[i] = BalanceCareer{Seed: input.BaseSeed + uint64(i), Error: ctx.Err().Error()}
				return
			}
			rows[i] = s.playCareer(input.BaseSeed+uint64(i), career.AllPositions[i%len(career.AllPositions)], input.Seasons)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return BalanceReport{}, fmt.Errorf("submit career to worker pool: %w", err)
		}
	}
	workers.Wait()

	report := summarizeBalance(rows, input.Seasons, workerCount)
	s.logger.InfoContext(ctx, "balance run finished",
		"careers", report.Careers,
		"seasons", report.Seasons,
		"workers", report.WorkerCount,
		"failed", report.Failed,
	)
	return report, ctx.Err()
}

func (s *BalanceService) playCareer(seed uint64, pos career.Position, seasons int) BalanceCareer {
	started := time.Now()
	row := BalanceCareer{Seed: seed, Position: pos}
	defer func() {
		row.DurationMs = time.Since(started).Milliseconds()
		outcome := "retired"
		if row.Error != "" {
			outcome = "failed"
		}
		s.metrics.IncBalanceCareer(outcome)
	}()

	fail := func(step string, err error) BalanceCareer {
		row.Error = fmt.Sprintf("%s: %v", step, err)
		return row
	}

	state, _, err := s.engine.NewGame(seed, balancePlayer(pos))
	if err != nil {
		return fail("new game", err)
	}
	if state, _, err = s.engine.CompleteDraft(state); err != nil {
		return fail("complete draft", err)
	}

	cfg := s.engine.Config()
	lastYear := state.Year + seasons
	budget := seasons * (cfg.SeasonLength + 8)
	for state.Year < lastYear && budget > 0 {
		state = s.spendSkillPoints(state)
		if state, _, err = s.engine.SimulateRound(state); err != nil {
			return fail(fmt.Sprintf("simulate round %d of %d", state.Round, state.Year), err)
		}
		budget--
	}

	p := state.Profile
	row.Seasons = len(p.SeasonHistory)
	row.Matches = p.CareerStats.Matches
	row.Goals = p.CareerStats.Goals
	row.Votes = p.CareerStats.Votes
	row.Overall = p.Overall()
	row.Level = p.Level
	row.Premierships = p.CareerStats.Premierships
	row.Awards = p.CareerStats.Awards

	if _, _, err := s.engine.RetirePlayer(state); err != nil {
		return fail("retire", err)
	}
	return row
}

// spendSkillPoints trains the weakest attribute until points run out or training is refused.
func (s *BalanceService) spendSkillPoints(state engine.State) engine.State {
	for state.Profile != nil && state.Profile.SkillPoints > 0 {
		attrs := state.Profile.Attributes
		weakest := career.AllAttributes[0]
		lowest, _ := attrs.Get(weakest)
		for _, attr := range career.AllAttributes[1:] {
			if v, _ := attrs.Get(attr); v < lowest {
				weakest, lowest = attr, v
			}
		}
		next, _, err := s.engine.TrainAttribute(state, string(weakest))
		if err != nil {
			return state
		}
		state = next
	}
	return state
}

func balancePlayer(pos career.Position) engine.NewGameInput {
	return engine.NewGameInput{
		Name:        "Balance " + string(pos),
		Position:    pos,
		SubPosition: career.SubPositions[pos][0],
		Attributes: career.Attributes{
			Kicking: 31, Handballing: 31, Marking: 31, Tackling: 31,
			Speed: 31, Endurance: 31, DecisionMaking: 31,
		},
	}
}

func summarizeBalance(rows []BalanceCareer, seasons, workers int) BalanceReport {
	report := BalanceReport{
		Careers:     len(rows),
		Seasons:     seasons,
		WorkerCount: workers,
		ByPosition:  make(map[career.Position]PositionAverages, len(career.AllPositions)),
		Rows:        rows,
	}

	for _, row := range rows {
		if row.Error != "" {
			report.Failed++
			continue
		}
		avg := report.ByPosition[row.Position]
		avg.Careers++
		avg.Matches += float64(row.Matches)
		avg.Goals += float64(row.Goals)
		avg.Overall += float64(row.Overall)
		avg.Premierships += row.Premierships
		avg.Awards += row.Awards
		report.ByPosition[row.Position] = avg
	}
	for pos, avg := range report.ByPosition {
		n := float64(avg.Careers)
		avg.Matches /= n
		avg.Goals /= n
		avg.Overall /= n
		report.ByPosition[pos] = avg
	}

	sort.SliceStable(report.Rows, func(i, j int) bool { return report.Rows[i].Seed < report.Rows[j].Seed })
	return report
}

func normalizeBalanceWorkerCount(requested, tasks int) int {
	workers := requested
	if workers <= 0 {
		workers = 8
	}
	if workers > maxBalanceWorkers {
		workers = maxBalanceWorkers
	}
	if workers > tasks {
		workers = tasks
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
