package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/engine"
	"github.com/riskibarqy/footy-career/internal/metrics"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
)

func newTestBalanceService(t *testing.T) *BalanceService {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.SeasonLength = 6
	cfg.TeamCount = 8
	cfg.FinalsSize = 4
	eng, err := engine.New(cfg)
	require.NoError(t, err)
	return NewBalanceService(eng, metrics.New(), logging.NewNop())
}

func TestBalanceService_Run(t *testing.T) {
	t.Parallel()

	svc := newTestBalanceService(t)
	report, err := svc.Run(context.Background(), BalanceInput{Careers: 8, Seasons: 2, BaseSeed: 100, MaxWorkers: 4})
	require.NoError(t, err)

	assert.Equal(t, 8, report.Careers)
	assert.Equal(t, 4, report.WorkerCount)
	assert.Zero(t, report.Failed)
	require.Len(t, report.Rows, 8)
	for i, row := range report.Rows {
		assert.Equal(t, uint64(100+i), row.Seed)
		assert.Equal(t, 2, row.Seasons, "seed %d", row.Seed)
		assert.Positive(t, row.Matches, "seed %d", row.Seed)
	}
	for _, pos := range career.AllPositions {
		assert.Equal(t, 2, report.ByPosition[pos].Careers, "position %s", pos)
	}
}

func TestBalanceService_RunIsDeterministic(t *testing.T) {
	t.Parallel()

	svc := newTestBalanceService(t)
	in := BalanceInput{Careers: 4, Seasons: 1, BaseSeed: 7, MaxWorkers: 2}
	first, err := svc.Run(context.Background(), in)
	require.NoError(t, err)
	in.MaxWorkers = 4
	second, err := svc.Run(context.Background(), in)
	require.NoError(t, err)

	for i := range first.Rows {
		first.Rows[i].DurationMs, second.Rows[i].DurationMs = 0, 0
	}
	assert.Equal(t, first.Rows, second.Rows)
}

func TestBalanceService_RejectsBadInput(t *testing.T) {
	t.Parallel()

	svc := newTestBalanceService(t)
	cases := []BalanceInput{
		{Careers: -1},
		{Careers: maxBalanceCareers + 1},
		{Careers: 1, Seasons: maxBalanceSeasons + 1},
	}
	for _, in := range cases {
		if _, err := svc.Run(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestNormalizeBalanceWorkerCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		requested, tasks, want int
	}{
		{requested: 0, tasks: 100, want: 8},
		{requested: 200, tasks: 500, want: maxBalanceWorkers},
		{requested: 16, tasks: 3, want: 3},
		{requested: 4, tasks: 0, want: 1},
	}
	for _, tc := range cases {
		if got := normalizeBalanceWorkerCount(tc.requested, tc.tasks); got != tc.want {
			t.Fatalf("normalizeBalanceWorkerCount(%d,%d)=%d want=%d", tc.requested, tc.tasks, got, tc.want)
		}
	}
}
