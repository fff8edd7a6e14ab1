package league

import (
	"testing"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/footy-career/internal/domain/career"
)

// playFinalsWeek records every fixture with the home side winning.
func playFinalsWeek(t *testing.T, fixtures []Fixture) []Fixture {
	t.Helper()
	for i := range fixtures {
		f := &fixtures[i]
		if err := f.Record(Result{Home: NewScore(12, 10), Away: NewScore(9, 9), WinnerID: f.HomeID}); err != nil {
			t.Fatalf("record %s: %v", f.ID, err)
		}
	}
	return fixtures
}

func TestFinalsBracket_FinalEightRunsToPremier(t *testing.T) {
	ladder := testTeams(18)
	bracket, err := NewFinalsBracket(ladder, 8)
	if err != nil {
		t.Fatalf("new bracket: %v", err)
	}
	if bracket.Weeks() != 4 {
		t.Fatalf("expected 4 finals weeks, got %d", bracket.Weeks())
	}

	var all []Fixture
	for week := 1; week <= bracket.Weeks(); week++ {
		scheduled, err := bracket.ScheduleWeek(week, 22+week, all)
		if err != nil {
			t.Fatalf("schedule week %d: %v", week, err)
		}
		all = append(all, playFinalsWeek(t, scheduled)...)
	}

	if len(all) != 9 {
		t.Fatalf("expected 9 finals, got %d", len(all))
	}
	premier, ok := bracket.Premier(all)
	if !ok || premier != "t01" {
		t.Fatalf("expected minor premier t01 to win with home sides winning, got %q ok=%v", premier, ok)
	}

	// t04 lost QF1 but had the double chance, then won SF1 and lost PF2 away.
	if !bracket.Eliminated("t04", all) {
		t.Fatalf("t04 should be eliminated after losing the preliminary final")
	}
	if bracket.Eliminated("t01", all) {
		t.Fatalf("premier must not be eliminated")
	}
	if !bracket.Eliminated("t09", all) {
		t.Fatalf("team outside the eight is eliminated")
	}
	if got := bracket.FinishLabel("t01", all); got != "Premiers" {
		t.Fatalf("unexpected finish label: %s", got)
	}
	if got := bracket.FinishLabel("t12", all); got != "Missed finals" {
		t.Fatalf("unexpected finish label: %s", got)
	}
}

func TestFinalsBracket_DoubleChanceAfterQualifyingFinal(t *testing.T) {
	bracket, err := NewFinalsBracket(testTeams(10), 8)
	if err != nil {
		t.Fatalf("new bracket: %v", err)
	}
	week1, err := bracket.ScheduleWeek(1, 23, nil)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	week1 = playFinalsWeek(t, week1)

	if bracket.Eliminated("t04", week1) {
		t.Fatalf("losing qualifying finalist keeps a second chance")
	}
	if !bracket.Eliminated("t08", week1) {
		t.Fatalf("losing elimination finalist is out")
	}
}

func TestFinalsBracket_FinalFour(t *testing.T) {
	bracket, err := NewFinalsBracket(testTeams(6), 4)
	if err != nil {
		t.Fatalf("new bracket: %v", err)
	}
	var all []Fixture
	for week := 1; week <= bracket.Weeks(); week++ {
		scheduled, err := bracket.ScheduleWeek(week, 10+week, all)
		if err != nil {
			t.Fatalf("schedule week %d: %v", week, err)
		}
		all = append(all, playFinalsWeek(t, scheduled)...)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 finals, got %d", len(all))
	}
	if premier, ok := bracket.Premier(all); !ok || premier != "t01" {
		t.Fatalf("unexpected premier %q", premier)
	}
}

func TestFinalsBracket_ConfigurationErrors(t *testing.T) {
	if _, err := NewFinalsBracket(testTeams(18), 6); !crerr.Is(err, career.ErrConfiguration) {
		t.Fatalf("expected configuration error for unsupported size, got %v", err)
	}
	if _, err := NewFinalsBracket(testTeams(3), 4); !crerr.Is(err, career.ErrConfiguration) {
		t.Fatalf("expected configuration error for too few teams, got %v", err)
	}
}

func TestFinalsBracket_WeekNotReady(t *testing.T) {
	bracket, _ := NewFinalsBracket(testTeams(8), 8)
	if _, err := bracket.ScheduleWeek(2, 24, nil); !crerr.Is(err, career.ErrValidation) {
		t.Fatalf("expected validation error scheduling week 2 before week 1, got %v", err)
	}
}
