package market

import (
	"testing"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/platform/random"
)

func TestBuildDraftClass(t *testing.T) {
	teams := testLeague(3)
	class := BuildDraftClass(2026, teams, testProfile(""), 99, random.New(4))

	if len(class.Prospects) != CPUProspects+1 {
		t.Fatalf("expected %d prospects, got %d", CPUProspects+1, len(class.Prospects))
	}
	if len(class.Picks) != len(teams)*DraftRounds {
		t.Fatalf("expected %d picks, got %d", len(teams)*DraftRounds, len(class.Picks))
	}

	ranks := map[int]bool{}
	users := 0
	for _, p := range class.Prospects {
		if p.DraftRank < 1 || p.DraftRank > len(class.Prospects) || ranks[p.DraftRank] {
			t.Fatalf("invalid or duplicate draft rank %d", p.DraftRank)
		}
		ranks[p.DraftRank] = true
		if p.IsUser {
			users++
		}
		if p.Potential < p.Rating {
			t.Fatalf("potential below rating for %s", p.ID)
		}
	}
	if users != 1 {
		t.Fatalf("expected exactly one user prospect, got %d", users)
	}
	if err := class.Validate(); err != nil {
		t.Fatalf("fresh draft should validate: %v", err)
	}
}

func TestSimulatePick_FillsInOrder(t *testing.T) {
	teams := testLeague(3)
	rng := random.New(5)
	class := BuildDraftClass(2026, teams, testProfile(""), 99, rng)

	next, pick, err := SimulatePick(class, teams, rng)
	if err != nil {
		t.Fatalf("simulate pick: %v", err)
	}
	if pick.PickNumber != 1 || pick.ProspectID == "" {
		t.Fatalf("unexpected first pick: %+v", pick)
	}
	if class.Picks[0].ProspectID != "" {
		t.Fatalf("input draft class must not be modified")
	}

	next, second, err := SimulatePick(next, teams, rng)
	if err != nil {
		t.Fatalf("simulate second pick: %v", err)
	}
	if second.PickNumber != 2 || second.ProspectID == pick.ProspectID {
		t.Fatalf("unexpected second pick: %+v", second)
	}
	if err := next.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestCompleteDraft(t *testing.T) {
	teams := testLeague(3)
	rng := random.New(6)
	class := BuildDraftClass(2026, teams, testProfile(""), 99, rng)
	class, _, _ = SimulatePick(class, teams, rng)

	done, made, err := CompleteDraft(class, teams, rng)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.Completed || len(made) != len(class.Picks)-1 {
		t.Fatalf("expected %d remaining picks made, got %d", len(class.Picks)-1, len(made))
	}
	if err := done.Validate(); err != nil {
		t.Fatalf("completed draft should validate: %v", err)
	}

	if _, _, err := CompleteDraft(done, teams, rng); !crerr.Is(err, career.ErrValidation) {
		t.Fatalf("expected validation error completing twice, got %v", err)
	}
	if _, _, err := SimulatePick(done, teams, rng); !crerr.Is(err, career.ErrValidation) {
		t.Fatalf("expected validation error picking after completion, got %v", err)
	}
}

func TestDraftContracts(t *testing.T) {
	rookie := RookieContract(Pick{PickNumber: 1, TeamID: "ade", TeamName: "Adelaide Kestrels"})
	if rookie.Tier != career.TierNational || rookie.Salary != 1200 || rookie.ClubID != "ade" {
		t.Fatalf("unexpected rookie contract: %+v", rookie)
	}
	late := RookieContract(Pick{PickNumber: 60})
	if late.Salary != 600 {
		t.Fatalf("rookie salary floor not applied: %d", late.Salary)
	}

	class := DraftClass{Picks: []Pick{{PickNumber: 1, TeamID: "wce", TeamName: "West Coast Condors"}}}
	fallback := UndraftedContract(class)
	if fallback.ClubID != "wce" || fallback.Tier != career.TierState {
		t.Fatalf("unexpected fallback contract: %+v", fallback)
	}
}

func TestDraftClassValidate_DetectsDuplicates(t *testing.T) {
	class := DraftClass{
		Prospects: []Prospect{{ID: "p1"}, {ID: "p2"}},
		Picks: []Pick{
			{PickNumber: 1, ProspectID: "p1"},
			{PickNumber: 2, ProspectID: "p1"},
		},
	}
	if err := class.Validate(); !crerr.Is(err, career.ErrValidation) {
		t.Fatalf("expected duplicate prospect to fail validation, got %v", err)
	}
}
