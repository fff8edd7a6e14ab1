package market

import (
	"strconv"
	"testing"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/domain/league"
	"github.com/riskibarqy/footy-career/internal/platform/random"
)

func testLeague(seed uint64) []league.Team {
	return league.NewTeams(18, 99, random.New(seed))
}

func testProfile(clubID string) career.Profile {
	return career.Profile{
		Name:        "Casey Rookie",
		Position:    career.PositionMidfielder,
		SubPosition: career.SubPositionWing,
		Attributes:  career.Attributes{Kicking: 55, Handballing: 58, Marking: 50, Tackling: 52, Speed: 60, Endurance: 57, DecisionMaking: 54},
		Potential:   85,
		Contract:    career.Contract{ClubID: clubID, ClubName: "Home Club", Salary: 900, Tier: career.TierNational, YearsLeft: 1},
	}
}

func TestGenerateOffers_RespectsClubsAndExpiry(t *testing.T) {
	ladder := testLeague(1)
	profile := testProfile(ladder[0].ID)
	profile.TransferOffers = []career.TransferOffer{{ID: "offer-1", ClubID: ladder[5].ID, ExpiresRound: 10}}

	for seed := uint64(1); seed <= 30; seed++ {
		offers, next := GenerateOffers(OfferWindow{
			Profile:      profile,
			Ladder:       ladder,
			Week:         11,
			ExpiryRounds: 3,
			NextSeq:      2,
			Label:        "Mid-season",
		}, random.New(seed))

		if len(offers) < 1 || len(offers) > 3 {
			t.Fatalf("seed %d: expected 1-3 offers, got %d", seed, len(offers))
		}
		if next != 2+len(offers) {
			t.Fatalf("seed %d: sequence not advanced per offer", seed)
		}
		clubs := map[string]bool{}
		for i, o := range offers {
			if o.ClubID == ladder[0].ID {
				t.Fatalf("seed %d: offer from the user's own club", seed)
			}
			if o.ClubID == ladder[5].ID {
				t.Fatalf("seed %d: second offer from a club with an open offer", seed)
			}
			if clubs[o.ClubID] {
				t.Fatalf("seed %d: duplicate club %s", seed, o.ClubID)
			}
			clubs[o.ClubID] = true
			if o.ExpiresRound != 14 {
				t.Fatalf("seed %d: expected expiry 14, got %d", seed, o.ExpiresRound)
			}
			if o.ID != "offer-"+strconv.Itoa(2+i) {
				t.Fatalf("seed %d: unexpected id %s", seed, o.ID)
			}
			if o.Salary <= 0 || o.ContractLength < 1 || o.ContractLength > 4 {
				t.Fatalf("seed %d: implausible offer terms %+v", seed, o)
			}
		}
	}
}

func TestPruneOffers(t *testing.T) {
	offers := []career.TransferOffer{{ID: "a", ExpiresRound: 4}, {ID: "b", ExpiresRound: 5}, {ID: "c", ExpiresRound: 9}}
	kept := PruneOffers(offers, 5)
	if len(kept) != 2 || kept[0].ID != "b" || kept[1].ID != "c" {
		t.Fatalf("unexpected offers after prune: %+v", kept)
	}
	if len(offers) != 3 {
		t.Fatalf("prune must not modify its input")
	}
}

func TestAcceptOffer(t *testing.T) {
	p := testProfile("ade")
	p.TransferOffers = []career.TransferOffer{
		{ID: "offer-1", ClubID: "car", ClubName: "Carlton Bluestones", Salary: 1500, Tier: career.TierNational, Role: career.RoleStarter, ContractLength: 3, ExpiresRound: 12},
		{ID: "offer-2", ClubID: "ess", ClubName: "Essendon Hornets", ExpiresRound: 8},
	}

	if _, _, err := AcceptOffer(p, "offer-2", 9); !crerr.Is(err, career.ErrNotFound) {
		t.Fatalf("expected not found for an expired offer, got %v", err)
	}
	if _, _, err := AcceptOffer(p, "offer-9", 9); !crerr.Is(err, career.ErrNotFound) {
		t.Fatalf("expected not found for an unknown offer, got %v", err)
	}

	signed, offer, err := AcceptOffer(p, "offer-1", 9)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if offer.ClubID != "car" || signed.Contract.ClubID != "car" || signed.Contract.YearsLeft != 3 || signed.Contract.Salary != 1500 {
		t.Fatalf("contract not replaced: %+v", signed.Contract)
	}
	if len(signed.TransferOffers) != 0 {
		t.Fatalf("all offers should be cleared after signing")
	}
	if len(p.TransferOffers) != 2 {
		t.Fatalf("input profile must not be modified")
	}
}

func TestRejectOffer(t *testing.T) {
	p := testProfile("ade")
	p.TransferOffers = []career.TransferOffer{{ID: "offer-1"}, {ID: "offer-2"}}

	next, err := RejectOffer(p, "offer-1")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if len(next.TransferOffers) != 1 || next.TransferOffers[0].ID != "offer-2" {
		t.Fatalf("unexpected offers: %+v", next.TransferOffers)
	}
	if len(p.TransferOffers) != 2 || p.TransferOffers[0].ID != "offer-1" {
		t.Fatalf("input profile must not be modified")
	}
	if _, err := RejectOffer(next, "offer-1"); !crerr.Is(err, career.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
