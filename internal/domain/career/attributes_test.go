package career

import (
	"testing"

	crerr "github.com/cockroachdb/errors"
)

func TestAttributes_GetSetRoundTrip(t *testing.T) {
	var a Attributes
	for i, attr := range AllAttributes {
		if !a.Set(attr, 20+i) {
			t.Fatalf("set %s failed", attr)
		}
	}
	for i, attr := range AllAttributes {
		v, ok := a.Get(attr)
		if !ok || v != 20+i {
			t.Fatalf("get %s: expected %d, got %d (ok=%v)", attr, 20+i, v, ok)
		}
	}
	if a.Set("juggling", 50) {
		t.Fatalf("expected unknown attribute to be rejected")
	}
}

func TestAttributes_RatingUniform(t *testing.T) {
	a := Attributes{60, 60, 60, 60, 60, 60, 60}
	for _, pos := range AllPositions {
		if got := a.Rating(pos); got != 60 {
			t.Fatalf("%s rating: expected 60, got %d", pos, got)
		}
	}
}

func TestAttributes_RatingFavoursPositionSkills(t *testing.T) {
	kicker := Attributes{Kicking: 80, Handballing: 20, Marking: 80, Tackling: 20, Speed: 50, Endurance: 20, DecisionMaking: 50}
	if kicker.Rating(PositionForward) <= kicker.Rating(PositionMidfielder) {
		t.Fatalf("expected forward rating to exceed midfielder rating for a kicking/marking profile")
	}
}

func TestParseAttribute(t *testing.T) {
	if attr, ok := ParseAttribute(" Kicking "); !ok || attr != AttributeKicking {
		t.Fatalf("expected kicking, got %q ok=%v", attr, ok)
	}
	if _, ok := ParseAttribute("juggling"); ok {
		t.Fatalf("expected juggling to be unknown")
	}
}

func TestErrorMarks(t *testing.T) {
	wrapped := crerr.Wrapf(ErrInsufficientFunds, "item %s", "boots")
	if !crerr.Is(wrapped, ErrInsufficientResource) {
		t.Fatalf("insufficient funds should match insufficient resource")
	}
	if !crerr.Is(crerr.Wrap(ErrAlreadyOwned, "boots"), ErrCapReached) {
		t.Fatalf("already owned should match cap reached")
	}
	if crerr.Is(ErrNotFound, ErrValidation) {
		t.Fatalf("distinct sentinels must not match")
	}
}
