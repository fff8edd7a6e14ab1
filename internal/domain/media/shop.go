package media

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/domain/progression"
)

type EffectKind string

const (
	EffectEnergy         EffectKind = "ENERGY"
	EffectSkillPoints    EffectKind = "SKILL_POINTS"
	EffectMorale         EffectKind = "MORALE"
	EffectInjuryHeal     EffectKind = "INJURY_HEAL"
	EffectXPBoost        EffectKind = "XP_BOOST"
	EffectAttributeBoost EffectKind = "ATTRIBUTE_BOOST"
	EffectCosmetic       EffectKind = "COSMETIC"
)

type Effect struct {
	Kind      EffectKind       `json:"kind"`
	Value     int              `json:"value"`
	Attribute career.Attribute `json:"attribute,omitempty"`
}

type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int    `json:"price"`
	Effect   Effect `json:"effect"`
	OneTime  bool   `json:"one_time"`
}

var Catalog = []Item{
	{ID: "energy-drink", Name: "Energy Drink", Category: "recovery", Price: 50, Effect: Effect{Kind: EffectEnergy, Value: 30}},
	{ID: "ice-bath", Name: "Ice Bath Session", Category: "recovery", Price: 90, Effect: Effect{Kind: EffectEnergy, Value: 60}},
	{ID: "physio", Name: "Physio Treatment", Category: "recovery", Price: 200, Effect: Effect{Kind: EffectInjuryHeal, Value: 2}},
	{ID: "training-manual", Name: "Training Manual", Category: "development", Price: 150, Effect: Effect{Kind: EffectSkillPoints, Value: 1}},
	{ID: "elite-coaching", Name: "Elite Coaching Block", Category: "development", Price: 400, Effect: Effect{Kind: EffectSkillPoints, Value: 3}},
	{ID: "vision-session", Name: "Vision Review Session", Category: "development", Price: 250, Effect: Effect{Kind: EffectXPBoost, Value: 150}},
	{ID: "sports-psych", Name: "Sports Psychologist", Category: "mindset", Price: 120, Effect: Effect{Kind: EffectMorale, Value: 20}},
	{ID: "kicking-clinic", Name: "Kicking Clinic", Category: "development", Price: 500, Effect: Effect{Kind: EffectAttributeBoost, Value: 2, Attribute: career.AttributeKicking}, OneTime: true},
	{ID: "speed-camp", Name: "Speed Camp", Category: "development", Price: 500, Effect: Effect{Kind: EffectAttributeBoost, Value: 2, Attribute: career.AttributeSpeed}, OneTime: true},
	{ID: "custom-boots", Name: "Custom Boots", Category: "cosmetic", Price: 300, Effect: Effect{Kind: EffectCosmetic}, OneTime: true},
	{ID: "retro-headband", Name: "Retro Headband", Category: "cosmetic", Price: 100, Effect: Effect{Kind: EffectCosmetic}, OneTime: true},
}

func FindItem(id string) (Item, bool) {
	for _, item := range Catalog {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// PurchaseItem debits the wallet and applies the item's effect straight away.
// It returns the number of levels gained when the effect grants experience.
func PurchaseItem(p career.Profile, itemID string) (career.Profile, Item, int, error) {
	item, ok := FindItem(itemID)
	if !ok {
		return p, Item{}, 0, crerr.Wrapf(career.ErrNotFound, "shop item %s", itemID)
	}
	if item.OneTime && p.Owns(item.ID) {
		return p, item, 0, crerr.Wrapf(career.ErrAlreadyOwned, "%s", item.Name)
	}
	if p.Wallet < item.Price {
		return p, item, 0, crerr.Wrapf(career.ErrInsufficientFunds, "%s costs %d, wallet has %d", item.Name, item.Price, p.Wallet)
	}

	p.Wallet -= item.Price
	if item.OneTime {
		p.ItemsPurchased = append(append([]string(nil), p.ItemsPurchased...), item.ID)
	}

	levels := 0
	switch item.Effect.Kind {
	case EffectEnergy:
		p = progression.AddEnergy(p, item.Effect.Value)
	case EffectSkillPoints:
		p.SkillPoints += item.Effect.Value
	case EffectMorale:
		p = progression.AdjustMorale(p, item.Effect.Value)
	case EffectInjuryHeal:
		p = progression.HealInjury(p, item.Effect.Value)
	case EffectXPBoost:
		p, levels = progression.AddXP(p, item.Effect.Value)
	case EffectAttributeBoost:
		p = progression.BoostAttribute(p, item.Effect.Attribute, item.Effect.Value)
	}
	return p, item, levels, nil
}
