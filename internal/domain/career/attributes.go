package career

import (
	"math"
	"strings"
)

const (
	MinAttribute = 10
	MaxEnergy    = 100
	MaxMorale    = 100
)

// Attribute names one trainable skill.
type Attribute string

const (
	AttributeKicking        Attribute = "kicking"
	AttributeHandballing    Attribute = "handballing"
	AttributeMarking        Attribute = "marking"
	AttributeTackling       Attribute = "tackling"
	AttributeSpeed          Attribute = "speed"
	AttributeEndurance      Attribute = "endurance"
	AttributeDecisionMaking Attribute = "decision_making"
)

// AllAttributes lists attributes in their canonical order.
var AllAttributes = []Attribute{
	AttributeKicking,
	AttributeHandballing,
	AttributeMarking,
	AttributeTackling,
	AttributeSpeed,
	AttributeEndurance,
	AttributeDecisionMaking,
}

func ParseAttribute(value string) (Attribute, bool) {
	attr := Attribute(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range AllAttributes {
		if known == attr {
			return attr, true
		}
	}
	return "", false
}

type Attributes struct {
	Kicking        int `json:"kicking"`
	Handballing    int `json:"handballing"`
	Marking        int `json:"marking"`
	Tackling       int `json:"tackling"`
	Speed          int `json:"speed"`
	Endurance      int `json:"endurance"`
	DecisionMaking int `json:"decision_making"`
}

func (a Attributes) Get(attr Attribute) (int, bool) {
	switch attr {
	case AttributeKicking:
		return a.Kicking, true
	case AttributeHandballing:
		return a.Handballing, true
	case AttributeMarking:
		return a.Marking, true
	case AttributeTackling:
		return a.Tackling, true
	case AttributeSpeed:
		return a.Speed, true
	case AttributeEndurance:
		return a.Endurance, true
	case AttributeDecisionMaking:
		return a.DecisionMaking, true
	default:
		return 0, false
	}
}

func (a *Attributes) Set(attr Attribute, value int) bool {
	switch attr {
	case AttributeKicking:
		a.Kicking = value
	case AttributeHandballing:
		a.Handballing = value
	case AttributeMarking:
		a.Marking = value
	case AttributeTackling:
		a.Tackling = value
	case AttributeSpeed:
		a.Speed = value
	case AttributeEndurance:
		a.Endurance = value
	case AttributeDecisionMaking:
		a.DecisionMaking = value
	default:
		return false
	}
	return true
}

func (a Attributes) Values() []int {
	out := make([]int, 0, len(AllAttributes))
	for _, attr := range AllAttributes {
		v, _ := a.Get(attr)
		out = append(out, v)
	}
	return out
}

// PointsAboveBase counts how many points were spent above the attribute floor.
func (a Attributes) PointsAboveBase() int {
	total := 0
	for _, v := range a.Values() {
		total += v - MinAttribute
	}
	return total
}

// Rating is the position-weighted mean of the attributes, rounded.
func (a Attributes) Rating(pos Position) int {
	weights := positionWeights[pos]
	if len(weights) == 0 {
		weights = positionWeights[PositionMidfielder]
	}

	var sum, total float64
	for i, v := range a.Values() {
		sum += float64(v) * weights[i]
		total += weights[i]
	}
	return int(math.Round(sum / total))
}

// Position is the on-field line a player covers.
type Position string

const (
	PositionForward    Position = "FORWARD"
	PositionMidfielder Position = "MIDFIELDER"
	PositionDefender   Position = "DEFENDER"
	PositionRuck       Position = "RUCK"
)

type SubPosition string

const (
	SubPositionFullForward SubPosition = "FULL_FORWARD"
	SubPositionHalfForward SubPosition = "HALF_FORWARD"
	SubPositionPocket      SubPosition = "FORWARD_POCKET"
	SubPositionCentre      SubPosition = "CENTRE"
	SubPositionWing        SubPosition = "WING"
	SubPositionRover       SubPosition = "ROVER"
	SubPositionHalfBack    SubPosition = "HALF_BACK"
	SubPositionFullBack    SubPosition = "FULL_BACK"
	SubPositionRuckman     SubPosition = "RUCKMAN"
	SubPositionRuckRover   SubPosition = "RUCK_ROVER"
)

var AllPositions = []Position{PositionForward, PositionMidfielder, PositionDefender, PositionRuck}

// SubPositions maps each position to the roles that can be played from it.
var SubPositions = map[Position][]SubPosition{
	PositionForward:    {SubPositionFullForward, SubPositionHalfForward, SubPositionPocket},
	PositionMidfielder: {SubPositionCentre, SubPositionWing, SubPositionRover},
	PositionDefender:   {SubPositionHalfBack, SubPositionFullBack},
	PositionRuck:       {SubPositionRuckman, SubPositionRuckRover},
}

func ValidSubPosition(pos Position, sub SubPosition) bool {
	for _, candidate := range SubPositions[pos] {
		if candidate == sub {
			return true
		}
	}
	return false
}

// positionWeights follow AllAttributes order.
var positionWeights = map[Position][]float64{
	PositionForward:    {3, 1, 3, 1, 2, 1, 2},
	PositionMidfielder: {2, 3, 1, 2, 2, 3, 3},
	PositionDefender:   {2, 1, 3, 2, 2, 1, 2},
	PositionRuck:       {1, 2, 3, 2, 1, 2, 2},
}
