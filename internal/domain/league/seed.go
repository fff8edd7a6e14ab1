package league

import (
	"fmt"
	"math"

	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/platform/random"
)

// RosterSize is the number of list players fielded each match.
const RosterSize = 22

type Club struct {
	ID             string
	Name           string
	ShortName      string
	PrimaryColor   string
	SecondaryColor string
	Stadium        string
}

var DefaultClubs = []Club{
	{ID: "ade", Name: "Adelaide Kestrels", ShortName: "ADE", PrimaryColor: "#002b5c", SecondaryColor: "#e21937", Stadium: "Torrens Oval"},
	{ID: "bri", Name: "Brisbane Rivercats", ShortName: "BRI", PrimaryColor: "#7c003e", SecondaryColor: "#fdbe57", Stadium: "Woolloongabba Park"},
	{ID: "car", Name: "Carlton Bluestones", ShortName: "CAR", PrimaryColor: "#0e1e2d", SecondaryColor: "#ffffff", Stadium: "Princes Reserve"},
	{ID: "col", Name: "Collingwood Ravens", ShortName: "COL", PrimaryColor: "#000000", SecondaryColor: "#ffffff", Stadium: "Victoria Park"},
	{ID: "ess", Name: "Essendon Hornets", ShortName: "ESS", PrimaryColor: "#cc2031", SecondaryColor: "#000000", Stadium: "Windy Hill"},
	{ID: "fre", Name: "Fremantle Anchors", ShortName: "FRE", PrimaryColor: "#2a1a54", SecondaryColor: "#ffffff", Stadium: "Swan Stadium"},
	{ID: "gee", Name: "Geelong Mariners", ShortName: "GEE", PrimaryColor: "#1c3c63", SecondaryColor: "#ffffff", Stadium: "Kardinia Ground"},
	{ID: "gcs", Name: "Gold Coast Breakers", ShortName: "GCS", PrimaryColor: "#d93e39", SecondaryColor: "#f2b52f", Stadium: "Carrara Field"},
	{ID: "gws", Name: "Western Sydney Thunder", ShortName: "GWS", PrimaryColor: "#f47920", SecondaryColor: "#4d4d4f", Stadium: "Showground Arena"},
	{ID: "haw", Name: "Hawthorn Falcons", ShortName: "HAW", PrimaryColor: "#4d2004", SecondaryColor: "#fbbf15", Stadium: "Glenferrie Oval"},
	{ID: "mel", Name: "Melbourne Redlegs", ShortName: "MEL", PrimaryColor: "#0f1131", SecondaryColor: "#cc2031", Stadium: "Yarra Park"},
	{ID: "nth", Name: "North Hobart Roos", ShortName: "NTH", PrimaryColor: "#013b9f", SecondaryColor: "#ffffff", Stadium: "Bellerive Green"},
	{ID: "pta", Name: "Port Adelaide Harbourmen", ShortName: "PTA", PrimaryColor: "#01b5b6", SecondaryColor: "#000000", Stadium: "Alberton Oval"},
	{ID: "ric", Name: "Richmond Stripes", ShortName: "RIC", PrimaryColor: "#000000", SecondaryColor: "#fed102", Stadium: "Punt Road Oval"},
	{ID: "stk", Name: "St Kilda Crusaders", ShortName: "STK", PrimaryColor: "#ed0f05", SecondaryColor: "#000000", Stadium: "Moorabbin Reserve"},
	{ID: "syd", Name: "Sydney Bloods", ShortName: "SYD", PrimaryColor: "#ed171f", SecondaryColor: "#ffffff", Stadium: "Moore Park"},
	{ID: "wce", Name: "West Coast Condors", ShortName: "WCE", PrimaryColor: "#062ee2", SecondaryColor: "#ffd700", Stadium: "Subiaco Field"},
	{ID: "wbd", Name: "Footscray Bulldogs", ShortName: "WBD", PrimaryColor: "#014896", SecondaryColor: "#e31937", Stadium: "Whitten Oval"},
}

var (
	firstNames = []string{
		"Jack", "Tom", "Josh", "Lachie", "Sam", "Harry", "Will", "Charlie", "Max", "Ollie",
		"Zac", "Darcy", "Riley", "Jordan", "Callum", "Nick", "Bailey", "Marcus", "Toby", "Isaac",
		"Hayden", "Kade", "Liam", "Mitch", "Jarrod", "Ed", "Ben", "Noah", "Dylan", "Patrick",
	}
	lastNames = []string{
		"Walsh", "Daicos", "Cripps", "Petracca", "Bontempelli", "Oliver", "Heeney", "Dunkley", "Butters", "Rowell",
		"Serong", "Merrett", "Neale", "Cameron", "Hawkins", "Curnow", "Macrae", "Gawn", "Grundy", "Stewart",
		"Lloyd", "Sicily", "Weitering", "Moore", "Houston", "Rozee", "Warner", "Green", "Kelly", "Ward",
	}
	rosterLines = []career.Position{
		career.PositionForward, career.PositionForward, career.PositionForward,
		career.PositionForward, career.PositionForward, career.PositionForward,
		career.PositionMidfielder, career.PositionMidfielder, career.PositionMidfielder, career.PositionMidfielder,
		career.PositionMidfielder, career.PositionMidfielder, career.PositionMidfielder, career.PositionMidfielder,
		career.PositionDefender, career.PositionDefender, career.PositionDefender,
		career.PositionDefender, career.PositionDefender, career.PositionDefender,
		career.PositionRuck, career.PositionRuck,
	}
)

// RandomName draws a player name from the shared name pool.
func RandomName(rng random.Source) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}

// NewTeams builds count clubs with generated rosters. Club strength varies per seed.
func NewTeams(count int, attributeCap int, rng random.Source) []Team {
	if count > len(DefaultClubs) {
		count = len(DefaultClubs)
	}
	teams := make([]Team, 0, count)
	for _, club := range DefaultClubs[:count] {
		base := rng.Range(56, 72)
		teams = append(teams, Team{
			ID:             club.ID,
			Name:           club.Name,
			ShortName:      club.ShortName,
			PrimaryColor:   club.PrimaryColor,
			SecondaryColor: club.SecondaryColor,
			Stadium:        club.Stadium,
			Roster:         GenerateRoster(club.ID, base, attributeCap, rng),
		})
	}
	return teams
}

// GenerateRoster creates a full list of CPU players around a base rating.
func GenerateRoster(teamID string, base, attributeCap int, rng random.Source) []RosterPlayer {
	roster := make([]RosterPlayer, 0, RosterSize)
	for i, pos := range rosterLines {
		center := float64(base) + rng.Normal(0, 5)
		var attrs career.Attributes
		for _, attr := range career.AllAttributes {
			v := int(math.Round(center + rng.Normal(0, 7)))
			attrs.Set(attr, career.Clamp(v, career.MinAttribute, attributeCap))
		}
		roster = append(roster, RosterPlayer{
			ID:         fmt.Sprintf("%s-p%02d", teamID, i+1),
			Name:       RandomName(rng),
			Position:   pos,
			Attributes: attrs,
		})
	}
	return roster
}
