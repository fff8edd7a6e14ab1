package config

import (
	"fmt"

	"github.com/riskibarqy/footy-career/internal/engine"
)

// loadGameConfig overlays GAME_* variables on the engine defaults and validates the result.
func loadGameConfig() (engine.GameConfig, error) {
	cfg := engine.DefaultConfig()
	fields := []struct {
		key string
		dst *int
	}{
		{key: "GAME_SEASON_LENGTH", dst: &cfg.SeasonLength},
		{key: "GAME_TEAM_COUNT", dst: &cfg.TeamCount},
		{key: "GAME_FINALS_SIZE", dst: &cfg.FinalsSize},
		{key: "GAME_STARTING_ATTRIBUTE_POINTS", dst: &cfg.StartingAttributePoints},
		{key: "GAME_ATTRIBUTE_CAP", dst: &cfg.AttributeCap},
		{key: "GAME_STARTING_AGE", dst: &cfg.StartingAge},
		{key: "GAME_START_YEAR", dst: &cfg.StartYear},
		{key: "GAME_OFFER_EXPIRY_ROUNDS", dst: &cfg.OfferExpiryRounds},
		{key: "GAME_STARTING_WALLET", dst: &cfg.StartingWallet},
		{key: "GAME_STARTING_SKILL_POINTS", dst: &cfg.StartingSkillPoints},
	}
	for _, f := range fields {
		v, err := getEnvAsInt(f.key, *f.dst)
		if err != nil {
			return engine.GameConfig{}, fmt.Errorf("parse %s: %w", f.key, err)
		}
		*f.dst = v
	}

	if err := cfg.Validate(); err != nil {
		return engine.GameConfig{}, fmt.Errorf("game config: %w", err)
	}
	return cfg, nil
}
