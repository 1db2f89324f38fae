package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config captures everything the process needs at startup. It is built once
// in main and passed by injection; no package reads the environment directly.
type Config struct {
	Addr string

	// DatabaseURL selects the Postgres-backed stores. Empty means in-memory
	// stores, which is what local development and most tests run on.
	DatabaseURL string

	// RedisURL enables the weekly-summary cache. Empty disables caching.
	RedisURL string

	// Timezone is the civil calendar all deadlines, weeks and distinct-day
	// counts are computed in.
	Timezone *time.Location

	// AdminToken protects the balance-override and roster endpoints.
	AdminToken string

	// MisfireGrace bounds how late a missed deadline occurrence may still
	// fire after a restart.
	MisfireGrace time.Duration

	// Chat-platform identifiers. The toggle filter only accepts reaction
	// signals for this exact channel and message.
	GuildID        string
	RulesChannelID string
	RulesMessageID string

	// SummaryCacheTTL bounds staleness of cached weekly summaries.
	SummaryCacheTTL time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:            getenv("REGIMEN_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		AdminToken:      os.Getenv("ADMIN_TOKEN"),
		GuildID:         os.Getenv("GUILD_ID"),
		RulesChannelID:  os.Getenv("RULES_CHANNEL_ID"),
		RulesMessageID:  os.Getenv("RULES_MESSAGE_ID"),
		MisfireGrace:    60 * time.Second,
		SummaryCacheTTL: 5 * time.Minute,
	}

	if raw := os.Getenv("MISFIRE_GRACE_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs < 0 {
			return Config{}, fmt.Errorf("invalid MISFIRE_GRACE_SECONDS %q", raw)
		}
		cfg.MisfireGrace = time.Duration(secs) * time.Second
	}

	loc := time.Local
	if name := os.Getenv("TIMEZONE"); name != "" {
		var err error
		loc, err = time.LoadLocation(name)
		if err != nil {
			return Config{}, fmt.Errorf("load timezone %q: %w", name, err)
		}
	}
	cfg.Timezone = loc

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
