// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Team registry — the twelve NPB franchises with display color and league
// --------------------------------------------------------------------------

type TeamConfig struct {
	ID     string
	Color  string
	League string // "central" or "pacific"
}

const (
	LeagueCentral = "central"
	LeaguePacific = "pacific"
)

var TeamRegistry = map[string]TeamConfig{
	"giants":    {ID: "giants", Color: "#f97709", League: LeagueCentral},
	"hanshin":   {ID: "hanshin", Color: "#ffe201", League: LeagueCentral},
	"dragons":   {ID: "dragons", Color: "#002569", League: LeagueCentral},
	"baystars":  {ID: "baystars", Color: "#0091e1", League: LeagueCentral},
	"swallows":  {ID: "swallows", Color: "#98c145", League: LeagueCentral},
	"carp":      {ID: "carp", Color: "#ff0000", League: LeagueCentral},
	"hawks":     {ID: "hawks", Color: "#fcc700", League: LeaguePacific},
	"lions":     {ID: "lions", Color: "#0071c0", League: LeaguePacific},
	"eagles":    {ID: "eagles", Color: "#870010", League: LeaguePacific},
	"marines":   {ID: "marines", Color: "#c0c0c0", League: LeaguePacific},
	"Buffaloes": {ID: "Buffaloes", Color: "#000000", League: LeaguePacific},
	"fighters":  {ID: "fighters", Color: "#01609a", League: LeaguePacific},
}

// LeagueTeams returns the team IDs belonging to a league, or every team when
// league is empty.
func LeagueTeams(league string) []string {
	out := make([]string, 0, len(TeamRegistry))
	for id, t := range TeamRegistry {
		if league == "" || t.League == league {
			out = append(out, id)
		}
	}
	return out
}

// --------------------------------------------------------------------------
// Table names — single source of truth, matches schema.sql
// --------------------------------------------------------------------------

const (
	PlayerStatsTable    = "player_season_stats"
	FieldingStatsTable  = "fielding_season_stats"
	AbilityRatingsTable = "ability_ratings"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Player portrait assets: <ImageDir>/<season>/<file>.png
	ImageDir string

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", envOr("DUGOUT_DATABASE_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or DUGOUT_DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		ImageDir: envOr("IMAGE_DIR", "image"),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
