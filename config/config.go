package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"evaluator/database"
)

// Config holds all application configuration.
type Config struct {
	// Database configuration
	DatabaseURL  string `env:"DATABASE_URL,required,notEmpty"`
	DatabaseName string `env:"DATABASE_NAME"`

	// Crawl configuration
	OfficialsFile   string `env:"OFFICIALS_FILE"`
	WorkshopEnabled bool   `env:"WORKSHOP_ENABLED" envDefault:"true"`
	MaxLevels       int    `env:"MAX_LEVELS" envDefault:"0"` // 0 = unlimited
	MaxPages        int    `env:"MAX_PAGES" envDefault:"1000"`
	GameModeID      int    `env:"GAME_MODE_ID" envDefault:"1"`

	// Steam endpoints
	CommunityBaseURL   string `env:"STEAM_COMMUNITY_URL" envDefault:"https://steamcommunity.com"`
	WebAPIBaseURL      string `env:"STEAM_WEBAPI_URL" envDefault:"https://api.steampowered.com"`
	LeaderboardBaseURL string `env:"LEADERBOARD_URL,required,notEmpty"`
	WebAPIKey          string `env:"STEAM_WEBAPI_KEY"`
	AppID              int    `env:"STEAM_APP_ID" envDefault:"233610"`

	// Retry policy knobs
	FetchRetryInterval time.Duration `env:"FETCH_RETRY_INTERVAL" envDefault:"1s"`
	FetchRetryBudget   time.Duration `env:"FETCH_RETRY_BUDGET" envDefault:"10s"`
	PageProbeInterval  time.Duration `env:"PAGE_PROBE_INTERVAL" envDefault:"5s"`
	PageProbeAttempts  int           `env:"PAGE_PROBE_ATTEMPTS" envDefault:"5"`

	// Scoring policy knobs
	MaxAward      int `env:"SCORING_MAX_AWARD" envDefault:"1000"`
	FullBoardSize int `env:"SCORING_FULL_BOARD_SIZE" envDefault:"20"`
	DecayBase     int `env:"SCORING_DECAY_BASE" envDefault:"3"`
	DecayScale    int `env:"SCORING_DECAY_SCALE" envDefault:"25"`
	PlayerFloor   int `env:"SCORING_PLAYER_FLOOR" envDefault:"100"`
	LevelFloor    int `env:"SCORING_LEVEL_FLOOR" envDefault:"20"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	return &cfg, nil
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}
