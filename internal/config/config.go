// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/robalobadob/memory/apps/go-server/internal/board"
)

// Config is the full server configuration.
type Config struct {
	Port         string `env:"PORT" envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	DBPath       string `env:"DB_PATH" envDefault:"./data/app.db"`
	JWTSecret    string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTDays      int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName   string `env:"COOKIE_NAME" envDefault:"memory_token"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	Production   bool   `env:"PRODUCTION" envDefault:"false"`
	DailySalt    string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	Board Board `envPrefix:"BOARD_"`
}

// Board holds board defaults and timings.
type Board struct {
	Rows      int    `env:"ROWS" envDefault:"4"`
	Columns   int    `env:"COLUMNS" envDefault:"4"`
	MaxCards  int    `env:"MAX_CARDS" envDefault:"64"`
	ValuePool string `env:"VALUE_POOL_FILE"`

	SpawnDelayStep        time.Duration `env:"SPAWN_DELAY_STEP" envDefault:"50ms"`
	SpawnHold             time.Duration `env:"SPAWN_HOLD" envDefault:"3s"`
	MoveDuration          time.Duration `env:"MOVE_DURATION" envDefault:"1s"`
	IntroDelayStep        time.Duration `env:"INTRO_DELAY_STEP" envDefault:"100ms"`
	IntroHoldDuration     time.Duration `env:"INTRO_HOLD" envDefault:"5s"`
	MismatchFlipBackDelay time.Duration `env:"MISMATCH_DELAY" envDefault:"400ms"`
	FlipDuration          time.Duration `env:"FLIP_DURATION" envDefault:"400ms"`
	ResetDelay            time.Duration `env:"RESET_DELAY" envDefault:"400ms"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Timing converts the configured durations into board timings.
func (b Board) Timing() board.Timing {
	return board.Timing{
		SpawnDelayStep:        b.SpawnDelayStep,
		SpawnHold:             b.SpawnHold,
		MoveDuration:          b.MoveDuration,
		IntroDelayStep:        b.IntroDelayStep,
		IntroHoldDuration:     b.IntroHoldDuration,
		MismatchFlipBackDelay: b.MismatchFlipBackDelay,
		FlipDuration:          b.FlipDuration,
		ResetDelay:            b.ResetDelay,
	}
}
