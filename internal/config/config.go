// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvExpected   = "PLAYER_LOCATOR_EXPECTED"
	EnvDebug      = "PLAYER_LOCATOR_DEBUG"
	EnvLogLevel   = "PLAYER_LOCATOR_LOG_LEVEL"
	EnvLogFile    = "PLAYER_LOCATOR_LOG_FILE"
	EnvTeamAColor = "PLAYER_LOCATOR_TEAM_A_COLOR"
	EnvTeamBColor = "PLAYER_LOCATOR_TEAM_B_COLOR"
)

// Config holds process-wide settings. Command-line flags override it.
type Config struct {
	Expected   int    `validate:"min=1,max=200"`
	Debug      bool
	LogLevel   string `validate:"oneof=trace debug info warn warning error"`
	LogFile    string
	TeamAColor string `validate:"hexcolor"`
	TeamBColor string `validate:"hexcolor"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Expected:   22,
		LogLevel:   "info",
		TeamAColor: "#d62728",
		TeamBColor: "#1f77b4",
	}
}

var validate = validator.New()

// Load reads envFiles (or ./.env when none are given) into the process
// environment without overriding variables already set, then builds and
// validates a Config. A missing ./.env is not an error; a missing explicit
// file is.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	cfg := Default()
	if v, ok := os.LookupEnv(EnvExpected); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvExpected, err)
		}
		cfg.Expected = n
	}
	if v, ok := os.LookupEnv(EnvDebug); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvDebug, err)
		}
		cfg.Debug = b
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		cfg.LogFile = v
	}
	if v, ok := os.LookupEnv(EnvTeamAColor); ok {
		cfg.TeamAColor = v
	}
	if v, ok := os.LookupEnv(EnvTeamBColor); ok {
		cfg.TeamBColor = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
