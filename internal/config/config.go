// Package config reads server and renderer settings from the environment.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
)

// Config holds every setting the binaries read from the environment. A .env
// file is loaded first by the binaries through godotenv.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`
	DBPath  string `env:"DB_PATH" envDefault:"data/portfolio.db"`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	DefaultLang string `env:"DEFAULT_LANG" envDefault:"en"`

	TypeInterval   time.Duration `env:"TYPE_INTERVAL" envDefault:"100ms"`
	RainInterval   time.Duration `env:"RAIN_INTERVAL" envDefault:"100ms"`
	RainCellSize   int           `env:"RAIN_CELL_SIZE" envDefault:"20"`
	ViewportWidth  int           `env:"VIEWPORT_WIDTH" envDefault:"1280"`
	ViewportHeight int           `env:"VIEWPORT_HEIGHT" envDefault:"720"`
	NoticeTTL      time.Duration `env:"NOTICE_TTL" envDefault:"5s"`

	ViewIdleTimeout time.Duration `env:"VIEW_IDLE_TIMEOUT" envDefault:"30m"`
	MaxViews        int           `env:"MAX_VIEWS" envDefault:"10000"`
	RetentionMonths int           `env:"RETENTION_MONTHS" envDefault:"12"`
	CleanupSchedule string        `env:"CLEANUP_SCHEDULE" envDefault:"@daily"`
	SweepSchedule   string        `env:"SWEEP_SCHEDULE" envDefault:"@every 5m"`
}

// Load parses the environment into a Config. Missing admin credentials fall
// back to development defaults with a warning, as they always have.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
		log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
		log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := language.Parse(c.DefaultLang); err != nil {
		return fmt.Errorf("DEFAULT_LANG %q: %w", c.DefaultLang, err)
	}
	if c.RetentionMonths <= 0 {
		return fmt.Errorf("RETENTION_MONTHS must be positive, got %d", c.RetentionMonths)
	}
	if c.RainCellSize <= 0 {
		return fmt.Errorf("RAIN_CELL_SIZE must be positive, got %d", c.RainCellSize)
	}
	return nil
}

// Lang returns DefaultLang as a tag. Load has already validated it.
func (c Config) Lang() language.Tag {
	tag, err := language.Parse(c.DefaultLang)
	if err != nil {
		return language.English
	}
	return tag
}
