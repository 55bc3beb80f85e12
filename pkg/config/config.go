package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the process configuration read from the environment
type Config struct {
	Port            string        `env:"PORT"             envDefault:"8000"`
	GinMode         string        `env:"GIN_MODE"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	DataPath        string        `env:"DATA_PATH"        envDefault:"camps.db"`
	SavedSetSecret  string        `env:"SAVED_SET_SECRET"`
	SavedSetTTL     time.Duration `env:"SAVED_SET_TTL"    envDefault:"8760h"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT"       envDefault:"json"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"     envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"    envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadDotEnv loads the first .env found in paths. Missing files are ignored.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env", "../.env", "../../.env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load parses the environment into a Config
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SavedSetSecret == "" {
		return Config{}, fmt.Errorf("SAVED_SET_SECRET is required")
	}
	return cfg, nil
}
