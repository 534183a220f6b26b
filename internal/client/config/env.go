package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config with TRANSLINGO_* variables. A .env file in the
// working directory is loaded first and never overrides the real
// environment. Without TRANSLINGO_LOCALE the POSIX LANG variable is used.
//
// Panics on malformed values, like the other loaders.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	if cfg.Locale == "" {
		var posix struct {
			Lang string `env:"LANG"`
		}
		if err := env.Parse(&posix); err != nil {
			panic(err)
		}
		cfg.Locale = posix.Lang
	}
}
