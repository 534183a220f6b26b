package config

import "time"

// Config holds runtime settings for the Translingo CLI.
//
// Units: RequestTimeout and InitDelay are time.Duration values.
type Config struct {
	ServerURL               string        `env:"TRANSLINGO_SERVER_URL"`
	DatabasePath            string        `env:"TRANSLINGO_DB"`
	RequestTimeout          time.Duration `env:"TRANSLINGO_REQUEST_TIMEOUT"`
	GuestLimit              int           `env:"TRANSLINGO_GUEST_LIMIT"`
	Locale                  string        `env:"TRANSLINGO_LOCALE"`
	ResetGuestQuotaOnSignIn bool          `env:"TRANSLINGO_RESET_QUOTA_ON_SIGN_IN"`
	InitDelay               time.Duration `env:"TRANSLINGO_INIT_DELAY"`
	LogLevel                string        `env:"TRANSLINGO_LOG_LEVEL"`
	LogFormat               string        `env:"TRANSLINGO_LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.DatabasePath = "translingo.db"
	c.RequestTimeout = 15 * time.Second
	c.GuestLimit = 5
	c.Locale = ""
	c.ResetGuestQuotaOnSignIn = false
	c.InitDelay = 100 * time.Millisecond
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
