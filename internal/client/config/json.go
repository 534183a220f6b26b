package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/translingo/internal/flagx"
	"github.com/dmitrijs2005/translingo/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds.
type JsonConfig struct {
	ServerURL               string          `json:"server_url"`
	DatabasePath            string          `json:"database"`
	RequestTimeout          timex.Duration  `json:"request_timeout"`
	GuestLimit              int             `json:"guest_limit"`
	Locale                  string          `json:"locale"`
	ResetGuestQuotaOnSignIn *bool           `json:"reset_guest_quota_on_sign_in"`
	InitDelay               *timex.Duration `json:"init_delay"`
	LogLevel                string          `json:"log_level"`
	LogFormat               string          `json:"log_format"`
}

// parseJson overlays Config with the fields present in the JSON file given
// with -c or -config. Absent fields keep their current value.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.GuestLimit > 0 {
		cfg.GuestLimit = jc.GuestLimit
	}
	if jc.Locale != "" {
		cfg.Locale = jc.Locale
	}
	if jc.ResetGuestQuotaOnSignIn != nil {
		cfg.ResetGuestQuotaOnSignIn = *jc.ResetGuestQuotaOnSignIn
	}
	if jc.InitDelay != nil {
		cfg.InitDelay = jc.InitDelay.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
}
