// Package config loads runtime configuration for the Translingo CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   server base URL (default http://127.0.0.1:3000)
//	-d string   local cache database path (default translingo.db)
//	-t int      request timeout in seconds (default 15)
//	-g int      guest translations per modality (default 5)
//	-l string   device locale
//	-r          reset guest counters after sign-in
//
// Environment
//
//	TRANSLINGO_SERVER_URL, TRANSLINGO_DB, TRANSLINGO_REQUEST_TIMEOUT,
//	TRANSLINGO_GUEST_LIMIT, TRANSLINGO_LOCALE (falls back to LANG),
//	TRANSLINGO_RESET_QUOTA_ON_SIGN_IN, TRANSLINGO_INIT_DELAY,
//	TRANSLINGO_LOG_LEVEL, TRANSLINGO_LOG_FORMAT
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "https://api.example.com",
//	  "database": "/var/lib/translingo/cache.db",
//	  "request_timeout": "20s",
//	  "guest_limit": 5,
//	  "locale": "he_IL.UTF-8",
//	  "reset_guest_quota_on_sign_in": false,
//	  "init_delay": "100ms",
//	  "log_level": "debug",
//	  "log_format": "json"
//	}
package config
