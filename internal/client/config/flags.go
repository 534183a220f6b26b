package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/translingo/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server base URL
//	-d string   path of the local cache database
//	-t int      request timeout in seconds
//	-g int      guest translations allowed per modality
//	-l string   device locale, e.g. he_IL.UTF-8
//	-r          reset guest counters after a successful sign-in
//
// The function filters os.Args to the flags it knows about, using
// flagx.Filter, so -c/-config and foreign flags are ignored.
func parseFlags(cfg *Config) {
	args := flagx.Filter(os.Args[1:], []string{"-a", "-d", "-t", "-g", "-l"}, []string{"-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local cache database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.GuestLimit, "g", cfg.GuestLimit, "guest translations per modality")
	fs.StringVar(&cfg.Locale, "l", cfg.Locale, "device locale")
	fs.BoolVar(&cfg.ResetGuestQuotaOnSignIn, "r", cfg.ResetGuestQuotaOnSignIn, "reset guest quota on sign-in")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
