package cfg

import (
	"cmp"
	"fmt"
	"log/slog"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Feed configuration
	URL            string        `long:"url" env:"FEED_URL" default:"https://status.openai.com/history.atom" description:"Status feed URL (Atom or RSS)"`
	Interval       time.Duration `long:"interval" env:"POLL_INTERVAL" default:"30s" description:"Pause between the end of one poll and the start of the next"`
	Timeout        time.Duration `long:"timeout" env:"FETCH_TIMEOUT" default:"10s" description:"Per-request fetch timeout"`
	UserAgent      string        `long:"user-agent" env:"USER_AGENT" default:"StatusWatch/1.0" description:"User agent string for HTTP requests"`
	FeedConfig     string        `long:"feed-config" env:"FEED_CONFIG" description:"Optional YAML feed definition (url, settings, filters)"`
	LedgerCapacity int           `long:"ledger-capacity" env:"LEDGER_CAPACITY" default:"0" description:"Maximum remembered entry identities, 0 for unbounded"`

	// History and API
	DBPath       string `long:"db-path" env:"DB_PATH" description:"SQLite file for notification history (disabled when empty)"`
	Listen       string `long:"listen" env:"LISTEN_ADDR" description:"Address for the status HTTP API, e.g. :8080 (disabled when empty)"`
	BaseURL      string `long:"base-url" env:"BASE_URL" description:"Public base URL used for self links in the republished feed"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" description:"Timezone for API timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses command-line arguments and environment variables.
// It returns nil, nil when help was requested.
func Load() (*Cfg, error) {
	return parse(nil)
}

func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validateSeconds("interval", raw.Interval); err != nil {
		return nil, err
	}
	if err := validateSeconds("timeout", raw.Timeout); err != nil {
		return nil, err
	}
	if raw.LedgerCapacity < 0 {
		return nil, fmt.Errorf("ledger capacity must not be negative, got %d", raw.LedgerCapacity)
	}

	cfg := &Cfg{
		URL:            raw.URL,
		Interval:       raw.Interval,
		Timeout:        raw.Timeout,
		UserAgent:      raw.UserAgent,
		FeedConfig:     raw.FeedConfig,
		LedgerCapacity: raw.LedgerCapacity,
		DBPath:         raw.DBPath,
		Listen:         raw.Listen,
		BaseURL:        raw.BaseURL,
		APIAccessKey:   raw.APIAccessKey,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	return cfg, nil
}

// validateSeconds rejects durations the feed settings cannot hold, which are
// kept in whole seconds.
func validateSeconds(name string, d time.Duration) error {
	if d < time.Second {
		return fmt.Errorf("%s must be at least 1s, got %s", name, d)
	}
	if d%time.Second != 0 {
		return fmt.Errorf("%s must be a whole number of seconds, got %s", name, d)
	}
	return nil
}

func applyTimezone(timezone string) error {
	if timezone == "" {
		return nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	time.Local = loc
	slog.Debug("Timezone configured", "timezone", timezone)
	return nil
}
