package cfg

import "time"

type Cfg struct {
	// Feed configuration
	URL            string
	Interval       time.Duration
	Timeout        time.Duration
	UserAgent      string
	FeedConfig     string
	LedgerCapacity int

	// History and API
	DBPath       string
	Listen       string
	BaseURL      string
	APIAccessKey string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}

// HistoryEnabled reports whether reported notifications are persisted.
func (c *Cfg) HistoryEnabled() bool {
	return c.DBPath != ""
}

// APIEnabled reports whether the status HTTP API should be served.
func (c *Cfg) APIEnabled() bool {
	return c.Listen != ""
}
