package feed

import (
	"time"
)

// Feed processing types

type Metadata struct {
	Title     string
	Link      string
	UpdatedAt *time.Time
}

// Entry is a read-only view of one parsed feed entry, in publisher order.
type Entry struct {
	ID          string
	Link        string
	Title       string
	PublishedAt *time.Time
	UpdatedAt   *time.Time
	Summary     string
	Contents    []string // content block values, first one wins
}

// Record is a normalized entry ready to be reported. It is passed by value;
// the filterer annotates its own copy with IsFiltered and FilterReason.
type Record struct {
	ID      string
	Time    time.Time // UTC
	Title   string
	Message string

	IsFiltered   bool
	FilterReason string
}

// Configuration types

type Config struct {
	Name     string         // Derived from filename (without extension)
	URL      string         `yaml:"url"`
	Settings ConfigSettings `yaml:"settings"`
	Filters  []ConfigFilter `yaml:"filters"`
}

type ConfigSettings struct {
	RefreshInterval int `yaml:"refresh_interval"` // seconds
	Timeout         int `yaml:"timeout"`          // seconds
}

type ConfigFilter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}
