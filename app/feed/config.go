package feed

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRefreshInterval = 30 // seconds
	DefaultTimeout         = 10 // seconds
)

// NewConfig builds a feed definition without filters.
func NewConfig(name, feedURL string, refreshInterval, timeout int) (*Config, error) {
	feedConfig := &Config{
		Name: name,
		URL:  feedURL,
		Settings: ConfigSettings{
			RefreshInterval: refreshInterval,
			Timeout:         timeout,
		},
	}
	setDefaults(feedConfig)

	if err := validateConfig(feedConfig); err != nil {
		return nil, fmt.Errorf("invalid feed config: %w", err)
	}

	return feedConfig, nil
}

// LoadConfig reads a YAML feed definition. The feed name is the file name
// without extension. Settings left out of the file take the fallback values.
func LoadConfig(path string, fallback *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var feedConfig Config
	if err := yaml.Unmarshal(data, &feedConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Base(path)
	feedConfig.Name = strings.TrimSuffix(base, filepath.Ext(base))

	if fallback != nil {
		if feedConfig.URL == "" {
			feedConfig.URL = fallback.URL
		}
		if feedConfig.Settings.RefreshInterval == 0 {
			feedConfig.Settings.RefreshInterval = fallback.Settings.RefreshInterval
		}
		if feedConfig.Settings.Timeout == 0 {
			feedConfig.Settings.Timeout = fallback.Settings.Timeout
		}
	}
	setDefaults(&feedConfig)

	if err := validateConfig(&feedConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &feedConfig, nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.Settings.RefreshInterval) * time.Second
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Settings.Timeout) * time.Second
}

func setDefaults(feedConfig *Config) {
	if feedConfig.Settings.RefreshInterval == 0 {
		feedConfig.Settings.RefreshInterval = DefaultRefreshInterval
	}
	if feedConfig.Settings.Timeout == 0 {
		feedConfig.Settings.Timeout = DefaultTimeout
	}
}

func validateConfig(feedConfig *Config) error {
	if feedConfig.Name == "" {
		return fmt.Errorf("feed name is required")
	}
	if feedConfig.URL == "" {
		return fmt.Errorf("feed URL is required")
	}

	parsed, err := url.Parse(feedConfig.URL)
	if err != nil {
		return fmt.Errorf("invalid feed URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("feed URL must use http or https, got %q", parsed.Scheme)
	}

	positiveFields := map[string]int{
		"refresh interval": feedConfig.Settings.RefreshInterval,
		"timeout":          feedConfig.Settings.Timeout,
	}

	for fieldName, fieldValue := range positiveFields {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	validFields := map[string]bool{
		"title":   true,
		"message": true,
		"id":      true,
	}

	for i, filter := range feedConfig.Filters {
		if !validFields[filter.Field] {
			return fmt.Errorf("invalid filter field at index %d: %s", i, filter.Field)
		}
		if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
			return fmt.Errorf("filter at index %d must have at least one include or exclude rule", i)
		}
	}

	return nil
}
