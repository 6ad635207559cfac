// Package config provides configuration management for the ranking
// tracker. It defines the configuration structure, defaults, and
// validation shared by both pipelines.
package config

import (
	"time"
)

// Config holds the settings for the scrape and load pipelines.
type Config struct {
	// Scrape pipeline
	TargetURLs     []string      `mapstructure:"target_urls" yaml:"target_urls"`         // App Store listing pages to track
	RequestDelay   time.Duration `mapstructure:"request_delay" yaml:"request_delay"`     // Fixed delay between requests
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"` // HTTP request timeout
	UserAgent      string        `mapstructure:"user_agent" yaml:"user_agent"`           // HTTP User-Agent header
	SnapshotDir    string        `mapstructure:"snapshot_dir" yaml:"snapshot_dir"`       // Directory for snapshot JSON files

	// Load pipeline
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"` // Path to SQLite database file
	TopLimit     int    `mapstructure:"top_limit" yaml:"top_limit"`         // Rows in the top-apps query
	ErrorLimit   int    `mapstructure:"error_limit" yaml:"error_limit"`     // Rows in the recent-errors query

	// Logging
	LogDir   string `mapstructure:"log_dir" yaml:"log_dir"`     // Directory for daily log files
	LogLevel string `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
}

// DefaultConfig returns a configuration with default values, including
// the tracked Taiwan App Store crypto-exchange listings.
func DefaultConfig() *Config {
	return &Config{
		TargetURLs: []string{
			"https://apps.apple.com/tw/app/max-%E8%99%9B%E6%93%AC%E8%B2%A8%E5%B9%A3%E4%BA%A4%E6%98%93%E6%89%80/id1370837255",
			"https://apps.apple.com/tw/app/bitopro-%E5%B9%A3%E8%A8%97%E4%BA%A4%E6%98%93%E6%89%80-%E6%AF%94%E7%89%B9%E5%B9%A3%E8%B2%B7%E8%B3%A3%E9%A6%96%E9%81%B8/id6468561188",
			"https://apps.apple.com/tw/app/%E5%B9%A3%E5%AE%89-%E8%B2%B7%E6%AF%94%E7%89%B9%E5%B9%A3-%E5%B0%B1%E7%94%A8%E5%85%A8%E7%90%83%E7%AC%AC%E4%B8%80%E6%8A%95%E8%B3%87%E7%90%86%E8%B2%A1%E9%A6%96%E9%81%B8%E5%8A%A0%E5%AF%86%E8%B2%A8%E5%B9%A3%E4%BA%A4%E6%98%93%E6%89%80/id1436799971",
			"https://apps.apple.com/tw/app/okx-%E6%AF%94%E7%89%B9%E5%B9%A3%E6%8A%95%E8%B3%87-%E4%BD%BF%E7%94%A8%E5%85%A8%E7%90%83%E5%89%8D%E4%BA%8C%E5%8A%A0%E5%AF%86%E8%B2%A8%E5%B9%A3%E4%BA%A4%E6%98%93%E6%89%80-web3%E9%8C%A2%E5%8C%85/id1327268470",
		},
		RequestDelay:   2 * time.Second,
		RequestTimeout: 30 * time.Second,
		UserAgent:      "", // empty selects the built-in desktop browser UA
		SnapshotDir:    "app_store_ranking",
		DatabasePath:   "database/app_store.db",
		TopLimit:       10,
		ErrorLimit:     10,
		LogDir:         "log",
		LogLevel:       "info",
	}
}

// Validate checks the settings shared by both pipelines. Target URLs
// are checked by the scrape command only; the load pipeline does not
// need them.
func (c *Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}

	// Keep a minimum courtesy delay; the source site rate-limits
	// aggressive clients.
	if c.RequestDelay < time.Second {
		c.RequestDelay = time.Second
	}

	if c.DatabasePath == "" {
		return ErrEmptyDatabasePath
	}
	if c.SnapshotDir == "" {
		return ErrEmptySnapshotDir
	}

	if c.TopLimit <= 0 {
		c.TopLimit = 10
	}
	if c.ErrorLimit <= 0 {
		c.ErrorLimit = 10
	}

	return nil
}
