package config

import (
	"fmt"
	"maps"
	"time"
)

// Resolved is the effective configuration after the override chain has been
// applied: paths are expanded and durations are parsed. Commands consume
// this rather than the raw Config.
type Resolved struct {
	ConfigPath string

	Listen          string
	StaticDir       string
	PIDFile         string
	ShutdownTimeout time.Duration

	CredentialsFile string
	SpreadsheetID   string
	Sheets          map[string]string

	CacheMaxAge time.Duration

	LogLevel  string
	LogFormat string

	ConnectTimeout time.Duration
	DataTimeout    time.Duration
	UserAgent      string
}

// newResolved converts a validated Config into a Resolved. Validate has
// already checked every duration, so parse errors here indicate a bug.
func newResolved(cfg *Config, cfgPath string) (*Resolved, error) {
	r := &Resolved{
		ConfigPath:      cfgPath,
		Listen:          cfg.Listen,
		StaticDir:       ExpandHome(cfg.StaticDir),
		PIDFile:         ExpandHome(cfg.PIDFile),
		CredentialsFile: ExpandHome(cfg.CredentialsFile),
		SpreadsheetID:   cfg.SpreadsheetID,
		Sheets:          maps.Clone(cfg.Sheets),
		LogLevel:        cfg.LogLevel,
		LogFormat:       cfg.LogFormat,
		UserAgent:       cfg.UserAgent,
	}

	if r.StaticDir == "" {
		r.StaticDir = DefaultStaticDir()
	}

	durations := []struct {
		key string
		val string
		dst *time.Duration
	}{
		{"shutdown_timeout", cfg.ShutdownTimeout, &r.ShutdownTimeout},
		{"cache_max_age", cfg.CacheMaxAge, &r.CacheMaxAge},
		{"connect_timeout", cfg.ConnectTimeout, &r.ConnectTimeout},
		{"data_timeout", cfg.DataTimeout, &r.DataTimeout},
	}

	for _, d := range durations {
		parsed, err := time.ParseDuration(d.val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.key, err)
		}

		*d.dst = parsed
	}

	return r, nil
}
