package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// Validation range constants.
const (
	minShutdownTimeout = 1 * time.Second
	minConnectTimeout  = 1 * time.Second
	minDataTimeout     = 5 * time.Second
	minCacheMaxAge     = 1 * time.Second
)

// Validate checks all configuration values and returns all errors found.
// It accumulates every error rather than stopping at the first, so users
// see a complete report and can fix all issues in one pass.
func Validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateServer(&cfg.ServerConfig)...)
	errs = append(errs, validateGoogle(&cfg.GoogleConfig)...)
	errs = append(errs, validateSheets(cfg.Sheets)...)
	errs = append(errs, validateImage(&cfg.ImageConfig)...)
	errs = append(errs, validateLogging(&cfg.LoggingConfig)...)
	errs = append(errs, validateNetwork(&cfg.NetworkConfig)...)

	return errors.Join(errs...)
}

func validateServer(s *ServerConfig) []error {
	var errs []error

	if _, _, err := net.SplitHostPort(s.Listen); err != nil {
		errs = append(errs, fmt.Errorf("listen: %w", err))
	}

	errs = append(errs, validateMinDuration("shutdown_timeout", s.ShutdownTimeout, minShutdownTimeout)...)

	return errs
}

func validateGoogle(g *GoogleConfig) []error {
	var errs []error

	if g.CredentialsFile == "" {
		errs = append(errs, errors.New("credentials_file: must not be empty"))
	}

	if g.SpreadsheetID == "" {
		errs = append(errs, errors.New("spreadsheet_id: must not be empty"))
	}

	return errs
}

func validateSheets(sheets map[string]string) []error {
	var errs []error

	for name, rng := range sheets {
		if name == "" || strings.Contains(name, "/") {
			errs = append(errs, fmt.Errorf("sheets: invalid sheet name %q", name))
		}

		if rng == "" {
			errs = append(errs, fmt.Errorf("sheets.%s: range must not be empty", name))
		}
	}

	return errs
}

// Cache-Control max-age is whole seconds, so anything shorter would round
// to zero and the handler would fall back to its own default.
func validateImage(i *ImageConfig) []error {
	return validateMinDuration("cache_max_age", i.CacheMaxAge, minCacheMaxAge)
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"auto": true,
	"text": true,
	"json": true,
}

func validateLogging(l *LoggingConfig) []error {
	var errs []error

	if !validLogLevels[l.LogLevel] {
		errs = append(errs, fmt.Errorf("log_level: must be one of debug, info, warn, error; got %q", l.LogLevel))
	}

	if !validLogFormats[l.LogFormat] {
		errs = append(errs, fmt.Errorf("log_format: must be one of auto, text, json; got %q", l.LogFormat))
	}

	return errs
}

func validateNetwork(n *NetworkConfig) []error {
	var errs []error

	errs = append(errs, validateMinDuration("connect_timeout", n.ConnectTimeout, minConnectTimeout)...)
	errs = append(errs, validateMinDuration("data_timeout", n.DataTimeout, minDataTimeout)...)

	return errs
}

// validateMinDuration parses a duration string and checks it against a
// lower bound.
func validateMinDuration(key, value string, minimum time.Duration) []error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return []error{fmt.Errorf("%s: invalid duration %q: %w", key, value, err)}
	}

	if d < minimum {
		return []error{fmt.Errorf("%s: must be at least %s, got %s", key, minimum, value)}
	}

	return nil
}
