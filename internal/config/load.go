package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads and parses a TOML config file, validates it, and returns the
// resulting Config. Unknown keys are treated as fatal errors with "did you
// mean?" suggestions. A [sheets] table, when present, replaces the built-in
// sheet mapping entirely rather than merging with it.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Sheets = nil

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := checkUnknownKeys(&md); err != nil {
		return nil, err
	}

	if len(cfg.Sheets) == 0 {
		cfg.Sheets = DefaultSheets()
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault reads a TOML config file if it exists, otherwise returns
// a Config populated with all default values.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// Resolve loads configuration and applies the four-layer override chain:
// defaults -> config file -> environment variables -> CLI flags.
// It returns a fully resolved and validated configuration ready for use.
func Resolve(env EnvOverrides, cli CLIOverrides) (*Resolved, error) {
	// 1. Resolve config path: CLI > env > default
	cfgPath := DefaultConfigPath()
	if env.ConfigPath != "" {
		cfgPath = env.ConfigPath
	}

	if cli.ConfigPath != "" {
		cfgPath = cli.ConfigPath
	}

	// 2. Load config file (returns defaults if no file exists)
	cfg, err := LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	// 3. Apply env overrides
	if env.Listen != "" {
		cfg.Listen = env.Listen
	}

	if env.CredentialsFile != "" {
		cfg.CredentialsFile = env.CredentialsFile
	}

	// 4. Apply CLI overrides
	if cli.Listen != "" {
		cfg.Listen = cli.Listen
	}

	if cli.StaticDir != "" {
		cfg.StaticDir = cli.StaticDir
	}

	if cli.CredentialsFile != "" {
		cfg.CredentialsFile = cli.CredentialsFile
	}

	// 5. Re-validate: overrides can introduce values the file never had.
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return newResolved(cfg, cfgPath)
}
