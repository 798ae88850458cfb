// Package config implements TOML configuration loading, validation, and
// path resolution for n26-gateway. It supports a four-layer override chain
// (defaults -> config file -> environment -> CLI flags). The config file is
// flat: every key lives at the top level except the [sheets] table, which
// maps logical sheet names to range expressions.
package config

// Config is the top-level configuration structure parsed from a TOML file.
// Sections are embedded so their keys decode at the top level of the file.
type Config struct {
	ServerConfig
	GoogleConfig
	ImageConfig
	LoggingConfig
	NetworkConfig

	// Sheets maps a logical sheet name (the {name} in /api/sheet/{name})
	// to a range expression such as "Data Tapes!A:D".
	Sheets map[string]string `toml:"sheets"`
}

// ServerConfig controls the HTTP listener and static file root.
type ServerConfig struct {
	Listen          string `toml:"listen"`
	StaticDir       string `toml:"static_dir"`
	PIDFile         string `toml:"pid_file"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// GoogleConfig identifies the service-account key and the spreadsheet the
// sheet endpoints read from.
type GoogleConfig struct {
	CredentialsFile string `toml:"credentials_file"`
	SpreadsheetID   string `toml:"spreadsheet_id"`
}

// ImageConfig controls the image proxy responses.
type ImageConfig struct {
	CacheMaxAge string `toml:"cache_max_age"`
}

// LoggingConfig controls log output: level and format.
type LoggingConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// NetworkConfig controls the outbound HTTP client used for Google APIs.
type NetworkConfig struct {
	ConnectTimeout string `toml:"connect_timeout"`
	DataTimeout    string `toml:"data_timeout"`
	UserAgent      string `toml:"user_agent"`
}

// CLIOverrides holds values from CLI flags that override config file and
// environment settings. Empty strings mean "not specified".
type CLIOverrides struct {
	ConfigPath      string // --config
	Listen          string // --listen
	StaticDir       string // --static-dir
	CredentialsFile string // --credentials
}
