package config

// Default values for configuration options. These are "layer 0" of the
// override chain and match the behaviour of the gateway without any config
// file: listen on port 8000, read the N26 decoder spreadsheet, and expose
// the tapes and decoders ranges.
const (
	defaultListen          = ":8000"
	defaultShutdownTimeout = "10s"
	defaultCredentialsFile = "~/.mcp-credentials/service-account.json"
	defaultSpreadsheetID   = "1MRDIEWWvGdmcUsqj7w4OimqAN2s0e2zk2Eb7R24hV58"
	defaultCacheMaxAge     = "24h"
	defaultLogLevel        = "info"
	defaultLogFormat       = "auto"
	defaultConnectTimeout  = "10s"
	defaultDataTimeout     = "60s"
	defaultUserAgent       = "n26-gateway/0.1"
)

// DefaultSheets returns the built-in logical sheet name to range mapping.
func DefaultSheets() map[string]string {
	return map[string]string{
		"tapes":    "Data Tapes!A:D",
		"decoders": "Decoders!A:D",
	}
}

// DefaultConfig returns a Config populated with all default values.
// This is used both as the starting point for TOML decoding (so unset
// fields retain defaults) and as the fallback when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		ServerConfig:  defaultServerConfig(),
		GoogleConfig:  defaultGoogleConfig(),
		ImageConfig:   defaultImageConfig(),
		LoggingConfig: defaultLoggingConfig(),
		NetworkConfig: defaultNetworkConfig(),
		Sheets:        DefaultSheets(),
	}
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		Listen:          defaultListen,
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

func defaultGoogleConfig() GoogleConfig {
	return GoogleConfig{
		CredentialsFile: defaultCredentialsFile,
		SpreadsheetID:   defaultSpreadsheetID,
	}
}

func defaultImageConfig() ImageConfig {
	return ImageConfig{
		CacheMaxAge: defaultCacheMaxAge,
	}
}

func defaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}

func defaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		ConnectTimeout: defaultConnectTimeout,
		DataTimeout:    defaultDataTimeout,
		UserAgent:      defaultUserAgent,
	}
}
