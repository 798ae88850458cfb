package config

import "os"

// Environment variable names for overrides.
const (
	EnvConfig      = "N26_GATEWAY_CONFIG"
	EnvListen      = "N26_GATEWAY_LISTEN"
	EnvCredentials = "N26_GATEWAY_CREDENTIALS"
)

// EnvOverrides holds values derived from environment variables.
type EnvOverrides struct {
	ConfigPath      string // N26_GATEWAY_CONFIG: override config file path
	Listen          string // N26_GATEWAY_LISTEN: listen address override
	CredentialsFile string // N26_GATEWAY_CREDENTIALS: service-account key path
}

// ReadEnvOverrides reads environment variables and returns any overrides found.
// This does not modify the Config; Resolve applies the relevant fields.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath:      os.Getenv(EnvConfig),
		Listen:          os.Getenv(EnvListen),
		CredentialsFile: os.Getenv(EnvCredentials),
	}
}
