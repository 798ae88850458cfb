package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Platform identifiers.
const (
	platformLinux  = "linux"
	platformDarwin = "darwin"
)

// Application directory name used across all platforms.
const appName = "n26-gateway"

// Config file name.
const configFileName = "config.toml"

// DefaultConfigDir returns the platform-specific directory for config files.
// On Linux, respects XDG_CONFIG_HOME (defaults to ~/.config/n26-gateway).
// On macOS, uses ~/Library/Application Support/n26-gateway.
// Other platforms fall back to ~/.config/n26-gateway.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch runtime.GOOS {
	case platformLinux:
		return linuxConfigDir(home)
	case platformDarwin:
		return filepath.Join(home, "Library", "Application Support", appName)
	default:
		return filepath.Join(home, ".config", appName)
	}
}

// linuxConfigDir returns the XDG-compliant config directory for Linux.
func linuxConfigDir(home string) string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	return filepath.Join(home, ".config", appName)
}

// DefaultConfigPath returns the full path to the default config file.
// This is used as the fallback when neither N26_GATEWAY_CONFIG nor
// --config is specified.
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}

	return filepath.Join(dir, configFileName)
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Paths without a tilde prefix, and paths when the home directory cannot be
// determined, are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return home
	}

	return filepath.Join(home, path[2:])
}

// ExecutableDir returns the directory containing the running binary, or
// "." if it cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}

	if resolved, evalErr := filepath.EvalSymlinks(exe); evalErr == nil {
		exe = resolved
	}

	return filepath.Dir(exe)
}

// DefaultStaticDir returns the static file root used when static_dir is not
// set: the executable's directory. It returns "" when that directory is a Go
// bin directory (GOBIN, GOPATH/bin or ~/go/bin), which holds other binaries
// rather than site files; serve then requires an explicit static_dir.
func DefaultStaticDir() string {
	dir := ExecutableDir()
	if IsGoBinDir(dir) {
		return ""
	}

	return dir
}

// IsGoBinDir reports whether dir is where `go install` places binaries.
func IsGoBinDir(dir string) bool {
	var candidates []string

	if gobin := os.Getenv("GOBIN"); gobin != "" {
		candidates = append(candidates, gobin)
	}

	if gopath := os.Getenv("GOPATH"); gopath != "" {
		for _, p := range filepath.SplitList(gopath) {
			candidates = append(candidates, filepath.Join(p, "bin"))
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, "go", "bin"))
	}

	target := cleanPath(dir)
	for _, c := range candidates {
		if c != "" && cleanPath(c) == target {
			return true
		}
	}

	return false
}

// cleanPath resolves symlinks where possible so aliases compare equal.
func cleanPath(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}

	return filepath.Clean(p)
}
