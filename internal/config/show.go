package config

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"
)

// RenderEffective writes the resolved configuration to w as annotated
// TOML-like text, showing the values in force after defaults, the config
// file, environment variables and CLI flags have been applied.
func RenderEffective(r *Resolved, w io.Writer) error {
	ew := &errWriter{w: w}

	if r.ConfigPath != "" {
		ew.printf("# Effective configuration (file: %s)\n\n", r.ConfigPath)
	} else {
		ew.printf("# Effective configuration (built-in defaults)\n\n")
	}

	ew.printf("listen           = %q\n", r.Listen)
	ew.printf("static_dir       = %q\n", r.StaticDir)

	if r.PIDFile != "" {
		ew.printf("pid_file         = %q\n", r.PIDFile)
	}

	ew.printf("shutdown_timeout = %q\n", r.ShutdownTimeout.String())
	ew.printf("credentials_file = %q\n", r.CredentialsFile)
	ew.printf("spreadsheet_id   = %q\n", r.SpreadsheetID)
	ew.printf("cache_max_age    = %q\n", r.CacheMaxAge.String())
	ew.printf("log_level        = %q\n", r.LogLevel)
	ew.printf("log_format       = %q\n", r.LogFormat)
	ew.printf("connect_timeout  = %q\n", r.ConnectTimeout.String())
	ew.printf("data_timeout     = %q\n", r.DataTimeout.String())
	ew.printf("user_agent       = %q\n", r.UserAgent)

	renderSheetsSection(ew, r.Sheets)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first write error.
// Subsequent writes after an error are no-ops.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}

	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func renderSheetsSection(ew *errWriter, sheets map[string]string) {
	ew.printf("\n[sheets]\n")

	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}

	slices.Sort(names)

	width := 0
	for _, name := range names {
		width = max(width, utf8.RuneCountInString(quoteKey(name)))
	}

	for _, name := range names {
		ew.printf("%-*s = %q\n", width, quoteKey(name), sheets[name])
	}
}

// quoteKey returns name as a TOML key, quoting it when it is not a bare key.
func quoteKey(name string) string {
	if name != "" && strings.IndexFunc(name, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-')
	}) < 0 {
		return name
	}

	return fmt.Sprintf("%q", name)
}
