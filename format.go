package main

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/n26decoder/gateway/internal/gateway"
)

// statusf prints a status message to stderr unless quiet mode is set.
func statusf(quiet bool, format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// localURL turns a listen address into something a browser can open.
// An empty or unspecified host becomes localhost.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}

	return "http://" + net.JoinHostPort(host, port)
}

// printBanner writes the startup summary: where the gateway listens and
// which endpoints it exposes.
func printBanner(w io.Writer, addr, staticDir string, sheetNames []string) {
	endpoints := make([]string, 0, len(sheetNames))
	for _, name := range sheetNames {
		endpoints = append(endpoints, gateway.SheetPrefix+name)
	}

	fmt.Fprintf(w, "Serving on %s\n", localURL(addr))
	fmt.Fprintf(w, "  Static files: %s\n", staticDir)
	fmt.Fprintf(w, "  Sheet API:    %s\n", strings.Join(endpoints, ", "))
	fmt.Fprintf(w, "  Image proxy:  %s<file_id>\n", gateway.ImagePrefix)
}
