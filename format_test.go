package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		addr string
		want string
	}{
		{":8000", "http://localhost:8000"},
		{"0.0.0.0:9000", "http://localhost:9000"},
		{"127.0.0.1:8080", "http://127.0.0.1:8080"},
		{"[::]:8000", "http://localhost:8000"},
		{"[::1]:8000", "http://[::1]:8000"},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, localURL(tt.addr))
		})
	}
}

func TestPrintBanner(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printBanner(&buf, ":8000", "/srv/decoder", []string{"decoders", "tapes"})

	assert.Equal(t, "Serving on http://localhost:8000\n"+
		"  Static files: /srv/decoder\n"+
		"  Sheet API:    /api/sheet/decoders, /api/sheet/tapes\n"+
		"  Image proxy:  /api/image/<file_id>\n", buf.String())
}
