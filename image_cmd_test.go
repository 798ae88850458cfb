package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n26decoder/gateway/internal/imageproxy"
)

type stubImages struct {
	entry imageproxy.Entry
	err   error
}

func (s stubImages) Fetch(_ context.Context, _ string) (imageproxy.Entry, bool, error) {
	return s.entry, false, s.err
}

func TestSaveImage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "abc.png")

	n, err := saveImage(context.Background(), stubImages{entry: imageproxy.Entry{
		Data:     []byte("\x89PNG fake"),
		MimeType: imageproxy.OutputMIME,
	}}, "abc", path)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG fake", string(data))
}

func TestSaveImage_FetchError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "abc.png")

	_, err := saveImage(context.Background(), stubImages{err: errors.New("google: HTTP 404: File not found")}, "abc", path)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}
