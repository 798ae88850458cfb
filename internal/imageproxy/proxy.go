// Package imageproxy fetches images from a file store, halves their
// dimensions, re-encodes them as PNG, and caches the result by file id.
package imageproxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"regexp"

	"github.com/dustin/go-humanize"
)

// defaultDeclaredMIME is assumed when the store reports no MIME type. It is
// only logged: the served type is always OutputMIME.
const defaultDeclaredMIME = "image/png"

// ErrInvalidID is returned for file ids outside [a-zA-Z0-9_-]+.
var ErrInvalidID = errors.New("imageproxy: invalid file id")

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidID reports whether fileID is safe to pass to the file store.
func ValidID(fileID string) bool {
	return validID.MatchString(fileID)
}

// FileStore reads file metadata and content. Defined at the consumer;
// *google.DriveClient is the production implementation.
type FileStore interface {
	MimeType(ctx context.Context, fileID string) (string, error)
	Download(ctx context.Context, fileID string, w io.Writer) (int64, error)
}

// Proxy serves downscaled images through a Cache.
type Proxy struct {
	store  FileStore
	cache  Cache
	logger *slog.Logger

	// transform converts downloaded bytes to the served image. Defaults to
	// Downscale; tests override it to count or fail transformations.
	transform func([]byte) ([]byte, image.Point, error)
}

// New creates a Proxy. A nil cache gets a fresh MemoryCache.
func New(store FileStore, cache Cache, logger *slog.Logger) *Proxy {
	if logger == nil {
		logger = slog.Default()
	}

	if cache == nil {
		cache = NewMemoryCache()
	}

	return &Proxy{
		store:     store,
		cache:     cache,
		logger:    logger,
		transform: Downscale,
	}
}

// Fetch returns the transformed image for fileID and whether it was served
// from the cache. On a miss it fetches metadata, downloads the content,
// transforms it, and caches the result. Any failure leaves the cache
// untouched so the next request starts over. Concurrent misses for the same
// id are not coalesced: each performs the full fetch and the last Put wins.
func (p *Proxy) Fetch(ctx context.Context, fileID string) (Entry, bool, error) {
	if !ValidID(fileID) {
		return Entry{}, false, fmt.Errorf("%w: %q", ErrInvalidID, fileID)
	}

	if e, ok := p.cache.Get(fileID); ok {
		return e, true, nil
	}

	declared, err := p.store.MimeType(ctx, fileID)
	if err != nil {
		return Entry{}, false, fmt.Errorf("imageproxy: fetching metadata: %w", err)
	}

	if declared == "" {
		declared = defaultDeclaredMIME
	}

	var buf bytes.Buffer
	if _, err := p.store.Download(ctx, fileID, &buf); err != nil {
		return Entry{}, false, fmt.Errorf("imageproxy: downloading: %w", err)
	}

	data, size, err := p.transform(buf.Bytes())
	if err != nil {
		return Entry{}, false, err
	}

	e := Entry{Data: data, MimeType: OutputMIME}
	p.cache.Put(fileID, e)

	p.logger.Info("image transformed",
		slog.String("file_id", fileID),
		slog.String("declared_mime", declared),
		slog.String("source_size", humanize.Bytes(uint64(buf.Len()))),
		slog.String("output_size", humanize.Bytes(uint64(len(data)))),
		slog.Int("width", size.X),
		slog.Int("height", size.Y),
		slog.Int("cache_entries", p.cache.Len()),
		slog.Int64("cache_bytes", p.cache.Size()),
	)

	return e, false, nil
}
