// Package gateway implements the HTTP surface of n26-gateway: the sheet CSV
// endpoint, the image proxy endpoint, and static file serving for every
// other path.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/n26decoder/gateway/internal/imageproxy"
	"github.com/n26decoder/gateway/internal/sheet"
)

// Route prefixes, matched in this order.
const (
	SheetPrefix = "/api/sheet/"
	ImagePrefix = "/api/image/"
)

// defaultCacheMaxAge is the client cache lifetime for image responses when
// Options.CacheMaxAge is zero.
const defaultCacheMaxAge = 24 * time.Hour

// SheetSource renders a configured sheet as CSV.
type SheetSource interface {
	CSV(ctx context.Context, name string) (string, error)
}

// ImageSource returns a transformed image and whether it came from cache.
type ImageSource interface {
	Fetch(ctx context.Context, fileID string) (imageproxy.Entry, bool, error)
}

// Options configures NewHandler.
type Options struct {
	Sheets      SheetSource
	Images      ImageSource
	Static      http.Handler
	CacheMaxAge time.Duration
	Logger      *slog.Logger
}

// Handler dispatches requests by path prefix. It holds no per-request
// state; all mutable state lives behind Sheets and Images.
type Handler struct {
	sheets       SheetSource
	images       ImageSource
	static       http.Handler
	cacheControl string
	logger       *slog.Logger
}

// NewHandler builds the gateway handler wrapped in the access logger.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	static := opts.Static
	if static == nil {
		static = http.NotFoundHandler()
	}

	maxAge := opts.CacheMaxAge
	if maxAge <= 0 {
		maxAge = defaultCacheMaxAge
	}

	h := &Handler{
		sheets:       opts.Sheets,
		images:       opts.Images,
		static:       static,
		cacheControl: "public, max-age=" + strconv.FormatInt(int64(maxAge/time.Second), 10),
		logger:       logger,
	}

	return withAccessLog(h, logger)
}

// ServeHTTP implements http.Handler. Only GET reaches the API routes; HEAD
// is served by the static handler and every other method is rejected with
// 501, like a plain file server would.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodHead:
		h.static.ServeHTTP(w, r)
		return
	default:
		http.Error(w, "Unsupported method ("+r.Method+")", http.StatusNotImplemented)
		return
	}

	path := r.URL.Path

	switch {
	case strings.HasPrefix(path, SheetPrefix):
		h.serveSheet(w, r, strings.TrimPrefix(path, SheetPrefix))
	case strings.HasPrefix(path, ImagePrefix):
		h.serveImage(w, r, strings.TrimPrefix(path, ImagePrefix))
	default:
		h.static.ServeHTTP(w, r)
	}
}

func (h *Handler) serveSheet(w http.ResponseWriter, r *http.Request, name string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	csv, err := h.sheets.CSV(r.Context(), name)
	if err != nil {
		if errors.Is(err, sheet.ErrUnknownSheet) {
			http.Error(w, "Unknown sheet", http.StatusNotFound)
			return
		}

		h.backendError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}

func (h *Handler) serveImage(w http.ResponseWriter, r *http.Request, fileID string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	entry, hit, err := h.images.Fetch(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, imageproxy.ErrInvalidID) {
			http.Error(w, "Invalid file ID", http.StatusBadRequest)
			return
		}

		h.backendError(w, r, err)

		return
	}

	if hit {
		suppressAccessLog(r.Context())
	}

	w.Header().Set("Content-Type", entry.MimeType)
	w.Header().Set("Cache-Control", h.cacheControl)
	w.Header().Set("Content-Length", strconv.Itoa(len(entry.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(entry.Data)
}

// backendError reports a failed remote call as 502 with the raw error text.
func (h *Handler) backendError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn("backend request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)

	http.Error(w, err.Error(), http.StatusBadGateway)
}
