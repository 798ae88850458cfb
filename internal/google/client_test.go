package google

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// testOptions points a generated service at srv without authentication.
func testOptions(srv *httptest.Server, basePath string) []option.ClientOption {
	return []option.ClientOption{
		option.WithEndpoint(srv.URL + basePath),
		option.WithHTTPClient(srv.Client()),
	}
}

func newTestSheets(t *testing.T, srv *httptest.Server) *SheetsClient {
	t.Helper()

	c, err := NewSheetsClient(context.Background(), "sheet-1", "test-agent", nil, testOptions(srv, "/")...)
	require.NoError(t, err)

	return c
}

func newTestDrive(t *testing.T, srv *httptest.Server) *DriveClient {
	t.Helper()

	c, err := NewDriveClient(context.Background(), "test-agent", nil, testOptions(srv, "/drive/v3/")...)
	require.NoError(t, err)

	return c
}

func writeAPIError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error":{"code":%d,"message":%q}}`, code, msg)
}

func TestSheetsValues_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v4/spreadsheets/sheet-1/values/Data Tapes!A:D", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"range": "'Data Tapes'!A1:D3",
			"majorDimension": "ROWS",
			"values": [["TAPE","FACTION"],["T-01"],["T-02","Blue",3,true]]
		}`)
	}))
	defer srv.Close()

	c := newTestSheets(t, srv)
	rows, err := c.Values(context.Background(), "Data Tapes!A:D")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"TAPE", "FACTION"},
		{"T-01"},
		{"T-02", "Blue", "3", "true"},
	}, rows)
}

func TestSheetsValues_EmptyRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"range":"Decoders!A1:D1","majorDimension":"ROWS"}`)
	}))
	defer srv.Close()

	rows, err := newTestSheets(t, srv).Values(context.Background(), "Decoders!A:D")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSheetsValues_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"throttled", http.StatusTooManyRequests, ErrThrottled},
		{"server error", http.StatusServiceUnavailable, ErrServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeAPIError(w, tt.status, "quota exceeded for sheets")
			}))
			defer srv.Close()

			_, err := newTestSheets(t, srv).Values(context.Background(), "Data Tapes!A:D")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Contains(t, err.Error(), "quota exceeded for sheets")

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestSheetsValues_NoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeAPIError(w, http.StatusInternalServerError, "backend down")
	}))
	defer srv.Close()

	_, err := newTestSheets(t, srv).Values(context.Background(), "Data Tapes!A:D")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDriveMimeType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drive/v3/files/abc_123", r.URL.Path)
		assert.Equal(t, "mimeType", r.URL.Query().Get("fields"))
		assert.Equal(t, "true", r.URL.Query().Get("supportsAllDrives"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"mimeType":"image/jpeg"}`)
	}))
	defer srv.Close()

	mime, err := newTestDrive(t, srv).MimeType(context.Background(), "abc_123")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
}

func TestDriveMimeType_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusNotFound, "File not found: missing.")
	}))
	defer srv.Close()

	_, err := newTestDrive(t, srv).MimeType(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "File not found: missing.")
}

func TestDriveDownload_Success(t *testing.T) {
	content := []byte("\x89PNG fake image bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drive/v3/files/img-1", r.URL.Path)
		assert.Equal(t, "media", r.URL.Query().Get("alt"))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(content)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	n, err := newTestDrive(t, srv).Download(context.Background(), "img-1", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)
	assert.Equal(t, content, buf.Bytes())
}

func TestDriveDownload_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusForbidden, "The user does not have sufficient permissions")
	}))
	defer srv.Close()

	var buf bytes.Buffer
	_, err := newTestDrive(t, srv).Download(context.Background(), "img-1", &buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, buf.Len())
}

func TestDriveDownload_WriterError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("some data that will fail to write"))
	}))
	defer srv.Close()

	_, err := newTestDrive(t, srv).Download(context.Background(), "img-1", errorWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "streaming content of img-1")
}

func TestWrapError_NonAPIError(t *testing.T) {
	base := errors.New("dial tcp: connection refused")
	err := wrapError("reading range X", base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "google: reading range X: dial tcp: connection refused", err.Error())

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestWrapError_FallsBackToBody(t *testing.T) {
	err := wrapError("op", &googleapi.Error{Code: http.StatusBadGateway, Body: "upstream hiccup"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream hiccup", apiErr.Message)
	assert.ErrorIs(t, err, ErrServerError)
}

func TestWrapError_FallsBackToStatusText(t *testing.T) {
	err := wrapError("op", &googleapi.Error{Code: http.StatusConflict})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Conflict", apiErr.Message)
	assert.NoError(t, apiErr.Err)
}

// errorWriter is an io.Writer that always returns an error.
type errorWriter struct{}

func (errorWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("write failed")
}
