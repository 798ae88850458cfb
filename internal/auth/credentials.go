// Package auth loads the Google service-account key used by the gateway and
// turns it into an authenticated HTTP client. It is a leaf package: the
// Sheets and Drive clients receive the *http.Client and never see the key.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuth scopes requested for the service account. Both are read-only: the
// gateway never writes to either API.
const (
	ScopeSheetsReadonly = "https://www.googleapis.com/auth/spreadsheets.readonly"
	ScopeDriveReadonly  = "https://www.googleapis.com/auth/drive.readonly"
)

// Scopes is the scope set the gateway requests.
var Scopes = []string{ScopeSheetsReadonly, ScopeDriveReadonly}

// keyTypeServiceAccount is the "type" field of a service-account key file.
const keyTypeServiceAccount = "service_account"

// ErrNoCredentials is returned when the key file does not exist.
var ErrNoCredentials = errors.New("auth: service-account key file not found")

// ErrNotServiceAccount is returned when the key file is valid JSON but not
// a service-account key (for example an OAuth client secret).
var ErrNotServiceAccount = errors.New("auth: key file is not a service-account key")

// keyFile is the subset of the service-account key JSON that is checked
// before handing the bytes to the oauth2 library.
type keyFile struct {
	Type        string `json:"type"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// LoadKeyFile reads and sanity-checks a service-account key file. Returns
// ErrNoCredentials if the file does not exist. The key material is never
// logged.
func LoadKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoCredentials, path)
	}

	if err != nil {
		return nil, fmt.Errorf("auth: reading %s: %w", path, err)
	}

	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("auth: decoding %s: %w", path, err)
	}

	if kf.Type != keyTypeServiceAccount {
		return nil, fmt.Errorf("%w: %s has type %q", ErrNotServiceAccount, path, kf.Type)
	}

	if kf.ClientEmail == "" || kf.PrivateKey == "" {
		return nil, fmt.Errorf("auth: %s missing client_email or private_key", path)
	}

	return data, nil
}

// TokenSourceFromFile loads a service-account key and returns a token source
// for the given scopes (Scopes when none are passed). Tokens are minted
// lazily on first use and refreshed automatically.
//
// ctx is bound to the token source for token refreshes and must outlive it.
// An *http.Client stored under oauth2.HTTPClient in ctx is used for the
// token endpoint.
func TokenSourceFromFile(
	ctx context.Context, path string, logger *slog.Logger, scopes ...string,
) (oauth2.TokenSource, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if len(scopes) == 0 {
		scopes = Scopes
	}

	data, err := LoadKeyFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("auth: parsing service-account key %s: %w", path, err)
	}

	logger.Info("loaded service-account credentials",
		slog.String("path", path),
		slog.String("client_email", cfg.Email),
		slog.Int("scopes", len(scopes)),
	)

	return oauth2.ReuseTokenSource(nil, cfg.TokenSource(ctx)), nil
}

// NewHTTPClient wraps base with an oauth2 transport that attaches a bearer
// token from ts to every request. base supplies timeouts and the underlying
// transport; nil means http.DefaultClient.
func NewHTTPClient(ctx context.Context, ts oauth2.TokenSource, base *http.Client) *http.Client {
	if base == nil {
		base = http.DefaultClient
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	client := oauth2.NewClient(ctx, ts)
	client.Timeout = base.Timeout

	return client
}
