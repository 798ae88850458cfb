package main

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/n26decoder/gateway/internal/auth"
	"github.com/n26decoder/gateway/internal/config"
	"github.com/n26decoder/gateway/internal/google"
	"github.com/n26decoder/gateway/internal/imageproxy"
	"github.com/n26decoder/gateway/internal/sheet"
)

// services is the process-wide state shared by the commands: both API
// clients behind the sheet and image layers. It is constructed once and
// passed explicitly to whoever needs it.
type services struct {
	sheets *sheet.Service
	images *imageproxy.Proxy
}

// buildServices loads credentials and wires the Google clients into the
// sheet and image layers. ctx is bound to the token source and must live
// as long as the returned services.
func buildServices(ctx context.Context, cfg *config.Resolved, logger *slog.Logger) (*services, error) {
	base := newHTTPClient(cfg)

	ts, err := auth.TokenSourceFromFile(context.WithValue(ctx, oauth2.HTTPClient, base), cfg.CredentialsFile, logger)
	if err != nil {
		return nil, err
	}

	httpClient := auth.NewHTTPClient(ctx, ts, base)

	sheetsClient, err := google.NewSheetsClient(ctx, cfg.SpreadsheetID, cfg.UserAgent, logger,
		option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}

	driveClient, err := google.NewDriveClient(ctx, cfg.UserAgent, logger, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating drive client: %w", err)
	}

	return &services{
		sheets: sheet.NewService(cfg.Sheets, sheetsClient, logger),
		images: imageproxy.New(driveClient, imageproxy.NewMemoryCache(), logger),
	}, nil
}
