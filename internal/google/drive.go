package google

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveClient reads file metadata and content from Google Drive, including
// shared drives.
type DriveClient struct {
	svc    *drive.Service
	logger *slog.Logger
}

// NewDriveClient creates a Drive client. See NewSheetsClient for options.
func NewDriveClient(
	ctx context.Context, userAgent string, logger *slog.Logger, opts ...option.ClientOption,
) (*DriveClient, error) {
	if logger == nil {
		logger = slog.Default()
	}

	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google: creating drive service: %w", err)
	}

	svc.UserAgent = userAgent

	return &DriveClient{svc: svc, logger: logger}, nil
}

// MimeType returns the declared MIME type of a file, or "" if Drive does
// not report one.
func (c *DriveClient) MimeType(ctx context.Context, fileID string) (string, error) {
	f, err := c.svc.Files.Get(fileID).
		Fields("mimeType").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", wrapError("getting metadata for "+fileID, err)
	}

	return f.MimeType, nil
}

// Download streams the full content of a file to w and returns the number
// of bytes written. The response body is read until EOF; there is no
// partial-content handling.
func (c *DriveClient) Download(ctx context.Context, fileID string, w io.Writer) (int64, error) {
	c.logger.Debug("downloading file", slog.String("file_id", fileID))

	resp, err := c.svc.Files.Get(fileID).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		return 0, wrapError("downloading "+fileID, err)
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		c.logger.Error("streaming download content failed",
			slog.String("file_id", fileID),
			slog.String("error", err.Error()),
			slog.Int64("bytes_before_error", n),
		)

		return n, fmt.Errorf("google: streaming content of %s: %w", fileID, err)
	}

	c.logger.Debug("download complete",
		slog.String("file_id", fileID),
		slog.Int64("bytes_written", n),
	)

	return n, nil
}
