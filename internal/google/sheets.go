package google

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsClient reads cell values from one spreadsheet.
type SheetsClient struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        *slog.Logger
}

// NewSheetsClient creates a client for the given spreadsheet. Callers pass
// option.WithHTTPClient with an authenticated client in production; tests
// add option.WithEndpoint to point at a fake server.
func NewSheetsClient(
	ctx context.Context, spreadsheetID, userAgent string, logger *slog.Logger, opts ...option.ClientOption,
) (*SheetsClient, error) {
	if logger == nil {
		logger = slog.Default()
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google: creating sheets service: %w", err)
	}

	svc.UserAgent = userAgent

	return &SheetsClient{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

// Values fetches the cells of a range such as "Data Tapes!A:D". Rows are
// returned as the API reports them: trailing empty cells are omitted, so
// rows may have different lengths. Non-string cells are rendered with
// fmt.Sprint.
func (c *SheetsClient) Values(ctx context.Context, rng string) ([][]string, error) {
	c.logger.Debug("fetching sheet range",
		slog.String("spreadsheet_id", c.spreadsheetID),
		slog.String("range", rng),
	)

	vr, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		c.logger.Warn("sheet range fetch failed",
			slog.String("range", rng),
			slog.String("error", err.Error()),
		)

		return nil, wrapError("reading range "+rng, err)
	}

	rows := make([][]string, len(vr.Values))
	for i, row := range vr.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cellString(cell)
		}

		rows[i] = cells
	}

	c.logger.Debug("sheet range fetched",
		slog.String("range", rng),
		slog.Int("rows", len(rows)),
	)

	return rows, nil
}

// cellString renders one cell value from the API's untyped representation.
func cellString(v any) string {
	switch cell := v.(type) {
	case nil:
		return ""
	case string:
		return cell
	default:
		return fmt.Sprint(cell)
	}
}
