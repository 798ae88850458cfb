// Package sheet resolves logical sheet names to spreadsheet ranges and
// turns the heterogeneous rows returned by the Sheets API into fixed-width
// CSV (or XLSX) output.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Columns is the fixed width of every emitted row.
const Columns = 4

// ErrUnknownSheet is returned when a logical name has no configured range.
var ErrUnknownSheet = errors.New("sheet: unknown sheet")

// RangeFetcher reads the cells of a range expression. Defined at the
// consumer; *google.SheetsClient is the production implementation.
type RangeFetcher interface {
	Values(ctx context.Context, rng string) ([][]string, error)
}

// Service serves the configured sheet ranges.
type Service struct {
	ranges  map[string]string
	fetcher RangeFetcher
	logger  *slog.Logger
}

// NewService creates a Service over the given name -> range mapping. Names
// are NFC-normalized so a decomposed form in a request path matches the
// configured name.
func NewService(ranges map[string]string, fetcher RangeFetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	normalized := make(map[string]string, len(ranges))
	for name, rng := range ranges {
		normalized[norm.NFC.String(name)] = rng
	}

	return &Service{
		ranges:  normalized,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Range resolves a logical sheet name to its range expression.
func (s *Service) Range(name string) (string, bool) {
	rng, ok := s.ranges[norm.NFC.String(name)]
	return rng, ok
}

// Names returns the configured logical sheet names, sorted.
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.ranges))
	for name := range s.ranges {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Rows fetches the range for name and normalizes every row to Columns
// cells. Returns ErrUnknownSheet without calling the backend when name is
// not configured. Backend errors are returned wrapped, never retried.
func (s *Service) Rows(ctx context.Context, name string) ([][]string, error) {
	rng, ok := s.Range(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSheet, name)
	}

	rows, err := s.fetcher.Values(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("sheet: fetching %s: %w", name, err)
	}

	s.logger.Debug("sheet rows fetched",
		slog.String("sheet", name),
		slog.String("range", rng),
		slog.Int("rows", len(rows)),
	)

	return Normalize(rows, Columns), nil
}

// CSV fetches the range for name and renders it with FormatCSV.
func (s *Service) CSV(ctx context.Context, name string) (string, error) {
	rows, err := s.Rows(ctx, name)
	if err != nil {
		return "", err
	}

	return FormatCSV(rows), nil
}

// Normalize returns a copy of rows where every row has exactly width
// cells: shorter rows are right-padded with empty strings, longer rows are
// truncated. The input is not modified.
func Normalize(rows [][]string, width int) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, width)
		copy(cells, row)
		out[i] = cells
	}

	return out
}

// FormatCSV renders rows as CSV lines with every cell wrapped in double
// quotes. Embedded quotes are NOT escaped, so a cell containing `"` yields
// a line that strict CSV parsers reject; consumers of this endpoint depend
// on the exact output. Lines are joined with "\n" and there is no trailing
// newline.
func FormatCSV(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		quoted := make([]string, len(row))
		for j, cell := range row {
			quoted[j] = `"` + cell + `"`
		}

		lines[i] = strings.Join(quoted, ",")
	}

	return strings.Join(lines, "\n")
}
