package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/n26decoder/gateway/internal/sheet"
)

// Output formats accepted by `sheet --format`.
const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

// rowSource is the part of sheet.Service the sheet command needs.
type rowSource interface {
	Rows(ctx context.Context, name string) ([][]string, error)
}

func newSheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheet <name>",
		Short: "Export a configured sheet as CSV or XLSX",
		Long: `Fetch one configured sheet range, pad or truncate every row to four
columns, and write it to stdout or a file.

XLSX output requires --output.`,
		Args: cobra.ExactArgs(1),
		RunE: runSheet,
	}

	cmd.Flags().String("format", formatCSV, "output format: csv or xlsx")
	cmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	return cmd
}

func runSheet(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	if format != formatCSV && format != formatXLSX {
		return fmt.Errorf("invalid --format %q: must be %s or %s", format, formatCSV, formatXLSX)
	}

	if format == formatXLSX && output == "" {
		return fmt.Errorf("--format %s requires --output", formatXLSX)
	}

	logger := buildLogger(resolvedCfg, os.Stderr)

	svc, err := buildServices(cmd.Context(), resolvedCfg, logger)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	var f *os.File
	if output != "" {
		f, err = os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()

		w = f
	}

	n, err := writeSheet(cmd.Context(), w, svc.sheets, args[0], format)
	if err != nil {
		return err
	}

	if f != nil {
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", output, err)
		}

		statusf(flagQuiet, "Wrote %d rows of %q to %s\n", n, args[0], output)
	}

	return nil
}

// writeSheet renders sheet name from src to w in the given format and
// returns the number of rows written.
func writeSheet(ctx context.Context, w io.Writer, src rowSource, name, format string) (int, error) {
	rows, err := src.Rows(ctx, name)
	if err != nil {
		return 0, err
	}

	switch format {
	case formatXLSX:
		cw := &countingWriter{w: w}
		if err := sheet.WriteXLSX(cw, name, rows); err != nil {
			return 0, err
		}

		statusf(flagQuiet, "XLSX workbook: %s\n", humanize.Bytes(uint64(cw.n)))
	default:
		if _, err := io.WriteString(w, sheet.FormatCSV(rows)+"\n"); err != nil {
			return 0, fmt.Errorf("writing CSV: %w", err)
		}
	}

	return len(rows), nil
}

// countingWriter tracks how many bytes pass through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}
