package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/n26decoder/gateway/internal/imageproxy"
)

// outputFilePermissions applies to exported images.
const outputFilePermissions = 0o644

func newImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "image <fileId> [output]",
		Short: "Download a Drive image at half size as PNG",
		Long: `Fetch one Drive file, downscale it to half its width and height, and
write the result as PNG. The output defaults to <fileId>.png.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runImage,
	}
}

func runImage(cmd *cobra.Command, args []string) error {
	fileID := args[0]
	if !imageproxy.ValidID(fileID) {
		return fmt.Errorf("%w: %q", imageproxy.ErrInvalidID, fileID)
	}

	output := fileID + ".png"
	if len(args) > 1 {
		output = args[1]
	}

	logger := buildLogger(resolvedCfg, os.Stderr)

	svc, err := buildServices(cmd.Context(), resolvedCfg, logger)
	if err != nil {
		return err
	}

	n, err := saveImage(cmd.Context(), svc.images, fileID, output)
	if err != nil {
		return err
	}

	statusf(flagQuiet, "Saved %s (%s)\n", output, humanize.Bytes(uint64(n)))

	return nil
}

// imageFetcher is the part of imageproxy.Proxy the image command needs.
type imageFetcher interface {
	Fetch(ctx context.Context, fileID string) (imageproxy.Entry, bool, error)
}

// saveImage fetches fileID through src and writes the PNG to path.
func saveImage(ctx context.Context, src imageFetcher, fileID, path string) (int, error) {
	entry, _, err := src.Fetch(ctx, fileID)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(path, entry.Data, outputFilePermissions); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}

	return len(entry.Data), nil
}
