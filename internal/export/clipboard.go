package export

import (
	"context"
	"fmt"
	"image"

	"github.com/example/stickersmash/internal/clipboard"
	"github.com/example/stickersmash/internal/compose"
)

// Clipboard copies the composition to the system clipboard as a PNG.
type Clipboard struct {
	// Write replaces the system clipboard, mainly for tests.
	Write func(image.Image) error
}

// Export implements Exporter.
func (c *Clipboard) Export(_ context.Context, v compose.View) (Result, error) {
	write := c.Write
	if write == nil {
		write = clipboard.WriteImage
	}
	img := compose.Capture(v, compose.CaptureOptions{Height: NativeHeight})
	if err := write(img); err != nil {
		return Result{}, fmt.Errorf("%w: clipboard: %w", ErrPersistence, err)
	}
	return Result{Kind: Copied}, nil
}
