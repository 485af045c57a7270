package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/example/stickersmash/internal/compose"
	"github.com/example/stickersmash/internal/mediastore"
)

// NativeHeight is the capture height used when saving to the media library.
const NativeHeight = 440

// Native captures the view as a PNG and saves it into the media library.
type Native struct {
	Store Saver
	// CaptureDir holds the intermediate capture file. Empty means the
	// system temp directory.
	CaptureDir string

	capture func(compose.View, compose.CaptureOptions) (string, error)
}

// Export implements Exporter.
func (n *Native) Export(ctx context.Context, v compose.View) (Result, error) {
	if n.Store == nil {
		return Result{}, fmt.Errorf("%w: no media library", ErrPersistence)
	}
	capture := n.capture
	if capture == nil {
		capture = compose.CaptureRegion
	}
	uri, err := capture(v, compose.CaptureOptions{
		Height:  NativeHeight,
		Quality: 1,
		Format:  compose.PNG,
		Dir:     n.CaptureDir,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	defer removeCapture(uri)

	item, err := n.Store.Save(ctx, uri)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return Result{Kind: Saved, Location: item.Path}, nil
}

func removeCapture(uri string) {
	path, err := mediastore.PathFromURI(uri)
	if err != nil {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("remove capture %s: %v", path, err)
	}
}
