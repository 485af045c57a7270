package picker

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/example/stickersmash/internal/clipboard"
)

// Clipboard picks the image currently held on the desktop clipboard.
type Clipboard struct {
	// Read replaces the system clipboard, mainly for tests.
	Read func() (image.Image, error)
}

// PickOne implements Picker. An empty clipboard counts as a cancelled pick.
func (c Clipboard) PickOne(_ context.Context, opts Options) (Result, error) {
	read := c.Read
	if read == nil {
		read = clipboard.ReadImage
	}
	img, err := read()
	if clipboard.IsEmpty(err) {
		return Result{}, ErrCancelled
	}
	if err != nil {
		return Result{}, fmt.Errorf("read clipboard: %w", err)
	}
	f, err := os.CreateTemp(tempDir, pastePrefix+"*.png")
	if err != nil {
		return Result{}, fmt.Errorf("create pasted image: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		return Result{}, fmt.Errorf("encode pasted image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return Result{}, fmt.Errorf("write pasted image: %w", err)
	}
	res, err := finish(f.Name(), opts)
	if err != nil || opts.AllowEditing {
		// The edited copy, if any, is a separate file.
		os.Remove(f.Name())
	}
	return res, err
}
