// Package picker selects the photo that the composition is built on.
package picker

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/stickersmash/internal/mediastore"
)

// ErrCancelled is returned when the user dismisses the picker without
// choosing an image.
var ErrCancelled = errors.New("image selection cancelled")

// Options control a single pick.
type Options struct {
	// AllowEditing crops the chosen image to the composition frame.
	AllowEditing bool
	// Quality in (0, 1] applies when an edited JPEG is re-encoded.
	Quality float64
}

// Result describes the chosen image.
type Result struct {
	URI    string
	Width  int
	Height int
}

// Picker is a media source.
type Picker interface {
	PickOne(ctx context.Context, opts Options) (Result, error)
}

// Func adapts a function to the Picker interface.
type Func func(ctx context.Context, opts Options) (Result, error)

// PickOne calls f.
func (f Func) PickOne(ctx context.Context, opts Options) (Result, error) { return f(ctx, opts) }

// File picks a fixed path. An empty path behaves like a dismissed dialog.
type File struct {
	Path string
}

// PickOne implements Picker.
func (f File) PickOne(_ context.Context, opts Options) (Result, error) {
	if f.Path == "" {
		return Result{}, ErrCancelled
	}
	path, err := mediastore.PathFromURI(f.Path)
	if err != nil {
		return Result{}, err
	}
	return finish(path, opts)
}

// Library picks the most recent image in the media library.
type Library struct {
	Store *mediastore.Store
}

// PickOne implements Picker. An empty library counts as a cancelled pick.
func (l Library) PickOne(ctx context.Context, opts Options) (Result, error) {
	item, err := l.Store.Latest(ctx)
	if errors.Is(err, mediastore.ErrEmpty) {
		return Result{}, ErrCancelled
	}
	if err != nil {
		return Result{}, err
	}
	return finish(item.Path, opts)
}

// finish validates the chosen file and applies editing.
func finish(path string, opts Options) (Result, error) {
	if _, err := os.Stat(path); err != nil {
		return Result{}, fmt.Errorf("selected image: %w", err)
	}
	if opts.AllowEditing {
		return Edit(path, opts.Quality)
	}
	cfg, err := decodeConfig(path)
	if err != nil {
		return Result{}, err
	}
	return Result{URI: mediastore.FileURI(path), Width: cfg.Width, Height: cfg.Height}, nil
}

func decodeConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// Load decodes the image referenced by uri.
func Load(uri string) (image.Image, error) {
	path, err := mediastore.PathFromURI(uri)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
