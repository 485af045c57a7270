package picker

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/stickersmash/internal/compose"
	"github.com/example/stickersmash/internal/mediastore"
)

var tempDir = ""

// Prefixes of the temporary files pickers write.
const (
	editPrefix  = "stickersmash-pick-"
	pastePrefix = "stickersmash-paste-"
)

// CropRect returns the largest centred rectangle inside b with the
// composition frame's aspect ratio.
func CropRect(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	// Compare w/h against FrameWidth/FrameHeight without floating point.
	if w*compose.FrameHeight > h*compose.FrameWidth {
		cw := h * compose.FrameWidth / compose.FrameHeight
		x := b.Min.X + (w-cw)/2
		return image.Rect(x, b.Min.Y, x+cw, b.Max.Y)
	}
	ch := w * compose.FrameHeight / compose.FrameWidth
	y := b.Min.Y + (h-ch)/2
	return image.Rect(b.Min.X, y, b.Max.X, y+ch)
}

// Edit crops the image at path to the frame's aspect ratio and writes the
// result to a temporary file. JPEG sources stay JPEG at the given quality;
// everything else is written as PNG.
func Edit(path string, quality float64) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	img, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		return Result{}, fmt.Errorf("decode %s: %w", path, err)
	}

	crop := CropRect(img.Bounds())
	if crop.Empty() {
		return Result{}, fmt.Errorf("decode %s: empty image", path)
	}
	out := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Draw(out, out.Bounds(), img, crop.Min, draw.Src)

	fmtOut := compose.PNG
	if format == "jpeg" {
		fmtOut = compose.JPEG
	}
	tmp, err := os.CreateTemp(tempDir, editPrefix+"*"+fmtOut.Ext())
	if err != nil {
		return Result{}, fmt.Errorf("create edited image: %w", err)
	}
	if err := compose.Encode(tmp, out, fmtOut, quality); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return Result{}, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return Result{}, fmt.Errorf("write edited image: %w", err)
	}
	return Result{URI: mediastore.FileURI(tmp.Name()), Width: crop.Dx(), Height: crop.Dy()}, nil
}

// Discard removes a temporary image written by Edit or the clipboard source.
// URIs naming any other file are left alone.
func Discard(uri string) error {
	path, err := mediastore.PathFromURI(uri)
	if err != nil || !isTemporary(path) {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("discard %s: %w", path, err)
	}
	return nil
}

func isTemporary(path string) bool {
	dir := tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if filepath.Dir(filepath.Clean(path)) != filepath.Clean(dir) {
		return false
	}
	name := filepath.Base(path)
	return strings.HasPrefix(name, editPrefix) || strings.HasPrefix(name, pastePrefix)
}
