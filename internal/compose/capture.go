package compose

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/example/stickersmash/internal/mediastore"
)

// Format selects the encoding used for a capture.
type Format int

const (
	PNG Format = iota
	JPEG
)

func (f Format) String() string {
	if f == JPEG {
		return "jpeg"
	}
	return "png"
}

// Ext returns the file extension for f including the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return ".jpeg"
	}
	return ".png"
}

// MIME returns the media type for f.
func (f Format) MIME() string {
	if f == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// CaptureOptions controls the size and encoding of a capture. A zero Width
// or Height is derived from the other so the frame's aspect ratio is kept;
// when both are zero the frame's own size is used. Quality is in (0, 1] and
// only affects JPEG output.
type CaptureOptions struct {
	Width   int
	Height  int
	Quality float64
	Format  Format
	// Dir receives capture files. Empty means the system temp directory.
	Dir string
}

// Size resolves the output dimensions.
func (o CaptureOptions) Size() (int, int) {
	w, h := o.Width, o.Height
	switch {
	case w <= 0 && h <= 0:
		return FrameWidth, FrameHeight
	case w <= 0:
		w = int(math.Round(float64(h) * FrameWidth / FrameHeight))
	case h <= 0:
		h = int(math.Round(float64(w) * FrameHeight / FrameWidth))
	}
	return max(w, 1), max(h, 1)
}

var createTemp = os.CreateTemp

// Capture renders the view at the requested size.
func Capture(v View, opts CaptureOptions) *image.RGBA {
	frame := v.Render()
	w, h := opts.Size()
	if w == FrameWidth && h == FrameHeight {
		return frame
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(out, out.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)
	return out
}

// CaptureRegion renders the view into a temporary file and returns its
// file:// URI.
func CaptureRegion(v View, opts CaptureOptions) (string, error) {
	img := Capture(v, opts)
	f, err := createTemp(opts.Dir, "stickersmash-*"+opts.Format.Ext())
	if err != nil {
		return "", fmt.Errorf("create capture file: %w", err)
	}
	if err := Encode(f, img, opts.Format, opts.Quality); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close capture file: %w", err)
	}
	return mediastore.FileURI(f.Name()), nil
}

// CaptureDataURL renders the view and returns it as a data: URL.
func CaptureDataURL(v View, opts CaptureOptions) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, Capture(v, opts), opts.Format, opts.Quality); err != nil {
		return "", err
	}
	return "data:" + opts.Format.MIME() + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, f Format, quality float64) error {
	switch f {
	case JPEG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality(quality)}); err != nil {
			return fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	}
	return nil
}

func jpegQuality(q float64) int {
	if q <= 0 || q > 1 {
		return jpeg.DefaultQuality
	}
	return max(1, int(math.Round(q*100)))
}
