package export

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/stickersmash/internal/compose"
)

// Web export parameters.
const (
	DownloadName = "sticker-smash.jpeg"
	WebQuality   = 0.95
	WebWidth     = 320
	WebHeight    = 440
)

// Downloader delivers a data URL under a suggested file name and returns
// where it was written.
type Downloader interface {
	Download(name, dataURL string) (string, error)
}

// Web renders the view as a JPEG data URL and triggers a download.
type Web struct {
	Downloader Downloader

	capture func(compose.View, compose.CaptureOptions) (string, error)
}

// Export implements Exporter.
func (w *Web) Export(_ context.Context, v compose.View) (Result, error) {
	capture := w.capture
	if capture == nil {
		capture = compose.CaptureDataURL
	}
	dataURL, err := capture(v, compose.CaptureOptions{
		Width:   WebWidth,
		Height:  WebHeight,
		Quality: WebQuality,
		Format:  compose.JPEG,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	path, err := w.Downloader.Download(DownloadName, dataURL)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return Result{Kind: Downloaded, Location: path}, nil
}

// DefaultDownloadDir returns the directory downloads land in when none is
// configured.
func DefaultDownloadDir() string {
	if dir := os.Getenv("XDG_DOWNLOAD_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, "Downloads")
}

// DirDownloader saves downloads into a directory. Like a browser it never
// overwrites: a taken name gets a " (n)" suffix.
type DirDownloader struct {
	Dir string
}

// Download implements Downloader.
func (d *DirDownloader) Download(name, dataURL string) (string, error) {
	_, data, err := DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	dir := d.Dir
	if dir == "" {
		dir = DefaultDownloadDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}
	name = filepath.Base(name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < 10000; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", path, err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("close %s: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free file name for %s in %s", name, dir)
}

// DecodeDataURL splits a data: URL into its media type and payload.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL")
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if mediaType == "" {
		mediaType = "text/plain"
	}
	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("decode data URL: %w", err)
		}
		return mediaType, data, nil
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL: %w", err)
	}
	return mediaType, []byte(text), nil
}
