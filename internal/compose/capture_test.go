package compose

import (
	"encoding/base64"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stickersmash/internal/mediastore"
	"github.com/example/stickersmash/internal/sticker"
)

func TestCaptureOptionsSize(t *testing.T) {
	cases := []struct {
		opts CaptureOptions
		w, h int
	}{
		{CaptureOptions{}, 320, 440},
		{CaptureOptions{Height: 440}, 320, 440},
		{CaptureOptions{Height: 880}, 640, 880},
		{CaptureOptions{Width: 160}, 160, 220},
		{CaptureOptions{Width: 100, Height: 100}, 100, 100},
	}
	for _, c := range cases {
		w, h := c.opts.Size()
		assert.Equal(t, c.w, w, "%+v", c.opts)
		assert.Equal(t, c.h, h, "%+v", c.opts)
	}
}

func TestCaptureRegionWritesPNG(t *testing.T) {
	dir := t.TempDir()
	v := View{Image: solid(10, 10, blue), Sticker: solid(4, 4, red), Transform: sticker.NewTransform()}
	uri, err := CaptureRegion(v, CaptureOptions{Height: 440, Quality: 1, Format: PNG, Dir: dir})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "file://"), uri)

	path, err := mediastore.PathFromURI(uri)
	require.NoError(t, err)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 440), img.Bounds())
	_, _, _, a := img.At(20, 110).RGBA()
	assert.Equal(t, uint32(0xFFFF), a)
}

func TestCaptureRegionCreateError(t *testing.T) {
	old := createTemp
	createTemp = func(string, string) (*os.File, error) { return nil, errors.New("disk full") }
	t.Cleanup(func() { createTemp = old })

	_, err := CaptureRegion(View{}, CaptureOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCaptureDataURLJPEG(t *testing.T) {
	url, err := CaptureDataURL(View{Image: solid(10, 10, blue)}, CaptureOptions{Width: 320, Height: 440, Quality: 0.95, Format: JPEG})
	require.NoError(t, err)
	const prefix = "data:image/jpeg;base64,"
	require.True(t, strings.HasPrefix(url, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
	require.NoError(t, err)
	img, err := jpeg.Decode(strings.NewReader(string(raw)))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 440), img.Bounds())
}

func TestJPEGQuality(t *testing.T) {
	assert.Equal(t, 95, jpegQuality(0.95))
	assert.Equal(t, 100, jpegQuality(1))
	assert.Equal(t, jpeg.DefaultQuality, jpegQuality(0))
	assert.Equal(t, 1, jpegQuality(0.001))
}
