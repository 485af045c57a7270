package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stickersmash/internal/compose"
	"github.com/example/stickersmash/internal/mediastore"
	"github.com/example/stickersmash/internal/sticker"
)

type recordingSaver struct {
	calls  int
	bounds image.Rectangle
	err    error
}

func (r *recordingSaver) Save(_ context.Context, uri string) (mediastore.Item, error) {
	r.calls++
	if r.err != nil {
		return mediastore.Item{}, r.err
	}
	path, err := mediastore.PathFromURI(uri)
	if err != nil {
		return mediastore.Item{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return mediastore.Item{}, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return mediastore.Item{}, err
	}
	r.bounds = img.Bounds()
	return mediastore.Item{Path: "/library/item.png"}, nil
}

func testView() compose.View {
	return compose.View{Transform: sticker.NewTransform()}
}

func TestDetectPrecedence(t *testing.T) {
	t.Setenv(EnvRuntime, "")
	assert.Equal(t, RuntimeNative, Detect("", ""))
	assert.Equal(t, RuntimeWeb, Detect("", "web"))

	t.Setenv(EnvRuntime, "native")
	assert.Equal(t, RuntimeNative, Detect("", "web"))
	assert.Equal(t, RuntimeWeb, Detect("web", "native"))

	t.Setenv(EnvRuntime, "bogus")
	assert.Equal(t, RuntimeWeb, Detect("", "web"))
}

func TestParseRuntime(t *testing.T) {
	rt, err := ParseRuntime(" Web ")
	require.NoError(t, err)
	assert.Equal(t, RuntimeWeb, rt)
	_, err = ParseRuntime("android")
	assert.Error(t, err)
}

func TestNewSelectsVariant(t *testing.T) {
	_, ok := New(RuntimeNative, &recordingSaver{}, "").(*Native)
	assert.True(t, ok)
	_, ok = New(RuntimeWeb, nil, t.TempDir()).(*Web)
	assert.True(t, ok)
}

func TestNativeSavesCapturedRegion(t *testing.T) {
	saver := &recordingSaver{}
	dir := t.TempDir()
	n := &Native{Store: saver, CaptureDir: dir}

	res, err := n.Export(context.Background(), testView())
	require.NoError(t, err)
	assert.Equal(t, Saved, res.Kind)
	assert.Equal(t, "/library/item.png", res.Location)
	assert.Equal(t, 1, saver.calls)
	assert.Equal(t, image.Rect(0, 0, 320, 440), saver.bounds)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "intermediate capture should be removed")
}

func TestNativeRepeatedSavesPersistEachTime(t *testing.T) {
	saver := &recordingSaver{}
	n := &Native{Store: saver, CaptureDir: t.TempDir()}
	for i := 0; i < 3; i++ {
		_, err := n.Export(context.Background(), testView())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, saver.calls)
}

func TestNativeCaptureFailure(t *testing.T) {
	saver := &recordingSaver{}
	n := &Native{Store: saver, capture: func(compose.View, compose.CaptureOptions) (string, error) {
		return "", errors.New("no surface")
	}}
	_, err := n.Export(context.Background(), testView())
	assert.ErrorIs(t, err, ErrCapture)
	assert.Equal(t, 0, saver.calls)
}

func TestNativePersistenceFailure(t *testing.T) {
	boom := errors.New("disk full")
	n := &Native{Store: &recordingSaver{err: boom}, CaptureDir: t.TempDir()}
	_, err := n.Export(context.Background(), testView())
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, boom)
}

func TestNativeCaptureOptions(t *testing.T) {
	var got compose.CaptureOptions
	n := &Native{Store: &recordingSaver{err: errors.New("stop")}, capture: func(_ compose.View, opts compose.CaptureOptions) (string, error) {
		got = opts
		return "file:///nonexistent.png", nil
	}}
	_, _ = n.Export(context.Background(), testView())
	assert.Equal(t, 440, got.Height)
	assert.Equal(t, 1.0, got.Quality)
	assert.Equal(t, compose.PNG, got.Format)
}

type fakeDownloader struct {
	name, url string
	err       error
}

func (f *fakeDownloader) Download(name, dataURL string) (string, error) {
	f.name, f.url = name, dataURL
	return "/downloads/" + name, f.err
}

func TestWebDownloadsJPEG(t *testing.T) {
	d := &fakeDownloader{}
	res, err := (&Web{Downloader: d}).Export(context.Background(), testView())
	require.NoError(t, err)
	assert.Equal(t, Downloaded, res.Kind)
	assert.Equal(t, DownloadName, d.name)

	mime, data, err := DecodeDataURL(d.url)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, WebWidth, WebHeight), img.Bounds())
}

func TestWebDownloadFailure(t *testing.T) {
	d := &fakeDownloader{err: errors.New("blocked")}
	_, err := (&Web{Downloader: d}).Export(context.Background(), testView())
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestWebCaptureFailure(t *testing.T) {
	d := &fakeDownloader{}
	w := &Web{Downloader: d, capture: func(compose.View, compose.CaptureOptions) (string, error) {
		return "", errors.New("canvas tainted")
	}}
	_, err := w.Export(context.Background(), testView())
	assert.ErrorIs(t, err, ErrCapture)
	assert.Empty(t, d.name)
}

func TestDirDownloaderNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	d := &DirDownloader{Dir: dir}
	url := "data:image/jpeg;base64,aGVsbG8="

	var paths []string
	for i := 0; i < 3; i++ {
		p, err := d.Download(DownloadName, url)
		require.NoError(t, err)
		paths = append(paths, filepath.Base(p))
	}
	assert.Equal(t, []string{"sticker-smash.jpeg", "sticker-smash (1).jpeg", "sticker-smash (2).jpeg"}, paths)

	data, err := os.ReadFile(filepath.Join(dir, "sticker-smash (1).jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestDecodeDataURL(t *testing.T) {
	mime, data, err := DecodeDataURL("data:,hi%20there")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mime)
	assert.Equal(t, "hi there", string(data))

	_, _, err = DecodeDataURL("http://example.com")
	assert.Error(t, err)
	_, _, err = DecodeDataURL("data:image/png;base64")
	assert.Error(t, err)
	_, _, err = DecodeDataURL("data:image/png;base64,***")
	assert.Error(t, err)
}

func TestClipboardExport(t *testing.T) {
	var copied image.Image
	c := &Clipboard{Write: func(img image.Image) error {
		copied = img
		return nil
	}}
	res, err := c.Export(context.Background(), testView())
	require.NoError(t, err)
	assert.Equal(t, Copied, res.Kind)
	require.NotNil(t, copied)
	assert.Equal(t, image.Rect(0, 0, 320, 440), copied.Bounds())

	c.Write = func(image.Image) error { return errors.New("no display") }
	_, err = c.Export(context.Background(), testView())
	assert.ErrorIs(t, err, ErrPersistence)
}
