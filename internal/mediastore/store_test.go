package mediastore

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{R: 0xFF, A: 0xFF})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "library"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveCopiesAndIndexes(t *testing.T) {
	s := openTestStore(t)
	s.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }
	src := filepath.Join(t.TempDir(), "capture.png")
	writePNG(t, src, 320, 440)

	item, err := s.Save(context.Background(), FileURI(src))
	require.NoError(t, err)
	assert.Equal(t, "sticker-smash-20240506-070809.png", item.Name)
	assert.Equal(t, "image/png", item.MIME)
	assert.Equal(t, 320, item.Width)
	assert.Equal(t, 440, item.Height)
	assert.FileExists(t, item.Path)
	assert.FileExists(t, src)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Equal(t, item.Path, items[0].Path)
}

func TestRepeatedSavesCreateDistinctItems(t *testing.T) {
	s := openTestStore(t)
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	src := filepath.Join(t.TempDir(), "capture.png")
	writePNG(t, src, 4, 4)

	first, err := s.Save(context.Background(), src)
	require.NoError(t, err)
	second, err := s.Save(context.Background(), src)
	require.NoError(t, err)
	assert.NotEqual(t, first.Path, second.Path)
	assert.Equal(t, "sticker-smash-20240506-070809-1.png", second.Name)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSaveRejectsNonImage(t *testing.T) {
	s := openTestStore(t)
	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))

	_, err := s.Save(context.Background(), src)
	require.Error(t, err)
	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSaveMissingSource(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Save(context.Background(), FileURI(filepath.Join(t.TempDir(), "gone.png")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLatest(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Latest(context.Background())
	assert.ErrorIs(t, err, ErrEmpty)

	src := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, src, 2, 2)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	_, err = s.Save(context.Background(), src)
	require.NoError(t, err)
	clock = clock.Add(time.Minute)
	newer, err := s.Save(context.Background(), src)
	require.NoError(t, err)

	latest, err := s.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
}

func TestSyncPicksUpExternalChanges(t *testing.T) {
	s := openTestStore(t)
	src := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, src, 2, 2)
	saved, err := s.Save(context.Background(), src)
	require.NoError(t, err)

	writePNG(t, filepath.Join(s.Dir(), "dropped-in.png"), 3, 3)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "readme.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Remove(saved.Path))

	added, removed, err := s.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "dropped-in.png", items[0].Name)
	assert.Equal(t, 3, items[0].Width)
}

func TestIndexAfterSyncKeepsOneRow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	// A save in progress: the file is on disk but not yet indexed when a
	// resync runs.
	name := "sticker-smash-20240506-070809.png"
	path := filepath.Join(s.Dir(), name)
	writePNG(t, path, 2, 2)
	added, _, err := s.Sync(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, added)
	synced, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, synced, 1)

	id, err := s.insert(ctx, s.db, Item{Name: name, MIME: "image/png", Size: 99, Width: 320, Height: 440, CreatedAt: s.now()})
	require.NoError(t, err)
	assert.Equal(t, synced[0].ID, id)
	assert.FileExists(t, path)

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 440, items[0].Height)
	assert.Equal(t, int64(99), items[0].Size)
}

func TestIsImageName(t *testing.T) {
	assert.True(t, IsImageName("a.PNG"))
	assert.True(t, IsImageName("b.jpeg"))
	assert.True(t, IsImageName("c.webp"))
	assert.False(t, IsImageName(DBName))
	assert.False(t, IsImageName("library.db-wal"))
}
