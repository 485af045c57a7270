// Package mediastore keeps the local photo library that native exports are
// saved into. Files live in a single directory indexed by a SQLite database.
package mediastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DBName is the index file kept inside the library directory.
const DBName = "library.db"

const schema = `
CREATE TABLE IF NOT EXISTS items (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL UNIQUE,
    mime        TEXT NOT NULL,
    size        INTEGER NOT NULL,
    width       INTEGER NOT NULL,
    height      INTEGER NOT NULL,
    created_ns  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_items_created ON items(created_ns);

CREATE TABLE IF NOT EXISTS permission (
    id          INTEGER PRIMARY KEY CHECK (id = 1),
    status      TEXT NOT NULL,
    updated_ns  INTEGER NOT NULL
);
`

// ErrEmpty is returned by Latest when the library has no items.
var ErrEmpty = errors.New("library is empty")

// Item is one saved image.
type Item struct {
	ID        int64
	Name      string
	Path      string
	MIME      string
	Size      int64
	Width     int
	Height    int
	CreatedAt time.Time
}

// URI returns the media reference for the item.
func (i Item) URI() string { return FileURI(i.Path) }

// Store is an open media library.
type Store struct {
	db  *sql.DB
	dir string
	now func() time.Time
}

// DefaultDir returns the library location used when none is configured.
func DefaultDir() string {
	if dir := os.Getenv("XDG_PICTURES_DIR"); dir != "" {
		return filepath.Join(dir, "StickerSmash")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "StickerSmash")
	}
	return filepath.Join(home, "Pictures", "StickerSmash")
}

// Open opens or creates the library rooted at dir.
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create library directory: %w", err)
	}
	db, err := sql.Open("sqlite3", filepath.Join(dir, DBName)+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open library index: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, dir: dir, now: time.Now}, nil
}

// Dir returns the library directory.
func (s *Store) Dir() string { return s.dir }

// Close closes the index.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save copies the image referenced by uri into the library and indexes it.
// Every call creates a new item.
func (s *Store) Save(ctx context.Context, uri string) (Item, error) {
	src, err := PathFromURI(uri)
	if err != nil {
		return Item{}, err
	}
	in, err := os.Open(src)
	if err != nil {
		return Item{}, fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	cfg, format, err := image.DecodeConfig(in)
	if err != nil {
		return Item{}, fmt.Errorf("read image %s: %w", src, err)
	}
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return Item{}, err
	}

	now := s.now()
	out, dest, err := s.createUnique(now, extFor(format, src))
	if err != nil {
		return Item{}, err
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return Item{}, fmt.Errorf("copy into library: %w", err)
	}

	item := Item{
		Name:      filepath.Base(dest),
		Path:      dest,
		MIME:      "image/" + format,
		Size:      n,
		Width:     cfg.Width,
		Height:    cfg.Height,
		CreatedAt: now,
	}
	id, err := s.insert(ctx, s.db, item)
	if err != nil {
		os.Remove(dest)
		return Item{}, err
	}
	item.ID = id
	return item, nil
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// insert indexes item, replacing the metadata of an existing row with the
// same name. Save and Sync can both reach a freshly written file first.
func (s *Store) insert(ctx context.Context, db querier, item Item) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO items (name, mime, size, width, height, created_ns)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			mime = excluded.mime,
			size = excluded.size,
			width = excluded.width,
			height = excluded.height
		RETURNING id`,
		item.Name, item.MIME, item.Size, item.Width, item.Height, item.CreatedAt.UnixNano(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("index %s: %w", item.Name, err)
	}
	return id, nil
}

// createUnique opens a new file named after the timestamp, adding a counter
// when the name is already taken.
func (s *Store) createUnique(now time.Time, ext string) (*os.File, string, error) {
	base := "sticker-smash-" + now.Format("20060102-150405")
	for i := 0; i < 1000; i++ {
		name := base + ext
		if i > 0 {
			name = fmt.Sprintf("%s-%d%s", base, i, ext)
		}
		path := filepath.Join(s.dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("create library file: %w", err)
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s", base)
}

func extFor(format, src string) string {
	switch format {
	case "jpeg":
		return ".jpeg"
	case "png", "gif", "bmp", "tiff", "webp":
		return "." + format
	}
	if ext := filepath.Ext(src); ext != "" {
		return strings.ToLower(ext)
	}
	return ".img"
}

// List returns every indexed item, newest first.
func (s *Store) List(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, mime, size, width, height, created_ns
		FROM items ORDER BY created_ns DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		var created int64
		if err := rows.Scan(&it.ID, &it.Name, &it.MIME, &it.Size, &it.Width, &it.Height, &created); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.Path = filepath.Join(s.dir, it.Name)
		it.CreatedAt = time.Unix(0, created)
		items = append(items, it)
	}
	return items, rows.Err()
}

// Latest returns the most recently saved item.
func (s *Store) Latest(ctx context.Context) (Item, error) {
	items, err := s.List(ctx)
	if err != nil {
		return Item{}, err
	}
	if len(items) == 0 {
		return Item{}, ErrEmpty
	}
	return items[0], nil
}

// Sync reconciles the index with the files present in the directory.
func (s *Store) Sync(ctx context.Context) (added, removed int, err error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, 0, fmt.Errorf("read library directory: %w", err)
	}
	onDisk := map[string]os.DirEntry{}
	for _, e := range entries {
		if !e.IsDir() && IsImageName(e.Name()) {
			onDisk[e.Name()] = e
		}
	}
	items, err := s.List(ctx)
	if err != nil {
		return 0, 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, it := range items {
		if _, ok := onDisk[it.Name]; ok {
			delete(onDisk, it.Name)
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, it.ID); err != nil {
			return 0, 0, fmt.Errorf("drop %s: %w", it.Name, err)
		}
		removed++
	}
	for name, e := range onDisk {
		item, ok := s.describe(name, e)
		if !ok {
			continue
		}
		if _, err := s.insert(ctx, tx, item); err != nil {
			return 0, 0, err
		}
		added++
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit: %w", err)
	}
	return added, removed, nil
}

func (s *Store) describe(name string, e os.DirEntry) (Item, bool) {
	path := filepath.Join(s.dir, name)
	info, err := e.Info()
	if err != nil {
		return Item{}, false
	}
	f, err := os.Open(path)
	if err != nil {
		return Item{}, false
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Item{}, false
	}
	return Item{
		Name:      name,
		Path:      path,
		MIME:      "image/" + format,
		Size:      info.Size(),
		Width:     cfg.Width,
		Height:    cfg.Height,
		CreatedAt: info.ModTime(),
	}, true
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// IsImageName reports whether name has an image file extension.
func IsImageName(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}
