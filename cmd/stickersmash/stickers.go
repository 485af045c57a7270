package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/example/stickersmash/assets"
	"github.com/example/stickersmash/internal/sticker"
)

type stickersCmd struct {
	*root
	fs     *flag.FlagSet
	export string
}

func (s *stickersCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseStickersCmd(args []string, r *root) (*stickersCmd, error) {
	fs := flag.NewFlagSet("stickers", flag.ExitOnError)
	s := &stickersCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.export, "export", "", "write every sticker as a PNG into this directory")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *stickersCmd) Run() error {
	if s.export != "" {
		if err := os.MkdirAll(s.export, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", s.export, err)
		}
	}
	for _, e := range sticker.Catalog() {
		if s.export == "" {
			if err := writef(s.stdout, "%d\t%s\n", int(e.Choice), e.Name); err != nil {
				return err
			}
			continue
		}
		path := filepath.Join(s.export, fmt.Sprintf("%d-%s.png", int(e.Choice), e.Name))
		if err := writeSticker(path, e.Choice); err != nil {
			return err
		}
		fmt.Fprintf(s.stderr, "wrote %s\n", path)
	}
	return nil
}

func writeSticker(path string, c sticker.Choice) error {
	img, err := assets.Sticker(c)
	if err != nil {
		return fmt.Errorf("sticker %s: %w", c, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
