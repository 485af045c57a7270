package main

import (
	"bufio"
	"context"
	"flag"

	"github.com/example/stickersmash/internal/picker"
	"github.com/example/stickersmash/internal/platform"
	"github.com/example/stickersmash/internal/session"
	"github.com/example/stickersmash/internal/ui"
)

type editCmd struct {
	*root
	fs *flag.FlagSet

	image  string
	source string
	libraryFlags
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.image, "image", "", "open this photo instead of asking for one")
	fs.StringVar(&e.source, "source", "portal", "where \"Choose a photo\" looks: portal, library or clipboard")
	fs.StringVar(&e.libraryDir, "library", "", "media library directory")
	fs.StringVar(&e.downloadDir, "downloads", "", "directory web exports are downloaded to")
	fs.BoolVar(&e.shadow, "shadow", false, "draw a drop shadow under the sticker")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

func (e *editCmd) Run() error {
	store, err := e.openLibrary(e.libraryDir)
	if err != nil {
		return err
	}
	defer closeWithLog("library", store)

	src, err := pickerFor(e.source, store)
	if err != nil {
		return err
	}
	opts := e.controllerOptions(store, src, e.libraryFlags)
	opts.Permissions = store.Permissions(desktopPrompt(platform.Ask, stdinPrompt(bufio.NewScanner(e.stdin), e.stderr)))
	ctl := session.New(opts)
	defer ctl.Close()
	if e.image != "" {
		file := picker.File{Path: e.image}
		res, err := file.PickOne(context.Background(), picker.Options{AllowEditing: true, Quality: 1})
		if err != nil {
			return err
		}
		ctl.Apply(session.ImagePicked{URI: res.URI})
	}

	app := ui.New(ui.Options{
		Controller: ctl,
		Theme:      e.activeTheme,
		Title:      "StickerSmash",
	})
	app.Run()
	return nil
}
