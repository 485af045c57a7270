package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/example/stickersmash/internal/export"
	"github.com/example/stickersmash/internal/mediastore"
	"github.com/example/stickersmash/internal/picker"
	"github.com/example/stickersmash/internal/session"
	"github.com/example/stickersmash/internal/sticker"
)

type composeCmd struct {
	*root
	fs *flag.FlagSet

	image       string
	sticker     string
	drags       offsetList
	taps        int
	toClipboard bool
	libraryFlags
}

func (c *composeCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseComposeCmd(args []string, r *root) (*composeCmd, error) {
	fs := flag.NewFlagSet("compose", flag.ExitOnError)
	c := &composeCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.image, "image", "", "photo to place the sticker on")
	fs.StringVar(&c.sticker, "sticker", "", "sticker number (1-6) or name")
	fs.Var(&c.drags, "drag", "move the sticker by dx,dy in one gesture (may be specified multiple times)")
	fs.IntVar(&c.taps, "taps", 0, "double-tap the sticker this many times")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard instead of exporting it")
	fs.StringVar(&c.libraryDir, "library", "", "media library directory")
	fs.StringVar(&c.downloadDir, "downloads", "", "directory web exports are downloaded to")
	fs.BoolVar(&c.shadow, "shadow", false, "draw a drop shadow under the sticker")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.image == "" || fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	if c.taps < 0 {
		return nil, fmt.Errorf("-taps must not be negative")
	}
	if (len(c.drags) > 0 || c.taps > 0) && c.sticker == "" {
		return nil, fmt.Errorf("-drag and -taps need a -sticker")
	}
	return c, nil
}

func (c *composeCmd) Run() error {
	var store *mediastore.Store
	if c.runtime == export.RuntimeNative && !c.toClipboard {
		s, err := c.openLibrary(c.libraryDir)
		if err != nil {
			return err
		}
		defer closeWithLog("library", s)
		store = s
	}

	ctl := session.New(c.controllerOptions(store, picker.File{Path: c.image}, c.libraryFlags))
	defer ctl.Close()
	ctx := context.Background()
	if _, ok := ctl.Pick(ctx).(session.ImagePicked); !ok {
		return fmt.Errorf("compose: could not open %s", c.image)
	}
	if c.sticker != "" {
		choice, err := sticker.Parse(c.sticker)
		if err != nil {
			return err
		}
		ctl.Apply(session.OpenPicker{})
		ctl.Apply(session.SelectSticker{Choice: choice})
	}
	for _, d := range c.drags {
		if err := drag(ctl, d); err != nil {
			return err
		}
	}
	if err := doubleTaps(ctl, c.taps); err != nil {
		return err
	}

	var msg session.Msg
	if c.toClipboard {
		msg = ctl.Copy(ctx)
	} else {
		msg = ctl.Save(ctx)
	}
	if err := exportResult(c.stderr, ctl, msg); err != nil {
		return fmt.Errorf("compose %w", err)
	}
	return nil
}
