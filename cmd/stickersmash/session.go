package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/example/stickersmash/internal/export"
	"github.com/example/stickersmash/internal/mediastore"
	"github.com/example/stickersmash/internal/picker"
	"github.com/example/stickersmash/internal/platform"
	"github.com/example/stickersmash/internal/session"
)

// libraryFlags are shared by every command that touches the media library.
type libraryFlags struct {
	libraryDir  string
	downloadDir string
	shadow      bool
}

func (r *root) openLibrary(dir string) (*mediastore.Store, error) {
	if dir == "" && r.config != nil {
		dir = r.config.LibraryDir
	}
	if dir == "" {
		dir = mediastore.DefaultDir()
	}
	store, err := mediastore.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open library %s: %w", dir, err)
	}
	return store, nil
}

func (r *root) resolveDownloadDir(dir string) string {
	if dir == "" && r.config != nil {
		dir = r.config.DownloadDir
	}
	if dir == "" {
		dir = export.DefaultDownloadDir()
	}
	return dir
}

// controllerOptions assembles the capabilities of one editing session.
func (r *root) controllerOptions(store *mediastore.Store, src picker.Picker, lf libraryFlags) session.Options {
	shadow := lf.shadow
	if r.config != nil {
		shadow = shadow || r.config.Shadow
	}
	opts := session.Options{
		Picker:   src,
		Exporter: export.New(r.runtime, store, r.resolveDownloadDir(lf.downloadDir)),
		Copier:   &export.Clipboard{},
		Shadow:   shadow,
		Logger:   log.Default(),
	}
	if r.notifier != nil {
		opts.Notifier = r.notifier
	}
	return opts
}

// pickerFor maps a -source name to a media source.
func pickerFor(source string, store *mediastore.Store) (picker.Picker, error) {
	switch strings.ToLower(source) {
	case "", "portal":
		return picker.Portal{Title: "Choose a photo"}, nil
	case "library":
		return picker.Library{Store: store}, nil
	case "clipboard", "clip":
		return picker.Clipboard{}, nil
	}
	return nil, fmt.Errorf("unknown source %q (want portal, library or clipboard)", source)
}

const permissionQuestion = "Allow StickerSmash to access your photo library?"

// askTimeout bounds how long a desktop question waits for an answer.
const askTimeout = 2 * time.Minute

type askFunc func(ctx context.Context, title, body string, opts platform.Options) (bool, error)

// stdinPrompt asks for library access on the terminal. The answer is read
// from lines so a REPL sharing the same input does not lose it.
func stdinPrompt(lines *bufio.Scanner, out io.Writer) mediastore.Prompt {
	return func(ctx context.Context) (bool, error) {
		fmt.Fprint(out, permissionQuestion+" [y/N] ")
		if !lines.Scan() {
			if err := lines.Err(); err != nil {
				return false, err
			}
			return false, io.EOF
		}
		switch strings.ToLower(strings.TrimSpace(lines.Text())) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// desktopPrompt asks through the desktop and falls back to the terminal when
// the host cannot show the question.
func desktopPrompt(ask askFunc, fallback mediastore.Prompt) mediastore.Prompt {
	return func(ctx context.Context) (bool, error) {
		actx, cancel := context.WithTimeout(ctx, askTimeout)
		defer cancel()
		ok, err := ask(actx, "StickerSmash", permissionQuestion, platform.Options{})
		if errors.Is(err, platform.ErrUnsupported) && fallback != nil {
			log.Printf("library permission: %v; asking on the terminal", err)
			return fallback(ctx)
		}
		return ok, err
	}
}

// report prints the outcome of a session message for the user.
func report(w io.Writer, c *session.Controller, msg session.Msg) {
	switch m := msg.(type) {
	case session.ImagePicked:
		fmt.Fprintf(w, "picked %s\n", m.URI)
	case session.PickCancelled:
		fmt.Fprintln(w, c.State().Notice.Text)
	case session.ExportDone:
		switch m.Result.Kind {
		case export.Saved:
			fmt.Fprintf(w, "saved %s\n", m.Result.Location)
		case export.Downloaded:
			fmt.Fprintf(w, "downloaded %s\n", m.Result.Location)
		case export.Copied:
			fmt.Fprintln(w, "copied to clipboard")
		}
	}
}
