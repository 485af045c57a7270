package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/stickersmash/internal/mediastore"
	"github.com/example/stickersmash/internal/picker"
	"github.com/example/stickersmash/internal/session"
	"github.com/example/stickersmash/internal/sticker"
)

var errNoSticker = errors.New("no sticker selected; use add and sticker <n> first")

type interactiveCmd struct {
	*root
	fs *flag.FlagSet

	execs  commandList
	source string
	libraryFlags

	ctl      *session.Controller
	nextPath string
	lines    *bufio.Scanner
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	i := &interactiveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(i)
	fs.Var(&i.execs, "e", "execute interactive command in immediate mode (may be specified multiple times)")
	fs.StringVar(&i.source, "source", "library", "where pick looks without a path: portal, library or clipboard")
	fs.StringVar(&i.libraryDir, "library", "", "media library directory")
	fs.StringVar(&i.downloadDir, "downloads", "", "directory web exports are downloaded to")
	fs.BoolVar(&i.shadow, "shadow", false, "draw a drop shadow under the sticker")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *interactiveCmd) Run() error {
	store, err := i.openLibrary(i.libraryDir)
	if err != nil {
		return err
	}
	defer closeWithLog("library", store)
	if err := i.start(store); err != nil {
		return err
	}
	defer i.ctl.Close()

	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(i.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	for {
		fmt.Fprint(i.stdout, "> ")
		if !i.lines.Scan() {
			break
		}
		done, err := i.executeLine(i.lines.Text())
		if err != nil {
			fmt.Fprintln(i.stderr, err)
		}
		if done {
			break
		}
	}
	return i.lines.Err()
}

// start builds the session. A path given to pick takes precedence over the
// configured source for that one pick.
func (i *interactiveCmd) start(store *mediastore.Store) error {
	fallback, err := pickerFor(i.source, store)
	if err != nil {
		return err
	}
	src := picker.Func(func(ctx context.Context, opts picker.Options) (picker.Result, error) {
		if path := i.nextPath; path != "" {
			i.nextPath = ""
			return picker.File{Path: path}.PickOne(ctx, opts)
		}
		return fallback.PickOne(ctx, opts)
	})
	opts := i.controllerOptions(store, src, i.libraryFlags)
	i.lines = bufio.NewScanner(i.stdin)
	opts.Permissions = store.Permissions(stdinPrompt(i.lines, i.stderr))
	i.ctl = session.New(opts)
	return nil
}

// executeLine runs one command and reports whether the session should end.
func (i *interactiveCmd) executeLine(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}
	ctx := context.Background()
	c := i.ctl
	switch strings.ToLower(args[0]) {
	case "exit", "quit":
		return true, nil
	case "help":
		i.printHelp(i.stdout)
	case "pick":
		if len(args) > 1 {
			i.nextPath = strings.Join(args[1:], " ")
		}
		report(i.stderr, c, c.Pick(ctx))
	case "use":
		c.Apply(session.UsePhoto{})
	case "reset":
		c.Apply(session.Reset{})
	case "add":
		c.Apply(session.OpenPicker{})
	case "close":
		c.Apply(session.ClosePicker{})
	case "sticker":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: sticker <1-%d|name>", sticker.Count)
		}
		choice, err := sticker.Parse(args[1])
		if err != nil {
			return false, err
		}
		c.Apply(session.SelectSticker{Choice: choice})
	case "drag":
		if len(args) != 3 {
			return false, fmt.Errorf("usage: drag <dx> <dy>")
		}
		d, err := parseOffset(args[1] + "," + args[2])
		if err != nil {
			return false, err
		}
		if err := drag(c, d); err != nil {
			return false, err
		}
	case "tap":
		n := 1
		if len(args) > 1 {
			v, err := strconv.Atoi(args[1])
			if err != nil || v < 0 {
				return false, fmt.Errorf("invalid tap count %q", args[1])
			}
			n = v
		}
		if err := doubleTaps(c, n); err != nil {
			return false, err
		}
	case "save":
		if err := exportResult(i.stderr, c, c.Save(ctx)); err != nil {
			return false, err
		}
	case "copy":
		if err := exportResult(i.stderr, c, c.Copy(ctx)); err != nil {
			return false, err
		}
	case "state":
		printState(i.stdout, c.State())
	default:
		return false, fmt.Errorf("unknown command %q (type 'help')", args[0])
	}
	return false, nil
}

func (i *interactiveCmd) printHelp(w io.Writer) {
	lines := []string{
		"pick [path]     choose a photo (no path uses the configured source)",
		"use             keep the placeholder and start editing",
		"reset           back to the photo toolbar",
		"add             open the sticker picker",
		"close           close the sticker picker",
		"sticker <n>     choose sticker 1-6 or by name",
		"drag <dx> <dy>  move the sticker in one gesture",
		"tap [n]         double-tap the sticker n times, doubling it each time",
		"save            export the composition",
		"copy            copy the composition to the clipboard",
		"state           show the session state",
		"exit            leave",
	}
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

// drag applies one complete gesture.
func drag(c *session.Controller, d offset) error {
	if !c.State().Sticker.Valid() {
		return errNoSticker
	}
	c.Apply(session.DragStart{})
	c.Apply(session.DragMove{DX: d.dx, DY: d.dy})
	c.Apply(session.DragEnd{})
	return nil
}

func doubleTaps(c *session.Controller, n int) error {
	if n > 0 && !c.State().Sticker.Valid() {
		return errNoSticker
	}
	for range n {
		c.Apply(session.DoubleTap{})
	}
	return nil
}

// exportResult reports a finished export or turns a failed one into an error.
func exportResult(w io.Writer, c *session.Controller, msg session.Msg) error {
	if f, ok := msg.(session.ExportFailed); ok {
		return fmt.Errorf("%s: %w", f.Op, f.Err)
	}
	report(w, c, msg)
	return nil
}

func printState(w io.Writer, st session.State) {
	image := st.Image
	if image == "" {
		image = "(placeholder)"
	}
	t := st.Transform.Transform
	fmt.Fprintf(w, "mode: %s\n", st.Mode)
	fmt.Fprintf(w, "image: %s\n", image)
	fmt.Fprintf(w, "sticker: %s (%d)\n", st.Sticker, int(st.Sticker))
	fmt.Fprintf(w, "transform: x=%g y=%g scale=%g\n", t.OffsetX, t.OffsetY, t.Scale)
	fmt.Fprintf(w, "picker open: %v\n", st.ModalVisible)
	if st.Notice.Kind != session.NoticeNone {
		fmt.Fprintf(w, "notice: %s\n", st.Notice.Text)
	}
}
