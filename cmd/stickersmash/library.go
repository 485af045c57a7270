package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/example/stickersmash/internal/mediastore"
)

// watchDebounce folds bursts of file events into one resync.
const watchDebounce = 250 * time.Millisecond

type libraryCmd struct {
	*root
	fs         *flag.FlagSet
	libraryDir string
	op         string
	args       []string
}

func (l *libraryCmd) FlagSet() *flag.FlagSet {
	return l.fs
}

func parseLibraryCmd(args []string, r *root) (*libraryCmd, error) {
	fs := flag.NewFlagSet("library", flag.ExitOnError)
	l := &libraryCmd{root: r, fs: fs}
	fs.Usage = usageFunc(l)
	fs.StringVar(&l.libraryDir, "library", "", "media library directory")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: l}
	}
	l.op = strings.ToLower(fs.Arg(0))
	l.args = fs.Args()[1:]
	return l, nil
}

func (l *libraryCmd) Run() error {
	store, err := l.openLibrary(l.libraryDir)
	if err != nil {
		return err
	}
	defer closeWithLog("library", store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch l.op {
	case "list":
		return l.runList(ctx, store)
	case "watch":
		return l.runWatch(ctx, store)
	case "permission":
		return l.runPermission(ctx, store)
	default:
		return &UsageError{of: l}
	}
}

func (l *libraryCmd) runList(ctx context.Context, store *mediastore.Store) error {
	if _, _, err := store.Sync(ctx); err != nil {
		return err
	}
	items, err := store.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(l.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tCREATED")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%dx%d\t%s\n", it.ID, it.Name, it.Width, it.Height, it.CreatedAt.Format(time.DateTime))
	}
	return tw.Flush()
}

func (l *libraryCmd) runWatch(ctx context.Context, store *mediastore.Store) error {
	fmt.Fprintf(l.stderr, "watching %s (Ctrl+C to stop)\n", store.Dir())
	return store.Watch(ctx, watchDebounce, func(c mediastore.Change) {
		fmt.Fprintf(l.stdout, "%s %s: +%d -%d\n", strings.ToLower(c.Op.String()), c.Path, c.Added, c.Removed)
	})
}

func (l *libraryCmd) runPermission(ctx context.Context, store *mediastore.Store) error {
	perms := store.Permissions(stdinPrompt(bufio.NewScanner(l.stdin), l.stderr))
	op := "status"
	if len(l.args) > 0 {
		op = strings.ToLower(l.args[0])
	}
	var (
		status mediastore.Permission
		err    error
	)
	switch op {
	case "status":
		status, err = perms.Status(ctx)
	case "request":
		status, err = perms.Request(ctx)
	case "revoke":
		if err := perms.Revoke(ctx); err != nil {
			return err
		}
		status = mediastore.Undetermined
	default:
		return fmt.Errorf("unknown permission command: %s", op)
	}
	if err != nil {
		return err
	}
	return writef(l.stdout, "%s\n", status)
}
