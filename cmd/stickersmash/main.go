package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/example/stickersmash/internal/config"
	"github.com/example/stickersmash/internal/export"
	"github.com/example/stickersmash/internal/notify"
	"github.com/example/stickersmash/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs             *flag.FlagSet
	program        string
	notifier       *notify.Notifier
	config         *config.Config
	saveAlerts     bool
	downloadAlerts bool
	copyAlerts     bool
	runtimeName    string
	themeName      string
	runtime        export.Runtime
	activeTheme    *theme.Theme

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("stickersmash", flag.ExitOnError),
		program:  "stickersmash",
		notifier: notify.New(prefs),
		config:   cfg,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.StringVar(&r.runtimeName, "runtime", "", "export runtime: native saves to the media library, web downloads a JPEG")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving to the library")
	r.fs.BoolVar(&r.downloadAlerts, "notify-download", cfg.Notify.Download, "show a desktop notification after a download")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, light or a file)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventDownload, r.downloadAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	if r.runtimeName != "" {
		if _, err := export.ParseRuntime(r.runtimeName); err != nil {
			return err
		}
	}
	r.runtime = export.Detect(r.runtimeName, r.config.Runtime)
	r.activeTheme = r.loadTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "compose":
		cmd, err = parseComposeCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "stickers":
		cmd, err = parseStickersCmd(subArgs, r)
	case "library":
		cmd, err = parseLibraryCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) loadTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv(theme.EnvTheme)
	}
	if name == "" {
		name = r.config.Theme
	}
	loader := theme.NewLoader()
	loader.Extra = r.config.Themes
	t, err := loader.Load(name)
	if err != nil {
		if name != "" && !strings.EqualFold(name, "default") {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		t = theme.Default()
	}
	return t
}

func main() {
	log.SetPrefix("stickersmash: ")
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
