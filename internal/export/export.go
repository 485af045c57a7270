// Package export writes the finished composition out of the application.
// Which exporter runs depends on the runtime the program was started for.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/example/stickersmash/internal/compose"
	"github.com/example/stickersmash/internal/mediastore"
)

var (
	// ErrCapture wraps failures to render or encode the composition.
	ErrCapture = errors.New("capture failed")
	// ErrPersistence wraps failures to store the captured image.
	ErrPersistence = errors.New("persist failed")
)

// Runtime selects the export variant.
type Runtime string

const (
	RuntimeNative Runtime = "native"
	RuntimeWeb    Runtime = "web"
)

// EnvRuntime overrides the configured runtime.
const EnvRuntime = "STICKERSMASH_RUNTIME"

// ParseRuntime validates a runtime name.
func ParseRuntime(s string) (Runtime, error) {
	switch Runtime(strings.ToLower(strings.TrimSpace(s))) {
	case RuntimeNative:
		return RuntimeNative, nil
	case RuntimeWeb, "browser":
		return RuntimeWeb, nil
	}
	return "", fmt.Errorf("unknown runtime %q (want native or web)", s)
}

// Detect picks the runtime from the command line flag, the environment and
// the configuration file, in that order. Unknown values are skipped.
func Detect(flagValue, configValue string) Runtime {
	for _, v := range []string{flagValue, os.Getenv(EnvRuntime), configValue} {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if rt, err := ParseRuntime(v); err == nil {
			return rt
		}
	}
	return RuntimeNative
}

// Kind describes where an export ended up.
type Kind int

const (
	Saved Kind = iota + 1
	Downloaded
	Copied
)

func (k Kind) String() string {
	switch k {
	case Saved:
		return "saved"
	case Downloaded:
		return "downloaded"
	case Copied:
		return "copied"
	default:
		return "unknown"
	}
}

// Result reports a completed export.
type Result struct {
	Kind Kind
	// Location is the file written, when there is one.
	Location string
}

// Exporter captures a view and hands it to a destination. Every call is
// independent; exporting twice produces two artifacts.
type Exporter interface {
	Export(ctx context.Context, v compose.View) (Result, error)
}

// Saver persists a captured file. *mediastore.Store satisfies it.
type Saver interface {
	Save(ctx context.Context, uri string) (mediastore.Item, error)
}

// New returns the exporter for rt.
func New(rt Runtime, store Saver, downloadDir string) Exporter {
	if rt == RuntimeWeb {
		return &Web{Downloader: &DirDownloader{Dir: downloadDir}}
	}
	return &Native{Store: store}
}
