//go:build darwin

package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Notify displays a desktop notification using macOS Notification Center.
// The exported file name, when known, is shown as the subtitle.
func Notify(title, body string, opts Options) error {
	subtitle := AppName
	if opts.IconPath != "" {
		subtitle = opts.IconPath[strings.LastIndex(opts.IconPath, "/")+1:]
	}
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", body, title, subtitle)
	return exec.Command("osascript", "-e", script).Run()
}

// Ask shows a modal dialog with Allow and Don't Allow buttons.
func Ask(ctx context.Context, title, body string, opts Options) (bool, error) {
	script := fmt.Sprintf(`button returned of (display dialog %q with title %q buttons {"Don't Allow", "Allow"} default button "Allow" cancel button "Don't Allow")`, body, title)
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if _, ok := err.(*exec.ExitError); ok {
			// The cancel button exits non-zero.
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return strings.TrimSpace(string(out)) == "Allow", nil
}
