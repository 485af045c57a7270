//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package picker

import (
	"context"
	"fmt"
)

// Portal is only available where xdg-desktop-portal runs.
type Portal struct {
	Title string
}

// PickOne implements Picker.
func (Portal) PickOne(context.Context, Options) (Result, error) {
	return Result{}, fmt.Errorf("portal file chooser is not supported on this platform")
}
