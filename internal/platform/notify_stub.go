//go:build !linux && !darwin && !windows

package platform

import "context"

// Notify is a no-op on unsupported platforms.
func Notify(title, body string, opts Options) error {
	return nil
}

// Ask always reports ErrUnsupported.
func Ask(ctx context.Context, title, body string, opts Options) (bool, error) {
	return false, ErrUnsupported
}
