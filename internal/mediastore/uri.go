package mediastore

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// FileURI converts a local path into the file:// URI form used for media
// references throughout the application.
func FileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

// PathFromURI resolves a media reference to a local path. Plain paths are
// returned unchanged.
func PathFromURI(uri string) (string, error) {
	if uri == "" {
		return "", fmt.Errorf("empty media reference")
	}
	if !strings.Contains(uri, "://") {
		return uri, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse media reference: %w", err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported media reference scheme %q", u.Scheme)
	}
	return filepath.FromSlash(u.Path), nil
}
