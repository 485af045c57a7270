package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/stickersmash/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save     bool
	Download bool
	Copy     bool
}

// Config holds the application configuration.
type Config struct {
	Runtime     string
	Theme       string
	LibraryDir  string
	DownloadDir string
	Shadow      bool
	Notify      Notify
	Themes      map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // Default to empty to allow fallback to Env/Default
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	for _, kv := range [][2]string{
		{"runtime", c.Runtime},
		{"theme", c.Theme},
		{"library_dir", c.LibraryDir},
		{"download_dir", c.DownloadDir},
	} {
		if kv[1] != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv[0], kv[1])
		}
	}
	fmt.Fprintf(&sb, "shadow = %v\n", c.Shadow)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "download = %v\n", c.Notify.Download)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name = %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s = %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
