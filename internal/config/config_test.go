package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
runtime = web
theme = my_custom_theme
library_dir = /tmp/library
download_dir = "/tmp/downloads"
shadow = true

[notify]
save = false
download = true
copy = true

[theme.my_custom_theme]
Background = #111111
Accent: gold
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Runtime != "web" {
		t.Errorf("Expected runtime 'web', got '%s'", cfg.Runtime)
	}
	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.LibraryDir != "/tmp/library" {
		t.Errorf("Expected library_dir '/tmp/library', got '%s'", cfg.LibraryDir)
	}
	if cfg.DownloadDir != "/tmp/downloads" {
		t.Errorf("Expected download_dir '/tmp/downloads', got '%s'", cfg.DownloadDir)
	}
	if !cfg.Shadow {
		t.Error("Expected shadow to be true")
	}
	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if !cfg.Notify.Download {
		t.Error("Expected notify.download to be true")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
	if theme.Accent.R != 0xFF || theme.Accent.G != 0xD7 {
		t.Errorf("Unexpected Accent color: %+v", theme.Accent)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"shadow = maybe\n",
		"[notify]\nsave = sometimes\n",
		"[theme.x]\nBackground = #12\n",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `runtime = native
theme = dark
library_dir = /home/user/Pictures/StickerSmash
shadow = false

[notify]
save = true
download = false
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Runtime != cfg2.Runtime || cfg.Theme != cfg2.Theme {
		t.Errorf("Root mismatch: %q/%q vs %q/%q", cfg.Runtime, cfg.Theme, cfg2.Runtime, cfg2.Theme)
	}
	if cfg.LibraryDir != cfg2.LibraryDir {
		t.Errorf("LibraryDir mismatch: %q vs %q", cfg.LibraryDir, cfg2.LibraryDir)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderLookupOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	wd := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(wd); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWD) })

	l := NewLoader("dev", "")
	if got := l.GetConfigPath(); got != "" {
		t.Fatalf("expected no config, got %s", got)
	}

	fallback := filepath.Join(home, "stickersmash", "stickersmash.rc")
	if err := Save(fallback, New()); err != nil {
		t.Fatal(err)
	}
	if got := l.GetConfigPath(); got != fallback {
		t.Fatalf("got %s, want %s", got, fallback)
	}

	primary := filepath.Join(home, "stickersmash", "config.rc")
	if err := Save(primary, New()); err != nil {
		t.Fatal(err)
	}
	if got := l.GetConfigPath(); got != primary {
		t.Fatalf("got %s, want %s", got, primary)
	}

	if err := os.WriteFile(filepath.Join(wd, ".stickersmashrc"), []byte("runtime = web\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Runtime != "web" {
		t.Fatalf("dev build should read ./.stickersmashrc, got runtime %q", cfg.Runtime)
	}
	if got := NewLoader("v1.0.0", "").GetConfigPath(); got != primary {
		t.Fatalf("release builds ignore the local file, got %s", got)
	}
}
