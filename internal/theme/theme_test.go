package theme

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#25292E", color.RGBA{0x25, 0x29, 0x2E, 0xFF}, true},
		{"#FFD33D80", color.RGBA{0xFF, 0xD3, 0x3D, 0x80}, true},
		{"gold", color.RGBA{0xFF, 0xD7, 0x00, 0xFF}, true},
		{"#123", color.RGBA{}, false},
		{"nocolor", color.RGBA{}, false},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("ParseColor(%q) err = %v", tc.in, err)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: mine\nbackground: #000000\nUnknown: #FFFFFF\n"))
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "mine" {
		t.Fatalf("name = %q", th.Name)
	}
	if th.Background != (color.RGBA{0, 0, 0, 0xFF}) {
		t.Fatalf("background = %v", th.Background)
	}
	if th.Accent != Default().Accent {
		t.Fatalf("accent should keep the default, got %v", th.Accent)
	}
}

func TestLoadEmbedded(t *testing.T) {
	l := &Loader{}
	for _, name := range []string{"dark", "light"} {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if th.Name != name {
			t.Fatalf("name = %q, want %q", th.Name, name)
		}
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestLoadPrefersConfiguredThemes(t *testing.T) {
	custom := Default()
	custom.Name = "dark"
	custom.Accent = color.RGBA{1, 2, 3, 255}
	l := &Loader{Extra: map[string]*Theme{"dark": custom}}
	th, err := l.Load("dark")
	if err != nil {
		t.Fatal(err)
	}
	if th != custom {
		t.Fatal("configured theme should win over the embedded one")
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	var sb strings.Builder
	for _, f := range Fields(Default()) {
		sb.WriteString(f.Name + ": " + Hex(f.Color) + "\n")
	}
	th, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatal(err)
	}
	th.Name = Default().Name
	if *th != *Default() {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", th, Default())
	}
}

func TestNames(t *testing.T) {
	l := &Loader{Extra: map[string]*Theme{"zebra": Default()}}
	got := strings.Join(l.Names(), ",")
	if got != "dark,light,zebra" {
		t.Fatalf("names = %s", got)
	}
}
