package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"no tags", func(c *Config) { c.Tags = nil }, "at least one tag"},
		{"too many tags", func(c *Config) { c.Tags = make([]string, 32) }, "maximum is 31"},
		{"mfact too small", func(c *Config) { c.MFact = 4 }, "mfact"},
		{"mfact too large", func(c *Config) { c.MFact = 96 }, "mfact"},
		{"negative gap", func(c *Config) { c.Gap = -1 }, "gap"},
		{"negative snap", func(c *Config) { c.Snap = -1 }, "snap"},
		{"negative border", func(c *Config) { c.BorderWidth = -1 }, "border_width"},
		{"unknown layout", func(c *Config) { c.DefaultLayout = "spiral" }, "default_layout"},
		{"empty mode name", func(c *Config) { c.Modes = []string{""} }, "empty mode"},
		{"duplicate mode", func(c *Config) { c.Modes = []string{"x", "x"} }, "duplicate mode"},
		{"redeclared normal", func(c *Config) { c.Modes = []string{"normal"} }, "duplicate mode"},
		{"key without keysym", func(c *Config) {
			c.Keys = append(c.Keys, Key{Action: "zoom"})
		}, "missing key"},
		{"unknown action", func(c *Config) {
			c.Keys = append(c.Keys, Key{Key: "z", Action: "teleport"})
		}, "unknown action"},
		{"undeclared key mode", func(c *Config) {
			c.Keys = append(c.Keys, Key{Key: "z", Mode: "ghost", Action: "zoom"})
		}, "undeclared mode"},
		{"push-mode without target", func(c *Config) {
			c.Keys = append(c.Keys, Key{Key: "z", Action: "push-mode"})
		}, "push-mode"},
		{"push-mode to unknown target", func(c *Config) {
			c.Keys = append(c.Keys, Key{Key: "z", Action: "push-mode", Arg: Arg{Mode: "ghost"}})
		}, "push-mode"},
		{"unknown region", func(c *Config) {
			c.Buttons = append(c.Buttons, Button{Region: "corner", Button: 1, Action: "zoom"})
		}, "unknown region"},
		{"button out of range", func(c *Config) {
			c.Buttons = append(c.Buttons, Button{Region: "title", Button: 6, Action: "zoom"})
		}, "out of range"},
		{"unknown button action", func(c *Config) {
			c.Buttons = append(c.Buttons, Button{Region: "title", Button: 1, Action: "teleport"})
		}, "unknown action"},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: Validate accepted the config", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.wantErr)
		}
	}
}

func TestModeIndex(t *testing.T) {
	cfg := &Config{Modes: []string{"browser", "media"}}

	cases := []struct {
		name string
		want int
		ok   bool
	}{
		{"", 0, true},
		{"normal", 0, true},
		{"browser", 1, true},
		{"media", 2, true},
		{"ghost", 0, false},
	}
	for _, tc := range cases {
		got, ok := cfg.ModeIndex(tc.name)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ModeIndex(%q) = %d, %v, want %d, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
	if got := cfg.ModeCount(); got != 3 {
		t.Errorf("ModeCount = %d, want 3", got)
	}
}

func TestTagMask(t *testing.T) {
	cfg := &Config{Tags: []string{"a", "b", "c"}}
	if got := cfg.TagMask(); got != 0b111 {
		t.Errorf("TagMask = %#x, want 0x7", got)
	}
	cfg.Tags = make([]string, 9)
	if got := cfg.TagMask(); got != 0x1ff {
		t.Errorf("TagMask = %#x, want 0x1ff", got)
	}
}

func TestKeySequence(t *testing.T) {
	cases := []struct {
		key  Key
		want string
	}{
		{Key{Mods: "mod4", Key: "t"}, "mod4-t"},
		{Key{Mods: "Mod4-Shift", Key: "Return"}, "mod4-shift-Return"},
		{Key{Mods: "", Key: "XF86AudioMute"}, "XF86AudioMute"},
		{Key{Mods: "  mod1 ", Key: "F1"}, "mod1-F1"},
	}
	for _, tc := range cases {
		if got := tc.key.Sequence(); got != tc.want {
			t.Errorf("Sequence(%+v) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.MFact != Default().MFact {
		t.Error("missing file did not fall back to defaults")
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "mfact: 70\ngap: 0\ntags: [one, two]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.MFact != 70 {
		t.Errorf("mfact = %d, want 70", cfg.MFact)
	}
	if cfg.Gap != 0 {
		t.Errorf("gap = %d, want 0", cfg.Gap)
	}
	if len(cfg.Tags) != 2 {
		t.Errorf("tags = %v, want the two from the file", cfg.Tags)
	}
	// Untouched fields keep their defaults.
	if cfg.Snap != 32 {
		t.Errorf("snap = %d, want the default 32", cfg.Snap)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mfact: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile accepted an out-of-range mfact")
	}
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(": not yaml ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile accepted malformed yaml")
	}
}
