package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath returns the standard per-user config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tesswm", "config.yaml"), nil
}

// Load reads the config from the standard location. A missing file is not an
// error: the built-in defaults are returned.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads and validates a config file, merging it over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration: nine tags, a 55% master
// column, 6px gaps, 32px snap distance, and a mod4-driven keymap with a
// "browser" launcher mode.
func Default() *Config {
	mod := "mod4"
	shift := mod + "-shift"

	keys := []Key{
		{Mods: mod, Key: "space", Action: "spawn", Arg: Arg{Cmd: []string{"dmenu_run"}}},
		{Mods: mod, Key: "t", Action: "spawn", Arg: Arg{Cmd: []string{"st"}}},
		{Mods: mod, Key: "b", Action: "push-mode", Arg: Arg{Mode: "browser"}},

		{Mods: mod, Key: "b", Mode: "browser", Action: "spawn", Arg: Arg{Cmd: []string{"firefox"}}},
		{Mods: mod, Key: "Escape", Mode: "browser", Action: "pop-mode"},

		{Mods: mod, Key: "f", Action: "toggle-layout"},
		{Mods: mod, Key: "h", Action: "focus-stack", Arg: Arg{Int: -1}},
		{Mods: mod, Key: "l", Action: "focus-stack", Arg: Arg{Int: 1}},
		{Mods: mod, Key: "j", Action: "set-mfact", Arg: Arg{Int: -5}},
		{Mods: mod, Key: "k", Action: "set-mfact", Arg: Arg{Int: 5}},

		{Mods: shift, Key: "j", Action: "move-y", Arg: Arg{Int: 1}},
		{Mods: shift, Key: "k", Action: "move-y", Arg: Arg{Int: -1}},
		{Mods: shift, Key: "h", Action: "move-x", Arg: Arg{Int: -1}},
		{Mods: shift, Key: "l", Action: "move-x", Arg: Arg{Int: 1}},

		{Mods: mod, Key: "slash", Action: "toggle-floating"},
		{Mods: mod, Key: "Return", Action: "zoom"},
		{Mods: mod, Key: "w", Action: "kill"},

		{Mods: mod, Key: "comma", Action: "focus-monitor", Arg: Arg{Int: -1}},
		{Mods: mod, Key: "period", Action: "focus-monitor", Arg: Arg{Int: 1}},
		{Mods: shift, Key: "comma", Action: "tag-monitor", Arg: Arg{Int: -1}},
		{Mods: shift, Key: "period", Action: "tag-monitor", Arg: Arg{Int: 1}},

		{Mods: mod, Key: "0", Action: "view", Arg: Arg{Bits: ^uint32(0)}},
		{Mods: shift, Key: "0", Action: "tag", Arg: Arg{Bits: ^uint32(0)}},

		{Mods: shift, Key: "q", Action: "quit"},
		{Mods: mod, Key: "y", Action: "resize", Arg: Arg{Int: 1}},
		{Mods: shift, Key: "y", Action: "resize", Arg: Arg{Int: -1}},
	}

	for tag := 0; tag < 9; tag++ {
		key := fmt.Sprintf("%d", tag+1)
		mask := uint32(1) << uint(tag)
		keys = append(keys,
			Key{Mods: mod, Key: key, Action: "view", Arg: Arg{Bits: mask}},
			Key{Mods: shift, Key: key, Action: "tag", Arg: Arg{Bits: mask}},
		)
	}

	return &Config{
		Tags:        []string{"Main", ">_", "3", "4", "5", "6", "7", "8", "9"},
		MFact:       55,
		Gap:         6,
		Snap:        32,
		BorderWidth: 2,
		ShowBar:     true,
		TopBar:      true,
		FontSize:    12,
		Colors: Colors{
			Normal:   SchemeColors{Fg: "#bbbbbb", Bg: "#222222", Border: "#444444"},
			Selected: SchemeColors{Fg: "#fa2106", Bg: "#222222", Border: "#005577"},
			Mode:     SchemeColors{Fg: "#bbbbbb", Bg: "#11750a", Border: "#444444"},
		},
		DefaultLayout: "tile",
		Modes:         []string{"browser"},
		Keys:          keys,
		Buttons: []Button{
			{Region: "title", Button: 2, Action: "zoom"},
			{Region: "status", Button: 1, Action: "status-signal", Arg: Arg{Int: 1}},
			{Region: "status", Button: 2, Action: "status-signal", Arg: Arg{Int: 2}},
			{Region: "status", Button: 3, Action: "status-signal", Arg: Arg{Int: 3}},
			{Region: "client", Mods: mod, Button: 1, Action: "move-mouse"},
			{Region: "client", Mods: mod, Button: 3, Action: "resize-mouse"},
			{Region: "tagbar", Button: 1, Action: "view"},
			{Region: "tagbar", Button: 3, Action: "toggle-view"},
			{Region: "tagbar", Mods: mod, Button: 1, Action: "tag"},
			{Region: "tagbar", Mods: mod, Button: 3, Action: "toggle-tag"},
		},
		LogLevel: "info",
	}
}

// Sequence renders the binding as an xgbutil keybind sequence,
// e.g. "mod4-shift-t".
func (k Key) Sequence() string {
	mods := normalizeMods(k.Mods)
	if mods == "" {
		return k.Key
	}
	return mods + "-" + k.Key
}
