package config

import (
	"fmt"
	"strings"
)

// maxTags is the widest tag bitmask the engine supports. Tag membership is
// stored in a uint32 with the top bit reserved for "all tags".
const maxTags = 31

// SchemeColors holds the three colors of one bar/border color scheme.
type SchemeColors struct {
	Fg     string `yaml:"fg"`
	Bg     string `yaml:"bg"`
	Border string `yaml:"border"`
}

// Colors maps scheme names to their color triples.
type Colors struct {
	Normal   SchemeColors `yaml:"normal"`
	Selected SchemeColors `yaml:"selected"`
	Mode     SchemeColors `yaml:"mode"`
}

// Key binds a keystroke in one mode to an action.
type Key struct {
	Mods   string `yaml:"mods"`   // e.g. "mod4", "mod4-shift"; empty for none
	Key    string `yaml:"key"`    // keysym name, e.g. "t", "Return", "XF86AudioMute"
	Mode   string `yaml:"mode"`   // mode name; empty means "normal"
	Action string `yaml:"action"` // one of the engine's action names
	Arg    Arg    `yaml:"arg,omitempty"`
}

// Button binds a pointer button over a click region to an action.
type Button struct {
	Region string `yaml:"region"` // tagbar, title, status, client, root
	Mods   string `yaml:"mods"`
	Button int    `yaml:"button"` // 1..5
	Action string `yaml:"action"`
	Arg    Arg    `yaml:"arg,omitempty"`
}

// Arg is the argument carried by a binding. Exactly the fields the named
// action consumes are read; the rest are ignored.
type Arg struct {
	Int  int      `yaml:"int,omitempty"`  // signed amounts: ±1 direction, ±5 mfact step
	Bits uint32   `yaml:"bits,omitempty"` // tag bitmask for view/tag actions
	Cmd  []string `yaml:"cmd,omitempty"`  // argv for spawn
	Mode string   `yaml:"mode,omitempty"` // target mode name for push-mode
}

// Config is the full startup configuration. It is read once and never
// mutated afterwards.
type Config struct {
	Tags        []string `yaml:"tags"`
	MFact       int      `yaml:"mfact"`
	Gap         int      `yaml:"gap"`
	Snap        int      `yaml:"snap"`
	BorderWidth int      `yaml:"border_width"`
	ShowBar     bool     `yaml:"show_bar"`
	TopBar      bool     `yaml:"top_bar"`

	Font     string  `yaml:"font"` // TTF path; empty tries the built-in fallbacks
	FontSize float64 `yaml:"font_size"`
	Colors   Colors  `yaml:"colors"`

	DefaultLayout string `yaml:"default_layout"` // "tile" or "monocle"

	Modes   []string `yaml:"modes"` // additional modes; "normal" is implicit mode 0
	Keys    []Key    `yaml:"keys"`
	Buttons []Button `yaml:"buttons"`

	StatusBarCmd []string `yaml:"status_bar_cmd"`

	LogLevel string `yaml:"log_level"`
}

// Actions the engine dispatches. Binding to anything outside this set is a
// validation error.
var validActions = map[string]bool{
	"spawn":           true,
	"push-mode":       true,
	"pop-mode":        true,
	"view":            true,
	"toggle-view":     true,
	"tag":             true,
	"toggle-tag":      true,
	"focus-stack":     true,
	"focus-monitor":   true,
	"tag-monitor":     true,
	"set-mfact":       true,
	"toggle-layout":   true,
	"toggle-floating": true,
	"zoom":            true,
	"kill":            true,
	"resize":          true,
	"move-x":          true,
	"move-y":          true,
	"aspect":          true,
	"quit":            true,
	"move-mouse":      true,
	"resize-mouse":    true,
	"status-signal":   true,
	"none":            true,
}

var validRegions = map[string]bool{
	"tagbar": true,
	"title":  true,
	"status": true,
	"client": true,
	"root":   true,
}

// ModeIndex resolves a mode name to its index. "normal" (or empty) is mode 0;
// declared modes follow in order.
func (c *Config) ModeIndex(name string) (int, bool) {
	if name == "" || name == "normal" {
		return 0, true
	}
	for i, m := range c.Modes {
		if m == name {
			return i + 1, true
		}
	}
	return 0, false
}

// ModeCount returns the number of modes including the implicit normal mode.
func (c *Config) ModeCount() int {
	return len(c.Modes) + 1
}

// Validate checks the invariants the engine depends on. It is called by Load
// and again by the engine constructor for configs built in code.
func (c *Config) Validate() error {
	if len(c.Tags) == 0 {
		return fmt.Errorf("config: at least one tag is required")
	}
	if len(c.Tags) > maxTags {
		return fmt.Errorf("config: %d tags configured, maximum is %d", len(c.Tags), maxTags)
	}
	if c.MFact < 5 || c.MFact > 95 {
		return fmt.Errorf("config: mfact %d out of range [5, 95]", c.MFact)
	}
	if c.Gap < 0 {
		return fmt.Errorf("config: gap must be >= 0")
	}
	if c.Snap < 0 {
		return fmt.Errorf("config: snap must be >= 0")
	}
	if c.BorderWidth < 0 {
		return fmt.Errorf("config: border_width must be >= 0")
	}
	switch c.DefaultLayout {
	case "", "tile", "monocle":
	default:
		return fmt.Errorf("config: unknown default_layout %q", c.DefaultLayout)
	}

	seen := map[string]bool{"normal": true}
	for _, m := range c.Modes {
		if m == "" {
			return fmt.Errorf("config: empty mode name")
		}
		if seen[m] {
			return fmt.Errorf("config: duplicate mode %q", m)
		}
		seen[m] = true
	}

	for i, k := range c.Keys {
		if k.Key == "" {
			return fmt.Errorf("config: keys[%d]: missing key", i)
		}
		if !validActions[k.Action] {
			return fmt.Errorf("config: keys[%d]: unknown action %q", i, k.Action)
		}
		if _, ok := c.ModeIndex(k.Mode); !ok {
			return fmt.Errorf("config: keys[%d]: undeclared mode %q", i, k.Mode)
		}
		if k.Action == "push-mode" {
			if _, ok := c.ModeIndex(k.Arg.Mode); !ok || k.Arg.Mode == "" {
				return fmt.Errorf("config: keys[%d]: push-mode needs a declared target mode, got %q", i, k.Arg.Mode)
			}
		}
	}

	for i, b := range c.Buttons {
		if !validRegions[b.Region] {
			return fmt.Errorf("config: buttons[%d]: unknown region %q", i, b.Region)
		}
		if b.Button < 1 || b.Button > 5 {
			return fmt.Errorf("config: buttons[%d]: button %d out of range [1, 5]", i, b.Button)
		}
		if !validActions[b.Action] {
			return fmt.Errorf("config: buttons[%d]: unknown action %q", i, b.Action)
		}
	}

	return nil
}

// TagMask returns the bitmask covering every configured tag.
func (c *Config) TagMask() uint32 {
	return (1 << uint(len(c.Tags))) - 1
}

func normalizeMods(mods string) string {
	return strings.ToLower(strings.TrimSpace(mods))
}
