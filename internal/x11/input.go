package x11

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"

	"tesswm/internal/wm"
)

const (
	buttonMask  = xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease
	pointerMask = buttonMask | xproto.EventMaskPointerMotion
)

// modifierMask covers the bits a binding may meaningfully specify.
const modifierMask = xproto.ModMaskShift | xproto.ModMaskControl |
	xproto.ModMask1 | xproto.ModMask2 | xproto.ModMask3 |
	xproto.ModMask4 | xproto.ModMask5

// ResolveKey parses a binding like "Mod4-Shift-Return" against the
// current keyboard mapping.
func (c *Conn) ResolveKey(sequence string) (wm.Keystroke, error) {
	mods, keycodes, err := keybind.ParseString(c.xu, sequence)
	if err != nil {
		return wm.Keystroke{}, fmt.Errorf("parsing key %q: %w", sequence, err)
	}
	if len(keycodes) == 0 {
		return wm.Keystroke{}, fmt.Errorf("key %q maps to no keycode", sequence)
	}
	ks := wm.Keystroke{Mods: mods, Keycodes: make([]uint32, 0, len(keycodes))}
	for _, kc := range keycodes {
		ks.Keycodes = append(ks.Keycodes, uint32(kc))
	}
	return ks, nil
}

// ResolveButton parses a modifier string and button number into a
// pointer binding.
func (c *Conn) ResolveButton(mods string, button int) (wm.ButtonStroke, error) {
	s := strconv.Itoa(button)
	if mods != "" {
		s = mods + "-" + s
	}
	mask, btn, err := mousebind.ParseString(c.xu, s)
	if err != nil {
		return wm.ButtonStroke{}, fmt.Errorf("parsing button %q: %w", s, err)
	}
	return wm.ButtonStroke{Mods: mask, Button: uint8(btn)}, nil
}

// CleanMask strips lock modifiers and anything outside the modifier
// bits from an event state.
func (c *Conn) CleanMask(state uint16) uint16 {
	return state &^ c.lockMask & modifierMask
}

// GrabKeys replaces all root key grabs with the given strokes, each
// grabbed once per ignorable lock-modifier combination.
func (c *Conn) GrabKeys(ks []wm.Keystroke) {
	xproto.UngrabKey(c.xu.Conn(), xproto.GrabAny, c.root, xproto.ModMaskAny)
	for _, k := range ks {
		for _, kc := range k.Keycodes {
			for _, ign := range c.ignoreMods {
				xproto.GrabKey(c.xu.Conn(), true, c.root, k.Mods|ign,
					xproto.Keycode(kc), xproto.GrabModeAsync, xproto.GrabModeAsync)
			}
		}
	}
}

// GrabButtons sets the pointer grabs on a client window. An unfocused
// window gets a synchronous catch-all grab so the first click can focus
// it and then be replayed; a focused window only grabs its bindings.
func (c *Conn) GrabButtons(w wm.Window, focused bool, bs []wm.ButtonStroke) {
	win := xproto.Window(w)
	xproto.UngrabButton(c.xu.Conn(), xproto.ButtonIndexAny, win, xproto.ModMaskAny)
	if !focused {
		xproto.GrabButton(c.xu.Conn(), false, win, buttonMask,
			xproto.GrabModeSync, xproto.GrabModeSync,
			xproto.WindowNone, xproto.CursorNone,
			xproto.ButtonIndexAny, xproto.ModMaskAny)
	}
	for _, b := range bs {
		for _, ign := range c.ignoreMods {
			xproto.GrabButton(c.xu.Conn(), false, win, buttonMask,
				xproto.GrabModeAsync, xproto.GrabModeSync,
				xproto.WindowNone, xproto.CursorNone,
				byte(b.Button), b.Mods|ign)
		}
	}
}

// ReplayPointer releases a synchronously grabbed press back to the
// client it was intercepted from.
func (c *Conn) ReplayPointer() {
	xproto.AllowEvents(c.xu.Conn(), xproto.AllowReplayPointer, xproto.TimeCurrentTime)
}

// GrabPointer takes an active pointer grab for an interactive drag,
// showing the given cursor, and reports whether the grab succeeded.
func (c *Conn) GrabPointer(kind wm.CursorKind) bool {
	reply, err := xproto.GrabPointer(c.xu.Conn(), false, c.root, pointerMask,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, c.cursors[kind], xproto.TimeCurrentTime).Reply()
	if err != nil {
		return false
	}
	return reply.Status == xproto.GrabStatusSuccess
}

func (c *Conn) UngrabPointer() {
	xproto.UngrabPointer(c.xu.Conn(), xproto.TimeCurrentTime)
}

// QueryPointer reports the pointer position in root coordinates.
func (c *Conn) QueryPointer() (int, int, bool) {
	reply, err := xproto.QueryPointer(c.xu.Conn(), c.root).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(reply.RootX), int(reply.RootY), true
}

// WarpPointer moves the pointer to window-relative coordinates.
func (c *Conn) WarpPointer(w wm.Window, x, y int) {
	xproto.WarpPointer(c.xu.Conn(), xproto.WindowNone, xproto.Window(w),
		0, 0, 0, 0, int16(x), int16(y))
}
