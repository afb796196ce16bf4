package x11

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"tesswm/internal/wm"
)

// SetBorderColors parses the configured border colors and caches their
// pixel values for SetBorder. Colors are "#rrggbb" strings, mapped
// directly to pixels as the renderer's truecolor surface does.
func (c *Conn) SetBorderColors(normal, selected, mode string) error {
	c.borderPixels = make(map[wm.SchemeID]uint32, 3)
	for scheme, hex := range map[wm.SchemeID]string{
		wm.SchemeNormal:   normal,
		wm.SchemeSelected: selected,
		wm.SchemeMode:     mode,
	} {
		px, err := parseHexColor(hex)
		if err != nil {
			return err
		}
		c.borderPixels[scheme] = px
	}
	return nil
}

func parseHexColor(s string) (uint32, error) {
	if len(s) != 7 || s[0] != '#' {
		return 0, fmt.Errorf("bad color %q, want #rrggbb", s)
	}
	px, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad color %q: %w", s, err)
	}
	return uint32(px), nil
}

// SetBorder paints a window's border in the given scheme's border color.
func (c *Conn) SetBorder(w wm.Window, scheme wm.SchemeID) {
	px, ok := c.borderPixels[scheme]
	if !ok {
		return
	}
	xproto.ChangeWindowAttributes(c.xu.Conn(), xproto.Window(w),
		xproto.CwBorderPixel, []uint32{px})
}

// Attributes snapshots a window's server-side state before managing it.
func (c *Conn) Attributes(w wm.Window) (wm.WindowAttributes, error) {
	attr, err := xproto.GetWindowAttributes(c.xu.Conn(), xproto.Window(w)).Reply()
	if err != nil {
		return wm.WindowAttributes{}, err
	}
	geom, err := xproto.GetGeometry(c.xu.Conn(), xproto.Drawable(w)).Reply()
	if err != nil {
		return wm.WindowAttributes{}, err
	}
	iconic := false
	if state, err := icccm.WmStateGet(c.xu, xproto.Window(w)); err == nil {
		iconic = state.State == icccm.StateIconic
	}
	return wm.WindowAttributes{
		Geometry: wm.Rect{
			X:      int(geom.X),
			Y:      int(geom.Y),
			Width:  int(geom.Width),
			Height: int(geom.Height),
		},
		BorderWidth:      int(geom.BorderWidth),
		OverrideRedirect: attr.OverrideRedirect,
		Viewable:         attr.MapState == xproto.MapStateViewable,
		Iconic:           iconic,
	}, nil
}

// Title reads _NET_WM_NAME, falling back to WM_NAME.
func (c *Conn) Title(w wm.Window) (string, bool) {
	if name, err := ewmh.WmNameGet(c.xu, xproto.Window(w)); err == nil && name != "" {
		return name, true
	}
	if name, err := icccm.WmNameGet(c.xu, xproto.Window(w)); err == nil && name != "" {
		return name, true
	}
	return "", false
}

// RootName reads the root window's WM_NAME, conventionally the status
// text.
func (c *Conn) RootName() (string, bool) {
	name, err := icccm.WmNameGet(c.xu, c.root)
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// SizeHints reads WM_NORMAL_HINTS and resolves the ICCCM field fallbacks:
// a missing base size falls back to the minimum and vice versa.
func (c *Conn) SizeHints(w wm.Window) (wm.SizeHints, error) {
	nh, err := icccm.WmNormalHintsGet(c.xu, xproto.Window(w))
	if err != nil {
		return wm.SizeHints{}, err
	}
	var h wm.SizeHints
	switch {
	case nh.Flags&icccm.SizeHintPBaseSize != 0:
		h.BaseW, h.BaseH = int(nh.BaseWidth), int(nh.BaseHeight)
	case nh.Flags&icccm.SizeHintPMinSize != 0:
		h.BaseW, h.BaseH = int(nh.MinWidth), int(nh.MinHeight)
	}
	if nh.Flags&icccm.SizeHintPResizeInc != 0 {
		h.IncW, h.IncH = int(nh.WidthInc), int(nh.HeightInc)
	}
	if nh.Flags&icccm.SizeHintPMaxSize != 0 {
		h.MaxW, h.MaxH = int(nh.MaxWidth), int(nh.MaxHeight)
	}
	switch {
	case nh.Flags&icccm.SizeHintPMinSize != 0:
		h.MinW, h.MinH = int(nh.MinWidth), int(nh.MinHeight)
	case nh.Flags&icccm.SizeHintPBaseSize != 0:
		h.MinW, h.MinH = int(nh.BaseWidth), int(nh.BaseHeight)
	}
	if nh.Flags&icccm.SizeHintPAspect != 0 {
		if nh.MinAspectNum > 0 {
			h.MinAspect = float64(nh.MinAspectDen) / float64(nh.MinAspectNum)
		}
		if nh.MaxAspectDen > 0 {
			h.MaxAspect = float64(nh.MaxAspectNum) / float64(nh.MaxAspectDen)
		}
	}
	return h, nil
}

// WMHints reads the WM_HINTS urgency and input fields.
func (c *Conn) WMHints(w wm.Window) (wm.Hints, bool) {
	hints, err := icccm.WmHintsGet(c.xu, xproto.Window(w))
	if err != nil {
		return wm.Hints{}, false
	}
	var h wm.Hints
	h.Urgent = hints.Flags&icccm.HintUrgency != 0
	if hints.Flags&icccm.HintInput != 0 {
		h.NeverFocus = hints.Input == 0
	}
	return h, true
}

// SetUrgencyHint flips the urgency bit in WM_HINTS.
func (c *Conn) SetUrgencyHint(w wm.Window, urgent bool) {
	hints, err := icccm.WmHintsGet(c.xu, xproto.Window(w))
	if err != nil {
		return
	}
	if urgent {
		hints.Flags |= icccm.HintUrgency
	} else {
		hints.Flags &^= icccm.HintUrgency
	}
	_ = icccm.WmHintsSet(c.xu, xproto.Window(w), hints)
}

// Transient reports the window's transient-for lead, if any.
func (c *Conn) Transient(w wm.Window) (wm.Window, bool) {
	lead, err := icccm.WmTransientForGet(c.xu, xproto.Window(w))
	if err != nil || lead == 0 {
		return wm.None, false
	}
	return wm.Window(lead), true
}

// IsDialog reports whether the window declares itself a dialog.
func (c *Conn) IsDialog(w wm.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.xu, xproto.Window(w))
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DIALOG" {
			return true
		}
	}
	return false
}

// WantsFullscreen reports whether the window already carries the
// fullscreen state, set before it was mapped.
func (c *Conn) WantsFullscreen(w wm.Window) bool {
	states, err := ewmh.WmStateGet(c.xu, xproto.Window(w))
	if err != nil {
		return false
	}
	for _, s := range states {
		if s == "_NET_WM_STATE_FULLSCREEN" {
			return true
		}
	}
	return false
}

// SetFullscreenProperty publishes (or clears) the fullscreen state.
func (c *Conn) SetFullscreenProperty(w wm.Window, fullscreen bool) {
	if fullscreen {
		_ = ewmh.WmStateSet(c.xu, xproto.Window(w), []string{"_NET_WM_STATE_FULLSCREEN"})
	} else {
		_ = ewmh.WmStateSet(c.xu, xproto.Window(w), nil)
	}
}

// SetWithdrawn records the ICCCM withdrawn state on a window the manager
// is releasing.
func (c *Conn) SetWithdrawn(w wm.Window) {
	_ = icccm.WmStateSet(c.xu, xproto.Window(w), &icccm.WmState{State: icccm.StateWithdrawn})
}

func (c *Conn) SetNormalState(w wm.Window) {
	_ = icccm.WmStateSet(c.xu, xproto.Window(w), &icccm.WmState{State: icccm.StateNormal})
}

func (c *Conn) SetActiveWindow(w wm.Window) {
	_ = ewmh.ActiveWindowSet(c.xu, xproto.Window(w))
}

func (c *Conn) ClearActiveWindow() {
	xproto.DeleteProperty(c.xu.Conn(), c.root, c.atomActiveWindow)
}

func (c *Conn) SetClientList(ws []wm.Window) {
	xws := make([]xproto.Window, 0, len(ws))
	for _, w := range ws {
		xws = append(xws, xproto.Window(w))
	}
	_ = ewmh.ClientListSet(c.xu, xws)
}

// AppendClientList adds one window to _NET_CLIENT_LIST without rewriting
// the whole property.
func (c *Conn) AppendClientList(w wm.Window) {
	list, err := ewmh.ClientListGet(c.xu)
	if err != nil {
		list = nil
	}
	list = append(list, xproto.Window(w))
	_ = ewmh.ClientListSet(c.xu, list)
}

// TakeFocus offers WM_TAKE_FOCUS to clients that implement it.
func (c *Conn) TakeFocus(w wm.Window) {
	c.sendProtocol(w, "WM_TAKE_FOCUS")
}

// CloseGently delivers WM_DELETE_WINDOW if the client speaks it, and
// reports whether it did.
func (c *Conn) CloseGently(w wm.Window) bool {
	return c.sendProtocol(w, "WM_DELETE_WINDOW")
}

// sendProtocol delivers a WM_PROTOCOLS client message when the window
// advertises the protocol, reporting whether it was sent.
func (c *Conn) sendProtocol(w wm.Window, name string) bool {
	protocols, err := icccm.WmProtocolsGet(c.xu, xproto.Window(w))
	if err != nil {
		return false
	}
	found := false
	for _, p := range protocols {
		if p == name {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	protoAtom, err := xprop.Atm(c.xu, name)
	if err != nil {
		return false
	}
	wmProtocols, err := xprop.Atm(c.xu, "WM_PROTOCOLS")
	if err != nil {
		return false
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(w),
		Type:   wmProtocols,
		Data: xproto.ClientMessageDataUnionData32New(
			[]uint32{uint32(protoAtom), uint32(xproto.TimeCurrentTime), 0, 0, 0}),
	}
	xproto.SendEvent(c.xu.Conn(), false, xproto.Window(w),
		xproto.EventMaskNoEvent, string(ev.Bytes()))
	return true
}
