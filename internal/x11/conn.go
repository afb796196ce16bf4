// Package x11 is the display-server gateway: it owns the X connection and
// translates between the manager engine's types and the wire protocol.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/rs/zerolog"

	"tesswm/internal/wm"
)

// CommandAtom names the client message used to inject control commands
// onto the root window.
const CommandAtom = "_TESSWM_COMMAND"

// rootEventMask is what the manager listens for on the root window.
const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskButtonPress |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange

// supportedAtoms is announced in _NET_SUPPORTED.
var supportedAtoms = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_SUPPORTED",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_CLIENT_LIST",
}

// Conn implements wm.Backend on a live X connection.
type Conn struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	log  zerolog.Logger

	screenW int
	screenH int

	cursors  map[wm.CursorKind]xproto.Cursor
	checkWin *xwindow.Window

	xinerama bool

	atomCommand      xproto.Atom
	atomWMState      xproto.Atom
	atomNetWMState   xproto.Atom
	atomFullscreen   xproto.Atom
	atomActiveWindow xproto.Atom
	atomTransient    xproto.Atom
	atomNormalHints  xproto.Atom
	atomWMHints      xproto.Atom
	atomWMName       xproto.Atom
	atomNetWMName    xproto.Atom
	atomWindowType   xproto.Atom

	ignoreMods []uint16
	lockMask   uint16

	borderPixels map[wm.SchemeID]uint32
}

// Connect opens the display, claims window manager control of the root
// window, and announces EWMH support. It fails when another manager is
// already running.
func Connect(log zerolog.Logger) (*Conn, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("opening display: %w", err)
	}
	keybind.Initialize(xu)
	mousebind.Initialize(xu)

	c := &Conn{
		xu:      xu,
		root:    xu.RootWin(),
		log:     log,
		screenW: int(xu.Screen().WidthInPixels),
		screenH: int(xu.Screen().HeightInPixels),
	}

	// Electing ourselves: only one client may select substructure
	// redirection on the root.
	if err := xproto.ChangeWindowAttributesChecked(xu.Conn(), c.root,
		xproto.CwEventMask, []uint32{xproto.EventMaskSubstructureRedirect}).Check(); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("another window manager is already running")
	}

	if err := c.internAtoms(); err != nil {
		xu.Conn().Close()
		return nil, err
	}
	if err := c.createCursors(); err != nil {
		xu.Conn().Close()
		return nil, err
	}
	c.updateLockMask()

	if err := xinerama.Init(xu.Conn()); err == nil {
		if r, err := xinerama.IsActive(xu.Conn()).Reply(); err == nil && r.State != 0 {
			c.xinerama = true
		}
	}

	if err := c.announce(); err != nil {
		xu.Conn().Close()
		return nil, err
	}

	if err := xproto.ChangeWindowAttributesChecked(xu.Conn(), c.root,
		xproto.CwEventMask|xproto.CwCursor,
		[]uint32{rootEventMask, uint32(c.cursors[wm.CursorNormal])}).Check(); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("selecting root events: %w", err)
	}

	return c, nil
}

// Close releases the connection. The supporting check window dies with it.
func (c *Conn) Close() {
	c.xu.Conn().Close()
}

// XUtil exposes the underlying connection for the renderer.
func (c *Conn) XUtil() *xgbutil.XUtil { return c.xu }

func (c *Conn) internAtoms() error {
	intern := func(dst *xproto.Atom, name string) error {
		a, err := xprop.Atm(c.xu, name)
		if err != nil {
			return fmt.Errorf("interning %s: %w", name, err)
		}
		*dst = a
		return nil
	}
	for _, it := range []struct {
		dst  *xproto.Atom
		name string
	}{
		{&c.atomCommand, CommandAtom},
		{&c.atomWMState, "WM_STATE"},
		{&c.atomNetWMState, "_NET_WM_STATE"},
		{&c.atomFullscreen, "_NET_WM_STATE_FULLSCREEN"},
		{&c.atomActiveWindow, "_NET_ACTIVE_WINDOW"},
		{&c.atomTransient, "WM_TRANSIENT_FOR"},
		{&c.atomNormalHints, "WM_NORMAL_HINTS"},
		{&c.atomWMHints, "WM_HINTS"},
		{&c.atomWMName, "WM_NAME"},
		{&c.atomNetWMName, "_NET_WM_NAME"},
		{&c.atomWindowType, "_NET_WM_WINDOW_TYPE"},
	} {
		if err := intern(it.dst, it.name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Conn) createCursors() error {
	c.cursors = make(map[wm.CursorKind]xproto.Cursor, 3)
	for kind, shape := range map[wm.CursorKind]uint16{
		wm.CursorNormal: xcursor.LeftPtr,
		wm.CursorMove:   xcursor.Fleur,
		wm.CursorResize: xcursor.Sizing,
	} {
		cur, err := xcursor.CreateCursor(c.xu, shape)
		if err != nil {
			return fmt.Errorf("creating cursor: %w", err)
		}
		c.cursors[kind] = cur
	}
	return nil
}

// announce publishes the EWMH supporting-check window and the supported
// atom list, and clears any stale client list.
func (c *Conn) announce() error {
	win, err := xwindow.Generate(c.xu)
	if err != nil {
		return fmt.Errorf("generating check window: %w", err)
	}
	if err := win.CreateChecked(c.root, 0, 0, 1, 1, 0); err != nil {
		return fmt.Errorf("creating check window: %w", err)
	}
	c.checkWin = win

	if err := ewmh.SupportingWmCheckSet(c.xu, c.root, win.Id); err != nil {
		return err
	}
	if err := ewmh.SupportingWmCheckSet(c.xu, win.Id, win.Id); err != nil {
		return err
	}
	if err := ewmh.WmNameSet(c.xu, win.Id, "tesswm"); err != nil {
		return err
	}
	if err := ewmh.SupportedSet(c.xu, supportedAtoms); err != nil {
		return err
	}
	return ewmh.ClientListSet(c.xu, nil)
}

// updateLockMask finds which modifier bits the lock keys occupy so grabs
// and dispatch can ignore them.
func (c *Conn) updateLockMask() {
	caps := uint16(xproto.ModMaskLock)
	numLock := c.modMaskForKeysym("Num_Lock")
	scrollLock := c.modMaskForKeysym("Scroll_Lock")
	c.lockMask = caps | numLock | scrollLock

	unique := map[uint16]struct{}{0: {}}
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}
	for subset := 1; subset < 1<<len(base); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}
	c.ignoreMods = c.ignoreMods[:0]
	for mask := range unique {
		c.ignoreMods = append(c.ignoreMods, mask)
	}
}

func (c *Conn) modMaskForKeysym(keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(c.xu, keysym) {
		if mask := keybind.ModGet(c.xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}

// Screens returns the Xinerama screen rectangles, or the whole virtual
// screen when Xinerama is absent.
func (c *Conn) Screens() ([]wm.Rect, error) {
	if !c.xinerama {
		return []wm.Rect{{Width: c.screenW, Height: c.screenH}}, nil
	}
	reply, err := xinerama.QueryScreens(c.xu.Conn()).Reply()
	if err != nil {
		return nil, fmt.Errorf("querying screens: %w", err)
	}
	rects := make([]wm.Rect, 0, len(reply.ScreenInfo))
	for _, s := range reply.ScreenInfo {
		rects = append(rects, wm.Rect{
			X:      int(s.XOrg),
			Y:      int(s.YOrg),
			Width:  int(s.Width),
			Height: int(s.Height),
		})
	}
	return rects, nil
}

// ScreenSize returns the virtual screen extent.
func (c *Conn) ScreenSize() (int, int) {
	return c.screenW, c.screenH
}

// Sync forces a full round trip, flushing every queued request.
func (c *Conn) Sync() {
	_, _ = xproto.GetInputFocus(c.xu.Conn()).Reply()
}
