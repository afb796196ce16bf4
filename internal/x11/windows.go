package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xwindow"

	"tesswm/internal/wm"
)

// clientEventMask is selected on every managed window.
const clientEventMask = xproto.EventMaskEnterWindow |
	xproto.EventMaskFocusChange |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskStructureNotify

// barEventMask is selected on bar windows.
const barEventMask = xproto.EventMaskButtonPress | xproto.EventMaskExposure

// Configure moves, resizes and re-borders a window in one request.
func (c *Conn) Configure(w wm.Window, r wm.Rect, borderWidth int) {
	xproto.ConfigureWindow(c.xu.Conn(), xproto.Window(w),
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|
			xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(r.X), uint32(r.Y), uint32(r.Width), uint32(r.Height), uint32(borderWidth)})
}

// NotifyConfigure sends a synthetic ConfigureNotify restating the window's
// geometry, for clients that asked for something they did not get.
func (c *Conn) NotifyConfigure(w wm.Window, r wm.Rect, borderWidth int) {
	ev := xproto.ConfigureNotifyEvent{
		Event:        xproto.Window(w),
		Window:       xproto.Window(w),
		AboveSibling: xproto.WindowNone,
		X:            int16(r.X),
		Y:            int16(r.Y),
		Width:        uint16(r.Width),
		Height:       uint16(r.Height),
		BorderWidth:  uint16(borderWidth),
	}
	xproto.SendEvent(c.xu.Conn(), false, xproto.Window(w),
		xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

// PassthroughConfigure forwards an unmanaged window's configure request
// verbatim.
func (c *Conn) PassthroughConfigure(ev wm.ConfigureRequestEvent) {
	values := make([]uint32, 0, 7)
	for _, f := range []struct {
		bit uint16
		val uint32
	}{
		{wm.CfgX, uint32(ev.X)},
		{wm.CfgY, uint32(ev.Y)},
		{wm.CfgWidth, uint32(ev.Width)},
		{wm.CfgHeight, uint32(ev.Height)},
		{wm.CfgBorderWidth, uint32(ev.BorderWidth)},
		{wm.CfgSibling, uint32(ev.Sibling)},
		{wm.CfgStackMode, uint32(ev.StackMode)},
	} {
		if ev.Mask&f.bit != 0 {
			values = append(values, f.val)
		}
	}
	xproto.ConfigureWindow(c.xu.Conn(), xproto.Window(ev.Window), ev.Mask, values)
}

func (c *Conn) Move(w wm.Window, x, y int) {
	xproto.ConfigureWindow(c.xu.Conn(), xproto.Window(w),
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(x), uint32(y)})
}

func (c *Conn) Raise(w wm.Window) {
	xproto.ConfigureWindow(c.xu.Conn(), xproto.Window(w),
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
}

// StackBelow puts w directly below sibling.
func (c *Conn) StackBelow(w wm.Window, sibling wm.Window) {
	xproto.ConfigureWindow(c.xu.Conn(), xproto.Window(w),
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(sibling), xproto.StackModeBelow})
}

func (c *Conn) MapWindow(w wm.Window) {
	xproto.MapWindow(c.xu.Conn(), xproto.Window(w))
}

func (c *Conn) SetBorderWidth(w wm.Window, bw int) {
	xproto.ConfigureWindow(c.xu.Conn(), xproto.Window(w),
		xproto.ConfigWindowBorderWidth, []uint32{uint32(bw)})
}

func (c *Conn) SetInputFocus(w wm.Window) {
	xproto.SetInputFocus(c.xu.Conn(), xproto.InputFocusPointerRoot,
		xproto.Window(w), xproto.TimeCurrentTime)
}

// FocusRoot reverts input focus to pointer-root.
func (c *Conn) FocusRoot() {
	xproto.SetInputFocus(c.xu.Conn(), xproto.InputFocusPointerRoot,
		xproto.InputFocusPointerRoot, xproto.TimeCurrentTime)
}

// SelectClientEvents subscribes to the state changes the engine tracks on
// a managed window.
func (c *Conn) SelectClientEvents(w wm.Window) {
	xproto.ChangeWindowAttributes(c.xu.Conn(), xproto.Window(w),
		xproto.CwEventMask, []uint32{clientEventMask})
}

// ExistingWindows lists the root's direct children, for adopting windows
// mapped before the manager started.
func (c *Conn) ExistingWindows() ([]wm.Window, error) {
	reply, err := xproto.QueryTree(c.xu.Conn(), c.root).Reply()
	if err != nil {
		return nil, err
	}
	wins := make([]wm.Window, 0, len(reply.Children))
	for _, child := range reply.Children {
		wins = append(wins, wm.Window(child))
	}
	return wins, nil
}

// Kill forcibly disconnects the window's client.
func (c *Conn) Kill(w wm.Window) {
	xproto.KillClient(c.xu.Conn(), uint32(w))
	c.Sync()
}

// CreateBar creates one override-redirect bar window and maps it.
func (c *Conn) CreateBar(r wm.Rect) (wm.Window, error) {
	win, err := xwindow.Generate(c.xu)
	if err != nil {
		return wm.None, err
	}
	err = win.CreateChecked(c.root, r.X, r.Y, r.Width, r.Height,
		xproto.CwBackPixmap|xproto.CwOverrideRedirect|xproto.CwEventMask,
		xproto.BackPixmapParentRelative, 1, barEventMask)
	if err != nil {
		return wm.None, err
	}
	win.Map()
	c.Raise(wm.Window(win.Id))
	return wm.Window(win.Id), nil
}

func (c *Conn) DestroyBar(w wm.Window) {
	xwindow.New(c.xu, xproto.Window(w)).Destroy()
}

func (c *Conn) MoveResizeBar(w wm.Window, r wm.Rect) {
	xwindow.New(c.xu, xproto.Window(w)).MoveResize(r.X, r.Y, r.Width, r.Height)
}
