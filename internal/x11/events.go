package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"

	"tesswm/internal/wm"
)

// WaitEvent blocks until a wire event decodes to something the engine
// consumes. Benign asynchronous errors (races against windows that are
// already gone) are swallowed here.
func (c *Conn) WaitEvent() (wm.Event, error) {
	for {
		xev, xerr := c.xu.Conn().WaitForEvent()
		if xev == nil && xerr == nil {
			return nil, fmt.Errorf("display connection closed")
		}
		if xerr != nil {
			c.classifyError(xerr)
			continue
		}
		if ev := c.decode(xev); ev != nil {
			return ev, nil
		}
	}
}

// classifyError drops errors that are expected when a window disappears
// mid-request and logs everything else.
func (c *Conn) classifyError(xerr xgb.Error) {
	switch xerr.(type) {
	case xproto.WindowError, xproto.DrawableError, xproto.MatchError:
		c.log.Debug().Str("error", xerr.Error()).Msg("ignoring request race")
	default:
		c.log.Error().Str("error", xerr.Error()).Msg("request failed")
	}
}

func (c *Conn) decode(xev xgb.Event) wm.Event {
	switch ev := xev.(type) {
	case xproto.MapRequestEvent:
		return wm.MapRequestEvent{Window: wm.Window(ev.Window)}

	case xproto.ConfigureRequestEvent:
		return wm.ConfigureRequestEvent{
			Window:      wm.Window(ev.Window),
			X:           int(ev.X),
			Y:           int(ev.Y),
			Width:       int(ev.Width),
			Height:      int(ev.Height),
			BorderWidth: int(ev.BorderWidth),
			Sibling:     wm.Window(ev.Sibling),
			StackMode:   ev.StackMode,
			Mask:        ev.ValueMask,
		}

	case xproto.ConfigureNotifyEvent:
		if ev.Window != c.root {
			return nil
		}
		c.screenW = int(ev.Width)
		c.screenH = int(ev.Height)
		return wm.RootGeometryEvent{Width: c.screenW, Height: c.screenH}

	case xproto.DestroyNotifyEvent:
		return wm.DestroyEvent{Window: wm.Window(ev.Window)}

	case xproto.UnmapNotifyEvent:
		return wm.UnmapEvent{Window: wm.Window(ev.Window)}

	case xproto.EnterNotifyEvent:
		if (ev.Mode != xproto.NotifyModeNormal || ev.Detail == xproto.NotifyDetailInferior) && ev.Event != c.root {
			return nil
		}
		return wm.EnterEvent{Window: wm.Window(ev.Event), Root: ev.Event == c.root}

	case xproto.ExposeEvent:
		return wm.ExposeEvent{Window: wm.Window(ev.Window), Count: int(ev.Count)}

	case xproto.FocusInEvent:
		return wm.FocusInEvent{Window: wm.Window(ev.Event)}

	case xproto.KeyPressEvent:
		return wm.KeyPressEvent{Keycode: uint32(ev.Detail), State: ev.State}

	case xproto.ButtonPressEvent:
		return wm.ButtonPressEvent{
			Window: wm.Window(ev.Event),
			Button: uint8(ev.Detail),
			State:  ev.State,
			X:      int(ev.EventX),
			Y:      int(ev.EventY),
			RootX:  int(ev.RootX),
			RootY:  int(ev.RootY),
		}

	case xproto.ButtonReleaseEvent:
		return wm.ButtonReleaseEvent{Button: uint8(ev.Detail)}

	case xproto.MotionNotifyEvent:
		return wm.MotionEvent{
			Window: wm.Window(ev.Event),
			Root:   ev.Event == c.root,
			RootX:  int(ev.RootX),
			RootY:  int(ev.RootY),
			Time:   uint32(ev.Time),
		}

	case xproto.PropertyNotifyEvent:
		return c.decodeProperty(ev)

	case xproto.ClientMessageEvent:
		return c.decodeClientMessage(ev)

	case xproto.MappingNotifyEvent:
		keyboard := ev.Request == xproto.MappingKeyboard
		if keyboard {
			// Rebuild the keysym tables before the engine re-grabs.
			keybind.Initialize(c.xu)
			c.updateLockMask()
		}
		return wm.MappingEvent{Keyboard: keyboard}
	}
	return nil
}

func (c *Conn) decodeProperty(ev xproto.PropertyNotifyEvent) wm.Event {
	if ev.Window == c.root {
		if ev.Atom == c.atomWMName {
			return wm.PropertyEvent{Window: wm.Window(ev.Window), Kind: wm.PropStatus}
		}
		return nil
	}
	if ev.State == xproto.PropertyDelete {
		return nil
	}
	w := wm.Window(ev.Window)
	switch ev.Atom {
	case c.atomTransient:
		return wm.PropertyEvent{Window: w, Kind: wm.PropTransient}
	case c.atomNormalHints:
		return wm.PropertyEvent{Window: w, Kind: wm.PropNormalHints}
	case c.atomWMHints:
		return wm.PropertyEvent{Window: w, Kind: wm.PropWMHints}
	case c.atomWMName, c.atomNetWMName:
		return wm.PropertyEvent{Window: w, Kind: wm.PropTitle}
	case c.atomWindowType:
		return wm.PropertyEvent{Window: w, Kind: wm.PropWindowType}
	}
	return nil
}

func (c *Conn) decodeClientMessage(ev xproto.ClientMessageEvent) wm.Event {
	data := ev.Data.Data32
	switch ev.Type {
	case c.atomCommand:
		if len(data) >= 2 {
			return wm.CommandEvent{Code: data[0], Arg: data[1]}
		}
	case c.atomNetWMState:
		if len(data) >= 3 && (xproto.Atom(data[1]) == c.atomFullscreen || xproto.Atom(data[2]) == c.atomFullscreen) {
			return wm.FullscreenRequestEvent{Window: wm.Window(ev.Window), Action: int(data[0])}
		}
	case c.atomActiveWindow:
		return wm.ActivateRequestEvent{Window: wm.Window(ev.Window)}
	}
	return nil
}
