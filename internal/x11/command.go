package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"tesswm/internal/wm"
)

// Command codes carried in the control client message.
const (
	CmdView         = 1
	CmdToggleLayout = 2
	CmdQuit         = 3
)

// Client is a plain display connection for talking to a running manager
// from the outside. Unlike Connect it claims nothing on the root window.
type Client struct {
	xu          *xgbutil.XUtil
	root        xproto.Window
	atomCommand xproto.Atom
}

// Dial opens a display connection for command injection and state
// queries.
func Dial() (*Client, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("opening display: %w", err)
	}
	a, err := xprop.Atm(xu, CommandAtom)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("interning %s: %w", CommandAtom, err)
	}
	return &Client{xu: xu, root: xu.RootWin(), atomCommand: a}, nil
}

func (c *Client) Close() {
	c.xu.Conn().Close()
}

// SendCommand injects a control message on the root window. The manager
// receives it through its substructure redirection selection.
func (c *Client) SendCommand(code, arg uint32) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.root,
		Type:   c.atomCommand,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{code, arg, 0, 0, 0}),
	}
	cookie := xproto.SendEventChecked(c.xu.Conn(), false, c.root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()))
	if err := cookie.Check(); err != nil {
		return fmt.Errorf("sending command: %w", err)
	}
	// Round trip so the message is flushed before the process exits.
	_, err := xproto.GetInputFocus(c.xu.Conn()).Reply()
	return err
}

// Clients lists the managed windows' titles in management order.
func (c *Client) Clients() ([]string, error) {
	wins, err := ewmh.ClientListGet(c.xu)
	if err != nil {
		return nil, fmt.Errorf("reading client list: %w", err)
	}
	names := make([]string, 0, len(wins))
	for _, w := range wins {
		name, err := ewmh.WmNameGet(c.xu, w)
		if err != nil || name == "" {
			name, _ = icccm.WmNameGet(c.xu, w)
		}
		names = append(names, name)
	}
	return names, nil
}

// Screens lists the physical screen geometries, or the whole virtual
// screen when xinerama is unavailable.
func (c *Client) Screens() ([]wm.Rect, error) {
	if err := xinerama.Init(c.xu.Conn()); err == nil {
		if r, err := xinerama.IsActive(c.xu.Conn()).Reply(); err == nil && r.State != 0 {
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
	}
	screen := c.xu.Screen()
	return []wm.Rect{{
		Width:  int(screen.WidthInPixels),
		Height: int(screen.HeightInPixels),
	}}, nil
}

// ActiveWindow reports the focused window's title, or "" when nothing
// has focus.
func (c *Client) ActiveWindow() (string, error) {
	w, err := ewmh.ActiveWindowGet(c.xu)
	if err != nil || w == 0 {
		return "", nil
	}
	name, err := ewmh.WmNameGet(c.xu, w)
	if err != nil || name == "" {
		name, _ = icccm.WmNameGet(c.xu, w)
	}
	return name, nil
}
