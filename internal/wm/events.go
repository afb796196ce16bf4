package wm

// Event is one decoded display-server event. The gateway translates wire
// events into these before the engine sees them; anything the engine has no
// business with (mapping tables, sub-structure notifications on unmanaged
// windows, ...) never reaches it.
type Event interface {
	event()
}

// MapRequestEvent asks the manager to map (and start managing) a window.
type MapRequestEvent struct {
	Window Window
}

// ConfigureRequestEvent is a client's geometry wish. Mask holds Cfg* bits.
type ConfigureRequestEvent struct {
	Window      Window
	X, Y        int
	Width       int
	Height      int
	BorderWidth int
	Sibling     Window
	StackMode   uint8
	Mask        uint16
}

// RootGeometryEvent reports a changed virtual screen size.
type RootGeometryEvent struct {
	Width  int
	Height int
}

// DestroyEvent reports a destroyed window.
type DestroyEvent struct {
	Window Window
}

// UnmapEvent reports an unmapped window. Synthetic unmaps are the ICCCM
// "withdraw" handshake rather than an actual unmap.
type UnmapEvent struct {
	Window    Window
	Synthetic bool
}

// EnterEvent reports the pointer crossing into a window.
type EnterEvent struct {
	Window Window
	Root   bool
}

// ExposeEvent reports a window region needing a repaint.
type ExposeEvent struct {
	Window Window
	Count  int
}

// FocusInEvent reports the server moving input focus.
type FocusInEvent struct {
	Window Window
}

// KeyPressEvent is a grabbed key press.
type KeyPressEvent struct {
	Keycode uint32
	State   uint16
}

// ButtonPressEvent is a pointer button press.
type ButtonPressEvent struct {
	Window Window
	Button uint8
	State  uint16
	X, Y   int
	RootX  int
	RootY  int
}

// ButtonReleaseEvent ends an interactive transaction.
type ButtonReleaseEvent struct {
	Button uint8
}

// MotionEvent is pointer motion, either during a grab or over the root.
type MotionEvent struct {
	Window Window
	Root   bool
	RootX  int
	RootY  int
	Time   uint32
}

// PropKind names the property classes the engine reacts to.
type PropKind int

const (
	PropStatus PropKind = iota // root window name: the status text
	PropTransient
	PropNormalHints
	PropWMHints
	PropTitle
	PropWindowType
)

// PropertyEvent reports a property change on a managed window or the root.
type PropertyEvent struct {
	Window Window
	Kind   PropKind
}

// FullscreenRequestEvent is a _NET_WM_STATE fullscreen client message.
// Action is 0 (remove), 1 (add) or 2 (toggle) per EWMH.
type FullscreenRequestEvent struct {
	Window Window
	Action int
}

// ActivateRequestEvent is a _NET_ACTIVE_WINDOW client message.
type ActivateRequestEvent struct {
	Window Window
}

// CommandEvent is an injected control command (see the IPC package). Code
// and Arg mirror the client message payload.
type CommandEvent struct {
	Code uint32
	Arg  uint32
}

// Injected command codes.
const (
	CmdView uint32 = iota + 1
	CmdToggleLayout
	CmdQuit
)

// MappingEvent reports a changed keyboard mapping; keys must be re-grabbed.
type MappingEvent struct {
	Keyboard bool
}

func (MapRequestEvent) event()        {}
func (ConfigureRequestEvent) event()  {}
func (RootGeometryEvent) event()      {}
func (DestroyEvent) event()           {}
func (UnmapEvent) event()             {}
func (EnterEvent) event()             {}
func (ExposeEvent) event()            {}
func (FocusInEvent) event()           {}
func (KeyPressEvent) event()          {}
func (ButtonPressEvent) event()       {}
func (ButtonReleaseEvent) event()     {}
func (MotionEvent) event()            {}
func (PropertyEvent) event()          {}
func (FullscreenRequestEvent) event() {}
func (ActivateRequestEvent) event()   {}
func (CommandEvent) event()           {}
func (MappingEvent) event()           {}
