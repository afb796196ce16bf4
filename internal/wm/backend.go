package wm

// Window is an opaque handle to a window owned by the display server.
type Window uint32

// None is the zero window handle.
const None Window = 0

// Rect is a screen-space rectangle.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Intersection returns the overlapping area of two rectangles in pixels,
// zero when they do not overlap.
func (r Rect) Intersection(o Rect) int {
	w := min(r.X+r.Width, o.X+o.Width) - max(r.X, o.X)
	h := min(r.Y+r.Height, o.Y+o.Height) - max(r.Y, o.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// SchemeID selects a color scheme for borders and bar cells.
type SchemeID int

const (
	SchemeNormal SchemeID = iota
	SchemeSelected
	SchemeMode
)

// CursorKind selects the pointer shape during a grab.
type CursorKind int

const (
	CursorNormal CursorKind = iota
	CursorMove
	CursorResize
)

// SizeHints carries the ICCCM WM_NORMAL_HINTS fields the resolver consumes.
type SizeHints struct {
	BaseW, BaseH int
	IncW, IncH   int
	MaxW, MaxH   int
	MinW, MinH   int
	MinAspect    float64
	MaxAspect    float64
}

// Hints carries the WM_HINTS fields the engine consumes.
type Hints struct {
	Urgent     bool
	NeverFocus bool
}

// WindowAttributes is the snapshot taken before managing a window.
type WindowAttributes struct {
	Geometry         Rect
	BorderWidth      int
	OverrideRedirect bool
	Viewable         bool
	Iconic           bool
}

// Keystroke is a key binding resolved against the server's keyboard mapping.
type Keystroke struct {
	Mods     uint16
	Keycodes []uint32
}

// Matches reports whether a key press event matches this keystroke. The
// state must already be cleaned of lock modifiers.
func (k Keystroke) Matches(keycode uint32, cleanState uint16) bool {
	if cleanState != k.Mods {
		return false
	}
	for _, kc := range k.Keycodes {
		if kc == keycode {
			return true
		}
	}
	return false
}

// ButtonStroke is a pointer binding resolved to a button number and
// modifier mask.
type ButtonStroke struct {
	Mods   uint16
	Button uint8
}

// ConfigureRequest value-mask bits, mirroring the wire protocol.
const (
	CfgX           = 1 << 0
	CfgY           = 1 << 1
	CfgWidth       = 1 << 2
	CfgHeight      = 1 << 3
	CfgBorderWidth = 1 << 4
	CfgSibling     = 1 << 5
	CfgStackMode   = 1 << 6
)

// Backend is the display-server gateway. Every call is a synchronous
// round-trip; implementations classify protocol errors themselves and only
// surface the ones the engine must react to.
type Backend interface {
	// Screens returns the physical display rectangles as reported by the
	// hardware, possibly containing duplicates; deduplication is the
	// engine's job.
	Screens() ([]Rect, error)
	// ScreenSize returns the full virtual screen extent.
	ScreenSize() (int, int)
	// WaitEvent blocks for the next engine-relevant event. An error means
	// the server connection is gone.
	WaitEvent() (Event, error)
	Sync()

	// Geometry and stacking.
	Configure(w Window, r Rect, borderWidth int)
	NotifyConfigure(w Window, r Rect, borderWidth int)
	PassthroughConfigure(ev ConfigureRequestEvent)
	Move(w Window, x, y int)
	Raise(w Window)
	StackBelow(w Window, sibling Window)
	MapWindow(w Window)
	SetBorder(w Window, scheme SchemeID)
	SetBorderWidth(w Window, bw int)

	// Focus.
	SetInputFocus(w Window)
	FocusRoot()
	TakeFocus(w Window)

	// Property reads.
	Attributes(w Window) (WindowAttributes, error)
	Title(w Window) (string, bool)
	SizeHints(w Window) (SizeHints, error)
	WMHints(w Window) (Hints, bool)
	Transient(w Window) (Window, bool)
	IsDialog(w Window) bool
	WantsFullscreen(w Window) bool
	RootName() (string, bool)

	// Property writes and state announcements.
	SetFullscreenProperty(w Window, fullscreen bool)
	SetUrgencyHint(w Window, urgent bool)
	SetWithdrawn(w Window)
	SetNormalState(w Window)
	SetActiveWindow(w Window)
	ClearActiveWindow()
	SetClientList(ws []Window)
	AppendClientList(w Window)
	SelectClientEvents(w Window)

	// Lifecycle.
	ExistingWindows() ([]Window, error)
	CloseGently(w Window) bool
	Kill(w Window)

	// Input.
	ResolveKey(sequence string) (Keystroke, error)
	ResolveButton(mods string, button int) (ButtonStroke, error)
	CleanMask(state uint16) uint16
	GrabKeys(ks []Keystroke)
	GrabButtons(w Window, focused bool, bs []ButtonStroke)
	GrabPointer(c CursorKind) bool
	UngrabPointer()
	// ReplayPointer releases a synchronously grabbed button press back to
	// the client it was intercepted from.
	ReplayPointer()
	QueryPointer() (int, int, bool)
	WarpPointer(w Window, x, y int)

	// Bar windows.
	CreateBar(r Rect) (Window, error)
	DestroyBar(w Window)
	MoveResizeBar(w Window, r Rect)
}

// Renderer is the drawing service the bar is painted with. It owns an
// off-screen buffer sized to the widest bar; Paint maps the buffer onto a
// bar window.
type Renderer interface {
	FontHeight() int
	// TextWidth is the rendered width of s plus the standard cell
	// padding (one font height).
	TextWidth(s string) int
	// Rect fills (or outlines) a rectangle in the scheme's foreground
	// color, or the background color when invert is set.
	Rect(x, y, w, h int, scheme SchemeID, filled, invert bool)
	// Text draws s with pad pixels of leading space inside a w×h cell and
	// returns the x coordinate just past the cell.
	Text(x, y, w, h int, scheme SchemeID, pad int, s string, invert bool) int
	Paint(w Window, width, height int)
	Resize(width, height int)
}
