package wm

// brokenTitle is the sentinel name for clients whose title cannot be read.
const brokenTitle = "broken"

// maxTitleLen bounds the stored client title.
const maxTitleLen = 255

// nilIdx marks the absence of a client in arena links.
const nilIdx = -1

// Client is one managed window. Clients live in the arena; the managed and
// stack lists are threaded through them with index links.
type Client struct {
	Name string

	MinAspect float64
	MaxAspect float64

	Geom    Rect
	OldGeom Rect

	BaseW, BaseH int
	IncW, IncH   int
	MaxW, MaxH   int
	MinW, MinH   int

	BorderWidth    int
	OldBorderWidth int

	Tags uint32

	IsFixed      bool
	IsFloating   bool
	IsUrgent     bool
	IsFullscreen bool
	NeverFocus   bool
	// WasFloating holds the floating state saved when entering fullscreen.
	WasFloating bool
	// FloatGeom holds the geometry saved on the most recent
	// floating-to-tiled toggle; floating again restores it.
	FloatGeom    Rect
	hasFloatGeom bool

	Monitor int
	Win     Window

	nextManaged int
	nextStack   int
	used        bool
}

// clientArena owns every client record. Slot indices are the handles the
// rest of the engine passes around; a released slot goes on the free list
// and may be reused by a later window.
type clientArena struct {
	slots []Client
	free  []int
}

func (a *clientArena) alloc() int {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[idx] = Client{used: true, nextManaged: nilIdx, nextStack: nilIdx}
		return idx
	}
	a.slots = append(a.slots, Client{used: true, nextManaged: nilIdx, nextStack: nilIdx})
	return len(a.slots) - 1
}

func (a *clientArena) release(idx int) {
	a.slots[idx] = Client{}
	a.free = append(a.free, idx)
}

func (a *clientArena) get(idx int) *Client {
	return &a.slots[idx]
}

// client returns the arena record for idx. idx must be a live handle.
func (wm *WM) client(idx int) *Client {
	return wm.clients.get(idx)
}

// isVisible reports whether the client shows under its monitor's current
// tag selection.
func (wm *WM) isVisible(idx int) bool {
	c := wm.client(idx)
	return c.Tags&wm.monitors[c.Monitor].SelTags != 0
}

// attach prepends the client to its monitor's managed list.
func (wm *WM) attach(idx int) {
	c := wm.client(idx)
	m := &wm.monitors[c.Monitor]
	c.nextManaged = m.Clients
	m.Clients = idx
}

// detach unlinks the client from its monitor's managed list.
func (wm *WM) detach(idx int) {
	c := wm.client(idx)
	m := &wm.monitors[c.Monitor]
	for link := &m.Clients; *link != nilIdx; link = &wm.client(*link).nextManaged {
		if *link == idx {
			*link = c.nextManaged
			return
		}
	}
}

// attachStack prepends the client to its monitor's focus/stacking list.
func (wm *WM) attachStack(idx int) {
	c := wm.client(idx)
	m := &wm.monitors[c.Monitor]
	c.nextStack = m.Stack
	m.Stack = idx
}

// detachStack unlinks the client from the stack list. If it was the
// monitor's focused client, the first remaining visible client in stack
// order takes its place (or none).
func (wm *WM) detachStack(idx int) {
	c := wm.client(idx)
	m := &wm.monitors[c.Monitor]
	for link := &m.Stack; *link != nilIdx; link = &wm.client(*link).nextStack {
		if *link == idx {
			*link = c.nextStack
			break
		}
	}

	if m.Sel == idx {
		sel := nilIdx
		for t := m.Stack; t != nilIdx; t = wm.client(t).nextStack {
			if wm.isVisible(t) {
				sel = t
				break
			}
		}
		m.Sel = sel
	}
}

// nextTiled advances to the first client at or after idx that the layout
// engine places: visible and not floating.
func (wm *WM) nextTiled(idx int) int {
	for idx != nilIdx {
		c := wm.client(idx)
		if !c.IsFloating && wm.isVisible(idx) {
			return idx
		}
		idx = c.nextManaged
	}
	return nilIdx
}

// nTiled counts the tiled clients on a monitor.
func (wm *WM) nTiled(mi int) int {
	n := 0
	for i := wm.nextTiled(wm.monitors[mi].Clients); i != nilIdx; i = wm.nextTiled(wm.client(i).nextManaged) {
		n++
	}
	return n
}

// winToClient resolves a window handle to its arena index, nilIdx if the
// window is not managed.
func (wm *WM) winToClient(w Window) int {
	for mi := range wm.monitors {
		if !wm.monitors[mi].Valid {
			continue
		}
		for i := wm.monitors[mi].Clients; i != nilIdx; i = wm.client(i).nextManaged {
			if wm.client(i).Win == w {
				return i
			}
		}
	}
	return nilIdx
}

// gappedWidth is the horizontal footprint of a client including border and
// the inter-window gap.
func (wm *WM) gappedWidth(c *Client) int {
	return c.Geom.Width + 2*c.BorderWidth + wm.gap
}

func (wm *WM) gappedHeight(c *Client) int {
	return c.Geom.Height + 2*c.BorderWidth + wm.gap
}

// clampTags masks tags to the configured tag set and falls back to the
// monitor's selection if the result would be empty. A client never ends up
// on zero tags.
func (wm *WM) clampTags(tags uint32, mi int) uint32 {
	if masked := tags & wm.tagMask; masked != 0 {
		return masked
	}
	return wm.monitors[mi].SelTags
}
