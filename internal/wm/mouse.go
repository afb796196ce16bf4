package wm

// Pointer drags run a nested event loop while the pointer is grabbed. Only
// drag-relevant events are handled inline; everything else is deferred and
// replayed by the main loop once the drag ends.

const motionInterval = 1000 / 60 // ms between processed motions

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// snapPosition pulls a candidate position onto the window-area edges when it
// comes within snap pixels of them. gw and gh are the client's outer
// dimensions including border and gap.
func snapPosition(wa Rect, nx, ny, gw, gh, snap int) (int, int) {
	if abs(wa.X-nx) < snap {
		nx = wa.X
	} else if abs(wa.X+wa.Width-(nx+gw)) < snap {
		nx = wa.X + wa.Width - gw
	}
	if abs(wa.Y-ny) < snap {
		ny = wa.Y
	} else if abs(wa.Y+wa.Height-(ny+gh)) < snap {
		ny = wa.Y + wa.Height - gh
	}
	return nx, ny
}

// dragPromotes reports whether a tiled client moved far enough from its
// current geometry to switch to floating.
func dragPromotes(curX, curY, nx, ny, snap int) bool {
	return abs(nx-curX) > snap || abs(ny-curY) > snap
}

// nextGrabEvent returns the next event a drag loop may consume, deferring
// the rest for the main loop.
func (wm *WM) nextGrabEvent() (Event, error) {
	for {
		ev, err := wm.backend.WaitEvent()
		if err != nil {
			return nil, err
		}
		switch ev.(type) {
		case MotionEvent, ButtonReleaseEvent, ConfigureRequestEvent, ExposeEvent, MapRequestEvent:
			return ev, nil
		default:
			wm.deferred = append(wm.deferred, ev)
		}
	}
}

// moveMouse drags the selected client with the pointer. Tiled clients float
// once dragged more than snap pixels; on release the client is handed to
// whichever monitor holds most of it.
func (wm *WM) moveMouse() error {
	m := &wm.monitors[wm.selMon]
	ci := m.Sel
	if ci == nilIdx {
		return nil
	}
	c := wm.client(ci)
	if c.IsFullscreen {
		return nil
	}
	wm.restack(wm.selMon)
	ocx, ocy := c.Geom.X, c.Geom.Y
	if !wm.backend.GrabPointer(CursorMove) {
		return nil
	}
	defer wm.backend.UngrabPointer()
	px, py, ok := wm.backend.QueryPointer()
	if !ok {
		return nil
	}

	var lastTime uint32
	for {
		ev, err := wm.nextGrabEvent()
		if err != nil {
			return err
		}
		switch ev := ev.(type) {
		case ButtonReleaseEvent:
			wm.finishDrag(ci)
			return nil
		case ConfigureRequestEvent:
			wm.handleConfigureRequest(ev)
		case ExposeEvent:
			wm.handleExpose(ev)
		case MapRequestEvent:
			wm.handleMapRequest(ev)
		case MotionEvent:
			if ev.Time-lastTime <= motionInterval {
				continue
			}
			lastTime = ev.Time
			// managing a window mid-drag can grow the arena and move
			// the backing array out from under c
			c = wm.client(ci)
			nx := ocx + ev.RootX - px
			ny := ocy + ev.RootY - py
			nx, ny = snapPosition(m.WinArea, nx, ny, wm.gappedWidth(c), wm.gappedHeight(c), wm.cfg.Snap)
			if !c.IsFloating && dragPromotes(c.Geom.X, c.Geom.Y, nx, ny, wm.cfg.Snap) {
				wm.toggleFloating()
			}
			if c.IsFloating {
				wm.resize(ci, nx, ny, c.Geom.Width, c.Geom.Height, true)
			}
		}
	}
}

// resizeMouse drags the selected client's bottom-right corner. The pointer
// is warped onto the corner for the duration of the drag.
func (wm *WM) resizeMouse() error {
	m := &wm.monitors[wm.selMon]
	ci := m.Sel
	if ci == nilIdx {
		return nil
	}
	c := wm.client(ci)
	if c.IsFullscreen {
		return nil
	}
	wm.restack(wm.selMon)
	ocx, ocy := c.Geom.X, c.Geom.Y
	if !wm.backend.GrabPointer(CursorResize) {
		return nil
	}
	defer wm.backend.UngrabPointer()
	wm.warpToCorner(c)

	cm := &wm.monitors[c.Monitor]
	var lastTime uint32
	for {
		ev, err := wm.nextGrabEvent()
		if err != nil {
			return err
		}
		switch ev := ev.(type) {
		case ButtonReleaseEvent:
			wm.warpToCorner(wm.client(ci))
			wm.finishDrag(ci)
			return nil
		case ConfigureRequestEvent:
			wm.handleConfigureRequest(ev)
		case ExposeEvent:
			wm.handleExpose(ev)
		case MapRequestEvent:
			wm.handleMapRequest(ev)
		case MotionEvent:
			if ev.Time-lastTime <= motionInterval {
				continue
			}
			lastTime = ev.Time
			c = wm.client(ci)
			nw := ev.RootX - ocx - 2*c.BorderWidth + 1
			if nw < 1 {
				nw = 1
			}
			nh := ev.RootY - ocy - 2*c.BorderWidth + 1
			if nh < 1 {
				nh = 1
			}
			inArea := cm.WinArea.X+nw >= m.WinArea.X && cm.WinArea.X+nw <= m.WinArea.X+m.WinArea.Width &&
				cm.WinArea.Y+nh >= m.WinArea.Y && cm.WinArea.Y+nh <= m.WinArea.Y+m.WinArea.Height
			if inArea && !c.IsFloating && dragPromotes(c.Geom.Width, c.Geom.Height, nw, nh, wm.cfg.Snap) {
				wm.toggleFloating()
			}
			if c.IsFloating {
				wm.resize(ci, c.Geom.X, c.Geom.Y, nw, nh, true)
			}
		}
	}
}

func (wm *WM) warpToCorner(c *Client) {
	wm.backend.WarpPointer(c.Win, c.Geom.Width+c.BorderWidth-1, c.Geom.Height+c.BorderWidth-1)
}

// finishDrag hands the client to the monitor now holding most of it.
func (wm *WM) finishDrag(ci int) {
	c := wm.client(ci)
	mi := wm.rectToMonitor(c.Geom)
	if mi != wm.selMon {
		wm.sendToMonitor(ci, mi)
		wm.selMon = mi
		wm.focus(nilIdx)
	}
}
